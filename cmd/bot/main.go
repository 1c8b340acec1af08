package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/bot"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/config"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/conversation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/db"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/deal"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/logger"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/moderation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/referral"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/repo"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/store"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/support"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/withdraw"
)

func main() {
	cfg := config.MustLoad()

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	pool := db.MustConnect(ctx, cfg.DatabaseURL)
	defer pool.Close()

	st := store.New(pool)
	if err := st.InitSchema(ctx); err != nil {
		logger.Log.Fatal("init schema", zap.Error(err))
	}

	// Всё хранилище поднимается в память один раз на старте,
	// дальше каждая мутация пишется сквозняком.
	accountRows, err := st.LoadAccounts(ctx)
	if err != nil {
		logger.Log.Fatal("load accounts", zap.Error(err))
	}
	dealRows, err := st.LoadDeals(ctx)
	if err != nil {
		logger.Log.Fatal("load deals", zap.Error(err))
	}
	requestRows, err := st.LoadWithdrawalRequests(ctx)
	if err != nil {
		logger.Log.Fatal("load withdrawal requests", zap.Error(err))
	}
	linkRows, err := st.LoadReferralLinks(ctx)
	if err != nil {
		logger.Log.Fatal("load referral links", zap.Error(err))
	}

	accounts := repo.NewAccounts(st, accountRows)
	dealRepo := repo.NewDeals(st, dealRows)
	withdrawals := repo.NewWithdrawals(st, requestRows)
	referrals := repo.NewReferrals(st, linkRows)

	gate := moderation.NewGate(cfg.ModeratorIDs)
	dealSvc := deal.NewService(dealRepo, gate)
	withdrawSvc := withdraw.NewService(accounts, withdrawals, gate, cfg.MinWithdrawal)
	referralSvc := referral.NewService(accounts, referrals, cfg.ReferralReward)

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Log.Fatal("bot init", zap.Error(err))
	}

	h := bot.NewHandler(botAPI, cfg, conversation.NewManager(), gate,
		accounts, dealSvc, withdrawSvc, referralSvc, st)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Info("garant bot started", zap.String("username", botAPI.Self.UserName))
		return runPolling(ctx, botAPI, h.HandleUpdate)
	})

	if cfg.SupportBotToken != "" {
		supportAPI, err := tgbotapi.NewBotAPI(cfg.SupportBotToken)
		if err != nil {
			logger.Log.Fatal("support bot init", zap.Error(err))
		}
		relay := support.NewRelay(supportAPI, cfg.SupportAdminID)
		g.Go(func() error {
			logger.Log.Info("support bot started", zap.String("username", supportAPI.Self.UserName))
			return runPolling(ctx, supportAPI, relay.HandleUpdate)
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Log.Fatal("bot stopped", zap.Error(err))
	}
	logger.Log.Info("shutdown")
}

func runPolling(ctx context.Context, api *tgbotapi.BotAPI, handle func(ctx context.Context, upd tgbotapi.Update)) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			return ctx.Err()
		case upd := <-updates:
			handle(ctx, upd)
		}
	}
}
