package bot

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/config"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/conversation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/deal"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/logger"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/moderation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/referral"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/repo"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/withdraw"
)

type Handler struct {
	api  API
	cfg  config.Config
	conv *conversation.Manager
	gate *moderation.Gate

	accounts    *repo.Accounts
	deals       *deal.Service
	withdrawals *withdraw.Service
	referrals   *referral.Service
	adjustments AdjustmentStore

	// подменяется в тестах, чтобы не ждать реальные паузы
	sleep func(d time.Duration)
}

func NewHandler(
	api API,
	cfg config.Config,
	conv *conversation.Manager,
	gate *moderation.Gate,
	accounts *repo.Accounts,
	deals *deal.Service,
	withdrawals *withdraw.Service,
	referrals *referral.Service,
	adjustments AdjustmentStore,
) *Handler {
	return &Handler{
		api:         api,
		cfg:         cfg,
		conv:        conv,
		gate:        gate,
		accounts:    accounts,
		deals:       deals,
		withdrawals: withdrawals,
		referrals:   referrals,
		adjustments: adjustments,
		sleep:       time.Sleep,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("panic in update handler", zap.Any("panic", r))
		}
	}()

	if upd.CallbackQuery != nil {
		h.handleCallback(ctx, upd.CallbackQuery)
		return
	}

	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	msg := upd.Message
	actorID := msg.From.ID

	// Вне лички обрабатываем только ответ модератора по спору:
	// кнопка «Ответить» нажимается в группе модераторов.
	if !msg.Chat.IsPrivate() {
		if st, ok := h.conv.Current(actorID); ok {
			if reply, isReply := st.(conversation.AwaitDisputeReply); isReply {
				h.safeFlowInput(ctx, msg, reply)
			}
		}
		return
	}

	if _, _, err := h.accounts.GetOrCreate(ctx, actorID); err != nil {
		logger.Log.Error("register account", zap.Int64("actor", actorID), zap.Error(err))
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			h.handleStart(ctx, msg)
		case "connect_to_deal":
			h.handleConnect(ctx, msg)
		case "admin":
			h.handleAdminCommand(msg)
		}
		return
	}

	if st, ok := h.conv.Current(actorID); ok {
		h.safeFlowInput(ctx, msg, st)
	}
}

func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	actorID := msg.From.ID
	arg := msg.CommandArguments()

	if deal.IDPattern.MatchString(arg) {
		h.joinDeal(ctx, msg.Chat.ID, msg.From, arg)
		return
	}
	if arg != "" {
		credited, err := h.referrals.Credit(ctx, arg, actorID)
		if err != nil {
			logger.Log.Error("credit referral", zap.String("code", arg), zap.Error(err))
		}
		if credited {
			logger.Log.Info("referral credited", zap.String("code", arg), zap.Int64("referred", actorID))
		}
	}
	h.send(msg.Chat.ID, homeText, h.mainMenuKeyboard())
}

func (h *Handler) handleConnect(ctx context.Context, msg *tgbotapi.Message) {
	code := msg.CommandArguments()
	if code == "" {
		h.send(msg.Chat.ID, connectUsageText, nil)
		return
	}
	h.joinDeal(ctx, msg.Chat.ID, msg.From, code)
}

func (h *Handler) joinDeal(ctx context.Context, chatID int64, from *tgbotapi.User, code string) {
	d, err := h.deals.Join(ctx, code, from.ID)
	switch {
	case errors.Is(err, domain.ErrDealNotFound):
		h.send(chatID, dealNotFoundText, nil)
	case errors.Is(err, domain.ErrSelfTrade):
		h.send(chatID, selfTradeText, nil)
	case errors.Is(err, domain.ErrAlreadyJoined):
		h.send(chatID, alreadyJoinedText, nil)
	case errors.Is(err, domain.ErrSlotTaken):
		h.send(chatID, slotTakenText, nil)
	case err != nil:
		logger.Log.Error("join deal", zap.String("deal", code), zap.Error(err))
	default:
		h.send(chatID, h.buyerDealText(d, h.chatName(d.SellerID)), buyerDealKeyboard(d.ID))
		h.send(d.SellerID, buyerJoinedText(d, displayName(from.FirstName, from.UserName)), nil)
	}
}

// sendDealCard — карточка сделки с кнопками для её участников.
func (h *Handler) sendDealCard(actorID int64, dealID string) {
	d, ok := h.deals.Get(dealID)
	if !ok {
		h.send(actorID, dealNotFoundText, nil)
		return
	}
	var kb interface{}
	if d.IsParticipant(actorID) {
		kb = buyerDealKeyboard(d.ID)
	}
	h.send(actorID, h.buyerDealText(d, h.chatName(d.SellerID)), kb)
}

func (h *Handler) send(chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := h.api.Send(msg); err != nil {
		logger.Log.Warn("send message", zap.Int64("chat", chatID), zap.Error(err))
	}
}

func (h *Handler) edit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = kb
	if _, err := h.api.Send(edit); err != nil {
		logger.Log.Warn("edit message", zap.Int64("chat", chatID), zap.Error(err))
	}
}

func (h *Handler) deleteMessage(chatID int64, messageID int) {
	_, _ = h.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
}

func (h *Handler) answer(callbackID string) {
	_, _ = h.api.Request(tgbotapi.NewCallback(callbackID, ""))
}

func (h *Handler) alert(callbackID, text string) {
	_, _ = h.api.Request(tgbotapi.NewCallbackWithAlert(callbackID, text))
}

func (h *Handler) chatName(id int64) string {
	chat, err := h.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: id},
	})
	if err != nil {
		return "пользователь"
	}
	return displayName(chat.FirstName, chat.UserName)
}

func (h *Handler) chatUsername(id int64) string {
	chat, err := h.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: id},
	})
	if err != nil {
		return ""
	}
	return chat.UserName
}
