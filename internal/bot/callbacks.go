package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/conversation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/logger"
)

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.Message == nil || q.From == nil {
		return
	}

	ev, err := decodeCallback(q.Data)
	if err != nil {
		logger.Log.Warn("callback rejected", zap.String("data", q.Data), zap.Error(err))
		h.answer(q.ID)
		return
	}

	actorID := q.From.ID
	if _, _, err := h.accounts.GetOrCreate(ctx, actorID); err != nil {
		logger.Log.Error("register account", zap.Int64("actor", actorID), zap.Error(err))
		h.answer(q.ID)
		return
	}

	chatID := q.Message.Chat.ID
	messageID := q.Message.MessageID

	switch e := ev.(type) {
	case cbBindWallet:
		a, _ := h.accounts.Get(actorID)
		h.conv.Start(actorID, conversation.AwaitWallet{MessageID: messageID})
		h.edit(chatID, messageID, walletPromptText(a.Wallet), markup(cancelKeyboard()))
		h.answer(q.ID)

	case cbBindCard:
		a, _ := h.accounts.Get(actorID)
		h.conv.Start(actorID, conversation.AwaitCard{MessageID: messageID})
		h.edit(chatID, messageID, cardPromptText(a.Card), markup(cancelKeyboard()))
		h.answer(q.ID)

	case cbCancel:
		h.conv.Clear(actorID)
		h.edit(chatID, messageID, homeText, markup(h.mainMenuKeyboard()))
		h.answer(q.ID)

	case cbBack:
		h.edit(chatID, messageID, homeText, markup(h.mainMenuKeyboard()))
		h.answer(q.ID)

	case cbCreateDeal:
		h.conv.Start(actorID, conversation.AwaitDealCurrency{MessageID: messageID})
		h.edit(chatID, messageID, "<b>💰 Выберите валюту для сделки:</b>", markup(currencyKeyboard()))
		h.answer(q.ID)

	case cbSelectCurrency:
		h.conv.Start(actorID, conversation.AwaitDealAmount{MessageID: messageID, Currency: e.Currency})
		h.edit(chatID, messageID, amountPromptText(e.Currency), markup(cancelKeyboard()))
		h.answer(q.ID)

	case cbReferralLink:
		code, err := h.referrals.Register(ctx, actorID)
		if err != nil {
			logger.Log.Error("register referral link", zap.Int64("actor", actorID), zap.Error(err))
			h.answer(q.ID)
			return
		}
		a, _ := h.accounts.Get(actorID)
		botUser, _ := h.api.GetMe()
		link := fmt.Sprintf("http://t.me/%s?start=%s", botUser.UserName, code)
		h.edit(chatID, messageID, h.referralStatsText(link, a), markup(referralKeyboard(a.Balance, h.cfg.MinWithdrawal)))
		h.answer(q.ID)

	case cbCommission:
		h.edit(chatID, messageID, h.commissionText(), markup(backKeyboard()))
		h.answer(q.ID)

	case cbProfile:
		completed, total := h.deals.SellerStats(actorID)
		a, _ := h.accounts.Get(actorID)
		h.edit(chatID, messageID, profileText(completed, total, a), markup(backKeyboard()))
		h.answer(q.ID)

	case cbWithdraw:
		h.handleWithdraw(ctx, q, chatID, messageID)

	case cbOpenDispute:
		d, ok := h.deals.Get(e.DealID)
		if !ok {
			h.alert(q.ID, "❌ Сделка не найдена!")
			return
		}
		if !d.IsParticipant(actorID) {
			h.alert(q.ID, "❌ Только участники сделки могут открыть спор!")
			return
		}
		h.conv.Start(actorID, conversation.AwaitDisputeText{MessageID: messageID, DealID: e.DealID})
		h.edit(chatID, messageID, disputePromptText, markup(disputeCancelKeyboard()))
		h.answer(q.ID)

	case cbCancelDispute:
		var dealID string
		if st, ok := h.conv.Current(actorID); ok {
			if s, isDispute := st.(conversation.AwaitDisputeText); isDispute {
				dealID = s.DealID
			}
		}
		h.conv.Clear(actorID)
		h.edit(chatID, messageID, disputeCanceledText, nil)
		if dealID != "" {
			h.sendDealCard(actorID, dealID)
		}
		h.answer(q.ID)

	case cbCheckPayment:
		h.handleCheckPayment(ctx, q, e.DealID)

	case cbPushDeal:
		h.handlePushDeal(ctx, q, e.DealID, chatID, messageID)

	case cbConfirmTransfer:
		h.handleConfirmTransfer(ctx, q, e.DealID)

	case cbConfirmWithdraw:
		h.handleConfirmWithdraw(ctx, q, e.RequestID, chatID, messageID)

	case cbReplyDispute:
		if !h.gate.IsModerator(actorID) {
			h.alert(q.ID, "❌ Недостаточно прав!")
			return
		}
		h.conv.Start(actorID, conversation.AwaitDisputeReply{
			MessageID: messageID,
			DealID:    e.DealID,
			TargetID:  e.TargetID,
		})
		h.edit(chatID, messageID, disputeReplyPrompt, nil)
		h.answer(q.ID)

	case cbAdminStats, cbAdminIncrement, cbAdminDecrement, cbAdminBroadcast, cbAdminBack:
		h.handleAdminCallback(q, ev, chatID, messageID)
	}
}

func (h *Handler) handleWithdraw(ctx context.Context, q *tgbotapi.CallbackQuery, chatID int64, messageID int) {
	actorID := q.From.ID
	req, err := h.withdrawals.Submit(ctx, actorID)
	switch {
	case errors.Is(err, domain.ErrNoPayoutDestination):
		h.alert(q.ID, "❌ Привяжите кошелек или карту!")
		return
	case errors.Is(err, domain.ErrBelowMinimum):
		h.alert(q.ID, fmt.Sprintf("❌ Минимальная сумма вывода: %v TON", h.cfg.MinWithdrawal))
		return
	case err != nil:
		logger.Log.Error("submit withdrawal", zap.Int64("actor", actorID), zap.Error(err))
		h.alert(q.ID, "❌ Не удалось отправить запрос, попробуйте позже.")
		return
	}

	modMsg := tgbotapi.NewMessage(h.cfg.ModeratorChatID, withdrawModeratorText(req, h.chatUsername(actorID)))
	modMsg.ParseMode = tgbotapi.ModeHTML
	modMsg.ReplyMarkup = confirmWithdrawKeyboard(req.ID)
	sent, err := h.api.Send(modMsg)
	if err != nil {
		logger.Log.Warn("notify moderators", zap.String("request", req.ID), zap.Error(err))
	} else if err := h.withdrawals.AttachMessage(ctx, req.ID, sent.MessageID); err != nil {
		logger.Log.Warn("attach withdrawal message", zap.String("request", req.ID), zap.Error(err))
	}

	h.edit(chatID, messageID, withdrawSubmittedText, markup(backKeyboard()))
	h.alert(q.ID, "✅ Запрос отправлен на модерацию!")
}

func (h *Handler) handleCheckPayment(ctx context.Context, q *tgbotapi.CallbackQuery, dealID string) {
	d, transitioned, err := h.deals.ClaimPayment(ctx, dealID)
	if err != nil {
		h.alert(q.ID, "❌ Сделка не найдена!")
		return
	}

	// Запрос модераторам уходит ровно один раз — на переходе unpaid→pending.
	if transitioned {
		h.send(h.cfg.ModeratorChatID,
			verifyPaymentText(d, d.SellerID, h.chatUsername(d.SellerID), q.From.ID, q.From.UserName),
			verifyPaymentKeyboard(d.ID))
	}

	status := "Проверяется ⏳"
	if d.Status == domain.StatusUnpaid {
		status = "Не оплачено ❌"
	}
	h.alert(q.ID, status)
}

func (h *Handler) handlePushDeal(ctx context.Context, q *tgbotapi.CallbackQuery, dealID string, chatID int64, messageID int) {
	d, err := h.deals.VerifyAndPush(ctx, dealID, q.From.ID)
	switch {
	case errors.Is(err, domain.ErrForbidden):
		h.alert(q.ID, "❌ Недостаточно прав!")
		return
	case err != nil:
		h.alert(q.ID, "❌ Сделка уже обработана!")
		return
	}

	h.send(d.SellerID, h.pushSellerText(d), confirmTransferKeyboard(d.ID))
	h.edit(chatID, messageID, pushSentText(d.ID), nil)
	if h.cfg.WorkersChatID != 0 {
		h.send(h.cfg.WorkersChatID, pushSentText(d.ID), nil)
	}
	h.answer(q.ID)
}

// handleConfirmTransfer: переход фиксируется сразу и надёжно, но ответ
// пользователю намеренно мягкий — место для внешней проверки передачи
// подарков, которой пока нет.
func (h *Handler) handleConfirmTransfer(ctx context.Context, q *tgbotapi.CallbackQuery, dealID string) {
	_, already, err := h.deals.ConfirmTransfer(ctx, dealID)
	h.sleep(time.Duration(4000+rand.Intn(3000)) * time.Millisecond)
	if err != nil || already {
		h.alert(q.ID, transferRetryText)
		return
	}
	h.alert(q.ID, transferSoftAckText)
}

func (h *Handler) handleConfirmWithdraw(ctx context.Context, q *tgbotapi.CallbackQuery, requestID string, chatID int64, messageID int) {
	req, err := h.withdrawals.Confirm(ctx, requestID, q.From.ID)
	switch {
	case errors.Is(err, domain.ErrForbidden):
		h.alert(q.ID, "❌ Недостаточно прав!")
		return
	case err != nil:
		h.alert(q.ID, "❌ Запрос уже обработан!")
		return
	}

	h.send(req.AccountID, withdrawDoneText(req), nil)
	h.edit(chatID, messageID, "<b>✅ Вывод подтвержден</b>\n"+q.Message.Text, nil)
	h.answer(q.ID)
}
