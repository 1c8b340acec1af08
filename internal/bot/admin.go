package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/conversation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/logger"
)

// AdjustmentStore пишет ручные корректировки баланса в журнал.
type AdjustmentStore interface {
	SaveAdjustment(ctx context.Context, a domain.Adjustment) error
}

const (
	adminTargetPromptText    = "<b>Введите ID пользователя:</b>"
	adminAmountPromptText    = "<b>Введите сумму:</b>"
	adminBroadcastPromptText = "<b>Введите сообщение для рассылки:</b>"
	adminBadTargetText       = "❌ Неверный ID пользователя!"
	adminErrorText           = "❌ Ошибка!"
)

func (h *Handler) handleAdminCommand(msg *tgbotapi.Message) {
	if !h.gate.IsModerator(msg.From.ID) {
		return
	}
	h.send(msg.Chat.ID, adminPanelText, adminKeyboard())
}

func (h *Handler) handleAdminCallback(q *tgbotapi.CallbackQuery, ev callbackEvent, chatID int64, messageID int) {
	actorID := q.From.ID
	if !h.gate.IsModerator(actorID) {
		h.alert(q.ID, "❌ Недостаточно прав!")
		return
	}

	switch ev.(type) {
	case cbAdminStats:
		h.edit(chatID, messageID, adminStatsText(h.accounts.Count()), markup(adminBackKeyboard()))

	case cbAdminIncrement:
		h.conv.Start(actorID, conversation.AwaitAdminTarget{MessageID: messageID, Sign: 1})
		h.edit(chatID, messageID, adminTargetPromptText, markup(cancelKeyboard()))

	case cbAdminDecrement:
		h.conv.Start(actorID, conversation.AwaitAdminTarget{MessageID: messageID, Sign: -1})
		h.edit(chatID, messageID, adminTargetPromptText, markup(cancelKeyboard()))

	case cbAdminBroadcast:
		h.conv.Start(actorID, conversation.AwaitBroadcastText{MessageID: messageID})
		h.edit(chatID, messageID, adminBroadcastPromptText, markup(cancelKeyboard()))

	case cbAdminBack:
		h.edit(chatID, messageID, adminPanelText, markup(adminKeyboard()))
	}
	h.answer(q.ID)
}

// applyAdjustment меняет баланс и пишет запись в журнал корректировок.
// Баланс не уходит в минус.
func (h *Handler) applyAdjustment(ctx context.Context, targetID int64, delta float64) error {
	if _, err := h.accounts.Update(ctx, targetID, func(a *domain.Account) error {
		a.Balance += delta
		if a.Balance < 0 {
			a.Balance = 0
		}
		return nil
	}); err != nil {
		return err
	}
	return h.adjustments.SaveAdjustment(ctx, domain.Adjustment{
		ID:        uuid.NewString(),
		AccountID: targetID,
		Amount:    delta,
		Note:      "ручная корректировка",
		CreatedAt: time.Now(),
	})
}

// broadcast шлёт текст всем известным аккаунтам. Ошибка доставки
// одному получателю не прерывает рассылку.
func (h *Handler) broadcast(reportChatID int64, text string) {
	var sent, failed int
	for _, id := range h.accounts.IDs() {
		msg := tgbotapi.NewMessage(id, text)
		if _, err := h.api.Send(msg); err != nil {
			failed++
			logger.Log.Warn("broadcast delivery failed", zap.Int64("chat", id), zap.Error(err))
			continue
		}
		sent++
		h.sleep(100 * time.Millisecond)
	}
	h.send(reportChatID, broadcastReportText(sent, failed), nil)
}
