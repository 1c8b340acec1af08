package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/conversation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/logger"
)

// safeFlowInput изолирует обработку свободного текста: паника
// логируется и сбрасывает диалог, воркер продолжает жить.
func (h *Handler) safeFlowInput(ctx context.Context, msg *tgbotapi.Message, st conversation.State) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("panic in conversation flow",
				zap.Int64("actor", msg.From.ID), zap.Any("panic", r))
			h.conv.Clear(msg.From.ID)
		}
	}()
	h.handleFlowInput(ctx, msg, st)
}

func (h *Handler) handleFlowInput(ctx context.Context, msg *tgbotapi.Message, st conversation.State) {
	actorID := msg.From.ID

	switch s := st.(type) {
	case conversation.AwaitWallet:
		h.deleteMessage(msg.Chat.ID, msg.MessageID)
		if err := conversation.ValidateWalletAddress(msg.Text); err != nil {
			h.edit(actorID, s.MessageID, walletPromptErrText, markup(cancelKeyboard()))
			return
		}
		if _, err := h.accounts.Update(ctx, actorID, func(a *domain.Account) error {
			a.Wallet = msg.Text
			return nil
		}); err != nil {
			logger.Log.Error("bind wallet", zap.Int64("actor", actorID), zap.Error(err))
			return
		}
		h.edit(actorID, s.MessageID, walletBoundText(msg.Text), markup(backKeyboard()))
		h.conv.Clear(actorID)

	case conversation.AwaitCard:
		h.deleteMessage(msg.Chat.ID, msg.MessageID)
		if err := conversation.ValidateCardNumber(msg.Text); err != nil {
			h.edit(actorID, s.MessageID, cardPromptErrText, markup(cancelKeyboard()))
			return
		}
		if _, err := h.accounts.Update(ctx, actorID, func(a *domain.Account) error {
			a.Card = msg.Text
			return nil
		}); err != nil {
			logger.Log.Error("bind card", zap.Int64("actor", actorID), zap.Error(err))
			return
		}
		h.edit(actorID, s.MessageID, cardBoundText(msg.Text), markup(backKeyboard()))
		h.conv.Clear(actorID)

	case conversation.AwaitDealCurrency:
		// валюта выбирается кнопкой, свободный текст здесь не нужен

	case conversation.AwaitDealAmount:
		h.deleteMessage(msg.Chat.ID, msg.MessageID)
		amount, err := conversation.ParseAmount(msg.Text, s.Currency)
		if err != nil {
			h.edit(actorID, s.MessageID, amountErrText(s.Currency), markup(cancelKeyboard()))
			return
		}
		h.conv.Start(actorID, conversation.AwaitDealDescription{
			MessageID: s.MessageID,
			Currency:  s.Currency,
			Amount:    amount,
		})
		h.edit(actorID, s.MessageID, descriptionPromptText, markup(cancelKeyboard()))

	case conversation.AwaitDealDescription:
		h.deleteMessage(msg.Chat.ID, msg.MessageID)
		if err := conversation.ValidateDescription(msg.Text); err != nil {
			h.edit(actorID, s.MessageID, descriptionPromptText, markup(cancelKeyboard()))
			return
		}
		d, err := h.deals.Create(ctx, actorID, s.Amount, s.Currency, msg.Text)
		if err != nil {
			logger.Log.Error("create deal", zap.Int64("seller", actorID), zap.Error(err))
			h.conv.Clear(actorID)
			return
		}
		botUser, _ := h.api.GetMe()
		h.edit(actorID, s.MessageID, dealCreatedText(d, botUser.UserName), markup(sellerDealKeyboard(d.ID)))
		if h.cfg.WorkersChatID != 0 {
			h.send(h.cfg.WorkersChatID, dealCreatedWorkersText(d, displayName(msg.From.FirstName, msg.From.UserName)), nil)
		}
		h.conv.Clear(actorID)

	case conversation.AwaitDisputeText:
		h.deleteMessage(msg.Chat.ID, msg.MessageID)
		d, err := h.deals.OpenDispute(ctx, s.DealID, actorID, msg.Text)
		if err != nil {
			logger.Log.Warn("open dispute", zap.String("deal", s.DealID), zap.Error(err))
			h.conv.Clear(actorID)
			return
		}
		h.send(actorID, disputeAcceptedText, nil)
		h.send(h.cfg.ModeratorChatID,
			disputeModeratorText(d, h.chatName(d.BuyerID), h.chatName(d.SellerID), msg.Text),
			replyDisputeKeyboard(actorID, d.ID))
		h.conv.Clear(actorID)

	case conversation.AwaitDisputeReply:
		h.deleteMessage(msg.Chat.ID, msg.MessageID)
		h.send(s.TargetID, disputeReplyUserText(s.DealID, msg.Text), nil)
		h.edit(h.cfg.ModeratorChatID, s.MessageID, disputeAnsweredText(s.TargetID, s.DealID, msg.Text), nil)
		if _, err := h.deals.ReplyToDispute(ctx, s.DealID, actorID); err != nil {
			logger.Log.Warn("mark dispute answered", zap.String("deal", s.DealID), zap.Error(err))
		}
		h.conv.Clear(actorID)

	case conversation.AwaitAdminTarget:
		h.deleteMessage(msg.Chat.ID, msg.MessageID)
		targetID, err := conversation.ParseAccountID(msg.Text)
		if err != nil {
			h.send(actorID, adminBadTargetText, nil)
			return
		}
		if _, ok := h.accounts.Get(targetID); !ok {
			h.send(actorID, adminBadTargetText, nil)
			return
		}
		h.conv.Start(actorID, conversation.AwaitAdminAmount{
			MessageID: s.MessageID,
			Sign:      s.Sign,
			TargetID:  targetID,
		})
		h.edit(actorID, s.MessageID, adminAmountPromptText, markup(cancelKeyboard()))

	case conversation.AwaitAdminAmount:
		h.deleteMessage(msg.Chat.ID, msg.MessageID)
		v, err := conversation.ParseAdjustment(msg.Text)
		if err != nil {
			h.send(actorID, adminErrorText, nil)
			h.conv.Clear(actorID)
			return
		}
		delta := s.Sign * v
		if err := h.applyAdjustment(ctx, s.TargetID, delta); err != nil {
			logger.Log.Error("apply adjustment", zap.Int64("target", s.TargetID), zap.Error(err))
			h.send(actorID, adminErrorText, nil)
			h.conv.Clear(actorID)
			return
		}
		h.edit(actorID, s.MessageID, adjustmentDoneText(delta, s.TargetID), markup(adminBackKeyboard()))
		h.conv.Clear(actorID)

	case conversation.AwaitBroadcastText:
		h.broadcast(msg.Chat.ID, msg.Text)
		h.conv.Clear(actorID)
	}
}

func markup(kb tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &kb
}
