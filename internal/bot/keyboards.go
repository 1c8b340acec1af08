package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func row(buttons ...tgbotapi.InlineKeyboardButton) []tgbotapi.InlineKeyboardButton {
	return buttons
}

func btn(text, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data)
}

func (h *Handler) mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("💎 Привязать TON Кошелек", "bind_ton_wallet")),
		row(btn("💳 Привязать карту", "bind_card")),
		row(btn("🤝 Создать сделку", "create_deal"), btn("🔗 Реферальная ссылка", "referral_link")),
		row(btn("💖 Комиссия", "commission"), tgbotapi.NewInlineKeyboardButtonURL("🛠️ Поддержка", "tg://resolve?domain="+h.cfg.SupportUsername)),
		row(btn("👨🏻‍💻 Профиль", "profile")),
	)
}

func cancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("❌ Отменить", "cancel")))
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("◀️ Назад", "back")))
}

func currencyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("RUB 🇷🇺", dataCurrency("RUB")), btn("TON 💎", dataCurrency("TON"))),
		row(btn("❌ Отменить", "cancel")),
	)
}

func referralKeyboard(balance, minWithdrawal float64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if balance >= minWithdrawal {
		rows = append(rows, row(btn("📤 Вывести средства", "withdraw")))
	}
	rows = append(rows, row(btn("🔙 Назад", "back")))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func sellerDealKeyboard(dealID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("⚠️ Открыть спор", dataOpenDispute(dealID))),
	)
}

func buyerDealKeyboard(dealID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("🔄 Проверить статус платежа", dataCheckPayment(dealID))),
		row(btn("⚠️ Открыть спор", dataOpenDispute(dealID))),
	)
}

func disputeCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("❌ Отменить", "cancel_dispute")))
}

func verifyPaymentKeyboard(dealID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("✅ Подтвердить платеж", dataPushDeal(dealID))))
}

func confirmTransferKeyboard(dealID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("✅ Подтвердить передачу товара", dataConfirmTransfer(dealID))))
}

func confirmWithdrawKeyboard(reqID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("✅ Отправил", dataConfirmWithdraw(reqID))))
}

func replyDisputeKeyboard(targetID int64, dealID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("📩 Ответить", dataReplyDispute(targetID, dealID))))
}

func adminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("📊 Статистика", "admin_stats")),
		row(btn("📈 Увеличить баланс", "admin_increment")),
		row(btn("📉 Уменьшить баланс", "admin_decrement")),
		row(btn("📤 Рассылка", "admin_broadcast")),
		row(btn("◀️ Назад", "back")),
	)
}

func adminBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row(btn("◀️ Назад", "admin_back")))
}
