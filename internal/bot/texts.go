package bot

import (
	"fmt"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

const (
	homeText       = "<b>🎁 Надежный гарант-сервис подарков</b>\n\n<i>Выберите действие:</i>"
	adminPanelText = "<b>⚙️ Админ-панель:</b>"

	dealNotFoundText    = "<b>❌ Сделка не найдена!</b>"
	selfTradeText       = "<b>❌ Вы не можете участвовать в своей собственной сделке!</b>"
	alreadyJoinedText   = "<b>✅ Вы уже присоединены к этой сделке!</b>"
	slotTakenText       = "<b>❌ В сделке уже участвует другой покупатель!</b>"
	disputeAcceptedText = "<b>⏳ Ваш спор принят в обработку. Ожидайте ответа модератора.</b>"
	disputeCanceledText = "<b>❌ Открытие спора отменено</b>"

	walletPromptErrText = "<b>❌ Неверный формат TON-адреса!</b>\n\n<i>Попробуйте снова:</i>"
	cardPromptErrText   = "<b>❌ Неверный формат карты!</b>\n\n<i>Попробуйте снова:</i>"

	descriptionPromptText = "<b>🎁 Опишите подарки, которые хотите выставить на продажу:</b>\n\n<i>Пример: 1 PEPE, 3 кепки или 1 Парфюм</i>"
	disputePromptText     = "<b>⚠️ Опишите проблему подробно:</b>"
	disputeReplyPrompt    = "<b>✍️ Введите ответ для пользователя:</b>"

	withdrawSubmittedText = "<b>✅ Запрос на вывод средств отправлен на модерацию!</b>\n\n<i>Ожидайте подтверждения от модератора.</i>"

	connectUsageText = "<b>❌ Укажите ID сделки:</b> <code>/connect_to_deal ID_СДЕЛКИ</code>"

	transferSoftAckText = "🕒 Подарки не найдены. Повторите попытку через 3 минуты."
	transferRetryText   = "Попробуйте позже!"
)

func walletPromptText(current string) string {
	if current == "" {
		current = "Пусто"
	}
	return fmt.Sprintf("<b>💎 Ваш текущий кошелек:</b> <code>%s</code>\n\n<i>Отправьте новый адрес для изменения:</i>", current)
}

func cardPromptText(current string) string {
	if current == "" {
		current = "Пусто"
	}
	return fmt.Sprintf("<b>💳 Ваша текущая карта:</b> <code>%s</code>\n\n<i>Отправьте новую карту для изменения:</i>", current)
}

func walletBoundText(wallet string) string {
	return fmt.Sprintf("<b>✅ TON кошелек успешно привязан!</b>\n\n<i>Новый адрес:</i> <code>%s</code>", wallet)
}

func cardBoundText(card string) string {
	return fmt.Sprintf("<b>✅ Карта успешно привязана!</b>\n\n<i>Новый номер:</i> <code>%s</code>", card)
}

func amountPromptText(c domain.Currency) string {
	return fmt.Sprintf("<b>💰 Введите стоимость сделки в %s</b> <i>(минимум %v %s):</i>", c, c.MinAmount(), c)
}

func amountErrText(c domain.Currency) string {
	return fmt.Sprintf("<b>❌ Неверная сумма!</b>\n<i>Минимальная сумма -</i> <code>%v %s</code>\n\n<i>Попробуйте снова:</i>", c.MinAmount(), c)
}

func dealCreatedText(d domain.Deal, botUsername string) string {
	return fmt.Sprintf(
		"<b>✅ Сделка #%s успешно создана!</b>\n\n"+
			"Стоимость: <code>%v %s</code>\n"+
			"Описание: %s\n\n"+
			"Команда для покупателя: <code>/connect_to_deal %s</code>\n"+
			"Ссылка: http://t.me/%s?start=%s\n\n"+
			"<i><b>⚠️ Никогда не отправляйте</b> подарки на сторонние аккаунты покупателя, только на тот, <b>что указан в сделке.</b></i>",
		d.ID, d.Amount, d.Currency, d.Description, d.ID, botUsername, d.ID,
	)
}

func dealCreatedWorkersText(d domain.Deal, sellerName string) string {
	return fmt.Sprintf(
		"<b>✅ Сделка #%s успешно создана!</b>\n\n"+
			"Стоимость: <code>%v %s</code>\n"+
			"Описание: %s\n\n"+
			"Продавец: %s",
		d.ID, d.Amount, d.Currency, d.Description, sellerName,
	)
}

func (h *Handler) buyerDealText(d domain.Deal, sellerName string) string {
	return fmt.Sprintf(
		"<b>Сделка #%s 🚀</b>\n\n"+
			"<b>Продавец:</b> %s\n"+
			"<b>🤝 Успешные сделки продавца</b> - <code>%d</code>\n\n"+
			"<b>💸 Адрес для оплаты:</b>\n"+
			"<b>TON -</b> <code>%s</code>\n"+
			"<b>USDT [TRC 20] -</b> <code>%s</code>\n"+
			"<b>USDT [TON] -</b> <code>%s</code>\n"+
			"<b>✉️ Комментарий к платежу:</b> <code>%s</code>\n\n"+
			"<b>- Для оплаты по банковской карте обратитесь в поддержку.</b>\n\n"+
			"<b>Сумма к оплате:</b> <code>%v %s</code>\n"+
			"<b>Вы покупаете:</b> <code>%s</code>\n\n"+
			"<i><b>⚠️ Пожалуйста, убедитесь в том,</b> что вы абсолютно правильно ввели комментарий перед тем как отправить оплату. <b>Комментарий обязателен.</b></i>",
		d.ID, sellerName, d.SellerDeals,
		h.cfg.TonAddress, h.cfg.USDTTRCAddress, h.cfg.USDTTONAddress, d.ID,
		d.Amount, d.Currency, d.Description,
	)
}

func buyerJoinedText(d domain.Deal, buyerName string) string {
	return fmt.Sprintf("<b>👤 Покупатель %s присоединился к сделке #%s</b>", buyerName, d.ID)
}

func verifyPaymentText(d domain.Deal, sellerID int64, sellerUsername string, buyerID int64, buyerUsername string) string {
	return fmt.Sprintf(
		"<b>🔔 Требуется проверка платежа!</b>\n\n"+
			"<b>📝 Сделка ID:</b> <code>%s</code>\n"+
			"<b>💵 Сумма:</b> <code>%v %s</code>\n"+
			"<b>📦 Подарки:</b> %s\n\n"+
			"<b>👤 Продавец:</b>\n<b>ID:</b> <code>%d</code>\n<b>Username:</b> @%s\n\n"+
			"<b>👥 Покупатель:</b>\n<b>ID:</b> <code>%d</code>\n<b>Username:</b> @%s",
		d.ID, d.Amount, d.Currency, d.Description,
		sellerID, orNone(sellerUsername), buyerID, orNone(buyerUsername),
	)
}

func (h *Handler) pushSellerText(d domain.Deal) string {
	return fmt.Sprintf(
		"<b>💰 Покупатель оплатил заказ по сделке #%s!</b>\n\n"+
			"<b>➡️ Передайте подарки получателю:</b> @%s\n"+
			"<b>🎁 Описание подарков:</b> %s\n\n"+
			"<b>После передачи подарков</b> нажмите кнопку ниже, чтобы <b>завершить сделку.</b>",
		d.ID, h.cfg.GiftReceiver, d.Description,
	)
}

func pushSentText(dealID string) string {
	return fmt.Sprintf("<b>✅ Пуш отправлен продавцу по сделке #%s</b>", dealID)
}

func disputeModeratorText(d domain.Deal, buyerName, sellerName string, problem string) string {
	return fmt.Sprintf(
		"<b>🚨 Новый спор по сделке #%s</b>\n\n"+
			"<b>👤 Покупатель:</b> %s (ID: %d)\n"+
			"<b>👤 Продавец:</b> %s (ID: %d)\n\n"+
			"<b>📝 Описание проблемы:</b>\n<i>%s</i>",
		d.ID, buyerName, d.BuyerID, sellerName, d.SellerID, problem,
	)
}

func disputeReplyUserText(dealID, reply string) string {
	return fmt.Sprintf("<b>📩 Ответ по спору #%s:</b>\n\n<i>%s</i>", dealID, reply)
}

func disputeAnsweredText(targetID int64, dealID, reply string) string {
	return fmt.Sprintf(
		"<b>✅ Ответ отправлен пользователю %d</b>\n<b>По спору #%s</b>\n\n<b>Текст ответа:</b> <i>%s</i>",
		targetID, dealID, reply,
	)
}

func (h *Handler) referralStatsText(link string, a domain.Account) string {
	stats := fmt.Sprintf(
		"<b>📊 Статистика:</b>\n<i>• Приглашено:</i> <code>%d</code>\n<i>• Баланс:</i> <code>%v TON</code>\n\n",
		len(a.Referrals), a.Balance,
	)
	if a.Balance >= h.cfg.MinWithdrawal {
		stats += fmt.Sprintf("<i>✅ Можно вывести:</i> <code>%v TON</code>", a.Balance)
	} else {
		stats += fmt.Sprintf("<i>🚫 Минимальная сумма вывода:</i> <code>%v TON</code>", h.cfg.MinWithdrawal)
	}
	return fmt.Sprintf("<b>🔗 Ваша реферальная ссылка:</b>\n%s\n\n%s", link, stats)
}

func profileText(completed int, total float64, a domain.Account) string {
	wallet := a.Wallet
	if wallet == "" {
		wallet = "Пусто"
	}
	card := a.Card
	if card == "" {
		card = "Пусто"
	}
	return fmt.Sprintf(
		"<b>👤 Ваш профиль:</b>\n\n"+
			"✅ <i>Успешных сделок:</i> %d\n"+
			"💰 <i>Общая сумма:</i> %.2f TON\n\n"+
			"💼 <i>TON кошелек:</i> <code>%s</code>\n"+
			"💳 <i>Привязанная карта:</i> <code>%s</code>",
		completed, total, wallet, card,
	)
}

func (h *Handler) commissionText() string {
	return fmt.Sprintf(
		"<b>💼 Комиссия сервиса</b>\n\n"+
			"• <i>Комиссия:</i> %v%%\n"+
			"• Вы не делите комиссию с продавцом.\n\n"+
			"<i>Комиссия взимается только с суммы сделки.</i>",
		h.cfg.CommissionPct,
	)
}

func withdrawModeratorText(req domain.WithdrawalRequest, username string) string {
	return fmt.Sprintf(
		"<b>🔄 Запрос на вывод:</b>\n\n"+
			"👤 <i>Пользователь:</i> @%s (ID: %d)\n"+
			"💵 <i>Сумма:</i> <code>%v TON</code>\n"+
			"📦 <i>Метод:</i> <code>%s</code>\n"+
			"🔗 <i>Данные:</i> <code>%s</code>",
		orNone(username), req.AccountID, req.Amount, req.Method, req.Details,
	)
}

func withdrawDoneText(req domain.WithdrawalRequest) string {
	return fmt.Sprintf(
		"✅ <b>Перевод на сумму</b> <code>%v TON</code>\n<b>успешно отправлен на</b> <code>%s</code>",
		req.Amount, req.Details,
	)
}

func broadcastReportText(sent, failed int) string {
	return fmt.Sprintf("<b>✉️ Рассылка завершена!</b>\n<i>✅ Успешно: %d</i>\n<i>❌ Не удалось: %d</i>", sent, failed)
}

func adjustmentDoneText(amount float64, targetID int64) string {
	return fmt.Sprintf("<b>✅ Изменено</b> <code>%v TON</code> <b>в балансе пользователя</b> <code>%d</code>", amount, targetID)
}

func adminStatsText(total int) string {
	return fmt.Sprintf("<b>👥 Всего пользователей:</b> <code>%d</code>", total)
}

func orNone(username string) string {
	if username == "" {
		return "нет"
	}
	return username
}

func displayName(first, username string) string {
	if username != "" {
		return "@" + username
	}
	if first != "" {
		return first
	}
	return "пользователь"
}
