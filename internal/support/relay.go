package support

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/logger"
)

type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Relay — бот поддержки: личные сообщения пользователей пересылаются
// администратору, его reply уходит обратно автору. Связь сообщений
// держится в памяти.
type Relay struct {
	api     API
	adminID int64

	mu        sync.Mutex
	forwarded map[int]int64 // id пересланного сообщения → пользователь
}

func NewRelay(api API, adminID int64) *Relay {
	return &Relay{
		api:       api,
		adminID:   adminID,
		forwarded: make(map[int]int64),
	}
}

func (r *Relay) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || !msg.Chat.IsPrivate() {
		return
	}

	if msg.From.ID == r.adminID && msg.ReplyToMessage != nil {
		r.handleAdminReply(msg)
		return
	}

	if msg.IsCommand() {
		if msg.Command() == "start" {
			r.reply(msg.Chat.ID, "<b>👋 Привет! Отправь мне сообщение, и я перешлю его администратору.</b>")
		}
		return
	}
	if msg.Text == "" {
		return
	}

	forwarded := fmt.Sprintf(
		"📨 <b>Новое сообщение от пользователя</b>\n👤 Имя: %s\n🆔 ID: %d\n\n📝 Текст:\n%s",
		msg.From.FirstName, msg.From.ID, msg.Text,
	)
	sent, err := r.send(r.adminID, forwarded)
	if err != nil {
		logger.Log.Warn("forward to support admin", zap.Error(err))
		return
	}

	r.mu.Lock()
	r.forwarded[sent.MessageID] = msg.From.ID
	r.mu.Unlock()

	r.reply(msg.Chat.ID, "✅ Сообщение доставлено администратору!")
}

func (r *Relay) handleAdminReply(msg *tgbotapi.Message) {
	r.mu.Lock()
	userID, ok := r.forwarded[msg.ReplyToMessage.MessageID]
	r.mu.Unlock()

	if !ok {
		r.reply(msg.Chat.ID, "❌ Ошибка: не найден пользователь для ответа!")
		return
	}

	if _, err := r.send(userID, fmt.Sprintf("📩 <b>Ответ от администратора:</b>\n\n%s", msg.Text)); err != nil {
		logger.Log.Warn("deliver support reply", zap.Int64("user", userID), zap.Error(err))
		r.reply(msg.Chat.ID, "❌ Не удалось отправить ответ!")
		return
	}
	r.reply(msg.Chat.ID, "✅ Ответ успешно отправлен!")
}

func (r *Relay) send(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return r.api.Send(msg)
}

func (r *Relay) reply(chatID int64, text string) {
	if _, err := r.send(chatID, text); err != nil {
		logger.Log.Warn("support reply", zap.Int64("chat", chatID), zap.Error(err))
	}
}
