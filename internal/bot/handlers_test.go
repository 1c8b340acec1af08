package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/config"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/conversation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/deal"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/moderation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/referral"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/repo"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/withdraw"
)

type storeStub struct{}

func (storeStub) SaveAccount(ctx context.Context, a domain.Account) error { return nil }
func (storeStub) SaveDeal(ctx context.Context, d domain.Deal) error      { return nil }
func (storeStub) SaveWithdrawalRequest(ctx context.Context, r domain.WithdrawalRequest) error {
	return nil
}
func (storeStub) SaveReferralLink(ctx context.Context, l domain.ReferralLink) error { return nil }
func (storeStub) SaveAdjustment(ctx context.Context, a domain.Adjustment) error     { return nil }

// fakeAPI копит исходящие сообщения вместо сети.
type fakeAPI struct {
	msgs      []tgbotapi.MessageConfig
	edits     []tgbotapi.EditMessageTextConfig
	callbacks []tgbotapi.CallbackConfig
	failChats map[int64]bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		if f.failChats[m.ChatID] {
			return tgbotapi.Message{}, errors.New("blocked by user")
		}
		f.msgs = append(f.msgs, m)
	case tgbotapi.EditMessageTextConfig:
		f.edits = append(f.edits, m)
	}
	return tgbotapi.Message{MessageID: len(f.msgs)}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.callbacks = append(f.callbacks, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetChat(c tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error) {
	return tgbotapi.Chat{FirstName: "Тест", UserName: "test_user"}, nil
}

func (f *fakeAPI) GetMe() (tgbotapi.User, error) {
	return tgbotapi.User{UserName: "garant_test_bot"}, nil
}

func (f *fakeAPI) lastCallback(t *testing.T) tgbotapi.CallbackConfig {
	t.Helper()
	require.NotEmpty(t, f.callbacks)
	return f.callbacks[len(f.callbacks)-1]
}

const testModeratorID = int64(900)

type fixture struct {
	h        *Handler
	api      *fakeAPI
	accounts *repo.Accounts
	deals    *deal.Service
	slept    *[]time.Duration
}

func newFixture(accounts []domain.Account) fixture {
	api := &fakeAPI{failChats: map[int64]bool{}}
	accs := repo.NewAccounts(storeStub{}, accounts)
	gate := moderation.NewGate([]int64{testModeratorID})
	dealSvc := deal.NewService(repo.NewDeals(storeStub{}, nil), gate)
	withdrawSvc := withdraw.NewService(accs, repo.NewWithdrawals(storeStub{}, nil), gate, 1)
	referralSvc := referral.NewService(accs, repo.NewReferrals(storeStub{}, nil), 0.3)

	cfg := config.Config{ModeratorChatID: -1000, MinWithdrawal: 1}
	h := NewHandler(api, cfg, conversation.NewManager(), gate,
		accs, dealSvc, withdrawSvc, referralSvc, storeStub{})

	var slept []time.Duration
	h.sleep = func(d time.Duration) { slept = append(slept, d) }
	return fixture{h: h, api: api, accounts: accs, deals: dealSvc, slept: &slept}
}

func callback(from int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb1",
		From: &tgbotapi.User{ID: from},
		Message: &tgbotapi.Message{
			MessageID: 7,
			Chat:      &tgbotapi.Chat{ID: from},
		},
		Data: data,
	}
}

func TestBroadcastToleratesFailures(t *testing.T) {
	f := newFixture([]domain.Account{{ID: 1}, {ID: 2}, {ID: 3}})
	f.api.failChats[2] = true

	f.h.broadcast(500, "привет всем")

	// двое получили, один заблокировал, отчёт ушёл отдельно
	var delivered int
	var report string
	for _, m := range f.api.msgs {
		if m.ChatID == 500 {
			report = m.Text
			continue
		}
		delivered++
	}
	assert.Equal(t, 2, delivered)
	assert.Equal(t, broadcastReportText(2, 1), report)
}

func TestCheckPaymentNotifiesModeratorsOnce(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	d, err := f.deals.Create(ctx, 100, 500, domain.CurrencyRUB, "подарок")
	require.NoError(t, err)
	_, err = f.deals.Join(ctx, d.ID, 200)
	require.NoError(t, err)

	modMessages := func() int {
		var n int
		for _, m := range f.api.msgs {
			if m.ChatID == f.h.cfg.ModeratorChatID {
				n++
			}
		}
		return n
	}

	f.h.handleCheckPayment(ctx, callback(200, dataCheckPayment(d.ID)), d.ID)
	assert.Equal(t, 1, modMessages())
	assert.Equal(t, "Проверяется ⏳", f.api.lastCallback(t).Text)

	// повторное нажатие не плодит запросы модераторам
	f.h.handleCheckPayment(ctx, callback(200, dataCheckPayment(d.ID)), d.ID)
	assert.Equal(t, 1, modMessages())
}

func TestConfirmTransferSoftAck(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	d, err := f.deals.Create(ctx, 100, 500, domain.CurrencyRUB, "подарок")
	require.NoError(t, err)

	f.h.handleConfirmTransfer(ctx, callback(100, dataConfirmTransfer(d.ID)), d.ID)

	got, ok := f.deals.Get(d.ID)
	require.True(t, ok)
	assert.True(t, got.TransferConfirmed)

	// пауза перед ответом в пределах 4-7 секунд
	require.Len(t, *f.slept, 1)
	pause := (*f.slept)[0]
	assert.GreaterOrEqual(t, pause, 4*time.Second)
	assert.Less(t, pause, 7*time.Second)
	assert.Equal(t, transferSoftAckText, f.api.lastCallback(t).Text)

	// повтор не считается успехом
	f.h.handleConfirmTransfer(ctx, callback(100, dataConfirmTransfer(d.ID)), d.ID)
	assert.Equal(t, transferRetryText, f.api.lastCallback(t).Text)
}

func TestAdminCallbackRequiresModerator(t *testing.T) {
	f := newFixture([]domain.Account{{ID: 1}})

	f.h.handleAdminCallback(callback(1, "admin_stats"), cbAdminStats{}, 1, 7)
	assert.Equal(t, "❌ Недостаточно прав!", f.api.lastCallback(t).Text)
	assert.Empty(t, f.api.edits)

	f.h.handleAdminCallback(callback(testModeratorID, "admin_stats"), cbAdminStats{}, testModeratorID, 7)
	require.NotEmpty(t, f.api.edits)
	assert.Equal(t, adminStatsText(1), f.api.edits[len(f.api.edits)-1].Text)
}

func startUpdate(from int64, arg string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: from, FirstName: "Покупатель"},
		Chat:      &tgbotapi.Chat{ID: from, Type: "private"},
		Text:      "/start " + arg,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: 6},
		},
	}}
}

func (f fixture) messagesTo(chatID int64) int {
	var n int
	for _, m := range f.api.msgs {
		if m.ChatID == chatID {
			n++
		}
	}
	return n
}

func TestHandleUpdateJoinByStartArgument(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	d, err := f.deals.Create(ctx, 100, 500, domain.CurrencyRUB, "подарок")
	require.NoError(t, err)

	f.h.HandleUpdate(ctx, startUpdate(200, d.ID))

	got, ok := f.deals.Get(d.ID)
	require.True(t, ok)
	assert.Equal(t, int64(200), got.BuyerID)

	// продавец узнаёт о покупателе
	assert.Equal(t, 1, f.messagesTo(100))
}

func TestRepeatJoinDoesNotRenotifySeller(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	d, err := f.deals.Create(ctx, 100, 500, domain.CurrencyRUB, "подарок")
	require.NoError(t, err)

	f.h.HandleUpdate(ctx, startUpdate(200, d.ID))
	require.Equal(t, 1, f.messagesTo(100))
	buyerMsgs := f.messagesTo(200)

	f.h.HandleUpdate(ctx, startUpdate(200, d.ID))

	// покупателю пришло «вы уже присоединены», продавцу ничего нового
	assert.Equal(t, 1, f.messagesTo(100))
	require.Equal(t, buyerMsgs+1, f.messagesTo(200))
	assert.Equal(t, alreadyJoinedText, f.api.msgs[len(f.api.msgs)-1].Text)
}
