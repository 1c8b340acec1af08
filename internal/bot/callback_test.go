package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

func TestDecodeCallback(t *testing.T) {
	tests := []struct {
		data string
		want callbackEvent
	}{
		{"bind_ton_wallet", cbBindWallet{}},
		{"bind_card", cbBindCard{}},
		{"create_deal", cbCreateDeal{}},
		{"referral_link", cbReferralLink{}},
		{"commission", cbCommission{}},
		{"profile", cbProfile{}},
		{"withdraw", cbWithdraw{}},
		{"cancel", cbCancel{}},
		{"back", cbBack{}},
		{"cancel_dispute", cbCancelDispute{}},
		{"admin_stats", cbAdminStats{}},
		{"admin_increment", cbAdminIncrement{}},
		{"admin_decrement", cbAdminDecrement{}},
		{"admin_broadcast", cbAdminBroadcast{}},
		{"admin_back", cbAdminBack{}},
		{"currency_RUB", cbSelectCurrency{Currency: domain.CurrencyRUB}},
		{"currency_TON", cbSelectCurrency{Currency: domain.CurrencyTON}},
		{"open_dispute_AB12345678", cbOpenDispute{DealID: "AB12345678"}},
		{"check_payment_XY00000001", cbCheckPayment{DealID: "XY00000001"}},
		{"push_deal_AB12345678", cbPushDeal{DealID: "AB12345678"}},
		{"confirm_transfer_AB12345678", cbConfirmTransfer{DealID: "AB12345678"}},
		{"confirm_withdraw_6b9f1c2a", cbConfirmWithdraw{RequestID: "6b9f1c2a"}},
		{"reply_dispute_42_AB12345678", cbReplyDispute{TargetID: 42, DealID: "AB12345678"}},
	}

	for _, tc := range tests {
		t.Run(tc.data, func(t *testing.T) {
			got, err := decodeCallback(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeCallbackRejectsMalformed(t *testing.T) {
	malformed := []string{
		"",
		"nonsense",
		"currency_USD",
		"open_dispute_",
		"open_dispute_ab12345678",   // строчные буквы
		"check_payment_AB1234567",   // короткий код
		"push_deal_AB123456789",     // длинный код
		"confirm_transfer_12345678", // нет букв
		"confirm_withdraw_",
		"reply_dispute_AB12345678",     // нет ID пользователя
		"reply_dispute_0_AB12345678",   // нулевой пользователь
		"reply_dispute_abc_AB12345678", // нечисловой пользователь
		"reply_dispute_42_зз12345678",
	}

	for _, data := range malformed {
		t.Run(data, func(t *testing.T) {
			_, err := decodeCallback(data)
			assert.ErrorIs(t, err, errUnknownCallback)
		})
	}
}

func TestCallbackEncodersRoundTrip(t *testing.T) {
	ev, err := decodeCallback(dataOpenDispute("AB12345678"))
	require.NoError(t, err)
	assert.Equal(t, cbOpenDispute{DealID: "AB12345678"}, ev)

	ev, err = decodeCallback(dataCheckPayment("AB12345678"))
	require.NoError(t, err)
	assert.Equal(t, cbCheckPayment{DealID: "AB12345678"}, ev)

	ev, err = decodeCallback(dataPushDeal("AB12345678"))
	require.NoError(t, err)
	assert.Equal(t, cbPushDeal{DealID: "AB12345678"}, ev)

	ev, err = decodeCallback(dataConfirmTransfer("AB12345678"))
	require.NoError(t, err)
	assert.Equal(t, cbConfirmTransfer{DealID: "AB12345678"}, ev)

	ev, err = decodeCallback(dataConfirmWithdraw("6b9f1c2a"))
	require.NoError(t, err)
	assert.Equal(t, cbConfirmWithdraw{RequestID: "6b9f1c2a"}, ev)

	ev, err = decodeCallback(dataReplyDispute(42, "AB12345678"))
	require.NoError(t, err)
	assert.Equal(t, cbReplyDispute{TargetID: 42, DealID: "AB12345678"}, ev)

	ev, err = decodeCallback(dataCurrency(domain.CurrencyTON))
	require.NoError(t, err)
	assert.Equal(t, cbSelectCurrency{Currency: domain.CurrencyTON}, ev)
}
