package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/deal"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

// Коды кнопок разбираются в закрытый набор типизированных событий
// на границе транспорта. Кривой код — типизированная ошибка, а не
// паника на индексе.

var errUnknownCallback = errors.New("unknown callback data")

type callbackEvent interface {
	isCallback()
}

type (
	cbBindWallet   struct{}
	cbBindCard     struct{}
	cbCreateDeal   struct{}
	cbReferralLink struct{}
	cbCommission   struct{}
	cbProfile      struct{}
	cbWithdraw     struct{}
	cbCancel       struct{}
	cbBack         struct{}

	cbSelectCurrency struct{ Currency domain.Currency }

	cbOpenDispute     struct{ DealID string }
	cbCancelDispute   struct{}
	cbCheckPayment    struct{ DealID string }
	cbPushDeal        struct{ DealID string }
	cbConfirmTransfer struct{ DealID string }

	cbConfirmWithdraw struct{ RequestID string }

	cbReplyDispute struct {
		TargetID int64
		DealID   string
	}

	cbAdminStats     struct{}
	cbAdminIncrement struct{}
	cbAdminDecrement struct{}
	cbAdminBroadcast struct{}
	cbAdminBack      struct{}
)

func (cbBindWallet) isCallback()      {}
func (cbBindCard) isCallback()        {}
func (cbCreateDeal) isCallback()      {}
func (cbReferralLink) isCallback()    {}
func (cbCommission) isCallback()      {}
func (cbProfile) isCallback()         {}
func (cbWithdraw) isCallback()        {}
func (cbCancel) isCallback()          {}
func (cbBack) isCallback()            {}
func (cbSelectCurrency) isCallback()  {}
func (cbOpenDispute) isCallback()     {}
func (cbCancelDispute) isCallback()   {}
func (cbCheckPayment) isCallback()    {}
func (cbPushDeal) isCallback()        {}
func (cbConfirmTransfer) isCallback() {}
func (cbConfirmWithdraw) isCallback() {}
func (cbReplyDispute) isCallback()    {}
func (cbAdminStats) isCallback()      {}
func (cbAdminIncrement) isCallback()  {}
func (cbAdminDecrement) isCallback()  {}
func (cbAdminBroadcast) isCallback()  {}
func (cbAdminBack) isCallback()       {}

func decodeCallback(data string) (callbackEvent, error) {
	switch data {
	case "bind_ton_wallet":
		return cbBindWallet{}, nil
	case "bind_card":
		return cbBindCard{}, nil
	case "create_deal":
		return cbCreateDeal{}, nil
	case "referral_link":
		return cbReferralLink{}, nil
	case "commission":
		return cbCommission{}, nil
	case "profile":
		return cbProfile{}, nil
	case "withdraw":
		return cbWithdraw{}, nil
	case "cancel":
		return cbCancel{}, nil
	case "back":
		return cbBack{}, nil
	case "cancel_dispute":
		return cbCancelDispute{}, nil
	case "admin_stats":
		return cbAdminStats{}, nil
	case "admin_increment":
		return cbAdminIncrement{}, nil
	case "admin_decrement":
		return cbAdminDecrement{}, nil
	case "admin_broadcast":
		return cbAdminBroadcast{}, nil
	case "admin_back":
		return cbAdminBack{}, nil
	}

	switch {
	case strings.HasPrefix(data, "currency_"):
		c := domain.Currency(strings.TrimPrefix(data, "currency_"))
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q", errUnknownCallback, data)
		}
		return cbSelectCurrency{Currency: c}, nil

	case strings.HasPrefix(data, "open_dispute_"):
		return dealEvent(data, "open_dispute_", func(id string) callbackEvent { return cbOpenDispute{DealID: id} })

	case strings.HasPrefix(data, "check_payment_"):
		return dealEvent(data, "check_payment_", func(id string) callbackEvent { return cbCheckPayment{DealID: id} })

	case strings.HasPrefix(data, "push_deal_"):
		return dealEvent(data, "push_deal_", func(id string) callbackEvent { return cbPushDeal{DealID: id} })

	case strings.HasPrefix(data, "confirm_transfer_"):
		return dealEvent(data, "confirm_transfer_", func(id string) callbackEvent { return cbConfirmTransfer{DealID: id} })

	case strings.HasPrefix(data, "confirm_withdraw_"):
		id := strings.TrimPrefix(data, "confirm_withdraw_")
		if id == "" {
			return nil, fmt.Errorf("%w: %q", errUnknownCallback, data)
		}
		return cbConfirmWithdraw{RequestID: id}, nil

	case strings.HasPrefix(data, "reply_dispute_"):
		rest := strings.TrimPrefix(data, "reply_dispute_")
		parts := strings.SplitN(rest, "_", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", errUnknownCallback, data)
		}
		target, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || target <= 0 || !deal.IDPattern.MatchString(parts[1]) {
			return nil, fmt.Errorf("%w: %q", errUnknownCallback, data)
		}
		return cbReplyDispute{TargetID: target, DealID: parts[1]}, nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownCallback, data)
}

func dealEvent(data, prefix string, mk func(id string) callbackEvent) (callbackEvent, error) {
	id := strings.TrimPrefix(data, prefix)
	if !deal.IDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", errUnknownCallback, data)
	}
	return mk(id), nil
}

// Кодировщики — единственное место, где собираются строки кнопок.

func dataOpenDispute(dealID string) string     { return "open_dispute_" + dealID }
func dataCheckPayment(dealID string) string    { return "check_payment_" + dealID }
func dataPushDeal(dealID string) string        { return "push_deal_" + dealID }
func dataConfirmTransfer(dealID string) string { return "confirm_transfer_" + dealID }
func dataConfirmWithdraw(reqID string) string  { return "confirm_withdraw_" + reqID }

func dataReplyDispute(targetID int64, dealID string) string {
	return fmt.Sprintf("reply_dispute_%d_%s", targetID, dealID)
}

func dataCurrency(c domain.Currency) string { return "currency_" + string(c) }
