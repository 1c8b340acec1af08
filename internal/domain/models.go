package domain

import "time"

type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyTON Currency = "TON"
)

// MinAmount возвращает минимальную сумму сделки для валюты.
func (c Currency) MinAmount() float64 {
	switch c {
	case CurrencyRUB:
		return 300
	case CurrencyTON:
		return 0.05
	}
	return 0
}

func (c Currency) Valid() bool {
	return c == CurrencyRUB || c == CurrencyTON
}

type DealStatus string

const (
	StatusUnpaid  DealStatus = "unpaid"
	StatusPending DealStatus = "pending"
)

type Account struct {
	ID           int64
	Balance      float64
	Wallet       string // пусто = не привязан
	Card         string
	ReferralCode string
	Referrals    []int64
}

func (a Account) HasPayoutDestination() bool {
	return a.Wallet != "" || a.Card != ""
}

func (a Account) HasReferral(id int64) bool {
	for _, r := range a.Referrals {
		if r == id {
			return true
		}
	}
	return false
}

type Deal struct {
	ID                string // формат: 2 буквы + 8 цифр
	SellerID          int64
	BuyerID           int64 // 0 = покупатель ещё не присоединился
	Amount            float64
	Currency          Currency
	Description       string
	Status            DealStatus
	Pushed            bool
	TransferConfirmed bool
	DisputeOpen       bool
	DisputeText       string
	SellerDeals       int // снимок завершённых сделок продавца на момент создания
}

func (d Deal) IsParticipant(id int64) bool {
	return id == d.SellerID || (d.BuyerID != 0 && id == d.BuyerID)
}

type WithdrawalRequest struct {
	ID        string
	AccountID int64
	Amount    float64
	Method    string
	Details   string
	Completed bool
	MessageID int // сообщение модераторам, редактируется при подтверждении
}

const (
	WithdrawMethodWallet = "TON Кошелек"
	WithdrawMethodCard   = "Карта"
)

type ReferralLink struct {
	Code      string
	AccountID int64
}

// Adjustment — ручная корректировка баланса модератором.
// Отдельная запись, а не псевдо-сделка: на статистику продавца не влияет.
type Adjustment struct {
	ID        string
	AccountID int64
	Amount    float64 // со знаком
	Note      string
	CreatedAt time.Time
}
