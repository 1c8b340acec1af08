package conversation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

var (
	ErrInvalidWallet      = errors.New("неверный формат TON-адреса")
	ErrInvalidCard        = errors.New("неверный формат карты")
	ErrInvalidAmount      = errors.New("неверная сумма")
	ErrEmptyDescription   = errors.New("пустое описание")
	ErrInvalidAccountID   = errors.New("неверный ID пользователя")
	ErrInvalidAdjustValue = errors.New("неверная сумма корректировки")
)

const (
	walletPrefix = "UQ"
	walletLen    = 48
	cardMinLen   = 12
	cardMaxLen   = 19
)

func ValidateWalletAddress(s string) error {
	if !strings.HasPrefix(s, walletPrefix) || len(s) != walletLen {
		return ErrInvalidWallet
	}
	return nil
}

func ValidateCardNumber(s string) error {
	if len(s) < cardMinLen || len(s) > cardMaxLen {
		return ErrInvalidCard
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ErrInvalidCard
		}
	}
	return nil
}

// ParseAmount принимает десятичную сумму с точкой или запятой
// и проверяет её против минимума валюты.
func ParseAmount(s string, c domain.Currency) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if amount < c.MinAmount() {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

func ValidateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyDescription
	}
	return nil
}

func ParseAccountID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidAccountID
	}
	return id, nil
}

// ParseAdjustment — сумма ручной корректировки, знак задаётся потоком.
func ParseAdjustment(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidAdjustValue
	}
	return v, nil
}
