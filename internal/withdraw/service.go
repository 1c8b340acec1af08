package withdraw

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/moderation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/repo"
)

// Service — вывод накопленного баланса через ручное подтверждение
// модератором.
type Service struct {
	accounts *repo.Accounts
	requests *repo.Withdrawals
	gate     *moderation.Gate
	min      float64
}

func NewService(accounts *repo.Accounts, requests *repo.Withdrawals, gate *moderation.Gate, minWithdrawal float64) *Service {
	return &Service{accounts: accounts, requests: requests, gate: gate, min: minWithdrawal}
}

func (s *Service) Get(requestID string) (domain.WithdrawalRequest, bool) {
	return s.requests.Get(requestID)
}

// Submit снимает весь баланс в заявку. Проверки и обнуление идут под
// локом аккаунта, поэтому из двух одновременных запросов баланс заберёт
// максимум один — второй увидит ноль и BelowMinimum.
// Метод выплаты: кошелёк приоритетнее карты.
func (s *Service) Submit(ctx context.Context, accountID int64) (domain.WithdrawalRequest, error) {
	var snapshot domain.Account
	_, err := s.accounts.Update(ctx, accountID, func(a *domain.Account) error {
		if !a.HasPayoutDestination() {
			return domain.ErrNoPayoutDestination
		}
		if a.Balance < s.min {
			return domain.ErrBelowMinimum
		}
		snapshot = *a
		a.Balance = 0 // средства «в пути», недоступны для повторного вывода
		return nil
	})
	if err != nil {
		return domain.WithdrawalRequest{}, err
	}

	req := domain.WithdrawalRequest{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Amount:    snapshot.Balance,
		Method:    domain.WithdrawMethodWallet,
		Details:   snapshot.Wallet,
	}
	if snapshot.Wallet == "" {
		req.Method = domain.WithdrawMethodCard
		req.Details = snapshot.Card
	}

	if err := s.requests.Add(ctx, req); err != nil {
		// заявка не записалась, возвращаем снятую сумму на баланс
		if _, rerr := s.accounts.Update(ctx, accountID, func(a *domain.Account) error {
			a.Balance += snapshot.Balance
			return nil
		}); rerr != nil {
			return domain.WithdrawalRequest{}, fmt.Errorf("withdraw: save request: %w (restore balance: %v)", err, rerr)
		}
		return domain.WithdrawalRequest{}, err
	}
	return req, nil
}

// AttachMessage запоминает сообщение модераторам, чтобы отредактировать
// его при подтверждении.
func (s *Service) AttachMessage(ctx context.Context, requestID string, messageID int) error {
	_, err := s.requests.Update(ctx, requestID, func(w *domain.WithdrawalRequest) error {
		w.MessageID = messageID
		return nil
	})
	return err
}

// Confirm помечает заявку выполненной. Повторное подтверждение —
// идемпотентный отказ AlreadyCompleted, без повторного уведомления.
func (s *Service) Confirm(ctx context.Context, requestID string, moderatorID int64) (domain.WithdrawalRequest, error) {
	if !s.gate.IsModerator(moderatorID) {
		return domain.WithdrawalRequest{}, domain.ErrForbidden
	}
	return s.requests.Update(ctx, requestID, func(w *domain.WithdrawalRequest) error {
		if w.Completed {
			return domain.ErrAlreadyCompleted
		}
		w.Completed = true
		return nil
	})
}
