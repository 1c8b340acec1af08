package referral

import (
	"context"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/repo"
)

// Service — реферальный учёт: код → владелец, фиксированная награда
// не больше одного раза за каждого приглашённого.
type Service struct {
	accounts *repo.Accounts
	links    *repo.Referrals
	reward   float64
}

func NewService(accounts *repo.Accounts, links *repo.Referrals, reward float64) *Service {
	return &Service{accounts: accounts, links: links, reward: reward}
}

// Register публикует код пользователя в постоянной таблице ссылок,
// чтобы его можно было разрешить и после перезапуска. Идемпотентно.
func (s *Service) Register(ctx context.Context, accountID int64) (string, error) {
	a, ok := s.accounts.Get(accountID)
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	if err := s.links.Register(ctx, a.ReferralCode, a.ID); err != nil {
		return "", err
	}
	return a.ReferralCode, nil
}

func (s *Service) Resolve(code string) (int64, bool) {
	return s.links.Resolve(code)
}

// Credit начисляет награду владельцу кода за нового приглашённого.
// Самоприглашение и повторное начисление за того же пользователя —
// no-op: credited=false, баланс не меняется.
func (s *Service) Credit(ctx context.Context, code string, referredID int64) (bool, error) {
	referrerID, ok := s.links.Resolve(code)
	if !ok {
		return false, nil
	}
	if referrerID == referredID {
		return false, nil
	}

	credited := false
	_, err := s.accounts.Update(ctx, referrerID, func(a *domain.Account) error {
		if a.HasReferral(referredID) {
			return nil
		}
		a.Referrals = append(a.Referrals, referredID)
		a.Balance += s.reward
		credited = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return credited, nil
}
