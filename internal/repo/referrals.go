package repo

import (
	"context"
	"sync"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

type ReferralStore interface {
	SaveReferralLink(ctx context.Context, l domain.ReferralLink) error
}

// Referrals — код → владелец. Только добавление и обновление.
type Referrals struct {
	mu     sync.Mutex
	byCode map[string]int64
	store  ReferralStore
}

func NewReferrals(store ReferralStore, loaded []domain.ReferralLink) *Referrals {
	byCode := make(map[string]int64, len(loaded))
	for _, l := range loaded {
		byCode[l.Code] = l.AccountID
	}
	return &Referrals{byCode: byCode, store: store}
}

func (r *Referrals) Resolve(code string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byCode[code]
	return id, ok
}

func (r *Referrals) Register(ctx context.Context, code string, accountID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byCode[code]; ok && owner == accountID {
		return nil
	}
	if err := r.store.SaveReferralLink(ctx, domain.ReferralLink{Code: code, AccountID: accountID}); err != nil {
		return err
	}
	r.byCode[code] = accountID
	return nil
}
