package repo

import (
	"context"
	"sync"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

type WithdrawalStore interface {
	SaveWithdrawalRequest(ctx context.Context, r domain.WithdrawalRequest) error
}

type Withdrawals struct {
	mu    sync.Mutex
	byID  map[string]domain.WithdrawalRequest
	store WithdrawalStore
}

func NewWithdrawals(store WithdrawalStore, loaded []domain.WithdrawalRequest) *Withdrawals {
	byID := make(map[string]domain.WithdrawalRequest, len(loaded))
	for _, w := range loaded {
		byID[w.ID] = w
	}
	return &Withdrawals{byID: byID, store: store}
}

func (r *Withdrawals) Get(id string) (domain.WithdrawalRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	return w, ok
}

func (r *Withdrawals) Add(ctx context.Context, w domain.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.SaveWithdrawalRequest(ctx, w); err != nil {
		return err
	}
	r.byID[w.ID] = w
	return nil
}

func (r *Withdrawals) Update(ctx context.Context, id string, fn func(w *domain.WithdrawalRequest) error) (domain.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.byID[id]
	if !ok {
		return domain.WithdrawalRequest{}, domain.ErrRequestNotFound
	}
	if err := fn(&w); err != nil {
		return domain.WithdrawalRequest{}, err
	}
	if err := r.store.SaveWithdrawalRequest(ctx, w); err != nil {
		return domain.WithdrawalRequest{}, err
	}
	r.byID[id] = w
	return w, nil
}
