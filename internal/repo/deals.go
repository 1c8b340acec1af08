package repo

import (
	"context"
	"sync"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

type DealStore interface {
	SaveDeal(ctx context.Context, d domain.Deal) error
}

type Deals struct {
	mu    sync.Mutex
	byID  map[string]domain.Deal
	store DealStore
}

func NewDeals(store DealStore, loaded []domain.Deal) *Deals {
	byID := make(map[string]domain.Deal, len(loaded))
	for _, d := range loaded {
		byID[d.ID] = d
	}
	return &Deals{byID: byID, store: store}
}

func (r *Deals) Get(id string) (domain.Deal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	return d, ok
}

func (r *Deals) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok
}

func (r *Deals) Create(ctx context.Context, d domain.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[d.ID]; ok {
		return domain.ErrDealIDCollision
	}
	if err := r.store.SaveDeal(ctx, d); err != nil {
		return err
	}
	r.byID[d.ID] = d
	return nil
}

// Update выполняет переход состояния под локом и сохраняет результат.
func (r *Deals) Update(ctx context.Context, id string, fn func(d *domain.Deal) error) (domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return domain.Deal{}, domain.ErrDealNotFound
	}
	if err := fn(&d); err != nil {
		return domain.Deal{}, err
	}
	if err := r.store.SaveDeal(ctx, d); err != nil {
		return domain.Deal{}, err
	}
	r.byID[id] = d
	return d, nil
}

// CompletedBySeller — завершённые сделки продавца: количество и оборот.
func (r *Deals) CompletedBySeller(sellerID int64) (int, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	var total float64
	for _, d := range r.byID {
		if d.SellerID == sellerID && d.TransferConfirmed {
			n++
			total += d.Amount
		}
	}
	return n, total
}
