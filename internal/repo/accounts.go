package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

type AccountStore interface {
	SaveAccount(ctx context.Context, a domain.Account) error
}

// Accounts держит всех пользователей в памяти, запись сквозная.
// Мутации выполняются и сохраняются под одним локом: проверка, изменение
// и запись в хранилище — одна критическая секция.
type Accounts struct {
	mu    sync.Mutex
	byID  map[int64]domain.Account
	store AccountStore
}

func NewAccounts(store AccountStore, loaded []domain.Account) *Accounts {
	byID := make(map[int64]domain.Account, len(loaded))
	for _, a := range loaded {
		byID[a.ID] = a
	}
	return &Accounts{byID: byID, store: store}
}

func (r *Accounts) Get(id int64) (domain.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	return a, ok
}

// GetOrCreate регистрирует пользователя при первом контакте.
func (r *Accounts) GetOrCreate(ctx context.Context, id int64) (domain.Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.byID[id]; ok {
		return a, false, nil
	}

	a := domain.Account{
		ID:           id,
		ReferralCode: uuid.NewString()[:8],
	}
	if err := r.store.SaveAccount(ctx, a); err != nil {
		return domain.Account{}, false, err
	}
	r.byID[id] = a
	return a, true, nil
}

// Update выполняет fn над аккаунтом под локом и сохраняет результат.
// Если fn вернула ошибку — ничего не меняется и не пишется.
func (r *Accounts) Update(ctx context.Context, id int64, fn func(a *domain.Account) error) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if err := fn(&a); err != nil {
		return domain.Account{}, err
	}
	if err := r.store.SaveAccount(ctx, a); err != nil {
		return domain.Account{}, err
	}
	r.byID[id] = a
	return a, nil
}

func (r *Accounts) IDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	return ids
}

func (r *Accounts) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
