package deal

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/moderation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/repo"
)

// IDPattern — код сделки: 2 заглавные буквы + 8 цифр.
var IDPattern = regexp.MustCompile(`^[A-Z]{2}\d{8}$`)

const idGenAttempts = 5

// Service — движок жизненного цикла сделки:
// unpaid → pending → (пуш модератора) → передача подтверждена,
// со спором, доступным участникам из любого незавершённого состояния.
type Service struct {
	deals *repo.Deals
	gate  *moderation.Gate
}

func NewService(deals *repo.Deals, gate *moderation.Gate) *Service {
	return &Service{deals: deals, gate: gate}
}

func (s *Service) Get(dealID string) (domain.Deal, bool) {
	return s.deals.Get(dealID)
}

// Create валидирует вводные, генерирует уникальный код и сохраняет
// сделку в статусе unpaid. Счётчик сделок продавца снимается один раз
// здесь и дальше не пересчитывается.
func (s *Service) Create(ctx context.Context, sellerID int64, amount float64, currency domain.Currency, description string) (domain.Deal, error) {
	if !currency.Valid() {
		return domain.Deal{}, fmt.Errorf("deal: unknown currency %q", currency)
	}
	if amount < currency.MinAmount() {
		return domain.Deal{}, domain.ErrInvalidAmount
	}
	if strings.TrimSpace(description) == "" {
		return domain.Deal{}, domain.ErrEmptyDescription
	}

	completed, _ := s.deals.CompletedBySeller(sellerID)

	var lastErr error
	for i := 0; i < idGenAttempts; i++ {
		d := domain.Deal{
			ID:          newDealID(),
			SellerID:    sellerID,
			Amount:      amount,
			Currency:    currency,
			Description: description,
			Status:      domain.StatusUnpaid,
			SellerDeals: completed,
		}
		if err := s.deals.Create(ctx, d); err != nil {
			lastErr = err
			if err == domain.ErrDealIDCollision {
				continue
			}
			return domain.Deal{}, err
		}
		return d, nil
	}
	return domain.Deal{}, lastErr
}

// Join привязывает покупателя. За всю жизнь сделки — максимум один,
// повторный вызов того же покупателя идемпотентен.
func (s *Service) Join(ctx context.Context, dealID string, actorID int64) (domain.Deal, error) {
	return s.deals.Update(ctx, dealID, func(d *domain.Deal) error {
		if actorID == d.SellerID {
			return domain.ErrSelfTrade
		}
		if d.BuyerID != 0 {
			if actorID == d.BuyerID {
				return domain.ErrAlreadyJoined
			}
			return domain.ErrSlotTaken
		}
		d.BuyerID = actorID
		return nil
	})
}

// ClaimPayment переводит unpaid → pending. transitioned=true ровно один
// раз за переход: по нему вызывающий шлёт запрос модераторам, повторные
// нажатия запрос не дублируют.
func (s *Service) ClaimPayment(ctx context.Context, dealID string) (domain.Deal, bool, error) {
	transitioned := false
	d, err := s.deals.Update(ctx, dealID, func(d *domain.Deal) error {
		if d.Status == domain.StatusUnpaid {
			d.Status = domain.StatusPending
			transitioned = true
		}
		return nil
	})
	return d, transitioned, err
}

// VerifyAndPush — модератор подтвердил оплату, продавцу уходит пуш.
func (s *Service) VerifyAndPush(ctx context.Context, dealID string, moderatorID int64) (domain.Deal, error) {
	if !s.gate.IsModerator(moderatorID) {
		return domain.Deal{}, domain.ErrForbidden
	}
	return s.deals.Update(ctx, dealID, func(d *domain.Deal) error {
		if d.Pushed {
			return domain.ErrAlreadyProcessed
		}
		d.Pushed = true
		return nil
	})
}

// ConfirmTransfer фиксирует передачу товара. Флаг пишется сразу и
// надёжно; мягкий ответ пользователю остаётся на совести транспортного
// слоя, пока нет внешней проверки передачи.
func (s *Service) ConfirmTransfer(ctx context.Context, dealID string) (domain.Deal, bool, error) {
	already := false
	d, err := s.deals.Update(ctx, dealID, func(d *domain.Deal) error {
		if d.TransferConfirmed {
			already = true
			return nil
		}
		d.TransferConfirmed = true
		return nil
	})
	return d, already, err
}

// OpenDispute доступен только привязанным участникам сделки.
func (s *Service) OpenDispute(ctx context.Context, dealID string, actorID int64, description string) (domain.Deal, error) {
	return s.deals.Update(ctx, dealID, func(d *domain.Deal) error {
		if !d.IsParticipant(actorID) {
			return domain.ErrForbidden
		}
		d.DisputeOpen = true
		d.DisputeText = description
		return nil
	})
}

// ReplyToDispute помечает спор отвеченным. Доставка текста адресату —
// дело транспортного слоя.
func (s *Service) ReplyToDispute(ctx context.Context, dealID string, moderatorID int64) (domain.Deal, error) {
	if !s.gate.IsModerator(moderatorID) {
		return domain.Deal{}, domain.ErrForbidden
	}
	return s.deals.Update(ctx, dealID, func(d *domain.Deal) error {
		d.DisputeOpen = false
		return nil
	})
}

// SellerStats — статистика для профиля: завершённые сделки и оборот.
func (s *Service) SellerStats(sellerID int64) (int, float64) {
	return s.deals.CompletedBySeller(sellerID)
}

func newDealID() string {
	b := make([]byte, 0, 10)
	for i := 0; i < 2; i++ {
		b = append(b, byte('A'+rand.Intn(26)))
	}
	for i := 0; i < 8; i++ {
		b = append(b, byte('0'+rand.Intn(10)))
	}
	return string(b)
}
