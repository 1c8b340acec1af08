package deal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/moderation"
	"github.com/Shino972/GarantGiftsTelegramBot/internal/repo"
)

type dealStoreStub struct {
	saves int
	err   error
}

func (s *dealStoreStub) SaveDeal(ctx context.Context, d domain.Deal) error {
	s.saves++
	return s.err
}

const (
	sellerID    = int64(100)
	buyerID     = int64(200)
	moderatorID = int64(900)
	strangerID  = int64(300)
)

func newService(t *testing.T) (*Service, *dealStoreStub) {
	t.Helper()
	st := &dealStoreStub{}
	return NewService(repo.NewDeals(st, nil), moderation.NewGate([]int64{moderatorID})), st
}

func mustCreate(t *testing.T, s *Service) domain.Deal {
	t.Helper()
	d, err := s.Create(context.Background(), sellerID, 500, domain.CurrencyRUB, "подарок")
	require.NoError(t, err)
	return d
}

func TestCreate(t *testing.T) {
	s, st := newService(t)

	d := mustCreate(t, s)
	assert.Regexp(t, IDPattern, d.ID)
	assert.Equal(t, domain.StatusUnpaid, d.Status)
	assert.Equal(t, sellerID, d.SellerID)
	assert.Zero(t, d.BuyerID)
	assert.Zero(t, d.SellerDeals)
	assert.Equal(t, 1, st.saves)

	got, ok := s.Get(d.ID)
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestCreateValidation(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, sellerID, 299, domain.CurrencyRUB, "подарок")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = s.Create(ctx, sellerID, 0.04, domain.CurrencyTON, "подарок")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = s.Create(ctx, sellerID, 500, domain.CurrencyRUB, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyDescription)

	_, err = s.Create(ctx, sellerID, 500, "USD", "подарок")
	assert.Error(t, err)
}

func TestCreateSnapshotsSellerStats(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	first := mustCreate(t, s)
	_, _, err := s.ConfirmTransfer(ctx, first.ID)
	require.NoError(t, err)

	second := mustCreate(t, s)
	assert.Equal(t, 1, second.SellerDeals)

	// снимок первой сделки не пересчитывается задним числом
	got, _ := s.Get(first.ID)
	assert.Zero(t, got.SellerDeals)
}

func TestJoin(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	d := mustCreate(t, s)

	_, err := s.Join(ctx, d.ID, sellerID)
	assert.ErrorIs(t, err, domain.ErrSelfTrade)

	joined, err := s.Join(ctx, d.ID, buyerID)
	require.NoError(t, err)
	assert.Equal(t, buyerID, joined.BuyerID)

	_, err = s.Join(ctx, d.ID, buyerID)
	assert.ErrorIs(t, err, domain.ErrAlreadyJoined)

	_, err = s.Join(ctx, d.ID, strangerID)
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	_, err = s.Join(ctx, "ZZ00000000", buyerID)
	assert.ErrorIs(t, err, domain.ErrDealNotFound)
}

func TestClaimPaymentTransitionsOnce(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	d := mustCreate(t, s)

	got, transitioned, err := s.ClaimPayment(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, domain.StatusPending, got.Status)

	// повторное нажатие перехода не даёт
	got, transitioned, err = s.ClaimPayment(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.Equal(t, domain.StatusPending, got.Status)

	_, _, err = s.ClaimPayment(ctx, "ZZ00000000")
	assert.ErrorIs(t, err, domain.ErrDealNotFound)
}

func TestVerifyAndPush(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	d := mustCreate(t, s)

	_, err := s.VerifyAndPush(ctx, d.ID, strangerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := s.VerifyAndPush(ctx, d.ID, moderatorID)
	require.NoError(t, err)
	assert.True(t, got.Pushed)

	_, err = s.VerifyAndPush(ctx, d.ID, moderatorID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestConfirmTransfer(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	d := mustCreate(t, s)

	got, already, err := s.ConfirmTransfer(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, already)
	assert.True(t, got.TransferConfirmed)

	_, already, err = s.ConfirmTransfer(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, already)
}

func TestOpenDispute(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	d := mustCreate(t, s)
	_, err := s.Join(ctx, d.ID, buyerID)
	require.NoError(t, err)

	_, err = s.OpenDispute(ctx, d.ID, strangerID, "жалоба")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := s.OpenDispute(ctx, d.ID, buyerID, "подарок не пришёл")
	require.NoError(t, err)
	assert.True(t, got.DisputeOpen)
	assert.Equal(t, "подарок не пришёл", got.DisputeText)
	// спор живёт сбоку от статуса оплаты
	assert.Equal(t, domain.StatusUnpaid, got.Status)

	_, err = s.ReplyToDispute(ctx, d.ID, strangerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err = s.ReplyToDispute(ctx, d.ID, moderatorID)
	require.NoError(t, err)
	assert.False(t, got.DisputeOpen)
}

func TestFullLifecycle(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	d := mustCreate(t, s)
	_, err := s.Join(ctx, d.ID, buyerID)
	require.NoError(t, err)

	_, transitioned, err := s.ClaimPayment(ctx, d.ID)
	require.NoError(t, err)
	require.True(t, transitioned)

	_, err = s.VerifyAndPush(ctx, d.ID, moderatorID)
	require.NoError(t, err)

	_, already, err := s.ConfirmTransfer(ctx, d.ID)
	require.NoError(t, err)
	require.False(t, already)

	n, total := s.SellerStats(sellerID)
	assert.Equal(t, 1, n)
	assert.Equal(t, 500.0, total)
}

func TestCreateStoreFailure(t *testing.T) {
	st := &dealStoreStub{err: errors.New("db down")}
	s := NewService(repo.NewDeals(st, nil), moderation.NewGate(nil))

	_, err := s.Create(context.Background(), sellerID, 500, domain.CurrencyRUB, "подарок")
	assert.Error(t, err)
}

func TestNewDealIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, IDPattern, newDealID())
	}
}
