package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shino972/GarantGiftsTelegramBot/internal/domain"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	_, ok := m.Current(1)
	assert.False(t, ok)

	m.Start(1, AwaitWallet{MessageID: 10})
	st, ok := m.Current(1)
	require.True(t, ok)
	assert.Equal(t, AwaitWallet{MessageID: 10}, st)

	// новый диалог молча вытесняет старый
	m.Start(1, AwaitDealAmount{MessageID: 11, Currency: domain.CurrencyTON})
	st, ok = m.Current(1)
	require.True(t, ok)
	assert.Equal(t, AwaitDealAmount{MessageID: 11, Currency: domain.CurrencyTON}, st)

	m.Clear(1)
	_, ok = m.Current(1)
	assert.False(t, ok)
}

func TestManagerIsolatesActors(t *testing.T) {
	m := NewManager()
	m.Start(1, AwaitCard{MessageID: 5})
	m.Start(2, AwaitDisputeText{MessageID: 6, DealID: "AB12345678"})

	m.Clear(1)

	_, ok := m.Current(1)
	assert.False(t, ok)
	st, ok := m.Current(2)
	require.True(t, ok)
	assert.Equal(t, AwaitDisputeText{MessageID: 6, DealID: "AB12345678"}, st)
}
