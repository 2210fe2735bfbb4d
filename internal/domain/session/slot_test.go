//go:build unit

package session_test

import (
	"strings"
	"testing"
	"time"

	"tarot-sessions/internal/domain/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHiddenSlot(t *testing.T) *session.Slot {
	t.Helper()
	slot, err := session.NewSlot(uuid.New(), 1, "major_arcana.00")
	require.NoError(t, err)
	return slot
}

func TestSlotTransitions(t *testing.T) {
	now := time.Now()

	t.Run("hidden to revealed", func(t *testing.T) {
		slot := newHiddenSlot(t)
		require.NoError(t, slot.Reveal(now))

		assert.Equal(t, session.SlotRevealed, slot.State())
		require.NotNil(t, slot.RevealedAt())
		assert.Equal(t, now, *slot.RevealedAt())
	})

	t.Run("hidden to burned records actor and reason", func(t *testing.T) {
		slot := newHiddenSlot(t)
		actor := uuid.New()
		require.NoError(t, slot.Burn(now, actor, "  card damaged  "))

		assert.Equal(t, session.SlotBurned, slot.State())
		require.NotNil(t, slot.BurnedBy())
		assert.Equal(t, actor, *slot.BurnedBy())
		require.NotNil(t, slot.BurnReason())
		assert.Equal(t, "card damaged", *slot.BurnReason())
	})

	t.Run("burn without reason leaves reason nil", func(t *testing.T) {
		slot := newHiddenSlot(t)
		require.NoError(t, slot.Burn(now, uuid.New(), ""))
		assert.Nil(t, slot.BurnReason())
	})

	t.Run("revealed slot cannot be burned", func(t *testing.T) {
		slot := newHiddenSlot(t)
		require.NoError(t, slot.Reveal(now))
		assert.ErrorIs(t, slot.Burn(now, uuid.New(), "too late"), session.ErrSlotNotHidden)
		assert.Equal(t, session.SlotRevealed, slot.State())
	})

	t.Run("burned slot cannot be revealed", func(t *testing.T) {
		slot := newHiddenSlot(t)
		require.NoError(t, slot.Burn(now, uuid.New(), ""))
		assert.ErrorIs(t, slot.Reveal(now), session.ErrSlotNotHidden)
		assert.Equal(t, session.SlotBurned, slot.State())
	})

	t.Run("double reveal is rejected deterministically", func(t *testing.T) {
		slot := newHiddenSlot(t)
		require.NoError(t, slot.Reveal(now))
		assert.ErrorIs(t, slot.Reveal(now), session.ErrSlotNotHidden)
	})

	t.Run("over-length burn reason is rejected before transition", func(t *testing.T) {
		slot := newHiddenSlot(t)
		err := slot.Burn(now, uuid.New(), strings.Repeat("r", session.MaxBurnReasonLength+1))
		assert.ErrorIs(t, err, session.ErrBurnReasonTooLong)
		assert.Equal(t, session.SlotHidden, slot.State())
	})

	t.Run("position must be positive", func(t *testing.T) {
		_, err := session.NewSlot(uuid.New(), 0, "major_arcana.01")
		assert.ErrorIs(t, err, session.ErrInvalidPosition)
	})
}

func TestSlotStateRules(t *testing.T) {
	assert.True(t, session.SlotHidden.CanTransitionTo(session.SlotRevealed))
	assert.True(t, session.SlotHidden.CanTransitionTo(session.SlotBurned))
	assert.False(t, session.SlotRevealed.CanTransitionTo(session.SlotBurned))
	assert.False(t, session.SlotRevealed.CanTransitionTo(session.SlotHidden))
	assert.False(t, session.SlotBurned.CanTransitionTo(session.SlotRevealed))
	assert.False(t, session.SlotHidden.IsTerminal())
	assert.True(t, session.SlotRevealed.IsTerminal())
	assert.True(t, session.SlotBurned.IsTerminal())
}
