//go:build unit

package deck_test

import (
	"fmt"
	"testing"

	"tarot-sessions/internal/domain/deck"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeck(t *testing.T, size int) *deck.Deck {
	t.Helper()

	cards := make([]deck.Card, size)
	for i := range size {
		cards[i] = deck.Card{
			ID:   fmt.Sprintf("major_arcana.%02d", i),
			Name: fmt.Sprintf("Card %d", i),
			Suit: deck.SuitMajor,
		}
	}
	d, err := deck.NewDeck("test-deck", "Test Deck", cards)
	require.NoError(t, err)
	return d
}

func TestNewDeck(t *testing.T) {
	t.Run("rejects duplicate card ids", func(t *testing.T) {
		cards := []deck.Card{
			{ID: "major_arcana.00", Name: "The Fool", Suit: deck.SuitMajor},
			{ID: "major_arcana.00", Name: "The Fool Again", Suit: deck.SuitMajor},
		}
		_, err := deck.NewDeck("dup", "Dup", cards)
		assert.ErrorIs(t, err, deck.ErrDuplicateCard)
	})

	t.Run("rejects empty deck", func(t *testing.T) {
		_, err := deck.NewDeck("empty", "Empty", nil)
		assert.ErrorIs(t, err, deck.ErrNoCards)
	})

	t.Run("card lookup", func(t *testing.T) {
		d := newTestDeck(t, 5)
		c, err := d.Card("major_arcana.03")
		require.NoError(t, err)
		assert.Equal(t, "Card 3", c.Name)

		_, err = d.Card("minor_arcana.wands.ace")
		assert.ErrorIs(t, err, deck.ErrCardNotInDeck)
	})
}

func TestDraw(t *testing.T) {
	d := newTestDeck(t, 78)

	t.Run("assigns unique cards to sequential positions", func(t *testing.T) {
		assignments, err := deck.Draw(d, 10)
		require.NoError(t, err)
		require.Len(t, assignments, 10)

		seen := make(map[string]bool, len(assignments))
		for i, a := range assignments {
			assert.Equal(t, i+1, a.Position)
			assert.False(t, seen[a.CardID], "card %s assigned twice", a.CardID)
			seen[a.CardID] = true

			_, err := d.Card(a.CardID)
			assert.NoError(t, err, "drawn card must belong to the deck")
		}
	})

	t.Run("full deck draw is a permutation", func(t *testing.T) {
		assignments, err := deck.Draw(d, 78)
		require.NoError(t, err)

		seen := make(map[string]bool, 78)
		for _, a := range assignments {
			seen[a.CardID] = true
		}
		assert.Len(t, seen, 78)
	})

	t.Run("rejects out-of-range counts", func(t *testing.T) {
		_, err := deck.Draw(d, 0)
		assert.ErrorIs(t, err, deck.ErrInsufficientCards)

		_, err = deck.Draw(d, 79)
		assert.ErrorIs(t, err, deck.ErrInsufficientCards)
	})

	t.Run("draw does not mutate the deck order", func(t *testing.T) {
		before := d.CardIDs()
		_, err := deck.Draw(d, 78)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(before, d.CardIDs()))
	})

	// With 78! orderings two identical full shuffles indicate a broken
	// entropy source, not bad luck.
	t.Run("consecutive shuffles differ", func(t *testing.T) {
		first, err := deck.Draw(d, 78)
		require.NoError(t, err)
		second, err := deck.Draw(d, 78)
		require.NoError(t, err)
		assert.NotEmpty(t, cmp.Diff(first, second))
	})
}
