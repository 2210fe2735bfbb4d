//go:build unit

package queries_test

import (
	"testing"
	"time"

	"tarot-sessions/internal/domain/deck"
	"tarot-sessions/internal/domain/user"
	"tarot-sessions/internal/pkg/errs"
	"tarot-sessions/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeck(t *testing.T) *deck.Deck {
	t.Helper()
	cards := []deck.Card{
		{ID: "major_arcana.00", Name: "The Fool", Suit: deck.SuitMajor, Meaning: "New beginnings"},
		{ID: "major_arcana.01", Name: "The Magician", Suit: deck.SuitMajor, Meaning: "Willpower"},
		{ID: "major_arcana.02", Name: "The High Priestess", Suit: deck.SuitMajor, Meaning: "Intuition"},
	}
	d, err := deck.NewDeck("test-deck", "Test Deck", cards)
	require.NoError(t, err)
	return d
}

func testRecord(clientID uuid.UUID, readerID *uuid.UUID) *queries.SessionRecord {
	now := time.Now()
	revealed := now.Add(-time.Minute)
	return &queries.SessionRecord{
		ID:             uuid.New(),
		ClientID:       clientID,
		ReaderID:       readerID,
		DeckID:         "test-deck",
		SpreadName:     "three-card",
		CardCount:      3,
		PositionLabels: []string{"past", "present", "future"},
		PaymentState:   "paid",
		Status:         "active",
		Slots: []*queries.SlotRecord{
			{Position: 1, CardID: "major_arcana.00", State: "revealed", RevealedAt: &revealed},
			{Position: 2, CardID: "major_arcana.01", State: "burned", BurnedAt: &now},
			{Position: 3, CardID: "major_arcana.02", State: "hidden"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRenderSessionView(t *testing.T) {
	clientID := uuid.New()
	readerID := uuid.New()
	d := testDeck(t)

	t.Run("reader never receives card data in any slot state", func(t *testing.T) {
		record := testRecord(clientID, &readerID)
		view, err := queries.RenderSessionView(record, d, readerID, user.RoleReader)
		require.NoError(t, err)
		require.Len(t, view.Slots, 3)

		for _, slot := range view.Slots {
			assert.Nil(t, slot.Card, "position %d leaked card data to reader", slot.Position)
		}
		// Position, state and labels still flow through
		assert.Equal(t, "revealed", view.Slots[0].State)
		assert.Equal(t, "burned", view.Slots[1].State)
		require.NotNil(t, view.Slots[0].Label)
		assert.Equal(t, "past", *view.Slots[0].Label)
	})

	t.Run("owning client sees full card payloads", func(t *testing.T) {
		record := testRecord(clientID, &readerID)
		view, err := queries.RenderSessionView(record, d, clientID, user.RoleClient)
		require.NoError(t, err)

		require.NotNil(t, view.Slots[0].Card)
		assert.Equal(t, "The Fool", view.Slots[0].Card.Name)
		assert.Equal(t, "New beginnings", view.Slots[0].Card.Meaning)
		require.NotNil(t, view.Slots[2].Card)
		assert.Equal(t, "major_arcana.02", view.Slots[2].Card.ID)
	})

	t.Run("admin sees any session with cards", func(t *testing.T) {
		record := testRecord(clientID, &readerID)
		view, err := queries.RenderSessionView(record, d, uuid.New(), user.RoleAdmin)
		require.NoError(t, err)
		require.NotNil(t, view.Slots[0].Card)
	})

	t.Run("stranger client gets forbidden and no data", func(t *testing.T) {
		record := testRecord(clientID, &readerID)
		view, err := queries.RenderSessionView(record, d, uuid.New(), user.RoleClient)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Nil(t, view)
	})

	t.Run("unassigned reader gets forbidden", func(t *testing.T) {
		record := testRecord(clientID, &readerID)
		view, err := queries.RenderSessionView(record, d, uuid.New(), user.RoleReader)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Nil(t, view)
	})

	t.Run("reader role on unclaimed session is forbidden", func(t *testing.T) {
		record := testRecord(clientID, nil)
		_, err := queries.RenderSessionView(record, d, readerID, user.RoleReader)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("unlabeled spread yields nil labels", func(t *testing.T) {
		record := testRecord(clientID, &readerID)
		record.PositionLabels = nil
		view, err := queries.RenderSessionView(record, d, clientID, user.RoleClient)
		require.NoError(t, err)
		assert.Nil(t, view.Slots[0].Label)
	})
}
