//go:build unit

package queries_test

import (
	"context"
	"testing"

	"tarot-sessions/internal/domain/deck"
	"tarot-sessions/internal/domain/user"
	"tarot-sessions/internal/infra"
	"tarot-sessions/internal/pkg/errs"
	"tarot-sessions/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReadStore struct {
	record *queries.SessionRecord
	err    error
}

func (s *stubReadStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.SessionRecord, error) {
	return s.record, s.err
}

func (s *stubReadStore) FindByClient(_ context.Context, _ uuid.UUID) ([]*queries.SessionListItem, error) {
	return []*queries.SessionListItem{}, nil
}

func (s *stubReadStore) FindByReader(_ context.Context, _ uuid.UUID) ([]*queries.SessionListItem, error) {
	return []*queries.SessionListItem{}, nil
}

func (s *stubReadStore) FindAll(_ context.Context) ([]*queries.SessionListItem, error) {
	return []*queries.SessionListItem{}, nil
}

type stubCatalog struct {
	deck *deck.Deck
}

func (s *stubCatalog) GetDeck(_ context.Context, _ string) (*deck.Deck, error) {
	return s.deck, nil
}

func TestSessionQueriesGetByID(t *testing.T) {
	t.Run("missing session maps to not-found sentinel", func(t *testing.T) {
		store := &stubReadStore{err: infra.WrapRepoErr("session not found", nil, infra.KindNotFound)}
		q := queries.NewSessionQueries(store, &stubCatalog{deck: testDeck(t)})

		_, err := q.GetByID(context.Background(), uuid.New(), uuid.New(), user.RoleAdmin)
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("store failure maps to database sentinel", func(t *testing.T) {
		store := &stubReadStore{err: infra.WrapRepoErr("connection reset", nil, infra.KindDBFailure)}
		q := queries.NewSessionQueries(store, &stubCatalog{deck: testDeck(t)})

		_, err := q.GetByID(context.Background(), uuid.New(), uuid.New(), user.RoleAdmin)
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})

	t.Run("existing session renders for an authorized actor", func(t *testing.T) {
		clientID := uuid.New()
		record := testRecord(clientID, nil)
		store := &stubReadStore{record: record}
		q := queries.NewSessionQueries(store, &stubCatalog{deck: testDeck(t)})

		view, err := q.GetByID(context.Background(), record.ID, clientID, user.RoleClient)
		require.NoError(t, err)
		assert.Equal(t, record.ID, view.ID)
		assert.Len(t, view.Slots, 3)
	})
}
