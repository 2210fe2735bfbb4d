package queries

import (
	"context"
	"time"

	"tarot-sessions/internal/domain/deck"
	"tarot-sessions/internal/domain/user"
	"tarot-sessions/internal/infra"
	"tarot-sessions/internal/pkg/errs"

	"github.com/google/uuid"
)

// SessionRecord is the canonical internal representation read from storage.
// It still carries card ids, so it must never be serialized directly; every
// outbound path goes through RenderSessionView first.
type SessionRecord struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ReaderID       *uuid.UUID
	DeckID         string
	SpreadName     string
	CardCount      int
	PositionLabels []string
	Sequential     bool
	Question       *string
	PaymentState   string
	Status         string
	Slots          []*SlotRecord
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SlotRecord struct {
	Position   int
	CardID     string
	State      string
	RevealedAt *time.Time
	BurnedAt   *time.Time
	BurnedBy   *uuid.UUID
	BurnReason *string
}

func (r *SessionRecord) Slot(position int) *SlotRecord {
	for _, s := range r.Slots {
		if s.Position == position {
			return s
		}
	}
	return nil
}

// Read models (DTO for read side)
type SessionView struct {
	ID           uuid.UUID   `json:"id"`
	ClientID     uuid.UUID   `json:"client_id"`
	ReaderID     *uuid.UUID  `json:"reader_id,omitempty"`
	DeckID       string      `json:"deck_id"`
	SpreadName   string      `json:"spread_name"`
	CardCount    int         `json:"card_count"`
	Sequential   bool        `json:"sequential"`
	Question     *string     `json:"question,omitempty"`
	PaymentState string      `json:"payment_state"`
	Status       string      `json:"status"`
	Slots        []*SlotView `json:"slots"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type SlotView struct {
	Position   int        `json:"position"`
	Label      *string    `json:"label,omitempty"`
	State      string     `json:"state"`
	Card       *CardView  `json:"card"`
	RevealedAt *time.Time `json:"revealed_at,omitempty"`
	BurnedAt   *time.Time `json:"burned_at,omitempty"`
	BurnReason *string    `json:"burn_reason,omitempty"`
}

type CardView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Suit     string `json:"suit"`
	Meaning  string `json:"meaning"`
	ImageURL string `json:"image_url"`
}

type SessionListItem struct {
	ID           uuid.UUID `json:"id"`
	DeckID       string    `json:"deck_id"`
	SpreadName   string    `json:"spread_name"`
	CardCount    int       `json:"card_count"`
	PaymentState string    `json:"payment_state"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole user.Role) (*SessionView, error)
	ListForActor(ctx context.Context, actorID uuid.UUID, actorRole user.Role) ([]*SessionListItem, error)
}

type SessionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SessionRecord, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]*SessionListItem, error)
	FindByReader(ctx context.Context, readerID uuid.UUID) ([]*SessionListItem, error)
	FindAll(ctx context.Context) ([]*SessionListItem, error)
}

type DeckCatalog interface {
	GetDeck(ctx context.Context, deckID string) (*deck.Deck, error)
}

type sessionQueriesImpl struct {
	store   SessionReadStore
	catalog DeckCatalog
}

func NewSessionQueries(store SessionReadStore, catalog DeckCatalog) SessionQueries {
	return &sessionQueriesImpl{
		store:   store,
		catalog: catalog,
	}
}

func (q *sessionQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole user.Role) (*SessionView, error) {
	record, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSessionNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	d, err := q.catalog.GetDeck(ctx, record.DeckID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDeckNotFound)
	}

	return RenderSessionView(record, d, actorID, actorRole)
}

// List items never contain card data, so a single store-scoped query per
// role suffices; the scoping lives in SQL as well so a filter bug cannot
// leak another user's rows.
func (q *sessionQueriesImpl) ListForActor(ctx context.Context, actorID uuid.UUID, actorRole user.Role) ([]*SessionListItem, error) {
	switch actorRole {
	case user.RoleClient:
		return q.store.FindByClient(ctx, actorID)
	case user.RoleReader:
		return q.store.FindByReader(ctx, actorID)
	case user.RoleAdmin:
		return q.store.FindAll(ctx)
	default:
		return nil, errs.ErrForbidden
	}
}
