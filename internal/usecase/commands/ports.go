package commands

import (
	"context"
	"time"

	"tarot-sessions/internal/domain/deck"
	"tarot-sessions/internal/domain/session"
	"tarot-sessions/internal/domain/user"
	"tarot-sessions/internal/infra/db"

	"github.com/google/uuid"
)

// SessionRepository is the only write path for session and slot rows.
// UpdateSlotState must be a conditional write keyed on the current state so
// racing transitions resolve to exactly one winner.
type SessionRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *session.Session, slots []*session.Slot) error
	UpdateSlotState(ctx context.Context, tx db.DBTX, sessionID uuid.UUID, position int, from, to session.SlotState, meta SlotStateMeta) error
	UpdatePaymentState(ctx context.Context, tx db.DBTX, sessionID uuid.UUID, state session.PaymentState, now time.Time) error
	Close(ctx context.Context, tx db.DBTX, sessionID uuid.UUID, now time.Time) error
	CloseInactiveBefore(ctx context.Context, dbtx db.DBTX, cutoff time.Time) (int64, error)
}

type SlotStateMeta struct {
	RevealedAt *time.Time
	BurnedAt   *time.Time
	BurnedBy   *uuid.UUID
	BurnReason *string
}

type DeckCatalog interface {
	GetDeck(ctx context.Context, deckID string) (*deck.Deck, error)
}

type AuditEventKind string

const (
	AuditSessionCreated      AuditEventKind = "session_created"
	AuditCardRevealed        AuditEventKind = "card_revealed"
	AuditCardBurned          AuditEventKind = "card_burned"
	AuditPaymentStateChanged AuditEventKind = "payment_state_changed"
	AuditSessionClosed       AuditEventKind = "session_closed"
)

type AuditEvent struct {
	SessionID uuid.UUID
	Position  *int
	ActorID   uuid.UUID
	ActorRole user.Role
	Kind      AuditEventKind
	OldState  string
	NewState  string
	Reason    *string
	At        time.Time
}

// AuditSink delivery is best-effort: callers log failures and never roll
// back the transition the event describes.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent) error
}
