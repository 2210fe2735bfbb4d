package session

import (
	"errors"
	"time"

	"tarot-sessions/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentState = errors.New("invalid payment state")
	ErrSessionClosed       = errors.New("session is already closed")
)

// Session is one tarot reading: a client, an optionally assigned reader, a
// deck, and the spread the cards were dealt into. Slot state lives on the
// Slot entity; the session carries the flags that gate slot transitions.
type Session struct {
	id           uuid.UUID
	clientID     uuid.UUID
	readerID     *uuid.UUID
	deckID       string
	spread       Spread
	question     Question
	paymentState PaymentState
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewSession(
	clientID uuid.UUID,
	readerID *uuid.UUID,
	deckID string,
	spread Spread,
	question Question,
	paymentState PaymentState,
	now time.Time,
) (*Session, error) {
	if !paymentState.IsValid() {
		return nil, ErrInvalidPaymentState
	}

	return &Session{
		id:           uuid.New(),
		clientID:     clientID,
		readerID:     readerID,
		deckID:       deckID,
		spread:       spread,
		question:     question,
		paymentState: paymentState,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructSession(
	id, clientID uuid.UUID,
	readerID *uuid.UUID,
	deckID string,
	spread Spread,
	question Question,
	paymentState PaymentState,
	status Status,
	createdAt, updatedAt time.Time,
) *Session {
	return &Session{
		id:           id,
		clientID:     clientID,
		readerID:     readerID,
		deckID:       deckID,
		spread:       spread,
		question:     question,
		paymentState: paymentState,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *Session) ID() uuid.UUID              { return s.id }
func (s *Session) ClientID() uuid.UUID        { return s.clientID }
func (s *Session) ReaderID() *uuid.UUID       { return s.readerID }
func (s *Session) DeckID() string             { return s.deckID }
func (s *Session) Spread() Spread             { return s.spread }
func (s *Session) Question() Question         { return s.question }
func (s *Session) PaymentState() PaymentState { return s.paymentState }
func (s *Session) Status() Status             { return s.status }
func (s *Session) CreatedAt() time.Time       { return s.createdAt }
func (s *Session) UpdatedAt() time.Time       { return s.updatedAt }

func (s *Session) IsActive() bool {
	return s.status == StatusActive
}

func (s *Session) IsOwner(actorID uuid.UUID) bool {
	return s.clientID == actorID
}

func (s *Session) IsAssignedReader(actorID uuid.UUID) bool {
	return s.readerID != nil && *s.readerID == actorID
}

// CanView: only the owning client, the assigned reader, or an admin may see
// any session data at all.
func (s *Session) CanView(actorID uuid.UUID, role user.Role) bool {
	if role.IsAdmin() {
		return true
	}
	switch role {
	case user.RoleClient:
		return s.IsOwner(actorID)
	case user.RoleReader:
		return s.IsAssignedReader(actorID)
	default:
		return false
	}
}

// CanMutateSlots covers reveal participation; burn additionally requires
// Role.CanBurn.
func (s *Session) CanMutateSlots(actorID uuid.UUID, role user.Role) bool {
	return s.CanView(actorID, role)
}

// CanClose: sessions are ended by the assigned reader or an admin, never by
// the client.
func (s *Session) CanClose(actorID uuid.UUID, role user.Role) bool {
	if role.IsAdmin() {
		return true
	}
	return role == user.RoleReader && s.IsAssignedReader(actorID)
}
