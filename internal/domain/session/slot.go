package session

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotNotHidden   = errors.New("slot is not hidden")
	ErrInvalidPosition = errors.New("invalid slot position")
)

// Slot is one position of a session's spread: the card dealt there and its
// reveal/burn state. Transitions are monotonic; a terminal slot never moves.
type Slot struct {
	sessionID  uuid.UUID
	position   int
	cardID     string
	state      SlotState
	revealedAt *time.Time
	burnedAt   *time.Time
	burnedBy   *uuid.UUID
	burnReason *string
}

func NewSlot(sessionID uuid.UUID, position int, cardID string) (*Slot, error) {
	if position < 1 {
		return nil, ErrInvalidPosition
	}
	return &Slot{
		sessionID: sessionID,
		position:  position,
		cardID:    cardID,
		state:     SlotHidden,
	}, nil
}

func ReconstructSlot(
	sessionID uuid.UUID,
	position int,
	cardID string,
	state SlotState,
	revealedAt, burnedAt *time.Time,
	burnedBy *uuid.UUID,
	burnReason *string,
) *Slot {
	return &Slot{
		sessionID:  sessionID,
		position:   position,
		cardID:     cardID,
		state:      state,
		revealedAt: revealedAt,
		burnedAt:   burnedAt,
		burnedBy:   burnedBy,
		burnReason: burnReason,
	}
}

func (s *Slot) SessionID() uuid.UUID   { return s.sessionID }
func (s *Slot) Position() int          { return s.position }
func (s *Slot) CardID() string         { return s.cardID }
func (s *Slot) State() SlotState       { return s.state }
func (s *Slot) RevealedAt() *time.Time { return s.revealedAt }
func (s *Slot) BurnedAt() *time.Time   { return s.burnedAt }
func (s *Slot) BurnedBy() *uuid.UUID   { return s.burnedBy }
func (s *Slot) BurnReason() *string    { return s.burnReason }

func (s *Slot) Reveal(now time.Time) error {
	if !s.state.CanTransitionTo(SlotRevealed) {
		return ErrSlotNotHidden
	}
	s.state = SlotRevealed
	s.revealedAt = &now
	return nil
}

func (s *Slot) Burn(now time.Time, actorID uuid.UUID, reason string) error {
	if !s.state.CanTransitionTo(SlotBurned) {
		return ErrSlotNotHidden
	}
	trimmed := strings.TrimSpace(reason)
	if len(trimmed) > MaxBurnReasonLength {
		return ErrBurnReasonTooLong
	}
	s.state = SlotBurned
	s.burnedAt = &now
	s.burnedBy = &actorID
	if trimmed != "" {
		s.burnReason = &trimmed
	}
	return nil
}
