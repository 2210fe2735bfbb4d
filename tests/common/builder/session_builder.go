//go:build unit || e2e

package builder

import (
	"time"

	reqdto "tarot-sessions/internal/handler/dto/request"
	"tarot-sessions/internal/usecase/queries"

	"github.com/google/uuid"
)

type SessionBuilder struct {
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
	SlotStates     []string
	CreatedAt      time.Time
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		ID:           uuid.New(),
		ClientID:     uuid.New(),
		DeckID:       "rider-waite",
		SpreadName:   "three-card",
		CardCount:    3,
		PaymentState: "unpaid",
		Status:       "active",
		SlotStates:   []string{"hidden", "hidden", "hidden"},
		CreatedAt:    time.Now(),
	}
}

func (b *SessionBuilder) WithClientID(id uuid.UUID) *SessionBuilder {
	b.ClientID = id
	return b
}

func (b *SessionBuilder) WithReaderID(id uuid.UUID) *SessionBuilder {
	b.ReaderID = &id
	return b
}

func (b *SessionBuilder) WithPaymentState(state string) *SessionBuilder {
	b.PaymentState = state
	return b
}

func (b *SessionBuilder) WithStatus(status string) *SessionBuilder {
	b.Status = status
	return b
}

func (b *SessionBuilder) WithSequential() *SessionBuilder {
	b.Sequential = true
	return b
}

func (b *SessionBuilder) WithSlotStates(states ...string) *SessionBuilder {
	b.SlotStates = states
	b.CardCount = len(states)
	return b
}

func (b *SessionBuilder) WithQuestion(q string) *SessionBuilder {
	b.Question = &q
	return b
}

// BuildRecord produces the canonical storage representation with cards
// dealt in catalog order.
func (b *SessionBuilder) BuildRecord() *queries.SessionRecord {
	cardIDs := []string{
		"major_arcana.00", "major_arcana.01", "major_arcana.02",
		"major_arcana.03", "major_arcana.04", "major_arcana.05",
	}

	slots := make([]*queries.SlotRecord, len(b.SlotStates))
	for i, state := range b.SlotStates {
		slot := &queries.SlotRecord{
			Position: i + 1,
			CardID:   cardIDs[i%len(cardIDs)],
			State:    state,
		}
		now := b.CreatedAt
		switch state {
		case "revealed":
			slot.RevealedAt = &now
		case "burned":
			slot.BurnedAt = &now
			by := b.ClientID
			if b.ReaderID != nil {
				by = *b.ReaderID
			}
			slot.BurnedBy = &by
		}
		slots[i] = slot
	}

	return &queries.SessionRecord{
		ID:             b.ID,
		ClientID:       b.ClientID,
		ReaderID:       b.ReaderID,
		DeckID:         b.DeckID,
		SpreadName:     b.SpreadName,
		CardCount:      b.CardCount,
		PositionLabels: b.PositionLabels,
		Sequential:     b.Sequential,
		Question:       b.Question,
		PaymentState:   b.PaymentState,
		Status:         b.Status,
		Slots:          slots,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
}

func (b *SessionBuilder) BuildView() *queries.SessionView {
	slots := make([]*queries.SlotView, len(b.SlotStates))
	for i, state := range b.SlotStates {
		slots[i] = &queries.SlotView{
			Position: i + 1,
			State:    state,
		}
	}

	return &queries.SessionView{
		ID:           b.ID,
		ClientID:     b.ClientID,
		ReaderID:     b.ReaderID,
		DeckID:       b.DeckID,
		SpreadName:   b.SpreadName,
		CardCount:    b.CardCount,
		Sequential:   b.Sequential,
		Question:     b.Question,
		PaymentState: b.PaymentState,
		Status:       b.Status,
		Slots:        slots,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}
}

func (b *SessionBuilder) BuildCreateRequestDTO() reqdto.CreateSessionRequest {
	question := ""
	if b.Question != nil {
		question = *b.Question
	}
	return reqdto.CreateSessionRequest{
		ClientID:       nil,
		ReaderID:       b.ReaderID,
		DeckID:         b.DeckID,
		CardCount:      b.CardCount,
		SpreadName:     b.SpreadName,
		PositionLabels: b.PositionLabels,
		Sequential:     b.Sequential,
		Question:       question,
		PaymentState:   b.PaymentState,
	}
}

func (b *SessionBuilder) BuildListItem() *queries.SessionListItem {
	return &queries.SessionListItem{
		ID:           b.ID,
		DeckID:       b.DeckID,
		SpreadName:   b.SpreadName,
		CardCount:    b.CardCount,
		PaymentState: b.PaymentState,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
	}
}
