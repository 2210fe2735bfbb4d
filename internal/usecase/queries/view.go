package queries

import (
	"tarot-sessions/internal/domain/deck"
	"tarot-sessions/internal/domain/user"
	"tarot-sessions/internal/pkg/errs"

	"github.com/google/uuid"
)

// RenderSessionView is the single place where role decides what a caller
// sees. It is pure: a record plus a deck in, a response-safe view out.
//
// The reader rule is a hard security invariant, not presentation: a reader
// response never contains card identity or content for any slot, in any
// state. Clients see cards only on their own sessions; admins on any.
func RenderSessionView(record *SessionRecord, d *deck.Deck, actorID uuid.UUID, actorRole user.Role) (*SessionView, error) {
	if !canViewRecord(record, actorID, actorRole) {
		return nil, errs.ErrForbidden
	}

	includeCards := actorRole != user.RoleReader

	slots := make([]*SlotView, len(record.Slots))
	for i, slot := range record.Slots {
		sv := &SlotView{
			Position:   slot.Position,
			Label:      positionLabel(record.PositionLabels, slot.Position),
			State:      slot.State,
			RevealedAt: slot.RevealedAt,
			BurnedAt:   slot.BurnedAt,
			BurnReason: slot.BurnReason,
		}

		if includeCards {
			card, err := d.Card(slot.CardID)
			if err != nil {
				return nil, errs.Wrap(err, "session slot references unknown card")
			}
			sv.Card = &CardView{
				ID:       card.ID,
				Name:     card.Name,
				Suit:     string(card.Suit),
				Meaning:  card.Meaning,
				ImageURL: card.ImageURL,
			}
		}

		slots[i] = sv
	}

	return &SessionView{
		ID:           record.ID,
		ClientID:     record.ClientID,
		ReaderID:     record.ReaderID,
		DeckID:       record.DeckID,
		SpreadName:   record.SpreadName,
		CardCount:    record.CardCount,
		Sequential:   record.Sequential,
		Question:     record.Question,
		PaymentState: record.PaymentState,
		Status:       record.Status,
		Slots:        slots,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}, nil
}

func canViewRecord(record *SessionRecord, actorID uuid.UUID, actorRole user.Role) bool {
	switch actorRole {
	case user.RoleAdmin:
		return true
	case user.RoleClient:
		return record.ClientID == actorID
	case user.RoleReader:
		return record.ReaderID != nil && *record.ReaderID == actorID
	default:
		return false
	}
}

func positionLabel(labels []string, position int) *string {
	if position < 1 || position > len(labels) {
		return nil
	}
	if labels[position-1] == "" {
		return nil
	}
	return &labels[position-1]
}
