package writerepo

import (
	"context"
	"time"

	"tarot-sessions/internal/domain/session"
	"tarot-sessions/internal/infra"
	"tarot-sessions/internal/infra/db"
	"tarot-sessions/internal/pkg/pgconv"
	"tarot-sessions/internal/usecase/commands"

	"github.com/google/uuid"
)

const insertSessionQuery = `
INSERT INTO sessions (
	id, client_id, reader_id, deck_id, spread_name, card_count,
	position_labels, sequential, question, payment_state, status,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

const insertSlotQuery = `
INSERT INTO spread_card_slots (session_id, position, card_id, state)
VALUES ($1, $2, $3, $4)`

const updateSlotStateQuery = `
UPDATE spread_card_slots
SET state = $1, revealed_at = $2, burned_at = $3, burned_by = $4, burn_reason = $5
WHERE session_id = $6 AND position = $7 AND state = $8`

const touchSessionQuery = `
UPDATE sessions SET updated_at = $1 WHERE id = $2`

const updatePaymentStateQuery = `
UPDATE sessions SET payment_state = $1, updated_at = $2 WHERE id = $3`

const closeSessionQuery = `
UPDATE sessions SET status = 'closed', updated_at = $1
WHERE id = $2 AND status = 'active'`

const closeInactiveQuery = `
UPDATE sessions SET status = 'closed', updated_at = now()
WHERE status = 'active' AND updated_at < $1`

type SessionRepository struct{}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, tx db.DBTX, s *session.Session, slots []*session.Slot) error {
	spread := s.Spread()
	_, err := tx.Exec(ctx, insertSessionQuery,
		s.ID(),
		s.ClientID(),
		pgconv.UUIDPtrToPgtype(s.ReaderID()),
		s.DeckID(),
		spread.Name(),
		spread.CardCount(),
		spread.Labels(),
		spread.Sequential(),
		pgconv.StringPtrToPgtype(s.Question().Ptr()),
		s.PaymentState().String(),
		s.Status().String(),
		pgconv.TimeToPgtype(s.CreatedAt()),
		pgconv.TimeToPgtype(s.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create session", err)
	}

	for _, slot := range slots {
		_, err := tx.Exec(ctx, insertSlotQuery,
			slot.SessionID(), slot.Position(), slot.CardID(), slot.State().String())
		if err != nil {
			return infra.WrapRepoErr("failed to create slot", err)
		}
	}

	return nil
}

// UpdateSlotState is the conditional write behind every reveal and burn.
// The WHERE clause keys on the expected current state; zero affected rows
// means another transition committed first.
func (r *SessionRepository) UpdateSlotState(ctx context.Context, tx db.DBTX, sessionID uuid.UUID, position int, from, to session.SlotState, meta commands.SlotStateMeta) error {
	tag, err := tx.Exec(ctx, updateSlotStateQuery,
		to.String(),
		pgconv.TimePtrToPgtype(meta.RevealedAt),
		pgconv.TimePtrToPgtype(meta.BurnedAt),
		pgconv.UUIDPtrToPgtype(meta.BurnedBy),
		pgconv.StringPtrToPgtype(meta.BurnReason),
		sessionID,
		position,
		from.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update slot state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot state changed concurrently", nil, infra.KindConflict)
	}

	now := time.Now()
	if meta.RevealedAt != nil {
		now = *meta.RevealedAt
	} else if meta.BurnedAt != nil {
		now = *meta.BurnedAt
	}
	if _, err := tx.Exec(ctx, touchSessionQuery, pgconv.TimeToPgtype(now), sessionID); err != nil {
		return infra.WrapRepoErr("failed to touch session", err)
	}

	return nil
}

func (r *SessionRepository) UpdatePaymentState(ctx context.Context, tx db.DBTX, sessionID uuid.UUID, state session.PaymentState, now time.Time) error {
	tag, err := tx.Exec(ctx, updatePaymentStateQuery,
		state.String(), pgconv.TimeToPgtype(now), sessionID)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("session not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SessionRepository) Close(ctx context.Context, tx db.DBTX, sessionID uuid.UUID, now time.Time) error {
	tag, err := tx.Exec(ctx, closeSessionQuery, pgconv.TimeToPgtype(now), sessionID)
	if err != nil {
		return infra.WrapRepoErr("failed to close session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("session already closed", nil, infra.KindConflict)
	}
	return nil
}

func (r *SessionRepository) CloseInactiveBefore(ctx context.Context, dbtx db.DBTX, cutoff time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, closeInactiveQuery, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to close inactive sessions", err)
	}
	return tag.RowsAffected(), nil
}
