package readstore

import (
	"context"

	"tarot-sessions/internal/infra"
	"tarot-sessions/internal/infra/db"
	"tarot-sessions/internal/pkg/pgconv"
	"tarot-sessions/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findSessionByIDQuery = `
SELECT id, client_id, reader_id, deck_id, spread_name, card_count,
       position_labels, sequential, question, payment_state, status,
       created_at, updated_at
FROM sessions
WHERE id = $1`

const findSlotsBySessionIDQuery = `
SELECT position, card_id, state, revealed_at, burned_at, burned_by, burn_reason
FROM spread_card_slots
WHERE session_id = $1
ORDER BY position`

const listSessionsBase = `
SELECT id, deck_id, spread_name, card_count, payment_state, status, created_at
FROM sessions`

type SessionReadStore struct {
	db db.DBTX
}

func NewSessionReadStore(db db.DBTX) *SessionReadStore {
	return &SessionReadStore{db: db}
}

func (r *SessionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SessionRecord, error) {
	row := r.db.QueryRow(ctx, findSessionByIDQuery, id)

	var (
		record    queries.SessionRecord
		readerID  pgtype.UUID
		question  pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&record.ID, &record.ClientID, &readerID, &record.DeckID,
		&record.SpreadName, &record.CardCount, &record.PositionLabels,
		&record.Sequential, &question, &record.PaymentState, &record.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find session by ID", err)
	}
	record.ReaderID = pgconv.UUIDPtrFromPgtype(readerID)
	record.Question = pgconv.StringPtrFromPgtype(question)
	record.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	record.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	slots, err := r.findSlots(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Slots = slots

	return &record, nil
}

func (r *SessionReadStore) findSlots(ctx context.Context, sessionID uuid.UUID) ([]*queries.SlotRecord, error) {
	rows, err := r.db.Query(ctx, findSlotsBySessionIDQuery, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find session slots", err)
	}
	defer rows.Close()

	var slots []*queries.SlotRecord
	for rows.Next() {
		var (
			slot       queries.SlotRecord
			revealedAt pgtype.Timestamptz
			burnedAt   pgtype.Timestamptz
			burnedBy   pgtype.UUID
			burnReason pgtype.Text
		)
		if err := rows.Scan(
			&slot.Position, &slot.CardID, &slot.State,
			&revealedAt, &burnedAt, &burnedBy, &burnReason,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		slot.RevealedAt = pgconv.TimePtrFromPgtype(revealedAt)
		slot.BurnedAt = pgconv.TimePtrFromPgtype(burnedAt)
		slot.BurnedBy = pgconv.UUIDPtrFromPgtype(burnedBy)
		slot.BurnReason = pgconv.StringPtrFromPgtype(burnReason)
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}

	return slots, nil
}

func (r *SessionReadStore) FindByClient(ctx context.Context, clientID uuid.UUID) ([]*queries.SessionListItem, error) {
	return r.list(ctx, listSessionsBase+`
WHERE client_id = $1
ORDER BY created_at DESC, id DESC`, clientID)
}

func (r *SessionReadStore) FindByReader(ctx context.Context, readerID uuid.UUID) ([]*queries.SessionListItem, error) {
	return r.list(ctx, listSessionsBase+`
WHERE reader_id = $1
ORDER BY created_at DESC, id DESC`, readerID)
}

func (r *SessionReadStore) FindAll(ctx context.Context) ([]*queries.SessionListItem, error) {
	return r.list(ctx, listSessionsBase+`
ORDER BY created_at DESC, id DESC`)
}

func (r *SessionReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.SessionListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sessions", err)
	}
	defer rows.Close()

	result := []*queries.SessionListItem{}
	for rows.Next() {
		var (
			item      queries.SessionListItem
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.DeckID, &item.SpreadName, &item.CardCount,
			&item.PaymentState, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan session row", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate session rows", err)
	}

	return result, nil
}
