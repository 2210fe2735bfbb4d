package audit

import (
	"context"

	"tarot-sessions/internal/infra"
	"tarot-sessions/internal/infra/db"
	"tarot-sessions/internal/pkg/pgconv"
	"tarot-sessions/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertAuditEventQuery = `
INSERT INTO audit_events (
	id, session_id, position, actor_id, actor_role, kind,
	old_state, new_state, reason, occurred_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// PostgresAuditSink appends immutable audit rows outside the transition
// transaction. Rows are never updated or deleted.
type PostgresAuditSink struct {
	db db.DBTX
}

func NewPostgresAuditSink(db db.DBTX) *PostgresAuditSink {
	return &PostgresAuditSink{db: db}
}

func (s *PostgresAuditSink) Emit(ctx context.Context, event commands.AuditEvent) error {
	var position pgtype.Int4
	if event.Position != nil {
		position = pgtype.Int4{Int32: int32(*event.Position), Valid: true}
	}

	_, err := s.db.Exec(ctx, insertAuditEventQuery,
		uuid.New(),
		event.SessionID,
		position,
		event.ActorID,
		string(event.ActorRole),
		string(event.Kind),
		pgconv.StringToPgtype(event.OldState),
		pgconv.StringToPgtype(event.NewState),
		pgconv.StringPtrToPgtype(event.Reason),
		pgconv.TimeToPgtype(event.At),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert audit event", err)
	}
	return nil
}
