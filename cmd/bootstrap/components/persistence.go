package components

import (
	"tarot-sessions/internal/infra/audit"
	"tarot-sessions/internal/infra/db"
	"tarot-sessions/internal/infra/readstore"
	"tarot-sessions/internal/infra/writerepo"
	"tarot-sessions/internal/usecase/commands"
	"tarot-sessions/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			readstore.NewSessionReadStore,
			fx.As(new(queries.SessionReadStore)),
		),
		fx.Annotate(
			writerepo.NewSessionRepository,
			fx.As(new(commands.SessionRepository)),
		),
		fx.Annotate(
			audit.NewPostgresAuditSink,
			fx.As(new(commands.AuditSink)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
