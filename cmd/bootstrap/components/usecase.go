package components

import (
	"tarot-sessions/internal/pkg/clock"
	"tarot-sessions/internal/pkg/config"
	"tarot-sessions/internal/usecase"
	"tarot-sessions/internal/usecase/commands"
	"tarot-sessions/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewSessionConfig,
		queries.NewSessionQueries,
		commands.NewSessionCommands,
		usecase.NewTokenValidator,
	),
)

func NewSessionConfig(cfg config.Config) config.SessionConfig {
	return cfg.Session
}
