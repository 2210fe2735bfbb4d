package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"tarot-sessions/internal/pkg/config"
	"tarot-sessions/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper closes sessions idle past the inactivity timeout on a fixed
// interval. 停止時はfxのライフサイクルでティッカーを終了する。
func StartSweeper(lc fx.Lifecycle, cfg config.Config, sessionCommands commands.SessionCommands, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Session.SweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						closed, err := sessionCommands.CloseInactive(ctx)
						if err != nil {
							logger.Warn("inactive session sweep failed", "error", err.Error())
							continue
						}
						if closed > 0 {
							logger.Info("closed inactive sessions", "count", closed)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
