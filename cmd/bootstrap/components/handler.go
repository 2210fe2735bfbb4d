package components

import (
	"tarot-sessions/internal/handler"
	"tarot-sessions/internal/handler/api"
	"tarot-sessions/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewDeckHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
