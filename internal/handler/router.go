package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tarot-sessions/internal/domain/user"
	"tarot-sessions/internal/handler/api"
	"tarot-sessions/internal/handler/middleware"
	"tarot-sessions/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, sessionHandler *api.SessionHandler, deckHandler *api.DeckHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, sessionHandler, deckHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, sessionHandler *api.SessionHandler, deckHandler *api.DeckHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		decks := apiGroup.Group("/decks")
		decks.Use(authMiddleware.RequireAuth())
		{
			addRoutes(decks, []route{
				{Method: http.MethodGet, Path: "", Handler: deckHandler.ListDecks},
				{Method: http.MethodGet, Path: "/:id", Handler: deckHandler.GetDeck},
			})
		}

		sessions := apiGroup.Group("/sessions")
		sessions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "", Handler: sessionHandler.CreateSession},
				{Method: http.MethodGet, Path: "", Handler: sessionHandler.ListSessions},
				{Method: http.MethodGet, Path: "/:id", Handler: sessionHandler.GetSession},
				{Method: http.MethodPost, Path: "/:id/slots/:position/reveal", Handler: sessionHandler.RevealCard},
				{Method: http.MethodPost, Path: "/:id/slots/:position/burn", Handler: sessionHandler.BurnCard,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleReader, user.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/:id/close", Handler: sessionHandler.CloseSession,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleReader, user.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/:id/payment-state", Handler: sessionHandler.SetPaymentState,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
