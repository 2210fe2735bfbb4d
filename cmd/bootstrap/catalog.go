package bootstrap

import (
	"tarot-sessions/internal/infra/deckcatalog"
	"tarot-sessions/internal/pkg/config"
	"tarot-sessions/internal/usecase/commands"
	"tarot-sessions/internal/usecase/queries"

	"go.uber.org/fx"
)

var CatalogModule = fx.Module("catalog",
	fx.Provide(
		NewDeckCatalog,
		func(c *deckcatalog.Catalog) commands.DeckCatalog { return c },
		func(c *deckcatalog.Catalog) queries.DeckCatalog { return c },
	),
)

func NewDeckCatalog(cfg config.Config) (*deckcatalog.Catalog, error) {
	return deckcatalog.NewCatalog(cfg.Catalog)
}
