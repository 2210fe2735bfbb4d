package deckcatalog

import (
	"context"
	"sort"

	"tarot-sessions/internal/domain/deck"
	"tarot-sessions/internal/pkg/config"
	"tarot-sessions/internal/pkg/errs"
)

// Catalog serves published decks. Decks are loaded once at startup and never
// change afterwards, so lookups need no locking.
type Catalog struct {
	decks map[string]*deck.Deck
}

// NewCatalog builds the catalog from the builtin Rider-Waite deck plus any
// TOML decks found under the configured directory. A TOML deck may override
// the builtin one by reusing its id.
func NewCatalog(cfg config.CatalogConfig) (*Catalog, error) {
	decks := map[string]*deck.Deck{
		BuiltinDeckID: newBuiltinDeck(),
	}

	loaded, err := loadDeckDir(cfg.DeckDir)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load deck catalog")
	}
	for _, d := range loaded {
		decks[d.ID()] = d
	}

	return &Catalog{decks: decks}, nil
}

func (c *Catalog) GetDeck(_ context.Context, deckID string) (*deck.Deck, error) {
	d, ok := c.decks[deckID]
	if !ok {
		return nil, errs.Mark(errs.New("deck not found: "+deckID), errs.ErrDeckNotFound)
	}
	return d, nil
}

// ListDecks returns all published decks ordered by id.
func (c *Catalog) ListDecks(_ context.Context) []*deck.Deck {
	out := make([]*deck.Deck, 0, len(c.decks))
	for _, d := range c.decks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
