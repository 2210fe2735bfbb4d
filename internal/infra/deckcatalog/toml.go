package deckcatalog

import (
	"os"
	"path/filepath"

	"tarot-sessions/internal/domain/deck"
	"tarot-sessions/internal/pkg/errs"

	"github.com/BurntSushi/toml"
)

type deckFile struct {
	Deck  deckMeta       `toml:"deck"`
	Cards []cardFileDesc `toml:"cards"`
}

type deckMeta struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

type cardFileDesc struct {
	ID       string            `toml:"id"`
	Name     string            `toml:"name"`
	Names    map[string]string `toml:"names"`
	Suit     string            `toml:"suit"`
	Meaning  string            `toml:"meaning"`
	ImageURL string            `toml:"image_url"`
}

// loadDeckDir reads every *.toml deck definition under dir. A missing dir is
// not an error, the catalog then serves only the builtin deck.
func loadDeckDir(dir string) ([]*deck.Deck, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to read deck directory")
	}

	var decks []*deck.Deck
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		d, err := loadDeckFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, errs.Wrap(err, "failed to load deck "+entry.Name())
		}
		decks = append(decks, d)
	}
	return decks, nil
}

func loadDeckFile(path string) (*deck.Deck, error) {
	var file deckFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, errs.Wrap(err, "failed to parse deck file")
	}

	cards := make([]deck.Card, len(file.Cards))
	for i, c := range file.Cards {
		suit := deck.Suit(c.Suit)
		if !suit.IsValid() {
			return nil, errs.New("invalid suit " + c.Suit + " in " + path)
		}
		cards[i] = deck.Card{
			ID:            c.ID,
			Name:          c.Name,
			NameLocalized: c.Names,
			Suit:          suit,
			Meaning:       c.Meaning,
			ImageURL:      c.ImageURL,
		}
	}

	return deck.NewDeck(file.Deck.ID, file.Deck.Name, cards)
}
