package deckcatalog

import (
	"fmt"
	"strings"

	"tarot-sessions/internal/domain/deck"
)

const BuiltinDeckID = "rider-waite"

var majorArcanaNames = [22]string{
	"The Fool", "The Magician", "The High Priestess", "The Empress",
	"The Emperor", "The Hierophant", "The Lovers", "The Chariot",
	"Strength", "The Hermit", "Wheel of Fortune", "Justice",
	"The Hanged Man", "Death", "Temperance", "The Devil",
	"The Tower", "The Star", "The Moon", "The Sun",
	"Judgement", "The World",
}

var minorSuits = []deck.Suit{deck.SuitWands, deck.SuitCups, deck.SuitSwords, deck.SuitPentacles}

var minorRanks = []string{
	"ace", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"page", "knight", "queen", "king",
}

// newBuiltinDeck builds the standard 78-card Rider-Waite deck with canonical
// major_arcana.NN / minor_arcana.<suit>.<rank> ids.
func newBuiltinDeck() *deck.Deck {
	cards := make([]deck.Card, 0, 78)

	for i, name := range majorArcanaNames {
		cards = append(cards, deck.Card{
			ID:   fmt.Sprintf("major_arcana.%02d", i),
			Name: name,
			Suit: deck.SuitMajor,
		})
	}

	for _, suit := range minorSuits {
		for _, rank := range minorRanks {
			cards = append(cards, deck.Card{
				ID:   fmt.Sprintf("minor_arcana.%s.%s", suit, rank),
				Name: minorCardName(rank, suit),
				Suit: suit,
			})
		}
	}

	d, err := deck.NewDeck(BuiltinDeckID, "Rider-Waite", cards)
	if err != nil {
		// The builtin definition is fixed, a failure here is a programming bug.
		panic(fmt.Sprintf("builtin deck is invalid: %v", err))
	}
	return d
}

func minorCardName(rank string, suit deck.Suit) string {
	return fmt.Sprintf("%s of %s", capitalize(rank), capitalize(string(suit)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
