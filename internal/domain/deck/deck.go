package deck

import "errors"

var (
	ErrEmptyDeckID   = errors.New("deck id is empty")
	ErrEmptyDeckName = errors.New("deck name is empty")
	ErrNoCards       = errors.New("deck has no cards")
	ErrDuplicateCard = errors.New("duplicate card id in deck")
	ErrCardNotInDeck = errors.New("card does not belong to deck")
	ErrInvalidCardID = errors.New("card id is empty")
)

// Deck is a published, immutable, ordered collection of cards. The engine
// never mutates decks; the catalog owns their definitions.
type Deck struct {
	id    string
	name  string
	cards []Card
	byID  map[string]int
}

func NewDeck(id, name string, cards []Card) (*Deck, error) {
	if id == "" {
		return nil, ErrEmptyDeckID
	}
	if name == "" {
		return nil, ErrEmptyDeckName
	}
	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	byID := make(map[string]int, len(cards))
	for i, c := range cards {
		if c.ID == "" {
			return nil, ErrInvalidCardID
		}
		if _, dup := byID[c.ID]; dup {
			return nil, ErrDuplicateCard
		}
		byID[c.ID] = i
	}

	return &Deck{
		id:    id,
		name:  name,
		cards: cards,
		byID:  byID,
	}, nil
}

func (d *Deck) ID() string   { return d.id }
func (d *Deck) Name() string { return d.name }

func (d *Deck) TotalCardCount() int {
	return len(d.cards)
}

// CardIDs returns the ordered card id list as a fresh slice so callers can
// shuffle it without touching the deck.
func (d *Deck) CardIDs() []string {
	ids := make([]string, len(d.cards))
	for i, c := range d.cards {
		ids[i] = c.ID
	}
	return ids
}

func (d *Deck) Card(cardID string) (Card, error) {
	i, ok := d.byID[cardID]
	if !ok {
		return Card{}, ErrCardNotInDeck
	}
	return d.cards[i], nil
}

func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
