package response

import (
	"tarot-sessions/internal/domain/deck"
)

type DeckResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
}

type DeckDetailResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Cards []CardResponse `json:"cards"`
}

func FromDeck(d *deck.Deck) *DeckResponse {
	return &DeckResponse{
		ID:        d.ID(),
		Name:      d.Name(),
		CardCount: d.TotalCardCount(),
	}
}

func FromDeckDetail(d *deck.Deck) *DeckDetailResponse {
	cards := d.Cards()
	resp := &DeckDetailResponse{
		ID:    d.ID(),
		Name:  d.Name(),
		Cards: make([]CardResponse, len(cards)),
	}
	for i, c := range cards {
		resp.Cards[i] = CardResponse{
			ID:       c.ID,
			Name:     c.Name,
			Suit:     string(c.Suit),
			Meaning:  c.Meaning,
			ImageURL: c.ImageURL,
		}
	}
	return resp
}
