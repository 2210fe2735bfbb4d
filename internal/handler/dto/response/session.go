package response

import (
	"time"

	"tarot-sessions/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SessionResponse struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"clientId"`
	ReaderID     *uuid.UUID      `json:"readerId,omitempty"`
	DeckID       string          `json:"deckId"`
	SpreadName   string          `json:"spreadName"`
	CardCount    int             `json:"cardCount"`
	Sequential   bool            `json:"sequential"`
	Question     *string         `json:"question,omitempty"`
	PaymentState string          `json:"paymentState"`
	Status       string          `json:"status"`
	Slots        []*SlotResponse `json:"slots"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type SlotResponse struct {
	Position   int           `json:"position"`
	Label      *string       `json:"label,omitempty"`
	State      string        `json:"state"`
	Card       *CardResponse `json:"card"`
	RevealedAt *time.Time    `json:"revealedAt,omitempty"`
	BurnedAt   *time.Time    `json:"burnedAt,omitempty"`
	BurnReason *string       `json:"burnReason,omitempty"`
}

type CardResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Suit     string `json:"suit"`
	Meaning  string `json:"meaning,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type SessionListResponse struct {
	ID           uuid.UUID `json:"id"`
	DeckID       string    `json:"deckId"`
	SpreadName   string    `json:"spreadName"`
	CardCount    int       `json:"cardCount"`
	PaymentState string    `json:"paymentState"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromSessionView(rm *queries.SessionView) *SessionResponse {
	resp := &SessionResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}

func FromSessionListItem(rm *queries.SessionListItem) *SessionListResponse {
	resp := &SessionListResponse{}
	_ = copier.Copy(resp, rm)
	return resp
}
