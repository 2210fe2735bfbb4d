package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	ReaderID       *uuid.UUID `json:"reader_id,omitempty"`
	DeckID         string     `json:"deck_id" binding:"required"`
	CardCount      int        `json:"card_count" binding:"required,min=1"`
	SpreadName     string     `json:"spread_name" binding:"required"`
	PositionLabels []string   `json:"position_labels,omitempty"`
	Sequential     bool       `json:"sequential"`
	Question       string     `json:"question,omitempty"`
	PaymentState   string     `json:"payment_state,omitempty"`
	LiveCall       bool       `json:"live_call"`
}

type BurnCardRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (r BurnCardRequest) TrimmedReason() string {
	return strings.TrimSpace(r.Reason)
}

type SetPaymentStateRequest struct {
	PaymentState string `json:"payment_state" binding:"required"`
}
