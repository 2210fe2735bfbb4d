package session

import (
	"errors"
	"strings"
)

const (
	MaxQuestionLength   = 1000
	MaxBurnReasonLength = 500
)

var (
	ErrInvalidCardCount    = errors.New("card count must be at least 1")
	ErrSpreadLabelMismatch = errors.New("spread label count must match card count")
	ErrQuestionTooLong     = errors.New("question exceeds maximum length")
	ErrBurnReasonTooLong   = errors.New("burn reason exceeds maximum length")
)

// Spread describes the layout of a reading: how many positions it has,
// optional semantic labels per position, and whether reveals must follow
// ascending position order.
type Spread struct {
	name       string
	cardCount  int
	labels     []string
	sequential bool
}

func NewSpread(name string, cardCount int, labels []string, sequential bool) (Spread, error) {
	if cardCount < 1 {
		return Spread{}, ErrInvalidCardCount
	}
	if len(labels) > 0 && len(labels) != cardCount {
		return Spread{}, ErrSpreadLabelMismatch
	}
	if name == "" {
		name = "custom"
	}
	return Spread{
		name:       name,
		cardCount:  cardCount,
		labels:     labels,
		sequential: sequential,
	}, nil
}

func ReconstructSpread(name string, cardCount int, labels []string, sequential bool) Spread {
	return Spread{name: name, cardCount: cardCount, labels: labels, sequential: sequential}
}

func (s Spread) Name() string     { return s.name }
func (s Spread) CardCount() int   { return s.cardCount }
func (s Spread) Sequential() bool { return s.sequential }

func (s Spread) Labels() []string {
	if len(s.labels) == 0 {
		return nil
	}
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Label returns the semantic name of a 1-based position, or "" when the
// spread is unlabeled.
func (s Spread) Label(position int) string {
	if position < 1 || position > len(s.labels) {
		return ""
	}
	return s.labels[position-1]
}

type Question struct {
	value string
}

func NewQuestion(raw string) (Question, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > MaxQuestionLength {
		return Question{}, ErrQuestionTooLong
	}
	return Question{value: trimmed}, nil
}

func (q Question) String() string { return q.value }
func (q Question) IsEmpty() bool  { return q.value == "" }

// Ptr returns nil for an empty question, for nullable storage columns.
func (q Question) Ptr() *string {
	if q.value == "" {
		return nil
	}
	v := q.value
	return &v
}
