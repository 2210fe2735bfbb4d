package deck

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
)

var ErrInsufficientCards = errors.New("requested count exceeds deck size")

// Assignment binds one drawn card to a spread position. Positions are
// 1-based and follow shuffle order.
type Assignment struct {
	Position int
	CardID   string
}

// Draw shuffles the deck's full card list with a uniform Fisher-Yates pass
// and takes the first count entries. Entropy comes from crypto/rand so a
// client can never predict the order of unrevealed cards.
func Draw(d *Deck, count int) ([]Assignment, error) {
	if count < 1 || count > d.TotalCardCount() {
		return nil, ErrInsufficientCards
	}

	ids := d.CardIDs()
	for i := len(ids) - 1; i > 0; i-- {
		j, err := cryptoRandIntn(int64(i + 1))
		if err != nil {
			return nil, err
		}
		ids[i], ids[j] = ids[j], ids[i]
	}

	assignments := make([]Assignment, count)
	for i := range count {
		assignments[i] = Assignment{Position: i + 1, CardID: ids[i]}
	}
	return assignments, nil
}

// Unbiased [0, n) via rejection sampling.
func cryptoRandIntn(n int64) (int64, error) {
	if n <= 0 {
		return 0, errors.New("invalid bound")
	}
	maxValid := (int64(1)<<62 / n) * n
	for {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, err
		}
		v := int64(binary.BigEndian.Uint64(buf[:]) >> 2)
		if v < maxValid {
			return v % n, nil
		}
	}
}
