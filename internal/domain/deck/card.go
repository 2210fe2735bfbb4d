package deck

// Suit classifies a card. Major arcana carry SuitMajor; minor arcana carry
// one of the four traditional suits.
type Suit string

const (
	SuitMajor     Suit = "major"
	SuitWands     Suit = "wands"
	SuitCups      Suit = "cups"
	SuitSwords    Suit = "swords"
	SuitPentacles Suit = "pentacles"
)

func (s Suit) IsValid() bool {
	switch s {
	case SuitMajor, SuitWands, SuitCups, SuitSwords, SuitPentacles:
		return true
	default:
		return false
	}
}

// Card is an immutable catalog entry. Canonical ids follow the
// major_arcana.NN / minor_arcana.<suit>.<rank> convention.
type Card struct {
	ID            string
	Name          string
	NameLocalized map[string]string
	Suit          Suit
	Meaning       string
	ImageURL      string
}

// LocalizedName returns the card name for the given language tag, falling
// back to the canonical name.
func (c Card) LocalizedName(lang string) string {
	if name, ok := c.NameLocalized[lang]; ok && name != "" {
		return name
	}
	return c.Name
}
