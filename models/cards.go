package models

import (
	"encoding/json"
	"strconv"
)

// CardType identifies one of the configured card sets
type CardType string

// Available card sets
const (
	CardTypeFibonacci  CardType = "fibonacci"
	CardTypeTShirt     CardType = "tshirt"
	CardTypePowers     CardType = "powers"
	CardTypeSequential CardType = "sequential"
	CardTypeEmoji      CardType = "emoji"
	CardTypeCustom     CardType = "custom"
)

// Possible voting statuses
const (
	StatusVoting   = "voting"
	StatusRevealed = "revealed"
)

// CardValue is a single vote value: either a numeric estimate or a symbolic
// token such as "?" or a t-shirt size. Symbolic tokens are excluded from
// arithmetic statistics but still count toward totals and consensus.
type CardValue struct {
	Number   float64
	Token    string
	IsNumber bool
}

// Numeric returns a numeric card value
func Numeric(n float64) CardValue {
	return CardValue{Number: n, IsNumber: true}
}

// Symbolic returns a symbolic card value
func Symbolic(token string) CardValue {
	return CardValue{Token: token}
}

// String renders the value the way a card face displays it
func (v CardValue) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Token
}

// MarshalJSON encodes the value as a bare JSON number or string, matching the
// wire shape browser clients expect for card values.
func (v CardValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Token)
}

// UnmarshalJSON accepts either a JSON number or a JSON string
func (v *CardValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Numeric(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidCardValue
	}
	*v = Symbolic(s)
	return nil
}

// CardTypeConfig describes one card set: its ordered legal values plus the
// display metadata the catalogue exposes to clients.
type CardTypeConfig struct {
	Name        string      `json:"name"`
	Values      []CardValue `json:"values"`
	Description string      `json:"description"`
	UseCase     string      `json:"useCase"`
	Icon        string      `json:"icon"`
	Color       string      `json:"color"`
}

// Contains reports whether value is a legal vote in this card set
func (c CardTypeConfig) Contains(value CardValue) bool {
	for _, v := range c.Values {
		if v == value {
			return true
		}
	}
	return false
}

// CardTypes is the static card-set catalogue. It is configuration, not state:
// consumed read-only by rooms and by the catalogue endpoint.
var CardTypes = map[CardType]CardTypeConfig{
	CardTypeFibonacci: {
		Name: "Fibonacci",
		Values: []CardValue{
			Numeric(0), Numeric(1), Numeric(2), Numeric(3), Numeric(5),
			Numeric(8), Numeric(13), Numeric(20), Numeric(40), Numeric(100),
			Symbolic("☕"), Symbolic("?"),
		},
		Description: "Classic Fibonacci sequence for story point estimation",
		UseCase:     "Most common. Reflects growing complexity with spaced values.",
		Icon:        "📊",
		Color:       "from-blue-400 to-blue-600",
	},
	CardTypeTShirt: {
		Name: "T-Shirt Sizes",
		Values: []CardValue{
			Symbolic("XS"), Symbolic("S"), Symbolic("M"), Symbolic("L"),
			Symbolic("XL"), Symbolic("XXL"), Symbolic("?"),
		},
		Description: "T-shirt sizing for quick relative estimation",
		UseCase:     "Great for abstract size estimation. Friendly for non-technical users.",
		Icon:        "👕",
		Color:       "from-green-400 to-green-600",
	},
	CardTypePowers: {
		Name: "Powers of Two",
		Values: []CardValue{
			Numeric(1), Numeric(2), Numeric(4), Numeric(8), Numeric(16),
			Numeric(32), Numeric(64), Symbolic("?"),
		},
		Description: "Exponential scale for complex technical tasks",
		UseCase:     "Helps indicate exponential complexity. Used in tech-heavy projects.",
		Icon:        "⚡",
		Color:       "from-purple-400 to-purple-600",
	},
	CardTypeSequential: {
		Name: "Sequential",
		Values: []CardValue{
			Numeric(1), Numeric(2), Numeric(3), Numeric(4), Numeric(5),
			Numeric(6), Numeric(7), Numeric(8), Numeric(9), Numeric(10),
			Symbolic("?"),
		},
		Description: "Simple linear scale for straightforward estimation",
		UseCase:     "Works well for small tasks with clear effort size.",
		Icon:        "📈",
		Color:       "from-orange-400 to-orange-600",
	},
	CardTypeEmoji: {
		Name: "Emoji Signals",
		Values: []CardValue{
			Symbolic("👍"), Symbolic("❓"), Symbolic("☕"), Symbolic("💤"),
			Symbolic("🚀"), Symbolic("🔥"), Symbolic("?"),
		},
		Description: "Emoji-based reactions for quick team feedback",
		UseCase:     "Ideal for async teams or quick reactions. Enhances lightweight comms.",
		Icon:        "😊",
		Color:       "from-pink-400 to-pink-600",
	},
	CardTypeCustom: {
		Name: "Custom",
		Values: []CardValue{
			Numeric(1), Numeric(2), Numeric(3), Numeric(4), Numeric(5),
			Numeric(6), Numeric(7), Numeric(8), Numeric(9), Numeric(10),
			Symbolic("?"),
		},
		Description: "Simple 1-10 scale for straightforward estimation",
		UseCase:     "Flexible scale that can be adapted to your team's needs.",
		Icon:        "🎯",
		Color:       "from-gray-400 to-gray-600",
	},
}

// Valid reports whether t names a configured card set
func (t CardType) Valid() bool {
	_, ok := CardTypes[t]
	return ok
}

// Config returns the card-set configuration for t
func (t CardType) Config() (CardTypeConfig, bool) {
	cfg, ok := CardTypes[t]
	return cfg, ok
}
