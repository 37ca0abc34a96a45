package deck

import (
	"errors"
	"fmt"
)

// Suit of a card. The declaration order is the enumeration order used by Build.
type Suit uint8

const (
	Ouros Suit = iota
	Copas
	Espadas
	Paus
)

// Suits lists every suit in enumeration order.
var Suits = [...]Suit{Ouros, Copas, Espadas, Paus}

// Card rank bounds and named ranks
const (
	MinRank = 1
	MaxRank = 13

	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// FullSize is the number of distinct cards in a complete deck.
const FullSize = MaxRank * len(Suits)

var ErrInvalidCard = errors.New("invalid card")

func (s Suit) String() string {
	switch s {
	case Ouros:
		return "Ouros"
	case Copas:
		return "Copas"
	case Espadas:
		return "Espadas"
	case Paus:
		return "Paus"
	default:
		return "?"
	}
}

// Card is an immutable playing card.
type Card struct {
	rank uint8
	suit Suit
}

func NewCard(rank int, suit Suit) (Card, error) {
	if rank < MinRank || rank > MaxRank || suit > Paus {
		return Card{}, fmt.Errorf("%w: rank %d, suit %d", ErrInvalidCard, rank, suit)
	}
	return Card{rank: uint8(rank), suit: suit}, nil
}

// MustCard is NewCard for literals known to be valid. It panics otherwise.
func MustCard(rank int, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) Rank() int {
	return int(c.rank)
}

func (c Card) Suit() Suit {
	return c.suit
}

// SameRank reports whether both cards carry the same rank, whatever the suit.
func (c Card) SameRank(o Card) bool {
	return c.rank == o.rank
}

func (c Card) String() string {
	var rankStr string
	switch c.rank {
	case Ace:
		rankStr = "A"
	case Jack:
		rankStr = "J"
	case Queen:
		rankStr = "Q"
	case King:
		rankStr = "K"
	default:
		rankStr = fmt.Sprintf("%d", c.rank)
	}
	return rankStr + " of " + c.suit.String()
}
