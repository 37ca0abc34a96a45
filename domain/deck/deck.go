package deck

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize    = errors.New("deck size must be positive")
	ErrBadPermutation = errors.New("permuter returned an invalid permutation")
	ErrEmptyPile      = errors.New("draw pile is empty")
)

// Pile is the shared draw stack. The last element of cards is the top.
type Pile struct {
	cards     []Card
	requested int
}

// Build enumerates cards rank-ascending and, inside a rank, in suit order,
// stopping after size cards (a full deck when size >= FullSize). The sequence
// is then reordered by p: position i of the result holds ordered[perm[i]].
// The last card of the result is the first one drawn.
func Build(size int, p Permuter) (*Pile, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	ordered := Enumerate(size)

	perm := p.Perm(len(ordered))
	if err := checkPermutation(perm, len(ordered)); err != nil {
		return nil, err
	}
	cards := make([]Card, len(ordered))
	for i, j := range perm {
		cards[i] = ordered[j]
	}
	return &Pile{cards: cards, requested: size}, nil
}

// Enumerate returns the first min(size, FullSize) cards in building order.
func Enumerate(size int) []Card {
	n := min(max(size, 0), FullSize)
	cards := make([]Card, 0, n)
	for rank := MinRank; rank <= MaxRank && len(cards) < n; rank++ {
		for _, suit := range Suits {
			cards = append(cards, Card{rank: uint8(rank), suit: suit})
			if len(cards) == n {
				break
			}
		}
	}
	return cards
}

// NewPile stacks cards as given: the last element is the top.
func NewPile(cards ...Card) *Pile {
	c := make([]Card, len(cards))
	copy(c, cards)
	return &Pile{cards: c, requested: len(c)}
}

func checkPermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length %d, want %d", ErrBadPermutation, len(perm), n)
	}
	seen := make([]bool, n)
	for _, j := range perm {
		if j < 0 || j >= n || seen[j] {
			return fmt.Errorf("%w: %v", ErrBadPermutation, perm)
		}
		seen[j] = true
	}
	return nil
}

// Draw pops the top card.
func (p *Pile) Draw() (Card, error) {
	if len(p.cards) == 0 {
		return Card{}, ErrEmptyPile
	}
	c := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return c, nil
}

// Peek returns the top card without drawing it.
func (p *Pile) Peek() (Card, bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	return p.cards[len(p.cards)-1], true
}

func (p *Pile) Len() int {
	return len(p.cards)
}

func (p *Pile) Empty() bool {
	return len(p.cards) == 0
}

// Requested is the size the pile was built for, before capping at FullSize.
func (p *Pile) Requested() int {
	return p.requested
}

// Cards returns a copy of the remaining cards, bottom first.
func (p *Pile) Cards() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}
