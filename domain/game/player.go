package game

import (
	"fmt"
	"strings"

	"github.com/luca-patrignani/steal-the-pile/domain/deck"
)

// HistoryCapacity is the number of final positions a player remembers.
const HistoryCapacity = 5

// History is a fixed-capacity FIFO of final positions: pushing onto a full
// history evicts the oldest entry.
type History struct {
	slots [HistoryCapacity]int
	head  int
	size  int
}

func (h *History) Push(position int) {
	if h.size == HistoryCapacity {
		h.slots[h.head] = position
		h.head = (h.head + 1) % HistoryCapacity
		return
	}
	h.slots[(h.head+h.size)%HistoryCapacity] = position
	h.size++
}

func (h *History) Len() int {
	return h.size
}

// Positions returns the remembered positions, oldest first.
func (h *History) Positions() []int {
	out := make([]int, h.size)
	for i := range out {
		out[i] = h.slots[(h.head+i)%HistoryCapacity]
	}
	return out
}

// Player owns a pile of cards. The last card of the pile is its top.
type Player struct {
	name    string
	pile    []deck.Card
	history History
}

func NewPlayer(name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Player{name: name}, nil
}

func (p *Player) Name() string {
	return p.name
}

// Pile returns a copy of the player's pile, bottom first.
func (p *Player) Pile() []deck.Card {
	out := make([]deck.Card, len(p.pile))
	copy(out, p.pile)
	return out
}

func (p *Player) PileSize() int {
	return len(p.pile)
}

// Top returns the most recently acquired card.
func (p *Player) Top() (deck.Card, bool) {
	if len(p.pile) == 0 {
		return deck.Card{}, false
	}
	return p.pile[len(p.pile)-1], true
}

// History returns the player's last final positions, oldest first.
func (p *Player) History() []int {
	return p.history.Positions()
}

func (p *Player) add(cards ...deck.Card) {
	p.pile = append(p.pile, cards...)
}

// surrender empties the pile and hands its cards over, bottom first.
func (p *Player) surrender() []deck.Card {
	cards := p.pile
	p.pile = nil
	return cards
}

// Roster is the ordered set of players sitting at the table. Names are
// case-insensitive identities.
type Roster struct {
	players []*Player
}

func NewRoster(names ...string) (*Roster, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	r := &Roster{players: make([]*Player, 0, len(names))}
	for i, name := range names {
		p, err := NewPlayer(name)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		if _, taken := r.Lookup(p.name); taken {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.name)
		}
		r.players = append(r.players, p)
	}
	return r, nil
}

// Players returns the players in seating order.
func (r *Roster) Players() []*Player {
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r *Roster) Len() int {
	return len(r.players)
}

func (r *Roster) Names() []string {
	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = p.name
	}
	return names
}

// Lookup finds a player by name, ignoring case and surrounding blanks.
func (r *Roster) Lookup(name string) (*Player, bool) {
	name = strings.TrimSpace(name)
	for _, p := range r.players {
		if strings.EqualFold(p.name, name) {
			return p, true
		}
	}
	return nil, false
}

// History returns the ranking history of the named player. ok is false when
// nobody at the table has that name.
func (r *Roster) History(name string) (positions []int, ok bool) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return p.History(), true
}

func (r *Roster) clearPiles() {
	for _, p := range r.players {
		p.pile = nil
	}
}
