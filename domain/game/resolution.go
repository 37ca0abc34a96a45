package game

import "github.com/luca-patrignani/steal-the-pile/domain/deck"

// Action is the rule of the cascade that resolved a drawn card.
type Action int

const (
	ActionSteal Action = iota + 1
	ActionRecover
	ActionExtend
	ActionDiscard
)

func (a Action) String() string {
	switch a {
	case ActionSteal:
		return "steal"
	case ActionRecover:
		return "recover"
	case ActionExtend:
		return "extend"
	case ActionDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// EndsTurn reports whether the current player has to pass after this action.
func (a Action) EndsTurn() bool {
	return a == ActionDiscard
}

// Table is the state the cascade works on. Players are indexed in seating order.
type Table struct {
	Draw    *deck.Pile
	Discard []deck.Card
	Players []*Player
}

// CardCount is the number of cards currently on the table, wherever they lie.
func (t *Table) CardCount() int {
	n := t.Draw.Len() + len(t.Discard)
	for _, p := range t.Players {
		n += p.PileSize()
	}
	return n
}

// Outcome is the decision taken for one drawn card.
type Outcome struct {
	Action Action
	Drawn  deck.Card
	// Target is the seat of the robbed player for ActionSteal, -1 otherwise.
	Target int
	// Taken is the size of the robbed pile for ActionSteal.
	Taken int
	// DiscardIndex locates Recovered in the discard area for ActionRecover, -1 otherwise.
	DiscardIndex int
	Recovered    deck.Card
}

// Resolve decides which rule applies to the card drawn by the player seated at
// current. It does not modify t.
func Resolve(t *Table, current int, drawn deck.Card) Outcome {
	out := Outcome{Drawn: drawn, Target: -1, DiscardIndex: -1}

	if target := stealTarget(t, current, drawn); target >= 0 {
		out.Action = ActionSteal
		out.Target = target
		out.Taken = t.Players[target].PileSize()
		return out
	}

	for i, c := range t.Discard {
		if c.SameRank(drawn) {
			out.Action = ActionRecover
			out.DiscardIndex = i
			out.Recovered = c
			return out
		}
	}

	if top, ok := t.Players[current].Top(); ok && top.SameRank(drawn) {
		out.Action = ActionExtend
		return out
	}

	out.Action = ActionDiscard
	return out
}

// stealTarget returns the seat of the largest opponent pile topped by the
// drawn rank, or -1. Equal sizes resolve to the lowest seat.
func stealTarget(t *Table, current int, drawn deck.Card) int {
	target, best := -1, 0
	for i, p := range t.Players {
		if i == current {
			continue
		}
		top, ok := p.Top()
		if !ok || !top.SameRank(drawn) {
			continue
		}
		if p.PileSize() > best {
			target, best = i, p.PileSize()
		}
	}
	return target
}

// Apply carries out o on behalf of the player seated at current.
func (t *Table) Apply(current int, o Outcome) {
	player := t.Players[current]
	switch o.Action {
	case ActionSteal:
		player.add(t.Players[o.Target].surrender()...)
		player.add(o.Drawn)
	case ActionRecover:
		t.Discard = append(t.Discard[:o.DiscardIndex], t.Discard[o.DiscardIndex+1:]...)
		player.add(o.Recovered, o.Drawn)
	case ActionExtend:
		player.add(o.Drawn)
	case ActionDiscard:
		t.Discard = append(t.Discard, o.Drawn)
	}
}
