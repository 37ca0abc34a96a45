package game

import (
	"slices"

	"github.com/luca-patrignani/steal-the-pile/domain/deck"
)

// Standing is the final placement of a player.
type Standing struct {
	Player   *Player
	Position int
	Cards    int
	Winner   bool
}

// Rank orders players by pile size, largest first, keeping seating order
// between equal piles. Positions are distinct and 1-based even on ties; every
// player holding the largest pile is a winner. Each position is pushed into
// the player's history.
func Rank(players []*Player) []Standing {
	standings := rank(players)
	pushHistories(standings)
	return standings
}

func rank(players []*Player) []Standing {
	if len(players) == 0 {
		return nil
	}
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b *Player) int {
		return b.PileSize() - a.PileSize()
	})

	top := sorted[0].PileSize()
	standings := make([]Standing, len(sorted))
	for i, p := range sorted {
		standings[i] = Standing{
			Player:   p,
			Position: i + 1,
			Cards:    p.PileSize(),
			Winner:   p.PileSize() == top,
		}
	}
	return standings
}

func pushHistories(standings []Standing) {
	for _, s := range standings {
		s.Player.history.Push(s.Position)
	}
}

// Result is the final state of a played session.
type Result struct {
	Session   int
	Standings []Standing
	Discard   []deck.Card
	Draws     int
	Turns     int
}

// Winners returns the players sharing the largest pile, in ranking order.
func (r Result) Winners() []*Player {
	var winners []*Player
	for _, s := range r.Standings {
		if s.Winner {
			winners = append(winners, s.Player)
		}
	}
	return winners
}
