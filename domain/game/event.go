package game

import (
	"fmt"
	"strings"

	"github.com/luca-patrignani/steal-the-pile/domain/deck"
)

// EventType enumerates the observable engine actions.
type EventType int

const (
	EventDeckCreated EventType = iota
	EventRoster
	EventShuffle
	EventGameStart
	EventDraw
	EventSteal
	EventRecover
	EventExtend
	EventDiscard
	EventWinner
	EventRanking
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventDeckCreated:
		return "DeckCreated"
	case EventRoster:
		return "Roster"
	case EventShuffle:
		return "Shuffle"
	case EventGameStart:
		return "GameStart"
	case EventDraw:
		return "Draw"
	case EventSteal:
		return "Steal"
	case EventRecover:
		return "Recover"
	case EventExtend:
		return "Extend"
	case EventDiscard:
		return "Discard"
	case EventWinner:
		return "Winner"
	case EventRanking:
		return "Ranking"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event is a single engine action of a session. Seq is monotonic within a
// session; Turn is 1-based inside the turn loop and 0 outside it; Target names
// the robbed player of a steal.
type Event struct {
	Seq      int       `json:"seq"`
	Session  int       `json:"session"`
	Turn     int       `json:"turn"`
	Type     EventType `json:"type"`
	Player   string    `json:"player,omitempty"`
	Target   string    `json:"target,omitempty"`
	Card     string    `json:"card,omitempty"`
	Count    int       `json:"count,omitempty"`
	Position int       `json:"position,omitempty"`
	Details  string    `json:"details"`
}

// Recorder receives every event of a session, in order. An error aborts the session.
type Recorder interface {
	Record(event Event) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Event) error

func (f RecorderFunc) Record(event Event) error {
	return f(event)
}

// Discard is a Recorder that drops every event.
var Discard Recorder = RecorderFunc(func(Event) error { return nil })

// MemoryRecorder keeps events in memory.
type MemoryRecorder struct {
	events []Event
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) Record(event Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *MemoryRecorder) Events() []Event {
	return m.events
}

// EventsOfType returns all events matching the given type.
func (m *MemoryRecorder) EventsOfType(t EventType) []Event {
	var result []Event
	for _, e := range m.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// FormatEvent renders an event as one line of the session log.
func FormatEvent(e Event) string {
	if e.Turn == 0 {
		return fmt.Sprintf("      %s", e.Details)
	}
	return fmt.Sprintf("T%-4d %s", e.Turn, e.Details)
}

// --- constructors ---

func NewDeckCreatedEvent(session, requested, built int) Event {
	details := fmt.Sprintf("Deck created with %d cards", requested)
	if built != requested {
		details += fmt.Sprintf(" (%d dealt)", built)
	}
	return Event{
		Session: session,
		Type:    EventDeckCreated,
		Count:   requested,
		Details: details,
	}
}

func NewRosterEvent(session int, names []string) Event {
	return Event{
		Session: session,
		Type:    EventRoster,
		Count:   len(names),
		Details: "Players: " + strings.Join(names, ", "),
	}
}

func NewShuffleEvent(session int) Event {
	return Event{
		Session: session,
		Type:    EventShuffle,
		Details: "Deck shuffled",
	}
}

func NewGameStartEvent(session int) Event {
	return Event{
		Session: session,
		Type:    EventGameStart,
		Details: "Game started",
	}
}

func NewDrawEvent(session, turn int, player string, card deck.Card) Event {
	return Event{
		Session: session,
		Turn:    turn,
		Type:    EventDraw,
		Player:  player,
		Card:    card.String(),
		Details: fmt.Sprintf("%s draws %s", player, card),
	}
}

func NewStealEvent(session, turn int, player, target string, card deck.Card, taken int) Event {
	return Event{
		Session: session,
		Turn:    turn,
		Type:    EventSteal,
		Player:  player,
		Target:  target,
		Card:    card.String(),
		Count:   taken,
		Details: fmt.Sprintf("%s steals the pile of %s (%d cards)", player, target, taken),
	}
}

func NewRecoverEvent(session, turn int, player string, recovered, card deck.Card) Event {
	return Event{
		Session: session,
		Turn:    turn,
		Type:    EventRecover,
		Player:  player,
		Card:    card.String(),
		Details: fmt.Sprintf("%s takes %s back from the discard area", player, recovered),
	}
}

func NewExtendEvent(session, turn int, player string, card deck.Card) Event {
	return Event{
		Session: session,
		Turn:    turn,
		Type:    EventExtend,
		Player:  player,
		Card:    card.String(),
		Details: fmt.Sprintf("%s adds %s to their own pile", player, card),
	}
}

func NewDiscardEvent(session, turn int, player string, card deck.Card) Event {
	return Event{
		Session: session,
		Turn:    turn,
		Type:    EventDiscard,
		Player:  player,
		Card:    card.String(),
		Details: fmt.Sprintf("%s discards %s", player, card),
	}
}

func NewWinnerEvent(session int, player string, cards int) Event {
	return Event{
		Session: session,
		Type:    EventWinner,
		Player:  player,
		Count:   cards,
		Details: fmt.Sprintf("Winner: %s with %d cards", player, cards),
	}
}

func NewRankingEvent(session int, player string, position, cards int) Event {
	return Event{
		Session:  session,
		Type:     EventRanking,
		Player:   player,
		Position: position,
		Count:    cards,
		Details:  fmt.Sprintf("%d. %s: %d cards", position, player, cards),
	}
}

func NewGameOverEvent(session, draws int) Event {
	return Event{
		Session: session,
		Type:    EventGameOver,
		Count:   draws,
		Details: fmt.Sprintf("Game over after %d draws", draws),
	}
}
