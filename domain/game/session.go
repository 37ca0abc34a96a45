package game

import (
	"fmt"

	"github.com/luca-patrignani/steal-the-pile/domain/deck"
)

// State of a session's turn loop.
type State int

const (
	StateReady State = iota
	StateRunning
	StateTurnDone
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateTurnDone:
		return "PlayerTurnDone"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Option customises a session.
type Option func(*Session)

// WithPermuter replaces the cryptographic shuffle, typically to pin a deal in tests.
func WithPermuter(p deck.Permuter) Option {
	return func(s *Session) {
		s.permuter = p
	}
}

// WithRecorder sends the session's events to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// Session is one game played by a roster, from deck creation to ranking.
// It is not safe for concurrent use.
type Session struct {
	id       int
	roster   *Roster
	table    *Table
	dealt    int
	permuter deck.Permuter
	recorder Recorder
	state    State
	seq      int
	turn     int
	draws    int
}

// NewSession clears the roster's piles, builds and shuffles a deck of
// deckSize cards and records the set-up events. Configuration errors are
// reported before the roster is touched.
func NewSession(roster *Roster, deckSize, id int, opts ...Option) (*Session, error) {
	if roster == nil || roster.Len() == 0 {
		return nil, ErrNoPlayers
	}
	if deckSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", deck.ErrInvalidSize, deckSize)
	}

	s := &Session{
		id:       id,
		roster:   roster,
		permuter: deck.NewPermuter(),
		recorder: Discard,
	}
	for _, opt := range opts {
		opt(s)
	}

	draw, err := deck.Build(deckSize, s.permuter)
	if err != nil {
		return nil, fmt.Errorf("build deck: %w", err)
	}
	roster.clearPiles()
	s.table = &Table{Draw: draw, Players: roster.players}
	s.dealt = draw.Len()

	if err := s.record(NewDeckCreatedEvent(id, deckSize, s.dealt)); err != nil {
		return nil, err
	}
	if err := s.record(NewRosterEvent(id, roster.Names())); err != nil {
		return nil, err
	}
	if err := s.record(NewShuffleEvent(id)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) ID() int {
	return s.id
}

func (s *Session) State() State {
	return s.state
}

// Table exposes the live state of the session. Callers must not modify it.
func (s *Session) Table() *Table {
	return s.table
}

// Dealt is the number of cards in play, which never changes during a session.
func (s *Session) Dealt() int {
	return s.dealt
}

// Run plays the session to the end of the draw pile, ranks the players and
// returns the final state.
func (s *Session) Run() (Result, error) {
	if s.state != StateReady {
		return Result{}, ErrSessionFinished
	}
	s.state = StateRunning
	if err := s.record(NewGameStartEvent(s.id)); err != nil {
		return Result{}, err
	}

	for !s.table.Draw.Empty() {
		for seat := range s.table.Players {
			if s.table.Draw.Empty() {
				break
			}
			if err := s.playTurn(seat); err != nil {
				return Result{}, err
			}
		}
	}
	s.state = StateGameOver

	if err := s.CheckInvariant(); err != nil {
		return Result{}, err
	}
	return s.report()
}

// playTurn lets the player at seat draw until a discard or an empty draw pile.
func (s *Session) playTurn(seat int) error {
	s.state = StateRunning
	s.turn++
	player := s.table.Players[seat]

	for !s.table.Draw.Empty() {
		// Recorded before the pop: recorders always see each card in one place.
		next, _ := s.table.Draw.Peek()
		if err := s.record(NewDrawEvent(s.id, s.turn, player.name, next)); err != nil {
			return err
		}
		card, err := s.table.Draw.Draw()
		if err != nil {
			return err
		}
		s.draws++

		out := Resolve(s.table, seat, card)
		event := s.outcomeEvent(player, out)
		s.table.Apply(seat, out)
		if err := s.record(event); err != nil {
			return err
		}
		if out.Action.EndsTurn() {
			break
		}
	}
	s.state = StateTurnDone
	return nil
}

func (s *Session) outcomeEvent(player *Player, out Outcome) Event {
	switch out.Action {
	case ActionSteal:
		target := s.table.Players[out.Target]
		return NewStealEvent(s.id, s.turn, player.name, target.name, out.Drawn, out.Taken)
	case ActionRecover:
		return NewRecoverEvent(s.id, s.turn, player.name, out.Recovered, out.Drawn)
	case ActionExtend:
		return NewExtendEvent(s.id, s.turn, player.name, out.Drawn)
	default:
		return NewDiscardEvent(s.id, s.turn, player.name, out.Drawn)
	}
}

// report records the ranking events; histories change only once all of them
// are recorded.
func (s *Session) report() (Result, error) {
	standings := rank(s.table.Players)
	for _, st := range standings {
		if !st.Winner {
			continue
		}
		if err := s.record(NewWinnerEvent(s.id, st.Player.name, st.Cards)); err != nil {
			return Result{}, err
		}
	}
	for _, st := range standings {
		if err := s.record(NewRankingEvent(s.id, st.Player.name, st.Position, st.Cards)); err != nil {
			return Result{}, err
		}
	}
	if err := s.record(NewGameOverEvent(s.id, s.draws)); err != nil {
		return Result{}, err
	}
	pushHistories(standings)

	discard := make([]deck.Card, len(s.table.Discard))
	copy(discard, s.table.Discard)
	return Result{
		Session:   s.id,
		Standings: standings,
		Discard:   discard,
		Draws:     s.draws,
		Turns:     s.turn,
	}, nil
}

// CheckInvariant verifies that every dealt card lies in exactly one place.
func (s *Session) CheckInvariant() error {
	if n := s.table.CardCount(); n != s.dealt {
		return fmt.Errorf("%w: %d cards on the table, %d dealt", ErrCardsNotConserved, n, s.dealt)
	}
	seen := make(map[deck.Card]bool, s.dealt)
	check := func(cards []deck.Card, where string) error {
		for _, c := range cards {
			if seen[c] {
				return fmt.Errorf("%w: %s found twice (%s)", ErrCardsNotConserved, c, where)
			}
			seen[c] = true
		}
		return nil
	}
	if err := check(s.table.Draw.Cards(), "draw pile"); err != nil {
		return err
	}
	if err := check(s.table.Discard, "discard area"); err != nil {
		return err
	}
	for _, p := range s.table.Players {
		if err := check(p.pile, p.name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) record(e Event) error {
	s.seq++
	e.Seq = s.seq
	if err := s.recorder.Record(e); err != nil {
		return fmt.Errorf("record %s event: %w", e.Type, err)
	}
	return nil
}
