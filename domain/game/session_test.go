package game

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/luca-patrignani/steal-the-pile/domain/deck"
)

// arrange returns the permutation that deals want (bottom first) from a deck
// of len(want) cards.
func arrange(t *testing.T, want ...deck.Card) deck.Fixed {
	t.Helper()
	ordered := deck.Enumerate(len(want))
	perm := make(deck.Fixed, len(want))
	for i, w := range want {
		j := slices.Index(ordered, w)
		if j < 0 {
			t.Fatalf("%s is not part of a %d-card deck", w, len(want))
		}
		perm[i] = j
	}
	return perm
}

func types(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

// Draw order: 2P 1E 2E 1C 2C 1O 2O 1P.
func TestGoldenTwoPlayersEightCards(t *testing.T) {
	roster, err := NewRoster("Ana", "Bruno")
	if err != nil {
		t.Fatal(err)
	}
	perm := arrange(t,
		c(1, deck.Paus), c(2, deck.Ouros), c(1, deck.Ouros), c(2, deck.Copas),
		c(1, deck.Copas), c(2, deck.Espadas), c(1, deck.Espadas), c(2, deck.Paus),
	)
	rec := NewMemoryRecorder()
	sess, err := NewSession(roster, 8, 1, WithPermuter(perm), WithRecorder(rec))
	if err != nil {
		t.Fatal(err)
	}
	res, err := sess.Run()
	if err != nil {
		t.Fatal(err)
	}

	wantTypes := []EventType{
		EventDeckCreated, EventRoster, EventShuffle, EventGameStart,
		EventDraw, EventDiscard, // T1 Ana: 2P
		EventDraw, EventDiscard, // T2 Bruno: 1E
		EventDraw, EventRecover, // T3 Ana: 2E takes 2P
		EventDraw, EventRecover, //         1C takes 1E
		EventDraw, EventDiscard, //         2C
		EventDraw, EventSteal, // T4 Bruno: 1O steals Ana's pile
		EventDraw, EventRecover, //         2O takes 2C
		EventDraw, EventDiscard, //         1P
		EventWinner, EventRanking, EventRanking, EventGameOver,
	}
	if got := types(rec.Events()); !slices.Equal(got, wantTypes) {
		t.Fatalf("expected events\n%v\ngot\n%v", wantTypes, got)
	}

	steal := rec.EventsOfType(EventSteal)[0]
	if steal.Player != "Bruno" || steal.Target != "Ana" || steal.Count != 4 || steal.Turn != 4 {
		t.Fatalf("unexpected steal event %+v", steal)
	}

	ana, _ := roster.Lookup("ana")
	bruno, _ := roster.Lookup("bruno")
	if ana.PileSize() != 0 {
		t.Fatalf("expected Ana to end with no cards, got %v", ana.Pile())
	}
	wantBruno := []deck.Card{
		c(2, deck.Paus), c(2, deck.Espadas), c(1, deck.Espadas), c(1, deck.Copas),
		c(1, deck.Ouros), c(2, deck.Copas), c(2, deck.Ouros),
	}
	if got := bruno.Pile(); !slices.Equal(got, wantBruno) {
		t.Fatalf("expected Bruno's pile %v, got %v", wantBruno, got)
	}
	if !slices.Equal(res.Discard, []deck.Card{c(1, deck.Paus)}) {
		t.Fatalf("expected discard [1 of Paus], got %v", res.Discard)
	}
	if res.Draws != 8 || res.Turns != 4 {
		t.Fatalf("expected 8 draws over 4 turns, got %d over %d", res.Draws, res.Turns)
	}

	if len(res.Standings) != 2 || res.Standings[0].Player != bruno || res.Standings[1].Player != ana {
		t.Fatalf("expected Bruno then Ana, got %+v", res.Standings)
	}
	if winners := res.Winners(); len(winners) != 1 || winners[0] != bruno {
		t.Fatalf("expected Bruno as sole winner, got %v", winners)
	}
	if !slices.Equal(bruno.History(), []int{1}) || !slices.Equal(ana.History(), []int{2}) {
		t.Fatalf("unexpected histories: Bruno %v, Ana %v", bruno.History(), ana.History())
	}
	if sess.State() != StateGameOver {
		t.Fatalf("expected GameOver, got %s", sess.State())
	}
}

func TestLonePlayerSession(t *testing.T) {
	roster, err := NewRoster("Solo")
	if err != nil {
		t.Fatal(err)
	}
	rec := NewMemoryRecorder()
	sess, err := NewSession(roster, 8, 1, WithPermuter(deck.Identity{}), WithRecorder(rec))
	if err != nil {
		t.Fatal(err)
	}
	res, err := sess.Run()
	if err != nil {
		t.Fatal(err)
	}
	if n := len(rec.EventsOfType(EventSteal)); n != 0 {
		t.Fatalf("a lone player cannot steal, got %d steals", n)
	}
	// 2P discarded, 2E recovers it, 2C 2O extend, 1P discarded, 1E recovers it, 1C 1O extend.
	if res.Standings[0].Cards != 8 || len(res.Discard) != 0 || res.Turns != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	if n := len(rec.EventsOfType(EventExtend)); n != 4 {
		t.Fatalf("expected 4 extensions, got %d", n)
	}
}

func TestCardsConservedThroughoutSession(t *testing.T) {
	for players := 1; players <= 6; players++ {
		for _, size := range []int{1, 7, 26, 52, 80} {
			t.Run(fmt.Sprintf("%dp-%dc", players, size), func(t *testing.T) {
				names := make([]string, players)
				for i := range names {
					names[i] = fmt.Sprintf("P%d", i+1)
				}
				roster, err := NewRoster(names...)
				if err != nil {
					t.Fatal(err)
				}
				var sess *Session
				checks := 0
				check := RecorderFunc(func(Event) error {
					if sess == nil {
						return nil
					}
					checks++
					return sess.CheckInvariant()
				})
				sess, err = NewSession(roster, size, 1,
					WithPermuter(deck.NewSeededPermuter(int64(players*100+size))),
					WithRecorder(check))
				if err != nil {
					t.Fatal(err)
				}
				res, err := sess.Run()
				if err != nil {
					t.Fatal(err)
				}
				dealt := min(size, deck.FullSize)
				if res.Draws != dealt {
					t.Fatalf("expected %d draws, got %d", dealt, res.Draws)
				}
				total := len(res.Discard)
				for _, s := range res.Standings {
					total += s.Cards
				}
				if total != dealt {
					t.Fatalf("expected %d cards at the end, got %d", dealt, total)
				}
				if checks < 2*dealt {
					t.Fatalf("expected at least %d invariant checks, got %d", 2*dealt, checks)
				}
			})
		}
	}
}

func TestNewSessionConfigErrors(t *testing.T) {
	roster, err := NewRoster("Ana")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSession(roster, 0, 1); !errors.Is(err, deck.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewSession(nil, 10, 1); !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
	if _, err := NewSession(&Roster{}, 10, 1); !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
}

func TestNewSessionClearsPilesNotHistory(t *testing.T) {
	roster, err := NewRoster("Ana", "Bruno")
	if err != nil {
		t.Fatal(err)
	}
	for session := 1; session <= 7; session++ {
		sess, err := NewSession(roster, 20, session, WithPermuter(deck.NewSeededPermuter(int64(session))))
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range roster.Players() {
			if p.PileSize() != 0 {
				t.Fatalf("session %d: %s starts with %d cards", session, p.Name(), p.PileSize())
			}
		}
		if _, err := sess.Run(); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range roster.Players() {
		if len(p.History()) != HistoryCapacity {
			t.Fatalf("%s: expected %d history entries, got %v", p.Name(), HistoryCapacity, p.History())
		}
	}
}

func TestRunTwice(t *testing.T) {
	roster, err := NewRoster("Ana")
	if err != nil {
		t.Fatal(err)
	}
	sess, err := NewSession(roster, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Run(); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Run(); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("expected ErrSessionFinished, got %v", err)
	}
}

func TestRecorderErrorAbortsRun(t *testing.T) {
	roster, err := NewRoster("Ana", "Bruno")
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("disk full")
	rec := RecorderFunc(func(e Event) error {
		if e.Type == EventDraw {
			return boom
		}
		return nil
	})
	sess, err := NewSession(roster, 10, 1, WithRecorder(rec))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Run(); !errors.Is(err, boom) {
		t.Fatalf("expected the recorder error, got %v", err)
	}
}

func TestFailedReportLeavesHistoriesUntouched(t *testing.T) {
	for _, failOn := range []EventType{EventWinner, EventRanking, EventGameOver} {
		t.Run(failOn.String(), func(t *testing.T) {
			roster, err := NewRoster("Ana", "Bruno")
			if err != nil {
				t.Fatal(err)
			}
			boom := errors.New("disk full")
			rec := RecorderFunc(func(e Event) error {
				if e.Type == failOn {
					return boom
				}
				return nil
			})
			sess, err := NewSession(roster, 10, 1, WithRecorder(rec), WithPermuter(deck.NewSeededPermuter(5)))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := sess.Run(); !errors.Is(err, boom) {
				t.Fatalf("expected the recorder error, got %v", err)
			}
			for _, p := range roster.Players() {
				if h := p.History(); len(h) != 0 {
					t.Fatalf("expected no history for %s, got %v", p.Name(), h)
				}
			}
		})
	}
}

func TestCheckInvariantDetectsDuplicates(t *testing.T) {
	roster, err := NewRoster("Ana", "Bruno")
	if err != nil {
		t.Fatal(err)
	}
	sess, err := NewSession(roster, 4, 1, WithPermuter(deck.Identity{}))
	if err != nil {
		t.Fatal(err)
	}
	if err := sess.CheckInvariant(); err != nil {
		t.Fatal(err)
	}
	top, _ := sess.Table().Draw.Peek()
	roster.players[0].add(top)
	if err := sess.CheckInvariant(); !errors.Is(err, ErrCardsNotConserved) {
		t.Fatalf("expected ErrCardsNotConserved, got %v", err)
	}
}

func TestEventSequenceIsMonotonic(t *testing.T) {
	roster, err := NewRoster("Ana", "Bruno", "Carla")
	if err != nil {
		t.Fatal(err)
	}
	rec := NewMemoryRecorder()
	sess, err := NewSession(roster, 52, 3, WithRecorder(rec), WithPermuter(deck.NewSeededPermuter(3)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Run(); err != nil {
		t.Fatal(err)
	}
	draws := 0
	for i, e := range rec.Events() {
		if e.Seq != i+1 || e.Session != 3 {
			t.Fatalf("event %d: seq %d session %d", i, e.Seq, e.Session)
		}
		if e.Type == EventDraw {
			draws++
			// every draw is followed by exactly one rule event
			next := rec.Events()[i+1].Type
			if next < EventSteal || next > EventDiscard {
				t.Fatalf("draw followed by %s", next)
			}
		}
	}
	if draws != 52 {
		t.Fatalf("expected 52 draws, got %d", draws)
	}
	if n := len(rec.EventsOfType(EventRanking)); n != 3 {
		t.Fatalf("expected one ranking event per player, got %d", n)
	}
}
