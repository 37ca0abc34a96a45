package ledger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/luca-patrignani/steal-the-pile/domain/deck"
	"github.com/luca-patrignani/steal-the-pile/domain/game"
)

// playSession runs a full three-player session recorded into a fresh ledger.
func playSession(t *testing.T, out *bytes.Buffer) *Ledger {
	t.Helper()
	roster, err := game.NewRoster("Ana", "Bruno", "Carla")
	if err != nil {
		t.Fatal(err)
	}
	l := New(4, out)
	sess, err := game.NewSession(roster, 30, 4,
		game.WithRecorder(l),
		game.WithPermuter(deck.NewSeededPermuter(11)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Run(); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestNewLedgerHasGenesis(t *testing.T) {
	l := New(1, nil)
	if l.Len() != 0 {
		t.Fatalf("expected no events, got %d", l.Len())
	}
	g := l.GetLatest()
	if g.Index != 0 || g.PrevHash != "0" || g.Hash == "" {
		t.Fatalf("unexpected genesis block %+v", g)
	}
	if err := l.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestLedgerRecordsWholeSession(t *testing.T) {
	var out bytes.Buffer
	l := playSession(t, &out)

	if err := l.Verify(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != l.Len() {
		t.Fatalf("expected one log line per event: %d lines, %d events", len(lines), l.Len())
	}
	if !strings.Contains(lines[0], "Deck created with 30 cards") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "Players: Ana, Bruno, Carla") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
	if !strings.Contains(lines[len(lines)-1], "Game over after 30 draws") {
		t.Fatalf("unexpected last line %q", lines[len(lines)-1])
	}

	events := l.Events()
	for i, e := range events {
		b, err := l.GetByIndex(i + 1)
		if err != nil {
			t.Fatal(err)
		}
		if b.Event != e || b.PrevHash == "" {
			t.Fatalf("block %d does not hold event %d", b.Index, e.Seq)
		}
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	l := playSession(t, &bytes.Buffer{})

	b, err := l.GetByIndex(5)
	if err != nil {
		t.Fatal(err)
	}
	b.Event.Player = "Mallory"
	if err := l.Verify(); err == nil {
		t.Fatal("expected tampering to be detected")
	}
}

func TestVerifyDetectsBrokenLink(t *testing.T) {
	l := playSession(t, &bytes.Buffer{})

	b, err := l.GetByIndex(3)
	if err != nil {
		t.Fatal(err)
	}
	b.PrevHash = strings.Repeat("0", 64)
	b.Hash = calculateHash(*b)
	if err := l.Verify(); err == nil {
		t.Fatal("expected broken link to be detected")
	}
}

func TestGetByIndexOutOfRange(t *testing.T) {
	l := New(1, nil)
	if _, err := l.GetByIndex(1); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, err := l.GetByIndex(-1); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestRecordRejectsForeignSession(t *testing.T) {
	l := New(1, nil)
	if err := l.Record(game.NewShuffleEvent(2)); err == nil {
		t.Fatal("expected an error for an event of session 2")
	}
	if l.Len() != 0 {
		t.Fatal("rejected events must not be appended")
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestRecordWriteFailure(t *testing.T) {
	l := New(1, failingWriter{})
	if err := l.Record(game.NewShuffleEvent(1)); !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatal("events whose line could not be written must not be appended")
	}
}
