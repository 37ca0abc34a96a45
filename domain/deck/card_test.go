package deck

import (
	"errors"
	"testing"
)

func TestNewCardBounds(t *testing.T) {
	for _, rank := range []int{0, -1, 14} {
		if _, err := NewCard(rank, Ouros); !errors.Is(err, ErrInvalidCard) {
			t.Fatalf("rank %d: expected ErrInvalidCard, got %v", rank, err)
		}
	}
	if _, err := NewCard(1, Suit(4)); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard for suit 4, got %v", err)
	}
	c, err := NewCard(13, Paus)
	if err != nil {
		t.Fatal(err)
	}
	if c.Rank() != 13 || c.Suit() != Paus {
		t.Fatalf("expected 13 Paus, got %d %s", c.Rank(), c.Suit())
	}
}

func TestCardString(t *testing.T) {
	cases := map[Card]string{
		MustCard(Ace, Copas):    "A of Copas",
		MustCard(Jack, Ouros):   "J of Ouros",
		MustCard(Queen, Paus):   "Q of Paus",
		MustCard(King, Espadas): "K of Espadas",
		MustCard(7, Ouros):      "7 of Ouros",
	}
	for c, want := range cases {
		if c.String() != want {
			t.Errorf("expected %s, got %s", want, c.String())
		}
	}
}

func TestSameRank(t *testing.T) {
	if !MustCard(5, Ouros).SameRank(MustCard(5, Paus)) {
		t.Fatal("expected 5 of Ouros and 5 of Paus to share rank")
	}
	if MustCard(5, Ouros).SameRank(MustCard(6, Ouros)) {
		t.Fatal("expected different ranks")
	}
}
