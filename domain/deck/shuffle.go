package deck

import (
	"crypto/cipher"
	"encoding/binary"
	"math/big"

	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/random"
	"go.dedis.ch/kyber/v4/xof/blake2xb"
)

// Permuter abstracts the random permutation applied to a freshly built deck,
// so that tests can pin the exact deal.
type Permuter interface {
	// Perm returns a permutation of [0, n).
	Perm(n int) []int
}

var suite suites.Suite = suites.MustFind("Ed25519")

// StreamPermuter runs a Fisher-Yates shuffle whose swap indices are sampled
// without modulo bias from a cipher stream.
type StreamPermuter struct {
	stream cipher.Stream
}

// NewPermuter reads from the suite's cryptographic random stream.
func NewPermuter() *StreamPermuter {
	return &StreamPermuter{stream: suite.RandomStream()}
}

// NewSeededPermuter derives the stream from seed through a blake2xb XOF:
// the same seed yields the same sequence of permutations.
func NewSeededPermuter(seed int64) *StreamPermuter {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	return &StreamPermuter{stream: blake2xb.New(buf[:])}
}

func (s *StreamPermuter) Perm(n int) []int {
	perm := Identity{}.Perm(n)
	for i := n - 1; i > 0; i-- {
		j := s.index(i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// index draws uniformly from [0, hi]. random.Int never returns 0, so it
// samples [1, hi+1] and shifts down.
func (s *StreamPermuter) index(hi int) int {
	return int(random.Int(big.NewInt(int64(hi+2)), s.stream).Int64()) - 1
}

// Identity keeps the building order.
type Identity struct{}

func (Identity) Perm(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// Fixed returns the same permutation whatever n is asked; Build rejects it
// when the length does not match.
type Fixed []int

func (f Fixed) Perm(int) []int {
	out := make([]int, len(f))
	copy(out, f)
	return out
}
