package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/luca-patrignani/steal-the-pile/domain/game"
)

const genesisPrevHash = "0"

type Ledger struct {
	mu      sync.RWMutex
	session int
	blocks  []Block
	out     io.Writer
}

// New creates the ledger of a session with its genesis block. When out is not
// nil every recorded event is also written to it as a text line.
func New(session int, out io.Writer) *Ledger {
	l := &Ledger{
		session: session,
		blocks:  make([]Block, 0),
		out:     out,
	}

	genesis := Block{
		Index:     0,
		Timestamp: time.Now().Unix(),
		PrevHash:  genesisPrevHash,
		Event:     game.Event{Session: session, Details: "genesis"},
	}
	genesis.Hash = calculateHash(genesis)
	l.blocks = append(l.blocks, genesis)

	return l
}

// Record appends the event to the chain after writing its text line. Events
// of another session are rejected.
func (l *Ledger) Record(event game.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Session != l.session {
		return fmt.Errorf("event of session %d sent to the ledger of session %d", event.Session, l.session)
	}
	latest := l.blocks[len(l.blocks)-1]

	block := Block{
		Index:     latest.Index + 1,
		Timestamp: time.Now().Unix(),
		PrevHash:  latest.Hash,
		Event:     event,
	}
	block.Hash = calculateHash(block)

	if err := validateBlock(block, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	if l.out != nil {
		if _, err := fmt.Fprintln(l.out, game.FormatEvent(event)); err != nil {
			return fmt.Errorf("write log line: %w", err)
		}
	}

	l.blocks = append(l.blocks, block)
	return nil
}

// Len is the number of recorded events, genesis excluded.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.blocks) - 1
}

// GetLatest returns the most recently added block.
func (l *Ledger) GetLatest() Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.blocks[len(l.blocks)-1]
}

// GetByIndex retrieves a block by its index in the chain.
func (l *Ledger) GetByIndex(index int) (*Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.blocks) {
		return nil, fmt.Errorf("index %d out of range", index)
	}

	return &l.blocks[index], nil
}

// Events returns the recorded events in order.
func (l *Ledger) Events() []game.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := make([]game.Event, 0, len(l.blocks)-1)
	for _, b := range l.blocks[1:] {
		events = append(events, b.Event)
	}
	return events
}

// Verify checks the genesis block and the linkage and hash of every block.
func (l *Ledger) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	genesis := l.blocks[0]
	if genesis.PrevHash != genesisPrevHash || genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("invalid genesis block")
	}

	for i := 1; i < len(l.blocks); i++ {
		if err := validateBlock(l.blocks[i], l.blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}

	return nil
}

// validateBlock checks index continuity, previous hash linkage and the block's own hash.
func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}

	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}

	expectedHash := calculateHash(current)
	if current.Hash != expectedHash {
		return fmt.Errorf("invalid hash: expected %s, got %s", expectedHash, current.Hash)
	}

	return nil
}

// calculateHash is the SHA256 of the index, timestamp, previous hash and
// JSON-encoded event.
func calculateHash(block Block) string {
	eventBytes, _ := json.Marshal(block.Event)

	data := fmt.Sprintf("%d%d%s%s",
		block.Index,
		block.Timestamp,
		block.PrevHash,
		string(eventBytes),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
