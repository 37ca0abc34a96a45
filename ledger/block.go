package ledger

import "github.com/luca-patrignani/steal-the-pile/domain/game"

// Block is one recorded event.
type Block struct {
	Index     int        `json:"index"`
	Timestamp int64      `json:"timestamp"`
	PrevHash  string     `json:"prev_hash"`
	Hash      string     `json:"hash"`
	Event     game.Event `json:"event"`
}
