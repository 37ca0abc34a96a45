// Package ledger keeps the append-only record of a steal-the-pile session.
//
// # Core Components
//
// Ledger: a hash-chained log of the engine events of one session. It
// implements game.Recorder, so a session can write into it directly, and it
// mirrors every entry as one text line on an optional io.Writer (the session
// log file).
//
// Block: a single event with its index, timestamp and links to the previous
// block.
//
// # Integrity
//
// Each block hash covers the index, timestamp, previous hash and event. Verify
// walks the chain from the genesis block and reports the first block that
// does not match, so any edit of a recorded event is detected.
package ledger
