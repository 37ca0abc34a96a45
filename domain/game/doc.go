// Package game implements the steal-the-pile engine: players holding piles of
// cards, the round-robin turn loop over a shared draw pile, and the resolution
// cascade applied to every drawn card.
//
// # Core Types
//
// Roster: the players of a table. It outlives sessions so that the ranking
// history of each player accumulates across replays.
//
// Session: one game, from deck creation to final ranking. It owns the draw
// pile and the discard area and mutates the roster's piles.
//
// Table: the mutable state the cascade reads (draw pile, discard area, piles).
//
// # Resolution Cascade
//
// Every drawn card is resolved by the first matching rule:
//
//  1. Steal: an opponent's top card has the drawn rank. The largest such pile
//     (lowest roster index on ties) moves onto the current player's pile,
//     followed by the drawn card.
//  2. Recover: the discard area holds a card of the drawn rank. The first one
//     in storage order and the drawn card join the current player's pile.
//  3. Extend: the current player's own top card has the drawn rank.
//  4. Discard: the drawn card goes to the discard area and the turn ends.
//
// Rules 1 to 3 let the same player draw again. The game ends the moment the
// draw pile is empty.
//
// # Events
//
// Every deck creation, draw, rule firing and rank assignment is reported as an
// Event to the session's Recorder, one event per engine action.
package game
