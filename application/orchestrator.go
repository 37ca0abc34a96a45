// Package application chains steal-the-pile sessions for a fixed roster:
// it asks for players once, then plays, reports and logs one session per
// round until the players stop.
package application

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/luca-patrignani/steal-the-pile/config"
	"github.com/luca-patrignani/steal-the-pile/domain/deck"
	"github.com/luca-patrignani/steal-the-pile/domain/game"
	"github.com/luca-patrignani/steal-the-pile/ledger"
)

// Prompter collects the players' answers.
type Prompter interface {
	PlayerCount() (int, error)
	PlayerName(seat int) (string, error)
	// DeckSize asks for the size of the next deck; suggested is the configured default.
	DeckSize(suggested int) (int, error)
	WantsHistory() (bool, error)
	HistoryName() (string, error)
	PlayAgain() (bool, error)
}

// Display shows what happened to the players.
type Display interface {
	ShowResult(result game.Result, logPath string)
	ShowHistory(name string, positions []int)
	ShowPlayerNotFound(name string)
	ShowError(err error)
}

type Option func(*Orchestrator)

// WithPermuters overrides how the deck of each session is shuffled.
func WithPermuters(f func(session int) deck.Permuter) Option {
	return func(o *Orchestrator) {
		o.permuter = f
	}
}

type Orchestrator struct {
	cfg      config.Config
	prompter Prompter
	display  Display
	logger   *slog.Logger
	permuter func(session int) deck.Permuter
	roster   *game.Roster
	sessions int
}

func New(cfg config.Config, prompter Prompter, display Display, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		prompter: prompter,
		display:  display,
		logger:   logger,
	}
	o.permuter = o.defaultPermuter
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// defaultPermuter seeds session n with seed+n-1, so a seeded run replays
// the same sequence of deals.
func (o *Orchestrator) defaultPermuter(session int) deck.Permuter {
	if o.cfg.Seed == 0 {
		return deck.NewPermuter()
	}
	return deck.NewSeededPermuter(o.cfg.Seed + int64(session) - 1)
}

func (o *Orchestrator) Roster() *game.Roster {
	return o.roster
}

// Run asks for the roster and plays sessions until the players decline to
// play again.
func (o *Orchestrator) Run() error {
	if err := o.SetupRoster(); err != nil {
		return err
	}
	for {
		size, err := o.prompter.DeckSize(o.cfg.DeckSize)
		if err != nil {
			return fmt.Errorf("read deck size: %w", err)
		}
		result, path, err := o.PlaySession(size)
		if errors.Is(err, deck.ErrInvalidSize) {
			o.display.ShowError(err)
			continue
		}
		if err != nil {
			return err
		}
		o.display.ShowResult(result, path)

		if err := o.lookupHistory(); err != nil {
			return err
		}
		again, err := o.prompter.PlayAgain()
		if err != nil {
			return fmt.Errorf("read replay answer: %w", err)
		}
		if !again {
			return nil
		}
	}
}

// SetupRoster asks for the players. A blank or repeated name is reported and
// asked again.
func (o *Orchestrator) SetupRoster() error {
	count, err := o.prompter.PlayerCount()
	if err != nil {
		return fmt.Errorf("read player count: %w", err)
	}
	if count <= 0 {
		return fmt.Errorf("%w: got %d", game.ErrNoPlayers, count)
	}

	names := make([]string, 0, count)
	for len(names) < count {
		name, err := o.prompter.PlayerName(len(names) + 1)
		if err != nil {
			return fmt.Errorf("read player name: %w", err)
		}
		if _, err := game.NewRoster(append(names, name)...); err != nil {
			o.display.ShowError(err)
			continue
		}
		names = append(names, name)
	}

	roster, err := game.NewRoster(names...)
	if err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	o.roster = roster
	o.logger.Debug("roster ready", "players", roster.Names())
	return nil
}

// PlaySession plays one session of deckSize cards and writes its log. It
// returns the result and the path of the log file.
func (o *Orchestrator) PlaySession(deckSize int) (game.Result, string, error) {
	if o.roster == nil {
		return game.Result{}, "", game.ErrNoPlayers
	}
	if deckSize <= 0 {
		return game.Result{}, "", fmt.Errorf("%w: got %d", deck.ErrInvalidSize, deckSize)
	}

	id := o.sessions + 1
	if err := os.MkdirAll(o.cfg.LogDir, 0o755); err != nil {
		return game.Result{}, "", fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(o.cfg.LogDir, o.cfg.SessionLogName(id))
	f, err := os.Create(path)
	if err != nil {
		return game.Result{}, "", fmt.Errorf("create session log: %w", err)
	}
	defer f.Close()
	o.logger.Debug("session log created", "session", id, "path", path)

	chain := ledger.New(id, f)
	s, err := game.NewSession(o.roster, deckSize, id,
		game.WithPermuter(o.permuter(id)),
		game.WithRecorder(chain),
	)
	if err != nil {
		return game.Result{}, path, fmt.Errorf("session %d: %w", id, err)
	}
	o.sessions = id
	o.logger.Info("session started", "session", id, "players", o.roster.Len(), "cards", s.Dealt())

	result, err := s.Run()
	if err != nil {
		return game.Result{}, path, fmt.Errorf("session %d: %w", id, err)
	}
	if err := chain.Verify(); err != nil {
		return game.Result{}, path, fmt.Errorf("session %d ledger: %w", id, err)
	}
	o.logger.Debug("session ledger verified", "session", id, "blocks", chain.Len(), "head", chain.GetLatest().Hash)
	if err := f.Close(); err != nil {
		return game.Result{}, path, fmt.Errorf("close session log: %w", err)
	}

	winners := make([]string, 0, len(result.Standings))
	for _, p := range result.Winners() {
		winners = append(winners, p.Name())
	}
	o.logger.Info("session finished", "session", id, "draws", result.Draws, "turns", result.Turns, "winners", winners)
	return result, path, nil
}

// History returns the ranking history of the named player.
func (o *Orchestrator) History(name string) ([]int, bool) {
	if o.roster == nil {
		return nil, false
	}
	return o.roster.History(name)
}

func (o *Orchestrator) lookupHistory() error {
	wants, err := o.prompter.WantsHistory()
	if err != nil {
		return fmt.Errorf("read history answer: %w", err)
	}
	if !wants {
		return nil
	}
	name, err := o.prompter.HistoryName()
	if err != nil {
		return fmt.Errorf("read player name: %w", err)
	}
	p, ok := o.roster.Lookup(name)
	if !ok {
		o.display.ShowPlayerNotFound(name)
		return nil
	}
	o.display.ShowHistory(p.Name(), p.History())
	return nil
}
