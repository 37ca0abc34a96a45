// Package mcp exposes steal-the-pile sessions as MCP tools, so an agent can
// seat a roster, deal and play sessions and query ranking histories.
package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/luca-patrignani/steal-the-pile/config"
	"github.com/luca-patrignani/steal-the-pile/domain/deck"
	"github.com/luca-patrignani/steal-the-pile/domain/game"
	"github.com/luca-patrignani/steal-the-pile/ledger"
)

var (
	ErrNoRoster      = errors.New("no players are seated")
	ErrNoSession     = errors.New("no session is dealt")
	ErrSessionPlayed = errors.New("the session has already been played")
)

// Server holds the table shared by all tool calls. Tool calls may arrive
// concurrently; every access goes through mu.
type Server struct {
	mu       sync.Mutex
	cfg      config.Config
	roster   *game.Roster
	sessions int

	session *game.Session
	chain   *ledger.Ledger
	logBuf  *bytes.Buffer
	played  bool
}

func NewServer(cfg config.Config) *Server {
	return &Server{cfg: cfg}
}

// SessionView is the JSON rendition of a dealt or played session.
type SessionView struct {
	Session   int            `json:"session"`
	State     string         `json:"state"`
	Players   []string       `json:"players"`
	Dealt     int            `json:"dealt"`
	Draws     int            `json:"draws,omitempty"`
	Turns     int            `json:"turns,omitempty"`
	Standings []StandingView `json:"standings,omitempty"`
	Winners   []string       `json:"winners,omitempty"`
	Discard   []string       `json:"discard,omitempty"`
	Log       []string       `json:"log"`
	LogFile   string         `json:"log_file,omitempty"`
	// LedgerHead is the hash of the latest ledger block.
	LedgerHead string `json:"ledger_head"`
}

type StandingView struct {
	Player   string   `json:"player"`
	Position int      `json:"position"`
	Cards    int      `json:"cards"`
	Pile     []string `json:"pile"`
	Winner   bool     `json:"winner"`
}

// PlayerView is a seated player with their last final positions, oldest first.
type PlayerView struct {
	Name    string `json:"name"`
	History []int  `json:"history"`
}

// NewSession deals a new session. A non-empty names list seats a new roster,
// dropping every history; otherwise the current roster plays again. seed 0
// falls back to the configured seed, then to cryptographic randomness.
func (s *Server) NewSession(names []string, deckSize int, seed int64) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster := s.roster
	if len(names) > 0 {
		r, err := game.NewRoster(names...)
		if err != nil {
			return SessionView{}, err
		}
		roster = r
	}
	if roster == nil {
		return SessionView{}, ErrNoRoster
	}
	if deckSize == 0 {
		deckSize = s.cfg.DeckSize
	}
	if seed == 0 {
		seed = s.cfg.Seed
	}
	var permuter deck.Permuter = deck.NewPermuter()
	if seed != 0 {
		permuter = deck.NewSeededPermuter(seed)
	}

	id := s.sessions + 1
	buf := &bytes.Buffer{}
	chain := ledger.New(id, buf)
	sess, err := game.NewSession(roster, deckSize, id, game.WithPermuter(permuter), game.WithRecorder(chain))
	if err != nil {
		return SessionView{}, err
	}

	s.roster = roster
	s.sessions = id
	s.session, s.chain, s.logBuf, s.played = sess, chain, buf, false
	return s.view(nil), nil
}

// RunSession plays the dealt session to the end and writes its log file.
func (s *Server) RunSession() (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return SessionView{}, ErrNoSession
	}
	if s.played {
		return SessionView{}, ErrSessionPlayed
	}
	result, err := s.session.Run()
	if err != nil {
		return SessionView{}, err
	}
	s.played = true
	if err := s.chain.Verify(); err != nil {
		return SessionView{}, fmt.Errorf("ledger: %w", err)
	}

	view := s.view(&result)
	if err := os.MkdirAll(s.cfg.LogDir, 0o755); err != nil {
		return SessionView{}, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(s.cfg.LogDir, s.cfg.SessionLogName(result.Session))
	if err := os.WriteFile(path, s.logBuf.Bytes(), 0o644); err != nil {
		return SessionView{}, fmt.Errorf("write session log: %w", err)
	}
	view.LogFile = path
	return view, nil
}

// History returns the positions of the named player, matched case-insensitively.
func (s *Server) History(name string) (PlayerView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roster == nil {
		return PlayerView{}, false
	}
	p, ok := s.roster.Lookup(name)
	if !ok {
		return PlayerView{}, false
	}
	return PlayerView{Name: p.Name(), History: p.History()}, true
}

// Block returns the ledger block at index of the current session; index 0 is
// the genesis block and index n holds the n-th log line.
func (s *Server) Block(index int) (ledger.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chain == nil {
		return ledger.Block{}, ErrNoSession
	}
	b, err := s.chain.GetByIndex(index)
	if err != nil {
		return ledger.Block{}, err
	}
	return *b, nil
}

func (s *Server) Roster() []PlayerView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roster == nil {
		return nil
	}
	players := s.roster.Players()
	views := make([]PlayerView, len(players))
	for i, p := range players {
		views[i] = PlayerView{Name: p.Name(), History: p.History()}
	}
	return views
}

func (s *Server) view(result *game.Result) SessionView {
	v := SessionView{
		Session: s.session.ID(),
		State:   s.session.State().String(),
		Players: s.roster.Names(),
		Dealt:   s.session.Dealt(),
	}
	for _, e := range s.chain.Events() {
		v.Log = append(v.Log, game.FormatEvent(e))
	}
	v.LedgerHead = s.chain.GetLatest().Hash
	if result == nil {
		return v
	}
	v.Draws = result.Draws
	v.Turns = result.Turns
	for _, st := range result.Standings {
		v.Standings = append(v.Standings, StandingView{
			Player:   st.Player.Name(),
			Position: st.Position,
			Cards:    st.Cards,
			Pile:     cardNames(st.Player.Pile()),
			Winner:   st.Winner,
		})
	}
	for _, p := range result.Winners() {
		v.Winners = append(v.Winners, p.Name())
	}
	v.Discard = cardNames(result.Discard)
	return v
}

func cardNames(cards []deck.Card) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return names
}

func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
