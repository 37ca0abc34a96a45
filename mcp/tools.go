package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools adds all game tools to the MCP server.
func (s *Server) RegisterTools(ms *server.MCPServer) {
	ms.AddTool(newSessionTool(), s.handleNewSession)
	ms.AddTool(runSessionTool(), s.handleRunSession)
	ms.AddTool(playerHistoryTool(), s.handlePlayerHistory)
	ms.AddTool(rosterTool(), s.handleRoster)
	ms.AddTool(ledgerBlockTool(), s.handleLedgerBlock)
}

// --- Tool definitions ---

func newSessionTool() mcp.Tool {
	return mcp.NewTool("new_session",
		mcp.WithDescription("Build and shuffle the deck of a new steal-the-pile session. "+
			"Seating new players resets every ranking history; omit players to let the current table play again."),
		mcp.WithString("players", mcp.Description("Comma-separated player names in seating order, e.g. 'Ana, Bruno'")),
		mcp.WithNumber("deck_size", mcp.Description("Number of cards to deal (capped at 52); 0 uses the configured size")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed for a reproducible deal; 0 uses the configured seed or true randomness")),
	)
}

func runSessionTool() mcp.Tool {
	return mcp.NewTool("run_session",
		mcp.WithDescription("Play the dealt session until the draw pile is empty. Returns the game log, the ranking and the winners."),
	)
}

func playerHistoryTool() mcp.Tool {
	return mcp.NewTool("player_history",
		mcp.WithDescription("Get the last final positions of a seated player, oldest first. Names are case-insensitive."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the player")),
	)
}

func rosterTool() mcp.Tool {
	return mcp.NewTool("roster",
		mcp.WithDescription("List the seated players with their ranking histories. Read-only."),
	)
}

func ledgerBlockTool() mcp.Tool {
	return mcp.NewTool("ledger_block",
		mcp.WithDescription("Get one block of the hash-chained ledger of the current session, to audit a log line. "+
			"Block 0 is the genesis block; block n holds the n-th log line."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Index of the block in the chain")),
	)
}

// --- Tool handlers ---

func (s *Server) handleNewSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := splitNames(request.GetString("players", ""))
	deckSize := request.GetInt("deck_size", 0)
	seed := request.GetInt("seed", 0)

	if deckSize < 0 {
		return mcp.NewToolResultErrorf("deck_size must be positive, got %d", deckSize), nil
	}
	view, err := s.NewSession(names, deckSize, int64(seed))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to deal a session: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(view)), nil
}

func (s *Server) handleRunSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := s.RunSession()
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to run the session: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(view)), nil
}

func (s *Server) handlePlayerHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name must not be empty"), nil
	}
	player, ok := s.History(name)
	if !ok {
		return mcp.NewToolResultErrorf("Player %q not found.", name), nil
	}
	return mcp.NewToolResultText(respondJSON(player)), nil
}

func (s *Server) handleRoster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	players := s.Roster()
	if players == nil {
		return mcp.NewToolResultError("No players are seated. Use new_session first."), nil
	}
	return mcp.NewToolResultText(respondJSON(players)), nil
}

func splitNames(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	return strings.Split(list, ",")
}

func (s *Server) handleLedgerBlock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index := request.GetInt("index", -1)
	block, err := s.Block(index)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to read block %d: %v", index, err), nil
	}
	return mcp.NewToolResultText(respondJSON(block)), nil
}
