package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"

	"github.com/luca-patrignani/steal-the-pile/domain/deck"
	"github.com/luca-patrignani/steal-the-pile/domain/game"
)

// console renders session outcomes with pterm panels.
type console struct{}

func (console) ShowResult(result game.Result, logPath string) {
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		standingPanels(result),
		{getWinnerPanel(result), getDiscardPanel(result.Discard)},
	}).Render()
	pterm.Info.Printfln("Game %d: %d draws over %d turns. Log written to %s", result.Session, result.Draws, result.Turns, logPath)
	pterm.Println()
}

func (console) ShowHistory(name string, positions []int) {
	pterm.Println(historyBox(name, positions))
}

func (console) ShowPlayerNotFound(name string) {
	pterm.Error.Printfln("Player %q not found.", strings.TrimSpace(name))
}

func (console) ShowError(err error) {
	pterm.Error.Println(err.Error())
}

func standingPanels(result game.Result) []pterm.Panel {
	panels := make([]pterm.Panel, 0, len(result.Standings))
	for _, s := range result.Standings {
		panels = append(panels, pterm.Panel{Data: printStanding(s)})
	}
	return panels
}

func printStanding(s game.Standing) string {
	hpadding := 4
	status := pterm.LightRed("Lost")
	if s.Winner {
		hpadding = 10
		status = pterm.LightGreen("Winner")
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)
	top := "-"
	if card, ok := s.Player.Top(); ok {
		top = card.String()
	}
	title := s.Player.Name()
	body := pterm.Sprintf("%s\nPosition: %d\nCards: %d\nTop: %s", status, s.Position, s.Cards, top)
	return pbox.WithTitle(title).WithTitleTopLeft().Sprint(fitTitle(title, body))
}

func getWinnerPanel(result game.Result) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	info := ""
	for _, s := range result.Standings {
		if s.Winner {
			info += pterm.Sprintfln("%s wins with %d cards", pterm.LightCyan(s.Player.Name()), s.Cards)
		}
	}
	title := pterm.LightGreen("|WINNER|")
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopCenter().Sprint(fitTitle(title, strings.TrimSuffix(info, "\n")))}
}

func getDiscardPanel(discard []deck.Card) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	cards := "empty"
	if len(discard) > 0 {
		names := make([]string, len(discard))
		for i, c := range discard {
			names[i] = c.String()
		}
		cards = strings.Join(names, " - ")
	}
	title := pterm.LightYellow("|DISCARD AREA|")
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopCenter().Sprint(fitTitle(title, cards))}
}

func historyBox(name string, positions []int) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := "No games played yet"
	if len(positions) > 0 {
		lines := make([]string, len(positions))
		for i, p := range positions {
			lines[i] = pterm.Sprintf("Position: %d", p)
		}
		body = strings.Join(lines, "\n")
	}
	return pbox.WithTitle(name).WithTitleTopLeft().Sprint(fitTitle(name, body))
}

// fitTitle pads the first line of body so that the box is never narrower than
// its title, escape codes included; pterm panics otherwise.
func fitTitle(title, body string) string {
	lines := strings.Split(body, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(pterm.RemoveColorFromString(l)))
	}
	if need := len(title) - width; need > 0 {
		lines[0] += strings.Repeat(" ", need)
	}
	return strings.Join(lines, "\n")
}
