package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// terminal asks the players through interactive pterm prompts.
type terminal struct{}

func (terminal) PlayerCount() (int, error) {
	for {
		n, err := askNumber("How many players are sitting at the table?", 2)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return n, nil
		}
		pterm.Error.Println("At least one player is needed.")
	}
}

func (terminal) PlayerName(seat int) (string, error) {
	name, err := pterm.DefaultInteractiveTextInput.WithDefaultText(fmt.Sprintf("Name of player %d", seat)).Show()
	pterm.Println()
	return name, err
}

func (terminal) DeckSize(suggested int) (int, error) {
	return askNumber("How many cards in the deck?", suggested)
}

func (terminal) WantsHistory() (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultText("Look up the ranking history of a player?").WithDefaultValue(false).Show()
}

func (terminal) HistoryName() (string, error) {
	name, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Name of the player").Show()
	pterm.Println()
	return name, err
}

func (terminal) PlayAgain() (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultText("Start a new game?").WithDefaultValue(true).Show()
}

// askNumber repeats the question until the answer is an integer.
func askNumber(question string, def int) (int, error) {
	for {
		answer, err := pterm.DefaultInteractiveTextInput.WithDefaultText(question).WithDefaultValue(strconv.Itoa(def)).Show()
		if err != nil {
			return 0, err
		}
		pterm.Println()
		n, err := parseNumber(answer)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		return n, nil
	}
}

func parseNumber(answer string) (int, error) {
	answer = strings.TrimSpace(answer)
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", answer)
	}
	return n, nil
}
