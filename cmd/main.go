package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/steal-the-pile/application"
	"github.com/luca-patrignani/steal-the-pile/config"
)

func main() {
	configPath := flag.String("config", "stealpile.yaml", "path to the YAML configuration file")
	seed := flag.Int64("seed", 0, "shuffle seed; overrides the configuration when not 0")
	logDir := flag.String("log-dir", "", "directory of the session logs; overrides the configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}

	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(ptermLevel(cfg.Level())))
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("S", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("teal ", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("P", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("ile", pterm.FgDarkGray.ToStyle()),
	).Render()

	pterm.Info.Println("Welcome to Steal the Pile!")
	if cfg.Seed != 0 {
		logger.Info("shuffles are reproducible", "seed", cfg.Seed)
	}
	pterm.Println()

	orchestrator := application.New(cfg, terminal{}, console{}, logger)
	if err := orchestrator.Run(); err != nil {
		logger.Error("game aborted", "error", err)
		os.Exit(1)
	}

	pterm.Println()
	pterm.Success.Println("Thanks for playing! See you next time.")
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case level <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case level <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
