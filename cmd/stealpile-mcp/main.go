package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/luca-patrignani/steal-the-pile/config"
	stealmcp "github.com/luca-patrignani/steal-the-pile/mcp"
)

func main() {
	configPath := flag.String("config", "stealpile.yaml", "path to the YAML configuration file")
	logDir := flag.String("log-dir", "", "directory of the session logs; overrides the configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}

	s := server.NewMCPServer("steal-the-pile", "1.0.0")
	stealmcp.NewServer(cfg).RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
