package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/claude/liftplan/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "liftplan server URL (e.g. https://liftplan.tail1234.ts.net)")
	vocabPath := flag.String("vocabulary", "", "vocabulary YAML file for parse_program")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftplan-mcp -server <URL> [-vocabulary FILE]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	vocab := program.DefaultVocabulary()
	if *vocabPath != "" {
		var err error
		vocab, err = program.LoadVocabulary(*vocabPath)
		if err != nil {
			log.Error("failed to load vocabulary", "path", *vocabPath, "error", err)
			os.Exit(1)
		}
	}
	parser := program.New(program.WithVocabulary(vocab), program.WithLogger(log))

	s := mcp.New(mcp.NewHTTPClient(*serverURL), parser, Version, log)
	log.Info("liftplan-mcp serving on stdio", "server", *serverURL, "version", Version)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
