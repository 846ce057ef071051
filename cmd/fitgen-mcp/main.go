package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitgen/internal/config"
	"github.com/claude/fitgen/internal/generate"
	fitmcp "github.com/claude/fitgen/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional; env vars apply either way)")
	remote := flag.String("server", "", "fitgen server URL; generate through its API instead of calling Gemini directly")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitgen-mcp", Version)
		return
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Log.SlogLevel()
	// stdout carries the protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var planner fitmcp.Planner
	if *remote != "" {
		planner = fitmcp.NewHTTPClient(*remote)
		log.Info("remote mode", "server", *remote)
	} else {
		gen, err := generate.NewGemini(context.Background(), generate.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Temperature: cfg.Gemini.Temperature,
		}, log)
		if err == nil {
			err = gen.Ready()
		}
		if err != nil {
			log.Error("generation client unavailable", "error", err)
			fmt.Fprintln(os.Stderr, generate.UserMessage(err))
			os.Exit(1)
		}
		planner = gen
	}

	s := fitmcp.New(planner, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
