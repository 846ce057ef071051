package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/fitgen/internal/config"
	"github.com/claude/fitgen/internal/export"
	"github.com/claude/fitgen/internal/generate"
	fitmcp "github.com/claude/fitgen/internal/mcp"
	"github.com/claude/fitgen/internal/server"
	"github.com/claude/fitgen/internal/workspace"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional; env vars apply either way)")
	withMCP := flag.Bool("mcp", false, "also serve MCP over streamable HTTP at /mcp")
	flag.Parse()

	// Load config
	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Log.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	log.Info("fitgen starting", "version", Version)

	// Generation client. A missing key is reported but not fatal: the form
	// still renders and shows a configuration banner.
	ctx := context.Background()
	gen, err := generate.NewGemini(ctx, generate.Config{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
	}, log)
	if err != nil {
		log.Error("failed to create generation client", "error", err)
		os.Exit(1)
	}
	if err := gen.Ready(); err != nil {
		log.Error("workout generation disabled", "error", err)
	} else {
		log.Info("generation client ready", "model", gen.ModelName())
	}

	// Browser workspaces live in memory; idle ones are pruned.
	sessions := workspace.NewStore()
	pruneCtx, stopPrune := context.WithCancel(ctx)
	defer stopPrune()
	go prune(pruneCtx, sessions, cfg.Server.SessionIdle, log)

	srv := server.New(gen, sessions, export.NewPDF(), log)
	if *withMCP {
		srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(fitmcp.New(gen, Version, log)))
		log.Info("mcp endpoint enabled", "path", "/mcp")
	}

	// Start server: tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := cfg.Server.Addr()
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "local (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}

	// Let in-flight generations land, but not forever.
	done := make(chan struct{})
	go func() {
		srv.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn("abandoning in-flight generations")
	}
	log.Info("server stopped")
}

func prune(ctx context.Context, sessions *workspace.Store, maxIdle time.Duration, log *slog.Logger) {
	interval := maxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(maxIdle); n > 0 {
				log.Info("pruned idle workspaces", "count", n, "live", sessions.Len())
			}
		}
	}
}
