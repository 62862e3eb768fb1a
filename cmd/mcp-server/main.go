// cmd/mcp-server/main.go — Standalone HTTP MCP server for symdiff
//
// Exposes the differentiation tools as an HTTP endpoint for AI agent
// frameworks. Same server as `symdiff serve`, without the rest of the CLI.
//
// Usage:
//
//	go run ./cmd/mcp-server -port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/internal/config"
	"github.com/njchilds90/symdiff/internal/server"
)

func main() {
	port := flag.Int("port", 0, "Port to listen on (default from config)")
	configPath := flag.String("config", "", "YAML config file")
	debug := flag.Bool("debug", false, "Gin debug mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = strconv.Itoa(*port)
		if err := cfg.Validate(); err != nil {
			slog.Error("invalid port", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	log := config.NewLogger(cfg.Log, os.Stderr)

	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("symdiff MCP server",
		slog.String("tool", "POST /tool"),
		slog.String("schema", "GET /schema"),
		slog.String("health", "GET /health"),
		slog.String("metrics", "GET /metrics"))
	if err := server.New(cfg.Server, symdiff.Default(), log).Run(ctx); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
