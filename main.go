package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"firefront/internal/game"
	"firefront/internal/server"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	addr       = flag.String("addr", ":8080", "HTTP listen address")
	configPath = flag.String("config", "config.yaml", "Path to the map geometry config")
	botCount   = flag.Int("bots", 2, "Number of wandering bots to spawn")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	logger, err := buildLogger(*debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	geo, err := game.LoadGeometry(*configPath)
	if err != nil {
		sugar.Fatalf("Failed to load map geometry: %v", err)
	}

	hub := game.NewHub(sugar)
	world := game.NewWorld(geo, hub, sugar)
	world.SpawnBots(*botCount)

	srv := server.New(*addr, world, sugar)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return world.Run(ctx) })
	g.Go(func() error { return srv.Run(ctx) })

	if err := g.Wait(); err != nil {
		sugar.Fatalf("Server failed: %v", err)
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
