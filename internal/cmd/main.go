package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/fantadev/asta/internal/auction"
	"github.com/fantadev/asta/internal/dbconfig"
	"github.com/fantadev/asta/internal/events"
	"github.com/fantadev/asta/internal/gateway"
	"github.com/fantadev/asta/internal/snapshot"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := loadConfig(getEnv("ASTA_CONFIG", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	go manager.Start(ctx)

	sinks := events.Multi{events.LogPublisher{}, manager}
	if cfg.NATS.URL != "" {
		natsPub, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect event feed")
		}
		defer natsPub.Close()
		sinks = append(sinks, natsPub)
		log.Info().Str("url", cfg.NATS.URL).Msg("event feed enabled")
	}

	store := auction.NewStore(auction.WithPublisher(sinks))

	snapshots, err := setupSnapshots(ctx, cfg.Snapshot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up snapshot store")
	}
	if snapshots != nil {
		restoreLatest(ctx, store, snapshots)
	}

	service := gateway.NewService(store, snapshots, manager)
	mux := http.NewServeMux()
	service.RegisterRoutes(mux)

	server := setupServer(mux, cfg.Port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("addr", server.Addr).Msg("auction board listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupSnapshots(ctx context.Context, cfg SnapshotConfig) (snapshot.Store, error) {
	switch cfg.Backend {
	case "", "none":
		return nil, nil
	case "file":
		return snapshot.NewFileStore(cfg.Path), nil
	case "postgres":
		return snapshot.OpenPostgresStore(ctx, dbconfig.NewConfigFromEnv().DSN())
	default:
		return nil, errors.New("unknown snapshot backend: " + cfg.Backend)
	}
}

func restoreLatest(ctx context.Context, store *auction.Store, snapshots snapshot.Store) {
	rec, err := snapshots.Load(ctx)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		log.Info().Msg("no previous snapshot, starting fresh")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load snapshot, starting fresh")
		return
	}
	if err := store.Restore(rec); err != nil {
		log.Error().Err(err).Msg("failed to restore snapshot, starting fresh")
		return
	}
	log.Info().
		Int("teams", len(rec.Teams)).
		Int("players", len(rec.Players)).
		Msg("restored auction from snapshot")
}
