package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fantadev/asta/internal/auction"
	"github.com/fantadev/asta/internal/dbconfig"
	"github.com/fantadev/asta/internal/models"
	"github.com/fantadev/asta/internal/state"
)

// Seeds a Postgres snapshot row from a listone JSON file so a fresh server
// starts with the player pool already imported.
func main() {
	listone := flag.String("listone", "listone.json", "path to the player list JSON file")
	mode := flag.String("mode", string(models.ModeClassic), "auction mode (classic or mantra)")
	flag.Parse()

	ctx := context.Background()

	data, err := os.ReadFile(*listone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *listone, err)
		os.Exit(1)
	}
	imports, err := state.ParsePlayerImports(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", *listone, err)
		os.Exit(1)
	}

	store := auction.NewStore()
	if !store.SetMode(models.AuctionMode(*mode)) {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(1)
	}
	if err := store.ImportRoster(imports); err != nil {
		fmt.Fprintf(os.Stderr, "import roster: %v\n", err)
		os.Exit(1)
	}

	payload, err := state.Export(store.Snapshot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "export state: %v\n", err)
		os.Exit(1)
	}

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS auction_snapshots (
            id       BIGSERIAL PRIMARY KEY,
            payload  JSONB NOT NULL,
            saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `); err != nil {
		fmt.Fprintf(os.Stderr, "ensure schema: %v\n", err)
		os.Exit(1)
	}

	if _, err := pool.Exec(ctx, `
        INSERT INTO auction_snapshots (payload) VALUES ($1)
    `, payload); err != nil {
		fmt.Fprintf(os.Stderr, "insert snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Roster seed: players=%d mode=%s\n", len(imports), *mode)
}
