// Seeder populates a development database with profiles and point accounts.
// Safe to re-run: it skips seeding when accounts already exist.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/points-ledger/internal/config"
	"github.com/points-ledger/internal/logger"
	"github.com/points-ledger/internal/platform/persistence"
)

const (
	totalProfiles = 100
	maxBalance    = 10000
)

var firstNames = []string{
	"Ada", "Alan", "Barbara", "Claude", "Dennis", "Donald", "Edsger", "Frances",
	"Grace", "John", "Ken", "Leslie", "Linus", "Margaret", "Niklaus", "Radia",
	"Rob", "Robert", "Tim", "Tony",
}

var lastNames = []string{
	"Lovelace", "Turing", "Liskov", "Shannon", "Ritchie", "Knuth", "Dijkstra",
	"Allen", "Hopper", "Backus", "Thompson", "Lamport", "Torvalds", "Hamilton",
	"Wirth", "Perlman", "Pike", "Kahn", "Berners-Lee", "Hoare",
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig("seeder")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	postgresDB, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	pool := postgresDB.Pool()

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		log.Error("Failed to count existing accounts", "error", err)
		os.Exit(1)
	}
	if count >= totalProfiles {
		log.Info("Database already seeded, skipping", "accounts", count)
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Info("Seeding profiles", "count", totalProfiles)

	profileRows := make([][]interface{}, 0, totalProfiles)
	for i := 0; i < totalProfiles; i++ {
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		profileRows = append(profileRows, []interface{}{name, time.Now()})
	}

	copied, err := pool.CopyFrom(
		ctx,
		pgx.Identifier{"profiles"},
		[]string{"display_name", "created_at"},
		pgx.CopyFromRows(profileRows),
	)
	if err != nil {
		log.Error("Bulk insert of profiles failed", "error", err)
		os.Exit(1)
	}
	log.Info("Seeded profiles", "count", copied)

	// Give every profile without an account a starting balance
	rows, err := pool.Query(ctx, `
		SELECT p.id FROM profiles p
		LEFT JOIN accounts a ON a.profile_id = p.id
		WHERE a.id IS NULL
		ORDER BY p.id`)
	if err != nil {
		log.Error("Failed to list unseeded profiles", "error", err)
		os.Exit(1)
	}

	var profileIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			log.Error("Failed to scan profile id", "error", err)
			os.Exit(1)
		}
		profileIDs = append(profileIDs, id)
	}
	rows.Close()
	if rows.Err() != nil {
		log.Error("Failed to read unseeded profiles", "error", rows.Err())
		os.Exit(1)
	}

	accountRows := make([][]interface{}, 0, len(profileIDs))
	for _, id := range profileIDs {
		balance := int64(rng.Intn(maxBalance + 1))
		if id == cfg.Ledger.TreasuryAccountID {
			balance = 0
		}
		accountRows = append(accountRows, []interface{}{id, balance})
	}

	copied, err = pool.CopyFrom(
		ctx,
		pgx.Identifier{"accounts"},
		[]string{"profile_id", "balance"},
		pgx.CopyFromRows(accountRows),
	)
	if err != nil {
		log.Error("Bulk insert of accounts failed", "error", err)
		os.Exit(1)
	}

	log.Info("Seeded accounts", "count", copied, "treasury_account_id", cfg.Ledger.TreasuryAccountID)
}
