package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// ─── Init ─────────────────────────────────────────────────────────────────────

// Open connects to PostgreSQL, waiting for the server to come up, and applies
// migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Managed databases may take a moment to accept connections.
	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connect to database after retries")
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	log.Println("✅ Database connected and migrated")
	return db, nil
}

// ─── Migrations ───────────────────────────────────────────────────────────────

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS destinations (
		id        SERIAL PRIMARY KEY,
		name      TEXT NOT NULL UNIQUE,
		image_url TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS origins (
		id        SERIAL PRIMARY KEY,
		name      TEXT NOT NULL UNIQUE,
		image_url TEXT
	)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return errors.Wrapf(err, "migration failed\nSQL: %s", m)
		}
	}
	return nil
}
