package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type catalogTable string

const (
	destinationsTable catalogTable = "destinations"
	originsTable      catalogTable = "origins"
)

// CatalogEntry is a row of either catalog table.
type CatalogEntry struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
}

type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// UpsertCity writes name/imageURL into destinations and then origins inside
// a single transaction. created reports whether the destination row is new;
// the origin row is upserted regardless of that outcome.
func (s *CatalogStore) UpsertCity(ctx context.Context, name, imageURL string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	created, err := upsertByName(ctx, tx, destinationsTable, name, imageURL)
	if err != nil {
		return false, err
	}
	if _, err := upsertByName(ctx, tx, originsTable, name, imageURL); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, errors.Wrap(err, "commit transaction")
	}
	return created, nil
}

// upsertByName matches on the exact (case-sensitive) name. Two runs racing on
// a new name are serialized by the UNIQUE constraint: the loser's insert fails.
func upsertByName(ctx context.Context, tx *sql.Tx, table catalogTable, name, imageURL string) (bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM `+string(table)+` WHERE name = $1`, name).Scan(&id)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx,
			`UPDATE `+string(table)+` SET image_url = $1 WHERE id = $2`, imageURL, id); err != nil {
			return false, errors.Wrapf(err, "update %s", table)
		}
		return false, nil
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+string(table)+` (name, image_url) VALUES ($1, $2)`, name, imageURL); err != nil {
			return false, errors.Wrapf(err, "insert %s", table)
		}
		return true, nil
	default:
		return false, errors.Wrapf(err, "select %s", table)
	}
}

func (s *CatalogStore) ListDestinations(ctx context.Context) ([]CatalogEntry, error) {
	return s.list(ctx, destinationsTable)
}

func (s *CatalogStore) ListOrigins(ctx context.Context) ([]CatalogEntry, error) {
	return s.list(ctx, originsTable)
}

func (s *CatalogStore) list(ctx context.Context, table catalogTable) ([]CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, image_url FROM `+string(table)+` ORDER BY name`)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", table)
	}
	defer rows.Close()

	entries := []CatalogEntry{}
	for rows.Next() {
		var (
			e   CatalogEntry
			img sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &img); err != nil {
			return nil, errors.Wrapf(err, "scan %s", table)
		}
		if img.Valid {
			e.ImageURL = &img.String
		}
		entries = append(entries, e)
	}
	return entries, errors.Wrapf(rows.Err(), "iterate %s", table)
}
