package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on top of a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing pool. The caller owns the pool's lifecycle.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the schema if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS card_sets (
    id    BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS card_collections (
    set_id BIGINT PRIMARY KEY REFERENCES card_sets(id) ON DELETE CASCADE,
    cards  JSONB NOT NULL DEFAULT '{}'::jsonb
);`

	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (p *Postgres) GetSet(ctx context.Context, id int64) (*CardSet, error) {
	var set CardSet
	err := p.pool.QueryRow(ctx,
		`SELECT id, title FROM card_sets WHERE id = $1`, id,
	).Scan(&set.ID, &set.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get card set %d: %w", id, err)
	}
	return &set, nil
}

func (p *Postgres) ListSets(ctx context.Context) ([]CardSet, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title FROM card_sets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list card sets: %w", err)
	}
	defer rows.Close()

	var sets []CardSet
	for rows.Next() {
		var set CardSet
		if err := rows.Scan(&set.ID, &set.Title); err != nil {
			return nil, fmt.Errorf("scan card set: %w", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list card sets: %w", err)
	}
	return sets, nil
}

func (p *Postgres) GetCollection(ctx context.Context, setID int64) (Collection, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx,
		`SELECT cards FROM card_collections WHERE set_id = $1`, setID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection for set %d: %w", setID, err)
	}

	cards := Collection{}
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("decode collection for set %d: %w", setID, err)
	}
	return cards, nil
}

func (p *Postgres) SaveCollection(ctx context.Context, setID int64, cards Collection) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode collection for set %d: %w", setID, err)
	}

	_, err = p.pool.Exec(ctx, `
INSERT INTO card_collections (set_id, cards) VALUES ($1, $2)
ON CONFLICT (set_id) DO UPDATE SET cards = EXCLUDED.cards`,
		setID, raw)
	if err != nil {
		return fmt.Errorf("save collection for set %d: %w", setID, err)
	}
	return nil
}

// CreateSet inserts a new card set and returns it. Used by operator tooling;
// the import pipeline itself never creates sets.
func (p *Postgres) CreateSet(ctx context.Context, title string) (*CardSet, error) {
	var set CardSet
	set.Title = title
	err := p.pool.QueryRow(ctx,
		`INSERT INTO card_sets (title) VALUES ($1) RETURNING id`, title,
	).Scan(&set.ID)
	if err != nil {
		return nil, fmt.Errorf("create card set: %w", err)
	}
	return &set, nil
}
