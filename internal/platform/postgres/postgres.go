// Package postgres opens the database handle and bootstraps the schema.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Schema is the DDL for the two persona collections. Idempotent so startup
// can always run it.
const Schema = `
CREATE TABLE IF NOT EXISTS personas (
	id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id   uuid NOT NULL,
	email      text NOT NULL UNIQUE,
	alias      text NOT NULL DEFAULT '',
	first_name text NOT NULL DEFAULT '',
	last_name  text NOT NULL DEFAULT '',
	age        integer,
	birthday   text NOT NULL DEFAULT '',
	gender     text NOT NULL DEFAULT '',
	phone      text NOT NULL DEFAULT '',
	address    jsonb NOT NULL DEFAULT '{}'::jsonb,
	created_at timestamptz NOT NULL,
	updated_at timestamptz NOT NULL
);

CREATE INDEX IF NOT EXISTS personas_owner_idx ON personas (owner_id);

CREATE TABLE IF NOT EXISTS used_emails (
	email       text PRIMARY KEY,
	owner_id    uuid NOT NULL,
	reserved_at timestamptz NOT NULL
);
`

// Open connects via the pgx stdlib driver and verifies the connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema applies the DDL.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
