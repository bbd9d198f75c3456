package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// Open connects to Postgres and verifies the connection. Persistence is an
// optional collaborator: callers pass an empty DSN through config to run
// without it and never reach here.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	const q = `
create table if not exists reports(
  id bigserial primary key,
  session_id text not null,
  kind text not null,
  diagnosis_json jsonb not null,
  created_at timestamptz not null default now()
);
create table if not exists orders(
  reference text primary key,
  session_id text not null,
  total bigint not null,
  currency text not null,
  items_json jsonb not null,
  shipping_json jsonb not null,
  created_at timestamptz not null default now()
);`
	_, err := db.ExecContext(ctx, q)
	return err
}
