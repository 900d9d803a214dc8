package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Store struct {
	DB      *sqlx.DB
	Queries *Queries
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{DB: db, Queries: New(db)}
}

// WithTx runs fn inside a single transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.DB.Close()
}
