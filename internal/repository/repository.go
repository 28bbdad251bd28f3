package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository represents the base repository interface
type Repository interface {
	// Transaction executes fn within a read-write database transaction
	Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error
	// ReadOnly executes fn within a read-only database transaction
	ReadOnly(ctx context.Context, fn func(tx *sql.Tx) error) error
	DB() *sql.DB
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sql.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sql.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB returns the database connection
func (r *BaseRepository) DB() *sql.DB {
	return r.db
}

// Transaction implements the Repository interface
func (r *BaseRepository) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return r.withTx(ctx, nil, fn)
}

// ReadOnly implements the Repository interface
func (r *BaseRepository) ReadOnly(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return r.withTx(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// withTx commits when fn succeeds and rolls back on error or panic, so the
// connection is always handed back to the pool.
func (r *BaseRepository) withTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit transaction: %w", cerr)
		}
	}()

	return fn(tx)
}
