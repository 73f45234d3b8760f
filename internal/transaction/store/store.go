package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/spendly/internal/transaction"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const selectTransactionColumns = `id, date, description, category, amount`

// CreateTransaction assigns a fresh identifier to tx and inserts it.
func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := s.db.Rebind(`
		INSERT INTO transactions (id, date, description, category, amount)
		VALUES (?, ?, ?, ?, ?)
	`)

	id := uuid.New()

	_, err := s.db.ExecContext(ctx, query,
		id,
		tx.Date,
		tx.Description,
		tx.Category,
		tx.Amount,
	)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	tx.ID = id

	return nil
}

// ListTransactions returns all transactions in insertion order.
func (s *Store) ListTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions ORDER BY seq ASC`

	txs := []*transaction.Transaction{}
	if err := s.db.SelectContext(ctx, &txs, query); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return txs, nil
}

// DeleteTransaction removes the transaction and returns it as it was stored.
// It returns nil, nil when no row matched.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := s.db.Rebind(`DELETE FROM transactions WHERE id = ? RETURNING ` + selectTransactionColumns)

	var tx transaction.Transaction
	if err := s.db.GetContext(ctx, &tx, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("deleting transaction: %w", err)
	}

	return &tx, nil
}
