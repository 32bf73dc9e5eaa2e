package repository

import (
	"context"
	"encoding/json"
	"time"

	"rpsduel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LedgerEntryRepository struct {
	db *pgxpool.Pool
}

func NewLedgerEntryRepository(db *pgxpool.Pool) *LedgerEntryRepository {
	return &LedgerEntryRepository{db: db}
}

// CreateWithTx records an entry inside an existing ledger transaction.
func (r *LedgerEntryRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	metaJSON, err := json.Marshal(e.Meta)
	if err != nil {
		return err
	}
	return tx.QueryRow(ctx,
		`INSERT INTO ledger_entries (account, amount, kind, meta)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.Account, e.Amount, e.Kind, metaJSON,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByAccount returns the most recent entries for an account.
func (r *LedgerEntryRepository) GetByAccount(ctx context.Context, account string, limit int) ([]*domain.LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, account, amount, kind, meta, created_at
		 FROM ledger_entries
		 WHERE account = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		account, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.LedgerEntry
	for rows.Next() {
		var (
			e         domain.LedgerEntry
			metaBytes []byte
			createdAt time.Time
		)
		if err := rows.Scan(&e.ID, &e.Account, &e.Amount, &e.Kind, &metaBytes, &createdAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(metaBytes, &e.Meta)
		e.CreatedAt = createdAt
		res = append(res, &e)
	}
	return res, rows.Err()
}
