package ledger

import (
	"context"
	"errors"

	"rpsduel/internal/domain"
	"rpsduel/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// Postgres is the durable token ledger. Accounts are keyed by address;
// every movement records a pair of ledger entries in the same transaction,
// and rows are locked in address order to avoid deadlocks.
type Postgres struct {
	db      *pgxpool.Pool
	entries *repository.LedgerEntryRepository
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{
		db:      db,
		entries: repository.NewLedgerEntryRepository(db),
	}
}

// BalanceOf returns the current balance. Unknown accounts hold zero.
func (l *Postgres) BalanceOf(ctx context.Context, account string) (int64, error) {
	var balance int64
	err := l.db.QueryRow(ctx, `SELECT balance FROM accounts WHERE address = $1`, account).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Transfer moves amount between accounts atomically.
func (l *Postgres) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock both rows in address order to prevent deadlocks.
	first, second := from, to
	if first > second {
		first, second = second, first
	}
	for _, addr := range []string{first, second} {
		if _, err := tx.Exec(ctx,
			`INSERT INTO accounts (address, balance) VALUES ($1, 0)
			 ON CONFLICT (address) DO NOTHING`, addr); err != nil {
			return err
		}
		var dummy int64
		if err := tx.QueryRow(ctx,
			`SELECT balance FROM accounts WHERE address = $1 FOR UPDATE`, addr).Scan(&dummy); err != nil {
			return err
		}
	}

	ct, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance - $1 WHERE address = $2 AND balance >= $1`,
		amount, from)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrInsufficientFunds
	}
	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE address = $2`, amount, to); err != nil {
		return err
	}

	meta := map[string]interface{}{"counterparty": to}
	if err := l.entries.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		Account: from, Amount: -amount, Kind: domain.LedgerKindTransferOut, Meta: meta,
	}); err != nil {
		return err
	}
	if err := l.entries.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		Account: to, Amount: amount, Kind: domain.LedgerKindTransferIn,
		Meta: map[string]interface{}{"counterparty": from},
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Mint credits freshly created tokens to an account. Used by the admin
// faucet and first-auth grants; the game engine itself never mints.
func (l *Postgres) Mint(ctx context.Context, account string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var newBalance int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO accounts (address, balance) VALUES ($1, $2)
		 ON CONFLICT (address) DO UPDATE SET balance = accounts.balance + $2
		 RETURNING balance`,
		account, amount,
	).Scan(&newBalance); err != nil {
		return 0, err
	}

	if err := l.entries.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		Account: account, Amount: amount, Kind: domain.LedgerKindMint,
	}); err != nil {
		return 0, err
	}

	return newBalance, tx.Commit(ctx)
}

// EnsureAccount creates an account with a starting balance on first sight.
// Existing accounts are untouched. Reports whether it was created.
func (l *Postgres) EnsureAccount(ctx context.Context, account string, starting int64) (bool, error) {
	ct, err := l.db.Exec(ctx,
		`INSERT INTO accounts (address, balance) VALUES ($1, $2)
		 ON CONFLICT (address) DO NOTHING`,
		account, starting)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// History returns recent ledger entries for an account.
func (l *Postgres) History(ctx context.Context, account string, limit int) ([]*domain.LedgerEntry, error) {
	return l.entries.GetByAccount(ctx, account, limit)
}
