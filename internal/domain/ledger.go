package domain

import "time"

// LedgerEntry records one side of a balance movement.
type LedgerEntry struct {
	ID        int64                  `db:"id" json:"id"`
	Account   string                 `db:"account" json:"account"`
	Amount    int64                  `db:"amount" json:"amount"`
	Kind      string                 `db:"kind" json:"kind"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Ledger entry kinds.
const (
	LedgerKindTransferOut = "transfer_out"
	LedgerKindTransferIn  = "transfer_in"
	LedgerKindMint        = "mint"
)
