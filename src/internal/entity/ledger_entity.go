package entity

import "time"

// LedgerRecord is one append-only row per balance mutation.
// Positive delta is a credit, negative a debit. For any wallet the sum
// of deltas equals the current balance.
type LedgerRecord struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Delta     int64     `db:"delta" json:"delta"`
	Category  string    `db:"category" json:"category"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type LedgerFilter struct {
	UserID string
	Page   int
	Limit  int
}
