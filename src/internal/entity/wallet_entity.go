package entity

import "time"

// Wallet holds a user's balance in the internal integer unit (SPY).
// The balance is mutated only inside a wallet transaction and never
// goes below zero.
type Wallet struct {
	UserID    string    `db:"user_id" json:"userId"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
