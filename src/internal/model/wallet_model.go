package model

import "time"

type AddFundsRequest struct {
	UserID    string `json:"userId" validate:"required,max=100"`
	AmountSpy int64  `json:"amountSpy" validate:"required,gt=0"`
	Category  string `json:"category" validate:"required,max=50"`
	Reason    string `json:"reason" validate:"required,max=255"`
}

type DeductFundsRequest struct {
	UserID    string `json:"userId" validate:"required,max=100"`
	AmountSpy int64  `json:"amountSpy" validate:"required,gt=0"`
	Category  string `json:"category" validate:"required,max=50"`
	Reason    string `json:"reason" validate:"required,max=255"`
}

type GetBalanceRequest struct {
	UserID string `json:"userId" validate:"required,max=100"`
}

type BalanceCheckRequest struct {
	UserID    string `json:"userId" validate:"required,max=100"`
	AmountSpy int64  `json:"amountSpy" validate:"required,gt=0"`
}

type LedgerListRequest struct {
	UserID string `json:"userId" validate:"required,max=100"`
	Page   int    `json:"page" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=0,lte=100"`
}

type WalletResponse struct {
	UserID     string    `json:"userId"`
	Balance    int64     `json:"balance"`
	BalanceUsd string    `json:"balanceUsd"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// BalanceCheckResponse is advisory only: the balance may change between
// this check and a later deduction. The in-transaction re-check inside
// DeductFunds is the authoritative one.
type BalanceCheckResponse struct {
	UserID     string `json:"userId"`
	Balance    int64  `json:"balance"`
	AmountSpy  int64  `json:"amountSpy"`
	Sufficient bool   `json:"sufficient"`
}

type LedgerRecordResponse struct {
	ID        string    `json:"id"`
	Delta     int64     `json:"delta"`
	Category  string    `json:"category"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

type LedgerListResponse struct {
	Items []LedgerRecordResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
