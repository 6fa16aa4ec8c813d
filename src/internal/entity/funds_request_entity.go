package entity

import "time"

type FundsRequestType string

const (
	FundsRequestTypeDeposit    FundsRequestType = "deposit"
	FundsRequestTypeWithdrawal FundsRequestType = "withdrawal"
)

type FundsRequestStatus string

const (
	FundsRequestStatusPending  FundsRequestStatus = "pending"
	FundsRequestStatusApproved FundsRequestStatus = "approved"
	FundsRequestStatusRejected FundsRequestStatus = "rejected"
)

// FundsRequest is a user-submitted deposit or withdrawal awaiting admin
// action. Status only moves pending -> approved or pending -> rejected;
// once terminal the row is immutable.
type FundsRequest struct {
	ID         string             `db:"id" json:"id"`
	UserID     string             `db:"user_id" json:"userId"`
	Type       FundsRequestType   `db:"type" json:"type"`
	AmountSpy  int64              `db:"amount_spy" json:"amountSpy"`
	AmountUsd  string             `db:"amount_usd" json:"amountUsd"`
	Status     FundsRequestStatus `db:"status" json:"status"`
	Reason     *string            `db:"reason" json:"reason,omitempty"`
	ApprovedBy *string            `db:"approved_by" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time         `db:"approved_at" json:"approvedAt,omitempty"`
	CreatedAt  time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `db:"updated_at" json:"updatedAt"`
}

// IsTerminal reports whether the request has already been processed.
func (r *FundsRequest) IsTerminal() bool {
	return r.Status != FundsRequestStatusPending
}

// FundsRequestFilter is the closed set of listing options the moderation
// screens may pass. Search matches on user id.
type FundsRequestFilter struct {
	Status *FundsRequestStatus
	Search *string
	Page   int
	Limit  int
}
