package model

import "time"

type SubmitFundsRequest struct {
	UserID    string `json:"userId" validate:"required,max=100"`
	Type      string `json:"type" validate:"required,oneof=deposit withdrawal"`
	AmountSpy int64  `json:"amountSpy" validate:"required,gt=0"`
}

type ApproveFundsRequest struct {
	RequestID string `json:"requestId" validate:"required,max=100"`
	AdminID   string `json:"-" validate:"required,max=100"`
}

type RejectFundsRequest struct {
	RequestID string `json:"requestId" validate:"required,max=100"`
	AdminID   string `json:"-" validate:"required,max=100"`
	Reason    string `json:"reason" validate:"required,max=255"`
}

type ListFundsRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Search string `json:"search" validate:"max=100"`
	Page   int    `json:"page" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=0,lte=100"`
}

type FundsRequestResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Type       string     `json:"type"`
	AmountSpy  int64      `json:"amountSpy"`
	AmountUsd  string     `json:"amountUsd"`
	Status     string     `json:"status"`
	Reason     *string    `json:"reason,omitempty"`
	ApprovedBy *string    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type FundsRequestListResponse struct {
	Items []FundsRequestResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}
