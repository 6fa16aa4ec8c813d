package model

import "time"

type Event interface {
	GetId() string
}

// FundsRequestProcessedEvent is published after a request reaches a
// terminal state, for the out-of-scope notification layer.
type FundsRequestProcessedEvent struct {
	EventID     string    `json:"event_id"`
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	AmountSpy   int64     `json:"amount_spy"`
	AmountUsd   string    `json:"amount_usd"`
	Status      string    `json:"status"`
	Reason      *string   `json:"reason,omitempty"`
	ProcessedBy string    `json:"processed_by"`
	ProcessedAt time.Time `json:"processed_at"`
}

func (e *FundsRequestProcessedEvent) GetId() string {
	return e.EventID
}
