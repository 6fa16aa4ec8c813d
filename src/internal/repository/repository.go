package repository

import (
	"context"
	"time"

	"wallet-service/src/internal/entity"
)

// WalletStore is the read side plus the transaction entry point for
// everything that mutates a wallet.
type WalletStore interface {
	FindByUserID(ctx context.Context, userID string) (*entity.Wallet, error)
	BeginTx(ctx context.Context) (TxStore, error)
}

// TxStore scopes one unit of work. The read of current status/balance
// and the write of new status/balance happen inside this transaction;
// row locks are held until Commit or Rollback.
type TxStore interface {
	Commit() error
	Rollback() error

	CreateWalletIfAbsent(ctx context.Context, userID string) error
	LockWalletForUpdate(ctx context.Context, userID string) (*entity.Wallet, error)
	UpdateWalletBalance(ctx context.Context, userID string, balance int64) error
	InsertLedgerRecord(ctx context.Context, record *entity.LedgerRecord) error

	LockRequestForUpdate(ctx context.Context, requestID string) (*entity.FundsRequest, error)
	// MarkRequestProcessed transitions pending -> status. The guard
	// `WHERE status = 'pending'` makes the race loser observe
	// entity.ErrRequestNotPending instead of overwriting the winner.
	MarkRequestProcessed(ctx context.Context, requestID string, status entity.FundsRequestStatus, adminID string, reason *string, processedAt time.Time) error
}

type FundsRequestStore interface {
	Create(ctx context.Context, request *entity.FundsRequest) error
	FindByID(ctx context.Context, id string) (*entity.FundsRequest, error)
	List(ctx context.Context, filter *entity.FundsRequestFilter) ([]entity.FundsRequest, int64, error)
}

type LedgerStore interface {
	ListByUser(ctx context.Context, filter *entity.LedgerFilter) ([]entity.LedgerRecord, int64, error)
}

// BalanceCache is the advisory balance lookaside. A cache miss or a
// stale entry is never an error for callers doing pre-flight checks;
// the in-transaction read is the authoritative one.
type BalanceCache interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	SetBalance(ctx context.Context, userID string, balance int64) error
	DeleteBalance(ctx context.Context, userID string) error
}
