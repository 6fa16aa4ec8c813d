package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wallet-service/src/internal/entity"

	"github.com/jmoiron/sqlx"
)

// TxWalletRepository is the TxStore implementation over one sqlx.Tx.
type TxWalletRepository struct {
	tx *sqlx.Tx
}

func NewTxWalletRepository(tx *sqlx.Tx) *TxWalletRepository {
	return &TxWalletRepository{tx: tx}
}

func (r *TxWalletRepository) Commit() error {
	return r.tx.Commit()
}

func (r *TxWalletRepository) Rollback() error {
	return r.tx.Rollback()
}

// CreateWalletIfAbsent makes the wallet row exist with balance 0 so the
// following FOR UPDATE lock always has a row to grab. Wallets are
// created lazily on the first funds operation.
func (r *TxWalletRepository) CreateWalletIfAbsent(ctx context.Context, userID string) error {
	query := `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES (?, 0, NOW(), NOW())
		ON DUPLICATE KEY UPDATE user_id = user_id
	`
	if _, err := r.tx.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *TxWalletRepository) LockWalletForUpdate(ctx context.Context, userID string) (*entity.Wallet, error) {
	var wallet entity.Wallet
	query := `
		SELECT user_id, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = ?
		FOR UPDATE
	`
	err := r.tx.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *TxWalletRepository) UpdateWalletBalance(ctx context.Context, userID string, balance int64) error {
	query := `UPDATE wallets SET balance = ?, updated_at = NOW() WHERE user_id = ?`
	result, err := r.tx.ExecContext(ctx, query, balance, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return entity.ErrWalletNotFound
	}

	return nil
}

func (r *TxWalletRepository) InsertLedgerRecord(ctx context.Context, record *entity.LedgerRecord) error {
	query := `
		INSERT INTO wallet_ledger (id, user_id, delta, category, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.tx.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Delta,
		record.Category,
		record.Reason,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger record: %w", err)
	}
	return nil
}

func (r *TxWalletRepository) LockRequestForUpdate(ctx context.Context, requestID string) (*entity.FundsRequest, error) {
	var request entity.FundsRequest
	query := `
		SELECT id, user_id, type, amount_spy, amount_usd, status, reason,
		       approved_by, approved_at, created_at, updated_at
		FROM funds_requests
		WHERE id = ?
		FOR UPDATE
	`
	err := r.tx.GetContext(ctx, &request, query, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to lock funds request: %w", err)
	}
	return &request, nil
}

func (r *TxWalletRepository) MarkRequestProcessed(ctx context.Context, requestID string, status entity.FundsRequestStatus, adminID string, reason *string, processedAt time.Time) error {
	query := `
		UPDATE funds_requests
		SET status = ?, reason = ?, approved_by = ?, approved_at = ?, updated_at = NOW()
		WHERE id = ? AND status = 'pending'
	`
	result, err := r.tx.ExecContext(ctx, query, status, reason, adminID, processedAt, requestID)
	if err != nil {
		return fmt.Errorf("failed to mark funds request processed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return entity.ErrRequestNotPending
	}

	return nil
}
