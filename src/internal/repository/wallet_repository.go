package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type WalletRepository struct {
	DB mysql.DBInterface
}

func NewWalletRepository(db mysql.DBInterface) *WalletRepository {
	return &WalletRepository{
		DB: db,
	}
}

func (r *WalletRepository) FindByUserID(ctx context.Context, userID string) (*entity.Wallet, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var wallet entity.Wallet
	query := `
		SELECT user_id, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = ?
	`
	err = db.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}

	return &wallet, nil
}

// BeginTx starts a transaction and returns the transactional store.
// READ COMMITTED is enough here: the FOR UPDATE row locks carry the
// non-negativity and exactly-once invariants.
func (r *WalletRepository) BeginTx(ctx context.Context) (TxStore, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return NewTxWalletRepository(tx), nil
}
