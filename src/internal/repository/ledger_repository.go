package repository

import (
	"context"
	"fmt"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type LedgerRepository struct {
	DB mysql.DBInterface
}

func NewLedgerRepository(db mysql.DBInterface) *LedgerRepository {
	return &LedgerRepository{
		DB: db,
	}
}

func (r *LedgerRepository) ListByUser(ctx context.Context, filter *entity.LedgerFilter) ([]entity.LedgerRecord, int64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM wallet_ledger WHERE user_id = ?`
	if err := db.GetContext(ctx, &total, countQuery, filter.UserID); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger records: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := `
		SELECT id, user_id, delta, category, reason, created_at
		FROM wallet_ledger
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	var records []entity.LedgerRecord
	if err := db.SelectContext(ctx, &records, query, filter.UserID, limit, (page-1)*limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger records: %w", err)
	}

	return records, total, nil
}
