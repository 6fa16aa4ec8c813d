package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wallet-service/src/internal/entity"
	"wallet-service/src/pkg/databases/mysql"
)

type FundsRequestRepository struct {
	DB mysql.DBInterface
}

func NewFundsRequestRepository(db mysql.DBInterface) *FundsRequestRepository {
	return &FundsRequestRepository{
		DB: db,
	}
}

func (r *FundsRequestRepository) Create(ctx context.Context, request *entity.FundsRequest) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO funds_requests (id, user_id, type, amount_spy, amount_usd, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	_, err = db.ExecContext(ctx, query,
		request.ID,
		request.UserID,
		request.Type,
		request.AmountSpy,
		request.AmountUsd,
		request.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create funds request: %w", err)
	}
	return nil
}

func (r *FundsRequestRepository) FindByID(ctx context.Context, id string) (*entity.FundsRequest, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var request entity.FundsRequest
	query := `
		SELECT id, user_id, type, amount_spy, amount_usd, status, reason,
		       approved_by, approved_at, created_at, updated_at
		FROM funds_requests
		WHERE id = ?
	`
	err = db.GetContext(ctx, &request, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find funds request: %w", err)
	}

	return &request, nil
}

func (r *FundsRequestRepository) List(ctx context.Context, filter *entity.FundsRequestFilter) ([]entity.FundsRequest, int64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, 0, err
	}

	baseQuery := `
		SELECT id, user_id, type, amount_spy, amount_usd, status, reason,
		       approved_by, approved_at, created_at, updated_at
		FROM funds_requests
		WHERE 1=1
	`
	countQuery := `SELECT COUNT(*) FROM funds_requests WHERE 1=1`

	args := []interface{}{}

	if filter.Status != nil {
		baseQuery += " AND status = ?"
		countQuery += " AND status = ?"
		args = append(args, *filter.Status)
	}

	if filter.Search != nil && *filter.Search != "" {
		baseQuery += " AND user_id LIKE ?"
		countQuery += " AND user_id LIKE ?"
		args = append(args, "%"+*filter.Search+"%")
	}

	var total int64
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count funds requests: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	baseQuery += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	var requests []entity.FundsRequest
	if err := db.SelectContext(ctx, &requests, baseQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list funds requests: %w", err)
	}

	return requests, total, nil
}
