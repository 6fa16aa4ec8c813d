package converter

import (
	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
)

func WalletToResponse(wallet *entity.Wallet) *model.WalletResponse {
	return &model.WalletResponse{
		UserID:     wallet.UserID,
		Balance:    wallet.Balance,
		BalanceUsd: entity.UsdFromSpy(wallet.Balance),
		UpdatedAt:  wallet.UpdatedAt,
	}
}

func LedgerToResponse(records []entity.LedgerRecord, total int64, page, limit int) *model.LedgerListResponse {
	items := make([]model.LedgerRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, model.LedgerRecordResponse{
			ID:        rec.ID,
			Delta:     rec.Delta,
			Category:  rec.Category,
			Reason:    rec.Reason,
			CreatedAt: rec.CreatedAt,
		})
	}
	return &model.LedgerListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}
