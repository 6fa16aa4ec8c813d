package converter

import (
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"

	"github.com/google/uuid"
)

func FundsRequestToResponse(request *entity.FundsRequest) *model.FundsRequestResponse {
	return &model.FundsRequestResponse{
		ID:         request.ID,
		UserID:     request.UserID,
		Type:       string(request.Type),
		AmountSpy:  request.AmountSpy,
		AmountUsd:  request.AmountUsd,
		Status:     string(request.Status),
		Reason:     request.Reason,
		ApprovedBy: request.ApprovedBy,
		ApprovedAt: request.ApprovedAt,
		CreatedAt:  request.CreatedAt,
	}
}

func FundsRequestToListResponse(requests []entity.FundsRequest, total int64, page, limit int) *model.FundsRequestListResponse {
	items := make([]model.FundsRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, *FundsRequestToResponse(&requests[i]))
	}
	return &model.FundsRequestListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}

func FundsRequestToEvent(request *entity.FundsRequest, adminID string, processedAt time.Time) *model.FundsRequestProcessedEvent {
	return &model.FundsRequestProcessedEvent{
		EventID:     uuid.NewString(),
		RequestID:   request.ID,
		UserID:      request.UserID,
		Type:        string(request.Type),
		AmountSpy:   request.AmountSpy,
		AmountUsd:   request.AmountUsd,
		Status:      string(request.Status),
		Reason:      request.Reason,
		ProcessedBy: adminID,
		ProcessedAt: processedAt,
	}
}
