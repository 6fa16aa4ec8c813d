package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/gateway/messaging"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	"wallet-service/src/internal/repository"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
)

// FundsRequestUseCase orchestrates the funds-request lifecycle: user
// submission, admin listing, and the approve/reject transition. An
// approval settles exactly once: the wallet mutation and the status
// transition commit in the same transaction or not at all.
type FundsRequestUseCase struct {
	Log                    log.Log
	Validate               *validator.Validate
	WalletRepository       repository.WalletStore
	FundsRequestRepository repository.FundsRequestStore
	Cache                  repository.BalanceCache
	Config                 *viper.Viper
	RequestProducer        *messaging.FundsRequestProducer
	AsynqClient            *asynq.Client
}

func NewFundsRequestUseCase(
	logger log.Log,
	validate *validator.Validate,
	walletRepository repository.WalletStore,
	fundsRequestRepository repository.FundsRequestStore,
	cache repository.BalanceCache,
	cfg *viper.Viper,
	requestProducer *messaging.FundsRequestProducer,
	asynqClient *asynq.Client,
) *FundsRequestUseCase {
	return &FundsRequestUseCase{
		Log:                    logger,
		Validate:               validate,
		WalletRepository:       walletRepository,
		FundsRequestRepository: fundsRequestRepository,
		Cache:                  cache,
		Config:                 cfg,
		RequestProducer:        requestProducer,
		AsynqClient:            asynqClient,
	}
}

func (c *FundsRequestUseCase) Submit(ctx context.Context, request *model.SubmitFundsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("funds-request-usecase", errObj.Message, "Submit", utils.ConvertString(request))
		return result
	}

	fundsRequest := &entity.FundsRequest{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		Type:      entity.FundsRequestType(request.Type),
		AmountSpy: request.AmountSpy,
		AmountUsd: entity.UsdFromSpy(request.AmountSpy),
		Status:    entity.FundsRequestStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := c.FundsRequestRepository.Create(ctx, fundsRequest); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to create funds request"
		result.Error = errObj
		c.Log.Error("funds-request-usecase", err.Error(), "Submit", request.UserID)
		return result
	}

	c.Log.Info("funds-request-usecase", fmt.Sprintf("%s request of %d SPY submitted", request.Type, request.AmountSpy), "Submit", request.UserID)
	result.Data = converter.FundsRequestToResponse(fundsRequest)
	return result
}

func (c *FundsRequestUseCase) List(ctx context.Context, request *model.ListFundsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("funds-request-usecase", errObj.Message, "List", utils.ConvertString(request))
		return result
	}

	filter := &entity.FundsRequestFilter{
		Page:  request.Page,
		Limit: request.Limit,
	}
	if request.Status != "" {
		status := entity.FundsRequestStatus(request.Status)
		filter.Status = &status
	}
	if request.Search != "" {
		search := request.Search
		filter.Search = &search
	}

	requests, total, err := c.FundsRequestRepository.List(ctx, filter)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to list funds requests"
		result.Error = errObj
		c.Log.Error("funds-request-usecase", err.Error(), "List", utils.ConvertString(filter))
		return result
	}

	result.Data = converter.FundsRequestToListResponse(requests, total, request.Page, request.Limit)
	return result
}

// Approve settles a pending request. Steps run in one transaction:
// request row locked, pending check, wallet credit or debit, status
// flipped with the `status = 'pending'` guard. Either both the wallet
// mutation and the transition persist, or neither does.
func (c *FundsRequestUseCase) Approve(ctx context.Context, request *model.ApproveFundsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("funds-request-usecase", errObj.Message, "Approve", utils.ConvertString(request))
		return result
	}

	tx, err := c.WalletRepository.BeginTx(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to begin transaction"
		result.Error = errObj
		c.Log.Error("funds-request-usecase", err.Error(), "Approve", request.RequestID)
		return result
	}

	fundsRequest, err := tx.LockRequestForUpdate(ctx, request.RequestID)
	if err != nil {
		c.rollback(tx, "Approve")
		result.Error = c.requestErrorToResult(err, "Approve", request.RequestID)
		return result
	}

	if fundsRequest.IsTerminal() {
		c.rollback(tx, "Approve")
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("funds request already %s", fundsRequest.Status)
		result.Error = errObj
		c.Log.Error("funds-request-usecase", errObj.Message, "Approve", request.RequestID)
		return result
	}

	now := time.Now().UTC()
	var wallet *entity.Wallet

	switch fundsRequest.Type {
	case entity.FundsRequestTypeDeposit:
		reason := fmt.Sprintf("Admin approved deposit request of %s USD", fundsRequest.AmountUsd)
		wallet, err = creditWallet(ctx, tx, fundsRequest.UserID, fundsRequest.AmountSpy, "deposit", reason, now)
	case entity.FundsRequestTypeWithdrawal:
		// the sufficiency check runs under the same lock as the write;
		// on failure the request stays pending for retry or rejection
		reason := fmt.Sprintf("Admin approved withdrawal request of %s USD", fundsRequest.AmountUsd)
		wallet, err = debitWallet(ctx, tx, fundsRequest.UserID, fundsRequest.AmountSpy, "withdrawal", reason, now)
	default:
		err = fmt.Errorf("unknown funds request type: %s", fundsRequest.Type)
	}
	if err != nil {
		c.rollback(tx, "Approve")
		result.Error = c.mutationErrorToResult(err, "Approve", request.RequestID)
		return result
	}

	if err := tx.MarkRequestProcessed(ctx, fundsRequest.ID, entity.FundsRequestStatusApproved, request.AdminID, nil, now); err != nil {
		c.rollback(tx, "Approve")
		result.Error = c.requestErrorToResult(err, "Approve", request.RequestID)
		return result
	}

	if err := tx.Commit(); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to commit approval"
		result.Error = errObj
		c.Log.Error("funds-request-usecase", err.Error(), "Approve", request.RequestID)
		return result
	}

	fundsRequest.Status = entity.FundsRequestStatusApproved
	fundsRequest.ApprovedBy = &request.AdminID
	fundsRequest.ApprovedAt = &now

	c.refreshBalanceCache(ctx, wallet.UserID, wallet.Balance, "Approve")
	c.publishProcessed(ctx, fundsRequest, request.AdminID, now)
	c.Log.Info("funds-request-usecase", fmt.Sprintf("%s request approved, %d SPY settled", fundsRequest.Type, fundsRequest.AmountSpy), "Approve", request.RequestID)
	result.Data = converter.FundsRequestToResponse(fundsRequest)
	return result
}

// Reject declines a pending request with a mandatory reason. No wallet
// interaction; audit fields record who processed it and when.
func (c *FundsRequestUseCase) Reject(ctx context.Context, request *model.RejectFundsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("funds-request-usecase", errObj.Message, "Reject", utils.ConvertString(request))
		return result
	}

	tx, err := c.WalletRepository.BeginTx(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to begin transaction"
		result.Error = errObj
		c.Log.Error("funds-request-usecase", err.Error(), "Reject", request.RequestID)
		return result
	}

	fundsRequest, err := tx.LockRequestForUpdate(ctx, request.RequestID)
	if err != nil {
		c.rollback(tx, "Reject")
		result.Error = c.requestErrorToResult(err, "Reject", request.RequestID)
		return result
	}

	if fundsRequest.IsTerminal() {
		c.rollback(tx, "Reject")
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("funds request already %s", fundsRequest.Status)
		result.Error = errObj
		c.Log.Error("funds-request-usecase", errObj.Message, "Reject", request.RequestID)
		return result
	}

	now := time.Now().UTC()
	if err := tx.MarkRequestProcessed(ctx, fundsRequest.ID, entity.FundsRequestStatusRejected, request.AdminID, &request.Reason, now); err != nil {
		c.rollback(tx, "Reject")
		result.Error = c.requestErrorToResult(err, "Reject", request.RequestID)
		return result
	}

	if err := tx.Commit(); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to commit rejection"
		result.Error = errObj
		c.Log.Error("funds-request-usecase", err.Error(), "Reject", request.RequestID)
		return result
	}

	fundsRequest.Status = entity.FundsRequestStatusRejected
	fundsRequest.Reason = &request.Reason
	fundsRequest.ApprovedBy = &request.AdminID
	fundsRequest.ApprovedAt = &now

	c.publishProcessed(ctx, fundsRequest, request.AdminID, now)
	c.Log.Info("funds-request-usecase", "funds request rejected", "Reject", request.RequestID)
	result.Data = converter.FundsRequestToResponse(fundsRequest)
	return result
}

// NotifyProcessed is the asynq handler for the notification fan-out
// task: it forwards the terminal-state event to the notification topic
// consumed by the (external) push service.
func (c *FundsRequestUseCase) NotifyProcessed(ctx context.Context, task *asynq.Task) error {
	var event model.FundsRequestProcessedEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		c.Log.Error("funds-request-usecase", fmt.Sprintf("failed to unmarshal notification task: %v", err), "NotifyProcessed", "")
		return err
	}

	if c.RequestProducer == nil {
		c.Log.Warn("funds-request-usecase", "producer disabled, notification dropped", "NotifyProcessed", event.RequestID)
		return nil
	}

	if err := c.RequestProducer.SendNotification(&event); err != nil {
		c.Log.Error("funds-request-usecase", fmt.Sprintf("failed to publish notification: %v", err), "NotifyProcessed", event.RequestID)
		return err
	}
	return nil
}

// publishProcessed runs after commit: the transition is durable, so
// event/queue failures are logged and never unwind the approval.
func (c *FundsRequestUseCase) publishProcessed(ctx context.Context, fundsRequest *entity.FundsRequest, adminID string, processedAt time.Time) {
	event := converter.FundsRequestToEvent(fundsRequest, adminID, processedAt)

	if c.RequestProducer != nil {
		if err := c.RequestProducer.SendProcessed(event); err != nil {
			c.Log.Warn("funds-request-usecase", fmt.Sprintf("failed to publish processed event: %v", err), "publishProcessed", fundsRequest.ID)
		}
	}

	if c.AsynqClient != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			c.Log.Warn("funds-request-usecase", fmt.Sprintf("failed to marshal notification task: %v", err), "publishProcessed", fundsRequest.ID)
			return
		}
		if _, err := c.AsynqClient.EnqueueContext(ctx, asynq.NewTask(messaging.TaskFundsRequestProcessed, payload)); err != nil {
			c.Log.Warn("funds-request-usecase", fmt.Sprintf("failed to enqueue notification task: %v", err), "publishProcessed", fundsRequest.ID)
		}
	}
}

func (c *FundsRequestUseCase) refreshBalanceCache(ctx context.Context, userID string, balance int64, scope string) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.SetBalance(ctx, userID, balance); err != nil {
		c.Log.Warn("funds-request-usecase", fmt.Sprintf("balance cache refresh failed: %v", err), scope, userID)
	}
}

func (c *FundsRequestUseCase) rollback(tx repository.TxStore, scope string) {
	if err := tx.Rollback(); err != nil {
		c.Log.Error("funds-request-usecase", fmt.Sprintf("rollback failed: %v", err), scope, "")
	}
}

func (c *FundsRequestUseCase) requestErrorToResult(err error, scope, requestID string) httpError.CommonError {
	switch {
	case errors.Is(err, entity.ErrRequestNotFound):
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("funds request %s not found", requestID)
		c.Log.Error("funds-request-usecase", errObj.Message, scope, requestID)
		return errObj
	case errors.Is(err, entity.ErrRequestNotPending):
		errObj := httpError.NewConflict()
		errObj.Message = "funds request already processed"
		c.Log.Error("funds-request-usecase", errObj.Message, scope, requestID)
		return errObj
	default:
		errObj := httpError.NewInternalServerError()
		errObj.Message = "funds request operation failed"
		c.Log.Error("funds-request-usecase", err.Error(), scope, requestID)
		return errObj
	}
}

func (c *FundsRequestUseCase) mutationErrorToResult(err error, scope, requestID string) httpError.CommonError {
	switch {
	case errors.Is(err, entity.ErrInsufficientBalance):
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient balance, request left pending"
		c.Log.Error("funds-request-usecase", errObj.Message, scope, requestID)
		return errObj
	case errors.Is(err, entity.ErrInvalidAmount):
		errObj := httpError.NewBadRequest()
		errObj.Message = entity.ErrInvalidAmount.Error()
		c.Log.Error("funds-request-usecase", errObj.Message, scope, requestID)
		return errObj
	case errors.Is(err, entity.ErrWalletNotFound):
		errObj := httpError.NewInternalServerError()
		errObj.Message = "wallet missing for user"
		c.Log.Error("funds-request-usecase", fmt.Sprintf("wallet integrity failure: %v", err), scope, requestID)
		return errObj
	default:
		errObj := httpError.NewInternalServerError()
		errObj.Message = "wallet mutation failed"
		c.Log.Error("funds-request-usecase", err.Error(), scope, requestID)
		return errObj
	}
}
