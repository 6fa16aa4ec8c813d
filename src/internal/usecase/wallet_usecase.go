package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/model/converter"
	"wallet-service/src/internal/repository"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// WalletUseCase is the only code path permitted to mutate a wallet
// balance. Every mutation runs in one transaction: wallet row locked,
// balance written, ledger row appended, then commit.
type WalletUseCase struct {
	Log              log.Log
	Validate         *validator.Validate
	WalletRepository repository.WalletStore
	LedgerRepository repository.LedgerStore
	Cache            repository.BalanceCache
	Config           *viper.Viper
}

func NewWalletUseCase(
	logger log.Log,
	validate *validator.Validate,
	walletRepository repository.WalletStore,
	ledgerRepository repository.LedgerStore,
	cache repository.BalanceCache,
	cfg *viper.Viper,
) *WalletUseCase {
	return &WalletUseCase{
		Log:              logger,
		Validate:         validate,
		WalletRepository: walletRepository,
		LedgerRepository: ledgerRepository,
		Cache:            cache,
		Config:           cfg,
	}
}

// creditWallet applies a credit inside the caller's transaction. The
// wallet row is created lazily on the first funds operation.
func creditWallet(ctx context.Context, tx repository.TxStore, userID string, amountSpy int64, category, reason string, now time.Time) (*entity.Wallet, error) {
	if amountSpy <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	if err := tx.CreateWalletIfAbsent(ctx, userID); err != nil {
		return nil, err
	}

	wallet, err := tx.LockWalletForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	newBalance := wallet.Balance + amountSpy
	if err := tx.UpdateWalletBalance(ctx, userID, newBalance); err != nil {
		return nil, err
	}

	record := &entity.LedgerRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Delta:     amountSpy,
		Category:  category,
		Reason:    reason,
		CreatedAt: now,
	}
	if err := tx.InsertLedgerRecord(ctx, record); err != nil {
		return nil, err
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = now
	return wallet, nil
}

// debitWallet applies a debit inside the caller's transaction. The
// balance is re-checked under the row lock: an earlier out-of-band
// sufficiency check is advisory only.
func debitWallet(ctx context.Context, tx repository.TxStore, userID string, amountSpy int64, category, reason string, now time.Time) (*entity.Wallet, error) {
	if amountSpy <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	if err := tx.CreateWalletIfAbsent(ctx, userID); err != nil {
		return nil, err
	}

	wallet, err := tx.LockWalletForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if wallet.Balance-amountSpy < 0 {
		return nil, entity.ErrInsufficientBalance
	}

	newBalance := wallet.Balance - amountSpy
	if err := tx.UpdateWalletBalance(ctx, userID, newBalance); err != nil {
		return nil, err
	}

	record := &entity.LedgerRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Delta:     -amountSpy,
		Category:  category,
		Reason:    reason,
		CreatedAt: now,
	}
	if err := tx.InsertLedgerRecord(ctx, record); err != nil {
		return nil, err
	}

	wallet.Balance = newBalance
	wallet.UpdatedAt = now
	return wallet, nil
}

func (c *WalletUseCase) AddFunds(ctx context.Context, request *model.AddFundsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "AddFunds", utils.ConvertString(request))
		return result
	}

	tx, err := c.WalletRepository.BeginTx(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to begin wallet transaction"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "AddFunds", request.UserID)
		return result
	}

	wallet, err := creditWallet(ctx, tx, request.UserID, request.AmountSpy, request.Category, request.Reason, time.Now().UTC())
	if err != nil {
		c.rollback(tx, "AddFunds")
		result.Error = c.walletErrorToResult(err, "AddFunds", request.UserID)
		return result
	}

	if err := tx.Commit(); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to commit wallet transaction"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "AddFunds", request.UserID)
		return result
	}

	c.refreshBalanceCache(ctx, wallet.UserID, wallet.Balance, "AddFunds")
	c.Log.Info("wallet-usecase", fmt.Sprintf("credited %d SPY", request.AmountSpy), "AddFunds", request.UserID)
	result.Data = converter.WalletToResponse(wallet)
	return result
}

func (c *WalletUseCase) DeductFunds(ctx context.Context, request *model.DeductFundsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "DeductFunds", utils.ConvertString(request))
		return result
	}

	tx, err := c.WalletRepository.BeginTx(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to begin wallet transaction"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "DeductFunds", request.UserID)
		return result
	}

	wallet, err := debitWallet(ctx, tx, request.UserID, request.AmountSpy, request.Category, request.Reason, time.Now().UTC())
	if err != nil {
		c.rollback(tx, "DeductFunds")
		result.Error = c.walletErrorToResult(err, "DeductFunds", request.UserID)
		return result
	}

	if err := tx.Commit(); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to commit wallet transaction"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "DeductFunds", request.UserID)
		return result
	}

	c.refreshBalanceCache(ctx, wallet.UserID, wallet.Balance, "DeductFunds")
	c.Log.Info("wallet-usecase", fmt.Sprintf("debited %d SPY", request.AmountSpy), "DeductFunds", request.UserID)
	result.Data = converter.WalletToResponse(wallet)
	return result
}

// ValidateSufficientBalance is the advisory pre-flight check. It may
// serve from cache and is racy with concurrent mutations; only the
// re-check inside DeductFunds is authoritative.
func (c *WalletUseCase) ValidateSufficientBalance(ctx context.Context, request *model.BalanceCheckRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "ValidateSufficientBalance", utils.ConvertString(request))
		return result
	}

	balance, err := c.currentBalance(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to read wallet balance"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "ValidateSufficientBalance", request.UserID)
		return result
	}

	result.Data = &model.BalanceCheckResponse{
		UserID:     request.UserID,
		Balance:    balance,
		AmountSpy:  request.AmountSpy,
		Sufficient: balance >= request.AmountSpy,
	}
	return result
}

func (c *WalletUseCase) GetBalance(ctx context.Context, request *model.GetBalanceRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "GetBalance", utils.ConvertString(request))
		return result
	}

	wallet, err := c.WalletRepository.FindByUserID(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrWalletNotFound) {
			// wallet is created lazily; an untouched user simply has zero
			result.Data = &model.WalletResponse{
				UserID:     request.UserID,
				Balance:    0,
				BalanceUsd: entity.UsdFromSpy(0),
			}
			return result
		}
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to read wallet"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "GetBalance", request.UserID)
		return result
	}

	result.Data = converter.WalletToResponse(wallet)
	return result
}

func (c *WalletUseCase) Ledger(ctx context.Context, request *model.LedgerListRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "Ledger", utils.ConvertString(request))
		return result
	}

	filter := &entity.LedgerFilter{
		UserID: request.UserID,
		Page:   request.Page,
		Limit:  request.Limit,
	}
	records, total, err := c.LedgerRepository.ListByUser(ctx, filter)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to list ledger records"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "Ledger", request.UserID)
		return result
	}

	result.Data = converter.LedgerToResponse(records, total, request.Page, request.Limit)
	return result
}

func (c *WalletUseCase) currentBalance(ctx context.Context, userID string) (int64, error) {
	if c.Cache != nil {
		balance, err := c.Cache.GetBalance(ctx, userID)
		if err == nil {
			return balance, nil
		}
		if !errors.Is(err, repository.ErrBalanceNotCached) {
			c.Log.Warn("wallet-usecase", fmt.Sprintf("balance cache read failed: %v", err), "currentBalance", userID)
		}
	}

	wallet, err := c.WalletRepository.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrWalletNotFound) {
			return 0, nil
		}
		return 0, err
	}

	c.refreshBalanceCache(ctx, userID, wallet.Balance, "currentBalance")
	return wallet.Balance, nil
}

func (c *WalletUseCase) refreshBalanceCache(ctx context.Context, userID string, balance int64, scope string) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.SetBalance(ctx, userID, balance); err != nil {
		c.Log.Warn("wallet-usecase", fmt.Sprintf("balance cache refresh failed: %v", err), scope, userID)
	}
}

func (c *WalletUseCase) rollback(tx repository.TxStore, scope string) {
	if err := tx.Rollback(); err != nil {
		c.Log.Error("wallet-usecase", fmt.Sprintf("rollback failed: %v", err), scope, "")
	}
}

func (c *WalletUseCase) walletErrorToResult(err error, scope, userID string) httpError.CommonError {
	switch {
	case errors.Is(err, entity.ErrInvalidAmount):
		errObj := httpError.NewBadRequest()
		errObj.Message = entity.ErrInvalidAmount.Error()
		c.Log.Error("wallet-usecase", errObj.Message, scope, userID)
		return errObj
	case errors.Is(err, entity.ErrInsufficientBalance):
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient balance"
		c.Log.Error("wallet-usecase", errObj.Message, scope, userID)
		return errObj
	case errors.Is(err, entity.ErrWalletNotFound):
		// creation failed for an existing user: data-integrity problem
		errObj := httpError.NewInternalServerError()
		errObj.Message = "wallet missing for user"
		c.Log.Error("wallet-usecase", fmt.Sprintf("wallet integrity failure: %v", err), scope, userID)
		return errObj
	default:
		errObj := httpError.NewInternalServerError()
		errObj.Message = "wallet operation failed"
		c.Log.Error("wallet-usecase", err.Error(), scope, userID)
		return errObj
	}
}
