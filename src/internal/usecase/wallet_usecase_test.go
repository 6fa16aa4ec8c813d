package usecase

import (
	"context"
	"testing"

	"wallet-service/src/internal/model"
	httpError "wallet-service/src/pkg/http-error"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalletUseCaseForTest(store *fakeStore, cache *fakeBalanceCache) *WalletUseCase {
	return NewWalletUseCase(newTestLogger(), validator.New(), store, store, cache, viper.New())
}

func errorCode(t *testing.T, result interface{}) int {
	t.Helper()
	errObj, ok := result.(httpError.CommonError)
	require.True(t, ok, "expected CommonError, got %T", result)
	return errObj.ResponseCode
}

func TestAddFundsCreatesWalletAndLedger(t *testing.T) {
	store := newFakeStore()
	useCase := newWalletUseCaseForTest(store, newFakeBalanceCache())

	result := useCase.AddFunds(context.Background(), &model.AddFundsRequest{
		UserID:    "user-1",
		AmountSpy: 500,
		Category:  "deposit",
		Reason:    "Admin approved deposit request of 4.55 USD",
	})

	require.Nil(t, result.Error)
	response, ok := result.Data.(*model.WalletResponse)
	require.True(t, ok)
	assert.Equal(t, "user-1", response.UserID)
	assert.Equal(t, int64(500), response.Balance)
	assert.Equal(t, "4.55", response.BalanceUsd)

	assert.Equal(t, int64(500), store.walletBalance("user-1"))
	assert.Equal(t, 1, store.ledgerCount("user-1"))
	assert.Equal(t, int64(500), store.ledgerSum("user-1"))
}

func TestAddFundsRejectsNonPositiveAmount(t *testing.T) {
	store := newFakeStore()
	useCase := newWalletUseCaseForTest(store, newFakeBalanceCache())

	result := useCase.AddFunds(context.Background(), &model.AddFundsRequest{
		UserID:    "user-1",
		AmountSpy: 0,
		Category:  "deposit",
		Reason:    "zero amount",
	})

	require.NotNil(t, result.Error)
	assert.Equal(t, 400, errorCode(t, result.Error))
	assert.Equal(t, int64(0), store.walletBalance("user-1"))
	assert.Equal(t, 0, store.ledgerCount("user-1"))
}

func TestDeductFundsHappyPath(t *testing.T) {
	store := newFakeStore()
	useCase := newWalletUseCaseForTest(store, newFakeBalanceCache())

	store.seedWallet("user-1", 1000)

	result := useCase.DeductFunds(context.Background(), &model.DeductFundsRequest{
		UserID:    "user-1",
		AmountSpy: 400,
		Category:  "withdrawal",
		Reason:    "Admin approved withdrawal request of 3.64 USD",
	})

	require.Nil(t, result.Error)
	response, ok := result.Data.(*model.WalletResponse)
	require.True(t, ok)
	assert.Equal(t, int64(600), response.Balance)
	assert.Equal(t, int64(600), store.walletBalance("user-1"))
	assert.Equal(t, int64(-400), store.ledgerSum("user-1"))
}

func TestDeductFundsInsufficientBalance(t *testing.T) {
	store := newFakeStore()
	useCase := newWalletUseCaseForTest(store, newFakeBalanceCache())

	store.seedWallet("user-1", 100)

	result := useCase.DeductFunds(context.Background(), &model.DeductFundsRequest{
		UserID:    "user-1",
		AmountSpy: 200,
		Category:  "withdrawal",
		Reason:    "over-withdrawal attempt",
	})

	require.NotNil(t, result.Error)
	assert.Equal(t, 422, errorCode(t, result.Error))
	assert.Equal(t, int64(100), store.walletBalance("user-1"))
	assert.Equal(t, 0, store.ledgerCount("user-1"))
}

func TestDeductFundsExactBalanceReachesZero(t *testing.T) {
	store := newFakeStore()
	useCase := newWalletUseCaseForTest(store, newFakeBalanceCache())

	store.seedWallet("user-1", 250)

	result := useCase.DeductFunds(context.Background(), &model.DeductFundsRequest{
		UserID:    "user-1",
		AmountSpy: 250,
		Category:  "withdrawal",
		Reason:    "drain to zero",
	})

	require.Nil(t, result.Error)
	assert.Equal(t, int64(0), store.walletBalance("user-1"))
}

func TestGetBalanceUnknownUserIsZero(t *testing.T) {
	store := newFakeStore()
	useCase := newWalletUseCaseForTest(store, newFakeBalanceCache())

	result := useCase.GetBalance(context.Background(), &model.GetBalanceRequest{UserID: "ghost"})

	require.Nil(t, result.Error)
	response, ok := result.Data.(*model.WalletResponse)
	require.True(t, ok)
	assert.Equal(t, int64(0), response.Balance)
	assert.Equal(t, "0.00", response.BalanceUsd)
}

func TestValidateSufficientBalance(t *testing.T) {
	store := newFakeStore()
	cache := newFakeBalanceCache()
	useCase := newWalletUseCaseForTest(store, cache)

	store.seedWallet("user-1", 300)

	result := useCase.ValidateSufficientBalance(context.Background(), &model.BalanceCheckRequest{
		UserID:    "user-1",
		AmountSpy: 200,
	})
	require.Nil(t, result.Error)
	response, ok := result.Data.(*model.BalanceCheckResponse)
	require.True(t, ok)
	assert.True(t, response.Sufficient)

	// second check serves from the cache warmed by the first
	result = useCase.ValidateSufficientBalance(context.Background(), &model.BalanceCheckRequest{
		UserID:    "user-1",
		AmountSpy: 400,
	})
	require.Nil(t, result.Error)
	response, ok = result.Data.(*model.BalanceCheckResponse)
	require.True(t, ok)
	assert.False(t, response.Sufficient)
	assert.Equal(t, int64(300), response.Balance)
}

func TestLedgerReconciliation(t *testing.T) {
	store := newFakeStore()
	useCase := newWalletUseCaseForTest(store, newFakeBalanceCache())
	ctx := context.Background()

	mutations := []struct {
		amount int64
		debit  bool
	}{
		{1000, false},
		{300, true},
		{550, false},
		{250, true},
	}

	for _, m := range mutations {
		if m.debit {
			result := useCase.DeductFunds(ctx, &model.DeductFundsRequest{
				UserID: "user-1", AmountSpy: m.amount, Category: "withdrawal", Reason: "reconciliation run",
			})
			require.Nil(t, result.Error)
		} else {
			result := useCase.AddFunds(ctx, &model.AddFundsRequest{
				UserID: "user-1", AmountSpy: m.amount, Category: "deposit", Reason: "reconciliation run",
			})
			require.Nil(t, result.Error)
		}
	}

	assert.Equal(t, int64(1000), store.walletBalance("user-1"))
	assert.Equal(t, store.walletBalance("user-1"), store.ledgerSum("user-1"))
	assert.Equal(t, len(mutations), store.ledgerCount("user-1"))
}

func TestLedgerListing(t *testing.T) {
	store := newFakeStore()
	useCase := newWalletUseCaseForTest(store, newFakeBalanceCache())
	ctx := context.Background()

	result := useCase.AddFunds(ctx, &model.AddFundsRequest{
		UserID: "user-1", AmountSpy: 700, Category: "deposit", Reason: "initial credit",
	})
	require.Nil(t, result.Error)

	result = useCase.Ledger(ctx, &model.LedgerListRequest{UserID: "user-1", Page: 1, Limit: 20})
	require.Nil(t, result.Error)
	response, ok := result.Data.(*model.LedgerListResponse)
	require.True(t, ok)
	require.Len(t, response.Items, 1)
	assert.Equal(t, int64(700), response.Items[0].Delta)
	assert.Equal(t, "deposit", response.Items[0].Category)
}
