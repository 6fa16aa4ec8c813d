package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"wallet-service/src/internal/entity"
	"wallet-service/src/internal/repository"
	"wallet-service/src/pkg/log"

	"github.com/sirupsen/logrus"
)

func newTestLogger() log.Log {
	return log.Log{
		AppName:  "wallet-service-test",
		LogLevel: 2,
		Logger:   logrus.New(),
	}
}

// fakeStore is an in-memory stand-in for the MySQL repositories. BeginTx
// holds an exclusive lock for the whole transaction, which reproduces
// the serialization the real store gets from SELECT ... FOR UPDATE on
// the wallet and request rows.
type fakeStore struct {
	txMu   sync.Mutex
	dataMu sync.Mutex

	wallets  map[string]*entity.Wallet
	requests map[string]*entity.FundsRequest
	ledger   []entity.LedgerRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		wallets:  make(map[string]*entity.Wallet),
		requests: make(map[string]*entity.FundsRequest),
	}
}

func (s *fakeStore) FindByUserID(_ context.Context, userID string) (*entity.Wallet, error) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	wallet, ok := s.wallets[userID]
	if !ok {
		return nil, entity.ErrWalletNotFound
	}
	copied := *wallet
	return &copied, nil
}

func (s *fakeStore) BeginTx(_ context.Context) (repository.TxStore, error) {
	s.txMu.Lock()
	return &fakeTx{
		store:          s,
		stagedWallets:  make(map[string]*entity.Wallet),
		stagedRequests: make(map[string]*entity.FundsRequest),
	}, nil
}

func (s *fakeStore) Create(_ context.Context, request *entity.FundsRequest) error {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	copied := *request
	s.requests[request.ID] = &copied
	return nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*entity.FundsRequest, error) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, entity.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (s *fakeStore) List(_ context.Context, filter *entity.FundsRequestFilter) ([]entity.FundsRequest, int64, error) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	var matched []entity.FundsRequest
	for _, request := range s.requests {
		if filter.Status != nil && request.Status != *filter.Status {
			continue
		}
		if filter.Search != nil && !strings.Contains(request.UserID, *filter.Search) {
			continue
		}
		matched = append(matched, *request)
	}

	// same ordering and pagination the SQL store applies
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (s *fakeStore) ListByUser(_ context.Context, filter *entity.LedgerFilter) ([]entity.LedgerRecord, int64, error) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	var matched []entity.LedgerRecord
	for _, record := range s.ledger {
		if record.UserID == filter.UserID {
			matched = append(matched, record)
		}
	}
	return matched, int64(len(matched)), nil
}

func (s *fakeStore) seedWallet(userID string, balance int64) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	now := time.Now().UTC()
	s.wallets[userID] = &entity.Wallet{UserID: userID, Balance: balance, CreatedAt: now, UpdatedAt: now}
}

func (s *fakeStore) seedRequest(request *entity.FundsRequest) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	copied := *request
	s.requests[request.ID] = &copied
}

func (s *fakeStore) walletBalance(userID string) int64 {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	wallet, ok := s.wallets[userID]
	if !ok {
		return 0
	}
	return wallet.Balance
}

func (s *fakeStore) requestByID(id string) entity.FundsRequest {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	return *s.requests[id]
}

func (s *fakeStore) ledgerSum(userID string) int64 {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	var sum int64
	for _, record := range s.ledger {
		if record.UserID == userID {
			sum += record.Delta
		}
	}
	return sum
}

func (s *fakeStore) ledgerCount(userID string) int {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()

	count := 0
	for _, record := range s.ledger {
		if record.UserID == userID {
			count++
		}
	}
	return count
}

// fakeTx stages writes and applies them on Commit. Reads inside the
// transaction see staged writes first, then committed state.
type fakeTx struct {
	store *fakeStore
	done  bool

	stagedWallets  map[string]*entity.Wallet
	stagedRequests map[string]*entity.FundsRequest
	stagedLedger   []entity.LedgerRecord
}

func (t *fakeTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.dataMu.Lock()
	for userID, wallet := range t.stagedWallets {
		copied := *wallet
		t.store.wallets[userID] = &copied
	}
	for id, request := range t.stagedRequests {
		copied := *request
		t.store.requests[id] = &copied
	}
	t.store.ledger = append(t.store.ledger, t.stagedLedger...)
	t.store.dataMu.Unlock()

	t.store.txMu.Unlock()
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

func (t *fakeTx) CreateWalletIfAbsent(_ context.Context, userID string) error {
	if t.walletView(userID) != nil {
		return nil
	}
	now := time.Now().UTC()
	t.stagedWallets[userID] = &entity.Wallet{UserID: userID, CreatedAt: now, UpdatedAt: now}
	return nil
}

func (t *fakeTx) LockWalletForUpdate(_ context.Context, userID string) (*entity.Wallet, error) {
	wallet := t.walletView(userID)
	if wallet == nil {
		return nil, entity.ErrWalletNotFound
	}
	copied := *wallet
	return &copied, nil
}

func (t *fakeTx) UpdateWalletBalance(_ context.Context, userID string, balance int64) error {
	wallet := t.walletView(userID)
	if wallet == nil {
		return entity.ErrWalletNotFound
	}
	copied := *wallet
	copied.Balance = balance
	copied.UpdatedAt = time.Now().UTC()
	t.stagedWallets[userID] = &copied
	return nil
}

func (t *fakeTx) InsertLedgerRecord(_ context.Context, record *entity.LedgerRecord) error {
	t.stagedLedger = append(t.stagedLedger, *record)
	return nil
}

func (t *fakeTx) LockRequestForUpdate(_ context.Context, requestID string) (*entity.FundsRequest, error) {
	request := t.requestView(requestID)
	if request == nil {
		return nil, entity.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (t *fakeTx) MarkRequestProcessed(_ context.Context, requestID string, status entity.FundsRequestStatus, adminID string, reason *string, processedAt time.Time) error {
	request := t.requestView(requestID)
	if request == nil || request.Status != entity.FundsRequestStatusPending {
		return entity.ErrRequestNotPending
	}

	copied := *request
	copied.Status = status
	copied.Reason = reason
	copied.ApprovedBy = &adminID
	copied.ApprovedAt = &processedAt
	copied.UpdatedAt = processedAt
	t.stagedRequests[requestID] = &copied
	return nil
}

func (t *fakeTx) walletView(userID string) *entity.Wallet {
	if wallet, ok := t.stagedWallets[userID]; ok {
		return wallet
	}
	t.store.dataMu.Lock()
	defer t.store.dataMu.Unlock()
	return t.store.wallets[userID]
}

func (t *fakeTx) requestView(requestID string) *entity.FundsRequest {
	if request, ok := t.stagedRequests[requestID]; ok {
		return request
	}
	t.store.dataMu.Lock()
	defer t.store.dataMu.Unlock()
	return t.store.requests[requestID]
}

// fakeBalanceCache keeps balances in a map with BalanceCache semantics.
type fakeBalanceCache struct {
	mu       sync.Mutex
	balances map[string]int64
}

func newFakeBalanceCache() *fakeBalanceCache {
	return &fakeBalanceCache{balances: make(map[string]int64)}
}

func (c *fakeBalanceCache) GetBalance(_ context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	balance, ok := c.balances[userID]
	if !ok {
		return 0, repository.ErrBalanceNotCached
	}
	return balance, nil
}

func (c *fakeBalanceCache) SetBalance(_ context.Context, userID string, balance int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.balances[userID] = balance
	return nil
}

func (c *fakeBalanceCache) DeleteBalance(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.balances, userID)
	return nil
}
