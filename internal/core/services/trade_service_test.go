package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/truequeo/trueque_backend/internal/apperrors"
	"github.com/truequeo/trueque_backend/internal/core/domain"
	portssvc "github.com/truequeo/trueque_backend/internal/core/ports/services"
	"github.com/truequeo/trueque_backend/internal/core/services"
	"github.com/truequeo/trueque_backend/internal/dto"
)

// --- Mock TradeRepository ---
type MockTradeRepository struct {
	mock.Mock
	FindTradeByIDFn     func(ctx context.Context, tradeID string) (*domain.Trade, error)
	SaveTradeFn         func(ctx context.Context, trade domain.Trade) error
	SetPartyConfirmedFn func(ctx context.Context, tradeID string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error)
	CloseTradeFn        func(ctx context.Context, tradeID string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error)
}

func (m *MockTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	if m.FindTradeByIDFn != nil {
		return m.FindTradeByIDFn(ctx, tradeID)
	}
	args := m.Called(ctx, tradeID)
	var trade *domain.Trade
	if args.Get(0) != nil {
		trade = args.Get(0).(*domain.Trade)
	}
	return trade, args.Error(1)
}

func (m *MockTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	if m.SaveTradeFn != nil {
		return m.SaveTradeFn(ctx, trade)
	}
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) SetPartyConfirmed(ctx context.Context, tradeID string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error) {
	if m.SetPartyConfirmedFn != nil {
		return m.SetPartyConfirmedFn(ctx, tradeID, party, updatedAt)
	}
	args := m.Called(ctx, tradeID, party, updatedAt)
	var trade *domain.Trade
	if args.Get(0) != nil {
		trade = args.Get(0).(*domain.Trade)
	}
	return trade, args.Error(1)
}

func (m *MockTradeRepository) CloseTrade(ctx context.Context, tradeID string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error) {
	if m.CloseTradeFn != nil {
		return m.CloseTradeFn(ctx, tradeID, status, closedAt)
	}
	args := m.Called(ctx, tradeID, status, closedAt)
	var trade *domain.Trade
	if args.Get(0) != nil {
		trade = args.Get(0).(*domain.Trade)
	}
	return trade, args.Error(1)
}

// --- Mock ClosureRepository ---
type MockClosureRepository struct {
	mock.Mock
	FindClosureByTradeIDFn func(ctx context.Context, tradeID string) (*domain.TradeClosure, error)
	SaveClosureIfAbsentFn  func(ctx context.Context, closure domain.TradeClosure) (*domain.TradeClosure, error)
}

func (m *MockClosureRepository) FindClosureByTradeID(ctx context.Context, tradeID string) (*domain.TradeClosure, error) {
	if m.FindClosureByTradeIDFn != nil {
		return m.FindClosureByTradeIDFn(ctx, tradeID)
	}
	args := m.Called(ctx, tradeID)
	var closure *domain.TradeClosure
	if args.Get(0) != nil {
		closure = args.Get(0).(*domain.TradeClosure)
	}
	return closure, args.Error(1)
}

func (m *MockClosureRepository) SaveClosureIfAbsent(ctx context.Context, closure domain.TradeClosure) (*domain.TradeClosure, error) {
	if m.SaveClosureIfAbsentFn != nil {
		return m.SaveClosureIfAbsentFn(ctx, closure)
	}
	args := m.Called(ctx, closure)
	var stored *domain.TradeClosure
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.TradeClosure)
	}
	return stored, args.Error(1)
}

// --- Mock ClosureRecorder ---
type MockClosureRecorder struct {
	mock.Mock
	RecordClosureFn func(ctx context.Context, trade domain.Trade, finalStatus domain.TradeStatus) (*domain.TradeClosure, error)
}

func (m *MockClosureRecorder) RecordClosure(ctx context.Context, trade domain.Trade, finalStatus domain.TradeStatus) (*domain.TradeClosure, error) {
	if m.RecordClosureFn != nil {
		return m.RecordClosureFn(ctx, trade, finalStatus)
	}
	args := m.Called(ctx, trade, finalStatus)
	var closure *domain.TradeClosure
	if args.Get(0) != nil {
		closure = args.Get(0).(*domain.TradeClosure)
	}
	return closure, args.Error(1)
}

// --- Mock ReputationSvc ---
type MockReputationSvc struct {
	mock.Mock
	BumpFn func(ctx context.Context, userID string) error
}

func (m *MockReputationSvc) Bump(ctx context.Context, userID string) error {
	if m.BumpFn != nil {
		return m.BumpFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type TradeServiceTestSuite struct {
	suite.Suite
	mockTradeRepo   *MockTradeRepository
	mockClosureRepo *MockClosureRepository
	mockClosure     *MockClosureRecorder
	mockReputation  *MockReputationSvc
	service         portssvc.TradeSvcFacade

	proposerID  string
	responderID string
}

func (suite *TradeServiceTestSuite) SetupTest() {
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockClosureRepo = new(MockClosureRepository)
	suite.mockClosure = new(MockClosureRecorder)
	suite.mockReputation = new(MockReputationSvc)
	suite.service = services.NewTradeService(suite.mockTradeRepo, suite.mockClosureRepo, suite.mockClosure, suite.mockReputation)

	suite.proposerID = uuid.NewString()
	suite.responderID = uuid.NewString()
}

func (suite *TradeServiceTestSuite) pendingTrade(tradeID string) *domain.Trade {
	now := time.Now().UTC()
	return &domain.Trade{
		TradeID:        tradeID,
		ProposerID:     suite.proposerID,
		ResponderID:    suite.responderID,
		ProposerOffer:  json.RawMessage(`{"items":["bike"]}`),
		ResponderOffer: json.RawMessage(`{"items":["guitar"]}`),
		Status:         domain.TradeStatusPending,
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
}

// --- CreateTrade Tests ---

func (suite *TradeServiceTestSuite) TestCreateTrade_Success() {
	ctx := context.Background()
	req := dto.CreateTradeRequest{
		ProposerID:         suite.proposerID,
		ResponderID:        suite.responderID,
		ProposerOfferJSON:  `{"items":["bike"]}`,
		ResponderOfferJSON: `{"items":["guitar"]}`,
	}

	suite.mockTradeRepo.On("SaveTrade", ctx, mock.MatchedBy(func(trade domain.Trade) bool {
		return trade.Status == domain.TradeStatusPending &&
			!trade.ProposerConfirmed && !trade.ResponderConfirmed &&
			trade.ProposerID == suite.proposerID
	})).Return(nil).Once()

	trade, err := suite.service.CreateTrade(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(trade)
	suite.NotEmpty(trade.TradeID)
	suite.Equal(domain.TradeStatusPending, trade.Status)
	suite.Nil(trade.ClosedAt)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestCreateTrade_SelfTrade() {
	ctx := context.Background()
	req := dto.CreateTradeRequest{
		ProposerID:         suite.proposerID,
		ResponderID:        suite.proposerID,
		ProposerOfferJSON:  `{}`,
		ResponderOfferJSON: `{}`,
	}

	trade, err := suite.service.CreateTrade(ctx, req)

	suite.Require().Error(err)
	suite.Nil(trade)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "SaveTrade", mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestCreateTrade_MalformedOffer() {
	ctx := context.Background()
	req := dto.CreateTradeRequest{
		ProposerID:         suite.proposerID,
		ResponderID:        suite.responderID,
		ProposerOfferJSON:  `{"items":`,
		ResponderOfferJSON: `{}`,
	}

	trade, err := suite.service.CreateTrade(ctx, req)

	suite.Require().Error(err)
	suite.Nil(trade)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Confirm Tests ---

func (suite *TradeServiceTestSuite) TestConfirm_FirstAccept_StaysPending() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	stored := suite.pendingTrade(tradeID)

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}
	suite.mockTradeRepo.SetPartyConfirmedFn = func(ctx context.Context, id string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error) {
		suite.Equal(domain.PartyProposer, party)
		updated := *stored
		updated.ProposerConfirmed = true
		return &updated, nil
	}

	trade, err := suite.service.Confirm(ctx, tradeID, suite.proposerID, true)

	suite.Require().NoError(err)
	suite.True(trade.ProposerConfirmed)
	suite.False(trade.ResponderConfirmed)
	suite.Equal(domain.TradeStatusPending, trade.Status)
	suite.mockClosure.AssertNotCalled(suite.T(), "RecordClosure", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReputation.AssertNotCalled(suite.T(), "Bump", mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestConfirm_SecondAccept_ClosesConfirmed() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	stored := suite.pendingTrade(tradeID)
	stored.ProposerConfirmed = true

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}
	suite.mockTradeRepo.SetPartyConfirmedFn = func(ctx context.Context, id string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error) {
		suite.Equal(domain.PartyResponder, party)
		updated := *stored
		updated.ResponderConfirmed = true
		return &updated, nil
	}
	suite.mockTradeRepo.CloseTradeFn = func(ctx context.Context, id string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error) {
		suite.Equal(domain.TradeStatusConfirmed, status)
		closed := *stored
		closed.ResponderConfirmed = true
		closed.Status = domain.TradeStatusConfirmed
		closed.ClosedAt = &closedAt
		return &closed, nil
	}

	suite.mockClosure.On("RecordClosure", mock.Anything, mock.AnythingOfType("domain.Trade"), domain.TradeStatusConfirmed).
		Return(&domain.TradeClosure{TradeID: tradeID, FinalStatus: domain.TradeStatusConfirmed}, nil).Once()
	suite.mockReputation.On("Bump", mock.Anything, suite.proposerID).Return(nil).Once()
	suite.mockReputation.On("Bump", mock.Anything, suite.responderID).Return(nil).Once()

	trade, err := suite.service.Confirm(ctx, tradeID, suite.responderID, true)

	suite.Require().NoError(err)
	suite.Equal(domain.TradeStatusConfirmed, trade.Status)
	suite.Require().NotNil(trade.ClosedAt)
	suite.mockClosure.AssertExpectations(suite.T())
	suite.mockReputation.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestConfirm_Reject_CancelsImmediately() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	stored := suite.pendingTrade(tradeID)
	stored.ProposerConfirmed = true // the other party had already accepted

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}
	suite.mockTradeRepo.CloseTradeFn = func(ctx context.Context, id string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error) {
		suite.Equal(domain.TradeStatusCancelled, status)
		closed := *stored
		closed.Status = domain.TradeStatusCancelled
		closed.ProposerConfirmed = false
		closed.ResponderConfirmed = false
		closed.ClosedAt = &closedAt
		return &closed, nil
	}

	suite.mockClosure.On("RecordClosure", mock.Anything, mock.AnythingOfType("domain.Trade"), domain.TradeStatusCancelled).
		Return(&domain.TradeClosure{TradeID: tradeID, FinalStatus: domain.TradeStatusCancelled}, nil).Once()

	trade, err := suite.service.Confirm(ctx, tradeID, suite.responderID, false)

	suite.Require().NoError(err)
	suite.Equal(domain.TradeStatusCancelled, trade.Status)
	suite.False(trade.ProposerConfirmed)
	suite.False(trade.ResponderConfirmed)
	suite.mockClosure.AssertExpectations(suite.T())
	suite.mockReputation.AssertNotCalled(suite.T(), "Bump", mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestConfirm_RepeatAccept_Idempotent() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	stored := suite.pendingTrade(tradeID)
	stored.ProposerConfirmed = true

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}
	suite.mockTradeRepo.SetPartyConfirmedFn = func(ctx context.Context, id string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error) {
		updated := *stored
		updated.ProposerConfirmed = true
		return &updated, nil
	}

	trade, err := suite.service.Confirm(ctx, tradeID, suite.proposerID, true)

	suite.Require().NoError(err)
	suite.Equal(domain.TradeStatusPending, trade.Status)
	suite.mockClosure.AssertNotCalled(suite.T(), "RecordClosure", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestConfirm_NonParty_Forbidden() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	stored := suite.pendingTrade(tradeID)

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}

	trade, err := suite.service.Confirm(ctx, tradeID, uuid.NewString(), true)

	suite.Require().Error(err)
	suite.Nil(trade)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TradeServiceTestSuite) TestConfirm_AlreadyClosed_Conflict() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	closedAt := time.Now().UTC()
	stored := suite.pendingTrade(tradeID)
	stored.Status = domain.TradeStatusCancelled
	stored.ClosedAt = &closedAt

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}

	trade, err := suite.service.Confirm(ctx, tradeID, suite.proposerID, true)

	suite.Require().Error(err)
	suite.Nil(trade)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "CANCELLED")
}

func (suite *TradeServiceTestSuite) TestConfirm_TradeNotFound() {
	ctx := context.Background()
	tradeID := uuid.NewString()

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return nil, apperrors.ErrNotFound
	}

	trade, err := suite.service.Confirm(ctx, tradeID, suite.proposerID, true)

	suite.Require().Error(err)
	suite.Nil(trade)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TradeServiceTestSuite) TestConfirm_ExpiredContext_NoWrite() {
	tradeID := uuid.NewString()
	stored := suite.pendingTrade(tradeID)

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trade, err := suite.service.Confirm(ctx, tradeID, suite.proposerID, true)

	suite.Require().Error(err)
	suite.Nil(trade)
	suite.ErrorIs(err, context.Canceled)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "SetPartyConfirmed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "CloseTrade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestConfirm_ClosureUnavailable_RetriedThenSucceeds() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	stored := suite.pendingTrade(tradeID)
	stored.ProposerConfirmed = true

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}
	suite.mockTradeRepo.SetPartyConfirmedFn = func(ctx context.Context, id string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error) {
		updated := *stored
		updated.ResponderConfirmed = true
		return &updated, nil
	}
	suite.mockTradeRepo.CloseTradeFn = func(ctx context.Context, id string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error) {
		closed := *stored
		closed.ResponderConfirmed = true
		closed.Status = domain.TradeStatusConfirmed
		closed.ClosedAt = &closedAt
		return &closed, nil
	}

	var recordCalls int
	suite.mockClosure.RecordClosureFn = func(ctx context.Context, trade domain.Trade, finalStatus domain.TradeStatus) (*domain.TradeClosure, error) {
		recordCalls++
		if recordCalls < 3 {
			return nil, apperrors.ErrUnavailable
		}
		return &domain.TradeClosure{TradeID: trade.TradeID, FinalStatus: finalStatus}, nil
	}
	suite.mockReputation.BumpFn = func(ctx context.Context, userID string) error { return nil }

	trade, err := suite.service.Confirm(ctx, tradeID, suite.responderID, true)

	// The terminal transition already committed, so the caller still sees
	// success even though the closure write needed retries.
	suite.Require().NoError(err)
	suite.Equal(domain.TradeStatusConfirmed, trade.Status)
	suite.Equal(3, recordCalls)
}

func (suite *TradeServiceTestSuite) TestConcurrentAccepts_CloseExactlyOnce() {
	tradeID := uuid.NewString()

	// Stateful in-memory trade guarded by nothing: the service's per-trade
	// lock is what must keep these read-modify-write cycles from
	// interleaving.
	stored := suite.pendingTrade(tradeID)
	closeCalls := 0
	recordCalls := 0
	bumps := map[string]int{}
	var depMu sync.Mutex

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		snapshot := *stored
		return &snapshot, nil
	}
	suite.mockTradeRepo.SetPartyConfirmedFn = func(ctx context.Context, id string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error) {
		if party == domain.PartyProposer {
			stored.ProposerConfirmed = true
		} else {
			stored.ResponderConfirmed = true
		}
		snapshot := *stored
		return &snapshot, nil
	}
	suite.mockTradeRepo.CloseTradeFn = func(ctx context.Context, id string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error) {
		closeCalls++
		stored.Status = status
		stored.ClosedAt = &closedAt
		snapshot := *stored
		return &snapshot, nil
	}
	suite.mockClosure.RecordClosureFn = func(ctx context.Context, trade domain.Trade, finalStatus domain.TradeStatus) (*domain.TradeClosure, error) {
		depMu.Lock()
		defer depMu.Unlock()
		recordCalls++
		return &domain.TradeClosure{TradeID: trade.TradeID, FinalStatus: finalStatus}, nil
	}
	suite.mockReputation.BumpFn = func(ctx context.Context, userID string) error {
		depMu.Lock()
		defer depMu.Unlock()
		bumps[userID]++
		return nil
	}

	var wg sync.WaitGroup
	for _, actor := range []string{suite.proposerID, suite.responderID} {
		wg.Add(1)
		go func(actorID string) {
			defer wg.Done()
			_, err := suite.service.Confirm(context.Background(), tradeID, actorID, true)
			suite.NoError(err)
		}(actor)
	}
	wg.Wait()

	suite.Equal(domain.TradeStatusConfirmed, stored.Status)
	suite.Equal(1, closeCalls, "trade must close exactly once")
	suite.Equal(1, recordCalls, "closure must be recorded exactly once")
	suite.Equal(1, bumps[suite.proposerID])
	suite.Equal(1, bumps[suite.responderID])
}

// --- Cancel / GetClosure Tests ---

func (suite *TradeServiceTestSuite) TestCancel_DelegatesToReject() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	stored := suite.pendingTrade(tradeID)

	suite.mockTradeRepo.FindTradeByIDFn = func(ctx context.Context, id string) (*domain.Trade, error) {
		return stored, nil
	}
	suite.mockTradeRepo.CloseTradeFn = func(ctx context.Context, id string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error) {
		suite.Equal(domain.TradeStatusCancelled, status)
		closed := *stored
		closed.Status = domain.TradeStatusCancelled
		closed.ClosedAt = &closedAt
		return &closed, nil
	}
	suite.mockClosure.RecordClosureFn = func(ctx context.Context, trade domain.Trade, finalStatus domain.TradeStatus) (*domain.TradeClosure, error) {
		return &domain.TradeClosure{TradeID: trade.TradeID, FinalStatus: finalStatus}, nil
	}

	trade, err := suite.service.Cancel(ctx, tradeID, suite.proposerID)

	suite.Require().NoError(err)
	suite.Equal(domain.TradeStatusCancelled, trade.Status)
}

func (suite *TradeServiceTestSuite) TestGetClosure_NotFoundWhilePending() {
	ctx := context.Background()
	tradeID := uuid.NewString()

	suite.mockClosureRepo.On("FindClosureByTradeID", ctx, tradeID).Return(nil, apperrors.ErrNotFound).Once()

	closure, err := suite.service.GetClosure(ctx, tradeID)

	suite.Require().Error(err)
	suite.Nil(closure)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockClosureRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestGetClosure_Success() {
	ctx := context.Background()
	tradeID := uuid.NewString()
	expected := &domain.TradeClosure{TradeID: tradeID, FinalStatus: domain.TradeStatusConfirmed}

	suite.mockClosureRepo.On("FindClosureByTradeID", ctx, tradeID).Return(expected, nil).Once()

	closure, err := suite.service.GetClosure(ctx, tradeID)

	suite.Require().NoError(err)
	suite.Equal(expected, closure)
}

func TestTradeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TradeServiceTestSuite))
}
