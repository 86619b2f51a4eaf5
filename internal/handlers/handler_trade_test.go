package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/truequeo/trueque_backend/internal/apperrors"
	"github.com/truequeo/trueque_backend/internal/core/domain"
	portssvc "github.com/truequeo/trueque_backend/internal/core/ports/services"
	"github.com/truequeo/trueque_backend/internal/dto"
	"github.com/truequeo/trueque_backend/internal/handlers"
	"github.com/truequeo/trueque_backend/internal/platform/config"
)

// --- Mock TradeService ---
type MockTradeService struct {
	mock.Mock
}

func (m *MockTradeService) CreateTrade(ctx context.Context, req dto.CreateTradeRequest) (*domain.Trade, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) Confirm(ctx context.Context, tradeID string, actorID string, accept bool) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID, actorID, accept)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) Cancel(ctx context.Context, tradeID string, actorID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) GetClosure(ctx context.Context, tradeID string) (*domain.TradeClosure, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TradeClosure), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TradeSvcFacade = (*MockTradeService)(nil)

// --- Test Suite ---
type TradeHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockTradeService *MockTradeService
	jwtSecret        string
}

func (suite *TradeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTradeService = new(MockTradeService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skips swagger registration
	}
	services := &portssvc.ServiceContainer{
		Trade: suite.mockTradeService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TradeHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *TradeHandlerTestSuite) doRequest(method, path string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TradeHandlerTestSuite) TestCreateTrade_Success() {
	proposerID := uuid.NewString()
	responderID := uuid.NewString()
	req := dto.CreateTradeRequest{
		ProposerID:         proposerID,
		ResponderID:        responderID,
		ProposerOfferJSON:  `{"items":["bike"]}`,
		ResponderOfferJSON: `{"items":["guitar"]}`,
	}
	created := &domain.Trade{
		TradeID:     uuid.NewString(),
		ProposerID:  proposerID,
		ResponderID: responderID,
		Status:      domain.TradeStatusPending,
	}

	suite.mockTradeService.On("CreateTrade", mock.Anything, req).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/trades", req, proposerID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TradeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TradeID, resp.TradeID)
	suite.Equal("PENDING", resp.Status)
	suite.mockTradeService.AssertExpectations(suite.T())
}

func (suite *TradeHandlerTestSuite) TestCreateTrade_MissingField() {
	w := suite.doRequest(http.MethodPost, "/api/v1/trades", map[string]string{
		"proposerId": uuid.NewString(),
	}, uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTradeService.AssertNotCalled(suite.T(), "CreateTrade", mock.Anything, mock.Anything)
}

func (suite *TradeHandlerTestSuite) TestCreateTrade_NoToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/trades", map[string]string{}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TradeHandlerTestSuite) TestConfirmTrade_Success() {
	tradeID := uuid.NewString()
	actorID := uuid.NewString()
	accept := true
	confirmed := &domain.Trade{
		TradeID:           tradeID,
		ProposerID:        actorID,
		ProposerConfirmed: true,
		Status:            domain.TradeStatusPending,
	}

	suite.mockTradeService.On("Confirm", mock.Anything, tradeID, actorID, true).Return(confirmed, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/trades/%s/confirm", tradeID), dto.ConfirmTradeRequest{
		ActorID: actorID,
		Accept:  &accept,
	}, actorID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTradeService.AssertExpectations(suite.T())
}

func (suite *TradeHandlerTestSuite) TestConfirmTrade_MissingAccept() {
	tradeID := uuid.NewString()
	actorID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/trades/%s/confirm", tradeID), map[string]string{
		"userId": actorID,
	}, actorID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTradeService.AssertNotCalled(suite.T(), "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeHandlerTestSuite) TestConfirmTrade_Forbidden() {
	tradeID := uuid.NewString()
	actorID := uuid.NewString()
	accept := true

	suite.mockTradeService.On("Confirm", mock.Anything, tradeID, actorID, true).
		Return(nil, fmt.Errorf("user is not a party: %w", apperrors.ErrForbidden)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/trades/%s/confirm", tradeID), dto.ConfirmTradeRequest{
		ActorID: actorID,
		Accept:  &accept,
	}, actorID)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TradeHandlerTestSuite) TestConfirmTrade_Conflict() {
	tradeID := uuid.NewString()
	actorID := uuid.NewString()
	accept := false

	suite.mockTradeService.On("Confirm", mock.Anything, tradeID, actorID, false).
		Return(nil, fmt.Errorf("%w: trade is already CONFIRMED", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/trades/%s/confirm", tradeID), dto.ConfirmTradeRequest{
		ActorID: actorID,
		Accept:  &accept,
	}, actorID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "CONFIRMED")
}

func (suite *TradeHandlerTestSuite) TestConfirmTrade_StoreUnavailable() {
	tradeID := uuid.NewString()
	actorID := uuid.NewString()
	accept := true

	suite.mockTradeService.On("Confirm", mock.Anything, tradeID, actorID, true).
		Return(nil, fmt.Errorf("store down: %w", apperrors.ErrUnavailable)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/trades/%s/confirm", tradeID), dto.ConfirmTradeRequest{
		ActorID: actorID,
		Accept:  &accept,
	}, actorID)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *TradeHandlerTestSuite) TestGetTrade_NotFound() {
	tradeID := uuid.NewString()

	suite.mockTradeService.On("GetTrade", mock.Anything, tradeID).
		Return(nil, fmt.Errorf("no trade: %w", apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/trades/"+tradeID, nil, uuid.NewString())

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TradeHandlerTestSuite) TestGetClosure_Success() {
	tradeID := uuid.NewString()
	closure := &domain.TradeClosure{
		TradeID:     tradeID,
		FinalStatus: domain.TradeStatusConfirmed,
		ClosedAt:    time.Now().UTC(),
	}

	suite.mockTradeService.On("GetClosure", mock.Anything, tradeID).Return(closure, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/trades/%s/closure", tradeID), nil, uuid.NewString())

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TradeClosureResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("CONFIRMED", resp.FinalStatus)
}

func (suite *TradeHandlerTestSuite) TestCancelTrade_Success() {
	tradeID := uuid.NewString()
	actorID := uuid.NewString()
	cancelled := &domain.Trade{
		TradeID: tradeID,
		Status:  domain.TradeStatusCancelled,
	}

	suite.mockTradeService.On("Cancel", mock.Anything, tradeID, actorID).Return(cancelled, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/trades/%s/cancel", tradeID), dto.CancelTradeRequest{
		ActorID: actorID,
	}, actorID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TradeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("CANCELLED", resp.Status)
}

func TestTradeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TradeHandlerTestSuite))
}
