package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/truequeo/trueque_backend/internal/core/ports/services"
	"github.com/truequeo/trueque_backend/internal/dto"
	"github.com/truequeo/trueque_backend/internal/middleware"
)

// tradeHandler handles HTTP requests related to trades.
type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
}

// newTradeHandler creates a new tradeHandler.
func newTradeHandler(ts portssvc.TradeSvcFacade) *tradeHandler {
	return &tradeHandler{
		tradeService: ts,
	}
}

// registerTradeRoutes registers all trade-related routes.
func registerTradeRoutes(rg *gin.RouterGroup, tradeService portssvc.TradeSvcFacade) {
	h := newTradeHandler(tradeService)

	trades := rg.Group("/trades")
	{
		trades.POST("", h.createTrade)
		trades.GET("/:id", h.getTrade)
		trades.POST("/:id/confirm", h.confirmTrade)
		trades.POST("/:id/cancel", h.cancelTrade)
		trades.GET("/:id/closure", h.getClosure)
	}
}

// createTrade godoc
// @Summary Open a new trade
// @Description Opens a PENDING trade between two users with a frozen snapshot of both offers
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   trade body dto.CreateTradeRequest true "Trade details"
// @Success 201 {object} dto.TradeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /trades [post]
func (h *tradeHandler) createTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create trade request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create trade")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTradeResponse(trade))
}

// getTrade godoc
// @Summary Get a trade by ID
// @Description Retrieves a trade including its confirmation flags and status
// @Tags trades
// @Produce  json
// @Param   id path string true "Trade ID"
// @Success 200 {object} dto.TradeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Trade not found"
// @Security BearerAuth
// @Router /trades/{id} [get]
func (h *tradeHandler) getTrade(c *gin.Context) {
	tradeID := c.Param("id")

	trade, err := h.tradeService.GetTrade(c.Request.Context(), tradeID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve trade")
		return
	}

	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// confirmTrade godoc
// @Summary Confirm or reject a trade
// @Description Records one party's decision. accept=true sets that party's confirmation flag; once both are set the trade closes CONFIRMED. accept=false cancels the trade immediately.
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   id path string true "Trade ID"
// @Param   decision body dto.ConfirmTradeRequest true "Decision"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a party to the trade"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 409 {object} map[string]string "Trade already closed"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /trades/{id}/confirm [post]
func (h *tradeHandler) confirmTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tradeID := c.Param("id")

	var req dto.ConfirmTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for confirm trade request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.Confirm(c.Request.Context(), tradeID, req.ActorID, *req.Accept)
	if err != nil {
		respondServiceError(c, err, "Failed to confirm trade")
		return
	}

	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// cancelTrade godoc
// @Summary Cancel a trade
// @Description Cancels a PENDING trade on behalf of either party
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   id path string true "Trade ID"
// @Param   cancel body dto.CancelTradeRequest true "Acting user"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a party to the trade"
// @Failure 404 {object} map[string]string "Trade not found"
// @Failure 409 {object} map[string]string "Trade already closed"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /trades/{id}/cancel [post]
func (h *tradeHandler) cancelTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tradeID := c.Param("id")

	var req dto.CancelTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cancel trade request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.Cancel(c.Request.Context(), tradeID, req.ActorID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel trade")
		return
	}

	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// getClosure godoc
// @Summary Get a trade's closure record
// @Description Retrieves the immutable closure record written when the trade left PENDING
// @Tags trades
// @Produce  json
// @Param   id path string true "Trade ID"
// @Success 200 {object} dto.TradeClosureResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No closure record"
// @Security BearerAuth
// @Router /trades/{id}/closure [get]
func (h *tradeHandler) getClosure(c *gin.Context) {
	tradeID := c.Param("id")

	closure, err := h.tradeService.GetClosure(c.Request.Context(), tradeID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve closure record")
		return
	}

	c.JSON(http.StatusOK, dto.ToTradeClosureResponse(closure))
}
