package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/truequeo/trueque_backend/internal/core/ports/services"
	"github.com/truequeo/trueque_backend/internal/dto"
	"github.com/truequeo/trueque_backend/internal/middleware"
)

// proposalHandler handles HTTP requests related to proposals.
type proposalHandler struct {
	proposalService portssvc.ProposalSvcFacade
}

// newProposalHandler creates a new proposalHandler.
func newProposalHandler(ps portssvc.ProposalSvcFacade) *proposalHandler {
	return &proposalHandler{
		proposalService: ps,
	}
}

// registerProposalRoutes registers all proposal-related routes. The path
// segment keeps the upstream API's Spanish naming.
func registerProposalRoutes(rg *gin.RouterGroup, proposalService portssvc.ProposalSvcFacade) {
	h := newProposalHandler(proposalService)

	proposals := rg.Group("/propuestas")
	{
		proposals.POST("", h.createProposal)
		proposals.GET("/:id", h.getProposal)
		proposals.POST("/:id/decision", h.decideProposal)
		proposals.POST("/:id/cancel", h.cancelProposal)
		proposals.GET("/:id/eventos", h.getAuditTrail)
	}
}

// createProposal godoc
// @Summary Create a proposal
// @Description Opens a PENDING proposal referencing one offer per side and writes its CREADA audit event
// @Tags propuestas
// @Accept  json
// @Produce  json
// @Param   proposal body dto.CreateProposalRequest true "Proposal details"
// @Success 201 {object} dto.ProposalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /propuestas [post]
func (h *proposalHandler) createProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create proposal request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create proposal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProposalResponse(proposal))
}

// getProposal godoc
// @Summary Get a proposal by ID
// @Tags propuestas
// @Produce  json
// @Param   id path string true "Proposal ID"
// @Success 200 {object} dto.ProposalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Security BearerAuth
// @Router /propuestas/{id} [get]
func (h *proposalHandler) getProposal(c *gin.Context) {
	proposalID := c.Param("id")

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), proposalID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve proposal")
		return
	}

	c.JSON(http.StatusOK, dto.ToProposalResponse(proposal))
}

// decideProposal godoc
// @Summary Decide on a proposal
// @Description Records the responder's accept or reject decision. Only the responder may decide.
// @Tags propuestas
// @Accept  json
// @Produce  json
// @Param   id path string true "Proposal ID"
// @Param   decision body dto.ProposalDecisionRequest true "Decision"
// @Success 200 {object} dto.ProposalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the responder"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Failure 409 {object} map[string]string "Proposal already decided"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /propuestas/{id}/decision [post]
func (h *proposalHandler) decideProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	proposalID := c.Param("id")

	var req dto.ProposalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for proposal decision request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proposal, err := h.proposalService.Decide(c.Request.Context(), proposalID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to record decision")
		return
	}

	c.JSON(http.StatusOK, dto.ToProposalResponse(proposal))
}

// cancelProposal godoc
// @Summary Cancel a proposal
// @Description Cancels a PENDING proposal on behalf of either party
// @Tags propuestas
// @Accept  json
// @Produce  json
// @Param   id path string true "Proposal ID"
// @Param   cancel body dto.CancelProposalRequest true "Acting user"
// @Success 200 {object} dto.ProposalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a party to the proposal"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Failure 409 {object} map[string]string "Proposal already decided"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /propuestas/{id}/cancel [post]
func (h *proposalHandler) cancelProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	proposalID := c.Param("id")

	var req dto.CancelProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cancel proposal request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proposal, err := h.proposalService.CancelProposal(c.Request.Context(), proposalID, req.ActorID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel proposal")
		return
	}

	c.JSON(http.StatusOK, dto.ToProposalResponse(proposal))
}

// getAuditTrail godoc
// @Summary Get a proposal's audit trail
// @Description Returns the proposal's events oldest first
// @Tags propuestas
// @Produce  json
// @Param   id path string true "Proposal ID"
// @Success 200 {array} dto.ProposalEventResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Security BearerAuth
// @Router /propuestas/{id}/eventos [get]
func (h *proposalHandler) getAuditTrail(c *gin.Context) {
	proposalID := c.Param("id")

	events, err := h.proposalService.AuditTrail(c.Request.Context(), proposalID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve audit trail")
		return
	}

	c.JSON(http.StatusOK, dto.ToProposalEventResponses(events))
}
