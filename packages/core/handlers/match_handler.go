package handlers

import (
	"net/http"

	"football-league-api/packages/core/models"
	"football-league-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService      *services.MatchService
	settlementService *services.SettlementService
}

func NewMatchHandler(matchService *services.MatchService, settlementService *services.SettlementService) *MatchHandler {
	return &MatchHandler{
		matchService:      matchService,
		settlementService: settlementService,
	}
}

// CreateMatch records a match
// @Summary Create a new match
// @Description Record a match; points are awarded when both times are set and in the past
// @Tags matches
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.MatchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.CreateMatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// GetMatches lists all matches
// @Summary Get all matches
// @Description Get every active match ordered by start time
// @Tags matches
// @Produce json
// @Success 200 {array} models.MatchResponse
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	matches, err := h.matchService.GetMatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatch gets a match by ID
// @Summary Get match by ID
// @Description Get a match with both team snapshots
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} models.MatchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	match, err := h.matchService.GetMatchByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// UpdateMatch replaces a match
// @Summary Update match
// @Description Replace teams, scores and times; the previous outcome is retracted before the new one is applied
// @Tags matches
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param match body models.UpdateMatchRequest true "Match data"
// @Success 200 {object} models.MatchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [put]
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.UpdateMatch(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// DeleteMatch deletes a match
// @Summary Delete match
// @Description Soft delete a match and retract its points
// @Tags matches
// @Param id path string true "Match ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.matchService.DeleteMatch(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SettleMatches credits finished matches
// @Summary Settle finished matches
// @Description Award points for matches that were recorded before they finished
// @Tags matches
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {object} map[string]string
// @Router /matches/settle [post]
func (h *MatchHandler) SettleMatches(c *gin.Context) {
	settled, err := h.settlementService.SettleCompleted(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settled": settled})
}
