package handlers

import (
	"net/http"

	"football-league-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats retrieves league statistics
// @Summary Get league statistics
// @Description Get counts of teams and of played, ranked and unsettled matches
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to retrieve statistics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve statistics",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
