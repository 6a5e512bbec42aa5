package handlers

import (
	"net/http"

	"football-league-api/packages/core/models"
	"football-league-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a new team
// @Summary Create a new team
// @Description Create a team with a unique name; it starts with zero points
// @Tags teams
// @Accept json
// @Produce json
// @Param team body models.CreateTeamRequest true "Team data"
// @Success 201 {object} models.TeamResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// GetTeams lists the standings
// @Summary Get standings
// @Description Get all active teams ordered by points, highest first
// @Tags teams
// @Produce json
// @Success 200 {array} models.TeamResponse
// @Failure 500 {object} map[string]string
// @Router /teams [get]
func (h *TeamHandler) GetTeams(c *gin.Context) {
	teams, err := h.teamService.GetStandings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeam gets a team by ID
// @Summary Get team by ID
// @Description Get team information by team ID
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} models.TeamResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeamByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// GetTeamMatches lists the matches of a team
// @Summary Get team matches
// @Description Get every active match the team played at home or away
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {array} models.MatchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /teams/{id}/matches [get]
func (h *TeamHandler) GetTeamMatches(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	matches, err := h.teamService.GetTeamMatches(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// UpdateTeam updates a team
// @Summary Update team
// @Description Rename a team; points are unchanged
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param team body models.UpdateTeamRequest true "Team update data"
// @Success 200 {object} models.TeamResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /teams/{id} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// DeleteTeam deletes a team
// @Summary Delete team
// @Description Soft delete a team; its name becomes available again
// @Tags teams
// @Param id path string true "Team ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
