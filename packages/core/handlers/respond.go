package handlers

import (
	"errors"
	"net/http"

	"football-league-api/packages/core/services"
	"football-league-api/packages/core/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var errInvalidID = errors.New("invalid id")

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrTeamNotFound),
		errors.Is(err, store.ErrMatchNotFound),
		errors.Is(err, store.ErrTeamsNotResolvable):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNameConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrSameTeam),
		errors.Is(err, services.ErrInvalidTeamName),
		errors.Is(err, services.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID.Error()})
		return uuid.Nil, false
	}
	return id, true
}
