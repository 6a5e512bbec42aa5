package core

import (
	"football-league-api/packages/core/cron"
	"football-league-api/packages/core/handlers"
	"football-league-api/packages/core/ranking"
	"football-league-api/packages/core/services"
	"football-league-api/packages/core/store"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps are the optional collaborators of the module. Nil members are replaced
// with no-op implementations.
type Deps struct {
	Clock              clockwork.Clock
	Cache              services.StandingsCache
	Publisher          services.EventPublisher
	Recorder           services.MutationRecorder
	RankObserver       store.RankObserver
	SettlementSchedule string
}

type Module struct {
	TeamStore         *store.TeamStore
	MatchStore        *store.MatchStore
	TeamHandler       *handlers.TeamHandler
	TeamService       *services.TeamService
	MatchHandler      *handlers.MatchHandler
	MatchService      *services.MatchService
	StatsHandler      *handlers.StatsHandler
	StatsService      *services.StatsService
	SettlementService *services.SettlementService
	Scheduler         *cron.Scheduler
}

func NewModule(db *gorm.DB, deps Deps) *Module {
	engine := ranking.NewEngine(deps.Clock)

	teamStore := store.NewTeamStore(db)
	matchStore := store.NewMatchStore(db, engine)
	if deps.RankObserver != nil {
		matchStore = matchStore.WithObserver(deps.RankObserver)
	}

	teamService := services.NewTeamService(teamStore, matchStore, deps.Cache)
	teamHandler := handlers.NewTeamHandler(teamService)

	matchService := services.NewMatchService(matchStore, teamStore, deps.Cache, deps.Publisher, deps.Recorder)
	settlementService := services.NewSettlementService(matchStore, deps.Cache, deps.Publisher, deps.Recorder)
	matchHandler := handlers.NewMatchHandler(matchService, settlementService)

	statsService := services.NewStatsService(teamStore, matchStore)
	statsHandler := handlers.NewStatsHandler(statsService)

	scheduler := cron.NewScheduler(settlementService, deps.SettlementSchedule)

	return &Module{
		TeamStore:         teamStore,
		MatchStore:        matchStore,
		TeamHandler:       teamHandler,
		TeamService:       teamService,
		MatchHandler:      matchHandler,
		MatchService:      matchService,
		StatsHandler:      statsHandler,
		StatsService:      statsService,
		SettlementService: settlementService,
		Scheduler:         scheduler,
	}
}

func (m *Module) SetupRoutes(r gin.IRouter) {
	teams := r.Group("/teams")
	{
		teams.GET("", m.TeamHandler.GetTeams)
		teams.POST("", m.TeamHandler.CreateTeam)
		teams.GET("/:id", m.TeamHandler.GetTeam)
		teams.GET("/:id/matches", m.TeamHandler.GetTeamMatches)
		teams.PUT("/:id", m.TeamHandler.UpdateTeam)
		teams.DELETE("/:id", m.TeamHandler.DeleteTeam)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.POST("", m.MatchHandler.CreateMatch)
		matches.POST("/settle", m.MatchHandler.SettleMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.PUT("/:id", m.MatchHandler.UpdateMatch)
		matches.DELETE("/:id", m.MatchHandler.DeleteMatch)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the settlement job.
func (m *Module) StartScheduler() error {
	log.Info().Msg("starting core module scheduler")
	return m.Scheduler.Start()
}

func (m *Module) StopScheduler() {
	log.Info().Msg("stopping core module scheduler")
	m.Scheduler.Stop()
}
