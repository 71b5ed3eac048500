package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/r3p1n/scoring/internal/config"
	"github.com/r3p1n/scoring/internal/game"
	"github.com/r3p1n/scoring/internal/ledger"
	"github.com/r3p1n/scoring/internal/logging"
	"github.com/r3p1n/scoring/internal/results"
	"github.com/r3p1n/scoring/internal/store"
)

type Server struct {
	store   *store.Store
	games   *game.Manager
	rounds  *ledger.Registry
	results *results.Aggregator
	cfg     config.Config
	logger  *slog.Logger
}

func New(conn *gorm.DB, cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := store.New(conn, logger)
	return &Server{
		store:   s,
		games:   game.NewManager(s, logger, cfg.DefaultGoal),
		rounds:  ledger.NewRegistry(ledger.New(s, logger, nil)),
		results: results.New(s, logger, nil),
		cfg:     cfg,
		logger:  logger,
	}
}

func (s *Server) Handler() http.Handler {
	registerValidators()
	if s.cfg.GinMode != "" {
		gin.SetMode(s.cfg.GinMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(s.logger))

	router.GET("/", s.handleHome)
	router.GET("/games/:id/results", s.handleResultsView)

	api := router.Group("/api")
	api.GET("/users", s.handleListUsers)
	api.POST("/users", s.handleCreateUser)
	api.PATCH("/users/:id", s.handleRenameUser)
	api.GET("/settings/goal", s.handleDefaultGoal)

	api.GET("/games", s.handleListGames)
	api.POST("/games", s.handleCreateGame)
	api.GET("/games/:id", s.handleGetGame)
	api.POST("/games/:id/settings", s.handleApplySettings)
	api.POST("/games/:id/finish", s.handleFinishGame)
	api.GET("/games/:id/events", s.handleListEvents)

	api.GET("/games/:id/round", s.handleRoundView)
	api.PUT("/games/:id/round/scores", s.handleSetScores)
	api.POST("/games/:id/round/multiplier", s.handleCycleMultiplier)
	api.POST("/games/:id/round/next", s.handleNextRound)

	api.GET("/games/:id/results", s.handleResults)
	api.POST("/games/:id/results/switch", s.handleSwitchResults)
	return router
}
