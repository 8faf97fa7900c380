package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/search"
	"github.com/coachlens/coachlens/pkg/vector"
)

// Server is the API server for querying the coachlens insight index
type Server struct {
	config   Config
	searcher *search.Searcher
	store    vector.Store
	logger   *zap.Logger
	app      *fiber.App
}

// NewServer creates a new API server.
// The searcher and store are injected to allow sharing with the CLI
// commands that run an in-process engine.
func NewServer(config Config, searcher *search.Searcher, store vector.Store, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		searcher: searcher,
		store:    store,
		logger:   logger,
		app:      app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/v1/search", s.handleSearch)
	app.Get("/v1/stats", s.handleStats)
	app.Delete("/v1/records/:id", s.handleDeleteRecord)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
