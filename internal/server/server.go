// Package server composes the application's dependencies.
//
// It owns:
//   - configuration
//   - the logger
//   - the database connector (no pool; a connection per query)
//   - repositories and services
//   - the display formatter
package server

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/statcast-tools/baseball-utilities/internal/config"
	"github.com/statcast-tools/baseball-utilities/internal/database"
	"github.com/statcast-tools/baseball-utilities/internal/display"
	"github.com/statcast-tools/baseball-utilities/internal/repository"
	"github.com/statcast-tools/baseball-utilities/internal/service"
)

// Server is the application container that holds shared resources.
// Nothing in it keeps a database connection open between calls.
type Server struct {
	Config       *config.Config
	Logger       *zerolog.Logger
	Connector    repository.Connector
	Repositories *repository.Repositories
	Services     *service.Services
	Display      *display.Formatter
}

// New builds a Server for cfg. The database is not dialed here.
func New(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	connector, err := database.NewConnector(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database connector: %w", err)
	}

	return NewWithConnector(cfg, logger, connector), nil
}

// NewWithConnector builds a Server around an existing connector.
func NewWithConnector(cfg *config.Config, logger *zerolog.Logger, connector repository.Connector) *Server {
	return &Server{
		Config:       cfg,
		Logger:       logger,
		Connector:    connector,
		Repositories: repository.NewRepositories(connector, logger),
		Services:     service.NewServices(logger),
		Display:      display.NewFormatter(),
	}
}
