package repository

import (
	"github.com/rs/zerolog"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Statcast *StatcastRepository
}

// NewRepositories constructs the repository container. Every repository
// shares the connector but never a connection.
func NewRepositories(connector Connector, logger *zerolog.Logger) *Repositories {
	return &Repositories{
		Statcast: NewStatcastRepository(connector, logger),
	}
}
