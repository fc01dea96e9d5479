package ports

import "go.trai.ch/nourish/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration from the file at path, the environment and defaults.
	// An empty path selects the default location.
	Load(path string) (*domain.Config, error)
}
