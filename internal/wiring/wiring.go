// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/nourish/internal/adapters/cache"
	_ "go.trai.ch/nourish/internal/adapters/config"
	_ "go.trai.ch/nourish/internal/adapters/logger"
	_ "go.trai.ch/nourish/internal/adapters/remote"
	_ "go.trai.ch/nourish/internal/adapters/session"
	_ "go.trai.ch/nourish/internal/adapters/telemetry/progrock"
	// Register app, engine and core nodes.
	_ "go.trai.ch/nourish/internal/app"
	_ "go.trai.ch/nourish/internal/engine/fetch"
	_ "go.trai.ch/nourish/internal/temporal"
)
