// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/vigil/internal/adapters/cache"
	_ "go.trai.ch/vigil/internal/adapters/config"
	_ "go.trai.ch/vigil/internal/adapters/fingerprint"
	_ "go.trai.ch/vigil/internal/adapters/health"
	_ "go.trai.ch/vigil/internal/adapters/logger"
	_ "go.trai.ch/vigil/internal/adapters/metrics"
	_ "go.trai.ch/vigil/internal/adapters/probe"
	_ "go.trai.ch/vigil/internal/adapters/telemetry"
	_ "go.trai.ch/vigil/internal/adapters/watcher"

	// Register app nodes.
	_ "go.trai.ch/vigil/internal/app"
)
