// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/flexgen/internal/adapters/config"
	_ "go.trai.ch/flexgen/internal/adapters/logger"
	_ "go.trai.ch/flexgen/internal/adapters/metrics"
	_ "go.trai.ch/flexgen/internal/adapters/plugin"
	_ "go.trai.ch/flexgen/internal/adapters/project"
	_ "go.trai.ch/flexgen/internal/adapters/shell"
	_ "go.trai.ch/flexgen/internal/adapters/state"
	_ "go.trai.ch/flexgen/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/flexgen/internal/app"
)
