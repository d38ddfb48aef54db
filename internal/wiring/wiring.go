// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/plink/internal/adapters/cas"
	_ "go.trai.ch/plink/internal/adapters/config"
	_ "go.trai.ch/plink/internal/adapters/detector"
	_ "go.trai.ch/plink/internal/adapters/dynlib"
	_ "go.trai.ch/plink/internal/adapters/fs"
	_ "go.trai.ch/plink/internal/adapters/llvm"
	_ "go.trai.ch/plink/internal/adapters/logger"
	_ "go.trai.ch/plink/internal/adapters/shell"
	_ "go.trai.ch/plink/internal/adapters/telemetry"
	_ "go.trai.ch/plink/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/plink/internal/app"
	_ "go.trai.ch/plink/internal/engine/host"
	_ "go.trai.ch/plink/internal/engine/orchestrator"
)
