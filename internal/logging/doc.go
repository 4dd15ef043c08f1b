// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package logging provides centralized zerolog-based structured logging for ClosetMate.
//
// JSON output is the default and suits batch training runs whose logs are
// collected by a scheduler. Console output is meant for interactive use of
// the closetmate CLI.
//
// # Quick Start
//
//	import "github.com/tomtom215/closetmate/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Error().Err(err).Msg("command failed")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Component Loggers
//
// Long-lived components take a zerolog.Logger at construction and tag it:
//
//	engine, err := recommend.NewEngine(cfg, loader, logging.WithComponent("cli"))
//
// # Context-Aware Logging
//
// Each CLI invocation carries a correlation ID, and each recommendation a
// request ID. Both are propagated through context:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.CtxInfo(ctx).Msg("Running command")
//
// # Output Formats
//
// JSON Format:
//
//	{"level":"info","time":"2026-03-01T10:30:00Z","component":"training","message":"training complete"}
//
// Console Format:
//
//	10:30:00 INF training complete component=training
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Tests capture output by pointing Init at a buffer and restoring
// DefaultConfig afterwards.
package logging
