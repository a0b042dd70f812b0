// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package anim drives skeletal animation of characters.
//
// A Character evaluates a blend tree once per tick and
// feeds the resulting object-space pose to its skin. A
// Session steps many characters together.
package anim

import (
	"log/slog"

	"github.com/gviegas/anim/internal/logging"
)

// SetLogger sets the logger used by anim and all of its
// packages. By default, nothing is logged.
// Passing nil restores the default.
//
// Debug is used for node creation and character
// lifecycle, and Warn for nodes that fall back to the
// identity operation.
func SetLogger(l *slog.Logger) { logging.Set(l) }

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger { return logging.Logger() }
