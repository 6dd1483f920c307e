// seehuhn.de/go/lagrange - Lagrange interpolation with rendered plots
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"io"
	"log/slog"
)

// Logger wraps slog.Logger with consistent field names for the
// operations of this command.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a Logger writing to w, as JSON or as text.
func NewLogger(w io.Writer, json bool, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(h)}
}

// WithTask adds the task name to all log entries.
func (l *Logger) WithTask(name string) *Logger {
	return &Logger{Logger: l.Logger.With("task", name)}
}

// LogSolve logs the evaluation of one interpolation task.
func (l *Logger) LogSolve(ctx context.Context, points int, x, y float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "interpolation failed",
			"points", points,
			"x", x,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "task solved",
			"points", points,
			"x", x,
			"y", y,
		)
	}
}

// LogRender logs the rendering of one image.
func (l *Logger) LogRender(ctx context.Context, filename string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "render failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "image written",
			"filename", filename,
			"bytes", size,
		)
	}
}
