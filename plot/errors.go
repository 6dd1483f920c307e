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

package plot

import "errors"

var (
	// ErrNoSamples is returned when there is nothing to plot.
	ErrNoSamples = errors.New("no points to plot")

	// ErrInvisible is returned when a mandatory series is given a fully
	// transparent colour or a non-positive marker size.
	ErrInvisible = errors.New("series would be invisible")

	// ErrNonFinite is returned when a coordinate is NaN or infinite, or
	// when the range of the coordinates overflows.
	ErrNonFinite = errors.New("non-finite coordinate")

	// ErrRange is returned when the data range is too narrow, relative to
	// the magnitude of the data, to place distinct tick marks.
	ErrRange = errors.New("data range cannot be resolved")

	// ErrSize is returned for image dimensions outside the supported range.
	ErrSize = errors.New("invalid image size")
)

// RenderError is the error type returned by Render and RenderSeries.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return "plot: " + e.Op + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
