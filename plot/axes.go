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

import (
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/lagrange"
)

// margin is the fraction of the data range added on each side of an axis.
const margin = 0.05

// axis describes the visible range of one coordinate and the positions
// of its tick marks.
type axis struct {
	min, max float64
	step     float64
	ticks    []float64
}

// maxTicks bounds the number of ticks on one axis.
const maxTicks = 1000

// niceAxis returns an axis covering [lo, hi] plus a margin, with about n
// ticks at multiples of 1, 2, 2.5 or 5 times a power of ten.
//
// An error is returned if the padded range overflows, or if the tick
// positions cannot be told apart at float64 precision.
func niceAxis(lo, hi float64, n int) (axis, error) {
	if hi <= lo {
		d := math.Max(math.Abs(lo)*0.1, 1)
		lo, hi = lo-d, hi+d
	}
	pad := (hi - lo) * margin
	lo -= pad
	hi += pad

	n = max(n, 2)
	span := hi - lo
	if !isFinite(lo) || !isFinite(hi) || !isFinite(span) {
		return axis{}, fmt.Errorf("%w: axis range [%g, %g]", ErrNonFinite, lo, hi)
	}
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	step := mag
	bestScore := math.Inf(1)
	for _, f := range []float64{1, 2, 2.5, 5, 10} {
		s := f * mag
		count := math.Floor(span / s)
		score := math.Abs(count - float64(n-1))
		if score < bestScore {
			bestScore = score
			step = s
		}
	}
	if !isFinite(step) || step <= 0 {
		return axis{}, fmt.Errorf("%w: tick step %g", ErrNonFinite, step)
	}

	// Tick indices beyond 2^52 have no distinct neighbours in float64.
	first := math.Ceil(lo/step - 1e-9)
	last := math.Floor(hi/step + 1e-9)
	if math.Abs(first) > 1<<52 || math.Abs(last) > 1<<52 {
		return axis{}, fmt.Errorf("%w: [%g, %g]", ErrRange, lo, hi)
	}
	count := int(last-first) + 1
	if count < 1 || count > maxTicks {
		return axis{}, fmt.Errorf("%w: %d ticks for [%g, %g]", ErrRange, count, lo, hi)
	}

	ticks := make([]float64, count)
	for i := range count {
		v := (first + float64(i)) * step
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks[i] = v
	}
	return axis{min: lo, max: hi, step: step, ticks: ticks}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// formatTick formats v with just enough decimals to tell ticks spaced by
// step apart.
func formatTick(v, step float64) string {
	d := 0
	for scaled := step; d < 10; d++ {
		r := math.Round(scaled)
		if r >= 1 && math.Abs(scaled-r) < 1e-6*scaled {
			break
		}
		scaled *= 10
	}
	if v == 0 {
		v = 0 // avoid "-0"
	}
	return strconv.FormatFloat(v, 'f', d, 64)
}

// frame is the plotting area of an image together with the axes mapped
// onto it. Device coordinates have y pointing down.
type frame struct {
	left, top, right, bottom float64
	x, y                     axis
}

// toDevice maps a data point to device coordinates.
func (f *frame) toDevice(p lagrange.Point) vec.Vec2 {
	return vec.Vec2{
		X: f.left + (p.X-f.x.min)/(f.x.max-f.x.min)*(f.right-f.left),
		Y: f.bottom - (p.Y-f.y.min)/(f.y.max-f.y.min)*(f.bottom-f.top),
	}
}

// dataRange returns the bounding box of pts. If withOrigin is set, the
// box is extended to contain (0, 0).
func dataRange(pts []lagrange.Point, withOrigin bool) (xlo, xhi, ylo, yhi float64) {
	xlo, ylo = math.Inf(1), math.Inf(1)
	xhi, yhi = math.Inf(-1), math.Inf(-1)
	if withOrigin {
		xlo, xhi, ylo, yhi = 0, 0, 0, 0
	}
	for _, p := range pts {
		xlo = min(xlo, p.X)
		xhi = max(xhi, p.X)
		ylo = min(ylo, p.Y)
		yhi = max(yhi, p.Y)
	}
	return xlo, xhi, ylo, yhi
}
