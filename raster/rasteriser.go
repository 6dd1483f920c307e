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

// Package raster converts vector paths into anti-aliased pixel coverage.
//
// Coverage is the exact fraction of each pixel's area inside the shape,
// computed analytically from the path edges. No supersampling is used.
// Results are delivered one scanline at a time through a callback, so the
// caller decides how coverage is composited into an image.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage values for the pixels xMin, xMin+1, ...
// of scanline y. The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser converts paths to coverage values. Internal buffers grow as
// needed and are reused between calls.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip limits output to this device-space rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve approximation tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the style used at the ends of open stroked subpaths.
	Cap graphics.LineCapStyle

	// Join is the style used where stroked segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the
	// stroke width. Longer miters are drawn as bevels.
	MiterLimit float64

	cover     []float32
	area      []float32
	edges     []edge
	activeIdx []int

	bboxEmpty bool
	bbox      rect.Rect // device-space bounds of r.edges

	// stroke outline polygons, all contiguous
	poly        []vec.Vec2
	polyOffsets []int

	// flattened subpaths, used for stroking
	pts        []vec.Vec2
	subOffsets []int
	subClosed  []bool
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, using
// PDF default values for the other parameters.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.poly = r.poly[:0]
	r.polyOffsets = r.polyOffsets[:0]
	r.pts = r.pts[:0]
	r.subOffsets = r.subOffsets[:0]
	r.subClosed = r.subClosed[:0]
}

// toDevice applies the CTM to a point.
func (r *Rasteriser) toDevice(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// deviceLength returns the device-space length of the user-space vector v.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}.Length()
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2 by
// line segments, which are passed to emit.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	// maximal deviation from the chord is |p0 - 2p1 + p2|/4
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates the cubic Bézier curve p0, ..., p3 by line
// segments, which are passed to emit. The number of segments is chosen
// using Wang's formula.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1, d2); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// walk calls lineTo for every straight piece of p, after flattening
// curves. If implicitClose is set, open subpaths are closed by a final
// line back to their start. The optional callbacks subpath and closePath
// are called for every MoveTo and ClosePath command.
func (r *Rasteriser) walk(p *path.Data, implicitClose bool, subpath func(start vec.Vec2), lineTo func(a, b vec.Vec2), closePath func()) {
	var current, start vec.Vec2
	open := false
	finish := func() {
		if open && implicitClose && current != start {
			lineTo(current, start)
		}
		open = false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish()
			current = p.Coords[k]
			start = current
			open = true
			if subpath != nil {
				subpath(start)
			}
			k++
		case path.CmdLineTo:
			lineTo(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], lineTo)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				lineTo(current, start)
			}
			current = start
			open = false
			if closePath != nil {
				closePath()
			}
		}
	}
	finish()
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.startEdges()
	r.walk(p, true, nil, r.addEdge, nil)
	r.sweep(emit)
}

// startEdges clears the edge list.
func (r *Rasteriser) startEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge transforms the user-space segment a-b to device space and adds
// it to the edge list. Horizontal edges do not contribute to coverage and
// are dropped.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	da := r.toDevice(a)
	db := r.toDevice(b)

	dy := db.Y - da.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: da.X, y0: da.Y,
		x1: db.X, y1: db.Y,
		dxdy: (db.X - da.X) / dy,
	})

	lo := vec.Vec2{X: min(da.X, db.X), Y: min(da.Y, db.Y)}
	hi := vec.Vec2{X: max(da.X, db.X), Y: max(da.Y, db.Y)}
	if r.bboxEmpty {
		r.bbox = rect.Rect{LLx: lo.X, LLy: lo.Y, URx: hi.X, URy: hi.Y}
		r.bboxEmpty = false
		return
	}
	r.bbox.LLx = min(r.bbox.LLx, lo.X)
	r.bbox.LLy = min(r.bbox.LLy, lo.Y)
	r.bbox.URx = max(r.bbox.URx, hi.X)
	r.bbox.URy = max(r.bbox.URy, hi.Y)
}

// pixelBounds returns the pixel range touched by the current edges,
// clamped to the clip rectangle.
func (r *Rasteriser) pixelBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Coverage model
//
// Each scanline keeps two accumulators per pixel. cover[i] is the signed
// vertical extent of all edge pieces inside pixel column i, and area[i] is
// the part of that extent which lies to the right of the edge within the
// pixel. Integrating left to right,
//
//	coverage[i] = Σ_{k<i} cover[k] + area[i],
//
// gives the signed area of the shape inside each pixel. For the nonzero
// rule the absolute value is clamped to 1.

// sweep rasterises the current edge list scanline by scanline, keeping a
// list of the edges which intersect the current scanline.
func (r *Rasteriser) sweep(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.pixelBounds()
	if !ok {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})
	r.activeIdx = r.activeIdx[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < bot {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= top {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			if accumulate(e, y, r.cover, r.area, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// accumulate adds the contribution of e within scanline y to the buffers,
// which cover the pixel columns [xMin, xMax). Pieces left of xMin are
// folded into the first column. It reports whether e intersects the
// scanline.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) bool {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	if bot <= top {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}
	xAt := func(y float64) float64 { return e.x0 + e.dxdy*(y-e.y0) }

	add := func(y0, y1 float64) {
		dy := y1 - y0
		if dy <= 0 {
			return
		}
		c := sign * float32(dy)
		x := xAt((y0 + y1) / 2)
		pix := int(math.Floor(x))
		switch {
		case pix < xMin:
			cover[0] += c
			area[0] += c
		case pix < xMax:
			i := pix - xMin
			cover[i] += c
			area[i] += c * float32(1-(x-float64(pix)))
		}
	}

	xTop, xBot := xAt(top), xAt(bot)
	pixTop := int(math.Floor(xTop))
	pixBot := int(math.Floor(xBot))
	if pixTop == pixBot {
		add(top, bot)
		return true
	}

	// Split the piece where it crosses vertical pixel boundaries. Walking
	// the boundaries in the direction of travel keeps y increasing.
	dydx := 1 / e.dxdy
	yPrev := top
	if pixBot > pixTop {
		for x := pixTop + 1; x <= pixBot; x++ {
			yx := e.y0 + dydx*(float64(x)-e.x0)
			yx = min(max(yx, yPrev), bot)
			add(yPrev, yx)
			yPrev = yx
		}
	} else {
		for x := pixTop; x > pixBot; x-- {
			yx := e.y0 + dydx*(float64(x)-e.x0)
			yx = min(max(yx, yPrev), bot)
			add(yPrev, yx)
			yPrev = yx
		}
	}
	add(yPrev, bot)
	return true
}

// integrateNonZero turns accumulated cover and area values into coverage
// for the nonzero winding rule. The result is stored in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the curve tolerance in device pixels. 0.25 is
	// below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF/PostScript: miters are replaced by
	// bevels for corners sharper than about 11.5 degrees.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the minimal vertical extent of an edge
	// in device pixels.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimal length of a stroked segment in
	// user space.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the sine of the angle below which two
	// segments are treated as collinear.
	collinearityThreshold = 1e-6
)
