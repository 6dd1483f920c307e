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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke paints the outline of p, using Width, Cap, Join and MiterLimit.
//
// The stroke is assembled from simple pieces: one rectangle per segment,
// plus join and cap shapes. All pieces are given the same orientation and
// are filled together with the nonzero winding rule, so that overlapping
// pieces are painted only once.
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	r.flattenSubpaths(p)

	r.poly = r.poly[:0]
	r.polyOffsets = r.polyOffsets[:0]
	d := r.Width / 2
	for i := range r.subOffsets {
		r.strokeSubpath(r.subpath(i), r.subClosed[i], d)
	}

	r.startEdges()
	for i, start := range r.polyOffsets {
		end := len(r.poly)
		if i+1 < len(r.polyOffsets) {
			end = r.polyOffsets[i+1]
		}
		pp := r.poly[start:end]
		for j := range pp {
			r.addEdge(pp[j], pp[(j+1)%len(pp)])
		}
	}
	r.sweep(emit)
}

// flattenSubpaths stores the vertices of all subpaths of p in r.pts, with
// curves replaced by line segments. Zero-length segments are dropped.
func (r *Rasteriser) flattenSubpaths(p *path.Data) {
	r.pts = r.pts[:0]
	r.subOffsets = r.subOffsets[:0]
	r.subClosed = r.subClosed[:0]

	open := false
	begin := func(start vec.Vec2) {
		r.subOffsets = append(r.subOffsets, len(r.pts))
		r.subClosed = append(r.subClosed, false)
		r.pts = append(r.pts, start)
		open = true
	}
	lineTo := func(a, b vec.Vec2) {
		if !open {
			// drawing after ClosePath continues from the subpath start
			begin(a)
		}
		if b.Sub(r.pts[len(r.pts)-1]).Length() >= zeroLengthThreshold {
			r.pts = append(r.pts, b)
		}
	}
	closePath := func() {
		if !open {
			return
		}
		k := len(r.subClosed) - 1
		r.subClosed[k] = true
		// the closing segment is implicit
		first := r.pts[r.subOffsets[k]]
		if n := len(r.pts); n-r.subOffsets[k] > 1 && r.pts[n-1] == first {
			r.pts = r.pts[:n-1]
		}
		open = false
	}
	r.walk(p, false, begin, lineTo, closePath)
}

// subpath returns the vertices of flattened subpath i.
func (r *Rasteriser) subpath(i int) []vec.Vec2 {
	end := len(r.pts)
	if i+1 < len(r.subOffsets) {
		end = r.subOffsets[i+1]
	}
	return r.pts[r.subOffsets[i]:end]
}

// strokeSubpath adds the stroke pieces for one subpath. d is half the
// stroke width.
func (r *Rasteriser) strokeSubpath(pts []vec.Vec2, closed bool, d float64) {
	if len(pts) == 1 || (closed && len(pts) == 2 && pts[0] == pts[1]) {
		// A subpath without length has no direction. Like PDF, only
		// round and square caps produce output.
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(pts[0], d)
		case graphics.LineCapSquare:
			r.addSquare(pts[0], vec.Vec2{X: 1, Y: 0}, d)
		}
		return
	}

	n := len(pts) - 1 // number of segments
	if closed {
		n++
	}
	seg := func(k int) (a, b vec.Vec2) {
		return pts[k%len(pts)], pts[(k+1)%len(pts)]
	}
	tangent := func(k int) vec.Vec2 {
		a, b := seg(k)
		v := b.Sub(a)
		return v.Mul(1 / v.Length())
	}

	for k := range n {
		a, b := seg(k)
		t := tangent(k)
		nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)

		if !closed && r.Cap == graphics.LineCapSquare {
			if k == 0 {
				a = a.Sub(t.Mul(d))
			}
			if k == n-1 {
				b = b.Add(t.Mul(d))
			}
		}
		r.addPolygon(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}

	for k := range n {
		if !closed && k == n-1 {
			break
		}
		_, b := seg(k)
		r.addJoin(b, tangent(k), tangent(k+1), d)
	}

	if !closed && r.Cap == graphics.LineCapRound {
		r.addDisc(pts[0], d)
		r.addDisc(pts[len(pts)-1], d)
	}
}

// addJoin adds the join piece at vertex p, where the direction changes
// from t1 to t2.
func (r *Rasteriser) addJoin(p, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	cos := t1.Dot(t2)
	if math.Abs(cross) < collinearityThreshold && cos > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addDisc(p, d)
		return
	}

	// The join fills the wedge on the outer side of the corner.
	side := 1.0
	if cross > 0 {
		side = -1
	}
	o1 := vec.Vec2{X: -t1.Y, Y: t1.X}.Mul(side * d)
	o2 := vec.Vec2{X: -t2.Y, Y: t2.X}.Mul(side * d)

	if r.Join == graphics.LineJoinMiter {
		// the miter length, relative to the width, is 1/cos(θ/2)
		cosHalf := math.Sqrt((1 + cos) / 2)
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit+1e-10 {
			bis := o1.Add(o2)
			if l := bis.Length(); l > zeroLengthThreshold {
				tip := p.Add(bis.Mul(d / (cosHalf * l)))
				r.addPolygon(p, p.Add(o1), tip, p.Add(o2))
				return
			}
		}
	}
	r.addPolygon(p, p.Add(o1), p.Add(o2))
}

// addDisc adds a circle of radius d around c, approximated by a polygon
// whose deviation from the circle is below the flatness tolerance.
func (r *Rasteriser) addDisc(c vec.Vec2, d float64) {
	devRadius := max(
		r.deviceLength(vec.Vec2{X: d, Y: 0}),
		r.deviceLength(vec.Vec2{X: 0, Y: d}),
	)
	n := 8
	if devRadius > r.Flatness {
		// a chord spanning angle θ deviates by radius·(1 - cos(θ/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step > 0 {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	start := len(r.poly)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, vec.Vec2{
			X: c.X + d*math.Cos(phi),
			Y: c.Y + d*math.Sin(phi),
		})
	}
	r.finishPolygon(start)
}

// addSquare adds a square with half side d, centred at c and aligned with
// the unit vector t.
func (r *Rasteriser) addSquare(c, t vec.Vec2, d float64) {
	t = t.Mul(d)
	n := vec.Vec2{X: -t.Y, Y: t.X}
	r.addPolygon(
		c.Add(t).Add(n),
		c.Add(t).Sub(n),
		c.Sub(t).Sub(n),
		c.Sub(t).Add(n),
	)
}

// addPolygon appends a closed polygon to the stroke outline.
func (r *Rasteriser) addPolygon(vertices ...vec.Vec2) {
	start := len(r.poly)
	r.poly = append(r.poly, vertices...)
	r.finishPolygon(start)
}

// finishPolygon normalises the orientation of the polygon starting at
// r.poly[start], so that all stroke pieces have the same winding
// direction. Polygons without area are discarded.
func (r *Rasteriser) finishPolygon(start int) {
	pp := r.poly[start:]
	var a float64
	for i := range pp {
		p, q := pp[i], pp[(i+1)%len(pp)]
		a += p.X*q.Y - q.X*p.Y
	}
	if math.Abs(a) < zeroLengthThreshold {
		r.poly = r.poly[:start]
		return
	}
	if a < 0 {
		for i, j := 0, len(pp)-1; i < j; i, j = i+1, j-1 {
			pp[i], pp[j] = pp[j], pp[i]
		}
	}
	r.polyOffsets = append(r.polyOffsets, start)
}
