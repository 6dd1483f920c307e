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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// circlePath returns a circle of radius r around c, made of four cubic
// Bézier arcs.
func circlePath(c vec.Vec2, r float64) *path.Data {
	const k = 0.5522847498 // 4/3 (√2 - 1)
	kr := k * r
	p := (&path.Data{}).MoveTo(vec.Vec2{X: c.X + r, Y: c.Y})
	arcs := [4][3]vec.Vec2{
		{{X: c.X + r, Y: c.Y + kr}, {X: c.X + kr, Y: c.Y + r}, {X: c.X, Y: c.Y + r}},
		{{X: c.X - kr, Y: c.Y + r}, {X: c.X - r, Y: c.Y + kr}, {X: c.X - r, Y: c.Y}},
		{{X: c.X - r, Y: c.Y - kr}, {X: c.X - kr, Y: c.Y - r}, {X: c.X, Y: c.Y - r}},
		{{X: c.X + kr, Y: c.Y - r}, {X: c.X + r, Y: c.Y - kr}, {X: c.X + r, Y: c.Y}},
	}
	for _, a := range arcs {
		p.Cmds = append(p.Cmds, path.CmdCubeTo)
		p.Coords = append(p.Coords, a[:]...)
	}
	return p.Close()
}

// starPath returns a five-pointed star with outer radius r, centred at c
// and pointing up.
func starPath(c vec.Vec2, r float64) *path.Data {
	inner := r * 0.381966 // (3 - √5) / 2, the regular pentagram
	p := &path.Data{}
	for i := range 10 {
		rad := r
		if i%2 == 1 {
			rad = inner
		}
		phi := -math.Pi/2 + float64(i)*math.Pi/5
		v := vec.Vec2{X: c.X + rad*math.Cos(phi), Y: c.Y + rad*math.Sin(phi)}
		if i == 0 {
			p = p.MoveTo(v)
		} else {
			p = p.LineTo(v)
		}
	}
	return p.Close()
}

func rectPath(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

func linePath(a, b vec.Vec2) *path.Data {
	return (&path.Data{}).MoveTo(a).LineTo(b)
}

func polylinePath(pts []vec.Vec2) *path.Data {
	p := &path.Data{}
	for i, v := range pts {
		if i == 0 {
			p = p.MoveTo(v)
		} else {
			p = p.LineTo(v)
		}
	}
	return p
}

// crisp moves a coordinate to the centre of its pixel, so that one pixel
// wide lines are not smeared over two pixels.
func crisp(v float64) float64 {
	return math.Floor(v) + 0.5
}
