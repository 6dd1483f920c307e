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
	"image/color"

	"golang.org/x/image/font"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/lagrange"
)

const (
	tickLen  = 5  // px
	gap      = 4  // px, between ticks and labels
	edge     = 10 // px, outer margin
	minInner = 16 // px, smallest usable plot area
)

var (
	black      = color.NRGBA{A: 255}
	gridGray   = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0}
	legendEdge = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 255}
	legendBg   = color.NRGBA{R: 255, G: 255, B: 255, A: 204}
)

// faces used for the decorations of one plot
type faces struct {
	tick, label, title font.Face
}

func (c *canvas) plotFaces(st *style) (*faces, error) {
	tick, err := c.face(false, st.tickSize)
	if err != nil {
		return nil, err
	}
	label, err := c.face(false, st.labelSize)
	if err != nil {
		return nil, err
	}
	title, err := c.face(false, st.titleSize)
	if err != nil {
		return nil, err
	}
	return &faces{tick: tick, label: label, title: title}, nil
}

// layout places the plotting area inside the image, leaving room for the
// title, the axis labels and the tick labels, and chooses axes which
// contain all of pts.
func layout(st *style, ff *faces, title string, pts []lagrange.Point, withOrigin bool) (*frame, error) {
	xlo, xhi, ylo, yhi := dataRange(pts, withOrigin)
	w, h := float64(st.width), float64(st.height)

	_, tickH := textSize(ff.tick, "0")
	_, labelH := textSize(ff.label, "X")
	_, titleH := textSize(ff.title, title)

	top := float64(2 * edge)
	if title != "" {
		top = float64(edge + titleH + edge)
	}
	bottom := h - float64(tickLen+gap+tickH+gap+labelH+edge)

	ya, err := niceAxis(ylo, yhi, max(3, int((bottom-top)/60)))
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}
	tickW := 0
	for _, v := range ya.ticks {
		tw, _ := textSize(ff.tick, formatTick(v, ya.step))
		tickW = max(tickW, tw)
	}
	left := float64(edge + labelH + gap + tickW + gap + tickLen)
	right := w - 2*edge

	if right-left < minInner || bottom-top < minInner {
		return nil, fmt.Errorf("%w: %dx%d leaves no room for the plot", ErrSize, st.width, st.height)
	}

	xa, err := niceAxis(xlo, xhi, max(3, int((right-left)/100)))
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	return &frame{
		left:   left,
		top:    top,
		right:  right,
		bottom: bottom,
		x:      xa,
		y:      ya,
	}, nil
}

// grid draws the grid lines at the tick positions.
func (c *canvas) grid(f *frame, alpha uint8) {
	col := gridGray
	col.A = alpha
	for _, v := range f.x.ticks {
		x := crisp(f.toDevice(lagrange.Point{X: v, Y: f.y.min}).X)
		c.stroke(linePath(vec.Vec2{X: x, Y: f.top}, vec.Vec2{X: x, Y: f.bottom}),
			col, 1, graphics.LineCapButt, graphics.LineJoinMiter)
	}
	for _, v := range f.y.ticks {
		y := crisp(f.toDevice(lagrange.Point{X: f.x.min, Y: v}).Y)
		c.stroke(linePath(vec.Vec2{X: f.left, Y: y}, vec.Vec2{X: f.right, Y: y}),
			col, 1, graphics.LineCapButt, graphics.LineJoinMiter)
	}
}

// originAxes draws black lines through x=0 and y=0, where these are
// visible.
func (c *canvas) originAxes(f *frame) {
	o := f.toDevice(lagrange.Point{})
	if f.y.min <= 0 && 0 <= f.y.max {
		y := crisp(o.Y)
		c.stroke(linePath(vec.Vec2{X: f.left, Y: y}, vec.Vec2{X: f.right, Y: y}),
			black, 1, graphics.LineCapButt, graphics.LineJoinMiter)
	}
	if f.x.min <= 0 && 0 <= f.x.max {
		x := crisp(o.X)
		c.stroke(linePath(vec.Vec2{X: x, Y: f.top}, vec.Vec2{X: x, Y: f.bottom}),
			black, 1, graphics.LineCapButt, graphics.LineJoinMiter)
	}
}

// decorate draws the frame, tick marks, tick labels, axis labels and the
// title.
func (c *canvas) decorate(st *style, ff *faces, f *frame, title string) {
	l, t, r, b := crisp(f.left), crisp(f.top), crisp(f.right), crisp(f.bottom)
	c.stroke(rectPath(l, t, r, b), black, 1, graphics.LineCapButt, graphics.LineJoinMiter)

	ascent := ff.tick.Metrics().Ascent.Ceil()
	capHeight := ff.tick.Metrics().CapHeight.Ceil()

	for _, v := range f.x.ticks {
		x := crisp(f.toDevice(lagrange.Point{X: v, Y: f.y.min}).X)
		c.stroke(linePath(vec.Vec2{X: x, Y: b}, vec.Vec2{X: x, Y: b + tickLen}),
			black, 1, graphics.LineCapButt, graphics.LineJoinMiter)
		c.text(ff.tick, formatTick(v, f.x.step),
			int(x), int(b)+tickLen+gap+ascent, alignCenter, black)
	}
	for _, v := range f.y.ticks {
		y := crisp(f.toDevice(lagrange.Point{X: f.x.min, Y: v}).Y)
		c.stroke(linePath(vec.Vec2{X: l - tickLen, Y: y}, vec.Vec2{X: l, Y: y}),
			black, 1, graphics.LineCapButt, graphics.LineJoinMiter)
		c.text(ff.tick, formatTick(v, f.y.step),
			int(l)-tickLen-gap, int(y)+capHeight/2, alignRight, black)
	}

	if title != "" {
		c.text(ff.title, title, int((f.left+f.right)/2), int(f.top)-edge, alignCenter, black)
	}
	if st.xLabel != "" {
		descent := ff.label.Metrics().Descent.Ceil()
		c.text(ff.label, st.xLabel, int((f.left+f.right)/2), st.height-edge-descent, alignCenter, black)
	}
	if st.yLabel != "" {
		_, labelH := textSize(ff.label, st.yLabel)
		c.textUp(ff.label, st.yLabel, edge+labelH/2, int((f.top+f.bottom)/2), black)
	}
}

// legendEntry is one row of a legend. The key function draws the
// symbol centred at the given point.
type legendEntry struct {
	label string
	key   func(c *canvas, at vec.Vec2)
}

const (
	legendPad   = 8  // px
	legendKey   = 30 // px, width of the symbol column
	legendInset = 8  // px, distance from the frame
)

// legend draws a box with the given entries into the corner of the frame
// which covers the fewest data points, preferring the upper right.
func (c *canvas) legend(ff *faces, f *frame, pts []lagrange.Point, entries []legendEntry) {
	var rows []legendEntry
	for _, e := range entries {
		if e.label != "" {
			rows = append(rows, e)
		}
	}
	if len(rows) == 0 {
		return
	}

	textW := 0
	_, rowH := textSize(ff.tick, "X")
	rowH += gap
	for _, e := range rows {
		w, _ := textSize(ff.tick, e.label)
		textW = max(textW, w)
	}
	boxW := float64(legendPad + legendKey + gap + textW + legendPad)
	boxH := float64(legendPad + len(rows)*rowH + legendPad)

	type corner struct{ x, y float64 }
	candidates := []corner{
		{f.right - legendInset - boxW, f.top + legendInset},
		{f.left + legendInset, f.top + legendInset},
		{f.left + legendInset, f.bottom - legendInset - boxH},
		{f.right - legendInset - boxW, f.bottom - legendInset - boxH},
	}
	best := candidates[0]
	bestCount := len(pts) + 1
	for _, cand := range candidates {
		count := 0
		for _, p := range pts {
			d := f.toDevice(p)
			if d.X >= cand.x && d.X <= cand.x+boxW && d.Y >= cand.y && d.Y <= cand.y+boxH {
				count++
			}
		}
		if count < bestCount {
			best, bestCount = cand, count
		}
	}

	x0, y0 := crisp(best.x), crisp(best.y)
	box := rectPath(x0, y0, x0+boxW, y0+boxH)
	c.fill(box, legendBg)
	c.stroke(box, legendEdge, 1, graphics.LineCapButt, graphics.LineJoinMiter)

	ascent := ff.tick.Metrics().Ascent.Ceil()
	for i, e := range rows {
		top := y0 + float64(legendPad+i*rowH)
		mid := top + float64(rowH)/2
		e.key(c, vec.Vec2{X: x0 + legendPad + legendKey/2, Y: mid})
		c.text(ff.tick, e.label, int(x0)+legendPad+legendKey+gap, int(top)+ascent, alignLeft, black)
	}
}
