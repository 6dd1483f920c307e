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

// Package plot renders interpolation results as PNG images.
//
// Render draws the sample points of one interpolation problem together
// with the interpolated point. RenderSeries draws the results of several
// problems as one connected series.
//
// Each call draws onto its own image, so that plots can be rendered
// concurrently from several goroutines.
package plot

import (
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/lagrange"
)

// Render draws the sample points as circles and the result as a star,
// and returns the plot as PNG data.
func Render(samples []lagrange.Point, result lagrange.Point, title string, opts ...Option) (img []byte, err error) {
	const op = "render"
	if len(samples) == 0 {
		return nil, &RenderError{Op: op, Err: ErrNoSamples}
	}
	st := scatterStyle()
	if err := st.apply(opts); err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}

	pts := make([]lagrange.Point, 0, len(samples)+1)
	pts = append(pts, samples...)
	pts = append(pts, result)
	if err := checkFinite(pts); err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}

	c, err := newCanvas(st.width, st.height)
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			img, err = nil, &RenderError{Op: op, Err: cerr}
		}
	}()

	ff, err := c.plotFaces(st)
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	f, err := layout(st, ff, title, pts, false)
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}

	c.grid(f, st.gridAlpha)
	for _, p := range samples {
		c.fill(circlePath(f.toDevice(p), st.sampleSize/2), st.sampleColor)
	}
	c.fill(starPath(f.toDevice(result), st.resultSize/2), st.resultColor)
	c.decorate(st, ff, f, title)
	c.legend(ff, f, pts, []legendEntry{
		{
			label: st.sampleLabel,
			key: func(c *canvas, at vec.Vec2) {
				c.fill(circlePath(at, st.sampleSize/2), st.sampleColor)
			},
		},
		{
			label: st.resultLabel,
			key: func(c *canvas, at vec.Vec2) {
				c.fill(starPath(at, st.resultSize/2), st.resultColor)
			},
		},
	})

	img, err = c.encode()
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	return img, nil
}

// RenderSeries draws points in order, joined by straight lines. Each
// point is labelled with its 1-based position and its coordinates. The
// axes through the origin are drawn in black.
func RenderSeries(points []lagrange.Point, title string, opts ...Option) (img []byte, err error) {
	const op = "render series"
	if len(points) == 0 {
		return nil, &RenderError{Op: op, Err: ErrNoSamples}
	}
	st := seriesStyle()
	if err := st.apply(opts); err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	if err := checkFinite(points); err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}

	c, err := newCanvas(st.width, st.height)
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			img, err = nil, &RenderError{Op: op, Err: cerr}
		}
	}()

	ff, err := c.plotFaces(st)
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	annot, err := c.face(true, st.tickSize)
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	f, err := layout(st, ff, title, points, true)
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}

	c.grid(f, st.gridAlpha)
	c.originAxes(f)

	dev := make([]vec.Vec2, len(points))
	for i, p := range points {
		dev[i] = f.toDevice(p)
	}
	if len(dev) > 1 {
		c.stroke(polylinePath(dev), st.seriesColor, st.lineWidth,
			graphics.LineCapSquare, graphics.LineJoinRound)
	}
	for _, d := range dev {
		c.fill(circlePath(d, st.seriesSize/2), st.seriesColor)
	}

	// labels are offset by 5pt to the upper right of each point
	off := int(math.Round(pt(5)))
	for i, p := range points {
		c.text(annot, annotation(i+1, p), int(dev[i].X)+off, int(dev[i].Y)-off, alignLeft, black)
	}

	c.decorate(st, ff, f, title)
	c.legend(ff, f, points, []legendEntry{
		{
			label: st.seriesLabel,
			key: func(c *canvas, at vec.Vec2) {
				half := float64(legendKey) / 2
				c.stroke(linePath(at.Sub(vec.Vec2{X: half}), at.Add(vec.Vec2{X: half})),
					st.seriesColor, st.lineWidth, graphics.LineCapButt, graphics.LineJoinRound)
				c.fill(circlePath(at, st.seriesSize/2), st.seriesColor)
			},
		},
	})

	img, err = c.encode()
	if err != nil {
		return nil, &RenderError{Op: op, Err: err}
	}
	return img, nil
}

// annotation returns the label for the i-th point of a series.
func annotation(i int, p lagrange.Point) string {
	return fmt.Sprintf("%d (%s, %.1f)", i, strconv.FormatFloat(p.X, 'g', -1, 64), p.Y)
}

func checkFinite(pts []lagrange.Point) error {
	for i, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("%w: point %d is (%g, %g)", ErrNonFinite, i, p.X, p.Y)
		}
	}
	return nil
}
