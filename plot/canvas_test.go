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
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func newTestCanvas(t *testing.T) *canvas {
	t.Helper()
	c, err := newCanvas(200, 160)
	require.NoError(t, err)
	t.Cleanup(func() {
		if c.img != nil {
			c.Close()
		}
	})
	return c
}

func TestCanvasBlank(t *testing.T) {
	c := newTestCanvas(t)
	assert.Equal(t, image.Rect(0, 0, 200, 160), c.img.Bounds())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.img.RGBAAt(17, 93))
}

func TestCanvasFill(t *testing.T) {
	c := newTestCanvas(t)

	c.fill(rectPath(10, 10, 20, 20), color.NRGBA{R: 255, A: 255})
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c.img.RGBAAt(15, 15))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.img.RGBAAt(25, 15))

	// half transparent black over white gives mid grey
	c.fill(rectPath(30, 10, 40, 20), color.NRGBA{A: 128})
	px := c.img.RGBAAt(35, 15)
	assert.InDelta(t, 127, int(px.R), 1)
	assert.Equal(t, px.R, px.G)
	assert.Equal(t, px.R, px.B)
	assert.Equal(t, uint8(255), px.A)

	// half-covered pixels along a vertical edge at x = 50.5
	c.fill(rectPath(50.5, 10, 60, 20), color.NRGBA{A: 255})
	assert.InDelta(t, 128, int(c.img.RGBAAt(50, 15).R), 1)
}

func TestCanvasFillOutside(t *testing.T) {
	c := newTestCanvas(t)
	// shapes partly outside the image are clipped
	c.fill(circlePath(vec.Vec2{X: -5, Y: -5}, 20), color.NRGBA{B: 255, A: 255})
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, c.img.RGBAAt(2, 2))
}

func TestCanvasStroke(t *testing.T) {
	c := newTestCanvas(t)
	c.stroke(linePath(vec.Vec2{X: 10, Y: 50.5}, vec.Vec2{X: 100, Y: 50.5}),
		color.NRGBA{A: 255}, 1, graphics.LineCapButt, graphics.LineJoinMiter)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, c.img.RGBAAt(50, 50))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.img.RGBAAt(50, 52))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.img.RGBAAt(5, 50))
}

func TestCanvasText(t *testing.T) {
	c := newTestCanvas(t)
	f, err := c.face(false, 10)
	require.NoError(t, err)

	f2, err := c.face(false, 10)
	require.NoError(t, err)
	assert.Same(t, f, f2)

	c.text(f, "Hello", 20, 40, alignLeft, black)
	assert.Greater(t, darkPixels(c.img, image.Rect(20, 20, 80, 45)), 10)
	assert.Zero(t, darkPixels(c.img, image.Rect(100, 0, 200, 160)))
}

func TestCanvasTextUp(t *testing.T) {
	c := newTestCanvas(t)
	f, err := c.face(false, 12)
	require.NoError(t, err)

	c.textUp(f, "Vertical", 30, 80, black)
	// the rotated text is taller than wide
	box := inkBounds(c.img)
	require.False(t, box.Empty())
	assert.Greater(t, box.Dy(), box.Dx())
	assert.True(t, box.Min.X < 30 && box.Max.X > 30)
	assert.True(t, box.Min.Y < 80 && box.Max.Y > 80)
}

func TestCanvasClose(t *testing.T) {
	c, err := newCanvas(200, 160)
	require.NoError(t, err)
	_, err = c.face(true, 10)
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	assert.Nil(t, c.img)
	assert.Nil(t, c.faces)
}

func darkPixels(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				n++
			}
		}
	}
	return n
}

func inkBounds(img *image.RGBA) image.Rectangle {
	var box image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).R < 255 {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box
}
