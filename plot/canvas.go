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
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/lagrange/raster"
)

const dpi = 100

type fontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
}

// loadFonts parses the embedded Go fonts once. The parsed fonts are
// read-only and shared between canvases; each canvas has its own faces.
var loadFonts = sync.OnceValues(func() (*fontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &fontSet{regular: regular, bold: bold}, nil
})

type faceKey struct {
	bold bool
	size float64
}

// canvas is the drawing surface for a single render call. Nothing in a
// canvas is shared with other calls, so that renders can run
// concurrently. Close must be called when the canvas is no longer needed.
type canvas struct {
	img   *image.RGBA
	ras   *raster.Rasteriser
	clip  rect.Rect
	fonts *fontSet
	faces map[faceKey]font.Face
}

func newCanvas(width, height int) (*canvas, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	c := &canvas{
		img:   img,
		ras:   raster.NewRasteriser(clip),
		clip:  clip,
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}
	return c, nil
}

// Close releases the font faces held by the canvas.
func (c *canvas) Close() error {
	var errs []error
	for _, f := range c.faces {
		errs = append(errs, f.Close())
	}
	c.faces = nil
	c.img = nil
	c.ras = nil
	return errors.Join(errs...)
}

// face returns a font face of the given size in points.
func (c *canvas) face(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, size: size}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	fnt := c.fonts.regular
	if bold {
		fnt = c.fonts.bold
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[key] = f
	return f, nil
}

// fill paints the interior of p.
func (c *canvas) fill(p *path.Data, col color.NRGBA) {
	c.ras.Reset(c.clip)
	c.ras.FillNonZero(p, c.painter(col))
}

// stroke paints the outline of p.
func (c *canvas) stroke(p *path.Data, col color.NRGBA, width float64, lineCap graphics.LineCapStyle, join graphics.LineJoinStyle) {
	c.ras.Reset(c.clip)
	c.ras.Width = width
	c.ras.Cap = lineCap
	c.ras.Join = join
	c.ras.Stroke(p, c.painter(col))
}

func (c *canvas) painter(col color.NRGBA) raster.EmitFunc {
	return func(y, xMin int, coverage []float32) {
		for i, cov := range coverage {
			c.blend(xMin+i, y, col, cov)
		}
	}
}

// blend composites col onto the pixel at (x, y) using source-over, with
// the colour's alpha scaled by cov.
func (c *canvas) blend(x, y int, col color.NRGBA, cov float32) {
	if !(image.Point{X: x, Y: y}.In(c.img.Rect)) {
		return
	}
	a := cov * float32(col.A) / 255
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	i := c.img.PixOffset(x, y)
	px := c.img.Pix[i : i+4 : i+4]
	px[0] = mix(px[0], col.R, a)
	px[1] = mix(px[1], col.G, a)
	px[2] = mix(px[2], col.B, a)
	px[3] = mix(px[3], 255, a)
}

func mix(dst, src uint8, a float32) uint8 {
	return uint8(float32(dst)*(1-a) + float32(src)*a + 0.5)
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// text draws s with its baseline at y. The horizontal position x refers
// to the left edge, the centre or the right edge of the text, depending
// on a.
func (c *canvas) text(f font.Face, s string, x, y int, a align, col color.NRGBA) {
	w := font.MeasureString(f, s).Ceil()
	switch a {
	case alignCenter:
		x -= w / 2
	case alignRight:
		x -= w
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: f,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textUp draws s rotated by 90 degrees counter-clockwise, centred at
// (cx, cy).
func (c *canvas) textUp(f font.Face, s string, cx, cy int, col color.NRGBA) {
	w := font.MeasureString(f, s).Ceil()
	m := f.Metrics()
	ascent := m.Ascent.Ceil()
	h := ascent + m.Descent.Ceil()
	if w <= 0 || h <= 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: f,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(s)

	x0 := cx - h/2
	y0 := cy - w/2
	for v := range h {
		for u := range w {
			a := mask.AlphaAt(u, v).A
			if a == 0 {
				continue
			}
			c.blend(x0+v, y0+w-1-u, col, float32(a)/255)
		}
	}
}

// textSize returns the advance width and the line height of s.
func textSize(f font.Face, s string) (w, h int) {
	m := f.Metrics()
	return font.MeasureString(f, s).Ceil(), m.Height.Ceil()
}

// encode returns the canvas as a PNG image.
func (c *canvas) encode() ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(buf, c.img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
