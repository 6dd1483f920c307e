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
	"math"
)

// Image dimensions accepted by WithSize.
const (
	MinSize = 160
	MaxSize = 8192
)

// style collects the settings for one plot.
type style struct {
	width, height int

	xLabel, yLabel string

	// legend entries
	sampleLabel string
	resultLabel string
	seriesLabel string

	sampleColor color.NRGBA
	resultColor color.NRGBA
	seriesColor color.NRGBA

	// marker diameters and line width, in pixels
	sampleSize float64
	resultSize float64
	seriesSize float64
	lineWidth  float64

	gridAlpha uint8

	// font sizes in points, at 100 dpi
	titleSize float64
	labelSize float64
	tickSize  float64
}

// pt converts a size in points to pixels at 100 dpi.
func pt(size float64) float64 {
	return size * 100 / 72
}

func scatterStyle() *style {
	return &style{
		width:       800,
		height:      500,
		xLabel:      "X",
		yLabel:      "Y",
		sampleLabel: "Samples",
		resultLabel: "Result",
		seriesLabel: "Found points",
		sampleColor: color.NRGBA{R: 255, A: 255},
		resultColor: color.NRGBA{B: 255, A: 255},
		seriesColor: color.NRGBA{B: 255, A: 255},
		sampleSize:  pt(8),
		resultSize:  pt(15),
		seriesSize:  pt(12),
		lineWidth:   pt(2),
		gridAlpha:   77,
		titleSize:   12,
		labelSize:   10,
		tickSize:    10,
	}
}

func seriesStyle() *style {
	s := scatterStyle()
	s.width = 1200
	s.height = 700
	s.gridAlpha = 102
	s.titleSize = 14
	s.labelSize = 12
	return s
}

// An Option changes the appearance of a plot. Options are checked when
// they are applied, and invalid settings make the render call fail.
type Option func(*style) error

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(s *style) error {
		if width < MinSize || width > MaxSize || height < MinSize || height > MaxSize {
			return fmt.Errorf("%w: %dx%d", ErrSize, width, height)
		}
		s.width, s.height = width, height
		return nil
	}
}

// WithAxisLabels sets the labels of the x and y axes.
func WithAxisLabels(x, y string) Option {
	return func(s *style) error {
		s.xLabel, s.yLabel = x, y
		return nil
	}
}

// WithLegend sets the legend entries for the sample points and the
// result point of Render.
func WithLegend(samples, result string) Option {
	return func(s *style) error {
		s.sampleLabel, s.resultLabel = samples, result
		return nil
	}
}

// WithSeriesLabel sets the legend entry used by RenderSeries.
func WithSeriesLabel(label string) Option {
	return func(s *style) error {
		s.seriesLabel = label
		return nil
	}
}

// WithSampleMarker sets colour and diameter (in pixels) of the sample
// point markers.
func WithSampleMarker(c color.Color, size float64) Option {
	return func(s *style) error {
		col, err := markerStyle("sample", c, size)
		if err != nil {
			return err
		}
		s.sampleColor, s.sampleSize = col, size
		return nil
	}
}

// WithResultMarker sets colour and diameter (in pixels) of the result
// point marker.
func WithResultMarker(c color.Color, size float64) Option {
	return func(s *style) error {
		col, err := markerStyle("result", c, size)
		if err != nil {
			return err
		}
		s.resultColor, s.resultSize = col, size
		return nil
	}
}

// WithSeriesStyle sets colour, marker diameter and line width of the
// series drawn by RenderSeries.
func WithSeriesStyle(c color.Color, markerSize, lineWidth float64) Option {
	return func(s *style) error {
		col, err := markerStyle("series", c, markerSize)
		if err != nil {
			return err
		}
		if !validSize(lineWidth) {
			return fmt.Errorf("%w: series line width %g", ErrInvisible, lineWidth)
		}
		s.seriesColor, s.seriesSize, s.lineWidth = col, markerSize, lineWidth
		return nil
	}
}

func markerStyle(series string, c color.Color, size float64) (color.NRGBA, error) {
	if c == nil {
		return color.NRGBA{}, fmt.Errorf("%w: %s colour not set", ErrInvisible, series)
	}
	col := color.NRGBAModel.Convert(c).(color.NRGBA)
	if col.A == 0 {
		return color.NRGBA{}, fmt.Errorf("%w: %s colour is transparent", ErrInvisible, series)
	}
	if !validSize(size) {
		return color.NRGBA{}, fmt.Errorf("%w: %s marker size %g", ErrInvisible, series, size)
	}
	return col, nil
}

// validSize reports whether v is a usable marker size or line width.
func validSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func (s *style) apply(opts []Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	return nil
}
