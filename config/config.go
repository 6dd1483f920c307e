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

// Package config reads interpolation tasks and plot settings from
// gcfg (INI-style) files.
//
// A file has an optional [Plot] section and one [Task "name"] section per
// task:
//
//	[Plot]
//	Width = 800
//	Height = 500
//
//	[Task "Task 1"]
//	Order = 1
//	Point = 6,-12
//	Point = 14,6
//	Point = 16,8
//	X = 12
package config

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"seehuhn.de/go/lagrange"
	"seehuhn.de/go/lagrange/plot"
)

// DefaultPresets holds the five built-in tasks.
const DefaultPresets = `
[Plot]
Width = 800
Height = 500
SeriesWidth = 1200
SeriesHeight = 700
SeriesTitle = All found points

[Task "Task 1"]
Order = 1
Point = 6,-12
Point = 14,6
Point = 16,8
X = 12

[Task "Task 2"]
Order = 2
Point = 2,-5
Point = 14,-0.5
X = 10

[Task "Task 3"]
Order = 3
Point = 12,-4
Point = 18,6
X = 15

[Task "Task 4"]
Order = 4
Point = 6,2
Point = 14,6
Point = 15,8
X = 9

[Task "Task 5"]
Order = 5
Point = -10,-7.2
Point = -4,-5
Point = 16,-2
X = 14
`

var (
	// ErrMalformedPoint is returned for point text which is not of the
	// form "x,y" with two numbers.
	ErrMalformedPoint = errors.New("malformed point")

	// ErrTooFewPoints is returned for tasks with less than two points.
	ErrTooFewPoints = errors.New("at least 2 points are needed")

	// ErrMissingX is returned for tasks without an X value.
	ErrMissingX = errors.New("missing X value")

	// ErrNoTasks is returned for files which define no tasks.
	ErrNoTasks = errors.New("no tasks defined")

	// ErrPlotSize is returned for negative image dimensions.
	ErrPlotSize = errors.New("invalid plot size")
)

// InputError reports invalid user input. Task is empty if the problem is
// not specific to one task.
type InputError struct {
	Task string
	Err  error
}

func (e *InputError) Error() string {
	if e.Task == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config: task %q: %s", e.Task, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Config is the content of a configuration file.
type Config struct {
	Plot  Plot
	Tasks []lagrange.Task // in order
}

// Plot holds image settings. Zero values select the defaults of the plot
// package.
type Plot struct {
	Width, Height             int
	SeriesWidth, SeriesHeight int
	SeriesTitle               string
}

// Options returns the plot options for the images of individual tasks.
func (p *Plot) Options() []plot.Option {
	if p.Width == 0 && p.Height == 0 {
		return nil
	}
	return []plot.Option{plot.WithSize(orDefault(p.Width, 800), orDefault(p.Height, 500))}
}

// SeriesOptions returns the plot options for the combined image.
func (p *Plot) SeriesOptions() []plot.Option {
	if p.SeriesWidth == 0 && p.SeriesHeight == 0 {
		return nil
	}
	return []plot.Option{plot.WithSize(orDefault(p.SeriesWidth, 1200), orDefault(p.SeriesHeight, 700))}
}

// Title returns the title of the combined image.
func (p *Plot) Title() string {
	if p.SeriesTitle == "" {
		return "All found points"
	}
	return p.SeriesTitle
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// file mirrors the gcfg layout.
type file struct {
	Plot Plot
	Task map[string]*taskSection
}

type taskSection struct {
	Order int
	Point []string
	X     string
}

// Default returns the built-in presets.
func Default() (*Config, error) {
	return Parse(DefaultPresets)
}

// Parse reads a configuration from its text.
func Parse(text string) (*Config, error) {
	var f file
	if err := gcfg.ReadStringInto(&f, text); err != nil {
		return nil, &InputError{Err: err}
	}
	return f.convert()
}

// Load reads a configuration file.
func Load(filename string) (*Config, error) {
	var f file
	if err := gcfg.ReadFileInto(&f, filename); err != nil {
		return nil, &InputError{Err: err}
	}
	return f.convert()
}

func (f *file) convert() (*Config, error) {
	p := f.Plot
	if p.Width < 0 || p.Height < 0 || p.SeriesWidth < 0 || p.SeriesHeight < 0 {
		return nil, &InputError{Err: ErrPlotSize}
	}
	if len(f.Task) == 0 {
		return nil, &InputError{Err: ErrNoTasks}
	}

	type ordered struct {
		order int
		task  lagrange.Task
	}
	tasks := make([]ordered, 0, len(f.Task))
	for _, name := range slices.Sorted(maps.Keys(f.Task)) {
		sec := f.Task[name]
		if sec == nil {
			sec = &taskSection{}
		}
		t, err := sec.task(name)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, ordered{order: sec.Order, task: t})
	}
	slices.SortFunc(tasks, func(a, b ordered) int {
		if c := cmp.Compare(a.order, b.order); c != 0 {
			return c
		}
		return strings.Compare(a.task.Name, b.task.Name)
	})

	cfg := &Config{Plot: p, Tasks: make([]lagrange.Task, len(tasks))}
	for i, o := range tasks {
		cfg.Tasks[i] = o.task
	}
	return cfg, nil
}

func (s *taskSection) task(name string) (lagrange.Task, error) {
	points := make([]lagrange.Point, 0, len(s.Point))
	for _, text := range s.Point {
		p, err := parsePoint(text)
		if err != nil {
			return lagrange.Task{}, &InputError{Task: name, Err: err}
		}
		points = append(points, p)
	}
	if len(points) < 2 {
		return lagrange.Task{}, &InputError{Task: name, Err: ErrTooFewPoints}
	}

	xText := strings.TrimSpace(s.X)
	if xText == "" {
		return lagrange.Task{}, &InputError{Task: name, Err: ErrMissingX}
	}
	x, err := strconv.ParseFloat(xText, 64)
	if err == nil && !isFinite(x) {
		err = fmt.Errorf("%q is not finite", xText)
	}
	if err != nil {
		return lagrange.Task{}, &InputError{Task: name, Err: fmt.Errorf("X: %w", err)}
	}

	return lagrange.Task{Name: name, Points: points, X: x}, nil
}

// ParsePoints reads points given one per line, or separated by
// semicolons, in the form "x,y". Blank entries are skipped. At least two
// points are required.
func ParsePoints(text string) ([]lagrange.Point, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ';'
	})
	var points []lagrange.Point
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		p, err := parsePoint(field)
		if err != nil {
			return nil, &InputError{Err: err}
		}
		points = append(points, p)
	}
	if len(points) < 2 {
		return nil, &InputError{Err: ErrTooFewPoints}
	}
	return points, nil
}

func parsePoint(text string) (lagrange.Point, error) {
	xs, ys, ok := strings.Cut(text, ",")
	if !ok || strings.Contains(ys, ",") {
		return lagrange.Point{}, fmt.Errorf("%w: %q", ErrMalformedPoint, text)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil || !isFinite(x) || !isFinite(y) {
		return lagrange.Point{}, fmt.Errorf("%w: %q", ErrMalformedPoint, text)
	}
	return lagrange.Point{X: x, Y: y}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
