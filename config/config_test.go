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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/lagrange"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	require.Len(t, cfg.Tasks, 5)
	for i, task := range cfg.Tasks {
		assert.Equal(t, "Task "+string(rune('1'+i)), task.Name)
	}
	assert.Equal(t, lagrange.Task{
		Name:   "Task 5",
		Points: []lagrange.Point{{X: -10, Y: -7.2}, {X: -4, Y: -5}, {X: 16, Y: -2}},
		X:      14,
	}, cfg.Tasks[4])

	assert.Equal(t, Plot{
		Width:        800,
		Height:       500,
		SeriesWidth:  1200,
		SeriesHeight: 700,
		SeriesTitle:  "All found points",
	}, cfg.Plot)
}

func TestDefaultSolutions(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	sols, err := lagrange.SolveAll(cfg.Tasks)
	require.NoError(t, err)

	want := []lagrange.Point{{X: 12, Y: 3}, {X: 10, Y: -2}, {X: 15, Y: 1}, {X: 9, Y: 1}, {X: 14, Y: -2}}
	got := lagrange.Results(sols)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].X, got[i].X)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-9, "task %d", i+1)
	}
}

func TestTaskOrder(t *testing.T) {
	cfg, err := Parse(`
[Task "b"]
Point = 0,0
Point = 1,1
X = 0.5

[Task "a"]
Point = 0,0
Point = 1,1
X = 0.5

[Task "first"]
Order = -1
Point = 0,0
Point = 1,1
X = 0.5
`)
	require.NoError(t, err)
	var names []string
	for _, task := range cfg.Tasks {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"first", "a", "b"}, names)
	assert.Equal(t, Plot{}, cfg.Plot)
	assert.Nil(t, cfg.Plot.Options())
	assert.Nil(t, cfg.Plot.SeriesOptions())
	assert.Equal(t, "All found points", cfg.Plot.Title())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		task string
		want error
	}{
		{"one point", "[Task \"t\"]\nPoint = 1,2\nX = 1\n", "t", ErrTooFewPoints},
		{"no comma", "[Task \"t\"]\nPoint = 1 2\nPoint = 3,4\nX = 1\n", "t", ErrMalformedPoint},
		{"three values", "[Task \"t\"]\nPoint = 1,2,3\nPoint = 3,4\nX = 1\n", "t", ErrMalformedPoint},
		{"not a number", "[Task \"t\"]\nPoint = a,2\nPoint = 3,4\nX = 1\n", "t", ErrMalformedPoint},
		{"NaN", "[Task \"t\"]\nPoint = NaN,2\nPoint = 3,4\nX = 1\n", "t", ErrMalformedPoint},
		{"missing x", "[Task \"t\"]\nPoint = 1,2\nPoint = 3,4\n", "t", ErrMissingX},
		{"no tasks", "[Plot]\nWidth = 640\n", "", ErrNoTasks},
		{"negative size", "[Plot]\nWidth = -1\n[Task \"t\"]\nPoint = 1,2\nPoint = 3,4\nX = 1\n", "", ErrPlotSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse(tc.text)
			assert.Nil(t, cfg)
			require.ErrorIs(t, err, tc.want)

			var inErr *InputError
			require.ErrorAs(t, err, &inErr)
			assert.Equal(t, tc.task, inErr.Task)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("[Task \"t\"\nPoint = 1,2\n")
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Empty(t, inErr.Task)

	_, err = Parse("[Task \"t\"]\nColour = red\n")
	assert.Error(t, err)
}

func TestParseBadX(t *testing.T) {
	_, err := Parse("[Task \"t\"]\nPoint = 1,2\nPoint = 3,4\nX = twelve\n")
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "t", inErr.Task)
	assert.Contains(t, err.Error(), `config: task "t": X:`)
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tasks.gcfg")
	require.NoError(t, os.WriteFile(name, []byte(DefaultPresets), 0o644))

	cfg, err := Load(name)
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def, cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.gcfg"))
	assert.Error(t, err)
}

func TestPlotOptions(t *testing.T) {
	p := Plot{Width: 640}
	assert.Len(t, p.Options(), 1)
	assert.Nil(t, p.SeriesOptions())

	p = Plot{SeriesHeight: 480, SeriesTitle: "Results"}
	assert.Len(t, p.SeriesOptions(), 1)
	assert.Equal(t, "Results", p.Title())
}

func TestParsePoints(t *testing.T) {
	got, err := ParsePoints("6,-12\n\n  14, 6 \n16,8\n")
	require.NoError(t, err)
	assert.Equal(t, []lagrange.Point{{X: 6, Y: -12}, {X: 14, Y: 6}, {X: 16, Y: 8}}, got)

	got, err = ParsePoints("2,-5; 14,-0.5")
	require.NoError(t, err)
	assert.Equal(t, []lagrange.Point{{X: 2, Y: -5}, {X: 14, Y: -0.5}}, got)
}

func TestParsePointsErrors(t *testing.T) {
	for _, text := range []string{"", "\n\n", "1,2", "1,2\n3"} {
		_, err := ParsePoints(text)
		require.Error(t, err, "%q", text)
		assert.True(t,
			errors.Is(err, ErrTooFewPoints) || errors.Is(err, ErrMalformedPoint),
			"%q: %v", text, err)

		var inErr *InputError
		assert.ErrorAs(t, err, &inErr)
	}
}
