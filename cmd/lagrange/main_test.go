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

package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/lagrange"
	"seehuhn.de/go/lagrange/config"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, log bytes.Buffer
	err = run(context.Background(), args, &out, &log)
	return out.String(), log.String(), err
}

func TestRunPresets(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, err := runCmd(t, "-out", dir, "-json")
	require.NoError(t, err, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{
		"Task 1\tx = 12\ty = 3.0000",
		"Task 2\tx = 10\ty = -2.0000",
		"Task 3\tx = 15\ty = 1.0000",
		"Task 4\tx = 9\ty = 1.0000",
		"Task 5\tx = 14\ty = -2.0000",
	}, lines)

	for _, name := range []string{"task-1", "task-2", "task-3", "task-4", "task-5", "series"} {
		f, err := os.Open(filepath.Join(dir, name+".png"))
		require.NoError(t, err)
		_, err = png.DecodeConfig(f)
		f.Close()
		assert.NoError(t, err, name)
	}

	assert.Contains(t, stderr, `"msg":"task solved"`)
	assert.Contains(t, stderr, `"task":"Task 3"`)
}

func TestRunSingle(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, err := runCmd(t, "-out", dir,
		"-points", "6,-12; 14,6; 16,8", "-x", "12", "-title", "Задача 1")
	require.NoError(t, err, stderr)
	assert.Equal(t, "3.0000\n", stdout)

	f, err := os.Open(filepath.Join(dir, "задача-1.png"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
}

func TestRunSinglePlotFails(t *testing.T) {
	dir := t.TempDir()
	// a directory in place of the image file makes writing the plot fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "blocked.png"), 0o755))

	stdout, stderr, err := runCmd(t, "-out", dir,
		"-points", "6,-12; 14,6; 16,8", "-x", "12", "-title", "blocked")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "render failed")
}

func TestRunSingleRenderFails(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := runCmd(t, "-out", dir,
		"-points", "0,-1e308; 1,1e308", "-x", "0.5", "-title", "huge")
	require.Error(t, err)
	assert.Empty(t, stdout)

	_, statErr := os.Stat(filepath.Join(dir, "huge.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "tasks.gcfg")
	text := `
[Plot]
Width = 320
Height = 240
SeriesTitle = Sums

[Task "line"]
Point = 0,1
Point = 2,5
X = 1
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(text), 0o644))

	stdout, stderr, err := runCmd(t, "-config", cfgFile, "-out", dir, "-log-level", "debug")
	require.NoError(t, err, stderr)
	assert.Equal(t, "line\tx = 1\ty = 3.0000\n", stdout)
	assert.Contains(t, stderr, "image written")

	f, err := os.Open(filepath.Join(dir, "line.png"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCmd(t, "-out", dir, "-points", "1,2")
	assert.ErrorIs(t, err, config.ErrTooFewPoints)

	_, _, err = runCmd(t, "-out", dir, "-points", "1,2;1,3", "-x", "0")
	assert.ErrorIs(t, err, lagrange.ErrDuplicateX)

	_, _, err = runCmd(t, "-out", dir, "-log-level", "loud")
	assert.Error(t, err)

	_, _, err = runCmd(t, "-out", dir, "extra")
	assert.Error(t, err)

	_, _, err = runCmd(t, "-out", dir, "-config", filepath.Join(dir, "missing.gcfg"))
	assert.Error(t, err)

	// nothing is written for failed tasks
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunIgnoredFlags(t *testing.T) {
	_, stderr, err := runCmd(t, "-out", t.TempDir(), "-x", "3")
	require.NoError(t, err)
	assert.Contains(t, stderr, "flag has no effect without -points")
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Task 1":            "task-1",
		"  Hello,  World! ": "hello-world",
		"Задача 6: все":     "задача-6-все",
		"a/b\\c":            "a-b-c",
		"***":               "plot",
		"":                  "plot",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug(in), "%q", in)
	}
}

func TestFileNames(t *testing.T) {
	sols := []lagrange.Solution{
		{Task: lagrange.Task{Name: "A"}},
		{Task: lagrange.Task{Name: "a"}},
		{Task: lagrange.Task{Name: "Series"}},
	}
	assert.Equal(t, []string{"a.png", "a-2.png", "series-2.png"}, fileNames(sols))
}
