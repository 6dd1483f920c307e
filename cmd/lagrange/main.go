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

// Command lagrange evaluates interpolating polynomials and plots the
// results.
//
// With -points, a single task is solved: the value of the polynomial at
// -x is printed and a plot is written to the output directory. Otherwise
// all tasks of the configuration file (or the built-in presets) are
// solved, and one plot per task plus a combined plot "series.png" are
// written.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/lagrange"
	"seehuhn.de/go/lagrange/config"
	"seehuhn.de/go/lagrange/plot"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lagrange:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lagrange", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgFile := fs.String("config", "", "read tasks from `file` instead of the built-in presets")
	outDir := fs.String("out", ".", "output `directory` for the PNG files")
	logLevel := fs.String("log-level", "info", "log `level` (debug, info, warn, error)")
	jsonLog := fs.Bool("json", false, "write log messages as JSON")
	points := fs.String("points", "", "sample `points` of a single task, as \"x,y;x,y;...\"")
	x := fs.Float64("x", 0, "abscissa at which the polynomial is evaluated")
	title := fs.String("title", "Task", "plot title for a single task")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", *logLevel)
	}
	log := NewLogger(stderr, *jsonLog, level)

	single := *points != ""
	if !single {
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "x" || f.Name == "title" {
				log.Warn("flag has no effect without -points", "flag", f.Name)
			}
		})
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	if single {
		pts, err := config.ParsePoints(*points)
		if err != nil {
			return err
		}
		task := lagrange.Task{Name: *title, Points: pts, X: *x}
		return solveOne(ctx, log, stdout, task, *outDir)
	}

	var cfg *config.Config
	var err error
	if *cfgFile != "" {
		cfg, err = config.Load(*cfgFile)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return err
	}
	return solveAll(ctx, log, stdout, cfg, *outDir)
}

// solveOne solves a single task, writes the plot and then prints the
// result. Nothing is printed if the plot cannot be written.
func solveOne(ctx context.Context, log *Logger, stdout io.Writer, task lagrange.Task, outDir string) error {
	tlog := log.WithTask(task.Name)
	sol, err := lagrange.Solve(task)
	tlog.LogSolve(ctx, len(task.Points), task.X, sol.Result.Y, err)
	if err != nil {
		return err
	}

	name := filepath.Join(outDir, slug(task.Name)+".png")
	err = writePlot(ctx, tlog, name, func() ([]byte, error) {
		return plot.Render(task.Points, sol.Result, task.Name)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%.4f\n", sol.Result.Y)
	return nil
}

// solveAll solves all tasks of cfg, prints a table of the results and
// writes one plot per task together with the combined plot.
func solveAll(ctx context.Context, log *Logger, stdout io.Writer, cfg *config.Config, outDir string) error {
	sols, err := lagrange.SolveAll(cfg.Tasks)
	if err != nil {
		log.ErrorContext(ctx, "solving tasks failed", "error", err)
		return err
	}
	for _, sol := range sols {
		t := sol.Task
		log.WithTask(t.Name).LogSolve(ctx, len(t.Points), t.X, sol.Result.Y, nil)
		fmt.Fprintf(stdout, "%s\tx = %g\ty = %.4f\n", t.Name, t.X, sol.Result.Y)
	}

	names := fileNames(sols)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sol := range sols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tlog := log.WithTask(sol.Task.Name)
			return writePlot(ctx, tlog, filepath.Join(outDir, names[i]), func() ([]byte, error) {
				return plot.Render(sol.Task.Points, sol.Result, sol.Task.Name, cfg.Plot.Options()...)
			})
		})
	}
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return writePlot(ctx, log, filepath.Join(outDir, "series.png"), func() ([]byte, error) {
			return plot.RenderSeries(lagrange.Results(sols), cfg.Plot.Title(), cfg.Plot.SeriesOptions()...)
		})
	})
	return g.Wait()
}

func writePlot(ctx context.Context, log *Logger, filename string, render func() ([]byte, error)) error {
	data, err := render()
	if err == nil {
		err = os.WriteFile(filename, data, 0o644)
	}
	log.LogRender(ctx, filename, len(data), err)
	return err
}

// fileNames returns distinct PNG file names for the task plots.
func fileNames(sols []lagrange.Solution) []string {
	seen := map[string]bool{"series.png": true}
	names := make([]string, len(sols))
	for i, sol := range sols {
		base := slug(sol.Task.Name)
		name := base + ".png"
		for k := 2; seen[name]; k++ {
			name = fmt.Sprintf("%s-%d.png", base, k)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

// slug turns a title into a file name: letters and digits are kept in
// lower case, and every other run of characters becomes a single dash.
func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			dash = false
		} else {
			dash = true
		}
	}
	if b.Len() == 0 {
		return "plot"
	}
	return b.String()
}
