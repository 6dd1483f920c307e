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

package lagrange

import "fmt"

// Task is one interpolation problem: a set of samples and the abscissa at
// which the interpolating polynomial is evaluated.
type Task struct {
	Name   string
	Points []Point
	X      float64
}

// Solution is the result of solving a Task.
type Solution struct {
	Task   Task
	Result Point // (Task.X, p(Task.X))
}

// Solve evaluates the interpolating polynomial of t.Points at t.X.
func Solve(t Task) (Solution, error) {
	y, err := Interpolate(t.Points, t.X)
	if err != nil {
		return Solution{}, fmt.Errorf("task %q: %w", t.Name, err)
	}
	return Solution{Task: t, Result: Point{X: t.X, Y: y}}, nil
}

// SolveAll solves the tasks in order. The first failure aborts the run,
// and no partial results are returned.
func SolveAll(tasks []Task) ([]Solution, error) {
	res := make([]Solution, 0, len(tasks))
	for _, t := range tasks {
		s, err := Solve(t)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

// Results returns the result points of the solutions, in order.
func Results(solutions []Solution) []Point {
	pts := make([]Point, len(solutions))
	for i, s := range solutions {
		pts[i] = s.Result
	}
	return pts
}
