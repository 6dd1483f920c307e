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

// Package lagrange evaluates the interpolating polynomial of a set of
// sample points using the Lagrange basis form.
//
// The polynomial is never constructed explicitly. For samples (x_i, y_i)
// the value at x is
//
//	p(x) = Σ_i y_i · L_i(x),   L_i(x) = Π_{j≠i} (x - x_j) / (x_i - x_j).
//
// All arithmetic is IEEE double precision. Sample x values must be
// pairwise distinct; callers are expected to supply at least two samples.
package lagrange

import (
	"errors"
	"fmt"
)

// Point is a point in the plane. It is used both for sample points and for
// the computed result point.
type Point struct {
	X, Y float64
}

var (
	// ErrNoPoints is returned when interpolation is attempted without samples.
	ErrNoPoints = errors.New("no sample points")

	// ErrDuplicateX is wrapped by DomainError.
	ErrDuplicateX = errors.New("duplicate x value")
)

// DomainError reports two samples with the same x value. For such a sample
// set the basis polynomials are undefined, since the denominator
// x_i - x_j vanishes.
type DomainError struct {
	I, J int     // indices of the offending samples, I < J
	X    float64 // the shared x value
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("samples %d and %d: %v %g", e.I, e.J, ErrDuplicateX, e.X)
}

// Unwrap returns ErrDuplicateX.
func (e *DomainError) Unwrap() error {
	return ErrDuplicateX
}

// checkDistinct returns a DomainError for the first pair of samples which
// share an x value.
func checkDistinct(points []Point) error {
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].X == points[j].X {
				return &DomainError{I: i, J: j, X: points[i].X}
			}
		}
	}
	return nil
}

// Basis returns the values L_0(x), ..., L_{n-1}(x) of the Lagrange basis
// polynomials for the given samples. The values sum to one, up to rounding.
//
// Near-coincident x values are not treated specially: very small
// denominators can produce infinite or NaN values, which are returned
// unchanged.
func Basis(points []Point, x float64) ([]float64, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if err := checkDistinct(points); err != nil {
		return nil, err
	}

	basis := make([]float64, len(points))
	for i, pi := range points {
		l := 1.0
		for j, pj := range points {
			if j == i {
				continue
			}
			l *= (x - pj.X) / (pi.X - pj.X)
		}
		basis[i] = l
	}
	return basis, nil
}

// Interpolate evaluates the interpolating polynomial of the samples at x.
//
// If two samples share an x value, a *DomainError is returned. A single
// sample yields its own y value (the constant polynomial).
func Interpolate(points []Point, x float64) (float64, error) {
	basis, err := Basis(points, x)
	if err != nil {
		return 0, err
	}

	var y float64
	for i, l := range basis {
		y += l * points[i].Y
	}
	return y, nil
}
