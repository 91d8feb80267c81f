// SPDX-License-Identifier: MIT

// Package matrix: inspection and validation utilities. Unchecked element
// access, the fixed-width diagnostic grid, and the tolerance comparison used
// to validate kernel output against host references.
package matrix

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// DefaultTolerance is the absolute per-element tolerance EqualWithin is
// normally called with. Accelerator results differ from host references in
// the last few bits; 1e-3 is far above rounding noise for the magnitudes
// this container carries and far below any real mismatch.
const DefaultTolerance = 1e-3

// At returns the host-resident value at (i, j) using row-major addressing.
// The host buffer must be populated. Bounds are the caller's contract: no
// index validation is performed.
// Complexity: O(1).
func (m *Matrix) At(i, j int) float64 {
	return m.host[i*m.cols+j]
}

// Set assigns v at (i, j) in the host buffer. Same contract as At: the host
// buffer must be populated and bounds are the caller's responsibility.
// Complexity: O(1).
func (m *Matrix) Set(i, j int, v float64) {
	m.host[i*m.cols+j] = v
}

// Host returns the row-major backing slice of the host buffer, or nil when
// absent. The slice aliases the container's storage — writing through it is
// the population surface.
func (m *Matrix) Host() []float64 {
	return m.host
}

// Fprint renders the host buffer as a diagnostic grid: each value in a fixed
// 7-character field, one matrix row per line. A container with no host data
// renders nothing. Diagnostic only, not part of the data contract.
// Complexity: O(Size()).
func (m *Matrix) Fprint(w io.Writer) error {
	if m.host == nil {
		return nil
	}

	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if _, err := fmt.Fprintf(w, "%7.0f", m.host[i*m.cols+j]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// String implements fmt.Stringer with the same grid Fprint writes.
func (m *Matrix) String() string {
	var b strings.Builder
	_ = m.Fprint(&b) // strings.Builder never errors

	return b.String()
}

// EqualWithin reports whether every element of m and other matches within
// the absolute tolerance tol, comparing host data. Shape mismatch is false
// immediately — even when the element counts agree (2×3 vs 3×2 differ).
// Both host buffers must be populated when the shape is non-empty.
//
// The scan may stop at the first mismatch; that affects cost only, never
// the result.
// Complexity: O(Size()) when shapes match.
func (m *Matrix) EqualWithin(other *Matrix, tol float64) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}

	for k := 0; k < m.Size(); k++ {
		if math.Abs(m.host[k]-other.host[k]) > tol {
			return false
		}
	}

	return true
}
