// SPDX-License-Identifier: MIT

// Package kernel: Dgemm, double-precision matrix multiply on column-major
// device buffers. Validation first, then buffer resolution, then the triple
// loop; failures never leave a partially valid result unreported.
package kernel

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/katalvlaran/devmat/device"
)

var (
	// ErrBadDimension is returned for negative m/n/k or a leading dimension
	// smaller than its matrix's column height.
	ErrBadDimension = errors.New("kernel: bad dimension")

	// ErrShortBuffer is returned when a device buffer is too small for the
	// shape and leading dimension it was passed with.
	ErrShortBuffer = errors.New("kernel: device buffer too small")
)

// Memory resolves a device address to its live backing bytes. device.Sim
// implements it; a real accelerator would run the kernel on-device instead.
type Memory interface {
	Bytes(p device.Ptr) ([]byte, error)
}

// floats views raw device bytes as float64 elements. The view aliases the
// device storage, so writes through it land on the device.
func floats(raw []byte) []float64 {
	if len(raw) < 8 {
		return nil
	}

	return unsafe.Slice((*float64)(unsafe.Pointer(&raw[0])), len(raw)/8)
}

// colMajorLen is the minimum element count a column-major rows×cols buffer
// with leading dimension ld must hold: ld*(cols-1)+rows.
func colMajorLen(rows, cols, ld int) int {
	if rows == 0 || cols == 0 {
		return 0
	}

	return ld*(cols-1) + rows
}

// resolve maps p and checks it can hold a column-major rows×cols matrix
// under leading dimension ld.
func resolve(mem Memory, p device.Ptr, rows, cols, ld int, name string) ([]float64, error) {
	raw, err := mem.Bytes(p)
	if err != nil {
		return nil, fmt.Errorf("kernel: dgemm: %s: %w", name, err)
	}

	buf := floats(raw)
	if need := colMajorLen(rows, cols, ld); len(buf) < need {
		return nil, fmt.Errorf("kernel: dgemm: %s holds %d elements, needs %d: %w",
			name, len(buf), need, ErrShortBuffer)
	}

	return buf, nil
}

// Dgemm computes C = A·B on column-major device buffers:
//
//	A is m×k with leading dimension lda,
//	B is k×n with leading dimension ldb,
//	C is m×n with leading dimension ldc.
//
// Element (i,j) of a column-major matrix with leading dimension ld lives at
// offset j*ld+i. C is overwritten. Degenerate dimensions (m, n or k of 0)
// are legal; with k == 0 the product is all zeros.
// Complexity: O(m*n*k).
func Dgemm(mem Memory, m, n, k int,
	a device.Ptr, lda int,
	b device.Ptr, ldb int,
	c device.Ptr, ldc int,
) error {
	// Validate shape and strides before touching any buffer.
	if m < 0 || n < 0 || k < 0 {
		return fmt.Errorf("kernel: dgemm: m=%d n=%d k=%d: %w", m, n, k, ErrBadDimension)
	}
	if lda < max(1, m) || ldb < max(1, k) || ldc < max(1, m) {
		return fmt.Errorf("kernel: dgemm: lda=%d ldb=%d ldc=%d for m=%d k=%d: %w",
			lda, ldb, ldc, m, k, ErrBadDimension)
	}
	if m == 0 || n == 0 {
		return nil
	}

	av, err := resolve(mem, a, m, k, lda, "A")
	if err != nil {
		return err
	}
	bv, err := resolve(mem, b, k, n, ldb, "B")
	if err != nil {
		return err
	}
	cv, err := resolve(mem, c, m, n, ldc, "C")
	if err != nil {
		return err
	}

	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			var sum float64
			for l := 0; l < k; l++ {
				sum += av[l*lda+i] * bv[j*ldb+l]
			}
			cv[j*ldc+i] = sum
		}
	}

	return nil
}
