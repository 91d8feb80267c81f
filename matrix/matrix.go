// SPDX-License-Identifier: MIT

// Package matrix: container type and lifecycle. This file declares Matrix,
// the Layout tag, construction, buffer allocation/release, deferred cleanup,
// move-transfer of ownership, and the explicit deep duplicate.
package matrix

import (
	"fmt"

	"github.com/katalvlaran/devmat/device"
)

// elemBytes is the on-device size of one element (float64).
const elemBytes = 8

// Layout names the element ordering of the device buffer.
type Layout uint8

const (
	// LayoutUnknown means the container has not written the device buffer
	// since it was (re)allocated, or a move cleared the knowledge.
	LayoutUnknown Layout = iota

	// LayoutRowMajor: element (i,j) at offset i*cols+j.
	LayoutRowMajor

	// LayoutColMajor: element (i,j) at offset j*rows+i.
	LayoutColMajor
)

// String returns the layout name for diagnostics.
func (l Layout) String() string {
	switch l {
	case LayoutRowMajor:
		return "row-major"
	case LayoutColMajor:
		return "column-major"
	}

	return "unknown"
}

// noCopy makes `go vet -copylocks` flag any value copy of Matrix.
// It has no runtime effect.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Matrix is a dual-location rectangular float64 buffer.
//
// The host buffer is row-major. The device buffer's ordering depends on
// which transfer variant last wrote it and is tracked in devLayout.
// Ownership of both buffers is exclusive: containers are move-only
// (TakeFrom) and duplication must be requested explicitly (Clone).
// Shape never changes after construction.
//
// Matrix is not safe for concurrent use; the intended model is a single
// caller driving populate → upload → kernel → download sequentially.
type Matrix struct {
	noCopy noCopy // vet(copylocks) guard against value copies

	rows, cols int            // fixed logical shape
	host       []float64      // row-major host buffer; nil until populated
	dev        device.Ptr     // device buffer address; null until populated
	devLayout  Layout         // ordering of the device buffer's last write
	rt         device.Runtime // accelerator runtime, bound for life
}

// New creates a rows×cols container bound to rt. No buffer is allocated.
// Zero dimensions are legal (empty results); negative ones are ErrBadShape.
// Complexity: O(1).
func New(rt device.Runtime, rows, cols int) (*Matrix, error) {
	if rt == nil {
		return nil, ErrNilRuntime
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Matrix{rows: rows, cols: cols, rt: rt}, nil
}

// Rows returns the fixed row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the fixed column count.
func (m *Matrix) Cols() int { return m.cols }

// Size returns the element count rows*cols.
func (m *Matrix) Size() int { return m.rows * m.cols }

// HasHost reports whether the host buffer is populated.
func (m *Matrix) HasHost() bool { return m.host != nil }

// HasDevice reports whether the device buffer is populated.
func (m *Matrix) HasDevice() bool { return !m.dev.IsNull() }

// DevicePtr returns the device buffer address, or the null address when
// absent. This is the handle external kernels consume; the container still
// owns the allocation.
func (m *Matrix) DevicePtr() device.Ptr { return m.dev }

// DeviceLayout returns the recorded ordering of the device buffer.
func (m *Matrix) DeviceLayout() Layout { return m.devLayout }

// SetDeviceLayout declares the ordering of the device buffer. Call it after
// an external kernel rewrites device memory behind the container's back, so
// the transposing download keeps working.
func (m *Matrix) SetDeviceLayout(l Layout) { m.devLayout = l }

// AllocHost releases any existing host buffer and allocates a fresh one of
// Size() elements. Contents are unspecified — callers must not rely on
// zeroing. Safe to call repeatedly; the old buffer is simply dropped.
// Complexity: O(Size()).
func (m *Matrix) AllocHost() {
	m.host = make([]float64, m.Size())
}

// AllocDevice releases any existing device buffer, then requests
// Size()*8 bytes from the runtime. The new buffer's layout is unknown
// until a transfer writes it. Allocation failure comes back as *device.Error.
func (m *Matrix) AllocDevice() error {
	if err := m.FreeDevice(); err != nil {
		return err
	}

	p, err := m.rt.Alloc(m.Size() * elemBytes)
	if err != nil {
		return fmt.Errorf("matrix: alloc device: %w", err)
	}
	m.dev = p
	m.devLayout = LayoutUnknown

	return nil
}

// FreeHost drops the host buffer if present. Always safe to call again.
func (m *Matrix) FreeHost() {
	m.host = nil
}

// FreeDevice releases the device buffer if present and clears the address.
// The address is cleared even when the runtime reports a failure, so a
// second call can never double-free. Always safe to call again.
func (m *Matrix) FreeDevice() error {
	if m.dev.IsNull() {
		return nil
	}

	p := m.dev
	m.dev = 0
	m.devLayout = LayoutUnknown
	if err := m.rt.Free(p); err != nil {
		return fmt.Errorf("matrix: free device: %w", err)
	}

	return nil
}

// Close releases both buffers. It is idempotent and intended for defer, so
// both allocations are released exactly once on every exit path:
//
//	m, err := matrix.New(rt, r, c)
//	if err != nil { ... }
//	defer m.Close()
func (m *Matrix) Close() error {
	m.FreeHost()

	return m.FreeDevice()
}

// TakeFrom moves ownership of src's buffers into m. m first releases
// whatever it owns, then takes src's shape, buffers, layout tag and runtime;
// src is left empty and remains safe to Close — it no longer references
// anything m now owns. TakeFrom(m) on itself is a no-op.
// Complexity: O(1) plus the runtime free of m's previous device buffer.
func (m *Matrix) TakeFrom(src *Matrix) error {
	if m == nil || src == nil {
		return ErrNilMatrix
	}
	if m == src {
		return nil
	}

	// Release current holdings before taking over.
	m.FreeHost()
	if err := m.FreeDevice(); err != nil {
		return err
	}

	m.rows, m.cols = src.rows, src.cols
	m.host, m.dev, m.devLayout = src.host, src.dev, src.devLayout
	m.rt = src.rt

	// Clear the source so its Close cannot release what m now owns.
	src.host = nil
	src.dev = 0
	src.devLayout = LayoutUnknown

	return nil
}

// Clone is the explicit deep duplicate: a new container with the same shape
// and runtime, and a copy of the host buffer when one is present. The device
// buffer is NOT duplicated — re-upload on the clone if needed. There is no
// implicit copy path anywhere in the package.
// Complexity: O(Size()).
func (m *Matrix) Clone() (*Matrix, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}

	out := &Matrix{rows: m.rows, cols: m.cols, rt: m.rt}
	if m.host != nil {
		out.host = make([]float64, len(m.host))
		copy(out.host, m.host)
	}

	return out, nil
}
