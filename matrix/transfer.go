// SPDX-License-Identifier: MIT

// Package matrix: host↔device transfer protocol. Four operations: a
// layout-preserving and a transposing variant per direction. Every transfer
// is synchronous, auto-allocates an absent destination buffer, and leaves
// the source untouched. Transpose scratch buffers are owned and dropped by
// the operation that created them.
package matrix

import (
	"fmt"
	"unsafe"
)

// asBytes views a float64 slice as the raw bytes the runtime copies.
// The view aliases buf; it allocates nothing.
func asBytes(buf []float64) []byte {
	if len(buf) == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), len(buf)*elemBytes)
}

// toColMajor returns a scratch buffer holding the host data converted to
// column-major: element (i,j) moves from offset i*cols+j to j*rows+i.
// Complexity: O(Size()).
func (m *Matrix) toColMajor() []float64 {
	t := make([]float64, m.Size())
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t[j*m.rows+i] = m.host[i*m.cols+j]
		}
	}

	return t
}

// Upload copies the host buffer to the device, row-major preserved.
// The device buffer is allocated if absent; the host buffer is unchanged.
// Returns ErrNoHostBuffer when there is nothing to push.
func (m *Matrix) Upload() error {
	if m.host == nil {
		return fmt.Errorf("matrix: upload: %w", ErrNoHostBuffer)
	}
	if m.dev.IsNull() {
		if err := m.AllocDevice(); err != nil {
			return err
		}
	}

	if err := m.rt.CopyToDevice(m.dev, asBytes(m.host)); err != nil {
		return fmt.Errorf("matrix: upload: %w", err)
	}
	m.devLayout = LayoutRowMajor

	return nil
}

// UploadColMajor copies a column-major conversion of the host buffer to the
// device, for kernels that consume column-major data with leading dimension
// Rows(). The scratch conversion buffer lives only for the duration of the
// call. The device buffer is allocated if absent; the host buffer is
// unchanged. Returns ErrNoHostBuffer when there is nothing to push.
// Complexity: O(Size()).
func (m *Matrix) UploadColMajor() error {
	if m.host == nil {
		return fmt.Errorf("matrix: upload col-major: %w", ErrNoHostBuffer)
	}
	if m.dev.IsNull() {
		if err := m.AllocDevice(); err != nil {
			return err
		}
	}

	t := m.toColMajor()
	if err := m.rt.CopyToDevice(m.dev, asBytes(t)); err != nil {
		return fmt.Errorf("matrix: upload col-major: %w", err)
	}
	m.devLayout = LayoutColMajor

	return nil
}

// Download copies the device buffer back to the host, bytes preserved — the
// host buffer ends up in whatever ordering the device held. The host buffer
// is allocated if absent; the device buffer is unchanged.
// Returns ErrNoDeviceBuffer when there is nothing to pull.
func (m *Matrix) Download() error {
	if m.dev.IsNull() {
		return fmt.Errorf("matrix: download: %w", ErrNoDeviceBuffer)
	}
	if m.host == nil {
		m.AllocHost()
	}

	if err := m.rt.CopyFromDevice(asBytes(m.host), m.dev); err != nil {
		return fmt.Errorf("matrix: download: %w", err)
	}

	return nil
}

// DownloadColMajor copies the device buffer back to the host, converting
// column-major to row-major in flight: element (i,j) moves from device
// offset j*rows+i to host offset i*cols+j. The converted buffer replaces
// the host buffer; the previous host contents are discarded. The device
// buffer is unchanged.
//
// Refuses with ErrDeviceLayout when the layout tag says the device data is
// row-major. A LayoutUnknown tag is allowed — it means an external kernel
// wrote the buffer and the caller is vouching for its ordering (better:
// declare it with SetDeviceLayout first).
// Complexity: O(Size()).
func (m *Matrix) DownloadColMajor() error {
	if m.dev.IsNull() {
		return fmt.Errorf("matrix: download col-major: %w", ErrNoDeviceBuffer)
	}
	if m.devLayout == LayoutRowMajor {
		return fmt.Errorf("matrix: download col-major: %w", ErrDeviceLayout)
	}

	// Pull into a scratch buffer, convert into a fresh row-major buffer,
	// and swap it in. The scratch is dropped by this call.
	scratch := make([]float64, m.Size())
	if err := m.rt.CopyFromDevice(asBytes(scratch), m.dev); err != nil {
		return fmt.Errorf("matrix: download col-major: %w", err)
	}

	fixed := make([]float64, m.Size())
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			fixed[i*m.cols+j] = scratch[j*m.rows+i]
		}
	}
	m.host = fixed

	return nil
}
