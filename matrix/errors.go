// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set. This file defines ONLY package-level
// sentinel errors. All operations return these sentinels and tests check them
// via errors.Is; device-runtime failures pass through as *device.Error and
// are matched with errors.As. Panics are reserved for violations of the
// unchecked-access contract (plain slice indexing, caller's responsibility).

package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested dimension is negative.
	// Zero dimensions are legal and represent empty matrices.
	ErrBadShape = errors.New("matrix: negative dimension")

	// ErrNilRuntime indicates that construction was attempted without a
	// device runtime. Every container is bound to one for its lifetime.
	ErrNilRuntime = errors.New("matrix: nil device runtime")

	// ErrNilMatrix indicates that a nil *Matrix was passed where a live
	// container is required (move target/source, clone receiver).
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNoHostBuffer indicates an upload was requested before the host
	// buffer was populated. Allocate or pull from the device first.
	ErrNoHostBuffer = errors.New("matrix: host buffer not allocated")

	// ErrNoDeviceBuffer indicates a download was requested with no device
	// buffer present. Allocate or push from the host first.
	ErrNoDeviceBuffer = errors.New("matrix: device buffer not allocated")

	// ErrDeviceLayout indicates a transposing download was requested while
	// the device buffer is tagged row-major: the conversion would scramble
	// the data. Use Download, or fix the tag with SetDeviceLayout if a
	// kernel rewrote the buffer.
	ErrDeviceLayout = errors.New("matrix: device buffer is not column-major")
)
