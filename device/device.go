// SPDX-License-Identifier: MIT

// Package device: runtime surface types. This file declares the Ptr handle,
// the Status code set with human-readable names, the Error type every runtime
// failure surfaces as, and the Runtime interface itself. The simulated
// implementation lives in sim.go.
package device

import "fmt"

// Ptr is an opaque device address. The zero value is the null address and
// never refers to a live allocation.
type Ptr uint64

// IsNull reports whether p is the null device address.
// Complexity: O(1).
func (p Ptr) IsNull() bool { return p == 0 }

// Status is a runtime status code, reported both through *Error and through
// Runtime.LastError. StatusSuccess is the zero value.
type Status int

// Runtime status codes. The set mirrors the failure classes a real
// accelerator runtime distinguishes: allocation, argument validation,
// transfer, kernel execution, and internal faults.
const (
	StatusSuccess Status = iota
	StatusAllocFailed
	StatusInvalidValue
	StatusCopyFailed
	StatusExecutionFailed
	StatusInternalError
)

// String returns the human-readable name of the status code.
// Unknown codes render as "unknown error", never panic.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusAllocFailed:
		return "device allocation failed"
	case StatusInvalidValue:
		return "invalid value"
	case StatusCopyFailed:
		return "memory copy failed"
	case StatusExecutionFailed:
		return "kernel execution failed"
	case StatusInternalError:
		return "internal error"
	}

	return "unknown error"
}

// Error is the concrete error type for every runtime failure. Op names the
// failing primitive ("alloc", "free", "copy_to_device", "copy_from_device"),
// Status classifies it, and Msg carries the runtime's human-readable detail.
// Callers match with errors.As(*Error) or inspect Status directly.
type Error struct {
	Op     string // failing runtime primitive
	Status Status // failure class
	Msg    string // human-readable detail
}

// Error implements the error interface: "device: <op>: <status>: <msg>".
func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("device: %s: %s", e.Op, e.Status)
	}

	return fmt.Sprintf("device: %s: %s: %s", e.Op, e.Status, e.Msg)
}

// Runtime is the accelerator surface the matrix container consumes.
//
// Every method is synchronous: it returns only after the device has completed
// the operation. Implementations must make Free(0) a no-op so redundant
// releases stay safe, and must latch the most recent failure for LastError.
type Runtime interface {
	// Alloc reserves bytes of device memory and returns its address.
	// bytes == 0 is legal and returns a non-null address owning no storage.
	Alloc(bytes int) (Ptr, error)

	// Free releases a device allocation. Freeing the null address is a
	// no-op; freeing an unknown address is a StatusInvalidValue error.
	Free(p Ptr) error

	// CopyToDevice copies len(src) bytes from host memory into the
	// allocation at dst. Overrunning the allocation is an error.
	CopyToDevice(dst Ptr, src []byte) error

	// CopyFromDevice copies len(dst) bytes from the allocation at src into
	// host memory. Overrunning the allocation is an error.
	CopyFromDevice(dst []byte, src Ptr) error

	// LastError reports the status and message of the most recent failed
	// call, or (StatusSuccess, "") if no call has failed since the last
	// reset. It does not clear the latch.
	LastError() (Status, string)
}
