// Package device defines the accelerator runtime surface consumed by the
// matrix container, and ships Sim, an in-process implementation of it.
//
// The surface is deliberately narrow — the four primitives a transport
// container actually needs, plus the error query:
//
//   - Alloc(bytes) → Ptr    device allocation
//   - Free(ptr)             device release (null Ptr is a no-op)
//   - CopyToDevice          synchronous host→device copy
//   - CopyFromDevice        synchronous device→host copy
//   - LastError             latched status of the most recent failure
//
// All copies are blocking; no streams, events, or overlap are modeled.
//
// Failures are unrecoverable by contract: once a runtime call returns a
// *Error, the contents of any device buffer touched by the failing call are
// undefined and the only operations a caller may still rely on are releases.
// There is no retry path. Callers that want the classic abort-on-fault
// behavior terminate at their own boundary (see cmd/devmat).
//
// Sim exists so the whole transfer protocol is testable without hardware:
// it tracks every live allocation (LiveAllocs) for leak assertions and can
// inject a fault into the next matching call (FailNext).
package device
