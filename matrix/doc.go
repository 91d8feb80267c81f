// Package matrix provides the dual-location Matrix container: a rectangular
// float64 buffer owned in up to two places (host memory, row-major; device
// memory via a device.Runtime), with a transfer protocol that can convert
// between row-major and column-major layout in flight.
//
// The container provides:
//
//   - Lifecycle: AllocHost/AllocDevice (free-then-allocate, never leaking on
//     repeat calls), FreeHost/FreeDevice (idempotent), Close for deferred
//     cleanup on every exit path.
//   - Ownership: exclusive and move-only. TakeFrom moves both buffers between
//     containers; Clone is the only duplication path. Value-copying a Matrix
//     is flagged by `go vet` (copylocks).
//   - Transfers: Upload/Download preserve layout; UploadColMajor and
//     DownloadColMajor transpose in flight for kernels that want column-major
//     data. Destinations are allocated on demand; sources are never touched.
//   - Validation: EqualWithin compares every element under a tolerance.
//
// Layout tagging: the device buffer's ordering is a property of how it was
// last written, so the container records a Layout tag on every upload and
// DownloadColMajor refuses (ErrDeviceLayout) when the tag says the device
// data is row-major. Kernels write device memory outside the container's
// view — after one runs, declare what it produced with SetDeviceLayout.
//
// Bounds are the caller's contract: At and Set perform no index validation.
// This is a narrow transport utility, not a general linear-algebra API.
package matrix
