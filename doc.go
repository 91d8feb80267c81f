// Package devmat is a dual-location matrix container for accelerator offload —
// one rectangular float64 buffer, owned in up to two places at once (host
// memory and device memory), with a transfer protocol that keeps row-major
// and column-major layouts straight in flight.
//
// 🚀 What is devmat?
//
//	A small, move-only container library that brings together:
//		• Matrix container: exclusive ownership of host & device buffers,
//		  release-exactly-once on every exit path
//		• Transfer protocol: layout-preserving and transposing host↔device
//		  copies, destination auto-allocated on demand
//		• Validation: tolerance-based whole-matrix comparison for checking
//		  kernel output against host references
//		• Simulated runtime: an in-process device with allocation tracking
//		  and fault injection, so everything is testable without hardware
//
// ✨ Why devmat?
//
//   - Ownership you can trust – no implicit copies; moves leave the source empty
//   - Layout you can see – the device buffer carries a row/column-major tag,
//     so a mismatched transposing download is an error, not silent garbage
//   - Pure Go – the runtime is an interface; the bundled Sim needs no cgo
//
// Everything is organized under three subpackages plus a driver:
//
//	device/     — accelerator runtime surface (Runtime, Status, Sim)
//	matrix/     — the Matrix container: lifecycle, transfers, inspection
//	kernel/     — column-major Dgemm over device buffers
//	cmd/devmat/ — demo driver: multiply two matrices through the device
//
// Quick sketch of the intended call sequence:
//
//	populate host → UploadColMajor → kernel → DownloadColMajor → EqualWithin
//
// Dive into each package's doc.go for the full contracts.
//
//	go get github.com/katalvlaran/devmat
package devmat
