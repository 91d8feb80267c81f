// Package kernel implements the numeric kernel surface the matrix container
// exists to feed: a matrix-multiply routine operating on column-major device
// buffers addressed by device.Ptr and leading dimensions.
//
// The kernel runs in-process against any Memory implementation (device.Sim
// provides one), which stands in for the accelerator execution unit. Its
// call shape — pointers plus m, n, k and lda/ldb/ldc — is the conventional
// BLAS one, and column-major input is exactly why the container's
// UploadColMajor / DownloadColMajor transfer variants exist.
//
// The kernel writes device memory behind the container's back: after a call,
// declare the output buffer's ordering with Matrix.SetDeviceLayout before
// pulling it.
package kernel
