package device_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/devmat/device"
)

func TestSim_AllocFreeTracking(t *testing.T) {
	sim := device.NewSim()

	p1, err := sim.Alloc(64)
	require.NoError(t, err)
	require.False(t, p1.IsNull())

	p2, err := sim.Alloc(128)
	require.NoError(t, err)
	require.NotEqual(t, p1, p2)

	require.Len(t, sim.LiveAllocs(), 2)
	require.Equal(t, 192, sim.LiveBytes())

	require.NoError(t, sim.Free(p1))
	require.NoError(t, sim.Free(p2))
	require.Empty(t, sim.LiveAllocs())
	require.Zero(t, sim.LiveBytes())
}

func TestSim_ZeroByteAlloc(t *testing.T) {
	sim := device.NewSim()

	p, err := sim.Alloc(0)
	require.NoError(t, err)
	require.False(t, p.IsNull(), "zero-byte allocation must still be addressable")
	require.NoError(t, sim.Free(p))
}

func TestSim_FreeNullIsNoop(t *testing.T) {
	sim := device.NewSim()
	require.NoError(t, sim.Free(0))

	st, _ := sim.LastError()
	require.Equal(t, device.StatusSuccess, st)
}

func TestSim_FreeUnknownLatchesError(t *testing.T) {
	sim := device.NewSim()

	err := sim.Free(device.Ptr(42))
	require.Error(t, err)

	var derr *device.Error
	require.True(t, errors.As(err, &derr))
	require.Equal(t, device.StatusInvalidValue, derr.Status)
	require.Equal(t, "free", derr.Op)

	// The latch must survive a subsequent successful call.
	p, err := sim.Alloc(8)
	require.NoError(t, err)
	st, msg := sim.LastError()
	require.Equal(t, device.StatusInvalidValue, st)
	require.NotEmpty(t, msg)
	require.NoError(t, sim.Free(p))
}

func TestSim_CopyRoundTrip(t *testing.T) {
	sim := device.NewSim()

	p, err := sim.Alloc(8)
	require.NoError(t, err)

	in := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, sim.CopyToDevice(p, in))

	out := make([]byte, 8)
	require.NoError(t, sim.CopyFromDevice(out, p))
	require.Equal(t, in, out)
}

func TestSim_CopyOverrun(t *testing.T) {
	sim := device.NewSim()

	p, err := sim.Alloc(4)
	require.NoError(t, err)

	err = sim.CopyToDevice(p, make([]byte, 8))
	var derr *device.Error
	require.True(t, errors.As(err, &derr))
	require.Equal(t, device.StatusInvalidValue, derr.Status)

	err = sim.CopyFromDevice(make([]byte, 8), p)
	require.True(t, errors.As(err, &derr))
	require.Equal(t, device.StatusInvalidValue, derr.Status)
}

func TestSim_CopyUnknownAddress(t *testing.T) {
	sim := device.NewSim()

	var derr *device.Error
	err := sim.CopyToDevice(device.Ptr(99), []byte{1})
	require.True(t, errors.As(err, &derr))
	require.Equal(t, device.StatusCopyFailed, derr.Status)
}

func TestSim_FailNext(t *testing.T) {
	sim := device.NewSim()

	sim.FailNext("alloc", device.StatusAllocFailed)
	_, err := sim.Alloc(16)

	var derr *device.Error
	require.True(t, errors.As(err, &derr))
	require.Equal(t, device.StatusAllocFailed, derr.Status)

	// Exactly one call fails; the fault disarms afterwards.
	p, err := sim.Alloc(16)
	require.NoError(t, err)
	require.NoError(t, sim.Free(p))
}

func TestSim_FailNextTargetsOnlyNamedOp(t *testing.T) {
	sim := device.NewSim()
	sim.FailNext("copy_to_device", device.StatusCopyFailed)

	p, err := sim.Alloc(8)
	require.NoError(t, err, "alloc must not trip a copy-targeted fault")

	err = sim.CopyToDevice(p, make([]byte, 8))
	var derr *device.Error
	require.True(t, errors.As(err, &derr))
	require.Equal(t, device.StatusCopyFailed, derr.Status)
	require.NoError(t, sim.Free(p))
}

func TestSim_Reset(t *testing.T) {
	sim := device.NewSim()

	_, err := sim.Alloc(32)
	require.NoError(t, err)
	_ = sim.Free(device.Ptr(1000)) // latch an error

	sim.Reset()
	require.Empty(t, sim.LiveAllocs())
	st, msg := sim.LastError()
	require.Equal(t, device.StatusSuccess, st)
	require.Empty(t, msg)
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "success", device.StatusSuccess.String())
	require.Equal(t, "device allocation failed", device.StatusAllocFailed.String())
	require.Equal(t, "unknown error", device.Status(1000).String())
}

func TestError_Format(t *testing.T) {
	err := &device.Error{Op: "alloc", Status: device.StatusAllocFailed, Msg: "out of memory"}
	require.Equal(t, "device: alloc: device allocation failed: out of memory", err.Error())

	bare := &device.Error{Op: "free", Status: device.StatusInvalidValue}
	require.Equal(t, "device: free: invalid value", bare.Error())
}
