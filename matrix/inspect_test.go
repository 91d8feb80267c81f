package matrix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/devmat/device"
	"github.com/katalvlaran/devmat/matrix"
)

func TestAtSet_RowMajorAddressing(t *testing.T) {
	sim := device.NewSim()
	m := newMatrix(t, sim, 2, 3)

	m.AllocHost()
	m.Set(0, 0, 1)
	m.Set(0, 2, 3)
	m.Set(1, 1, 5)

	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 3.0, m.At(0, 2))
	require.Equal(t, 5.0, m.At(1, 1))
	// (i,j) lives at flat offset i*cols+j.
	require.Equal(t, []float64{1, 0, 3, 0, 5, 0}, m.Host())
}

func TestFprint_FixedWidthGrid(t *testing.T) {
	sim := device.NewSim()
	m := newMatrix(t, sim, 2, 2)

	m.AllocHost()
	m.Set(0, 0, 1)
	m.Set(0, 1, 22)
	m.Set(1, 0, 333)
	m.Set(1, 1, 4444)

	var b strings.Builder
	require.NoError(t, m.Fprint(&b))
	require.Equal(t, "      1     22\n    333   4444\n", b.String())
}

func TestString_NoHostRendersNothing(t *testing.T) {
	sim := device.NewSim()
	m := newMatrix(t, sim, 3, 3)
	require.Empty(t, m.String())
}

func TestEqualWithin_ShapeMismatch(t *testing.T) {
	sim := device.NewSim()

	// Same element count, different shapes: never equal.
	a := newMatrix(t, sim, 2, 3)
	b := newMatrix(t, sim, 3, 2)
	fillSequential(a)
	fillSequential(b)

	require.False(t, a.EqualWithin(b, 1e9))
	require.False(t, a.EqualWithin(nil, 1e9))
}

func TestEqualWithin_Tolerance(t *testing.T) {
	sim := device.NewSim()

	a := newMatrix(t, sim, 2, 3)
	fillSequential(a)

	within, err := a.Clone()
	require.NoError(t, err)
	beyond, err := a.Clone()
	require.NoError(t, err)

	// Perturb every position, including the last element, so the
	// compare-every-element contract is what's under test.
	for k := range within.Host() {
		within.Host()[k] += 0.0005
		beyond.Host()[k] += 0.002
	}

	require.True(t, a.EqualWithin(within, matrix.DefaultTolerance))
	require.False(t, a.EqualWithin(beyond, matrix.DefaultTolerance))
}

func TestEqualWithin_LastElementOnlyMismatch(t *testing.T) {
	sim := device.NewSim()

	a := newMatrix(t, sim, 2, 3)
	fillSequential(a)
	b, err := a.Clone()
	require.NoError(t, err)

	last := len(b.Host()) - 1
	b.Host()[last] += 0.002
	require.False(t, a.EqualWithin(b, matrix.DefaultTolerance))

	b.Host()[last] = a.Host()[last] + 0.0005
	require.True(t, a.EqualWithin(b, matrix.DefaultTolerance))
}

func TestEqualWithin_EmptyShapesAreEqual(t *testing.T) {
	sim := device.NewSim()
	a := newMatrix(t, sim, 0, 5)
	b := newMatrix(t, sim, 0, 5)
	require.True(t, a.EqualWithin(b, 0))
}
