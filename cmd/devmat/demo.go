package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/devmat/device"
	"github.com/katalvlaran/devmat/kernel"
	"github.com/katalvlaran/devmat/matrix"
)

// demoResult is the --json rendering of a demo run.
type demoResult struct {
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Tolerance float64   `json:"tolerance"`
	Match     bool      `json:"match"`
	Data      []float64 `json:"data"` // row-major
}

func demoCmd() *cli.Command {
	var (
		rows      int64
		inner     int64
		cols      int64
		tolerance float64
		seed      int64
		asJSON    bool
	)

	return &cli.Command{
		Name:  "demo",
		Usage: "Multiply two matrices through the simulated device and verify the result",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "rows", Value: 4, Usage: "rows of A (and of the result)", Destination: &rows},
			&cli.Int64Flag{Name: "inner", Value: 3, Usage: "columns of A / rows of B", Destination: &inner},
			&cli.Int64Flag{Name: "cols", Value: 5, Usage: "columns of B (and of the result)", Destination: &cols},
			&cli.Float64Flag{Name: "tolerance", Value: matrix.DefaultTolerance, Usage: "per-element verification tolerance", Destination: &tolerance},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "seed for the input values", Destination: &seed},
			&cli.BoolFlag{Name: "json", Usage: "emit the result as JSON instead of a grid", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyDemoConfig(cmd, LoadConfig(), &rows, &inner, &cols, &tolerance, &seed)
			if rows < 0 || inner < 0 || cols < 0 {
				return fmt.Errorf("devmat: demo: negative shape %dx%dx%d", rows, inner, cols)
			}

			return runDemo(int(rows), int(inner), int(cols), tolerance, uint64(seed), asJSON)
		},
	}
}

// randomMatrix builds a rows×cols container populated from rng.
func randomMatrix(sim *device.Sim, rows, cols int, rng *rand.Rand) (*matrix.Matrix, error) {
	m, err := matrix.New(sim, rows, cols)
	if err != nil {
		return nil, err
	}
	m.AllocHost()
	for k, host := 0, m.Host(); k < len(host); k++ {
		host[k] = float64(rng.IntN(19) - 9) // small integers keep the grid readable
	}

	return m, nil
}

// runDemo drives the full protocol: populate on host, push column-major,
// multiply on the device, pull with conversion, verify against a host
// reference, and report.
func runDemo(rows, inner, cols int, tolerance float64, seed uint64, asJSON bool) error {
	sim := device.NewSim()
	rng := rand.New(rand.NewPCG(seed, seed))

	a, err := randomMatrix(sim, rows, inner, rng)
	if err != nil {
		return err
	}
	defer a.Close()
	b, err := randomMatrix(sim, inner, cols, rng)
	if err != nil {
		return err
	}
	defer b.Close()

	if err = a.UploadColMajor(); err != nil {
		return err
	}
	if err = b.UploadColMajor(); err != nil {
		return err
	}

	c, err := matrix.New(sim, rows, cols)
	if err != nil {
		return err
	}
	defer c.Close()
	if err = c.AllocDevice(); err != nil {
		return err
	}

	if err = kernel.Dgemm(sim, rows, cols, inner,
		a.DevicePtr(), rows, b.DevicePtr(), inner, c.DevicePtr(), rows); err != nil {
		return err
	}

	// The kernel wrote C column-major behind the container's back.
	c.SetDeviceLayout(matrix.LayoutColMajor)
	if err = c.DownloadColMajor(); err != nil {
		return err
	}

	want, err := hostReference(sim, a, b)
	if err != nil {
		return err
	}
	match := c.EqualWithin(want, tolerance)

	if asJSON {
		out, jerr := json.MarshalIndent(demoResult{
			Rows:      c.Rows(),
			Cols:      c.Cols(),
			Tolerance: tolerance,
			Match:     match,
			Data:      c.Host(),
		}, "", "  ")
		if jerr != nil {
			return jerr
		}
		fmt.Println(string(out))
	} else {
		if err = c.Fprint(os.Stdout); err != nil {
			return err
		}
	}

	if !match {
		return fmt.Errorf("devmat: demo: device result deviates from host reference beyond %g", tolerance)
	}

	return nil
}

// hostReference multiplies a·b on the host, row-major throughout.
func hostReference(sim *device.Sim, a, b *matrix.Matrix) (*matrix.Matrix, error) {
	out, err := matrix.New(sim, a.Rows(), b.Cols())
	if err != nil {
		return nil, err
	}
	out.AllocHost()
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			var sum float64
			for l := 0; l < a.Cols(); l++ {
				sum += a.At(i, l) * b.At(l, j)
			}
			out.Set(i, j, sum)
		}
	}

	return out, nil
}
