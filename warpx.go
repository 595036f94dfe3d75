/*warpx-diag runs the diagnostics-side transforms of a particle-in-cell
simulation on synthetic data: coarsening staggered fields for output and
filtering particles for output. It is driven by a gcfg configuration
file; run 'warpx-diag help' to see an example.*/
package main

import (
	"fmt"
	"os"

	"github.com/andrewcombs/WarpX/lib/coarsen"
	"github.com/andrewcombs/WarpX/lib/config"
	"github.com/andrewcombs/WarpX/lib/error"
	"github.com/andrewcombs/WarpX/lib/mesh"
	"github.com/andrewcombs/WarpX/lib/particles"
	"github.com/andrewcombs/WarpX/lib/rng"
	"github.com/andrewcombs/WarpX/lib/thread"

	"gonum.org/v1/gonum/stat"
)

func main() {
	if len(os.Args) < 2 {
		error.External("Expected usage: warpx-diag <mode> [config file]. The valid modes are 'help', 'check', 'coarsen', and 'filter'.")
	}
	mode := os.Args[1]

	if mode == "help" {
		fmt.Println(config.ExampleConfigFile)
		return
	}

	if len(os.Args) != 3 {
		error.External("The mode '%s' needs a config file: warpx-diag %s <config file>.", mode, mode)
	}
	con, err := config.Read(os.Args[2])
	if err != nil {
		error.External("%v", err)
	}
	args, err := con.Process()
	if err != nil {
		error.External("The config file '%s' is invalid: %v", os.Args[2], err)
	}

	thread.Set(args.Threads)

	// Run the chosen mode.
	switch mode {
	case "check":
		fmt.Println("No errors detected.")
	case "coarsen":
		Coarsen(args)
	case "filter":
		Filter(args)
	default:
		error.External(
			"You attempted to run warpx-diag in the mode '%s', but the " +
				"only valid modes are 'help', 'check', 'coarsen', and " +
				"'filter'.", mode,
		)
	}
}

// Coarsen runs the "coarsen" mode: it fills a synthetic fine field over
// a two-box domain with a linear profile, coarsens it as the config
// requests, and prints summary statistics of the result.
func Coarsen(args *config.Args) {
	dstBoxes := []mesh.Box{
		mesh.NewBox(mesh.NewIntVect(0, 0, 0), mesh.NewIntVect(7, 7, 3)),
		mesh.NewBox(mesh.NewIntVect(0, 0, 4), mesh.NewIntVect(7, 7, 7)),
	}
	srcBoxes := make([]mesh.Box, len(dstBoxes))
	for b := range dstBoxes {
		srcBoxes[b] = dstBoxes[b].Refine(args.Ratio)
	}

	// The fine field carries enough ghost cells for the widest stencil
	// over the requested destination ghost region.
	maxRatio := args.Ratio[0]
	if args.Ratio[1] > maxRatio { maxRatio = args.Ratio[1] }
	if args.Ratio[2] > maxRatio { maxRatio = args.Ratio[2] }
	srcGhost := mesh.UniformIntVect((args.Ghost+1)*maxRatio + 1)

	src, err := mesh.NewMultiFab(srcBoxes, args.Components, srcGhost, args.SrcStaggering)
	if err != nil {
		error.Internal("Could not create the fine field: %v", err)
	}
	dst, err := mesh.NewMultiFab(dstBoxes, args.Components,
		mesh.UniformIntVect(args.Ghost), args.DstStaggering)
	if err != nil {
		error.Internal("Could not create the coarse field: %v", err)
	}

	src.Fill(func(i, j, k, comp int) float64 {
		return float64(comp+1) * (float64(i) + 2*float64(j) + 4*float64(k))
	})

	err = coarsen.Coarsen(dst, src, 0, 0, args.Components, args.Ghost, args.Ratio)
	if err != nil {
		error.External("Could not coarsen the field: %v", err)
	}

	for comp := 0; comp < args.Components; comp++ {
		vals := []float64{ }
		for b := 0; b < dst.NBoxes(); b++ {
			arr := dst.Array(b)
			dst.FillBox(b, mesh.UniformIntVect(args.Ghost)).ForEach(
				func(i, j, k int) { vals = append(vals, arr.At(i, j, k, comp)) },
			)
		}
		fmt.Printf("component %d: %d values, mean %.6g\n",
			comp, len(vals), stat.Mean(vals, nil))
	}
}

// Filter runs the "filter" mode: it generates synthetic particles,
// applies the configured filter pipeline, and prints how many particles
// would be written to output.
func Filter(args *config.Args) {
	n := 10 * 1000

	gen := rng.NewStream(args.Seed).At(-1)
	id := make([]int64, n)
	x := make([][3]float64, n)
	u := make([][3]float64, n)
	for i := 0; i < n; i++ {
		id[i] = int64(i)
		for l := 0; l < 3; l++ {
			x[i][l] = gen.Uniform()
			u[i][l] = (2*gen.Uniform() - 1) * 3e8
		}
	}

	parts, err := particles.New(1.0, id, x, u)
	if err != nil {
		error.Internal("Could not create the synthetic particles: %v", err)
	}

	mask := args.Filters.Mask(parts, rng.NewStream(args.Seed))
	kept := 0
	for i := range mask {
		if mask[i] { kept++ }
	}
	fmt.Printf("selected %d of %d particles (%.2f%%)\n",
		kept, n, 100*float64(kept)/float64(n))
}
