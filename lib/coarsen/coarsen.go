/*package coarsen fills a coarse staggered field by averaging a fine one.
It is mostly used for I/O: diagnostics ask for fields on a coarser grid
than the solver runs on, and the stencil below resamples the fine data
onto it while compensating for staggering offsets.

The per-cell kernel is pure and allocation-free, so the loop drivers are
free to dispatch it over cells and boxes in any order and from any number
of goroutines.*/
package coarsen

import (
	"fmt"

	"github.com/andrewcombs/WarpX/lib/mesh"

	"golang.org/x/sync/errgroup"
)

// numPoints returns how many fine points along one axis are averaged
// into one coarse value, given the source staggering sf, the destination
// staggering sc, and the coarsening ratio cr along that axis.
func numPoints(sf, sc, cr int) int {
	if cr == 1 {
		// No coarsening: one point if the staggerings agree, two points
		// bridging the half-cell offset if they differ.
		d := sf - sc
		if d < 0 { d = -d }
		return 1 + d
	}
	return 2 - sf
}

// startIndex returns the first fine index sampled along one axis for the
// coarse index ic.
func startIndex(ic, sf, sc, cr int) int {
	if cr == 1 { return ic - sc*(1-sf) }
	return ic*cr + (cr/2)*(1-sc) - (1-sf)
}

// Interp computes the value at cell (i, j, k), component comp, of a
// coarse field by averaging the fine source data in src. sf and sc are
// the staggerings of the source and destination fields, and cr is the
// coarsening ratio along each axis.
//
// Every sampled point carries the weight 1/(np[0]*np[1]*np[2]), so the
// weights sum to exactly 1. The caller must guarantee that src holds
// valid data over the whole sampled index box: Interp itself does not
// check, but the loop drivers in this package do before dispatching.
func Interp(
	src mesh.Array, sf, sc, cr mesh.IntVect, i, j, k, comp int,
) float64 {
	ic := [3]int{ i, j, k }

	np, idxMin := [3]int{ }, [3]int{ }
	for l := 0; l < 3; l++ {
		np[l] = numPoints(sf[l], sc[l], cr[l])
		idxMin[l] = startIndex(ic[l], sf[l], sc[l], cr[l])
	}

	w := 1.0 / float64(np[0]*np[1]*np[2])

	c := 0.0
	for kref := 0; kref < np[2]; kref++ {
		for jref := 0; jref < np[1]; jref++ {
			for iref := 0; iref < np[0]; iref++ {
				c += w * src.At(idxMin[0]+iref, idxMin[1]+jref, idxMin[2]+kref, comp)
			}
		}
	}
	return c
}

// Coarsen fills ncomp components of dst, starting at component dcomp, by
// averaging the components of src starting at scomp, over every valid
// cell of dst plus a margin of ngrow ghost cells on every axis. cr is
// the coarsening ratio between src and dst; pass mesh.UnitVect() for
// plain restaggering without spatial coarsening.
func Coarsen(
	dst, src *mesh.MultiFab,
	dcomp, scomp, ncomp int,
	ngrow int,
	cr mesh.IntVect,
) error {
	if ngrow < 0 {
		return fmt.Errorf("The number of ghost cells to fill must be non-negative, but is %d.", ngrow)
	}
	return Loop(dst, src, dcomp, scomp, ncomp, mesh.UniformIntVect(ngrow), cr)
}

// CoarsenVec is Coarsen with a per-axis ghost margin. The two entry
// points are otherwise equivalent.
func CoarsenVec(
	dst, src *mesh.MultiFab,
	dcomp, scomp, ncomp int,
	ngrow mesh.IntVect,
	cr mesh.IntVect,
) error {
	return Loop(dst, src, dcomp, scomp, ncomp, ngrow, cr)
}

// Loop fills dst from src as described in Coarsen, dispatching the boxes
// of dst in parallel. All configuration is validated up front, including
// that src holds enough ghost data to satisfy the widest stencil over
// the requested destination region, so that no partially filled dst is
// left behind on error.
func Loop(
	dst, src *mesh.MultiFab,
	dcomp, scomp, ncomp int,
	ngrow mesh.IntVect,
	cr mesh.IntVect,
) error {
	if err := check(dst, src, dcomp, scomp, ncomp, ngrow, cr); err != nil {
		return err
	}

	sf, sc := src.Staggering(), dst.Staggering()

	g := &errgroup.Group{ }
	for b := 0; b < dst.NBoxes(); b++ {
		b := b
		g.Go(func() error {
			arrSrc, arrDst := src.Array(b), dst.Array(b)
			fill := dst.FillBox(b, ngrow)
			for comp := 0; comp < ncomp; comp++ {
				comp := comp
				fill.ForEach(func(i, j, k int) {
					arrDst.Set(i, j, k, dcomp+comp,
						Interp(arrSrc, sf, sc, cr, i, j, k, scomp+comp))
				})
			}
			return nil
		})
	}
	return g.Wait()
}

// check validates a Loop configuration.
func check(
	dst, src *mesh.MultiFab,
	dcomp, scomp, ncomp int,
	ngrow mesh.IntVect,
	cr mesh.IntVect,
) error {
	if ncomp < 1 {
		return fmt.Errorf("The number of components to fill must be at least 1, but is %d.", ncomp)
	}
	if dcomp < 0 || dcomp+ncomp > dst.NComp() {
		return fmt.Errorf("The destination components [%d, %d) are outside the destination's %d components.", dcomp, dcomp+ncomp, dst.NComp())
	}
	if scomp < 0 || scomp+ncomp > src.NComp() {
		return fmt.Errorf("The source components [%d, %d) are outside the source's %d components.", scomp, scomp+ncomp, src.NComp())
	}
	if !cr.IsRatio() {
		return fmt.Errorf("The coarsening ratio %d must be a positive integer on every axis.", cr)
	}
	if ngrow[0] < 0 || ngrow[1] < 0 || ngrow[2] < 0 {
		return fmt.Errorf("The number of ghost cells to fill %d must be non-negative on every axis.", ngrow)
	}
	if !dst.NGrow().AllGeq(ngrow) {
		return fmt.Errorf("The destination only allocates %d ghost cells, but %d were requested.", dst.NGrow(), ngrow)
	}
	if dst.NBoxes() != src.NBoxes() {
		return fmt.Errorf("The destination has %d boxes, but the source has %d: the two fields must share a box decomposition.", dst.NBoxes(), src.NBoxes())
	}

	sf, sc := src.Staggering(), dst.Staggering()
	for b := 0; b < dst.NBoxes(); b++ {
		if src.Box(b).Coarsen(cr) != dst.Box(b) {
			return fmt.Errorf("Box %d of the destination is %v, but coarsening the source box %v by %d gives %v.",
				b, dst.Box(b), src.Box(b), cr, src.Box(b).Coarsen(cr))
		}
		if err := checkSrcGhost(dst, src, b, ngrow, sf, sc, cr); err != nil {
			return err
		}
	}
	return nil
}

// checkSrcGhost verifies that the data region of source box b covers
// every fine index the stencil touches when filling the destination
// region requested for that box.
func checkSrcGhost(
	dst, src *mesh.MultiFab, b int,
	ngrow, sf, sc, cr mesh.IntVect,
) error {
	fill := dst.FillBox(b, ngrow)
	need := mesh.Box{ }
	for l := 0; l < 3; l++ {
		np := numPoints(sf[l], sc[l], cr[l])
		// startIndex is monotonic in the coarse index, so the extremes
		// of the fill box bound the whole sampled range.
		need.Lo[l] = startIndex(fill.Lo[l], sf[l], sc[l], cr[l])
		need.Hi[l] = startIndex(fill.Hi[l], sf[l], sc[l], cr[l]) + np - 1
	}
	if !src.DataBox(b).ContainsBox(need) {
		return fmt.Errorf("The stencil for box %d needs source data over %v, but the source only holds %v. Allocate more source ghost cells or fill fewer destination ghost cells.",
			b, need, src.DataBox(b))
	}
	return nil
}
