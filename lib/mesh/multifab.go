package mesh

/* multifab.go contains the box-decomposed field container written to and
read from by the coarsening loop. */

import (
	"fmt"
)

// MultiFab is a multi-component float64 field stored over a set of
// independently iterable boxes. Each box carries a ghost-cell margin of
// width ngrow, and the whole field is tagged with a per-axis staggering
// flag: 0 if the data sits at cell centers along that axis, 1 if it sits
// on the nodal points. Nodal axes store one extra point on the high side
// of each box.
type MultiFab struct {
	boxes []Box
	data  [][]float64
	ncomp int
	ngrow IntVect
	stag  IntVect
}

// NewMultiFab creates a MultiFab over the given boxes with ncomp
// components per cell, a ghost margin of ngrow cells, and the given
// per-axis staggering. All values start at zero.
func NewMultiFab(boxes []Box, ncomp int, ngrow, stag IntVect) (*MultiFab, error) {
	if len(boxes) == 0 {
		return nil, fmt.Errorf("A MultiFab needs at least one box, but none were given.")
	}
	if ncomp < 1 {
		return nil, fmt.Errorf("A MultiFab needs at least one component, but ncomp = %d was given.", ncomp)
	}
	if !stag.IsStaggering() {
		return nil, fmt.Errorf("The staggering %d must be 0 or 1 on every axis.", stag)
	}
	if ngrow[0] < 0 || ngrow[1] < 0 || ngrow[2] < 0 {
		return nil, fmt.Errorf("The ghost-cell width %d must be non-negative on every axis.", ngrow)
	}

	mf := &MultiFab{
		boxes: make([]Box, len(boxes)),
		data: make([][]float64, len(boxes)),
		ncomp: ncomp, ngrow: ngrow, stag: stag,
	}
	copy(mf.boxes, boxes)
	for b := range boxes {
		mf.data[b] = make([]float64, mf.DataBox(b).NumPts()*ncomp)
	}
	return mf, nil
}

// NBoxes returns the number of boxes in the decomposition.
func (mf *MultiFab) NBoxes() int { return len(mf.boxes) }

// NComp returns the number of components per cell.
func (mf *MultiFab) NComp() int { return mf.ncomp }

// NGrow returns the ghost-cell width along each axis.
func (mf *MultiFab) NGrow() IntVect { return mf.ngrow }

// Staggering returns the per-axis staggering flags.
func (mf *MultiFab) Staggering() IntVect { return mf.stag }

// Box returns the valid (ghost-free, cell-indexed) box b.
func (mf *MultiFab) Box(b int) Box { return mf.boxes[b] }

// DataBox returns the full index region with storage behind box b: the
// valid box grown by the ghost margin, with the nodal extension on the
// high side.
func (mf *MultiFab) DataBox(b int) Box {
	return mf.boxes[b].Grow(mf.ngrow).GrowHi(mf.stag)
}

// FillBox returns the index region of box b which a writer asking for
// ngrow ghost cells must fill: the valid box grown by ngrow, with the
// nodal extension on the high side.
func (mf *MultiFab) FillBox(b int, ngrow IntVect) Box {
	return mf.boxes[b].Grow(ngrow).GrowHi(mf.stag)
}

// Array returns an accessor for the data of box b. Indices passed to the
// accessor are absolute, not box-relative.
func (mf *MultiFab) Array(b int) Array {
	dataBox := mf.DataBox(b)
	return Array{
		data: mf.data[b], lo: dataBox.Lo,
		shape: dataBox.Shape(), ncomp: mf.ncomp,
	}
}

// SetVal sets every value of every box, ghost cells included, to v.
func (mf *MultiFab) SetVal(v float64) {
	for b := range mf.data {
		data := mf.data[b]
		for i := range data {
			data[i] = v
		}
	}
}

// Fill sets every value of every box, ghost cells included, to
// f(i, j, k, comp).
func (mf *MultiFab) Fill(f func(i, j, k, comp int) float64) {
	for b := range mf.boxes {
		arr := mf.Array(b)
		for comp := 0; comp < mf.ncomp; comp++ {
			comp := comp
			mf.DataBox(b).ForEach(func(i, j, k int) {
				arr.Set(i, j, k, comp, f(i, j, k, comp))
			})
		}
	}
}

// Array is a view into the data of a single box of a MultiFab. It is
// indexed by absolute cell coordinates and a component index.
type Array struct {
	data  []float64
	lo    IntVect
	shape IntVect
	ncomp int
}

func (a Array) index(i, j, k, comp int) int {
	x, y, z := i-a.lo[0], j-a.lo[1], k-a.lo[2]
	if x < 0 || x >= a.shape[0] || y < 0 || y >= a.shape[1] ||
		z < 0 || z >= a.shape[2] || comp < 0 || comp >= a.ncomp {
		panic(fmt.Sprintf("Internal error: index (%d, %d, %d, %d) is outside the array with origin %d, shape %d, and %d components.",
			i, j, k, comp, a.lo, a.shape, a.ncomp))
	}
	return ((comp*a.shape[2]+z)*a.shape[1]+y)*a.shape[0] + x
}

// At returns the value at cell (i, j, k) of the given component.
func (a Array) At(i, j, k, comp int) float64 {
	return a.data[a.index(i, j, k, comp)]
}

// Set sets the value at cell (i, j, k) of the given component.
func (a Array) Set(i, j, k, comp int, v float64) {
	a.data[a.index(i, j, k, comp)] = v
}
