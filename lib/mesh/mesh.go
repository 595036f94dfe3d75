/*package mesh contains the structured-grid containers used by the
diagnostics pipelines: integer index vectors, inclusive index boxes, and
multi-component box-decomposed field data with staggering metadata.*/
package mesh

// IntVect is a per-axis integer vector. It is used for cell indices,
// coarsening ratios, ghost-cell widths, and staggering flags.
type IntVect [3]int

// NewIntVect creates an IntVect from its three components.
func NewIntVect(x, y, z int) IntVect {
	return IntVect{ x, y, z }
}

// UniformIntVect creates an IntVect with the value n on every axis.
func UniformIntVect(n int) IntVect {
	return IntVect{ n, n, n }
}

// UnitVect returns the IntVect with 1 on every axis, the default
// coarsening ratio.
func UnitVect() IntVect {
	return UniformIntVect(1)
}

// ZeroVect returns the IntVect with 0 on every axis.
func ZeroVect() IntVect {
	return UniformIntVect(0)
}

// Add returns the componentwise sum of v and u.
func (v IntVect) Add(u IntVect) IntVect {
	return IntVect{ v[0] + u[0], v[1] + u[1], v[2] + u[2] }
}

// Mul returns the componentwise product of v and u.
func (v IntVect) Mul(u IntVect) IntVect {
	return IntVect{ v[0] * u[0], v[1] * u[1], v[2] * u[2] }
}

// Max returns the componentwise maximum of v and u.
func (v IntVect) Max(u IntVect) IntVect {
	w := v
	for l := 0; l < 3; l++ {
		if u[l] > w[l] { w[l] = u[l] }
	}
	return w
}

// AllGeq returns true if every component of v is >= the matching
// component of u.
func (v IntVect) AllGeq(u IntVect) bool {
	return v[0] >= u[0] && v[1] >= u[1] && v[2] >= u[2]
}

// IsStaggering returns true if every component of v is a valid staggering
// flag, 0 for cell-centered data and 1 for nodal data.
func (v IntVect) IsStaggering() bool {
	for l := 0; l < 3; l++ {
		if v[l] != 0 && v[l] != 1 { return false }
	}
	return true
}

// IsRatio returns true if every component of v is a valid coarsening
// ratio, i.e. a positive integer.
func (v IntVect) IsRatio() bool {
	return v[0] >= 1 && v[1] >= 1 && v[2] >= 1
}

// Box is an inclusive rectangular region of cell indices, Lo[l] <= i[l]
// <= Hi[l] on every axis.
type Box struct {
	Lo, Hi IntVect
}

// NewBox creates the box spanning lo to hi, inclusive.
func NewBox(lo, hi IntVect) Box {
	return Box{ lo, hi }
}

// Shape returns the number of cells along each axis.
func (b Box) Shape() IntVect {
	return IntVect{
		b.Hi[0] - b.Lo[0] + 1,
		b.Hi[1] - b.Lo[1] + 1,
		b.Hi[2] - b.Lo[2] + 1,
	}
}

// NumPts returns the total number of cells in the box.
func (b Box) NumPts() int {
	s := b.Shape()
	return s[0] * s[1] * s[2]
}

// Contains returns true if the cell index v is inside the box.
func (b Box) Contains(v IntVect) bool {
	for l := 0; l < 3; l++ {
		if v[l] < b.Lo[l] || v[l] > b.Hi[l] { return false }
	}
	return true
}

// ContainsBox returns true if every cell of o is inside b.
func (b Box) ContainsBox(o Box) bool {
	return b.Contains(o.Lo) && b.Contains(o.Hi)
}

// Grow expands the box by n cells on both sides of each axis.
func (b Box) Grow(n IntVect) Box {
	return Box{
		IntVect{ b.Lo[0] - n[0], b.Lo[1] - n[1], b.Lo[2] - n[2] },
		IntVect{ b.Hi[0] + n[0], b.Hi[1] + n[1], b.Hi[2] + n[2] },
	}
}

// GrowHi expands only the upper side of the box by n cells on each axis.
// It is used to extend cell-indexed boxes to cover nodal points.
func (b Box) GrowHi(n IntVect) Box {
	return Box{ b.Lo, b.Hi.Add(n) }
}

// Refine maps the box onto a grid which is finer by the ratio r, so that
// the refined box covers exactly the same region of space.
func (b Box) Refine(r IntVect) Box {
	lo, hi := IntVect{ }, IntVect{ }
	for l := 0; l < 3; l++ {
		lo[l] = b.Lo[l] * r[l]
		hi[l] = (b.Hi[l]+1)*r[l] - 1
	}
	return Box{ lo, hi }
}

// Coarsen maps the box onto a grid which is coarser by the ratio r,
// rounding outward on the low side the way floor division does.
func (b Box) Coarsen(r IntVect) Box {
	lo, hi := IntVect{ }, IntVect{ }
	for l := 0; l < 3; l++ {
		lo[l] = floorDiv(b.Lo[l], r[l])
		hi[l] = floorDiv(b.Hi[l], r[l])
	}
	return Box{ lo, hi }
}

// ForEach calls f once for every cell in the box, with the x index
// varying fastest.
func (b Box) ForEach(f func(i, j, k int)) {
	for k := b.Lo[2]; k <= b.Hi[2]; k++ {
		for j := b.Lo[1]; j <= b.Hi[1]; j++ {
			for i := b.Lo[0]; i <= b.Hi[0]; i++ {
				f(i, j, k)
			}
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) { q-- }
	return q
}

// RealBox is an axis-aligned region of physical space with inclusive
// boundaries on every axis.
type RealBox struct {
	Lo, Hi [3]float64
}

// NewRealBox creates the region spanning lo to hi, inclusive.
func NewRealBox(lo, hi [3]float64) RealBox {
	return RealBox{ lo, hi }
}

// Contains returns true if the point (x, y, z) is inside the region.
// Points exactly on a boundary are inside.
func (rb RealBox) Contains(x, y, z float64) bool {
	return !(x < rb.Lo[0] || x > rb.Hi[0] ||
		y < rb.Lo[1] || y > rb.Hi[1] ||
		z < rb.Lo[2] || z > rb.Hi[2])
}
