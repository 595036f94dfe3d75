/*package filter contains the per-particle selection predicates applied
before particles are written to output, and their AND composition. Each
filter holds only immutable configuration, so one filter value can be
applied to every particle of a timestep from any number of goroutines.*/
package filter

import (
	"fmt"

	"github.com/andrewcombs/WarpX/lib/expr"
	"github.com/andrewcombs/WarpX/lib/mesh"
	"github.com/andrewcombs/WarpX/lib/particles"
	"github.com/andrewcombs/WarpX/lib/rng"

	"golang.org/x/sync/errgroup"
)

// SpeedOfLight is the vacuum speed of light in m/s.
const SpeedOfLight = 299792458.0

// Units tracks what momentum convention a filter expression should
// expect. NativeUnits means the momentum is gamma*v (proper velocity),
// SIUnits means the momentum is mass*gamma*v.
type Units int

const (
	NativeUnits Units = iota
	SIUnits
)

// Filter decides whether a single particle is written to output. An
// inactive filter selects every particle and must not consume draws from
// the engine or evaluate any other logic.
type Filter interface {
	Select(p particles.Particle, eng rng.Engine) bool
}

// RandomFilter selects a random fraction of particles.
type RandomFilter struct {
	isActive bool
	fraction float64
}

// NewRandomFilter creates a filter which selects each particle with the
// given probability. The fraction must be in [0, 1].
func NewRandomFilter(isActive bool, fraction float64) (*RandomFilter, error) {
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("The random filter fraction must be in [0, 1], but is %g.", fraction)
	}
	return &RandomFilter{ isActive, fraction }, nil
}

// Select draws one uniform number and selects the particle if the draw
// is below the configured fraction.
func (f *RandomFilter) Select(p particles.Particle, eng rng.Engine) bool {
	// The early return guarantees that inactive filters never consume a
	// draw from the engine.
	if !f.isActive { return true }
	return eng.Uniform() < f.fraction
}

// UniformFilter selects every stride-th particle by id.
type UniformFilter struct {
	isActive bool
	stride   int64
}

// NewUniformFilter creates a filter which selects the particles whose id
// is divisible by stride. The stride must be a positive integer.
func NewUniformFilter(isActive bool, stride int64) (*UniformFilter, error) {
	if stride < 1 {
		return nil, fmt.Errorf("The uniform filter stride must be a positive integer, but is %d.", stride)
	}
	return &UniformFilter{ isActive, stride }, nil
}

// Select selects the particle if stride divides its id.
func (f *UniformFilter) Select(p particles.Particle, eng rng.Engine) bool {
	if !f.isActive { return true }
	return p.ID()%f.stride == 0
}

// GeometryFilter selects the particles inside an axis-aligned region.
type GeometryFilter struct {
	isActive bool
	region   mesh.RealBox
}

// NewGeometryFilter creates a filter which selects the particles whose
// position lies inside region, boundaries included.
func NewGeometryFilter(isActive bool, region mesh.RealBox) *GeometryFilter {
	return &GeometryFilter{ isActive, region }
}

// Select selects the particle if its position is inside the region.
func (f *GeometryFilter) Select(p particles.Particle, eng rng.Engine) bool {
	if !f.isActive { return true }
	x := p.Pos()
	return f.region.Contains(x[0], x[1], x[2])
}

// ParserFilter selects particles with a compiled expression over
// (t, x, y, z, ux, uy, uz), where the momentum variables are converted
// to beta*gamma before evaluation.
type ParserFilter struct {
	isActive bool
	f        *expr.Expr
	mass     float64
	units    Units
	t        float64
}

// NewParserFilter creates a filter which selects the particles for which
// f evaluates to a nonzero value. The time t is captured here and not
// refreshed between particles. With SIUnits the momenta are additionally
// divided by the species mass, which must then be positive.
func NewParserFilter(isActive bool, f *expr.Expr, mass float64, units Units, t float64) (*ParserFilter, error) {
	if f == nil {
		return nil, fmt.Errorf("The parser filter needs a compiled expression, but none was given.")
	}
	if units == SIUnits && mass <= 0 {
		return nil, fmt.Errorf("The parser filter cannot convert SI momenta to beta*gamma for a species with mass %g: the mass must be positive.", mass)
	}
	return &ParserFilter{ isActive, f, mass, units, t }, nil
}

// Select selects the particle if the expression evaluates to a nonzero
// value at the particle's state.
func (f *ParserFilter) Select(p particles.Particle, eng rng.Engine) bool {
	if !f.isActive { return true }

	x := p.Pos()
	u := p.U()
	ux := u[0] / SpeedOfLight
	uy := u[1] / SpeedOfLight
	uz := u[2] / SpeedOfLight
	if f.units == SIUnits {
		ux /= f.mass
		uy /= f.mass
		uz /= f.mass
	}
	// ux, uy, uz are now in beta*gamma.

	return f.f.Eval(f.t, x[0], x[1], x[2], ux, uy, uz) != 0
}

// FilterList is an ordered set of filters combined with a logical AND.
// An empty list selects every particle.
type FilterList []Filter

// Select returns true if every filter in the list selects the particle.
// Later filters are not evaluated once one rejects, so they consume no
// draws for that particle.
func (fl FilterList) Select(p particles.Particle, eng rng.Engine) bool {
	for _, f := range fl {
		if !f.Select(p, eng) { return false }
	}
	return true
}

// Mask applies the filter list to every particle in the container and
// returns the keep mask. Each particle draws from its own substream of
// stream, so the mask does not depend on how the work is split across
// goroutines.
func (fl FilterList) Mask(parts *particles.Particles, stream rng.Stream) []bool {
	n := parts.Len()
	out := make([]bool, n)

	chunk := n/8 + 1
	g := &errgroup.Group{ }
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > n { hi = n }
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				out[i] = fl.Select(parts.At(i), stream.At(int64(i)))
			}
			return nil
		})
	}
	// The workers only write disjoint slots and never fail.
	g.Wait()

	return out
}
