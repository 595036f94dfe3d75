/*package particles contains the particle container read by the output
filters. Particles are stored as structure-of-arrays fields so that the
filters can be dispatched over particle indices without touching any
shared mutable state.*/
package particles

import (
	"fmt"
)

// Field is a generic interface around a named per-particle attribute
// array. It is implemented by the supported primitives.
type Field interface {
	// Name returns the name of the field (e.g. 'weight', 'cpu').
	Name() string
	// Len returns the length of the underlying array.
	Len() int
	// Data returns the underlying array as an interface{}.
	Data() interface{}
}

// Type assertions
var (
	_ Field = &Float64{ }
	_ Field = &Int64{ }
)

// Float64 implements the Field interface for []float64 data.
type Float64 struct {
	name string
	data []float64
}

// NewFloat64 creates a field with a given name associated with a given
// array.
func NewFloat64(name string, x []float64) *Float64 {
	return &Float64{ name, x }
}

func (x *Float64) Name() string { return x.name }
func (x *Float64) Len() int { return len(x.data) }
func (x *Float64) Data() interface{} { return x.data }

// Int64 implements the Field interface for []int64 data.
type Int64 struct {
	name string
	data []int64
}

// NewInt64 creates a field with a given name associated with a given
// array.
func NewInt64(name string, x []int64) *Int64 {
	return &Int64{ name, x }
}

func (x *Int64) Name() string { return x.name }
func (x *Int64) Len() int { return len(x.data) }
func (x *Int64) Data() interface{} { return x.data }

// Particles represents the particles of one species. The id, position,
// and momentum arrays are always present; any number of extra named
// fields can be attached. Momenta are stored in the solver's native
// convention, gamma*v, in m/s.
type Particles struct {
	mass float64
	id   []int64
	x    [][3]float64
	u    [][3]float64
	extra map[string]Field
}

// New creates a Particles container for a species with the given mass in
// kg. The id, position, and momentum arrays must have the same length and
// every id must be non-negative.
func New(mass float64, id []int64, x, u [][3]float64) (*Particles, error) {
	if mass < 0 {
		return nil, fmt.Errorf("The species mass must be non-negative, but is %g.", mass)
	}
	if len(x) != len(id) || len(u) != len(id) {
		return nil, fmt.Errorf("The id, position, and momentum arrays have lengths %d, %d, and %d, but must all be the same length.", len(id), len(x), len(u))
	}
	for i := range id {
		if id[i] < 0 {
			return nil, fmt.Errorf("Particle %d has the negative id %d.", i, id[i])
		}
	}
	return &Particles{
		mass: mass, id: id, x: x, u: u,
		extra: map[string]Field{ },
	}, nil
}

// Len returns the number of particles in the container.
func (p *Particles) Len() int { return len(p.id) }

// Mass returns the species mass in kg.
func (p *Particles) Mass() float64 { return p.mass }

// AddField attaches an extra named attribute array to the container.
func (p *Particles) AddField(f Field) error {
	if f.Len() != p.Len() {
		return fmt.Errorf("The field '%s' has length %d, but the container holds %d particles.", f.Name(), f.Len(), p.Len())
	}
	if _, ok := p.extra[f.Name()]; ok {
		return fmt.Errorf("The container already has a field named '%s'.", f.Name())
	}
	p.extra[f.Name()] = f
	return nil
}

// Field returns the extra attribute field with the given name, if it
// exists.
func (p *Particles) Field(name string) (Field, bool) {
	f, ok := p.extra[name]
	return f, ok
}

// At returns a read-only view of particle i.
func (p *Particles) At(i int) Particle {
	return Particle{ p, i }
}

// Particle is a read-only view of a single particle in a Particles
// container.
type Particle struct {
	parts *Particles
	i     int
}

// ID returns the particle's id.
func (p Particle) ID() int64 { return p.parts.id[p.i] }

// Pos returns the particle's position in m.
func (p Particle) Pos() [3]float64 { return p.parts.x[p.i] }

// U returns the particle's momentum in the solver's native gamma*v
// convention, in m/s.
func (p Particle) U() [3]float64 { return p.parts.u[p.i] }

// Mass returns the mass of the particle's species in kg.
func (p Particle) Mass() float64 { return p.parts.mass }

// Float64Attr returns the value of the named extra float64 field for
// this particle.
func (p Particle) Float64Attr(name string) (float64, bool) {
	f, ok := p.parts.extra[name]
	if !ok { return 0, false }
	data, ok := f.Data().([]float64)
	if !ok { return 0, false }
	return data[p.i], true
}

// Int64Attr returns the value of the named extra int64 field for this
// particle.
func (p Particle) Int64Attr(name string) (int64, bool) {
	f, ok := p.parts.extra[name]
	if !ok { return 0, false }
	data, ok := f.Data().([]int64)
	if !ok { return 0, false }
	return data[p.i], true
}
