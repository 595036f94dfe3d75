/*package rng contains the reproducible random number streams used by the
stochastic particle filters. Every parallel unit of work draws from its
own deterministic substream, so results do not depend on how the work is
scheduled across threads.*/
package rng

import (
	"math"
)

var (
	xorshiftMaxUint = float64(math.MaxUint32)
)

// Engine is the draw interface handed to per-particle work. Tests can
// substitute an Engine which counts its draws.
type Engine interface {
	// Uniform generates a single random number in the range [0, 1).
	Uniform() float64
}

// Xorshift is a 128-bit xorshift random number generator. A single
// Xorshift is not thread safe: each unit of work must use its own.
type Xorshift struct {
	w, x, y, z uint32
}

// NewXorshift initializes an Xorshift with a given seed.
func NewXorshift(seed uint64) *Xorshift {
	return &Xorshift{ uint32(seed), 123456789, 362436069, 521288629 }
}

// Uniform generates a single random number in the range [0, 1)
func (gen *Xorshift) Uniform() float64 {
	t := gen.x ^ (gen.x << 11)
	gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
	gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
	res := float64(math.MaxUint32-gen.w) / xorshiftMaxUint
	if res == 1.0 { return gen.Uniform() }
	return res
}

// UniformSequence generates one random number in the range [0, 1) for
// each element of the array target and writes them to that array.
func (gen *Xorshift) UniformSequence(target []float64) {
	for i := 0; i < len(target); i++ {
		target[i] = gen.Uniform()
	}
}

// Stream derives independent, reproducible substreams from a single
// seed. Two Streams with the same seed hand out identical substreams for
// identical unit indices, no matter how many goroutines ask and in what
// order.
type Stream struct {
	seed uint64
}

// NewStream creates a Stream with a given seed.
func NewStream(seed uint64) Stream {
	return Stream{ seed }
}

// At returns the substream for the given unit of work, e.g. the index of
// a particle. Calling At twice with the same unit returns generators
// which produce the same sequence.
func (s Stream) At(unit int64) *Xorshift {
	return NewXorshift(splitmix64(s.seed ^ splitmix64(uint64(unit)+0x9e3779b97f4a7c15)))
}

// splitmix64 is the finalizer of the SplitMix64 generator. It scrambles
// unit indices into well-spread xorshift seeds.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
