package rng

import (
	"testing"

	"github.com/andrewcombs/WarpX/lib/eq"
)

func TestUniformRange(t *testing.T) {
	gen := NewXorshift(42)
	for i := 0; i < 10*1000; i++ {
		x := gen.Uniform()
		if x < 0 || x >= 1 {
			t.Errorf("Draw %d is %g, outside [0, 1).", i, x)
			return
		}
	}
}

func TestUniformSequence(t *testing.T) {
	seq := make([]float64, 100)
	NewXorshift(42).UniformSequence(seq)

	gen := NewXorshift(42)
	one := make([]float64, 100)
	for i := range one {
		one[i] = gen.Uniform()
	}

	if !eq.Float64s(seq, one) {
		t.Errorf("Expected UniformSequence to match repeated Uniform calls.")
	}
}

func TestStreamDeterminism(t *testing.T) {
	stream := NewStream(42)

	// The same unit always gets the same sequence, regardless of the
	// order substreams are created and drawn from.
	units := []int64{ 0, 7, 3, 1000 * 1000, 7, 0 }
	for _, unit := range units {
		a, b := make([]float64, 20), make([]float64, 20)
		stream.At(unit).UniformSequence(a)
		stream.At(unit).UniformSequence(b)
		if !eq.Float64s(a, b) {
			t.Errorf("Unit %d produced two different sequences.", unit)
			return
		}
	}
}

func TestStreamIndependence(t *testing.T) {
	stream := NewStream(42)

	// Substreams for different units are essentially uncorrelated, so
	// their first draws are almost all distinct.
	seen := map[float64]bool{ }
	for unit := int64(0); unit < 1000; unit++ {
		seen[stream.At(unit).Uniform()] = true
	}
	if len(seen) < 990 {
		t.Errorf("Expected nearly 1000 distinct first draws, got %d.", len(seen))
	}

	if NewStream(1).At(0).Uniform() == NewStream(2).At(0).Uniform() {
		t.Errorf("Different seeds drew the same first value for unit 0.")
	}
}
