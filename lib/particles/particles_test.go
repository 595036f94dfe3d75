package particles

import (
	"testing"

	"github.com/andrewcombs/WarpX/lib/eq"
)

func TestNewErrors(t *testing.T) {
	id := []int64{ 0, 1 }
	x := [][3]float64{ { 0, 0, 0 }, { 1, 1, 1 } }
	u := [][3]float64{ { }, { } }

	if _, err := New(-1, id, x, u); err == nil {
		t.Errorf("Expected an error for a negative mass.")
	}
	if _, err := New(1, id, x[:1], u); err == nil {
		t.Errorf("Expected an error for mismatched array lengths.")
	}
	if _, err := New(1, []int64{ 0, -5 }, x, u); err == nil {
		t.Errorf("Expected an error for a negative id.")
	}
	if _, err := New(1, id, x, u); err != nil {
		t.Errorf("Expected no error for valid input, got '%v'.", err)
	}
}

func TestAccessors(t *testing.T) {
	id := []int64{ 4, 8, 15 }
	x := [][3]float64{ { 1, 2, 3 }, { 4, 5, 6 }, { 7, 8, 9 } }
	u := [][3]float64{ { -1, 0, 1 }, { -2, 0, 2 }, { -3, 0, 3 } }

	parts, err := New(2.5, id, x, u)
	if err != nil {
		t.Fatalf("Expected no error from New, got '%v'.", err)
	}

	if parts.Len() != 3 {
		t.Errorf("Expected Len() = 3, got %d.", parts.Len())
	}
	if parts.Mass() != 2.5 {
		t.Errorf("Expected Mass() = 2.5, got %g.", parts.Mass())
	}

	gotID := []int64{ }
	gotX, gotU := [][3]float64{ }, [][3]float64{ }
	for i := 0; i < parts.Len(); i++ {
		p := parts.At(i)
		gotID = append(gotID, p.ID())
		gotX = append(gotX, p.Pos())
		gotU = append(gotU, p.U())
		if p.Mass() != 2.5 {
			t.Errorf("Expected particle %d to have mass 2.5, got %g.", i, p.Mass())
		}
	}
	if !eq.Int64s(gotID, id) {
		t.Errorf("Expected ids %d, got %d.", id, gotID)
	}
	if !eq.Vec64s(gotX, x) || !eq.Vec64s(gotU, u) {
		t.Errorf("Expected positions %v and momenta %v, got %v and %v.",
			x, u, gotX, gotU)
	}
}

func TestFields(t *testing.T) {
	parts, err := New(1,
		[]int64{ 0, 1 },
		[][3]float64{ { }, { } },
		[][3]float64{ { }, { } },
	)
	if err != nil {
		t.Fatalf("Expected no error from New, got '%v'.", err)
	}

	weight := NewFloat64("weight", []float64{ 0.5, 2.0 })
	cpu := NewInt64("cpu", []int64{ 3, 7 })

	if err := parts.AddField(weight); err != nil {
		t.Fatalf("Expected no error from AddField, got '%v'.", err)
	}
	if err := parts.AddField(cpu); err != nil {
		t.Fatalf("Expected no error from AddField, got '%v'.", err)
	}

	if err := parts.AddField(NewFloat64("weight", []float64{ 1, 1 })); err == nil {
		t.Errorf("Expected an error for a duplicate field name.")
	}
	if err := parts.AddField(NewFloat64("short", []float64{ 1 })); err == nil {
		t.Errorf("Expected an error for a mismatched field length.")
	}

	if f, ok := parts.Field("weight"); !ok || f.Len() != 2 {
		t.Errorf("Expected to find the 'weight' field with length 2.")
	}
	if _, ok := parts.Field("missing"); ok {
		t.Errorf("Expected not to find the 'missing' field.")
	}

	if w, ok := parts.At(1).Float64Attr("weight"); !ok || w != 2.0 {
		t.Errorf("Expected particle 1 to have weight 2, got %g (found = %v).", w, ok)
	}
	if c, ok := parts.At(0).Int64Attr("cpu"); !ok || c != 3 {
		t.Errorf("Expected particle 0 to have cpu 3, got %d (found = %v).", c, ok)
	}
	if _, ok := parts.At(0).Float64Attr("cpu"); ok {
		t.Errorf("Expected a type mismatch to report the field as missing.")
	}
}
