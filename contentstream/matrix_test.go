package contentstream

import (
	"math"
	"testing"
)

// TestMatrixMultiply tests composing transformations
func TestMatrixMultiply(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want Matrix
	}{
		{"identity", Identity().Multiply(Identity()), Identity()},
		{"scale then translate", Scale(2, 3).Multiply(Translate(10, 20)), Matrix{2, 0, 0, 3, 10, 20}},
		{"translate then scale", Translate(10, 20).Multiply(Scale(2, 3)), Matrix{2, 0, 0, 3, 20, 60}},
		{"two translations", Translate(1, 2).Multiply(Translate(3, 4)), Translate(4, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.m != tt.want {
				t.Errorf("got %v, want %v", tt.m, tt.want)
			}
		})
	}
}

// TestMatrixApply tests transforming points
func TestMatrixApply(t *testing.T) {
	x, y := Scale(2, 3).Multiply(Translate(10, 20)).Apply(1, 1)
	if x != 12 || y != 23 {
		t.Errorf("Apply(1, 1) = (%g, %g), want (12, 23)", x, y)
	}

	x, y = Rotate(math.Pi/2).Apply(1, 0)
	if math.Abs(float64(x)) > 1e-6 || math.Abs(float64(y-1)) > 1e-6 {
		t.Errorf("rotated (1, 0) = (%g, %g), want (0, 1)", x, y)
	}
}

// TestConcat tests writing matrices as cm
func TestConcat(t *testing.T) {
	c := New()
	c.Concat(Identity())
	c.Concat(Scale(100, 50).Multiply(Translate(72, 400)))
	if got := string(c.Finish().Bytes()); got != "100 0 0 50 72 400 cm" {
		t.Errorf("got %q", got)
	}
}
