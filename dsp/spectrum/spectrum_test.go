package spectrum

import (
	"math"
	"testing"
)

func TestMagnitude(t *testing.T) {
	in := []complex128{
		complex(3, 4),
		complex(0, 0),
		complex(-1, 0),
		complex(0, -2),
	}

	got := Magnitude(in)

	want := []float64{5, 0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("bin %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMagnitudeEmpty(t *testing.T) {
	if got := Magnitude(nil); got != nil {
		t.Fatalf("Magnitude(nil) = %v, want nil", got)
	}
}

func TestMagnitudeIntoReusesDst(t *testing.T) {
	in := []complex128{complex(1, 1), complex(2, -2)}
	dst := make([]float64, len(in))

	MagnitudeInto(dst, in)

	if math.Abs(dst[0]-math.Sqrt2) > 1e-12 {
		t.Fatalf("bin 0 = %v, want sqrt(2)", dst[0])
	}
	if math.Abs(dst[1]-2*math.Sqrt2) > 1e-12 {
		t.Fatalf("bin 1 = %v, want 2*sqrt(2)", dst[1])
	}

	// A second pass over different values must fully overwrite dst.
	MagnitudeInto(dst, []complex128{complex(0, 0), complex(0, 3)})
	if dst[0] != 0 || math.Abs(dst[1]-3) > 1e-12 {
		t.Fatalf("reused dst = %v, want [0 3]", dst)
	}
}
