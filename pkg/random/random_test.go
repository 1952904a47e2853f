package random

import (
	"math"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97*31 + 98},
		{"abc", (97*31+98)*31 + 99},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hash(tt.in); got != tt.want {
				t.Errorf("Hash(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestHash_Stable(t *testing.T) {
	if Hash("same-string") != Hash("same-string") {
		t.Error("Hash() should be deterministic")
	}
	if Hash("growth-1") == Hash("growth-2") {
		t.Error("Hash() should differ for different strings")
	}
}

func TestHash_NonNegative(t *testing.T) {
	// Long strings overflow 32 bits many times over.
	for _, s := range []string{
		"showcase-pot-round-concave-4",
		"combo-stem-round-concave-2",
		"a much longer seed string that wraps the register repeatedly",
		"ünïcödé 🌱",
	} {
		if h := Hash(s); h < 0 || h > math.MaxInt32+1 {
			t.Errorf("Hash(%q) = %d, outside [0, 2^31]", s, h)
		}
	}
}

func TestHash_UTF16Units(t *testing.T) {
	// A character outside the BMP contributes two code units.
	hi, lo := 0xD83C, 0xDF31 // U+1F331 seedling
	want := int64(int32(hi)*31 + int32(lo))
	if got := Hash("🌱"); got != want {
		t.Errorf("Hash(seedling) = %d, want %d", got, want)
	}
}

func TestNext_FirstValue(t *testing.T) {
	src := New(0)
	want := 49297.0 / 233280.0
	if got := src.Next(); got != want {
		t.Errorf("Next() = %v, want %v", got, want)
	}
	if src.State() != 49297 {
		t.Errorf("State() = %d, want 49297", src.State())
	}
}

func TestNext_Range(t *testing.T) {
	src := FromString("range-check")
	for i := 0; i < 5000; i++ {
		v := src.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Next() = %v, should be in [0, 1)", v)
		}
	}
}

func TestNew_LargeSeedMatchesReduced(t *testing.T) {
	big := New(2147483647)
	small := New(2147483647 % modulus)
	for i := 0; i < 20; i++ {
		if a, b := big.Next(), small.Next(); a != b {
			t.Fatalf("step %d: %v != %v", i, a, b)
		}
	}
}

func TestNew_NegativeSeed(t *testing.T) {
	neg := New(-1234)
	pos := New(1234)
	for i := 0; i < 10; i++ {
		if a, b := neg.Next(), pos.Next(); a != b {
			t.Fatalf("step %d: %v != %v", i, a, b)
		}
	}
	if v := New(math.MinInt64).Next(); v < 0 || v >= 1 {
		t.Errorf("New(MinInt64).Next() = %v, should be in [0, 1)", v)
	}
}

func TestDeterminism(t *testing.T) {
	a := FromString("growth-1")
	b := FromString("growth-1")
	for i := 0; i < 100; i++ {
		if va, vb := a.Next(), b.Next(); va != vb {
			t.Fatalf("step %d: %v != %v", i, va, vb)
		}
	}

	c := FromString("growth-2")
	a = FromString("growth-1")
	different := false
	for i := 0; i < 10; i++ {
		if a.Next() != c.Next() {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different sequences")
	}
}

func TestRange(t *testing.T) {
	src := New(7)
	for i := 0; i < 1000; i++ {
		v := src.Range(-10, 10)
		if v < -10 || v >= 10 {
			t.Fatalf("Range(-10, 10) = %v", v)
		}
	}
	if v := src.Range(3, 3); v != 3 {
		t.Errorf("Range(3, 3) = %v, want 3", v)
	}
}

func TestIntRange(t *testing.T) {
	src := New(99)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := src.IntRange(0, 4)
		if v < 0 || v > 4 {
			t.Fatalf("IntRange(0, 4) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("IntRange(0, 4) produced %d distinct values, want 5", len(seen))
	}
}

func TestWobble_ZeroAmount(t *testing.T) {
	src := FromString("any")
	for i := 0; i < 50; i++ {
		if got := src.Wobble(10, 0); got != 10 {
			t.Fatalf("Wobble(10, 0) = %v, want 10", got)
		}
	}
}

func TestWobble_Bounds(t *testing.T) {
	src := New(1)
	before := src.State()
	for i := 0; i < 1000; i++ {
		v := src.Wobble(5, 2)
		if v < 4 || v >= 6 {
			t.Fatalf("Wobble(5, 2) = %v, outside [4, 6)", v)
		}
	}
	if src.State() == before {
		t.Error("Wobble() should advance the register")
	}
}
