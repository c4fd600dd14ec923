package core

import "testing"

func TestSimpleRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
	}
}

func TestSimpleRNGRanges(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if n := r.Intn(5); n < 0 || n >= 5 {
			t.Fatalf("Intn(5) = %d", n)
		}
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v", f)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should be 0")
	}
}

func TestBetweenInclusive(t *testing.T) {
	r := NewRNG(1)
	seenLo, seenHi := false, false
	for i := 0; i < 2000; i++ {
		n := Between(r, 40, 60)
		if n < 40 || n > 60 {
			t.Fatalf("Between(40, 60) = %d", n)
		}
		seenLo = seenLo || n == 40
		seenHi = seenHi || n == 60
	}
	if !seenLo || !seenHi {
		t.Errorf("bounds not reached: lo=%v hi=%v", seenLo, seenHi)
	}
}

func TestFloatBetween(t *testing.T) {
	r := NewRNG(5)
	for i := 0; i < 1000; i++ {
		if v := FloatBetween(r, 50, 750); v < 50 || v >= 750 {
			t.Fatalf("FloatBetween(50, 750) = %v", v)
		}
	}
}

func TestPick(t *testing.T) {
	r := NewRNG(3)
	for i := 0; i < 100; i++ {
		if n := Pick(r, []int{20, 50}); n != 20 && n != 50 {
			t.Fatalf("Pick = %d", n)
		}
	}
	if Pick(r, nil) != 0 {
		t.Error("Pick(nil) should be 0")
	}
}
