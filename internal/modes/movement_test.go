package modes

import "testing"

func TestMovementBoundaries(t *testing.T) {
	cases := []struct {
		code      uint8
		wantEigth uint32
		wantOk    bool
	}{
		{0, 0, false},
		{1, 0, true},
		{2, 1, true},
		{8, 7, true},
		{9, 8, true},
		{124, 175 * 8, true},
		{125, 0, false},
		{127, 0, false},
	}
	for _, c := range cases {
		eigth, ok := NewMovement(c.code).DecodeEighthKt()
		if ok != c.wantOk {
			t.Errorf("code %d: ok=%v, want %v", c.code, ok, c.wantOk)
			continue
		}
		if ok && eigth != c.wantEigth {
			t.Errorf("code %d: got %d/8kt, want %d/8kt", c.code, eigth, c.wantEigth)
		}
	}
}

func TestVelocityAsKnots(t *testing.T) {
	v := NewVelocity(0)
	if _, ok := v.AsKnots(false); ok {
		t.Error("code 0 should be unavailable")
	}
	v = NewVelocity(2)
	kt, ok := v.AsKnots(false)
	if !ok || kt != 1 {
		t.Errorf("code 2: got (%v,%v), want (1,true)", kt, ok)
	}
	kt, ok = v.AsKnots(true)
	if !ok || kt != 4 {
		t.Errorf("supersonic code 2: got (%v,%v), want (4,true)", kt, ok)
	}
}

func TestVerticalRateAsFtPerMin(t *testing.T) {
	r := NewVerticalRateValue(0)
	if _, ok := r.AsFtPerMin(); ok {
		t.Error("code 0 should be unavailable")
	}
	r = NewVerticalRateValue(1)
	fpm, ok := r.AsFtPerMin()
	if !ok || fpm != 0 {
		t.Errorf("code 1: got (%v,%v), want (0,true)", fpm, ok)
	}
}
