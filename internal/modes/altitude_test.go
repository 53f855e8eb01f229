package modes

import "testing"

func TestAltitudeCode13QBitTable(t *testing.T) {
	cases := []struct {
		code uint16
		feet int32
	}{
		{6320, 38600},
		{412, 1700},
		{442, 2050},
	}
	for _, c := range cases {
		ac := NewAltitudeCode13(c.code)
		decoded, ok := ac.Decode()
		if !ok {
			t.Fatalf("code %d: expected a decode", c.code)
		}
		if decoded.Unit != Feet || decoded.Altitude != c.feet {
			t.Errorf("code %d: got %d%s, want %dft", c.code, decoded.Altitude, decoded.Unit, c.feet)
		}
	}
}

func TestAltitudeCode13Sentinels(t *testing.T) {
	if _, ok := NewAltitudeCode13(0).Decode(); ok {
		t.Error("code 0 should not decode")
	}
	if _, ok := NewAltitudeCode13(altitude13Mask).Decode(); ok {
		t.Error("all-ones code should not decode")
	}
}

func TestAltitudeCode13MetricBranch(t *testing.T) {
	// M bit (0x0040) set, Q bit clear: metric path.
	ac := NewAltitudeCode13(0x0040 | 0x0005)
	decoded, ok := ac.Decode()
	if !ok {
		t.Fatal("expected a decode")
	}
	if decoded.Unit != Metres {
		t.Errorf("expected metres, got %s", decoded.Unit)
	}
}

func TestGillhamAC13IsDeterministic(t *testing.T) {
	// A Gillham-coded (M=0, Q=0) field resolves via the Gray-code table
	// rather than the Q-bit formula.
	word := uint16(0x0921) // arbitrary legal-looking Gillham pattern
	_, _ = decodeGillhamAC13(word)
	// No panic and a deterministic, idempotent result is the property
	// under test here; Gillham test vectors are not given independently
	// of the Q-bit ones, so we assert stability rather than a fixed value.
	n1, ok1 := decodeGillhamAC13(word)
	n2, ok2 := decodeGillhamAC13(word)
	if ok1 != ok2 || n1 != n2 {
		t.Errorf("decodeGillhamAC13 not deterministic: (%d,%v) vs (%d,%v)", n1, ok1, n2, ok2)
	}
}
