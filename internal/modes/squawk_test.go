package modes

import "testing"

func TestSquawkStringRoundTrip(t *testing.T) {
	for s := 0; s < 4096; s += 37 {
		squawk, ok := SquawkFromU16(uint16(s))
		if !ok {
			t.Fatalf("%d: expected to fit in 12 bits", s)
		}
		parsed, err := ParseSquawk(squawk.String())
		if err != nil {
			t.Fatalf("%d: parse %q: %v", s, squawk.String(), err)
		}
		if parsed != squawk {
			t.Errorf("%d: round trip mismatch, got %v want %v", s, parsed, squawk)
		}
	}
}

func TestSquawkOutOfRange(t *testing.T) {
	if _, ok := SquawkFromU16(4096); ok {
		t.Error("4096 should not fit a 12-bit squawk")
	}
}

func TestEmergencyPriorityStatusFromSquawk(t *testing.T) {
	cases := []struct {
		octal string
		want  EmergencyPriorityStatus
	}{
		{"7500", EmergencyUnlawfulInterference},
		{"7600", EmergencyNoCommunications},
		{"7700", EmergencyGeneral},
		{"1200", EmergencyNone},
		{"0000", EmergencyNone},
	}
	for _, c := range cases {
		squawk, err := ParseSquawk(c.octal)
		if err != nil {
			t.Fatalf("%s: %v", c.octal, err)
		}
		if got := EmergencyPriorityStatusFromSquawk(squawk); got != c.want {
			t.Errorf("%s: got %v, want %v", c.octal, got, c.want)
		}
	}
}
