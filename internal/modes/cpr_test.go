package modes

import "testing"

func TestDecodeCprFormatBit(t *testing.T) {
	// Format bit set, lat/lon all-ones (masked to 17 bits each).
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	cpr := decodeCpr(newBitCursor(buf))
	if cpr.Format != CprOdd {
		t.Errorf("expected odd format, got %v", cpr.Format)
	}
	if cpr.Lat != cpr17Mask || cpr.Lon != cpr17Mask {
		t.Errorf("expected lat/lon fully set, got lat=%d lon=%d", cpr.Lat, cpr.Lon)
	}
}

func TestDecodeCprEvenFormat(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x00, 0x00}
	cpr := decodeCpr(newBitCursor(buf))
	if cpr.Format != CprEven {
		t.Errorf("expected even format, got %v", cpr.Format)
	}
	if cpr.Lat != 0 || cpr.Lon != 0 {
		t.Errorf("expected lat/lon zero, got lat=%d lon=%d", cpr.Lat, cpr.Lon)
	}
}

func TestBitCursorTakeMsbFirst(t *testing.T) {
	c := newBitCursor([]byte{0b10110000})
	if v := c.take(4); v != 0b1011 {
		t.Errorf("got %04b, want 1011", v)
	}
	if v := c.take(4); v != 0b0000 {
		t.Errorf("got %04b, want 0000", v)
	}
}
