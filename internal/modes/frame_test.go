package modes

import (
	"testing"
)

func TestDownlinkFormatFromByte(t *testing.T) {
	cases := []struct {
		name string
		byte byte
		want DownlinkFormat
	}{
		{"DF0", 0x00, DfShortAirAirSurveillance},
		{"DF4", 0x20, DfSurveillanceAltitudeReply},
		{"DF5", 0x28, DfSurveillanceIdentityReply},
		{"DF11", 0x58, DfAllCallReply},
		{"DF16", 0x80, DfLongAirAirSurveillance},
		{"DF17", 0x8D & 0xF8, DfExtendedSquitter},
		{"DF18", 0x90, DfExtendedSquitterNonTranspdr},
		{"DF19", 0x98, DfMilitaryExtendedSquitter},
		{"DF20", 0xA0, DfCommBAltitudeReply},
		{"DF21", 0xA8, DfCommBIdentityReply},
		{"DF24 low", 0xC0, DfCommD},
		{"DF31 high bits", 0xFF, DfCommD},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := downlinkFormatFromByte(c.byte)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("byte 0x%02x: got %v, want %v", c.byte, got, c.want)
			}
		})
	}
}

func TestDecodeEmptyBufferIsNoDf(t *testing.T) {
	_, err := Decode(nil)
	de, ok := err.(DecodeError)
	if !ok || de.Kind != ErrNoDf {
		t.Fatalf("expected NoDf error, got %v", err)
	}
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	// DF11 (all-call reply) needs 7 bytes; give it 3.
	_, err := Decode([]byte{0x58, 0x00, 0x00})
	de, ok := err.(DecodeError)
	if !ok || de.Kind != ErrTruncated {
		t.Fatalf("expected Truncated error, got %v", err)
	}
	if de.Expected != LengthShort || de.Actual != 3 {
		t.Errorf("unexpected truncation details: %+v", de)
	}
}

func TestDecodeInvalidDf(t *testing.T) {
	// 0x48 >> 3 == 9, not a known downlink format.
	_, err := Decode([]byte{0x48, 0, 0, 0, 0, 0, 0})
	de, ok := err.(DecodeError)
	if !ok || de.Kind != ErrInvalidDf {
		t.Fatalf("expected InvalidDf error, got %v", err)
	}
}

func TestDecodeAllCallReply(t *testing.T) {
	// DF11, capability 5, ICAO 7C49F8, parity zeroed.
	msg := []byte{0x5D, 0x7C, 0x49, 0xF8, 0x00, 0x00, 0x00}
	frame, err := Decode(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	acr, ok := frame.(AllCallReply)
	if !ok {
		t.Fatalf("expected AllCallReply, got %T", frame)
	}
	if acr.Capability != CapabilityLevel2Airborne {
		t.Errorf("capability: got %v, want %v", acr.Capability, CapabilityLevel2Airborne)
	}
	if acr.Address.String() != "7c49f8" {
		t.Errorf("address: got %s, want 7c49f8", acr.Address)
	}
}

func TestFrameLengthsMatchDispatch(t *testing.T) {
	short := []DownlinkFormat{DfShortAirAirSurveillance, DfSurveillanceAltitudeReply, DfSurveillanceIdentityReply, DfAllCallReply, DfCommD}
	for _, df := range short {
		if df.FrameLength() != LengthShort {
			t.Errorf("%v: expected short length", df)
		}
	}
	long := []DownlinkFormat{DfLongAirAirSurveillance, DfExtendedSquitter, DfExtendedSquitterNonTranspdr, DfMilitaryExtendedSquitter, DfCommBAltitudeReply, DfCommBIdentityReply}
	for _, df := range long {
		if df.FrameLength() != LengthLong {
			t.Errorf("%v: expected long length", df)
		}
	}
}

func TestDecodeNeverPanics(t *testing.T) {
	// Exhaustively fuzz-free sanity: every possible first byte value must
	// either decode or return a DecodeError, never panic, for both the
	// empty remainder and a full-length all-zero remainder.
	for b := 0; b < 256; b++ {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("byte 0x%02x panicked: %v", b, r)
				}
			}()
			_, _ = Decode([]byte{byte(b)})
			_, _ = Decode(append([]byte{byte(b)}, make([]byte, 13)...))
		}()
	}
}
