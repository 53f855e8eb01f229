package modes

// AltitudeUnit distinguishes the unit a DecodedAltitude is expressed in.
type AltitudeUnit int

const (
	Feet AltitudeUnit = iota
	Metres
)

func (u AltitudeUnit) String() string {
	if u == Metres {
		return "m"
	}
	return "ft"
}

// DecodedAltitude is the result of resolving an AltitudeCode13 or
// AltitudeCode12 to a concrete scalar value.
type DecodedAltitude struct {
	Altitude int32
	Unit     AltitudeUnit
}

// AsFeet converts the decoded altitude to feet regardless of its native
// unit.
func (d DecodedAltitude) AsFeet() float64 {
	if d.Unit == Feet {
		return float64(d.Altitude)
	}
	return float64(d.Altitude) / 0.3048
}

// AltitudeCode13 is the 13-bit altitude field carried by DF 0/4/16/20
// surveillance replies. Its M and Q bits select between metric, 25-ft
// Q-bit, and Gillham Gray-coded 100-ft encodings.
type AltitudeCode13 uint16

const altitude13Mask = 0x1FFF

// NewAltitudeCode13 masks word to its 13-bit range.
func NewAltitudeCode13(word uint16) AltitudeCode13 {
	return AltitudeCode13(word & altitude13Mask)
}

// AltitudeCode13FromU16 checks that word fits in 13 bits.
func AltitudeCode13FromU16(word uint16) (AltitudeCode13, bool) {
	if word > altitude13Mask {
		return 0, false
	}
	return AltitudeCode13(word), true
}

const (
	altitude13MBit = 0x0040
	altitude13QBit = 0x0010
)

// Decode resolves the altitude code to a concrete value. It returns false
// for the two "no altitude" sentinels (0 and 0x1FFF) and for a Gillham
// pattern that fails to resolve to a legal Gray code.
func (a AltitudeCode13) Decode() (DecodedAltitude, bool) {
	word := uint16(a)
	if word == 0 || word == altitude13Mask {
		return DecodedAltitude{}, false
	}

	mBit := word&altitude13MBit != 0
	qBit := word&altitude13QBit != 0

	if mBit {
		// Metric altitude: remaining 11 bits (M and Q removed) are metres.
		n := ((word & 0b1111110000000) >> 2) | ((word & 0b0000000100000) >> 1) | (word & 0b0000000001111)
		return DecodedAltitude{Altitude: int32(n), Unit: Metres}, true
	}

	if qBit {
		n := ((word & 0b1111110000000) >> 2) | ((word & 0b0000000100000) >> 1) | (word & 0b0000000001111)
		return DecodedAltitude{Altitude: int32(n)*25 - 1000, Unit: Feet}, true
	}

	feet, ok := decodeGillhamAC13(word)
	if !ok {
		return DecodedAltitude{}, false
	}
	return DecodedAltitude{Altitude: feet, Unit: Feet}, true
}

// AltitudeType distinguishes the two 12-bit ADS-B altitude encodings: the
// barometric field shared by type codes 9-18 and the GNSS-height field
// shared by type codes 20-22.
type AltitudeType int

const (
	AltitudeBarometric AltitudeType = iota
	AltitudeGnss
)

// AltitudeCode12 is the 12-bit altitude field carried by airborne-position
// ADS-B messages (type codes 9-22).
type AltitudeCode12 uint16

const altitude12Mask = 0x0FFF

// NewAltitudeCode12 masks code to its 12-bit range.
func NewAltitudeCode12(code uint16) AltitudeCode12 {
	return AltitudeCode12(code & altitude12Mask)
}

// AltitudeCode12FromU16 checks that code fits in 12 bits.
func AltitudeCode12FromU16(code uint16) (AltitudeCode12, bool) {
	if code > altitude12Mask {
		return 0, false
	}
	return AltitudeCode12(code), true
}

const altitude12QBit = 0x0010

// Decode resolves the 12-bit altitude code for the given AltitudeType.
// code == 0 means "unavailable" and returns false. GNSS-typed codes are
// reported in metres; barometric codes in feet.
func (a AltitudeCode12) Decode(kind AltitudeType) (DecodedAltitude, bool) {
	code := uint16(a)
	if code == 0 {
		return DecodedAltitude{}, false
	}

	unit := Feet
	if kind == AltitudeGnss {
		unit = Metres
	}

	if code&altitude12QBit != 0 {
		n := ((code >> 1) & 0x7F0) | (code & 0x0F)
		return DecodedAltitude{Altitude: int32(n)*25 - 1000, Unit: unit}, true
	}

	// Gillham path: the 12-bit code omits the M bit present in the
	// 13-bit surveillance field; fold in a zero M bit (between B1 and
	// A4) before reusing the shared Gillham decoder.
	word13 := (code & 0x003F) | ((code & 0x0FC0) << 1)
	feet, ok := decodeGillhamAC13(word13)
	if !ok {
		return DecodedAltitude{}, false
	}
	return DecodedAltitude{Altitude: feet, Unit: unit}, true
}
