package modes

// AdsbMessage is the tagged union over the ADS-B "ME" extended-squitter
// payload (7 bytes), keyed by the 5-bit type code in its first byte. Every
// type code in 0-31 resolves to exactly one variant below; combinations the
// standard has not assigned decode to Reserved rather than erroring, since
// an unassigned type code is valid wire traffic, not a malformed frame.
type AdsbMessage interface {
	TypeCode() uint8
}

// NoPosition is type code 0: the aircraft has no position available.
type NoPosition struct{}

func (NoPosition) TypeCode() uint8 { return 0 }

// AircraftIdentification is type code 1-4: callsign and wake-vortex
// category.
type AircraftIdentification struct {
	Category WakeVortexCategory
	Callsign Callsign
}

func (m AircraftIdentification) TypeCode() uint8 { return m.Category.TypeCode }

// SurfacePosition is type code 5-8: on-ground movement, track, and CPR
// position.
type SurfacePosition struct {
	TypeCodeValue  uint8
	Movement       Movement
	TrackAvailable bool
	Track          GroundTrack
	Time           bool
	Position       Cpr
}

func (m SurfacePosition) TypeCode() uint8 { return m.TypeCodeValue }

// AirbornePosition is type code 9-18 (barometric altitude) or 20-22 (GNSS
// altitude): surveillance status, altitude, and CPR position.
type AirbornePosition struct {
	TypeCodeValue      uint8
	SurveillanceStatus SurveillanceStatus
	NicSupplementB     bool
	Altitude           AltitudeCode12
	AltitudeType       AltitudeType
	Time               bool // UTC-synchronized time bit
	Position           Cpr
}

func (m AirbornePosition) TypeCode() uint8 { return m.TypeCodeValue }

// AirborneVelocitySubtype distinguishes the four airborne-velocity
// sub-types.
type AirborneVelocitySubtype uint8

const (
	VelocityGroundSpeedNormal AirborneVelocitySubtype = iota + 1
	VelocityGroundSpeedSupersonic
	VelocityAirspeedNormal
	VelocityAirspeedSupersonic
)

// AirborneVelocity is type code 19: ground-speed or airspeed velocity,
// vertical rate, and GNSS/barometric altitude difference.
type AirborneVelocity struct {
	Subtype     AirborneVelocitySubtype
	Uncertainty NavigationUncertaintyCategory

	// Populated when Subtype is a ground-speed variant.
	EastWestSign   bool // true = west
	EastVelocity   Velocity
	NorthSouthSign bool // true = south
	NorthVelocity  Velocity

	// Populated when Subtype is an airspeed variant.
	HeadingAvailable bool
	Heading          MagneticHeading
	Airspeed         Velocity
	IsTrueAirspeed   bool

	VerticalRateSource  bool // true = GNSS, false = barometric
	VerticalRateSign    bool // true = descending
	VerticalRate        VerticalRateValue
	AltitudeDifference  AltitudeDifferenceValue
	AltitudeDiffIsBelow bool
}

func (AirborneVelocity) TypeCode() uint8 { return 19 }

// GroundSpeed resolves the decoded east/west and north/south velocity
// components to a scalar ground speed in knots. It returns false when
// either component is unavailable or the subtype is not a ground-speed one.
func (v AirborneVelocity) GroundSpeed() (float64, bool) {
	if v.Subtype != VelocityGroundSpeedNormal && v.Subtype != VelocityGroundSpeedSupersonic {
		return 0, false
	}
	supersonic := v.Subtype == VelocityGroundSpeedSupersonic
	ew, okEw := v.EastVelocity.AsKnots(supersonic)
	ns, okNs := v.NorthVelocity.AsKnots(supersonic)
	if !okEw || !okNs {
		return 0, false
	}
	return hypot(ew, ns), true
}

func hypot(a, b float64) float64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	// Avoid importing math for a single call site; this is the plain square
	// root of the sum of squares, without the scaling math.Hypot uses to
	// guard against overflow, which the 10-bit velocity domain never needs.
	return sqrt(a*a + b*b)
}

func sqrt(x float64) float64 {
	if x == 0 {
		return 0
	}
	z := x
	for i := 0; i < 20; i++ {
		z -= (z*z - x) / (2 * z)
	}
	return z
}

// AircraftStatus is type code 28: emergency/priority status (sub-type 1) or
// a TCAS resolution advisory report (sub-type 2).
type AircraftStatus struct {
	Subtype            uint8
	Emergency          EmergencyPriorityStatus
	Identity           Squawk
	ResolutionAdvisory *TcasResolutionAdvisory
}

func (AircraftStatus) TypeCode() uint8 { return 28 }

// TcasResolutionAdvisory is the sub-type 2 payload of AircraftStatus.
type TcasResolutionAdvisory struct {
	ActiveRaBits      uint16
	RaTerminated      bool
	MultipleThreats   bool
	ThreatTypeIndicator uint8
	ThreatIdentityData  uint32
}

// TargetStateAndStatusInformation is type code 29: selected
// altitude/heading and the autopilot/TCAS mode state the aircraft is
// currently flying under.
type TargetStateAndStatusInformation struct {
	SubtypeVersion       uint8
	SelectedAltitude     uint16
	IsFmsAltitude        bool
	BarometricSetting    uint16
	SelectedHeading      uint16
	HeadingAvailable     bool
	NacP                 uint8
	Nic                  uint8
	BarometricAltIntegrity bool
	TcasOperational      bool
	AutopilotEngaged     bool
	VnavEngaged          bool
	AltitudeHoldActive   bool
	ApproachModeActive   bool
	LnavEngaged          bool
}

func (TargetStateAndStatusInformation) TypeCode() uint8 { return 29 }

// AircraftOperationalStatus is type code 31: capability-class and
// operational-mode bitmasks, reported separately for airborne (sub-type 0)
// and surface (sub-type 1) vehicles.
type AircraftOperationalStatus struct {
	Subtype             uint8
	CapabilityClass     uint16
	OperationalMode     uint16
	Version             uint8
	NicSupplementA      bool
	NavigationalAccuracy uint8
	GeometricVerticalAccuracy uint8
	SourceIntegrityLevel uint8
	BarometricAltIntegrity bool
	HorizontalReferenceDirection bool
	SilSupplement       bool
}

func (AircraftOperationalStatus) TypeCode() uint8 { return 31 }

// SurfaceSystemMessage is type code 24: reserved surface-system status
// traffic, preserved verbatim.
type SurfaceSystemMessage struct {
	Subtype uint8
	Data    [6]byte
}

func (m SurfaceSystemMessage) TypeCode() uint8 { return 24 }

// TestMessage is type code 23: a test/calibration squitter.
type TestMessage struct {
	Subtype  uint8
	Identity Squawk
}

func (TestMessage) TypeCode() uint8 { return 23 }

// Reserved is any type code the standard has not assigned, or has assigned
// but left undefined for the given sub-type.
type Reserved struct {
	TypeCodeValue uint8
	Data          [6]byte
}

func (r Reserved) TypeCode() uint8 { return r.TypeCodeValue }

// decodeAdsbMessage dispatches a 7-byte ME field to its typed payload by
// type code (top 5 bits of the first byte), further dispatching on
// sub-type where the standard requires it.
func decodeAdsbMessage(me []byte) (AdsbMessage, error) {
	tc := me[0] >> 3
	switch {
	case tc == 0:
		return NoPosition{}, nil
	case tc >= 1 && tc <= 4:
		return decodeAircraftIdentification(me, tc)
	case tc >= 5 && tc <= 8:
		return decodeSurfacePosition(me, tc)
	case tc >= 9 && tc <= 18:
		return decodeAirbornePosition(me, tc, AltitudeBarometric)
	case tc == 19:
		return decodeAirborneVelocity(me)
	case tc >= 20 && tc <= 22:
		return decodeAirbornePosition(me, tc, AltitudeGnss)
	case tc == 23:
		return decodeTestMessage(me)
	case tc == 24:
		return decodeSurfaceSystemMessage(me)
	case tc == 28:
		return decodeAircraftStatus(me)
	case tc == 29:
		return decodeTargetStateAndStatus(me)
	case tc == 31:
		return decodeAircraftOperationalStatus(me)
	default:
		var data [6]byte
		copy(data[:], me[1:7])
		return Reserved{TypeCodeValue: tc, Data: data}, nil
	}
}

func decodeAircraftIdentification(me []byte, tc uint8) (AdsbMessage, error) {
	var cs [6]byte
	copy(cs[:], me[1:7])
	callsign, err := CallsignFromBytes(cs)
	if err != nil {
		return nil, err
	}
	return AircraftIdentification{
		Category: WakeVortexCategory{TypeCode: tc, SubType: me[0] & 0x7},
		Callsign: callsign,
	}, nil
}

func decodeSurfacePosition(me []byte, tc uint8) (AdsbMessage, error) {
	movement := NewMovement((me[0]&0x7)<<4 | (me[1]&0xF0)>>4)
	trackAvail := me[1]&0x08 != 0
	track := NewGroundTrack((me[1]&0x07)<<4 | (me[2]&0xF0)>>4)

	bits := newBitCursor(me[2:7])
	bits.skip(4) // already consumed as part of the movement/track bytes above
	timeBit := bits.take(1) != 0
	cpr := decodeCpr(bits)

	return SurfacePosition{
		TypeCodeValue:  tc,
		Movement:       movement,
		TrackAvailable: trackAvail,
		Track:          track,
		Time:           timeBit,
		Position:       cpr,
	}, nil
}

func decodeAirbornePosition(me []byte, tc uint8, kind AltitudeType) (AdsbMessage, error) {
	ss := NewSurveillanceStatus((me[0] & 0x06) >> 1)
	nicB := me[0]&0x01 != 0
	alt := NewAltitudeCode12(uint16(me[1])<<4 | uint16(me[2])>>4)

	bits := newBitCursor(me[2:7])
	bits.skip(4)
	timeBit := bits.take(1) != 0
	cpr := decodeCpr(bits)

	return AirbornePosition{
		TypeCodeValue:      tc,
		SurveillanceStatus: ss,
		NicSupplementB:     nicB,
		Altitude:           alt,
		AltitudeType:       kind,
		Time:               timeBit,
		Position:           cpr,
	}, nil
}

func decodeAirborneVelocity(me []byte) (AdsbMessage, error) {
	subtype := AirborneVelocitySubtype(me[0] & 0x7)
	if subtype < 1 || subtype > 4 {
		var data [6]byte
		copy(data[:], me[1:7])
		return Reserved{TypeCodeValue: 19, Data: data}, nil
	}
	bits := newBitCursor(me[1:7])
	bits.skip(2) // intent-change and IFR-capability/reserved bits
	nuc := NewNavigationUncertaintyCategory(uint8(bits.take(3)))

	out := AirborneVelocity{Subtype: subtype, Uncertainty: nuc}

	switch subtype {
	case VelocityGroundSpeedNormal, VelocityGroundSpeedSupersonic:
		out.EastWestSign = bits.take(1) != 0
		out.EastVelocity = NewVelocity(uint16(bits.take(10)))
		out.NorthSouthSign = bits.take(1) != 0
		out.NorthVelocity = NewVelocity(uint16(bits.take(10)))
	case VelocityAirspeedNormal, VelocityAirspeedSupersonic:
		out.HeadingAvailable = bits.take(1) != 0
		out.Heading = NewMagneticHeading(uint16(bits.take(10)))
		out.IsTrueAirspeed = bits.take(1) != 0
		out.Airspeed = NewVelocity(uint16(bits.take(10)))
	default:
		bits.skip(22)
	}

	out.VerticalRateSource = bits.take(1) != 0
	out.VerticalRateSign = bits.take(1) != 0
	out.VerticalRate = NewVerticalRateValue(uint16(bits.take(9)))
	bits.skip(2) // reserved
	out.AltitudeDiffIsBelow = bits.take(1) != 0
	out.AltitudeDifference = NewAltitudeDifferenceValue(uint8(bits.take(7)))

	return out, nil
}

func decodeAircraftStatus(me []byte) (AdsbMessage, error) {
	subtype := me[0] & 0x7
	out := AircraftStatus{Subtype: subtype}
	switch subtype {
	case 1:
		out.Emergency = EmergencyPriorityStatus((me[1] >> 5) & 0x7)
		idWord := uint16(me[1]&0x1F)<<8 | uint16(me[2])
		squawk, _ := decodeGillhamID13(idWord)
		out.Identity = squawk
	case 2:
		bits := newBitCursor(me[1:7])
		ra := uint16(bits.take(14))
		bits.skip(4) // resolution advisory complements
		terminated := bits.take(1) != 0
		multi := bits.take(1) != 0
		threatType := uint8(bits.take(2))
		threatId := bits.take(26)
		out.ResolutionAdvisory = &TcasResolutionAdvisory{
			ActiveRaBits:        ra,
			RaTerminated:        terminated,
			MultipleThreats:     multi,
			ThreatTypeIndicator: threatType,
			ThreatIdentityData:  threatId,
		}
	default:
		var data [6]byte
		copy(data[:], me[1:7])
		return Reserved{TypeCodeValue: 28, Data: data}, nil
	}
	return out, nil
}

func decodeTargetStateAndStatus(me []byte) (AdsbMessage, error) {
	bits := newBitCursor(me[0:7])
	bits.skip(5) // type code, fixed at 29
	subVer := uint8(bits.take(3))
	if subVer>>1 != 1 { // only sub_type 1 (subVer 2 or 3) is defined
		var data [6]byte
		copy(data[:], me[1:7])
		return Reserved{TypeCodeValue: 29, Data: data}, nil
	}
	out := TargetStateAndStatusInformation{SubtypeVersion: subVer}
	out.IsFmsAltitude = bits.take(1) != 0
	out.SelectedAltitude = uint16(bits.take(11))
	out.BarometricSetting = uint16(bits.take(9))
	out.HeadingAvailable = bits.take(1) != 0
	out.SelectedHeading = uint16(bits.take(9))
	out.Nic = uint8(bits.take(4))
	out.NacP = uint8(bits.take(4))
	out.BarometricAltIntegrity = bits.take(1) != 0
	out.TcasOperational = bits.take(1) != 0
	out.AutopilotEngaged = bits.take(1) != 0
	out.VnavEngaged = bits.take(1) != 0
	out.AltitudeHoldActive = bits.take(1) != 0
	bits.skip(1) // reserved
	out.ApproachModeActive = bits.take(1) != 0
	out.LnavEngaged = bits.take(1) != 0
	bits.skip(1) // reserved
	return out, nil
}

func decodeAircraftOperationalStatus(me []byte) (AdsbMessage, error) {
	subtype := me[0] & 0x7
	bits := newBitCursor(me[1:7])
	capClass := uint16(bits.take(16))
	opMode := uint16(bits.take(16))
	if subtype > 1 {
		var data [6]byte
		copy(data[:], me[1:7])
		return Reserved{TypeCodeValue: 31, Data: data}, nil
	}
	version := uint8(bits.take(3))
	nicA := bits.take(1) != 0
	nac := uint8(bits.take(4))
	gva := uint8(bits.take(2))
	sil := uint8(bits.take(2))
	baroIntegrity := bits.take(1) != 0
	horizRefDir := bits.take(1) != 0
	silSupp := bits.take(1) != 0
	return AircraftOperationalStatus{
		Subtype:                      subtype,
		CapabilityClass:              capClass,
		OperationalMode:              opMode,
		Version:                      version,
		NicSupplementA:               nicA,
		NavigationalAccuracy:         nac,
		GeometricVerticalAccuracy:    gva,
		SourceIntegrityLevel:         sil,
		BarometricAltIntegrity:       baroIntegrity,
		HorizontalReferenceDirection: horizRefDir,
		SilSupplement:                silSupp,
	}, nil
}

func decodeSurfaceSystemMessage(me []byte) (AdsbMessage, error) {
	var data [6]byte
	copy(data[:], me[1:7])
	return SurfaceSystemMessage{Subtype: me[0] & 0x7, Data: data}, nil
}

func decodeTestMessage(me []byte) (AdsbMessage, error) {
	subtype := me[0] & 0x7
	if subtype != 0 {
		var data [6]byte
		copy(data[:], me[1:7])
		return Reserved{TypeCodeValue: 23, Data: data}, nil
	}
	idWord := uint16(me[1]&0x1F)<<8 | uint16(me[2])
	squawk, _ := decodeGillhamID13(idWord)
	return TestMessage{Subtype: subtype, Identity: squawk}, nil
}
