package modes

const (
	LengthShort = 7
	LengthLong  = 14
)

// DownlinkFormat is the 5-bit tag occupying the top bits of byte 0 that
// selects which of the eleven frame variants a buffer decodes to.
type DownlinkFormat uint8

const (
	DfShortAirAirSurveillance     DownlinkFormat = 0
	DfSurveillanceAltitudeReply   DownlinkFormat = 4
	DfSurveillanceIdentityReply   DownlinkFormat = 5
	DfAllCallReply                DownlinkFormat = 11
	DfLongAirAirSurveillance      DownlinkFormat = 16
	DfExtendedSquitter            DownlinkFormat = 17
	DfExtendedSquitterNonTranspdr DownlinkFormat = 18
	DfMilitaryExtendedSquitter    DownlinkFormat = 19
	DfCommBAltitudeReply          DownlinkFormat = 20
	DfCommBIdentityReply          DownlinkFormat = 21
	DfCommD                       DownlinkFormat = 24
)

func (d DownlinkFormat) String() string {
	switch d {
	case DfShortAirAirSurveillance:
		return "short-air-air-surveillance"
	case DfSurveillanceAltitudeReply:
		return "surveillance-altitude-reply"
	case DfSurveillanceIdentityReply:
		return "surveillance-identity-reply"
	case DfAllCallReply:
		return "all-call-reply"
	case DfLongAirAirSurveillance:
		return "long-air-air-surveillance"
	case DfExtendedSquitter:
		return "extended-squitter"
	case DfExtendedSquitterNonTranspdr:
		return "extended-squitter-non-transponder"
	case DfMilitaryExtendedSquitter:
		return "military-extended-squitter"
	case DfCommBAltitudeReply:
		return "comm-b-altitude-reply"
	case DfCommBIdentityReply:
		return "comm-b-identity-reply"
	case DfCommD:
		return "comm-d"
	default:
		return "unknown"
	}
}

// FrameLength reports the wire length this downlink format requires.
func (d DownlinkFormat) FrameLength() int {
	switch d {
	case DfShortAirAirSurveillance, DfSurveillanceAltitudeReply, DfSurveillanceIdentityReply, DfAllCallReply, DfCommD:
		return LengthShort
	default:
		return LengthLong
	}
}

// downlinkFormatFromByte classifies the first frame byte into its
// downlink format. Values 24-31 (top two bits both set) always collapse
// to CommD, taking priority over the plain 5-bit field.
func downlinkFormatFromByte(byte0 byte) (DownlinkFormat, error) {
	if byte0&0xC0 == 0xC0 {
		return DfCommD, nil
	}
	df := DownlinkFormat(byte0 >> 3)
	switch df {
	case DfShortAirAirSurveillance, DfSurveillanceAltitudeReply, DfSurveillanceIdentityReply,
		DfAllCallReply, DfLongAirAirSurveillance, DfExtendedSquitter, DfExtendedSquitterNonTranspdr,
		DfMilitaryExtendedSquitter, DfCommBAltitudeReply, DfCommBIdentityReply:
		return df, nil
	default:
		return 0, InvalidDfError(int(df))
	}
}

// Frame is the tagged union over the eleven Mode S downlink format
// variants. Every concrete type below implements it.
type Frame interface {
	DownlinkFormat() DownlinkFormat
	Length() int
}

// Decode consumes buf (exactly 7 or 14 bytes, depending on its downlink
// format) and returns the decoded Frame. It never panics: every rejection
// is reported as a DecodeError.
func Decode(buf []byte) (Frame, error) {
	if len(buf) == 0 {
		return nil, NoDfError()
	}
	df, err := downlinkFormatFromByte(buf[0])
	if err != nil {
		return nil, err
	}
	want := df.FrameLength()
	if len(buf) < want {
		return nil, TruncatedError(want, len(buf))
	}
	msg := buf[:want]

	switch df {
	case DfShortAirAirSurveillance:
		return decodeShortAirAirSurveillance(msg)
	case DfSurveillanceAltitudeReply:
		return decodeSurveillanceAltitudeReply(msg)
	case DfSurveillanceIdentityReply:
		return decodeSurveillanceIdentityReply(msg)
	case DfAllCallReply:
		return decodeAllCallReply(msg)
	case DfLongAirAirSurveillance:
		return decodeLongAirAirSurveillance(msg)
	case DfExtendedSquitter:
		return decodeExtendedSquitter(msg)
	case DfExtendedSquitterNonTranspdr:
		return decodeExtendedSquitterNonTransponder(msg)
	case DfMilitaryExtendedSquitter:
		return decodeMilitaryExtendedSquitter(msg)
	case DfCommBAltitudeReply:
		return decodeCommBAltitudeReply(msg)
	case DfCommBIdentityReply:
		return decodeCommBIdentityReply(msg)
	case DfCommD:
		return decodeCommD(msg)
	default:
		return nil, InvalidDfError(int(df))
	}
}

func parityOf(msg []byte) Parity {
	n := len(msg)
	return Parity{msg[n-3], msg[n-2], msg[n-1]}
}

func announcedIcao(msg []byte, nonIcao bool) IcaoAddress {
	return IcaoAddressFromBytes([3]byte{msg[1], msg[2], msg[3]}, nonIcao)
}

// ShortAirAirSurveillance is DF 0: ACAS air-air coordination, altitude
// only, no identity. The trailing 3 bytes are address-overlaid parity;
// recovering the ICAO from them requires the CRC repair this decoder
// deliberately does not perform.
type ShortAirAirSurveillance struct {
	VerticalStatus      VerticalStatus
	CrossLinkCapability CrossLinkCapability
	SensitivityLevel    SensitivityLevel
	ReplyInformation    ReplyInformation
	Altitude            AltitudeCode13
	Parity              Parity
}

func (ShortAirAirSurveillance) DownlinkFormat() DownlinkFormat { return DfShortAirAirSurveillance }
func (ShortAirAirSurveillance) Length() int                    { return LengthShort }

func decodeShortAirAirSurveillance(msg []byte) (Frame, error) {
	vs := NewVerticalStatus((msg[0] & 4) >> 2)
	cc := NewCrossLinkCapability((msg[0] & 2) >> 1)
	sl := NewSensitivityLevel((msg[1] & 0xE0) >> 5)
	ri := NewReplyInformation((msg[1]&7)<<1 | (msg[2]&0x80)>>7)
	ac := NewAltitudeCode13(uint16(msg[2]&0x1F)<<8 | uint16(msg[3]))
	return ShortAirAirSurveillance{
		VerticalStatus:      vs,
		CrossLinkCapability: cc,
		SensitivityLevel:    sl,
		ReplyInformation:    ri,
		Altitude:            ac,
		Parity:              parityOf(msg),
	}, nil
}

// SurveillanceAltitudeReply is DF 4.
type SurveillanceAltitudeReply struct {
	FlightStatus    FlightStatus
	DownlinkRequest DownlinkRequest
	UtilityMessage  UtilityMessage
	Altitude        AltitudeCode13
	Parity          Parity
}

func (SurveillanceAltitudeReply) DownlinkFormat() DownlinkFormat {
	return DfSurveillanceAltitudeReply
}
func (SurveillanceAltitudeReply) Length() int { return LengthShort }

func decodeSurveillanceAltitudeReply(msg []byte) (Frame, error) {
	fs := NewFlightStatus(msg[0] & 0x7)
	dr := NewDownlinkRequest((msg[1] & 0xF8) >> 3)
	um := NewUtilityMessage((msg[1]&0x7)<<3 | (msg[2]&0xE0)>>5)
	ac := NewAltitudeCode13(uint16(msg[2]&0x1F)<<8 | uint16(msg[3]))
	return SurveillanceAltitudeReply{
		FlightStatus:    fs,
		DownlinkRequest: dr,
		UtilityMessage:  um,
		Altitude:        ac,
		Parity:          parityOf(msg),
	}, nil
}

// SurveillanceIdentityReply is DF 5.
type SurveillanceIdentityReply struct {
	FlightStatus    FlightStatus
	DownlinkRequest DownlinkRequest
	UtilityMessage  UtilityMessage
	Identity        Squawk
	Ident           bool
	Parity          Parity
}

func (SurveillanceIdentityReply) DownlinkFormat() DownlinkFormat {
	return DfSurveillanceIdentityReply
}
func (SurveillanceIdentityReply) Length() int { return LengthShort }

func decodeSurveillanceIdentityReply(msg []byte) (Frame, error) {
	fs := NewFlightStatus(msg[0] & 0x7)
	dr := NewDownlinkRequest((msg[1] & 0xF8) >> 3)
	um := NewUtilityMessage((msg[1]&0x7)<<3 | (msg[2]&0xE0)>>5)
	idWord := uint16(msg[2]&0x1F)<<8 | uint16(msg[3])
	squawk, _ := decodeGillhamID13(idWord)
	return SurveillanceIdentityReply{
		FlightStatus:    fs,
		DownlinkRequest: dr,
		UtilityMessage:  um,
		Identity:        squawk,
		Ident:           identityIdentBit(idWord),
		Parity:          parityOf(msg),
	}, nil
}

// AllCallReply is DF 11.
type AllCallReply struct {
	Capability Capability
	Address    IcaoAddress
	Parity     Parity
}

func (AllCallReply) DownlinkFormat() DownlinkFormat { return DfAllCallReply }
func (AllCallReply) Length() int                    { return LengthShort }

func decodeAllCallReply(msg []byte) (Frame, error) {
	return AllCallReply{
		Capability: NewCapability(msg[0] & 7),
		Address:    announcedIcao(msg, false),
		Parity:     parityOf(msg),
	}, nil
}

// LongAirAirSurveillance is DF 16.
type LongAirAirSurveillance struct {
	VerticalStatus   VerticalStatus
	SensitivityLevel SensitivityLevel
	ReplyInformation ReplyInformation
	Altitude         AltitudeCode13
	Parity           Parity
	McpBits          [4]byte // bytes 4-7: MU/ACAS coordination payload, preserved verbatim
}

func (LongAirAirSurveillance) DownlinkFormat() DownlinkFormat { return DfLongAirAirSurveillance }
func (LongAirAirSurveillance) Length() int                    { return LengthLong }

func decodeLongAirAirSurveillance(msg []byte) (Frame, error) {
	vs := NewVerticalStatus((msg[0] & 4) >> 2)
	sl := NewSensitivityLevel((msg[1] & 0xE0) >> 5)
	ri := NewReplyInformation((msg[1]&7)<<1 | (msg[2]&0x80)>>7)
	ac := NewAltitudeCode13(uint16(msg[2]&0x1F)<<8 | uint16(msg[3]))
	var mu [4]byte
	copy(mu[:], msg[4:8])
	return LongAirAirSurveillance{
		VerticalStatus:   vs,
		SensitivityLevel: sl,
		ReplyInformation: ri,
		Altitude:         ac,
		Parity:           parityOf(msg),
		McpBits:          mu,
	}, nil
}

// ExtendedSquitter is DF 17: a transponder-originated ADS-B broadcast with
// a plaintext announced ICAO address.
type ExtendedSquitter struct {
	Capability Capability
	Address    IcaoAddress
	Message    AdsbMessage
	Parity     Parity
}

func (ExtendedSquitter) DownlinkFormat() DownlinkFormat { return DfExtendedSquitter }
func (ExtendedSquitter) Length() int                    { return LengthLong }

func decodeExtendedSquitter(msg []byte) (Frame, error) {
	cap := NewCapability(msg[0] & 7)
	addr := announcedIcao(msg, false)
	adsb, err := decodeAdsbMessage(msg[4:11])
	if err != nil {
		return nil, err
	}
	return ExtendedSquitter{
		Capability: cap,
		Address:    addr,
		Message:    adsb,
		Parity:     parityOf(msg),
	}, nil
}

// ExtendedSquitterNonTransponder is DF 18: a non-transponder-originated
// extended squitter (TIS-B/ADS-R). CodeFormat selects which of the eight
// sub-variants the payload represents; each gets its own field here so
// CodeFormat is bijective with how the frame is populated (the source
// material's CF 2/3/5 handling collapsed onto a single variant; this
// reimplementation keeps them distinct).
type ExtendedSquitterNonTransponder struct {
	CodeFormat CodeFormat
	Address    IcaoAddress
	// Message is populated for CF 0, 1, 6 (ADS-B payload).
	Message *AdsbMessage
	// TisbData is populated for CF 2, 3, 5 (TIS-B position/velocity,
	// reusing the ADS-B ME payload layout per the standard).
	TisbData *AdsbMessage
	// ManagementData is populated for CF 4 (TIS-B/ADS-R management) and
	// CF 7 (reserved): the raw 7-byte ME field, preserved verbatim.
	ManagementData [7]byte
	Parity         Parity
}

func (ExtendedSquitterNonTransponder) DownlinkFormat() DownlinkFormat {
	return DfExtendedSquitterNonTranspdr
}
func (ExtendedSquitterNonTransponder) Length() int { return LengthLong }

func decodeExtendedSquitterNonTransponder(msg []byte) (Frame, error) {
	cf := NewCodeFormat(msg[0] & 7)
	addr := announcedIcao(msg, cf.NonIcao())
	out := ExtendedSquitterNonTransponder{
		CodeFormat: cf,
		Address:    addr,
		Parity:     parityOf(msg),
	}
	switch cf {
	case CodeFormatAdsbIcao, CodeFormatAdsbNonIcao, CodeFormatAdsbRebroadcast:
		m, err := decodeAdsbMessage(msg[4:11])
		if err != nil {
			return nil, err
		}
		out.Message = &m
	case CodeFormatTisbIcao, CodeFormatTisbIcaoCoarse, CodeFormatTisbNonIcao:
		m, err := decodeAdsbMessage(msg[4:11])
		if err != nil {
			return nil, err
		}
		out.TisbData = &m
	default: // CodeFormatTisbManagement, CodeFormatReserved
		copy(out.ManagementData[:], msg[4:11])
	}
	return out, nil
}

// MilitaryExtendedSquitter is DF 19.
type MilitaryExtendedSquitter struct {
	ApplicationField uint8 // 3-bit sub-type; 0 = ADS-B
	Address          IcaoAddress
	Message          *AdsbMessage // populated when ApplicationField == 0
	ReservedData     [7]byte      // raw ME field for ApplicationField 1-7
	Parity           Parity
}

func (MilitaryExtendedSquitter) DownlinkFormat() DownlinkFormat {
	return DfMilitaryExtendedSquitter
}
func (MilitaryExtendedSquitter) Length() int { return LengthLong }

func decodeMilitaryExtendedSquitter(msg []byte) (Frame, error) {
	af := msg[0] & 7
	addr := announcedIcao(msg, false)
	out := MilitaryExtendedSquitter{
		ApplicationField: af,
		Address:          addr,
		Parity:           parityOf(msg),
	}
	if af == 0 {
		m, err := decodeAdsbMessage(msg[4:11])
		if err != nil {
			return nil, err
		}
		out.Message = &m
	} else {
		copy(out.ReservedData[:], msg[4:11])
	}
	return out, nil
}

// CommBAltitudeReply is DF 20: a surveillance altitude reply carrying a
// 56-bit Comm-B data field (MB) in place of an empty payload. MB
// sub-field decoding (BDS registers) is a collaborator concern; it is
// preserved verbatim here.
type CommBAltitudeReply struct {
	FlightStatus    FlightStatus
	DownlinkRequest DownlinkRequest
	UtilityMessage  UtilityMessage
	Altitude        AltitudeCode13
	CommB           [7]byte
	Parity          Parity
}

func (CommBAltitudeReply) DownlinkFormat() DownlinkFormat { return DfCommBAltitudeReply }
func (CommBAltitudeReply) Length() int                    { return LengthLong }

func decodeCommBAltitudeReply(msg []byte) (Frame, error) {
	fs := NewFlightStatus(msg[0] & 0x7)
	dr := NewDownlinkRequest((msg[1] & 0xF8) >> 3)
	um := NewUtilityMessage((msg[1]&0x7)<<3 | (msg[2]&0xE0)>>5)
	ac := NewAltitudeCode13(uint16(msg[2]&0x1F)<<8 | uint16(msg[3]))
	var mb [7]byte
	copy(mb[:], msg[4:11])
	return CommBAltitudeReply{
		FlightStatus:    fs,
		DownlinkRequest: dr,
		UtilityMessage:  um,
		Altitude:        ac,
		CommB:           mb,
		Parity:          parityOf(msg),
	}, nil
}

// CommBIdentityReply is DF 21: a surveillance identity reply carrying a
// Comm-B data field.
type CommBIdentityReply struct {
	FlightStatus    FlightStatus
	DownlinkRequest DownlinkRequest
	UtilityMessage  UtilityMessage
	Identity        Squawk
	Ident           bool
	CommB           [7]byte
	Parity          Parity
}

func (CommBIdentityReply) DownlinkFormat() DownlinkFormat { return DfCommBIdentityReply }
func (CommBIdentityReply) Length() int                    { return LengthLong }

func decodeCommBIdentityReply(msg []byte) (Frame, error) {
	fs := NewFlightStatus(msg[0] & 0x7)
	dr := NewDownlinkRequest((msg[1] & 0xF8) >> 3)
	um := NewUtilityMessage((msg[1]&0x7)<<3 | (msg[2]&0xE0)>>5)
	idWord := uint16(msg[2]&0x1F)<<8 | uint16(msg[3])
	squawk, _ := decodeGillhamID13(idWord)
	var mb [7]byte
	copy(mb[:], msg[4:11])
	return CommBIdentityReply{
		FlightStatus:    fs,
		DownlinkRequest: dr,
		UtilityMessage:  um,
		Identity:        squawk,
		Ident:           identityIdentBit(idWord),
		CommB:           mb,
		Parity:          parityOf(msg),
	}, nil
}

// CommD is DF 24-31 collapsed to a single variant: a short uplink/downlink
// data-link message. Its payload layout (KE/ND sub-fields) is a
// collaborator concern; the core preserves it verbatim.
type CommD struct {
	ControlElement uint8 // bit 3 of byte 0 (mask 0x10): KE (control/data flag)
	NumberOfDSegs  uint8 // bits 4-7 of byte 0 (mask 0x0F): ND
	Data           [6]byte
}

func (CommD) DownlinkFormat() DownlinkFormat { return DfCommD }
func (CommD) Length() int                    { return LengthShort }

func decodeCommD(msg []byte) (Frame, error) {
	var data [6]byte
	copy(data[:], msg[1:7])
	return CommD{
		ControlElement: (msg[0] >> 4) & 1,
		NumberOfDSegs:  msg[0] & 0x0F,
		Data:           data,
	}, nil
}
