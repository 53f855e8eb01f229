package modes

// Capability is the 3-bit field in DF 11/17 describing the transponder's
// level and its current airborne/ground/alert state.
type Capability uint8

const (
	CapabilityLevel1 Capability = iota // surveillance only, no DF11 capability
	CapabilityReserved1
	CapabilityReserved2
	CapabilityReserved3
	CapabilityLevel2Ground
	CapabilityLevel2Airborne
	CapabilityLevel2Either
	CapabilityDr0Fs2345
)

// NewCapability masks value to its 3-bit range.
func NewCapability(value uint8) Capability {
	return Capability(value & 0x7)
}

// CodeFormat is the 3-bit "CF" field of a DF 18 non-transponder extended
// squitter, selecting which of eight sub-variants the remaining bytes
// carry.
type CodeFormat uint8

const (
	CodeFormatAdsbIcao          CodeFormat = iota // 0: ADS-B, ICAO address
	CodeFormatAdsbNonIcao                         // 1: ADS-B, non-ICAO (anonymous) address
	CodeFormatTisbIcao                            // 2: TIS-B, ICAO address, fine
	CodeFormatTisbIcaoCoarse                      // 3: TIS-B, ICAO address, coarse
	CodeFormatTisbManagement                      // 4: TIS-B/ADS-R management
	CodeFormatTisbNonIcao                         // 5: TIS-B, non-ICAO (anonymous) address
	CodeFormatAdsbRebroadcast                     // 6: ADS-B rebroadcast
	CodeFormatReserved                            // 7: reserved
)

// NewCodeFormat masks value to its 3-bit range.
func NewCodeFormat(value uint8) CodeFormat {
	return CodeFormat(value & 0x7)
}

// NonIcao reports whether this code format declares its announced address
// to be non-ICAO (anonymous).
func (c CodeFormat) NonIcao() bool {
	return c == CodeFormatAdsbNonIcao || c == CodeFormatTisbNonIcao
}

func (c CodeFormat) String() string {
	switch c {
	case CodeFormatAdsbIcao:
		return "adsb-icao"
	case CodeFormatAdsbNonIcao:
		return "adsb-non-icao"
	case CodeFormatTisbIcao:
		return "tisb-icao-fine"
	case CodeFormatTisbIcaoCoarse:
		return "tisb-icao-coarse"
	case CodeFormatTisbManagement:
		return "tisb-management"
	case CodeFormatTisbNonIcao:
		return "tisb-non-icao"
	case CodeFormatAdsbRebroadcast:
		return "adsb-rebroadcast"
	default:
		return "reserved"
	}
}

// FlightStatus is the 3-bit field carried by DF 4/5/20/21 surveillance
// replies, packing alert, SPI (ident), and airborne/ground state.
//
// States 4 and 5 are documented as "either" airborne or ground: both
// Airborne() and Ground() report true for them, matching the source
// standard's deliberately ambiguous encoding rather than forcing a choice.
type FlightStatus uint8

const (
	FlightStatusNoAlertNoSpiAirborne FlightStatus = iota
	FlightStatusNoAlertNoSpiGround
	FlightStatusAlertAirborne
	FlightStatusAlertGround
	FlightStatusAlertSpiEither
	FlightStatusNoAlertSpiEither
	FlightStatusReserved
	FlightStatusNotAssigned
)

// NewFlightStatus masks value to its 3-bit range (the field is 3 bits
// wide; 5-bit in the frame layout diagram refers to its byte position,
// not its width).
func NewFlightStatus(value uint8) FlightStatus {
	return FlightStatus(value & 0x7)
}

func (s FlightStatus) Alert() bool {
	switch s {
	case FlightStatusAlertAirborne, FlightStatusAlertGround, FlightStatusAlertSpiEither:
		return true
	default:
		return false
	}
}

func (s FlightStatus) Spi() bool {
	switch s {
	case FlightStatusAlertSpiEither, FlightStatusNoAlertSpiEither:
		return true
	default:
		return false
	}
}

func (s FlightStatus) Airborne() bool {
	switch s {
	case FlightStatusNoAlertNoSpiAirborne, FlightStatusAlertAirborne, FlightStatusAlertSpiEither, FlightStatusNoAlertSpiEither:
		return true
	default:
		return false
	}
}

func (s FlightStatus) Ground() bool {
	switch s {
	case FlightStatusNoAlertNoSpiGround, FlightStatusAlertGround, FlightStatusAlertSpiEither, FlightStatusNoAlertSpiEither:
		return true
	default:
		return false
	}
}

// DownlinkRequest is the 5-bit field requesting a specific uplink service
// from the ground station.
type DownlinkRequest uint8

const (
	DownlinkRequestNone                  DownlinkRequest = 0
	DownlinkRequestRequestSendCommB      DownlinkRequest = 1
	DownlinkRequestCommBBroadcast1       DownlinkRequest = 4
	DownlinkRequestCommBBroadcast2       DownlinkRequest = 5
	DownlinkRequestAirReferencedCapacity DownlinkRequest = 16
)

// NewDownlinkRequest masks value to its 5-bit range.
func NewDownlinkRequest(value uint8) DownlinkRequest {
	return DownlinkRequest(value & 0x1F)
}

// UtilityMessage is the 6-bit field splitting into a 4-bit interrogator
// identifier and a 2-bit reservation type.
type UtilityMessage struct {
	InterrogatorIdentifier uint8
	ReservationType        InterrogatorReservationType
}

// NewUtilityMessage unpacks a raw 6-bit utility-message field.
func NewUtilityMessage(value uint8) UtilityMessage {
	v := value & 0x3F
	return UtilityMessage{
		InterrogatorIdentifier: v >> 2,
		ReservationType:        InterrogatorReservationType(v & 0x3),
	}
}

// InterrogatorReservationType is the 2-bit sub-field of UtilityMessage.
type InterrogatorReservationType uint8

const (
	ReservationTypeNoInformation InterrogatorReservationType = iota
	ReservationTypeCommBReservation
	ReservationTypeCommCReservation
	ReservationTypeCommDReservation
)

// SurveillanceStatus is the 2-bit field reported on airborne/surface
// position messages, shadowing FlightStatus for extended-squitter frames.
type SurveillanceStatus uint8

const (
	SurveillanceStatusNone SurveillanceStatus = iota
	SurveillanceStatusPermanentAlert
	SurveillanceStatusTemporaryAlert
	SurveillanceStatusSpiCondition
)

// NewSurveillanceStatus masks value to its 2-bit range.
func NewSurveillanceStatus(value uint8) SurveillanceStatus {
	return SurveillanceStatus(value & 0x3)
}

// ReplyInformation is the 4-bit field describing the transponder's
// airborne-velocity reporting capability.
type ReplyInformation uint8

// NewReplyInformation masks value to its 4-bit range.
func NewReplyInformation(value uint8) ReplyInformation {
	return ReplyInformation(value & 0xF)
}

// SensitivityLevel is the 3-bit ACAS sensitivity-level field reported in
// DF 0 short air-air surveillance replies.
type SensitivityLevel uint8

// NewSensitivityLevel masks value to its 3-bit range.
func NewSensitivityLevel(value uint8) SensitivityLevel {
	return SensitivityLevel(value & 0x7)
}

// NavigationUncertaintyCategory is the 3-bit NUC field reported on
// airborne-velocity messages.
type NavigationUncertaintyCategory uint8

// NewNavigationUncertaintyCategory masks value to its 3-bit range.
func NewNavigationUncertaintyCategory(value uint8) NavigationUncertaintyCategory {
	return NavigationUncertaintyCategory(value & 0x7)
}

// TurnIndicator is the 2-bit field reported on airborne-velocity
// messages.
type TurnIndicator uint8

const (
	TurnIndicatorNotAvailable TurnIndicator = iota
	TurnIndicatorLeft
	TurnIndicatorRight
	TurnIndicatorStraight
)

// NewTurnIndicator masks value to its 2-bit range.
func NewTurnIndicator(value uint8) TurnIndicator {
	return TurnIndicator(value & 0x3)
}

// VerticalStatus distinguishes airborne from ground reports on the short
// air-air surveillance reply (DF 0).
type VerticalStatus uint8

const (
	VerticalStatusAirborne VerticalStatus = iota
	VerticalStatusGround
)

// NewVerticalStatus interprets a single bit: 0 = airborne, 1 = ground.
func NewVerticalStatus(bit uint8) VerticalStatus {
	if bit != 0 {
		return VerticalStatusGround
	}
	return VerticalStatusAirborne
}

// CrossLinkCapability reports whether the transponder supports the
// cross-link BDS 1,0 capability report (DF 0, bit 6).
type CrossLinkCapability bool

// NewCrossLinkCapability interprets a single bit.
func NewCrossLinkCapability(bit uint8) CrossLinkCapability {
	return CrossLinkCapability(bit != 0)
}

// Parity is the trailing 3-byte address/parity field carried verbatim by
// every frame variant except CommD, whose trailing bytes stay inside its
// Data field; the decoder performs no repair on it.
type Parity [3]byte
