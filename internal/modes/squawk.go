package modes

import "fmt"

// Squawk is a 12-bit Mode-A identity code, conventionally displayed as four
// octal digits (0000-7777).
type Squawk uint16

const squawkMask = 0o7777

// NewSquawk masks value to its 12-bit range.
func NewSquawk(value uint16) Squawk {
	return Squawk(value & squawkMask)
}

// SquawkFromU16 checks that value fits in 12 bits, returning false if it
// does not.
func SquawkFromU16(value uint16) (Squawk, bool) {
	if value > squawkMask {
		return 0, false
	}
	return Squawk(value), true
}

// String renders the squawk as four zero-padded octal digits.
func (s Squawk) String() string {
	return fmt.Sprintf("%04o", uint16(s))
}

// ParseSquawk parses a four-digit octal string produced by String.
func ParseSquawk(s string) (Squawk, error) {
	var v uint16
	if _, err := fmt.Sscanf(s, "%04o", &v); err != nil {
		return 0, fmt.Errorf("modes: invalid squawk %q: %w", s, err)
	}
	squawk, ok := SquawkFromU16(v)
	if !ok {
		return 0, fmt.Errorf("modes: squawk %q out of range", s)
	}
	return squawk, nil
}

// EmergencyPriorityStatus is the 3-bit emergency/priority field carried in
// an aircraft-status ADS-B message.
type EmergencyPriorityStatus uint8

const (
	EmergencyNone EmergencyPriorityStatus = iota
	EmergencyGeneral
	EmergencyMedical
	EmergencyMinimumFuel
	EmergencyNoCommunications
	EmergencyUnlawfulInterference
	EmergencyDownedAircraft
	EmergencyReserved
)

func (e EmergencyPriorityStatus) String() string {
	switch e {
	case EmergencyNone:
		return "none"
	case EmergencyGeneral:
		return "general"
	case EmergencyMedical:
		return "medical"
	case EmergencyMinimumFuel:
		return "minimum-fuel"
	case EmergencyNoCommunications:
		return "no-communications"
	case EmergencyUnlawfulInterference:
		return "unlawful-interference"
	case EmergencyDownedAircraft:
		return "downed-aircraft"
	default:
		return "reserved"
	}
}

// EmergencyPriorityStatusFromSquawk maps the well-known emergency squawk
// codes (7500/7600/7700) onto their EmergencyPriorityStatus equivalent. Any
// other code, including the default VFR code 1200, maps to EmergencyNone.
func EmergencyPriorityStatusFromSquawk(squawk Squawk) EmergencyPriorityStatus {
	switch uint16(squawk) {
	case 0o7500:
		return EmergencyUnlawfulInterference
	case 0o7600:
		return EmergencyNoCommunications
	case 0o7700:
		return EmergencyGeneral
	default:
		return EmergencyNone
	}
}
