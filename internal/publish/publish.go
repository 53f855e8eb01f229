// Package publish broadcasts decoded frames onto a NATS subject as JSON,
// using the teacher's nats-io/nats.go plus json-iterator/go stack for the
// transport and encoding respectively.
package publish

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"

	"github.com/adsb1090/decoder/internal/modes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is the wire shape published for every successfully decoded frame.
type Record struct {
	DownlinkFormat string    `json:"downlink_format"`
	Address        string    `json:"address,omitempty"`
	Squawk         string    `json:"squawk,omitempty"`
	AltitudeFeet   *float64  `json:"altitude_ft,omitempty"`
	Callsign       string    `json:"callsign,omitempty"`
	DecodedAt      time.Time `json:"decoded_at"`
}

// Publisher sends Records to a single NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// Connect dials url and returns a Publisher bound to subject.
func Connect(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("publish: connect to %s: %w", url, err)
	}
	return &Publisher{conn: conn, subject: subject}, nil
}

// Publish encodes rec as JSON and sends it to the bound subject.
func (p *Publisher) Publish(rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("publish: marshal record: %w", err)
	}
	return p.conn.Publish(p.subject, b)
}

// Close flushes any pending publishes and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RecordFromFrame projects a decoded Frame into the published wire Record.
// Frame variants without a meaningful field simply leave it at its zero
// value, consistent with Record's omitempty tags.
func RecordFromFrame(f modes.Frame, decodedAt time.Time) Record {
	rec := Record{DownlinkFormat: f.DownlinkFormat().String(), DecodedAt: decodedAt}

	switch v := f.(type) {
	case modes.AllCallReply:
		rec.Address = v.Address.String()
	case modes.ExtendedSquitter:
		rec.Address = v.Address.String()
		annotateAdsb(&rec, v.Message)
	case modes.ExtendedSquitterNonTransponder:
		rec.Address = v.Address.String()
		if v.Message != nil {
			annotateAdsb(&rec, *v.Message)
		}
	case modes.MilitaryExtendedSquitter:
		rec.Address = v.Address.String()
		if v.Message != nil {
			annotateAdsb(&rec, *v.Message)
		}
	case modes.SurveillanceIdentityReply:
		rec.Squawk = v.Identity.String()
	case modes.CommBIdentityReply:
		rec.Squawk = v.Identity.String()
	case modes.ShortAirAirSurveillance:
		if alt, ok := v.Altitude.Decode(); ok {
			ft := alt.AsFeet()
			rec.AltitudeFeet = &ft
		}
	case modes.SurveillanceAltitudeReply:
		if alt, ok := v.Altitude.Decode(); ok {
			ft := alt.AsFeet()
			rec.AltitudeFeet = &ft
		}
	case modes.CommBAltitudeReply:
		if alt, ok := v.Altitude.Decode(); ok {
			ft := alt.AsFeet()
			rec.AltitudeFeet = &ft
		}
	}
	return rec
}

func annotateAdsb(rec *Record, msg modes.AdsbMessage) {
	switch m := msg.(type) {
	case modes.AircraftIdentification:
		rec.Callsign = m.Callsign.String()
	case modes.AirbornePosition:
		if alt, ok := m.Altitude.Decode(m.AltitudeType); ok {
			ft := alt.AsFeet()
			rec.AltitudeFeet = &ft
		}
	}
}
