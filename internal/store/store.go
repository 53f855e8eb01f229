// Package store persists decoded frames to Postgres and deduplicates
// repeat sightings of the same aircraft through a small in-memory index,
// following the teacher's sqlx+lib/pq+sqldb-logger stack.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/btree"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"

	"github.com/adsb1090/decoder/internal/modes"
)

// Sighting is a single decoded-frame record ready for persistence.
type Sighting struct {
	Address   modes.IcaoAddress
	Downlink  modes.DownlinkFormat
	Squawk    *modes.Squawk
	AltFeet   *float64
	SeenAt    time.Time
}

// Store wraps a Postgres connection for writing Sightings.
type Store struct {
	db *sqlx.DB
}

// Open connects to dsn, wrapping the driver with sqldb-logger so every
// query is emitted through the shared zerolog logger.
func Open(dsn string) (*Store, error) {
	rawDB := sqldblogger.OpenDriver(dsn, &pq.Driver{}, zerologadapter.New(log.Logger))
	db := sqlx.NewDb(rawDB, "postgres")
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("store: connect to %s: %w", dsn, err)
	}
	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS sightings (
	id         BIGSERIAL PRIMARY KEY,
	icao       TEXT NOT NULL,
	downlink   SMALLINT NOT NULL,
	squawk     TEXT,
	alt_feet   DOUBLE PRECISION,
	seen_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sightings_icao_idx ON sightings (icao);
`

// Migrate creates the sightings table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Insert writes a single Sighting.
func (s *Store) Insert(ctx context.Context, sig Sighting) error {
	var squawk sql.NullString
	if sig.Squawk != nil {
		squawk = sql.NullString{String: sig.Squawk.String(), Valid: true}
	}
	var alt sql.NullFloat64
	if sig.AltFeet != nil {
		alt = sql.NullFloat64{Float64: *sig.AltFeet, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sightings (icao, downlink, squawk, alt_feet, seen_at) VALUES ($1, $2, $3, $4, $5)`,
		sig.Address.String(), int(sig.Downlink), squawk, alt, sig.SeenAt,
	)
	return err
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// recentItem is a btree.Item keyed by ICAO address, used by Dedup to
// suppress redundant consecutive writes for the same aircraft within a
// short window.
type recentItem struct {
	icao uint32
	seen time.Time
}

func (a recentItem) Less(than btree.Item) bool {
	return a.icao < than.(recentItem).icao
}

// Dedup tracks the most recent sighting time per ICAO address in an
// in-memory B-tree, so a caller can skip persisting sightings that arrive
// within window of the last one recorded for that aircraft.
type Dedup struct {
	tree   *btree.BTree
	window time.Duration
}

// NewDedup builds a Dedup that suppresses repeats within window.
func NewDedup(window time.Duration) *Dedup {
	return &Dedup{tree: btree.New(32), window: window}
}

// ShouldWrite reports whether a sighting of address at seen is new enough
// to record, updating the tracked last-seen time as a side effect.
func (d *Dedup) ShouldWrite(address modes.IcaoAddress, seen time.Time) bool {
	key := recentItem{icao: address.Value}
	if existing := d.tree.Get(key); existing != nil {
		last := existing.(recentItem).seen
		if seen.Sub(last) < d.window {
			return false
		}
	}
	d.tree.ReplaceOrInsert(recentItem{icao: address.Value, seen: seen})
	return true
}
