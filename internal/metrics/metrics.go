// Package metrics exposes the Prometheus counters the decoder increments as
// it processes frames, grounded on the promauto.NewCounter pattern the
// teacher's source-setup code uses for its ingest counters.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/adsb1090/decoder/internal/modes"
)

var (
	framesDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modesdecode_frames_decoded_total",
		Help: "The total number of Mode S frames successfully decoded, by downlink format.",
	}, []string{"downlink_format"})

	decodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modesdecode_decode_errors_total",
		Help: "The total number of frames rejected during decode, by error kind.",
	}, []string{"kind"})

	emergencySquawks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modesdecode_emergency_squawks_total",
		Help: "The total number of frames observed carrying an active emergency/priority squawk.",
	})
)

// ObserveFrame records a successfully decoded frame.
func ObserveFrame(f modes.Frame) {
	framesDecoded.WithLabelValues(f.DownlinkFormat().String()).Inc()
}

// ObserveError records a rejected frame by its DecodeError kind.
func ObserveError(err error) {
	if de, ok := err.(modes.DecodeError); ok {
		decodeErrors.WithLabelValues(de.Kind.String()).Inc()
		return
	}
	decodeErrors.WithLabelValues("unknown").Inc()
}

// ObserveEmergencySquawk records a sighting of an active emergency/priority
// squawk.
func ObserveEmergencySquawk() {
	emergencySquawks.Inc()
}

// Serve runs a /metrics Prometheus scrape endpoint on addr until ctx is
// cancelled. It is meant to run in its own goroutine alongside the decode
// loop.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		log.Info().Str("addr", addr).Msg("stopping metrics server")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
