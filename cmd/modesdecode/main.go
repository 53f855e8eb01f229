// Command modesdecode reads hex-encoded Mode S frames, one per line, from a
// file (or stdin) and prints their decoded fields, one row per frame.
// Raw-binary input is not read: every line is hex-decoded whatever the
// --format flag says.
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/adsb1090/decoder/internal/alert"
	"github.com/adsb1090/decoder/internal/logging"
	"github.com/adsb1090/decoder/internal/metrics"
	"github.com/adsb1090/decoder/internal/modes"
	"github.com/adsb1090/decoder/internal/publish"
	"github.com/adsb1090/decoder/internal/store"
)

const (
	flagInput        = "input"
	flagFormat       = "format"
	flagPublish      = "publish-subject"
	flagNatsURL      = "nats-url"
	flagOut          = "out"
	flagMetricsAddr  = "metrics-addr"
	flagPostgresDSN  = "postgres-dsn"
	flagDiscordToken = "discord-token"
	flagDiscordChan  = "discord-channel"
	flagDedupWindow  = "dedup-window"
)

func main() {
	app := &cli.App{
		Name:  "modesdecode",
		Usage: "decode a stream of Mode S downlink frames",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagInput,
				Aliases: []string{"i"},
				Usage:   "path to a file of one hex-encoded frame per line (default: stdin)",
			},
			&cli.StringFlag{
				Name:  flagFormat,
				Value: "hex",
				Usage: "input encoding (not consulted: input is always read as hex, one frame per line)",
			},
			&cli.StringFlag{
				Name:  flagPublish,
				Usage: "NATS subject to publish decoded frames to (empty disables publishing)",
			},
			&cli.StringFlag{
				Name:  flagNatsURL,
				Value: "nats://127.0.0.1:4222",
				Usage: "NATS server URL, used only when -publish-subject is set",
			},
			&cli.StringFlag{
				Name:  flagOut,
				Value: "table",
				Usage: "output rendering: table or ndjson",
			},
			&cli.StringFlag{
				Name:  flagMetricsAddr,
				Usage: "address to serve Prometheus /metrics on (empty disables it)",
			},
			&cli.StringFlag{
				Name:  flagPostgresDSN,
				Usage: "Postgres DSN to persist decoded sightings to (empty disables persistence)",
			},
			&cli.StringFlag{
				Name:  flagDiscordToken,
				Usage: "Discord bot token, used only when -discord-channel is set",
			},
			&cli.StringFlag{
				Name:  flagDiscordChan,
				Usage: "Discord channel ID to notify on emergency squawks (empty disables alerting)",
			},
			&cli.DurationFlag{
				Name:  flagDedupWindow,
				Value: 30 * time.Second,
				Usage: "suppress repeat persisted sightings of the same aircraft within this window",
			},
		},
		Action: run,
	}
	logging.IncludeVerbosityFlags(app)

	app.Before = func(c *cli.Context) error {
		logging.ConfigureForCli()
		logging.SetLoggingLevel(c)
		bindViperEnv()
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("modesdecode failed")
	}
}

// bindViperEnv lets the string flags read through stringFlag be supplied
// instead as an upper-cased, underscore-separated environment variable
// (MODESDECODE_*), the configuration convention the rest of this stack uses
// via viper. The fallback only applies while the flag's value is empty, so
// flags with a non-empty default, and --out and --dedup-window (read
// directly from the CLI context), take no value from the environment.
func bindViperEnv() {
	viper.SetEnvPrefix("modesdecode")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// stringFlag reads name from the CLI context, falling back to its
// MODESDECODE_ environment variable (via viper) when the flag was left at
// its unset default.
func stringFlag(c *cli.Context, name string) string {
	if v := c.String(name); v != "" {
		return v
	}
	return viper.GetString(name)
}

func run(c *cli.Context) error {
	in := os.Stdin
	if path := stringFlag(c, flagInput); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var pub *publish.Publisher
	if subject := stringFlag(c, flagPublish); subject != "" {
		p, err := publish.Connect(stringFlag(c, flagNatsURL), subject)
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
	}

	if addr := stringFlag(c, flagMetricsAddr); addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	var db *store.Store
	var dedup *store.Dedup
	if dsn := stringFlag(c, flagPostgresDSN); dsn != "" {
		s, err := store.Open(dsn)
		if err != nil {
			return err
		}
		defer s.Close()
		if err = s.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate sightings table: %w", err)
		}
		db = s
		dedup = store.NewDedup(c.Duration(flagDedupWindow))
	}

	var notifier *alert.Notifier
	if channel := stringFlag(c, flagDiscordChan); channel != "" {
		session, err := discordgo.New("Bot " + stringFlag(c, flagDiscordToken))
		if err != nil {
			return fmt.Errorf("open discord session: %w", err)
		}
		if err = session.Open(); err != nil {
			return fmt.Errorf("connect to discord: %w", err)
		}
		defer session.Close()
		registry := alert.NewRegistry(".")
		if err = registry.Add(channel, "modesdecode"); err != nil {
			log.Warn().Err(err).Msg("failed to register discord watcher")
		}
		notifier = alert.NewNotifier(session, registry)
	}

	ndjson := strings.EqualFold(c.String(flagOut), "ndjson")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"DF", "Details"})
	enc := json.NewEncoder(os.Stdout)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		buf, err := hex.DecodeString(line)
		if err != nil {
			log.Warn().Err(err).Str("line", line).Msg("skipping unparsable line")
			continue
		}
		frame, err := modes.Decode(buf)
		if err != nil {
			metrics.ObserveError(err)
			log.Warn().Err(err).Str("line", line).Msg("failed to decode frame")
			continue
		}
		metrics.ObserveFrame(frame)
		now := time.Now()
		rec := publish.RecordFromFrame(frame, now)

		if ndjson {
			if err = enc.Encode(rec); err != nil {
				log.Error().Err(err).Msg("failed to encode ndjson row")
			}
		} else {
			table.Append([]string{frame.DownlinkFormat().String(), fmt.Sprintf("%+v", frame)})
		}

		if pub != nil {
			if err = pub.Publish(rec); err != nil {
				log.Error().Err(err).Msg("failed to publish decoded record")
			}
		}

		if rec.Squawk != "" {
			if squawk, perr := modes.ParseSquawk(rec.Squawk); perr == nil {
				if modes.EmergencyPriorityStatusFromSquawk(squawk) != modes.EmergencyNone {
					metrics.ObserveEmergencySquawk()
				}
				if address, aerr := modes.ParseIcaoAddress(rec.Address); aerr == nil && notifier != nil {
					alert.Watch(notifier, address, squawk, now)
				}
			}
		}

		if db != nil && rec.Address != "" {
			if address, aerr := modes.ParseIcaoAddress(rec.Address); aerr == nil && dedup.ShouldWrite(address, now) {
				sig := store.Sighting{Address: address, Downlink: frame.DownlinkFormat(), SeenAt: now}
				if rec.Squawk != "" {
					if squawk, perr := modes.ParseSquawk(rec.Squawk); perr == nil {
						sig.Squawk = &squawk
					}
				}
				if rec.AltitudeFeet != nil {
					sig.AltFeet = rec.AltitudeFeet
				}
				if err = db.Insert(ctx, sig); err != nil {
					log.Error().Err(err).Msg("failed to persist sighting")
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if !ndjson {
		table.Render()
	}
	return nil
}
