package logging

import (
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	VeryVerbose = "very-verbose"
	Debug       = "debug"
	Quiet       = "quiet"
	CPUProfile  = "cpu-profile"
)

// IncludeVerbosityFlags registers the standard verbosity/profiling flags on
// app and wires an After hook that stops any CPU profile started by
// SetLoggingLevel.
func IncludeVerbosityFlags(app *cli.App) {
	app.Flags = append(app.Flags,
		&cli.BoolFlag{
			Name:  VeryVerbose,
			Usage: "Enable trace level debugging",
		},
		&cli.BoolFlag{
			Name:    Debug,
			Usage:   "Show extra debug information",
			EnvVars: []string{"DEBUG"},
		},
		&cli.BoolFlag{
			Name:    Quiet,
			Usage:   "Only show important messages",
			EnvVars: []string{"QUIET"},
		},
		&cli.StringFlag{
			Name:  CPUProfile,
			Usage: "Specifying this parameter causes a CPU profile to be generated",
		},
	)
	if nil == app.After {
		app.After = StopProfiling
	} else {
		f := app.After
		app.After = func(c *cli.Context) error {
			err := f(c)
			_ = StopProfiling(c)
			return err
		}
	}
	app.InvalidFlagAccessHandler = func(c *cli.Context, s string) {
		log.Fatal().Str("unknown-flag", s).Msg("invalid CLI flag used")
	}
}

// SetLoggingLevel applies the verbosity flags registered by
// IncludeVerbosityFlags and starts CPU profiling if requested.
func SetLoggingLevel(c *cli.Context) {
	SetVerboseOrQuiet(
		c.Bool(VeryVerbose),
		c.Bool(Debug),
		c.Bool(Quiet),
	)
	if c.String(CPUProfile) != "" {
		ConfigureForProfiling(c.String(CPUProfile))
	}
}

func SetVerboseOrQuiet(trace, verbose, quiet bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if trace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if quiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}

func cliWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.UnixDate}
}

// ConfigureForCli points the global logger at a human-readable console
// writer, used by cmd/modesdecode and cmd/modesview.
func ConfigureForCli() {
	log.Logger = log.Output(cliWriter())
}

// ConfigureForJSON leaves the default zerolog JSON writer in place, used
// when the process is running under a log-aggregating supervisor.
func ConfigureForJSON() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func ConfigureForProfiling(outFile string) {
	f, err := os.Create(outFile)
	if nil != err {
		panic(err)
	}
	if err = pprof.StartCPUProfile(f); nil != err {
		panic(err)
	}
}

func StopProfiling(c *cli.Context) error {
	if fileName := c.String(CPUProfile); fileName != "" {
		pprof.StopCPUProfile()
		log.Info().Str("profile", fileName).Msg("CPU profile written; inspect with go tool pprof -http=:7777")

		f, err := os.Create("mem-" + fileName)
		if nil != err {
			panic(err)
		}
		if err = pprof.WriteHeapProfile(f); nil != err {
			panic(err)
		}
		log.Info().Str("profile", "mem-"+fileName).Msg("heap profile written")
	}
	return nil
}
