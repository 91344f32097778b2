// Package cmd wires up the CLI flags and dispatches to the supervisor.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"wsfan/config"
	"wsfan/internal/core"
	"wsfan/internal/errors"
	"wsfan/internal/metrics"
	"wsfan/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X wsfan/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs one fan-out session against the server.
func Execute(ctx context.Context, args []string) error {
	cfg, done, err := parseArgs(args)
	if err != nil || done {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)
	console := util.NewConsole()

	var mc *metrics.Collector
	if cfg.Verbose >= int(util.LogDebug) {
		mc = metrics.New()
	}

	console.Printf("Connecting to %s with %d sessions\n", cfg.URL, cfg.Sessions)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		console.Printf("Type anything to send a Text message on all sessions, Ctrl-D to exit.\n")
	}

	start := time.Now()
	sup := core.NewSupervisor(cfg, logger, console, mc, os.Stdin)
	runErr := sup.Run(ctx)

	logger.Verbose("total time taken: %s", time.Since(start).Truncate(time.Millisecond))
	if mc != nil {
		logger.Debug("metrics:\n%s", mc.JSON())
	}
	return runErr
}

// parseArgs layers defaults, environment variables, and CLI flags into
// a validated Config.  done reports that the invocation was fully
// handled here (--help, --version, --dry-run) and no run should start.
func parseArgs(args []string) (cfg *config.Config, done bool, err error) {
	cfg = &config.Config{
		URL:         config.DefaultURL,
		Sessions:    config.DefaultSessions,
		QueueSize:   config.DefaultQueueSize,
		DialTimeout: config.DefaultDialTimeout,
	}
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("wsfan", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.StringVarP(&cfg.URL, "url", "u", cfg.URL, "Server URL (ws://, wss://; http(s) accepted)")
	fs.IntVarP(&cfg.Sessions, "sessions", "n", cfg.Sessions, "Number of concurrent sessions")

	var timeoutSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Handshake timeout in seconds")

	// ── fan-out ──────────────────────────────────────────────────
	fs.IntVar(&cfg.QueueSize, "queue-size", cfg.QueueSize, "Per-session outbound queue capacity")

	// ── output ───────────────────────────────────────────────────
	// Count flags take no default and zero their target at
	// registration, so the env overlay for verbosity is restored
	// after parsing when -v was not given on the command line.
	envVerbose := cfg.Verbose
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Validate configuration and exit")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	if !fs.Changed("verbose") {
		cfg.Verbose = envVerbose
	}

	if showHelp {
		printUsage(fs)
		return cfg, true, nil
	}
	if showVersion {
		fmt.Printf("wsfan %s\n", version)
		return cfg, true, nil
	}
	if fs.NArg() > 0 {
		return nil, false, fmt.Errorf("unexpected argument %q (the server is given with --url)", fs.Arg(0))
	}

	if timeoutSec > 0 {
		cfg.DialTimeout = time.Duration(timeoutSec) * time.Second
	}

	// ── normalise and validate ───────────────────────────────────
	normalized, err := config.NormalizeURL(cfg.URL)
	if err != nil {
		return nil, false, &errors.ConfigError{Field: "url", Value: cfg.URL, Message: err.Error()}
	}
	cfg.URL = normalized

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}

	if cfg.DryRun {
		fmt.Printf("configuration OK: %s, %d sessions\n", cfg.URL, cfg.Sessions)
		return cfg, true, nil
	}

	return cfg, false, nil
}

// ── helpers ──────────────────────────────────────────────────────────

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `wsfan – WebSocket fan-out client v%s

Opens N concurrent WebSocket sessions, sends every stdin line on all
of them, and prints everything each session receives.

Usage:
  wsfan [options]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  wsfan                                       Two sessions to ws://127.0.0.1:3000/ws
  wsfan -u ws://example.com/ws -n 8           Eight sessions
  echo "hello" | wsfan -n 4 -v                Pipe a line into four sessions
`)
}
