// Package cmd wires up the CLI flags and dispatches to the relay core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/KartikSindura/chat/config"
	"github.com/KartikSindura/chat/internal/metrics"
	"github.com/KartikSindura/chat/relay"
	"github.com/KartikSindura/chat/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X github.com/KartikSindura/chat/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the appropriate gochat mode.
func Execute(ctx context.Context, args []string) error {
	cfg := config.New()
	// Env first so CLI flags take precedence.
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("gochat", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.BoolVarP(&cfg.Listen, "listen", "l", cfg.Listen, "Listen mode (run the relay server)")
	fs.IntVarP(&cfg.LocalPort, "port", "p", cfg.LocalPort, "Listening port (with -l)")

	var timeoutSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Dial timeout in seconds (connect mode)")

	// ── relay policy ─────────────────────────────────────────────
	fs.StringVarP(&cfg.Token, "token", "t", cfg.Token, "Shared auth token (server: fixed instead of random; client: sent via /auth)")
	fs.DurationVar(&cfg.BanLimit, "ban-limit", cfg.BanLimit, "How long a banned IP is rejected")
	fs.DurationVar(&cfg.MessageRate, "message-rate", cfg.MessageRate, "Minimum interval between messages per client")
	fs.IntVar(&cfg.StrikeLimit, "strike-limit", cfg.StrikeLimit, "Violations before a ban")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("gochat %s\n", version)
		return nil
	}

	if timeoutSec > 0 {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)
	collector := metrics.New()

	return relay.New(cfg, logger, collector).Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	if cfg.Listen {
		switch len(remaining) {
		case 0: // gochat -l -p PORT
		case 1:
			cfg.Host = remaining[0] // bind address
		default:
			return fmt.Errorf("too many arguments for listen mode")
		}
		return nil
	}

	// Connect mode: host [port]
	if len(remaining) < 1 {
		return fmt.Errorf("hostname required (use --help for usage)")
	}
	cfg.Host = remaining[0]

	if len(remaining) > 2 {
		return fmt.Errorf("too many arguments for connect mode")
	}
	if len(remaining) == 2 {
		port, err := config.ParsePort(remaining[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		cfg.Port = port
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gochat – token-gated plain-text chat relay v%s

Clients authenticate with the token printed at server startup; frames
from one authenticated client fan out to all others.

Usage:
  gochat -l -p <port> [options]           Run the relay server
  gochat [options] <host> [port]          Connect as a client

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  gochat -l -p 6969                       Serve on 6969, random token
  gochat -l -p 6969 -t SECRET -vv         Fixed token, verbose logs
  gochat chat.example.com 6969            Connect (prompts for token)
  gochat -t SECRET 127.0.0.1 6969         Connect and auth immediately
`)
}
