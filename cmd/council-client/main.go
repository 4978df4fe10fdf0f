// ABOUTME: CLI entry point for the council demo client
// ABOUTME: Parses flags, loads config, connects, then runs the demo or watch mode

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/m0nk111/CouncilOfDicks/internal/config"
	"github.com/m0nk111/CouncilOfDicks/internal/council"
	clog "github.com/m0nk111/CouncilOfDicks/internal/log"
	"github.com/m0nk111/CouncilOfDicks/internal/mode/demo"
	"github.com/m0nk111/CouncilOfDicks/internal/mode/watch"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("council-client %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		if errors.Is(err, council.ErrConnect) {
			fmt.Fprintln(os.Stderr, "connection refused. Is the MCP server running?")
			fmt.Fprintln(os.Stderr, "  start the Council app and click 'Start MCP Server'")
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run loads configuration, connects, and dispatches to the selected mode.
func run(args cliArgs) error {
	if args.verbose {
		clog.SetLevel(clog.LevelDebug)
	}

	cfg, err := config.Load(args.config)
	if err != nil {
		return err
	}
	if args.host != "" {
		cfg.Host = args.host
	}
	if args.port != 0 {
		cfg.Port = args.port
	}
	if args.timeout != 0 {
		cfg.CallTimeout = config.Duration(args.timeout)
	}

	ctx := context.Background()
	client, err := council.Connect(ctx, cfg.Addr(), council.DialOptions{
		DialTimeout: cfg.DialTimeout.Std(),
		CallTimeout: cfg.CallTimeout.Std(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			clog.Warn("closing connection: %v", err)
		}
	}()
	clog.Info("connected to %s", cfg.Addr())

	if args.watch != "" {
		return runWatch(client, args.watch)
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	return demo.Run(ctx, client, os.Stdout, demo.Options{
		Question:         args.question,
		WaitForConsensus: args.wait,
		Styled:           styled,
	})
}

// runWatch polls one session until it reaches a terminal state, then prints
// the outcome.
func runWatch(client *council.Client, sessionID string) error {
	session, err := watch.Run(client, sessionID, watch.DefaultInterval)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %s: no state received", sessionID)
	}

	fmt.Printf("session %s finished with status %s\n", session.ID, session.Status)
	if session.Consensus != nil {
		fmt.Printf("consensus:\n%s\n", *session.Consensus)
	}
	return nil
}
