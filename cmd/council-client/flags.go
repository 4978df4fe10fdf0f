// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --host, --port, --config, --question, --wait, --watch, --timeout, --verbose

package main

import (
	"flag"
	"time"
)

type cliArgs struct {
	host     string
	port     int
	config   string
	question string
	wait     bool
	watch    string
	timeout  time.Duration
	verbose  bool
	version  bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.host, "host", "", "Council server host (default from config, else localhost)")
	flag.IntVar(&args.port, "port", 0, "Council server port (default from config, else 9001)")
	flag.StringVar(&args.config, "config", "", "Path to a client config file")
	flag.StringVar(&args.question, "question", "", "Question to ask the council")
	flag.BoolVar(&args.wait, "wait", false, "Ask the server to wait for consensus")
	flag.StringVar(&args.watch, "watch", "", "Watch an existing session id until consensus")
	flag.DurationVar(&args.timeout, "timeout", 0, "Per-call reply timeout (0 = none)")
	flag.BoolVar(&args.verbose, "verbose", false, "Log every frame sent and received")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}
