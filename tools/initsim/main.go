// Command initsim runs init's entry sequence on the host and prints what
// the kernel debug channel would show.
//
//	initsim [-config munix.toml] [-prefix P] [-o FILE] [-runs N] [--] [arg ...]
//
// argv[0] is "init"; the remaining arguments follow it. Use -- before
// arguments that start with a dash so they reach init verbatim.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/munix-os/munix/internal/config"
	"github.com/munix-os/munix/internal/debuglog"
	"github.com/munix-os/munix/internal/hostsink"
	"github.com/munix-os/munix/internal/initseq"
	"github.com/munix-os/munix/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("initsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file")
	prefix := fs.String("prefix", "", "prefix for every debug line (overrides config)")
	output := fs.String("o", "", "output file, - for stdout (overrides config)")
	runs := fs.Int("runs", 1, "how many times to run the entry sequence")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *runs < 0 {
		fmt.Fprintln(stderr, "initsim: -runs must not be negative")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "initsim: %v\n", err)
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "prefix":
			cfg.Sim.Prefix = *prefix
		case "o":
			cfg.Sim.Output = *output
		}
	})

	logCfg := logging.FromConfig(cfg.Log)
	logCfg.Output = stderr
	log, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "initsim: %v\n", err)
		return 2
	}
	defer log.Sync()
	log = log.With(zap.String("run_id", uuid.NewString()))

	w := stdout
	if cfg.Sim.Output != "-" && cfg.Sim.Output != "" {
		f, err := os.Create(cfg.Sim.Output)
		if err != nil {
			log.Error("open output", zap.Error(err))
			return 1
		}
		defer f.Close()
		w = f
	}

	argv := append([]string{"init"}, fs.Args()...)
	texts := make([]debuglog.Text, len(argv))
	for i, a := range argv {
		texts[i] = debuglog.Terminate(a)
	}

	sink := hostsink.New(w, hostsink.WithPrefix(cfg.Sim.Prefix))
	for i := 0; i < *runs; i++ {
		initseq.Run(sink, texts)
	}

	if err := sink.Err(); err != nil {
		log.Error("write debug output", zap.Error(err), zap.String("output", cfg.Sim.Output))
		return 1
	}

	log.Debug("init sequence simulated",
		zap.Strings("argv", argv),
		zap.Int("runs", *runs),
		zap.Int("invocations", sink.Count()),
	)
	return 0
}
