// Command bootcheck verifies that a captured boot transcript contains init's
// debug-log sequence for the given argument vector.
//
//	bootcheck [-config munix.toml] [-prefix P] [-transcript FILE] [-runs N] [--] argv0 [arg ...]
//
// Exit status is 0 when every init sequence matches, 1 when one does not,
// and 2 on usage or I/O errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/munix-os/munix/internal/config"
	"github.com/munix-os/munix/internal/logging"
	"github.com/munix-os/munix/internal/transcript"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stderr))
}

func run(args []string, stdin io.Reader, stderr io.Writer) int {
	fs := flag.NewFlagSet("bootcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file")
	prefix := fs.String("prefix", "", "console prefix of debug-channel lines (overrides config)")
	path := fs.String("transcript", "-", "transcript file, - for stdin")
	runs := fs.Int("runs", 0, "exact number of init runs expected; 0 accepts any")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *runs < 0 {
		fmt.Fprintln(stderr, "bootcheck: -runs must not be negative")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "bootcheck: %v\n", err)
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "prefix" {
			cfg.Transcript.Prefix = *prefix
		}
	})

	logCfg := logging.FromConfig(cfg.Log)
	logCfg.Output = stderr
	log, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "bootcheck: %v\n", err)
		return 2
	}
	defer log.Sync()
	log = log.With(zap.String("check_id", uuid.NewString()), zap.String("transcript", *path))

	r := stdin
	if *path != "-" {
		f, err := os.Open(*path)
		if err != nil {
			log.Error("open transcript", zap.Error(err))
			return 2
		}
		defer f.Close()
		r = f
	}

	lines, err := transcript.Parse(r, cfg.Transcript.Prefix)
	if err != nil {
		log.Error("read transcript", zap.Error(err))
		return 2
	}

	argv := fs.Args()
	reports, err := transcript.VerifyAll(lines, argv)
	if err != nil {
		var (
			mismatch *transcript.MismatchError
			short    *transcript.ShortError
		)
		switch {
		case errors.Is(err, transcript.ErrBannerNotFound):
			log.Error("init never reached the debug channel", zap.Int("lines", len(lines)))
		case errors.As(err, &mismatch):
			log.Error("init sequence mismatch",
				zap.Int("start", mismatch.Start),
				zap.Int("index", mismatch.Index),
				zap.String("want", mismatch.Want),
				zap.String("got", mismatch.Got),
			)
		case errors.As(err, &short):
			log.Error("init sequence truncated",
				zap.Int("start", short.Start),
				zap.Int("want", short.Want),
				zap.Int("got", short.Got),
			)
		default:
			log.Error("verify transcript", zap.Error(err))
		}
		return 1
	}

	if *runs > 0 && len(reports) != *runs {
		log.Error("unexpected number of init runs", zap.Int("want", *runs), zap.Int("got", len(reports)))
		return 1
	}

	log.Info("init sequence verified",
		zap.Int("runs", len(reports)),
		zap.Int("invocations", reports[0].Count),
		zap.Int("first_line", reports[0].Start),
	)
	return 0
}
