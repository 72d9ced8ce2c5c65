package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrMissingPath is returned when no input file is given.
var ErrMissingPath = errors.New("missing <measurements path>")

type Config struct {
	AppEnv   string
	LogLevel slog.Level

	// InputPath is the first positional argument; any further ones are ignored.
	InputPath  string
	CPUProfile string
	Mmap       bool
	Sorted     bool
}

// Load reads APP_ENV and LOG_LEVEL from the environment, then parses args
// (without the program name). Output from the flag package goes to stderr.
func Load(args []string, stderr io.Writer) (Config, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("1brc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: 1brc [flags] <measurements path>\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", "", "file to write cpu profile to")
	fs.BoolVar(&cfg.Mmap, "mmap", false, "read input through a memory map")
	fs.BoolVar(&cfg.Sorted, "sorted", false, "order report entries by station name")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() == 0 {
		return Config{}, ErrMissingPath
	}
	cfg.InputPath = fs.Arg(0)
	return cfg, nil
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "warn"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:   appEnv,
		LogLevel: level,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
