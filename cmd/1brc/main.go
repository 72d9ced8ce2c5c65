// 1brc prints min/mean/max per weather station for a file of
// "<station>;<temperature>" lines.
//
//	$ 1brc -sorted measurements.txt
//	{Bergen=-3.8/2.9/9.6, Lodwar=37.1/37.1/37.1, }
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"golang.org/x/exp/mmap"

	"github.com/miku/1brcfixed/internal/aggregate"
	"github.com/miku/1brcfixed/internal/config"
	"github.com/miku/1brcfixed/internal/logging"
)

const (
	appName = "1brc"
	// Default version is "dev" if not set with -ldflags "-X main.version=..."
	version = "dev"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return 1
	}
	logger := logging.New(cfg, stderr, version, appName)

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			logger.Error("cannot create cpu profile", "path", cfg.CPUProfile, "err", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Error("cannot start cpu profile", "err", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	r, closer, err := openInput(cfg.InputPath, cfg.Mmap)
	if err != nil {
		logger.Error("cannot open input", "path", cfg.InputPath, "err", err)
		return 1
	}
	defer closer.Close()
	logger.Debug("reading", "path", cfg.InputPath, "mmap", cfg.Mmap)

	opts := aggregate.Options{Sorted: cfg.Sorted, Logger: logger}
	if err := aggregate.Run(r, stdout, opts); err != nil {
		logger.Error("cannot write report", "err", err)
		return 1
	}
	return 0
}

// openInput opens path for sequential reading, either as a plain file or
// through a read-only memory map.
func openInput(path string, useMmap bool) (io.Reader, io.Closer, error) {
	if useMmap {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return io.NewSectionReader(m, 0, int64(m.Len())), m, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}
