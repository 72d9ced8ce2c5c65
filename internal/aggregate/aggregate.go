// Package aggregate reads measurement lines and keeps per-station statistics.
//
// data:
//
//	Tamale;27.5
//	Bergen;9.6
//	Lodwar;37.1
//	Whitehorse;-3.8
//	Ouarzazate;19.1
package aggregate

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/miku/1brcfixed/internal/station"
	"github.com/miku/1brcfixed/internal/temperature"
)

const (
	readBufferSize = 1 << 20
	lineCapacity   = 128
)

// Options configure a Table.
type Options struct {
	// Sorted emits report entries ordered by station name. The default order
	// is whatever map iteration yields.
	Sorted bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Table maps station names to their measurements.
type Table struct {
	stations map[string]*station.Measurements
	sorted   bool
	log      *slog.Logger
}

// New returns an empty table.
func New(opts Options) *Table {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Table{
		stations: make(map[string]*station.Measurements),
		sorted:   opts.Sorted,
		log:      logger,
	}
}

// Add folds reading v into the station called name. The name is copied only
// the first time it is seen.
func (t *Table) Add(name []byte, v int64) {
	if m, ok := t.stations[string(name)]; ok {
		m.Add(v)
		return
	}
	m := station.NewFrom(v)
	t.stations[string(name)] = &m
}

// addLine splits a line at the first ';' and folds the reading. Lines without
// a separator are skipped.
func (t *Table) addLine(line []byte) bool {
	i := bytes.IndexByte(line, ';')
	if i < 0 {
		return false
	}
	t.Add(line[:i], temperature.Parse(line[i+1:]))
	return true
}

// Consume reads r line by line until EOF and returns the number of readings
// folded. A read error ends the loop like EOF would; what has been read so far
// is kept.
func (t *Table) Consume(r io.Reader) int64 {
	var (
		br   = bufio.NewReaderSize(r, readBufferSize)
		line = make([]byte, 0, lineCapacity)
		n    int64
		err  error
	)
	for {
		line = line[:0]
		for {
			var chunk []byte
			chunk, err = br.ReadSlice('\n')
			line = append(line, chunk...)
			if !errors.Is(err, bufio.ErrBufferFull) {
				break
			}
		}
		if err != nil && !errors.Is(err, io.EOF) {
			t.log.Warn("read failed, reporting partial results", "err", err, "readings", n)
			break
		}
		if len(line) > 0 && t.addLine(line) {
			n++
		}
		if err != nil {
			break
		}
	}
	t.log.Debug("input consumed", "readings", n, "stations", len(t.stations))
	return n
}

// Len returns the number of distinct stations.
func (t *Table) Len() int {
	return len(t.stations)
}

// Lookup returns a copy of the measurements for name.
func (t *Table) Lookup(name string) (station.Measurements, bool) {
	m, ok := t.stations[name]
	if !ok {
		return station.Measurements{}, false
	}
	return *m, true
}

// Names returns all station names in sorted order.
func (t *Table) Names() []string {
	keys := maps.Keys(t.stations)
	sort.Strings(keys)
	return keys
}

// WriteTo writes the report, {name=min/mean/max, ...}, to w. Every entry is
// followed by ", ", the last one included. No newline is written.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var (
		bw  = bufio.NewWriter(w)
		buf = make([]byte, 0, lineCapacity)
		n   int64
	)
	write := func(b []byte) {
		nn, _ := bw.Write(b)
		n += int64(nn)
	}
	write([]byte{'{'})
	entry := func(name string, m *station.Measurements) {
		buf = append(buf[:0], name...)
		buf = append(buf, '=')
		buf = m.AppendSummary(buf)
		buf = append(buf, ", "...)
		write(buf)
	}
	if t.sorted {
		for _, name := range t.Names() {
			entry(name, t.stations[name])
		}
	} else {
		for name, m := range t.stations {
			entry(name, m)
		}
	}
	write([]byte{'}'})
	return n, bw.Flush()
}

// Run aggregates r and writes the report to w.
func Run(r io.Reader, w io.Writer, opts Options) error {
	t := New(opts)
	t.Consume(r)
	_, err := t.WriteTo(w)
	return err
}
