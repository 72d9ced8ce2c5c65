// Package station keeps running statistics for a single weather station.
package station

import (
	"math"

	"github.com/miku/1brcfixed/internal/temperature"
)

// Measurements, as there is no need to keep all readings around, we compute
// min, max, sum and count on the fly. Values are in temperature.Scale units.
type Measurements struct {
	Min   int64
	Max   int64
	Sum   int64
	Count int64
}

// New returns an empty accumulator. Min and Max hold sentinels until the
// first reading arrives.
func New() Measurements {
	return Measurements{
		Min: math.MaxInt64,
		Max: math.MinInt64,
	}
}

// NewFrom returns an accumulator seeded with a single reading.
func NewFrom(v int64) Measurements {
	m := New()
	m.Add(v)
	return m
}

// Add folds reading v into m.
func (m *Measurements) Add(v int64) {
	if v < m.Min {
		m.Min = v
	}
	if v > m.Max {
		m.Max = v
	}
	m.Sum += v
	m.Count++
}

// Mean truncates toward zero. It panics on an empty accumulator.
func (m *Measurements) Mean() int64 {
	return m.Sum / m.Count
}

// Summary returns min, mean and max.
func (m *Measurements) Summary() (min, mean, max int64) {
	return m.Min, m.Mean(), m.Max
}

// AppendSummary appends "min/mean/max" to dst.
func (m *Measurements) AppendSummary(dst []byte) []byte {
	dst = temperature.AppendFormat(dst, m.Min)
	dst = append(dst, '/')
	dst = temperature.AppendFormat(dst, m.Mean())
	dst = append(dst, '/')
	return temperature.AppendFormat(dst, m.Max)
}

func (m Measurements) String() string {
	return string(m.AppendSummary(nil))
}
