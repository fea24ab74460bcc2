package observability

import (
	"errors"
	"strconv"
	"sync"

	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	bufferReservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wirebuf",
			Subsystem: "buffer",
			Name:      "reservations_total",
			Help:      "Capacity reservations made by the buffer growth table.",
		},
		[]string{"buffer", "tier"},
	)
	bufferReservedBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wirebuf",
			Subsystem: "buffer",
			Name:      "reserved_bytes",
			Help:      "Capacity reserved per growth step.",
			Buckets:   []float64{300, 2500, 10000, 400000, 1000000, 4000000},
		},
		[]string{"buffer"},
	)
	layoutDecodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wirebuf",
			Subsystem: "layout",
			Name:      "decodes_total",
			Help:      "Layout decode attempts by outcome.",
		},
		[]string{"layout", "outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(bufferReservations, bufferReservedBytes, layoutDecodes)
	})
}

// GrowthObserver returns a bytebuf observer recording reservations under name.
func GrowthObserver(name string) bytebuf.GrowthObserver {
	return func(_, reserved int) {
		RecordReservation(name, reserved)
	}
}

func RecordReservation(name string, reserved int) {
	RegisterMetrics()
	bufferReservations.WithLabelValues(name, tierLabel(reserved)).Inc()
	bufferReservedBytes.WithLabelValues(name).Observe(float64(reserved))
}

// RecordDecode counts one decode of layout with its outcome derived from err.
func RecordDecode(layout string, err error) {
	RegisterMetrics()
	layoutDecodes.WithLabelValues(layout, Outcome(err)).Inc()
}

// Outcome classifies a decode error into a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, bytebuf.ErrOutOfRange):
		return "position"
	case errors.Is(err, bytebuf.ErrBadSource):
		return "source"
	case errors.Is(err, bytebuf.ErrInvalidValue):
		return "invalid_value"
	default:
		return "error"
	}
}

func tierLabel(reserved int) string {
	switch reserved {
	case 300, 2500, 10000, 400000:
		return strconv.Itoa(reserved)
	default:
		return "dynamic"
	}
}
