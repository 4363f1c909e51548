// Package metrics instruments the record codecs and owner checks with
// Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/tokenuses/pkg/codec"
	"github.com/ssargent/tokenuses/pkg/owner"
	"github.com/ssargent/tokenuses/pkg/record"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for codec use
type Metrics struct {
	registry *prometheus.Registry

	// Codec metrics
	codecOperationsTotal *prometheus.CounterVec
	codecErrorsTotal     *prometheus.CounterVec
	codecBytesTotal      *prometheus.CounterVec

	// Owner check metrics
	ownerChecksTotal *prometheus.CounterVec
}

// NewMetrics creates the metrics on a private registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,

		codecOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uses_codec_operations_total",
				Help: "Total number of record encode and decode operations",
			},
			[]string{"record", "operation", "status"},
		),

		codecErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uses_codec_errors_total",
				Help: "Total number of failed record operations by error kind",
			},
			[]string{"record", "operation", "kind"},
		),

		codecBytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uses_codec_bytes_total",
				Help: "Total number of bytes produced or consumed by successful record operations",
			},
			[]string{"record", "operation"},
		),

		ownerChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uses_owner_checks_total",
				Help: "Total number of account owner checks",
			},
			[]string{"status", "kind"},
		),
	}

	return m
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCodec records a codec operation. It implements record.Observer.
func (m *Metrics) ObserveCodec(recordName string, op record.Op, size int, err error) {
	if err != nil {
		m.codecOperationsTotal.WithLabelValues(recordName, string(op), statusError).Inc()
		m.codecErrorsTotal.WithLabelValues(recordName, string(op), codec.KindOf(err).String()).Inc()
		return
	}

	m.codecOperationsTotal.WithLabelValues(recordName, string(op), statusSuccess).Inc()
	m.codecBytesTotal.WithLabelValues(recordName, string(op)).Add(float64(size))
}

// RecordOwnerCheck records the outcome of an owner validation
func (m *Metrics) RecordOwnerCheck(err error) {
	if err != nil {
		m.ownerChecksTotal.WithLabelValues(statusError, codec.KindOf(err).String()).Inc()
		return
	}
	m.ownerChecksTotal.WithLabelValues(statusSuccess, "").Inc()
}

// InstrumentValidator wraps v so every check is counted. A nil v means owner.Strict.
func (m *Metrics) InstrumentValidator(v owner.Validator) owner.Validator {
	if v == nil {
		v = owner.Strict{}
	}
	return owner.ValidatorFunc(func(declared []byte, expected owner.Tag) error {
		err := v.ValidateOwner(declared, expected)
		m.RecordOwnerCheck(err)
		return err
	})
}

// WriteTextfile writes the current metric values to path in the Prometheus
// text format, for pickup by a node exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
