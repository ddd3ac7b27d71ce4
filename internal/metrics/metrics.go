// Package metrics records booking and allocation outcomes in Prometheus.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Allocation outcome labels.
const (
	OutcomeAllocated    = "allocated"
	OutcomeAlternatives = "no_capacity_alternatives"
	OutcomeNoCapacity   = "no_capacity"
	OutcomeFailed       = "failed"
)

// Sink holds the service's Prometheus collectors.
type Sink struct {
	bookings    prometheus.Counter
	allocations *prometheus.CounterVec
}

// NewSink registers the booking metrics on the provided registerer. If reg is
// nil, the default registerer is used. Already-registered collectors are
// reused so repeated construction is safe.
func NewSink(reg prometheus.Registerer) (*Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	bookings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_confirmed_total",
		Help: "Total number of confirmed shipment bookings written",
	})
	allocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_requests_total",
		Help: "Total number of allocation requests by outcome",
	}, []string{"outcome"})

	if err := reg.Register(bookings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			bookings = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(allocations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			allocations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &Sink{bookings: bookings, allocations: allocations}, nil
}

// RecordBooking counts one persisted Confirmed booking.
func (s *Sink) RecordBooking() {
	s.bookings.Inc()
}

// RecordAllocation counts one allocation request by outcome.
func (s *Sink) RecordAllocation(outcome string) {
	s.allocations.WithLabelValues(outcome).Inc()
}
