package scheduler

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/OCAP2/painter/internal/scheduler"

// WithMeter records sweep metrics on m instead of the global meter provider.
func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		if m != nil {
			c.meter = m
		}
	}
}

func defaultMeter() metric.Meter {
	return otel.Meter(instrumentationName)
}
