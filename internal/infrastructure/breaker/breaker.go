// Package breaker builds the circuit breakers that guard outbound calls.
package breaker

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Names of the guarded dependencies.
const (
	Mailer    = "SMTP-Mailer"
	Images    = "Cloudinary"
	Payments  = "Paystack"
	Publisher = "RabbitMQ-Publisher"
)

// New creates a circuit breaker that opens after three consecutive failures
// and probes again after a dependency-specific cool-down.
func New(name string, log zerolog.Logger) *gobreaker.CircuitBreaker {
	timeout := 30 * time.Second
	if name == Payments {
		timeout = 15 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}
