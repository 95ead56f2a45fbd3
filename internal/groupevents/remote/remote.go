// Package remote defines the capability contracts the scheduling services
// depend on and the circuit-breaker decorators that guard every call to them.
// Orchestration code never talks to the transport clients directly.
package remote

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"

	"groupcal/pkg/model"
)

const (
	UserServiceName  = "user-service"
	EventServiceName = "event-service"
)

// ParticipantResolver resolves a participant identity by id.
type ParticipantResolver interface {
	ResolveParticipant(ctx context.Context, id string) (*model.Participant, error)
}

// BusyIntervalFetcher returns the busy intervals of a participant set over an
// inclusive date range.
type BusyIntervalFetcher interface {
	FetchBusyIntervals(ctx context.Context, participantIDs []string, period model.Period) ([]model.BusyInterval, error)
}

// BreakerSettings are the circuit-breaker thresholds shared by both
// capabilities. They come from configuration, never from code.
type BreakerSettings struct {
	// FailureRate in (0, 1]: the failure fraction within the sliding window
	// that trips the breaker once MinRequests have been observed.
	FailureRate float64
	// MinRequests is the minimum number of calls in the window before the
	// failure rate is evaluated.
	MinRequests int
	// WindowInterval is the length of the sliding window in the Closed state.
	WindowInterval time.Duration
	// OpenTimeout is how long the breaker stays Open before allowing probes.
	OpenTimeout time.Duration
	// HalfOpenMaxCalls bounds the probe calls admitted while Half-Open.
	HalfOpenMaxCalls int
}

// gobreakerSettings maps BreakerSettings onto a gobreaker state machine.
// isExpected classifies errors that are business outcomes (for example a 404
// on a participant lookup) and must not count toward the failure rate.
func (s BreakerSettings) gobreakerSettings(name string, isExpected func(error) bool) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(s.HalfOpenMaxCalls),
		Interval:    s.WindowInterval,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < uint32(s.MinRequests) {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRate
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isExpected(err)
		},
	}
}
