package remote

import (
	"context"
	"errors"

	"github.com/sony/gobreaker/v2"

	"groupcal/pkg/client"
	apperrors "groupcal/pkg/errors"
	"groupcal/pkg/logger"
	"groupcal/pkg/model"
)

// ResilientResolver guards a ParticipantResolver with a process-wide circuit
// breaker. NotFound results flow through as domain errors without affecting
// breaker accounting; every other fault counts as a dependency failure and
// surfaces as a SERVICE_UNAVAILABLE error. While the breaker is Open, calls
// short-circuit without touching the network.
type ResilientResolver struct {
	inner ParticipantResolver
	cb    *gobreaker.CircuitBreaker[*model.Participant]
	log   *logger.Logger
}

func NewResilientResolver(inner ParticipantResolver, settings BreakerSettings, log *logger.Logger) *ResilientResolver {
	st := settings.gobreakerSettings(UserServiceName, func(err error) bool {
		return errors.Is(err, client.ErrNotFound)
	})
	st.OnStateChange = logStateChange(log)

	return &ResilientResolver{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[*model.Participant](st),
		log:   log,
	}
}

func (r *ResilientResolver) ResolveParticipant(ctx context.Context, id string) (*model.Participant, error) {
	participant, err := r.cb.Execute(func() (*model.Participant, error) {
		return r.inner.ResolveParticipant(ctx, id)
	})

	switch {
	case err == nil:
		return participant, nil
	case errors.Is(err, client.ErrNotFound):
		return nil, apperrors.NotFoundWithID("User", id)
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		r.log.Warn("Participant resolution short-circuited", "id", id, "breaker", r.cb.Name())
		return nil, apperrors.Unavailable(UserServiceName)
	default:
		r.log.Error("Participant resolution failed", "id", id, "error", err)
		return nil, apperrors.Unavailable(UserServiceName)
	}
}

// State exposes the breaker state for observability.
func (r *ResilientResolver) State() gobreaker.State {
	return r.cb.State()
}

// ResilientFetcher guards a BusyIntervalFetcher the same way. The busy query
// has no NotFound outcome: an unknown participant simply contributes no
// intervals, so every error is a dependency failure.
type ResilientFetcher struct {
	inner BusyIntervalFetcher
	cb    *gobreaker.CircuitBreaker[[]model.BusyInterval]
	log   *logger.Logger
}

func NewResilientFetcher(inner BusyIntervalFetcher, settings BreakerSettings, log *logger.Logger) *ResilientFetcher {
	st := settings.gobreakerSettings(EventServiceName, func(error) bool { return false })
	st.OnStateChange = logStateChange(log)

	return &ResilientFetcher{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[[]model.BusyInterval](st),
		log:   log,
	}
}

func (f *ResilientFetcher) FetchBusyIntervals(ctx context.Context, participantIDs []string, period model.Period) ([]model.BusyInterval, error) {
	intervals, err := f.cb.Execute(func() ([]model.BusyInterval, error) {
		return f.inner.FetchBusyIntervals(ctx, participantIDs, period)
	})

	switch {
	case err == nil:
		return intervals, nil
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		f.log.Warn("Busy interval fetch short-circuited",
			"participants", len(participantIDs),
			"breaker", f.cb.Name(),
		)
		return nil, apperrors.Unavailable(EventServiceName)
	default:
		f.log.Error("Busy interval fetch failed",
			"participants", len(participantIDs),
			"period_start", period.Start,
			"period_end", period.End,
			"error", err,
		)
		return nil, apperrors.Unavailable(EventServiceName)
	}
}

func (f *ResilientFetcher) State() gobreaker.State {
	return f.cb.State()
}

func logStateChange(log *logger.Logger) func(name string, from, to gobreaker.State) {
	return func(name string, from, to gobreaker.State) {
		log.Warn("Circuit breaker state changed",
			"breaker", name,
			"from", from.String(),
			"to", to.String(),
		)
	}
}
