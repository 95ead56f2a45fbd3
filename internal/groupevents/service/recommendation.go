package service

import (
	"context"
	"errors"

	groupeventerrors "groupcal/internal/groupevents/errors"
	"groupcal/internal/groupevents/notifier"
	"groupcal/internal/groupevents/remote"
	"groupcal/internal/groupevents/repository"
	"groupcal/internal/groupevents/slots"
	"groupcal/internal/groupevents/validator"
	"groupcal/pkg/config"
	apperrors "groupcal/pkg/errors"
	"groupcal/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type RecommendationService interface {
	RecommendSlots(ctx context.Context, eventID string, period model.Period, durationMin int) ([]model.TimeSlot, error)
	BookSlot(ctx context.Context, eventID string, slot model.TimeSlot) (*model.GroupEvent, error)
}

type recommendationService struct {
	repo      repository.GroupEventRepository
	fetcher   remote.BusyIntervalFetcher
	notifier  notifier.EventNotifier
	validator *validator.GroupEventValidator
	cfg       *config.Config
}

func NewRecommendationService(
	repo repository.GroupEventRepository,
	fetcher remote.BusyIntervalFetcher,
	eventNotifier notifier.EventNotifier,
	validator *validator.GroupEventValidator,
	cfg *config.Config,
) RecommendationService {
	return &recommendationService{
		repo:      repo,
		fetcher:   fetcher,
		notifier:  eventNotifier,
		validator: validator,
		cfg:       cfg,
	}
}

// RecommendSlots collects the busy intervals of every participant over the
// requested period and returns up to the configured number of earliest common
// free slots. An event with no common free time is a conflict, not an error.
func (s *recommendationService) RecommendSlots(ctx context.Context, eventID string, period model.Period, durationMin int) ([]model.TimeSlot, error) {
	window := s.cfg.DayWindow()
	if err := s.validator.ValidateRecommendation(period, durationMin, window); err != nil {
		return nil, apperrors.Validation("Recommendation request validation failed", map[string]any{
			"validation_errors": err.Error(),
		})
	}

	ge, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	busy, err := s.fetcher.FetchBusyIntervals(ctx, ge.ParticipantIDs, period)
	if err != nil {
		s.cfg.Log.Warn("Busy interval collection failed",
			"id", eventID,
			"participants", len(ge.ParticipantIDs),
			"error", err,
		)
		return nil, err
	}

	candidates, err := slots.FindCommonFreeSlots(period, busy, durationMin, window)
	if err != nil {
		return nil, apperrors.Internal("Slot calculation failed", err)
	}
	if len(candidates) == 0 {
		return nil, apperrors.NoAvailableSlots("No common free slot satisfies the requested duration and period")
	}

	if len(candidates) > s.cfg.MaxRecommendations {
		candidates = candidates[:s.cfg.MaxRecommendations]
	}

	s.cfg.Log.Info("Slot recommendations computed",
		"id", eventID,
		"busy_intervals", len(busy),
		"recommendations", len(candidates),
	)
	return candidates, nil
}

// BookSlot commits a slot onto the event and flips it to confirmed. Load and
// update run in one transaction so a concurrent delete cannot leave a
// confirmed slot on a missing event. Rebooking a confirmed event overwrites
// the previous slot.
func (s *recommendationService) BookSlot(ctx context.Context, eventID string, slot model.TimeSlot) (*model.GroupEvent, error) {
	if eventID == "" {
		return nil, apperrors.InvalidInput("Group event ID cannot be empty")
	}
	if err := s.validator.ValidateBooking(slot.Date, slot.StartTime, slot.EndTime); err != nil {
		return nil, apperrors.Validation("Booking request validation failed", map[string]any{
			"validation_errors": err.Error(),
		})
	}

	var booked *model.GroupEvent
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		ge, err := s.findEvent(sessCtx, eventID)
		if err != nil {
			return err
		}

		ge.Date = slot.Date
		ge.StartTime = slot.StartTime
		ge.EndTime = slot.EndTime
		ge.Status = model.StatusConfirmed

		if _, err := s.repo.Update(sessCtx, eventID, ge); err != nil {
			if errors.Is(err, groupeventerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Group event", eventID)
			}
			return apperrors.Internal("Failed to book slot", err)
		}

		booked = ge
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to book slot", "id", eventID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Slot booked",
		"id", booked.ID,
		"date", booked.Date,
		"start_time", booked.StartTime,
		"end_time", booked.EndTime,
	)

	if err := s.notifier.SlotBooked(ctx, booked); err != nil {
		s.cfg.Log.Warn("Failed to publish booking notification", "id", booked.ID, "error", err)
	}
	return booked, nil
}

func (s *recommendationService) findEvent(ctx context.Context, id string) (*model.GroupEvent, error) {
	ge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, groupeventerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Group event", id)
		}
		if errors.Is(err, groupeventerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid group event ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve group event", err)
	}
	return ge, nil
}
