package service

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	groupeventerrors "groupcal/internal/groupevents/errors"
	"groupcal/internal/groupevents/notifier"
	"groupcal/internal/groupevents/remote"
	"groupcal/internal/groupevents/repository"
	"groupcal/internal/groupevents/validator"
	"groupcal/pkg/config"
	apperrors "groupcal/pkg/errors"
	"groupcal/pkg/model"
	"groupcal/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type GroupEventService interface {
	Create(ctx context.Context, ge *model.GroupEvent) error
	GetByID(ctx context.Context, id string) (*model.GroupEvent, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, int64, error)
	Delete(ctx context.Context, id string) error
}

type groupEventService struct {
	repo      repository.GroupEventRepository
	resolver  remote.ParticipantResolver
	notifier  notifier.EventNotifier
	validator *validator.GroupEventValidator
	cfg       *config.Config
}

func NewGroupEventService(
	repo repository.GroupEventRepository,
	resolver remote.ParticipantResolver,
	eventNotifier notifier.EventNotifier,
	validator *validator.GroupEventValidator,
	cfg *config.Config,
) GroupEventService {
	return &groupEventService{
		repo:      repo,
		resolver:  resolver,
		notifier:  eventNotifier,
		validator: validator,
		cfg:       cfg,
	}
}

// Create validates every participant against the user service before anything
// is persisted. The owner is resolved first so a bad owner id fails fast, the
// remaining participants are resolved concurrently, and a single failure
// aborts the whole creation with nothing written.
func (s *groupEventService) Create(ctx context.Context, ge *model.GroupEvent) error {
	s.applyDefaults(ge)
	s.sanitize(ge)

	if err := s.validator.Validate(ge); err != nil {
		return apperrors.Validation("Group event validation failed", map[string]any{
			"validation_errors": err.Error(),
		})
	}

	if _, err := s.resolver.ResolveParticipant(ctx, ge.OwnerID); err != nil {
		s.cfg.Log.Warn("Owner resolution failed", "owner_id", ge.OwnerID, "error", err)
		return err
	}

	if err := s.resolveParticipants(ctx, ge.ParticipantIDs, ge.OwnerID); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Create(sessCtx, ge); err != nil {
			return apperrors.Internal("Failed to create group event", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create group event", "error", err)
		return err
	}

	s.cfg.Log.Info("Group event created",
		"id", ge.ID,
		"owner_id", ge.OwnerID,
		"participants", len(ge.ParticipantIDs),
	)

	if err := s.notifier.GroupEventCreated(ctx, ge); err != nil {
		s.cfg.Log.Warn("Failed to publish creation notification", "id", ge.ID, "error", err)
	}
	return nil
}

// resolveParticipants fans out one resolution per participant, bounded by the
// configured concurrency limit. The owner was already resolved and is skipped.
func (s *groupEventService) resolveParticipants(ctx context.Context, ids []string, ownerID string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentResolves)

	for _, id := range ids {
		if id == ownerID {
			continue
		}
		id := id
		g.Go(func() error {
			_, err := s.resolver.ResolveParticipant(gctx, id)
			if err != nil {
				s.cfg.Log.Warn("Participant resolution failed", "participant_id", id, "error", err)
			}
			return err
		})
	}

	return g.Wait()
}

func (s *groupEventService) GetByID(ctx context.Context, id string) (*model.GroupEvent, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Group event ID cannot be empty")
	}

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

func (s *groupEventService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var events []*model.GroupEvent
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		events, errFind = s.repo.FindAll(ctx, limit, offset)
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, apperrors.Internal("Failed to count group events", errCount)
	}
	if errFind != nil {
		return nil, 0, apperrors.Internal("Failed to list group events", errFind)
	}

	return events, count, nil
}

func (s *groupEventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Group event ID cannot be empty")
	}

	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, groupeventerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Group event", id)
		}
		if errors.Is(err, groupeventerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid group event ID format")
		}
		return apperrors.Internal("Failed to delete group event", err)
	}

	s.cfg.Log.Info("Group event deleted", "id", id)
	return nil
}

func (s *groupEventService) applyDefaults(ge *model.GroupEvent) {
	if ge.Status == "" {
		ge.Status = model.StatusPending
	}
}

// sanitize normalizes free-text fields and folds the owner into the
// deduplicated participant set: the owner always attends their own event.
func (s *groupEventService) sanitize(ge *model.GroupEvent) {
	ge.Name = sanitizer.NormalizeName(ge.Name)
	ge.Description = sanitizer.TrimAndNormalize(ge.Description)
	ge.OwnerID = sanitizer.TrimAndNormalize(ge.OwnerID)

	ids := make([]string, 0, len(ge.ParticipantIDs)+1)
	if ge.OwnerID != "" {
		ids = append(ids, ge.OwnerID)
	}
	ids = append(ids, ge.ParticipantIDs...)
	ge.ParticipantIDs = sanitizer.NormalizeIDs(ids)
}
