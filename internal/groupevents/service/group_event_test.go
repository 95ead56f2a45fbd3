package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	groupeventerrors "groupcal/internal/groupevents/errors"
	"groupcal/internal/groupevents/notifier"
	"groupcal/internal/groupevents/validator"
	"groupcal/pkg/config"
	mongotx "groupcal/pkg/db/mongo"
	apperrors "groupcal/pkg/errors"
	"groupcal/pkg/logger"
	"groupcal/pkg/model"
)

// Mock repository for testing
type mockGroupEventRepository struct {
	createFunc   func(ctx context.Context, ge *model.GroupEvent) error
	findByIDFunc func(ctx context.Context, id string) (*model.GroupEvent, error)
	findAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, error)
	updateFunc   func(ctx context.Context, id string, ge *model.GroupEvent) (*mongo.UpdateResult, error)
	deleteFunc   func(ctx context.Context, id string) error
	countFunc    func(ctx context.Context) (int64, error)

	mu      sync.Mutex
	created []*model.GroupEvent
}

func (m *mockGroupEventRepository) Create(ctx context.Context, ge *model.GroupEvent) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, ge)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ge.ID = "65f000000000000000000001"
	m.created = append(m.created, ge)
	return nil
}

func (m *mockGroupEventRepository) FindByID(ctx context.Context, id string) (*model.GroupEvent, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, groupeventerrors.ErrNotFound
}

func (m *mockGroupEventRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.GroupEvent{}, nil
}

func (m *mockGroupEventRepository) Update(ctx context.Context, id string, ge *model.GroupEvent) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, ge)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockGroupEventRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockGroupEventRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockGroupEventRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func (m *mockGroupEventRepository) createdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

// Mock participant resolver
type mockResolver struct {
	resolveFunc func(ctx context.Context, id string) (*model.Participant, error)
	calls       atomic.Int64
}

func (m *mockResolver) ResolveParticipant(ctx context.Context, id string) (*model.Participant, error) {
	m.calls.Add(1)
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, id)
	}
	return &model.Participant{ID: id, Username: "user-" + id}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Service: "test",
	})
	return &config.Config{
		Log:                   log,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
		MaxConcurrentResolves: 4,
		MaxRecommendations:    5,
		DayWindowStart:        "00:00",
		DayWindowEnd:          "24:00",
	}
}

func newTestService(t *testing.T, repo *mockGroupEventRepository, resolver *mockResolver) GroupEventService {
	t.Helper()
	cfg := testConfig(t)
	v := validator.NewGroupEventValidator(cfg.Log)
	return NewGroupEventService(repo, resolver, notifier.NewNoop(), v, cfg)
}

func pendingEvent() *model.GroupEvent {
	return &model.GroupEvent{
		Name:           "Design review",
		Description:    "Weekly sync",
		OwnerID:        "10",
		ParticipantIDs: []string{"11", "12"},
	}
}

func TestCreate_ResolvesAllParticipantsAndPersists(t *testing.T) {
	repo := &mockGroupEventRepository{}
	resolver := &mockResolver{}
	svc := newTestService(t, repo, resolver)

	ge := pendingEvent()
	if err := svc.Create(context.Background(), ge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ge.Status != model.StatusPending {
		t.Errorf("expected status %q, got %q", model.StatusPending, ge.Status)
	}
	if ge.ID == "" {
		t.Error("expected ID to be assigned on create")
	}
	// Owner folded into the participant set, ahead of the others.
	if len(ge.ParticipantIDs) != 3 || ge.ParticipantIDs[0] != "10" {
		t.Errorf("expected owner-first participant set of 3, got %v", ge.ParticipantIDs)
	}
	// One resolution per distinct participant, owner included.
	if got := resolver.calls.Load(); got != 3 {
		t.Errorf("expected 3 resolver calls, got %d", got)
	}
	if repo.createdCount() != 1 {
		t.Errorf("expected 1 persisted event, got %d", repo.createdCount())
	}
}

func TestCreate_DeduplicatesParticipants(t *testing.T) {
	repo := &mockGroupEventRepository{}
	resolver := &mockResolver{}
	svc := newTestService(t, repo, resolver)

	ge := pendingEvent()
	ge.ParticipantIDs = []string{"11", " 11 ", "10", "12", "12"}
	if err := svc.Create(context.Background(), ge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ge.ParticipantIDs) != 3 {
		t.Errorf("expected 3 distinct participants, got %v", ge.ParticipantIDs)
	}
}

func TestCreate_UnknownParticipantAbortsWithoutPersisting(t *testing.T) {
	repo := &mockGroupEventRepository{}
	resolver := &mockResolver{
		resolveFunc: func(ctx context.Context, id string) (*model.Participant, error) {
			if id == "12" {
				return nil, apperrors.NotFoundWithID("User", id)
			}
			return &model.Participant{ID: id}, nil
		},
	}
	svc := newTestService(t, repo, resolver)

	err := svc.Create(context.Background(), pendingEvent())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if repo.createdCount() != 0 {
		t.Errorf("expected nothing persisted, got %d events", repo.createdCount())
	}
}

func TestCreate_UserServiceUnavailableAbortsWithoutPersisting(t *testing.T) {
	repo := &mockGroupEventRepository{}
	resolver := &mockResolver{
		resolveFunc: func(ctx context.Context, id string) (*model.Participant, error) {
			return nil, apperrors.Unavailable("user-service")
		},
	}
	svc := newTestService(t, repo, resolver)

	err := svc.Create(context.Background(), pendingEvent())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperrors.IsCode(err, apperrors.CodeUnavailable) {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
	if repo.createdCount() != 0 {
		t.Errorf("expected nothing persisted, got %d events", repo.createdCount())
	}
	// The owner fails fast, the fan-out never starts.
	if got := resolver.calls.Load(); got != 1 {
		t.Errorf("expected 1 resolver call, got %d", got)
	}
}

func TestCreate_InvalidEventSkipsResolution(t *testing.T) {
	repo := &mockGroupEventRepository{}
	resolver := &mockResolver{}
	svc := newTestService(t, repo, resolver)

	ge := pendingEvent()
	ge.Name = "x"
	err := svc.Create(context.Background(), ge)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
	if got := resolver.calls.Load(); got != 0 {
		t.Errorf("expected no resolver calls, got %d", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockGroupEventRepository{}
	svc := newTestService(t, repo, &mockResolver{})

	_, err := svc.GetByID(context.Background(), "65f000000000000000000099")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetAll_CombinesCountAndFind(t *testing.T) {
	repo := &mockGroupEventRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, error) {
			time.Sleep(5 * time.Millisecond)
			return []*model.GroupEvent{{ID: "1", Name: "Event 1"}}, nil
		},
	}
	svc := newTestService(t, repo, &mockResolver{})

	events, count, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockGroupEventRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return groupeventerrors.ErrNotFound
		},
	}
	svc := newTestService(t, repo, &mockResolver{})

	err := svc.Delete(context.Background(), "65f000000000000000000099")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
