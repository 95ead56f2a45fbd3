package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "groupcal/pkg/errors"
	"groupcal/pkg/logger"
	"groupcal/pkg/model"
)

// Mock services for testing
type mockGroupEventService struct {
	createFunc  func(ctx context.Context, ge *model.GroupEvent) error
	getByIDFunc func(ctx context.Context, id string) (*model.GroupEvent, error)
	getAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, int64, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockGroupEventService) Create(ctx context.Context, ge *model.GroupEvent) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, ge)
	}
	ge.ID = "65f000000000000000000001"
	ge.Status = model.StatusPending
	return nil
}

func (m *mockGroupEventService) GetByID(ctx context.Context, id string) (*model.GroupEvent, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.GroupEvent{ID: id}, nil
}

func (m *mockGroupEventService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.GroupEvent, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, limit, offset)
	}
	return []*model.GroupEvent{}, 0, nil
}

func (m *mockGroupEventService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockRecommendationService struct {
	recommendFunc func(ctx context.Context, eventID string, period model.Period, durationMin int) ([]model.TimeSlot, error)
	bookFunc      func(ctx context.Context, eventID string, slot model.TimeSlot) (*model.GroupEvent, error)
}

func (m *mockRecommendationService) RecommendSlots(ctx context.Context, eventID string, period model.Period, durationMin int) ([]model.TimeSlot, error) {
	if m.recommendFunc != nil {
		return m.recommendFunc(ctx, eventID, period, durationMin)
	}
	return []model.TimeSlot{}, nil
}

func (m *mockRecommendationService) BookSlot(ctx context.Context, eventID string, slot model.TimeSlot) (*model.GroupEvent, error) {
	if m.bookFunc != nil {
		return m.bookFunc(ctx, eventID, slot)
	}
	return &model.GroupEvent{ID: eventID, Status: model.StatusConfirmed}, nil
}

func testHandler(events *mockGroupEventService, recs *mockRecommendationService) *GroupEventHandler {
	log := logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Service: "test",
	})
	return NewGroupEventHandler(events, recs, log)
}

func testRouter(h *GroupEventHandler) *httprouter.Router {
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreate_ReturnsCreatedEvent(t *testing.T) {
	h := testHandler(&mockGroupEventService{}, &mockRecommendationService{})
	router := testRouter(h)

	body := `{"name":"Design review","owner_id":"10","participant_ids":["11","12"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-events", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.GroupEvent `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID == "" {
		t.Error("expected event ID in response")
	}
	if resp.Data.Status != model.StatusPending {
		t.Errorf("expected pending status, got %q", resp.Data.Status)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	h := testHandler(&mockGroupEventService{}, &mockRecommendationService{})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-events", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreate_UnknownParticipant(t *testing.T) {
	events := &mockGroupEventService{
		createFunc: func(ctx context.Context, ge *model.GroupEvent) error {
			return apperrors.NotFoundWithID("User", "12")
		},
	}
	h := testHandler(events, &mockRecommendationService{})
	router := testRouter(h)

	body := `{"name":"Design review","owner_id":"10","participant_ids":["11","12"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-events", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetAll_InvalidLimit(t *testing.T) {
	h := testHandler(&mockGroupEventService{}, &mockRecommendationService{})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/group-events?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	events := &mockGroupEventService{
		getByIDFunc: func(ctx context.Context, id string) (*model.GroupEvent, error) {
			return nil, apperrors.NotFoundWithID("Group event", id)
		},
	}
	h := testHandler(events, &mockRecommendationService{})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/group-events/65f000000000000000000099", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRecommend_ReturnsSlots(t *testing.T) {
	recs := &mockRecommendationService{
		recommendFunc: func(ctx context.Context, eventID string, period model.Period, durationMin int) ([]model.TimeSlot, error) {
			if period.Start != "2026-03-10" || period.End != "2026-03-12" || durationMin != 30 {
				t.Errorf("unexpected request passthrough: %+v %d", period, durationMin)
			}
			return []model.TimeSlot{
				{Date: "2026-03-10", StartTime: "11:00", EndTime: "11:30"},
			}, nil
		},
	}
	h := testHandler(&mockGroupEventService{}, recs)
	router := testRouter(h)

	body := `{"period_start":"2026-03-10","period_end":"2026-03-12","duration_min":30}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-events/65f000000000000000000001/recommendations", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []model.TimeSlot `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].StartTime != "11:00" {
		t.Errorf("unexpected slots: %+v", resp.Data)
	}
}

func TestRecommend_NoAvailableSlots(t *testing.T) {
	recs := &mockRecommendationService{
		recommendFunc: func(ctx context.Context, eventID string, period model.Period, durationMin int) ([]model.TimeSlot, error) {
			return nil, apperrors.NoAvailableSlots("No common free slot satisfies the requested duration and period")
		},
	}
	h := testHandler(&mockGroupEventService{}, recs)
	router := testRouter(h)

	body := `{"period_start":"2026-03-10","period_end":"2026-03-10","duration_min":30}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-events/65f000000000000000000001/recommendations", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRecommend_ServiceUnavailable(t *testing.T) {
	recs := &mockRecommendationService{
		recommendFunc: func(ctx context.Context, eventID string, period model.Period, durationMin int) ([]model.TimeSlot, error) {
			return nil, apperrors.Unavailable("event-service")
		},
	}
	h := testHandler(&mockGroupEventService{}, recs)
	router := testRouter(h)

	body := `{"period_start":"2026-03-10","period_end":"2026-03-10","duration_min":30}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-events/65f000000000000000000001/recommendations", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestBook_ConfirmsEvent(t *testing.T) {
	recs := &mockRecommendationService{
		bookFunc: func(ctx context.Context, eventID string, slot model.TimeSlot) (*model.GroupEvent, error) {
			return &model.GroupEvent{
				ID:        eventID,
				Status:    model.StatusConfirmed,
				Date:      slot.Date,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			}, nil
		},
	}
	h := testHandler(&mockGroupEventService{}, recs)
	router := testRouter(h)

	body := `{"date":"2026-03-10","start_time":"11:00","end_time":"11:30"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/group-events/65f000000000000000000001/booking", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.GroupEvent `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != model.StatusConfirmed {
		t.Errorf("expected confirmed status, got %q", resp.Data.Status)
	}
	if resp.Data.Date != "2026-03-10" {
		t.Errorf("expected booked date, got %q", resp.Data.Date)
	}
}

func TestDelete_ReturnsNoContent(t *testing.T) {
	h := testHandler(&mockGroupEventService{}, &mockRecommendationService{})
	router := testRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/group-events/65f000000000000000000001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
