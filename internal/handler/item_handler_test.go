package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hammad535/task-manager/internal/dates"
	"github.com/hammad535/task-manager/internal/handler"
	"github.com/hammad535/task-manager/internal/middleware"
	"github.com/hammad535/task-manager/internal/model"
	"github.com/hammad535/task-manager/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.Item, assigneeIDs []uuid.UUID) error {
	args := m.Called(ctx, item, assigneeIDs)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, id)
	item := args.Get(0)
	if item == nil {
		return nil, args.Error(1)
	}
	return item.(*model.Item), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context, boardID, groupID *uuid.UUID) ([]model.Item, error) {
	args := m.Called(ctx, boardID, groupID)
	items := args.Get(0)
	if items == nil {
		return nil, args.Error(1)
	}
	return items.([]model.Item), args.Error(1)
}

func (m *MockItemRepository) GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]model.Item, error) {
	args := m.Called(ctx, groupID)
	items := args.Get(0)
	if items == nil {
		return nil, args.Error(1)
	}
	return items.([]model.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}, assigneeIDs *[]uuid.UUID) error {
	args := m.Called(ctx, id, updates, assigneeIDs)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) MyWork(ctx context.Context, userID uuid.UUID, filter string) ([]model.Item, error) {
	args := m.Called(ctx, userID, filter)
	items := args.Get(0)
	if items == nil {
		return nil, args.Error(1)
	}
	return items.([]model.Item), args.Error(1)
}

// stubActivityLogger records calls without touching a database
type stubActivityLogger struct {
	mu      sync.Mutex
	actions []string
}

func (s *stubActivityLogger) Log(_ context.Context, _, _ uuid.UUID, action, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
}

func (s *stubActivityLogger) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

func setupItemTest(userID uuid.UUID) (*gin.Engine, *MockItemRepository, *stubActivityLogger) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	mockRepo := new(MockItemRepository)
	activity := &stubActivityLogger{}
	itemHandler := handler.NewItemHandler(mockRepo, nil, nil, nil, nil, nil, activity)

	// Inject the authenticated user the way the JWT middleware would
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})

	r.GET("/api/items", itemHandler.List)
	r.PUT("/api/items/:id", itemHandler.Update)
	r.PATCH("/api/items/:id/timeline", itemHandler.UpdateTimeline)
	r.DELETE("/api/items/:id", itemHandler.Delete)

	return r, mockRepo, activity
}

func testItem(id uuid.UUID) *model.Item {
	return &model.Item{
		ID:          id,
		GroupID:     uuid.New(),
		BoardID:     uuid.New(),
		Title:       "Ship release",
		Description: "Cut the release branch",
		Status:      model.StatusToDo,
		Priority:    model.PriorityHigh,
		CreatedAt:   time.Now(),
	}
}

func TestUpdateItem_StatusChangeLogged(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockRepo, activity := setupItemTest(userID)

	itemID := uuid.New()
	current := testItem(itemID)
	updated := testItem(itemID)
	updated.Status = model.StatusDone

	mockRepo.On("GetByID", mock.Anything, itemID).Return(current, nil).Once()
	mockRepo.On("Update", mock.Anything, itemID, mock.Anything, (*[]uuid.UUID)(nil)).Return(nil)
	mockRepo.On("GetByID", mock.Anything, itemID).Return(updated, nil).Once()

	body, _ := json.Marshal(map[string]string{"status": model.StatusDone})
	req, _ := http.NewRequest("PUT", "/api/items/"+itemID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"status_changed"}, activity.Actions())
	mockRepo.AssertExpectations(t)
}

func TestUpdateItem_InvalidStatus(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupItemTest(uuid.New())

	body, _ := json.Marshal(map[string]string{"status": "not_a_status"})
	req, _ := http.NewRequest("PUT", "/api/items/"+uuid.NewString(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateItem_PastDeadlineRejected(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupItemTest(uuid.New())

	past := "2020-01-01"
	body, _ := json.Marshal(map[string]*string{"timeline_end": &past})
	req, _ := http.NewRequest("PUT", "/api/items/"+uuid.NewString(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]interface{}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "deadline cannot be in the past", response["error"])
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateItem_StartAfterDeadlineRejected(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupItemTest(uuid.New())

	start := dates.AddPeriod(dates.Today(), model.FrequencyMonthly)
	end := dates.AddPeriod(dates.Today(), model.FrequencyWeekly)
	body, _ := json.Marshal(map[string]*string{
		"timeline_start": &start,
		"timeline_end":   &end,
	})
	req, _ := http.NewRequest("PUT", "/api/items/"+uuid.NewString(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]interface{}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "start date cannot be after deadline", response["error"])
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateItem_NotFound(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupItemTest(uuid.New())

	itemID := uuid.New()
	mockRepo.On("GetByID", mock.Anything, itemID).Return(nil, repository.ErrItemNotFound)

	body, _ := json.Marshal(map[string]string{"title": "New title"})
	req, _ := http.NewRequest("PUT", "/api/items/"+itemID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestUpdateTimeline_SingleDate(t *testing.T) {
	// Arrange
	router, mockRepo, activity := setupItemTest(uuid.New())

	itemID := uuid.New()
	future := dates.AddPeriod(dates.Today(), model.FrequencyWeekly)
	futureDate := model.LocalDate(future)
	updated := testItem(itemID)
	updated.TimelineStart = &futureDate

	mockRepo.On("GetByID", mock.Anything, itemID).Return(testItem(itemID), nil).Once()
	mockRepo.On("Update", mock.Anything, itemID,
		map[string]interface{}{"timeline_start": future}, (*[]uuid.UUID)(nil)).Return(nil)
	mockRepo.On("GetByID", mock.Anything, itemID).Return(updated, nil).Once()

	body := fmt.Sprintf(`{"date": %q}`, future)
	req, _ := http.NewRequest("PATCH", "/api/items/"+itemID.String()+"/timeline", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"timeline_updated"}, activity.Actions())
	mockRepo.AssertExpectations(t)
}

func TestUpdateTimeline_NestedShapeNormalized(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupItemTest(uuid.New())

	itemID := uuid.New()
	start := dates.AddPeriod(dates.Today(), model.FrequencyDaily)
	end := dates.AddPeriod(dates.Today(), model.FrequencyWeekly)
	startDate := model.LocalDate(start)
	endDate := model.LocalDate(end)
	updated := testItem(itemID)
	updated.TimelineStart = &startDate
	updated.TimelineEnd = &endDate

	mockRepo.On("GetByID", mock.Anything, itemID).Return(testItem(itemID), nil).Once()
	mockRepo.On("Update", mock.Anything, itemID,
		map[string]interface{}{"timeline_start": start, "timeline_end": end},
		(*[]uuid.UUID)(nil)).Return(nil)
	mockRepo.On("GetByID", mock.Anything, itemID).Return(updated, nil).Once()

	// Datetime values get truncated to plain dates
	body := fmt.Sprintf(`{"timeline": {"startDate": %q, "endDate": %q}}`,
		start+"T09:30:00Z", end+"T18:00:00Z")
	req, _ := http.NewRequest("PATCH", "/api/items/"+itemID.String()+"/timeline", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestUpdateTimeline_MissingBodyRejected(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupItemTest(uuid.New())

	req, _ := http.NewRequest("PATCH", "/api/items/"+uuid.NewString()+"/timeline", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]interface{}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t,
		"Provide {date} or {timeline: {startDate, endDate}} or {timeline_start, timeline_end}",
		response["error"])
	mockRepo.AssertNotCalled(t, "Update")
}

func TestListItems_InvalidBoardID(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupItemTest(uuid.New())

	req, _ := http.NewRequest("GET", "/api/items?board_id=not-a-uuid", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "List")
}

func TestDeleteItem_NotFound(t *testing.T) {
	// Arrange
	router, mockRepo, _ := setupItemTest(uuid.New())

	itemID := uuid.New()
	mockRepo.On("Delete", mock.Anything, itemID).Return(repository.ErrItemNotFound)

	req, _ := http.NewRequest("DELETE", "/api/items/"+itemID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockRepo.AssertExpectations(t)
}
