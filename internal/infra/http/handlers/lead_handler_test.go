package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/ai"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// MockLeadsUseCase
type MockLeadsUseCase struct {
	mock.Mock
}

func (m *MockLeadsUseCase) Create(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadsUseCase) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadsUseCase) FindOne(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadsUseCase) GenerateSummary(ctx context.Context, id string) (ai.Result, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ai.Result), args.Error(1)
}

func testRouter(h *LeadHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/create-lead", h.Create)
	r.Get("/leads", h.List)
	r.Get("/leads/{id}", h.Get)
	r.Post("/leads/{id}/summarize", h.Summarize)
	return r
}

func TestCreateLeadHandlerSuccess(t *testing.T) {
	service := new(MockLeadsUseCase)
	service.On("Create", mock.Anything, mock.Anything).Return(&entity.Lead{
		ID:    "lead-1",
		Email: "maria@example.com",
	}, nil)

	body, _ := json.Marshal(usecase.CreateLeadInput{
		FirstName: "Maria", LastName: "Souza", Email: "maria@example.com",
		Phone: "1", Cell: "2", PictureLarge: "3",
	})

	req := httptest.NewRequest(http.MethodPost, "/create-lead", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(NewLeadHandler(service)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var lead entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, "lead-1", lead.ID)
}

func TestCreateLeadHandlerConflict(t *testing.T) {
	service := new(MockLeadsUseCase)
	service.On("Create", mock.Anything, mock.Anything).Return(nil, &usecase.DomainError{
		Code:    "LEAD_CONFLICT",
		Message: "Lead with this email already exists",
	})

	req := httptest.NewRequest(http.MethodPost, "/create-lead", bytes.NewReader([]byte(`{"email": "dup@example.com"}`)))
	rec := httptest.NewRecorder()
	testRouter(NewLeadHandler(service)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateLeadHandlerValidationError(t *testing.T) {
	service := new(MockLeadsUseCase)
	service.On("Create", mock.Anything, mock.Anything).Return(nil, &usecase.DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "validation failed",
	})

	req := httptest.NewRequest(http.MethodPost, "/create-lead", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	testRouter(NewLeadHandler(service)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLeadHandlerNotFound(t *testing.T) {
	service := new(MockLeadsUseCase)
	service.On("FindOne", mock.Anything, "ghost").Return(nil, entity.ErrLeadNotFound)

	req := httptest.NewRequest(http.MethodGet, "/leads/ghost", nil)
	rec := httptest.NewRecorder()
	testRouter(NewLeadHandler(service)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLeadsHandlerEmpty(t *testing.T) {
	service := new(MockLeadsUseCase)
	service.On("FindAll", mock.Anything).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rec := httptest.NewRecorder()
	testRouter(NewLeadHandler(service)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSummarizeHandler(t *testing.T) {
	service := new(MockLeadsUseCase)
	service.On("GenerateSummary", mock.Anything, "lead-1").Return(ai.Result{
		Summary:    "AI summary",
		NextAction: "Call tomorrow",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/lead-1/summarize", nil)
	rec := httptest.NewRecorder()
	testRouter(NewLeadHandler(service)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result ai.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "AI summary", result.Summary)
	assert.Equal(t, "Call tomorrow", result.NextAction)
}

func TestCreateLeadHandlerRateLimited(t *testing.T) {
	service := new(MockLeadsUseCase)
	service.On("Create", mock.Anything, mock.Anything).Return(&entity.Lead{ID: "x"}, nil)

	handler := NewLeadHandler(service)
	router := testRouter(handler)

	// 11ª requisição do mesmo IP estoura o limite de 10/min
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/create-lead", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodPost, "/create-lead", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
