package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/electronicart/marketing-agent/internal/entity"
	"github.com/electronicart/marketing-agent/internal/usecase"
)

// MockMailDispatcher
type MockMailDispatcher struct {
	mock.Mock
}

func (m *MockMailDispatcher) Send(ctx context.Context, to, subject, body string) (*usecase.DispatchResult, error) {
	args := m.Called(ctx, to, subject, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DispatchResult), args.Error(1)
}

func newApproveRouter(repo *MockLeadRepository, dispatcher *MockMailDispatcher, secret string) *chi.Mux {
	var d usecase.MailDispatcher
	if dispatcher != nil {
		d = dispatcher
	}
	approve := usecase.NewApproveLeadUseCase(repo, d, secret)
	h := NewApproveHandler(approve, "sendgrid")

	r := chi.NewRouter()
	r.Post("/lead/{id}/approve", h.Handle)
	return r
}

func storedLead() *entity.Lead {
	return &entity.Lead{
		ID:           7,
		Name:         "Ana",
		Email:        "ana@x.com",
		Budget:       1500,
		Need:         "aftermovie na event",
		Segment:      entity.SegmentEventStream,
		Status:       entity.StatusDraftReady,
		DraftSubject: "Propozycja współpracy",
		DraftBody:    "Cześć Ana...",
		CreatedAt:    time.Now(),
	}
}

func TestApproveHandlerSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockMailDispatcher)

	repo.On("FindByID", mock.Anything, int64(7)).Return(storedLead(), nil)
	dispatcher.On("Send", mock.Anything, "ana@x.com", "Propozycja współpracy", "Cześć Ana...").
		Return(&usecase.DispatchResult{Provider: "sendgrid", MessageID: "msg-1", StatusCode: 202}, nil)
	repo.On("MarkSent", mock.Anything, int64(7), mock.AnythingOfType("time.Time")).Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/lead/7/approve", nil)
	req.Header.Set(SecretHeader, "super-tajne")
	rec := httptest.NewRecorder()

	newApproveRouter(repo, dispatcher, "super-tajne").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.ApproveLeadOutput
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, "SENT", out.Status)
	assert.Equal(t, "sendgrid", out.Dispatch.Provider)
	dispatcher.AssertNumberOfCalls(t, "Send", 1)
}

func TestApproveHandlerWrongSecret(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockMailDispatcher)

	req := httptest.NewRequest(http.MethodPost, "/lead/7/approve", nil)
	req.Header.Set(SecretHeader, "zgadywanie")
	rec := httptest.NewRecorder()

	newApproveRouter(repo, dispatcher, "super-tajne").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var errResp errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "UNAUTHORIZED", errResp.Error)
	repo.AssertNotCalled(t, "FindByID")
	dispatcher.AssertNotCalled(t, "Send")
}

func TestApproveHandlerNoServerSecret(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockMailDispatcher)

	req := httptest.NewRequest(http.MethodPost, "/lead/7/approve", nil)
	req.Header.Set(SecretHeader, "cokolwiek")
	rec := httptest.NewRecorder()

	newApproveRouter(repo, dispatcher, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "SECRET_NOT_CONFIGURED", errResp.Error)
}

func TestApproveHandlerUnknownLead(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockMailDispatcher)

	repo.On("FindByID", mock.Anything, int64(99)).Return(nil, entity.ErrLeadNotFound)

	req := httptest.NewRequest(http.MethodPost, "/lead/99/approve", nil)
	req.Header.Set(SecretHeader, "super-tajne")
	rec := httptest.NewRecorder()

	newApproveRouter(repo, dispatcher, "super-tajne").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	dispatcher.AssertNotCalled(t, "Send")
}

func TestApproveHandlerAlreadySent(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockMailDispatcher)

	sentAt := time.Now().Add(-time.Hour)
	lead := storedLead()
	lead.Status = entity.StatusSent
	lead.SentAt = &sentAt
	repo.On("FindByID", mock.Anything, int64(7)).Return(lead, nil)

	req := httptest.NewRequest(http.MethodPost, "/lead/7/approve", nil)
	req.Header.Set(SecretHeader, "super-tajne")
	rec := httptest.NewRecorder()

	newApproveRouter(repo, dispatcher, "super-tajne").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.ApproveLeadOutput
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.True(t, out.AlreadySent)
	dispatcher.AssertNotCalled(t, "Send")
	repo.AssertNotCalled(t, "MarkSent")
}

func TestApproveHandlerMissingDraft(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockMailDispatcher)

	lead := storedLead()
	lead.DraftSubject = ""
	lead.DraftBody = ""
	repo.On("FindByID", mock.Anything, int64(7)).Return(lead, nil)

	req := httptest.NewRequest(http.MethodPost, "/lead/7/approve", nil)
	req.Header.Set(SecretHeader, "super-tajne")
	rec := httptest.NewRecorder()

	newApproveRouter(repo, dispatcher, "super-tajne").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var errResp errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "DRAFT_MISSING", errResp.Error)
	dispatcher.AssertNotCalled(t, "Send")
}

func TestApproveHandlerDispatchFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockMailDispatcher)

	repo.On("FindByID", mock.Anything, int64(7)).Return(storedLead(), nil)
	dispatcher.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/lead/7/approve", nil)
	req.Header.Set(SecretHeader, "super-tajne")
	rec := httptest.NewRecorder()

	newApproveRouter(repo, dispatcher, "super-tajne").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var errResp errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "DISPATCH_FAILED", errResp.Error)
	repo.AssertNotCalled(t, "MarkSent")
}

func TestApproveHandlerNonNumericID(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockMailDispatcher)

	req := httptest.NewRequest(http.MethodPost, "/lead/abc/approve", nil)
	req.Header.Set(SecretHeader, "super-tajne")
	rec := httptest.NewRecorder()

	newApproveRouter(repo, dispatcher, "super-tajne").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
