package invitation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/lanelink/lanelink/internal/email"
	"github.com/lanelink/lanelink/internal/template"
)

// recordingSender captures dispatched payloads instead of hitting a provider.
type recordingSender struct {
	mu       sync.Mutex
	payloads []email.Payload
}

func (s *recordingSender) Send(_ context.Context, p email.Payload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, p)
	return "msg-test", nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *Repository) {
	t.Helper()

	repo := newTestRepository()
	templates := template.NewStore()
	svc := NewService(repo, templates, &recordingSender{})

	r := chi.NewRouter()
	r.Post("/api/v1/invitations", HandleCreate(svc))
	r.Get("/api/v1/invitations", HandleList(repo))
	r.Get("/api/v1/invitations/analytics", HandleAnalytics(NewAggregator(repo)))
	r.Get("/api/v1/invitations/by-referral/{code}", HandleFindByReferral(repo))
	r.Get("/api/v1/invitations/{id}", HandleGet(repo))
	r.Get("/api/v1/invitations/{id}/valid", HandleValidity(repo))
	r.Post("/api/v1/invitations/{id}/events", HandleEvent(repo))
	return r, repo
}

func createBody() string {
	return `{
		"invited_by": "John Smith",
		"invitation_type": "link",
		"target_carrier": {
			"company_name": "Acme",
			"contact_name": "Sam",
			"email": "a@b.com"
		}
	}`
}

func TestHandleCreate_Success(t *testing.T) {
	router, repo := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invitations", strings.NewReader(createBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, repo.Count())

	var resp struct {
		Data struct {
			Invitation Invitation `json:"invitation"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, StatusSent, resp.Data.Invitation.Status)
	require.Contains(t, resp.Data.Invitation.InvitationLink, "carrier=Acme")
}

func TestHandleCreate_MissingInviter(t *testing.T) {
	router, repo := newTestRouter(t)

	body := `{"invitation_type": "link", "target_carrier": {"company_name": "Acme", "contact_name": "Sam", "email": "a@b.com"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invitations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, repo.Count())
}

func TestHandleCreate_InvalidEmail(t *testing.T) {
	router, repo := newTestRouter(t)

	body := `{"invited_by": "John", "invitation_type": "email", "target_carrier": {"company_name": "Acme", "contact_name": "Sam", "email": "bogus"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invitations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, repo.Count())
}

func TestHandleEvent_AdvancesFunnel(t *testing.T) {
	router, repo := newTestRouter(t)

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)

	for _, event := range []string{"opened", "started", "completed"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invitations/"+inv.ID+"/events",
			strings.NewReader(`{"event": "`+event+`"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	stored, err := repo.Get(inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, stored.Status)
}

func TestHandleEvent_UnknownInvitation(t *testing.T) {
	router, repo := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invitations/INV-0-missing/events",
		strings.NewReader(`{"event": "opened"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, repo.ListAll())
}

func TestHandleList_StatusFilter(t *testing.T) {
	router, repo := newTestRouter(t)

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)
	require.True(t, repo.Advance(inv.ID, StatusOpened))
	_, err = repo.Create(validRequest())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations?status=opened", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Count)
}

func TestHandleList_UnknownStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations?status=mislaid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFindByReferral(t *testing.T) {
	router, repo := newTestRouter(t)

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations/by-referral/"+inv.Metadata.ReferralCode, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/invitations/by-referral/BRO-ZZ-999", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleValidity(t *testing.T) {
	router, repo := newTestRouter(t)

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations/"+inv.ID+"/valid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Valid)
}

func TestHandleAnalytics_SingleRecordFunnel(t *testing.T) {
	router, repo := newTestRouter(t)

	inv, err := repo.Create(validRequest())
	require.NoError(t, err)
	require.True(t, repo.Advance(inv.ID, StatusOpened))
	require.True(t, repo.Advance(inv.ID, StatusStarted))
	require.True(t, repo.Advance(inv.ID, StatusCompleted))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations/analytics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Analytics Analytics `json:"analytics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Analytics.TotalSent)
	require.Equal(t, 1, resp.Data.Analytics.TotalOpened)
	require.Equal(t, 1, resp.Data.Analytics.TotalStarted)
	require.Equal(t, 1, resp.Data.Analytics.TotalCompleted)
	require.Equal(t, float64(100), resp.Data.Analytics.ConversionRate)
}
