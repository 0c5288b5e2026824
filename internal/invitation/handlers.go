package invitation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lanelink/lanelink/internal/apperrors"
	"github.com/lanelink/lanelink/internal/template"
	"github.com/lanelink/lanelink/internal/validation"
)

// EventRequest is the body of POST /api/v1/invitations/{id}/events.
type EventRequest struct {
	Event Status `json:"event"`
}

// HandleCreate handles POST /api/v1/invitations
func HandleCreate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteBadRequest(w, r, "Invalid request body")
			return
		}

		req.InvitedBy = strings.TrimSpace(req.InvitedBy)
		if req.InvitedBy == "" {
			apperrors.WriteBadRequest(w, r, "invited_by is required")
			return
		}

		inv, err := svc.Send(req)
		if err != nil {
			switch {
			case errors.Is(err, validation.ErrEmailRequired),
				errors.Is(err, validation.ErrEmailTooLong),
				errors.Is(err, validation.ErrEmailInvalid),
				errors.Is(err, ErrContactNameRequired),
				errors.Is(err, ErrCompanyNameRequired),
				errors.Is(err, ErrInvalidMCNumber),
				errors.Is(err, ErrInvalidDOTNumber),
				errors.Is(err, ErrInvalidInvitationType),
				errors.Is(err, ErrInvalidSource),
				errors.Is(err, ErrInvalidPriority):
				apperrors.WriteBadRequest(w, r, err.Error())
				return
			case errors.Is(err, template.ErrTemplateNotFound):
				apperrors.WriteBadRequest(w, r, "Unknown template id")
				return
			}

			log.Error().Err(err).Msg("Failed to create invitation")
			apperrors.WriteInternalError(w, r, "Failed to create invitation")
			return
		}

		apperrors.WriteSuccess(w, r, http.StatusCreated, map[string]any{
			"invitation": inv,
		})
	}
}

// HandleList handles GET /api/v1/invitations with optional status and
// inviter filters.
func HandleList(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var invitations []*Invitation

		statusParam := strings.TrimSpace(r.URL.Query().Get("status"))
		inviterParam := strings.TrimSpace(r.URL.Query().Get("inviter"))

		switch {
		case statusParam != "":
			status := Status(statusParam)
			if !status.IsValid() {
				apperrors.WriteBadRequest(w, r, "Unknown status filter")
				return
			}
			invitations = repo.ListByStatus(status)
		case inviterParam != "":
			invitations = repo.ListByInviter(inviterParam)
		default:
			invitations = repo.ListAll()
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"invitations": invitations,
			"count":       len(invitations),
		})
	}
}

// HandleGet handles GET /api/v1/invitations/{id}
func HandleGet(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		inv, err := repo.Get(id)
		if err != nil {
			apperrors.WriteNotFound(w, r, "Invitation not found")
			return
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"invitation": inv,
		})
	}
}

// HandleValidity handles GET /api/v1/invitations/{id}/valid
func HandleValidity(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"id":    id,
			"valid": repo.IsValid(id),
		})
	}
}

// HandleEvent handles POST /api/v1/invitations/{id}/events. The landing page
// posts opened/started as the prospect engages; completed, expired and
// declined arrive from the onboarding flow.
func HandleEvent(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req EventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperrors.WriteBadRequest(w, r, "Invalid request body")
			return
		}

		if !req.Event.IsValid() {
			apperrors.WriteBadRequest(w, r, "Unknown event")
			return
		}

		// Advance reports unknown ids as false rather than erroring.
		if !repo.Advance(id, req.Event) {
			apperrors.WriteNotFound(w, r, "Invitation not found")
			return
		}

		inv, err := repo.Get(id)
		if err != nil {
			apperrors.WriteNotFound(w, r, "Invitation not found")
			return
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"invitation": inv,
		})
	}
}

// HandleFindByReferral handles GET /api/v1/invitations/by-referral/{code}
func HandleFindByReferral(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		inv, err := repo.FindByReferralCode(code)
		if err != nil {
			apperrors.WriteNotFound(w, r, "Referral code not found")
			return
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"invitation": inv,
		})
	}
}

// HandleAnalytics handles GET /api/v1/invitations/analytics
func HandleAnalytics(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"analytics": agg.Snapshot(),
		})
	}
}
