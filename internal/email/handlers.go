package email

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lanelink/lanelink/internal/apperrors"
)

// HandleMessageStatus handles GET /api/v1/messages/{id}: a pass-through
// lookup of provider-side delivery state for a dispatched invitation email.
func HandleMessageStatus(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID := chi.URLParam(r, "id")

		status, err := client.Status(r.Context(), messageID)
		if err != nil {
			if errors.Is(err, ErrMessageNotFound) {
				apperrors.WriteNotFound(w, r, "Message not found")
				return
			}
			log.Error().Err(err).Str("message_id", messageID).Msg("Message status lookup failed")
			apperrors.WriteBadGateway(w, r, "Email provider lookup failed")
			return
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"message": status,
		})
	}
}
