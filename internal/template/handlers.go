package template

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lanelink/lanelink/internal/apperrors"
)

// HandleList handles GET /api/v1/templates with an optional type filter.
func HandleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typeParam := strings.TrimSpace(r.URL.Query().Get("type"))

		var templates []*Template
		if typeParam != "" {
			t := Type(typeParam)
			if !t.IsValid() {
				apperrors.WriteBadRequest(w, r, "Unknown template type")
				return
			}
			templates = store.ListByType(t)
		} else {
			templates = store.ListAll()
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"templates": templates,
			"count":     len(templates),
		})
	}
}

// HandleGet handles GET /api/v1/templates/{id}
func HandleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		tpl, err := store.Get(id)
		if err != nil {
			apperrors.WriteNotFound(w, r, "Template not found")
			return
		}

		apperrors.WriteSuccess(w, r, http.StatusOK, map[string]any{
			"template": tpl,
		})
	}
}
