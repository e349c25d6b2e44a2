package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SamR2406/edurater/internal/interfaces/http/common"
)

type staffRequestUpdateRequest struct {
	Approve *bool `json:"approve"`
}

// staffRequestListHandler serves the staff-access queue. ?status=
// filters; the default shows pending requests.
func (h *Handler) staffRequestListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := strings.TrimSpace(r.URL.Query().Get("status"))
		if status == "" {
			status = "pending"
		}
		if status == "all" {
			status = ""
		}

		requests, err := h.staffAccess.ListRequests(ctx, status)
		if err != nil {
			h.logger.Printf("staff request queue fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "staff request queue fetch failed")
			return
		}

		items := make([]staffRequestResponse, 0, len(requests))
		for _, request := range requests {
			items = append(items, buildStaffRequestResponse(request))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

// staffRequestUpdateHandler approves or rejects one request.
func (h *Handler) staffRequestUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing request ID")
			return
		}

		var payload staffRequestUpdateRequest
		if err := common.DecodeJSON(w, r, &payload); err != nil || payload.Approve == nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "approve must be true or false")
			return
		}

		if err := h.staffAccess.Decide(ctx, id, *payload.Approve); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "staff request not found")
				return
			}
			h.logger.Printf("staff request update failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "staff request update failed")
			return
		}

		status := "rejected"
		if *payload.Approve {
			status = "approved"
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": status})
	}
}
