package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	adminapp "github.com/SamR2406/edurater/internal/admin/application"
	"github.com/SamR2406/edurater/internal/interfaces/http/common"
)

// Moderation queue page sizing.
const (
	defaultReportLimit = 100
	maxReportLimit     = 200
)

type reportUpdateRequest struct {
	Status string `json:"status"`
}

// meHandler confirms admin access and echoes the caller's identity. The
// frontend uses it to gate the admin UI.
func (h *Handler) meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"user_id": user.ID,
			"admin":   user.IsAdmin,
		})
	}
}

// reportListHandler serves the moderation queue, newest report first.
func (h *Handler) reportListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		limit, ok := common.ParsePositiveInt(r.URL.Query().Get("limit"), defaultReportLimit)
		if !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid limit")
			return
		}
		if limit > maxReportLimit {
			limit = maxReportLimit
		}

		reports, err := h.moderation.ListReports(ctx, limit)
		if err != nil {
			h.logger.Printf("report list fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "report list fetch failed")
			return
		}

		items := make([]reportedReviewResponse, 0, len(reports))
		for _, report := range reports {
			items = append(items, buildReportedReviewResponse(report))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

// reportUpdateHandler resolves or dismisses one report.
func (h *Handler) reportUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing report ID")
			return
		}

		var payload reportUpdateRequest
		if err := common.DecodeJSON(w, r, &payload); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := h.moderation.ResolveReport(ctx, id, strings.TrimSpace(payload.Status)); err != nil {
			switch {
			case errors.Is(err, adminapp.ErrUnknownStatus):
				common.WriteError(h.logger, w, http.StatusBadRequest, "status must be resolved or dismissed")
			case errors.Is(err, mongo.ErrNoDocuments):
				common.WriteError(h.logger, w, http.StatusNotFound, "report not found")
			default:
				h.logger.Printf("report update failed: %v", err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "report update failed")
			}
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": payload.Status})
	}
}

// reviewDeleteHandler soft-deletes any review, ownership aside.
func (h *Handler) reviewDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing review ID")
			return
		}

		if err := h.moderation.DeleteReview(ctx, id); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "review not found")
				return
			}
			h.logger.Printf("admin review delete failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "review delete failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// reviewRestoreHandler brings a soft-deleted review back.
func (h *Handler) reviewRestoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing review ID")
			return
		}

		if err := h.moderation.RestoreReview(ctx, id); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "deleted review not found")
				return
			}
			h.logger.Printf("admin review restore failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "review restore failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "restored"})
	}
}
