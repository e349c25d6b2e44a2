package public

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

// reviewListHandler returns a school's active reviews with the aggregate
// score computed over the same set.
func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		urn, ok := common.ParsePositiveInt(r.URL.Query().Get("school_urn"), 0)
		if !ok || urn == 0 {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing or invalid school_urn")
			return
		}

		result, err := h.reviewQueries.ListBySchool(ctx, urn)
		if err != nil {
			h.logger.Printf("review list fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "review list fetch failed")
			return
		}

		items := make([]reviewResponse, 0, len(result.Reviews))
		for _, review := range result.Reviews {
			items = append(items, buildReviewResponse(review))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, reviewListResponse{
			Items:       items,
			SchoolScore: result.SchoolScore,
			ReviewCount: result.ReviewCount,
		})
	}
}

// reviewDetailHandler returns one active review by ID.
func (h *Handler) reviewDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing review ID")
			return
		}

		review, err := h.reviewQueries.Detail(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "review not found")
				return
			}
			h.logger.Printf("review detail fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "review detail fetch failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildReviewResponse(*review))
	}
}
