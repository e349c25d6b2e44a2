package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/SamR2406/edurater/internal/interfaces/http/common"
)

// schoolReviewCountHandler tallies active reviews per school for the
// admin dashboard.
func (h *Handler) schoolReviewCountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		counts, err := h.moderation.SchoolReviewCounts(ctx)
		if err != nil {
			h.logger.Printf("school review count fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "school review count fetch failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, counts)
	}
}
