package public

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SamR2406/edurater/internal/interfaces/http/common"
	publicapp "github.com/SamR2406/edurater/internal/public/application"
	publicdomain "github.com/SamR2406/edurater/internal/public/domain"
)

// staffMetricsHandler serves the staff dashboard for the caller's
// approved school: the daily score series and section comparison.
func (h *Handler) staffMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		// Window sizing degrades rather than rejects: unparsable input
		// falls back to the default and out-of-range values clamp.
		days := common.ParseIntOrDefault(r.URL.Query().Get("days"), publicdomain.DefaultSeriesDays)

		metrics, err := h.metrics.SchoolMetrics(ctx, user.ID, days)
		if err != nil {
			switch {
			case errors.Is(err, publicapp.ErrNoStaffSchool):
				common.WriteError(h.logger, w, http.StatusBadRequest, "no school linked to this account")
			case errors.Is(err, mongo.ErrNoDocuments):
				common.WriteError(h.logger, w, http.StatusNotFound, "school not found")
			default:
				h.logger.Printf("school metrics fetch failed: %v", err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "school metrics fetch failed")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, metricsResponse{
			School:          buildSchoolResponse(metrics.School),
			Days:            metrics.Days,
			DailySeries:     metrics.DailySeries,
			SectionAverages: metrics.SectionAverages,
		})
	}
}
