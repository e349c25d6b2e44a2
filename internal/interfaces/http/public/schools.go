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
	publicapp "github.com/SamR2406/edurater/internal/public/application"
)

// sectionListHandler serves the review section taxonomy for the review
// form.
func (h *Handler) sectionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, common.Sections())
	}
}

// schoolListHandler searches the establishment data set. A postcode
// query goes through the lookup cascade before matching.
func (h *Handler) schoolListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query := r.URL.Query()
		filter := publicapp.SchoolFilter{
			Postcode: strings.TrimSpace(query.Get("postcode")),
			Town:     strings.TrimSpace(query.Get("town")),
			Name:     strings.TrimSpace(query.Get("name")),
			Phase:    strings.TrimSpace(query.Get("phase")),
		}

		if urnParam := strings.TrimSpace(query.Get("urn")); urnParam != "" {
			urn, ok := common.ParsePositiveInt(urnParam, 0)
			if !ok {
				common.WriteError(h.logger, w, http.StatusBadRequest, "invalid URN")
				return
			}
			filter.URN = urn
		}

		limit, ok := common.ParsePositiveInt(query.Get("limit"), 50)
		if !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid limit")
			return
		}
		if limit > 200 {
			limit = 200
		}

		schools, err := h.schoolQueries.Search(ctx, filter, limit)
		if err != nil {
			h.logger.Printf("school search failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "school search failed")
			return
		}

		items := make([]schoolResponse, 0, len(schools))
		for _, school := range schools {
			items = append(items, buildSchoolResponse(school))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, schoolListResponse{Items: items, Total: len(items)})
	}
}

// schoolDetailHandler returns one school by URN.
func (h *Handler) schoolDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		urn, ok := common.ParsePositiveInt(chi.URLParam(r, "urn"), 0)
		if !ok || urn == 0 {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid URN")
			return
		}

		school, err := h.schoolQueries.Detail(ctx, urn)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteError(h.logger, w, http.StatusNotFound, "school not found")
				return
			}
			h.logger.Printf("school detail fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "school detail fetch failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSchoolResponse(*school))
	}
}
