package public

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SamR2406/edurater/internal/interfaces/http/common"
	publicapp "github.com/SamR2406/edurater/internal/public/application"
)

type staffRequestCreateRequest struct {
	SchoolURN   int    `json:"school_urn"`
	FullName    string `json:"full_name"`
	Position    string `json:"position"`
	SchoolEmail string `json:"school_email"`
	Evidence    string `json:"evidence"`
}

// staffRequestListHandler returns the caller's own staff-access requests.
func (h *Handler) staffRequestListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		requests, err := h.staffRequests.ListOwn(ctx, user.ID)
		if err != nil {
			h.logger.Printf("staff request list fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "staff request list fetch failed")
			return
		}

		items := make([]staffRequestResponse, 0, len(requests))
		for _, request := range requests {
			items = append(items, buildStaffRequestResponse(request))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

// staffRequestCreateHandler files a staff-access application.
func (h *Handler) staffRequestCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		var payload staffRequestCreateRequest
		if err := common.DecodeJSON(w, r, &payload); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		cmd := publicapp.SubmitStaffRequestCommand{
			UserID:      user.ID,
			SchoolURN:   payload.SchoolURN,
			FullName:    payload.FullName,
			Position:    payload.Position,
			SchoolEmail: payload.SchoolEmail,
			Evidence:    payload.Evidence,
		}

		request, err := h.staffRequests.Submit(ctx, cmd)
		if err != nil {
			switch {
			case publicapp.IsValidation(err):
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			case errors.Is(err, publicapp.ErrDuplicateStaffRequest):
				common.WriteError(h.logger, w, http.StatusConflict, "staff request already exists for this school")
			case errors.Is(err, mongo.ErrNoDocuments):
				common.WriteError(h.logger, w, http.StatusNotFound, "school not found")
			default:
				h.logger.Printf("staff request create failed: %v", err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "staff request create failed")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildStaffRequestResponse(*request))
	}
}
