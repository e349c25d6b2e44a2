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

type reviewCreateRequest struct {
	SchoolURN int                    `json:"school_urn"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Rating    *float64               `json:"rating"`
	Sections  []reviewSectionPayload `json:"sections"`
}

type reviewUpdateRequest struct {
	Title    *string                `json:"title"`
	Body     *string                `json:"body"`
	Rating   *float64               `json:"rating"`
	Sections []reviewSectionPayload `json:"sections"`
}

type reviewReportRequest struct {
	Reason string `json:"reason"`
}

// reviewCreateHandler accepts a new review from an authenticated user.
func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		var payload reviewCreateRequest
		if err := common.DecodeJSON(w, r, &payload); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		cmd := publicapp.SubmitReviewCommand{
			SchoolURN: payload.SchoolURN,
			UserID:    user.ID,
			Title:     payload.Title,
			Body:      payload.Body,
			Rating:    payload.Rating,
			Sections:  sectionCommands(payload.Sections),
		}

		review, err := h.reviewCommands.Submit(ctx, cmd)
		if err != nil {
			if publicapp.IsValidation(err) {
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Printf("review create failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "review create failed")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildReviewResponse(*review))
	}
}

// reviewUpdateHandler applies an owner-only edit.
func (h *Handler) reviewUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing review ID")
			return
		}

		var payload reviewUpdateRequest
		if err := common.DecodeJSON(w, r, &payload); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		cmd := publicapp.UpdateReviewCommand{
			Title:  payload.Title,
			Body:   payload.Body,
			Rating: payload.Rating,
		}
		if payload.Sections != nil {
			cmd.Sections = sectionCommands(payload.Sections)
		}

		review, err := h.reviewCommands.Update(ctx, id, user.ID, cmd)
		if err != nil {
			h.writeReviewCommandError(w, err, "review update failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildReviewResponse(*review))
	}
}

// reviewDeleteHandler soft-deletes a review for its owner, or for an
// admin.
func (h *Handler) reviewDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing review ID")
			return
		}

		if err := h.reviewCommands.Delete(ctx, id, user.ID, user.IsAdmin); err != nil {
			h.writeReviewCommandError(w, err, "review delete failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// reviewReportHandler files a complaint against a review and alerts the
// moderation channels.
func (h *Handler) reviewReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing review ID")
			return
		}

		var payload reviewReportRequest
		if err := common.DecodeJSON(w, r, &payload); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := h.reviewCommands.Report(ctx, id, user.ID, payload.Reason); err != nil {
			if errors.Is(err, publicapp.ErrDuplicateReport) {
				common.WriteError(h.logger, w, http.StatusConflict, "review already reported")
				return
			}
			h.writeReviewCommandError(w, err, "review report failed")
			return
		}

		h.notifyReportFiled(ctx, user, id, strings.TrimSpace(payload.Reason))
		common.WriteJSON(h.logger, w, http.StatusCreated, map[string]string{"status": "reported"})
	}
}

func (h *Handler) writeReviewCommandError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case publicapp.IsValidation(err):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, publicapp.ErrNotOwner):
		common.WriteError(h.logger, w, http.StatusForbidden, "review belongs to another user")
	case errors.Is(err, mongo.ErrNoDocuments):
		common.WriteError(h.logger, w, http.StatusNotFound, "review not found")
	default:
		h.logger.Printf("%s: %v", fallback, err)
		common.WriteError(h.logger, w, http.StatusInternalServerError, fallback)
	}
}

func sectionCommands(payloads []reviewSectionPayload) []publicapp.SectionCommand {
	commands := make([]publicapp.SectionCommand, 0, len(payloads))
	for _, payload := range payloads {
		commands = append(commands, publicapp.SectionCommand{
			SectionKey: payload.SectionKey,
			Rating:     payload.Rating,
			Comment:    payload.Comment,
		})
	}
	return commands
}
