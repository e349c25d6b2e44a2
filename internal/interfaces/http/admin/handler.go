package admin

import (
	"log"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/SamR2406/edurater/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger      *log.Logger
	moderation  adminapp.ModerationService
	staffAccess adminapp.StaffAccessService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger      *log.Logger
	Moderation  adminapp.ModerationService
	StaffAccess adminapp.StaffAccessService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:      cfg.Logger,
		moderation:  cfg.Moderation,
		staffAccess: cfg.StaffAccess,
	}
}

// Register mounts admin routes onto router. The caller is expected to
// have applied the auth and admin middlewares already.
func (h *Handler) Register(r chi.Router) {
	r.Get("/me", h.meHandler())
	r.Get("/review-reports", h.reportListHandler())
	r.Patch("/review-reports/{id}", h.reportUpdateHandler())
	r.Delete("/reviews/{id}", h.reviewDeleteHandler())
	r.Post("/reviews/{id}/restore", h.reviewRestoreHandler())
	r.Get("/school-review-counts", h.schoolReviewCountHandler())
	r.Get("/staff-requests", h.staffRequestListHandler())
	r.Patch("/staff-requests/{id}", h.staffRequestUpdateHandler())
}
