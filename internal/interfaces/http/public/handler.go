package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	publicapp "github.com/SamR2406/edurater/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger              *log.Logger
	schoolQueries       publicapp.SchoolQueryService
	reviewQueries       publicapp.ReviewQueryService
	reviewCommands      publicapp.ReviewCommandService
	metrics             publicapp.MetricsService
	staffRequests       publicapp.StaffRequestService
	failedNotifications *mongo.Collection
	httpClient          *http.Client
	messengerEndpoint   string
	discordDestination  string
	slackDestination    string
	adminReviewBaseURL  string
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger              *log.Logger
	SchoolQueries       publicapp.SchoolQueryService
	ReviewQueries       publicapp.ReviewQueryService
	ReviewCommands      publicapp.ReviewCommandService
	Metrics             publicapp.MetricsService
	StaffRequests       publicapp.StaffRequestService
	FailedNotifications *mongo.Collection
	HTTPClient          *http.Client
	MessengerEndpoint   string
	DiscordDestination  string
	SlackDestination    string
	AdminReviewBaseURL  string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Handler{
		logger:              cfg.Logger,
		schoolQueries:       cfg.SchoolQueries,
		reviewQueries:       cfg.ReviewQueries,
		reviewCommands:      cfg.ReviewCommands,
		metrics:             cfg.Metrics,
		staffRequests:       cfg.StaffRequests,
		failedNotifications: cfg.FailedNotifications,
		httpClient:          httpClient,
		messengerEndpoint:   cfg.MessengerEndpoint,
		discordDestination:  cfg.DiscordDestination,
		slackDestination:    cfg.SlackDestination,
		adminReviewBaseURL:  cfg.AdminReviewBaseURL,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/sections", h.sectionListHandler())
	r.Get("/schools", h.schoolListHandler())
	r.Get("/schools/{urn}", h.schoolDetailHandler())
	r.Get("/reviews", h.reviewListHandler())
	r.Get("/reviews/{id}", h.reviewDetailHandler())
	r.With(authMiddleware).Post("/reviews", h.reviewCreateHandler())
	r.With(authMiddleware).Patch("/reviews/{id}", h.reviewUpdateHandler())
	r.With(authMiddleware).Delete("/reviews/{id}", h.reviewDeleteHandler())
	r.With(authMiddleware).Post("/reviews/{id}/report", h.reviewReportHandler())
	r.With(authMiddleware).Get("/staff/school-metrics", h.staffMetricsHandler())
	r.With(authMiddleware).Get("/staff-requests", h.staffRequestListHandler())
	r.With(authMiddleware).Post("/staff-requests", h.staffRequestCreateHandler())
}
