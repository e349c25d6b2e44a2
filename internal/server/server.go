package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/SamR2406/edurater/internal/admin/application"
	"github.com/SamR2406/edurater/internal/config"
	mongodoc "github.com/SamR2406/edurater/internal/infrastructure/mongo"
	"github.com/SamR2406/edurater/internal/infrastructure/postcodes"
	adminhttp "github.com/SamR2406/edurater/internal/interfaces/http/admin"
	commonhttp "github.com/SamR2406/edurater/internal/interfaces/http/common"
	publichttp "github.com/SamR2406/edurater/internal/interfaces/http/public"
	"github.com/SamR2406/edurater/internal/moderation"
	publicapp "github.com/SamR2406/edurater/internal/public/application"
)

// Server manages the HTTP lifecycle and injects dependencies into the
// public and admin handler sets. It is the composition root; domain
// logic does not live here.
type Server struct {
	logger              *log.Logger
	client              *mongo.Client
	database            *mongo.Database
	schoolQueryService  publicapp.SchoolQueryService
	reviewQueryService  publicapp.ReviewQueryService
	reviewCommands      publicapp.ReviewCommandService
	metricsService      publicapp.MetricsService
	staffRequestService publicapp.StaffRequestService
	moderationService   adminapp.ModerationService
	staffAccessService  adminapp.StaffAccessService
	adminDirectory      adminapp.AdminDirectory
	failedNotifications *mongo.Collection
	jwtConfigs          []config.JWTConfig
	jwtAudience         string
	httpClient          *http.Client
	messengerEndpoint   string
	discordDestination  string
	slackDestination    string
	adminReviewBaseURL  string
	addr                string
	allowedOrigins      []string
}

type authenticatedUser = commonhttp.AuthenticatedUser

// Run starts the HTTP server and assembles routing and middleware for
// the public and admin surfaces.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:              s.logger,
		SchoolQueries:       s.schoolQueryService,
		ReviewQueries:       s.reviewQueryService,
		ReviewCommands:      s.reviewCommands,
		Metrics:             s.metricsService,
		StaffRequests:       s.staffRequestService,
		FailedNotifications: s.failedNotifications,
		HTTPClient:          s.httpClient,
		MessengerEndpoint:   s.messengerEndpoint,
		DiscordDestination:  s.discordDestination,
		SlackDestination:    s.slackDestination,
		AdminReviewBaseURL:  s.adminReviewBaseURL,
	})
	publicHandler.Register(router, s.authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:      s.logger,
		Moderation:  s.moderationService,
		StaffAccess: s.staffAccessService,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(s.requireAdmin)
		adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// normaliseBaseURL trims the input and drops any trailing slash.
func normaliseBaseURL(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.TrimRight(trimmed, "/")
}

// withCORS returns a middleware adding CORS headers for allowed origins.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler checks MongoDB reachability for monitoring probes. It
// reports infrastructure state only.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// authMiddleware verifies the bearer token and stores the authenticated
// user in the request context. Admin membership is resolved here so both
// route groups see the same identity.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "a bearer token is required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "empty access token"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := authenticatedUser{ID: claims.Subject}

		lookupCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		isAdmin, err := s.adminDirectory.IsAdmin(lookupCtx, user.ID)
		cancel()
		if err != nil {
			s.logger.Printf("admin membership lookup failed: %v", err)
		}
		user.IsAdmin = isAdmin

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects authenticated users without admin membership.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := commonhttp.UserFromContext(r.Context())
		if !ok {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}
		if !user.IsAdmin {
			s.writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// parseAuthToken tries each configured JWT setting in order, verifying
// the signature and issuer/audience consistency.
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, fmt.Errorf("authentication is not configured")
	}

	for _, cfg := range s.jwtConfigs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}

		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}

		now := time.Now()
		if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
			continue
		}
		if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, fmt.Errorf("invalid access token")
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
}

// writeJSON centralises Content-Type handling and encode error logging
// for responses written by the server itself.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

// shutdown disconnects the MongoDB client with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("mongo disconnect: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals to realise a
// graceful shutdown.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("server exited: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("server shutdown: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New takes the Config and a connected Mongo client and assembles the
// application services and handlers into a Server. It is the starting
// point for dependency resolution.
func New(cfg config.Config, client *mongo.Client) *Server {
	filter := moderation.Default()
	if path := strings.TrimSpace(cfg.ModerationWordlistPath); path != "" {
		loaded, err := moderation.NewFilterFromFile(path)
		if err != nil {
			cfg.ServerLog.Printf("moderation wordlist %s failed to load: %v, using the embedded list", path, err)
		} else {
			filter = loaded
		}
	}

	srv := &Server{
		logger:             cfg.ServerLog,
		client:             client,
		database:           client.Database(cfg.MongoDatabase),
		jwtConfigs:         append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:        cfg.JWTAudience,
		httpClient:         &http.Client{Timeout: cfg.MessengerTimeout},
		messengerEndpoint:  normaliseBaseURL(cfg.MessengerEndpoint),
		discordDestination: cfg.DiscordDestination,
		slackDestination:   strings.TrimSpace(cfg.SlackDestination),
		adminReviewBaseURL: cfg.AdminReviewBaseURL,
		addr:               cfg.Addr,
		allowedOrigins:     append([]string(nil), cfg.AllowedOrigins...),
	}
	srv.failedNotifications = srv.database.Collection(cfg.FailedNotificationCollection)

	schoolRepo := mongodoc.NewSchoolRepository(srv.database, cfg.SchoolCollection)
	reviewRepo := mongodoc.NewReviewRepository(srv.database, cfg.ReviewCollection)
	reportRepo := mongodoc.NewReportRepository(srv.database, cfg.ReportCollection)
	staffRequestRepo := mongodoc.NewStaffRequestRepository(srv.database, cfg.StaffRequestCollection)

	resolver := postcodes.New(cfg.PostcodesBaseURL, cfg.PostcodesTimeout)

	srv.schoolQueryService = publicapp.NewSchoolQueryService(schoolRepo, resolver)
	srv.reviewQueryService = publicapp.NewReviewQueryService(reviewRepo, filter)
	srv.reviewCommands = publicapp.NewReviewCommandService(reviewRepo, reportRepo, filter)
	srv.metricsService = publicapp.NewMetricsService(reviewRepo, schoolRepo, staffRequestRepo, filter)
	srv.staffRequestService = publicapp.NewStaffRequestService(staffRequestRepo, schoolRepo)

	adminReportRepo := mongodoc.NewAdminReportRepository(srv.database, cfg.ReportCollection, cfg.ReviewCollection)
	adminReviewRepo := mongodoc.NewAdminReviewRepository(srv.database, cfg.ReviewCollection, cfg.SchoolCollection)
	adminStaffRequestRepo := mongodoc.NewAdminStaffRequestRepository(srv.database, cfg.StaffRequestCollection, cfg.SchoolCollection)
	srv.moderationService = adminapp.NewModerationService(adminReportRepo, adminReviewRepo)
	srv.staffAccessService = adminapp.NewStaffAccessService(adminStaffRequestRepo)
	srv.adminDirectory = mongodoc.NewAdminUserDirectory(srv.database, cfg.AdminUserCollection)

	return srv
}
