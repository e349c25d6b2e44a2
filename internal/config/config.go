package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	SchoolCollection             string
	ReviewCollection             string
	ReportCollection             string
	StaffRequestCollection       string
	AdminUserCollection          string
	FailedNotificationCollection string
	Timeout                      time.Duration
	ServerLog                    *log.Logger
	JWTConfigs                   []JWTConfig
	JWTAudience                  string
	MessengerEndpoint            string
	DiscordDestination           string
	SlackDestination             string
	MessengerTimeout             time.Duration
	AdminReviewBaseURL           string
	PostcodesBaseURL             string
	PostcodesTimeout             time.Duration
	AllowedOrigins               []string
	ModerationWordlistPath       string
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	// .env is optional; deployments usually set variables directly.
	_ = godotenv.Load()

	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	messengerTimeout := 3 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			messengerTimeout = parsed
		}
	}

	postcodesTimeout := 3 * time.Second
	if raw := strings.TrimSpace(os.Getenv("POSTCODES_API_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			postcodesTimeout = parsed
		}
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "edurater-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_LEGACY_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_LEGACY_JWT_ISSUER", "edurater-auth-legacy"),
			Secret: []byte(secret),
		})
	}

	if len(jwtConfigs) == 0 {
		log.Fatal("JWT secrets not configured. Set AUTH_JWT_SECRET or AUTH_LEGACY_JWT_SECRET.")
	}

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "edurater"),
		SchoolCollection:             envOrDefault("SCHOOL_COLLECTION", "schools"),
		ReviewCollection:             envOrDefault("REVIEW_COLLECTION", "reviews"),
		ReportCollection:             envOrDefault("REPORT_COLLECTION", "review_reports"),
		StaffRequestCollection:       envOrDefault("STAFF_REQUEST_COLLECTION", "staff_requests"),
		AdminUserCollection:          envOrDefault("ADMIN_USER_COLLECTION", "admin_users"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		Timeout:                      timeout,
		ServerLog:                    log.New(os.Stdout, "[edurater-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:                   jwtConfigs,
		JWTAudience:                  strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		MessengerEndpoint:            strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")),
		DiscordDestination:           strings.TrimSpace(os.Getenv("MESSENGER_DISCORD_INCOMING_DESTINATION")),
		SlackDestination:             strings.TrimSpace(os.Getenv("MESSENGER_SLACK_DESTINATION")),
		MessengerTimeout:             messengerTimeout,
		AdminReviewBaseURL:           strings.TrimSpace(os.Getenv("ADMIN_REVIEW_BASE_URL")),
		PostcodesBaseURL:             envOrDefault("POSTCODES_API_URL", "https://api.postcodes.io"),
		PostcodesTimeout:             postcodesTimeout,
		AllowedOrigins:               parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		ModerationWordlistPath:       strings.TrimSpace(os.Getenv("MODERATION_WORDLIST_PATH")),
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
