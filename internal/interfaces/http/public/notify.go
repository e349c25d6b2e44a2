package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/SamR2406/edurater/internal/interfaces/http/common"
)

// notifyReportFiled alerts the moderation channels that a review has
// been reported. Delivery failures never fail the request; they land in
// the failed_notifications collection for a later retry.
func (h *Handler) notifyReportFiled(ctx context.Context, reporter common.AuthenticatedUser, reviewID, reason string) {
	if ctx == nil {
		ctx = context.Background()
	}

	discordDest := strings.TrimSpace(h.discordDestination)
	slackDest := strings.TrimSpace(h.slackDestination)
	if discordDest == "" && slackDest == "" {
		return
	}

	message := buildReportMessage(h.adminReviewBaseURL, reviewID, reason)

	identifier := reviewID
	if identifier == "" {
		identifier = reporter.ID
	}
	if identifier == "" {
		identifier = "moderation"
	}

	var discordErr, slackErr error
	attempts := 0

	if discordDest != "" {
		discordErr = h.sendMessengerWithRetry(ctx, discordDest, identifier, message, 3, 200*time.Millisecond)
		attempts += 3
		if discordErr == nil {
			return
		}
		h.logger.Printf("discord report notification failed: %v", discordErr)
	}

	if slackDest != "" {
		slackErr = h.sendMessengerWithRetry(ctx, slackDest, identifier, message, 1, 0)
		attempts++
		if slackErr == nil {
			return
		}
		h.logger.Printf("slack report notification failed: %v", slackErr)
	}

	h.persistNotificationFailure(ctx, identifier, reporter, reviewID, reason, discordErr, slackErr, attempts)
}

func buildReportMessage(adminBaseURL, reviewID, reason string) string {
	var builder strings.Builder
	builder.WriteString("A review has been reported and needs moderation.\n")
	builder.WriteString(fmt.Sprintf("- Review: %s\n", reviewID))
	if reason != "" {
		builder.WriteString(fmt.Sprintf("- Reason: %s\n", reason))
	}
	if reviewID != "" && strings.TrimSpace(adminBaseURL) != "" {
		builder.WriteString(fmt.Sprintf("[Open in admin](%s/%s)\n", strings.TrimRight(adminBaseURL, "/"), reviewID))
	}
	return builder.String()
}

func (h *Handler) sendMessengerWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errors.New("destination is empty")
	}
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := h.sendMessengerMessage(ctx, destination, userID, text); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	return lastErr
}

func (h *Handler) persistNotificationFailure(ctx context.Context, identifier string, reporter common.AuthenticatedUser, reviewID, reason string, discordErr, slackErr error, attempts int) {
	if h.failedNotifications == nil {
		return
	}
	combinedErr := combineNotificationErrors(discordErr, slackErr)
	if combinedErr == nil {
		return
	}
	doc := bson.M{
		"target": "report_notification",
		"payload": bson.M{
			"reviewId":   reviewID,
			"reporterId": reporter.ID,
			"reason":     reason,
			"identifier": identifier,
		},
		"error":       combinedErr.Error(),
		"attempts":    attempts,
		"status":      "pending",
		"createdAt":   time.Now().UTC(),
		"lastTriedAt": time.Now().UTC(),
	}
	if _, err := h.failedNotifications.InsertOne(ctx, doc); err != nil {
		h.logger.Printf("failed_notifications insert failed: %v", err)
	}
}

func combineNotificationErrors(errs ...error) error {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		parts = append(parts, err.Error())
	}
	if len(parts) == 0 {
		return nil
	}
	return errors.New(strings.Join(parts, "; "))
}

func (h *Handler) sendMessengerMessage(ctx context.Context, destination, userID, bodyText string) error {
	endpoint := strings.TrimSpace(h.messengerEndpoint)
	if endpoint == "" {
		return errors.New("messenger endpoint is not configured")
	}

	trimmedUserID := strings.TrimSpace(userID)
	if trimmedUserID == "" {
		return errors.New("userID is required")
	}

	payload := map[string]any{
		"userId": trimmedUserID,
		"text":   bodyText,
	}
	if dest := strings.TrimSpace(destination); dest != "" {
		payload["destination"] = dest
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("build messenger payload: %w", err)
	}

	timeout := h.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, strings.TrimRight(endpoint, "/")+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build messenger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send messenger request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("messenger responded with status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
