package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SamR2406/edurater/internal/moderation"
	"github.com/SamR2406/edurater/internal/public/domain"
)

func newCommandFixture() (*stubReviewRepo, *stubReportRepo, ReviewCommandService) {
	reviews := &stubReviewRepo{}
	reports := &stubReportRepo{}
	service := NewReviewCommandService(reviews, reports, moderation.NewFilter([]string{"blocked"}))
	return reviews, reports, service
}

func validSubmitCommand() SubmitReviewCommand {
	return SubmitReviewCommand{
		SchoolURN: 100001,
		UserID:    "user-1",
		Title:     "A fair school",
		Body:      "Our experience has been positive overall.",
		Sections: []SectionCommand{
			{SectionKey: domain.SectionTeachingLearning, Rating: floatPtr(4), Comment: "Strong teaching."},
			{SectionKey: domain.SectionFacilities, Rating: floatPtr(3)},
		},
	}
}

func TestSubmitComputesSectionMean(t *testing.T) {
	_, _, service := newCommandFixture()

	review, err := service.Submit(context.Background(), validSubmitCommand())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if review.ID == "" {
		t.Error("expected an assigned ID")
	}
	if review.RatingComputed == nil {
		t.Fatal("expected rating_computed to be derived")
	}
	if math.Abs(*review.RatingComputed-3.5) > 1e-9 {
		t.Errorf("RatingComputed = %v, want 3.5", *review.RatingComputed)
	}
}

func TestSubmitValidation(t *testing.T) {
	_, _, service := newCommandFixture()

	cases := []struct {
		name   string
		mutate func(*SubmitReviewCommand)
	}{
		{"missing school", func(cmd *SubmitReviewCommand) { cmd.SchoolURN = 0 }},
		{"missing user", func(cmd *SubmitReviewCommand) { cmd.UserID = " " }},
		{"blocked language", func(cmd *SubmitReviewCommand) { cmd.Body = "this place is BLOCKED honestly" }},
		{"rating out of range", func(cmd *SubmitReviewCommand) { cmd.Rating = floatPtr(5.5) }},
		{"rating off the half step", func(cmd *SubmitReviewCommand) { cmd.Rating = floatPtr(3.3) }},
		{"unknown section key", func(cmd *SubmitReviewCommand) {
			cmd.Sections[0].SectionKey = "canteen_quality"
		}},
		{"duplicate section key", func(cmd *SubmitReviewCommand) {
			cmd.Sections[1].SectionKey = cmd.Sections[0].SectionKey
		}},
		{"no rated section", func(cmd *SubmitReviewCommand) {
			cmd.Sections = []SectionCommand{{SectionKey: domain.SectionTeachingLearning, Comment: "fine"}}
		}},
		{"no commented section", func(cmd *SubmitReviewCommand) {
			cmd.Sections = []SectionCommand{{SectionKey: domain.SectionTeachingLearning, Rating: floatPtr(4)}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := validSubmitCommand()
			tc.mutate(&cmd)
			if _, err := service.Submit(context.Background(), cmd); !IsValidation(err) {
				t.Errorf("Submit error = %v, want validation error", err)
			}
		})
	}
}

func TestUpdateOwnerOnly(t *testing.T) {
	_, _, service := newCommandFixture()

	review, err := service.Submit(context.Background(), validSubmitCommand())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	title := "Edited title"
	if _, err := service.Update(context.Background(), review.ID, "someone-else", UpdateReviewCommand{Title: &title}); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Update error = %v, want ErrNotOwner", err)
	}
}

func TestUpdateReplacesSectionsWholesale(t *testing.T) {
	_, _, service := newCommandFixture()

	review, err := service.Submit(context.Background(), validSubmitCommand())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	updated, err := service.Update(context.Background(), review.ID, "user-1", UpdateReviewCommand{
		Sections: []SectionCommand{
			{SectionKey: domain.SectionBehaviourCulture, Rating: floatPtr(5), Comment: "Much improved."},
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Sections) != 1 || updated.Sections[0].SectionKey != domain.SectionBehaviourCulture {
		t.Fatalf("sections not replaced: %+v", updated.Sections)
	}
	if updated.RatingComputed == nil || math.Abs(*updated.RatingComputed-5) > 1e-9 {
		t.Errorf("RatingComputed = %v, want 5", updated.RatingComputed)
	}
}

func TestUpdateMissingReview(t *testing.T) {
	_, _, service := newCommandFixture()
	title := "whatever"
	if _, err := service.Update(context.Background(), "no-such-id", "user-1", UpdateReviewCommand{Title: &title}); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Update error = %v, want ErrNoDocuments", err)
	}
}

func TestDelete(t *testing.T) {
	reviews, _, service := newCommandFixture()

	review, err := service.Submit(context.Background(), validSubmitCommand())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := service.Delete(context.Background(), review.ID, "someone-else", false); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Delete error = %v, want ErrNotOwner", err)
	}
	// Admins bypass the ownership check.
	if err := service.Delete(context.Background(), review.ID, "someone-else", true); err != nil {
		t.Fatalf("admin Delete: %v", err)
	}
	if _, err := reviews.FindByID(context.Background(), review.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Error("expected the review to be soft-deleted")
	}
}

func TestReport(t *testing.T) {
	_, reports, service := newCommandFixture()

	review, err := service.Submit(context.Background(), validSubmitCommand())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := service.Report(context.Background(), review.ID, "reporter-1", "  offensive content  "); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(reports.reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports.reports))
	}
	stored := reports.reports[0]
	if stored.Reason != "offensive content" {
		t.Errorf("Reason = %q, want trimmed", stored.Reason)
	}
	if stored.Status != ReportOpen {
		t.Errorf("Status = %q, want %q", stored.Status, ReportOpen)
	}
	if stored.CreatedAt.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("CreatedAt = %v in the future", stored.CreatedAt)
	}

	if err := service.Report(context.Background(), review.ID, "reporter-1", "again"); !errors.Is(err, ErrDuplicateReport) {
		t.Errorf("second Report error = %v, want ErrDuplicateReport", err)
	}
	if err := service.Report(context.Background(), review.ID, "reporter-2", "   "); !IsValidation(err) {
		t.Errorf("empty reason error = %v, want validation error", err)
	}
	if err := service.Report(context.Background(), "no-such-id", "reporter-3", "reason"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("unknown review error = %v, want ErrNoDocuments", err)
	}
}
