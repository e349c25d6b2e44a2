package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SamR2406/edurater/internal/admin/domain"
	"github.com/SamR2406/edurater/internal/public/application"
)

// AdminReportRepository serves the moderation queue. Reports join their
// target reviews in a second query rather than an aggregation pipeline.
type AdminReportRepository struct {
	reports *mongo.Collection
	reviews *mongo.Collection
}

// NewAdminReportRepository binds the report and review collections.
func NewAdminReportRepository(db *mongo.Database, reportCollection, reviewCollection string) *AdminReportRepository {
	return &AdminReportRepository{
		reports: db.Collection(reportCollection),
		reviews: db.Collection(reviewCollection),
	}
}

// FindOpen returns open reports, newest first, each joined with its
// review. Reports whose review is gone or soft-deleted are skipped.
func (r *AdminReportRepository) FindOpen(ctx context.Context, limit int) ([]domain.ReportedReview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.reports.Find(ctx, bson.M{"status": application.ReportOpen}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]ReportDocument, 0)
	for cursor.Next(ctx) {
		var doc ReportDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return []domain.ReportedReview{}, nil
	}

	reviewIDs := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		reviewIDs = append(reviewIDs, doc.ReviewID)
	}
	reviewMap, err := r.loadReviewMap(ctx, reviewIDs)
	if err != nil {
		return nil, err
	}

	reported := make([]domain.ReportedReview, 0, len(docs))
	for _, doc := range docs {
		review, ok := reviewMap[doc.ReviewID]
		if !ok || review.DeletedAt != nil {
			continue
		}
		reported = append(reported, domain.ReportedReview{
			ReportID:      doc.ID.Hex(),
			ReviewID:      doc.ReviewID.Hex(),
			ReporterID:    doc.ReporterID,
			Reason:        doc.Reason,
			Status:        doc.Status,
			ReportedAt:    doc.CreatedAt,
			SchoolURN:     review.SchoolURN,
			ReviewUserID:  review.UserID,
			ReviewTitle:   review.Title,
			ReviewBody:    review.Body,
			ReviewRating:  review.Rating,
			ReviewCreated: review.CreatedAt,
		})
	}
	return reported, nil
}

// UpdateStatus moves a report to resolved or dismissed.
func (r *AdminReportRepository) UpdateStatus(ctx context.Context, reportID, status string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(reportID))
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.reports.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *AdminReportRepository) loadReviewMap(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]ReviewDocument, error) {
	cursor, err := r.reviews.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviewMap := make(map[primitive.ObjectID]ReviewDocument, len(ids))
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviewMap[doc.ID] = doc
	}
	return reviewMap, cursor.Err()
}
