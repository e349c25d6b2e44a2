package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SamR2406/edurater/internal/public/application"
)

// ReportRepository persists review reports, one per reporter per review.
type ReportRepository struct {
	reports *mongo.Collection
}

// NewReportRepository binds the report collection.
func NewReportRepository(db *mongo.Database, reportCollection string) *ReportRepository {
	return &ReportRepository{reports: db.Collection(reportCollection)}
}

// Create inserts a report unless the reporter already filed one for the
// same review. The upsert keyed on (reviewId, reporterId) makes the check
// and the insert one round trip.
func (r *ReportRepository) Create(ctx context.Context, report *application.Report) error {
	reviewID, err := primitive.ObjectIDFromHex(strings.TrimSpace(report.ReviewID))
	if err != nil {
		return mongo.ErrNoDocuments
	}

	createdAt := report.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	id := primitive.NewObjectID()
	filter := bson.M{"reviewId": reviewID, "reporterId": report.ReporterID}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":       id,
		"reason":    report.Reason,
		"status":    application.ReportOpen,
		"createdAt": createdAt,
	}}

	opts := options.Update().SetUpsert(true)
	result, err := r.reports.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if result.UpsertedCount == 0 {
		return application.ErrDuplicateReport
	}

	report.ID = id.Hex()
	report.Status = application.ReportOpen
	report.CreatedAt = createdAt
	return nil
}
