package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SamR2406/edurater/internal/admin/domain"
)

// AdminStaffRequestRepository serves the staff-access queue to admins.
type AdminStaffRequestRepository struct {
	requests *mongo.Collection
	schools  *mongo.Collection
}

// NewAdminStaffRequestRepository binds the staff request and school collections.
func NewAdminStaffRequestRepository(db *mongo.Database, requestCollection, schoolCollection string) *AdminStaffRequestRepository {
	return &AdminStaffRequestRepository{
		requests: db.Collection(requestCollection),
		schools:  db.Collection(schoolCollection),
	}
}

// Find returns requests, newest first. An empty status means all
// requests.
func (r *AdminStaffRequestRepository) Find(ctx context.Context, status string) ([]domain.StaffRequest, error) {
	filter := bson.M{}
	if status = strings.TrimSpace(status); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.requests.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]StaffRequestDocument, 0)
	for cursor.Next(ctx) {
		var doc StaffRequestDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return []domain.StaffRequest{}, nil
	}

	urns := make([]int, 0, len(docs))
	for _, doc := range docs {
		urns = append(urns, doc.SchoolURN)
	}
	nameMap, err := loadSchoolNames(ctx, r.schools, urns)
	if err != nil {
		return nil, err
	}

	requests := make([]domain.StaffRequest, 0, len(docs))
	for _, doc := range docs {
		requests = append(requests, domain.StaffRequest{
			ID:          doc.ID.Hex(),
			UserID:      doc.UserID,
			SchoolURN:   doc.SchoolURN,
			SchoolName:  nameMap[doc.SchoolURN],
			FullName:    doc.FullName,
			Position:    doc.Position,
			SchoolEmail: doc.SchoolEmail,
			Evidence:    doc.Evidence,
			Status:      doc.Status,
			CreatedAt:   doc.CreatedAt,
		})
	}
	return requests, nil
}

// UpdateStatus approves or rejects one request.
func (r *AdminStaffRequestRepository) UpdateStatus(ctx context.Context, requestID, status string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(requestID))
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.requests.UpdateOne(ctx,
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
