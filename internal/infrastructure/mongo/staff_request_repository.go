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

// StaffRequestRepository stores staff-access applications.
type StaffRequestRepository struct {
	requests *mongo.Collection
}

// NewStaffRequestRepository binds the staff request collection.
func NewStaffRequestRepository(db *mongo.Database, collection string) *StaffRequestRepository {
	return &StaffRequestRepository{requests: db.Collection(collection)}
}

// FindByUser returns a user's requests, newest first.
func (r *StaffRequestRepository) FindByUser(ctx context.Context, userID string) ([]application.StaffRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.requests.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := make([]application.StaffRequest, 0)
	for cursor.Next(ctx) {
		var doc StaffRequestDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		requests = append(requests, mapStaffRequestDocument(doc))
	}
	return requests, cursor.Err()
}

// FindByUserAndSchool returns the user's request for one school, if any.
func (r *StaffRequestRepository) FindByUserAndSchool(ctx context.Context, userID string, schoolURN int) (*application.StaffRequest, error) {
	var doc StaffRequestDocument
	err := r.requests.FindOne(ctx, bson.M{"userId": userID, "schoolUrn": schoolURN}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	request := mapStaffRequestDocument(doc)
	return &request, nil
}

// FindApprovedByUser returns the user's approved request. The staff
// metrics endpoint keys off this.
func (r *StaffRequestRepository) FindApprovedByUser(ctx context.Context, userID string) (*application.StaffRequest, error) {
	filter := bson.M{"userId": userID, "status": application.StaffRequestApproved}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var doc StaffRequestDocument
	if err := r.requests.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		return nil, err
	}
	request := mapStaffRequestDocument(doc)
	return &request, nil
}

// Create inserts a request and writes the assigned ID back.
func (r *StaffRequestRepository) Create(ctx context.Context, request *application.StaffRequest) error {
	createdAt := request.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := StaffRequestDocument{
		ID:          primitive.NewObjectID(),
		UserID:      request.UserID,
		SchoolURN:   request.SchoolURN,
		FullName:    request.FullName,
		Position:    request.Position,
		SchoolEmail: request.SchoolEmail,
		Evidence:    request.Evidence,
		Status:      request.Status,
		CreatedAt:   createdAt,
	}

	if _, err := r.requests.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrDuplicateStaffRequest
		}
		return err
	}

	request.ID = doc.ID.Hex()
	request.CreatedAt = doc.CreatedAt
	return nil
}

func mapStaffRequestDocument(doc StaffRequestDocument) application.StaffRequest {
	return application.StaffRequest{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID,
		SchoolURN:   doc.SchoolURN,
		FullName:    strings.TrimSpace(doc.FullName),
		Position:    doc.Position,
		SchoolEmail: doc.SchoolEmail,
		Evidence:    doc.Evidence,
		Status:      doc.Status,
		CreatedAt:   doc.CreatedAt,
	}
}
