package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SamR2406/edurater/internal/public/domain"
)

// ReviewRepository handles the public review reads and writes. Every read
// filters soft-deleted rows out; the rows themselves stay.
type ReviewRepository struct {
	reviews *mongo.Collection
}

// NewReviewRepository binds the review collection.
func NewReviewRepository(db *mongo.Database, reviewCollection string) *ReviewRepository {
	return &ReviewRepository{reviews: db.Collection(reviewCollection)}
}

// FindBySchool returns a school's active reviews, newest first.
func (r *ReviewRepository) FindBySchool(ctx context.Context, schoolURN int) ([]domain.Review, error) {
	filter := bson.M{"schoolUrn": schoolURN, "deletedAt": nil}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.reviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	return reviews, cursor.Err()
}

// FindByID returns one active review.
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var doc ReviewDocument
	if err := r.reviews.FindOne(ctx, bson.M{"_id": objectID, "deletedAt": nil}).Decode(&doc); err != nil {
		return nil, err
	}
	review := mapReviewDocument(doc)
	return &review, nil
}

// Create inserts a review and writes the assigned ID back to the model.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	now := time.Now().UTC()
	createdAt := review.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := review.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	doc := ReviewDocument{
		ID:             primitive.NewObjectID(),
		SchoolURN:      review.SchoolURN,
		UserID:         review.UserID,
		Title:          review.Title,
		Body:           review.Body,
		Rating:         review.Rating,
		RatingComputed: review.RatingComputed,
		Sections:       mapSectionDocuments(review.Sections),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}

	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		return err
	}

	review.ID = doc.ID.Hex()
	review.CreatedAt = doc.CreatedAt
	review.UpdatedAt = doc.UpdatedAt
	return nil
}

// Update overwrites the mutable review fields, section set included.
func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(review.ID))
	if err != nil {
		return mongo.ErrNoDocuments
	}

	update := bson.M{"$set": bson.M{
		"title":          review.Title,
		"body":           review.Body,
		"rating":         review.Rating,
		"ratingComputed": review.RatingComputed,
		"sections":       mapSectionDocuments(review.Sections),
		"updatedAt":      review.UpdatedAt,
	}}

	result, err := r.reviews.UpdateOne(ctx, bson.M{"_id": objectID, "deletedAt": nil}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SoftDelete stamps deletedAt, removing the review from every listing and
// aggregation without dropping the row.
func (r *ReviewRepository) SoftDelete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return mongo.ErrNoDocuments
	}

	now := time.Now().UTC()
	result, err := r.reviews.UpdateOne(ctx,
		bson.M{"_id": objectID, "deletedAt": nil},
		bson.M{"$set": bson.M{"deletedAt": now}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	return domain.Review{
		ID:             doc.ID.Hex(),
		SchoolURN:      doc.SchoolURN,
		UserID:         doc.UserID,
		Title:          doc.Title,
		Body:           doc.Body,
		Rating:         doc.Rating,
		RatingComputed: doc.RatingComputed,
		Sections:       mapSectionsFromDocs(doc.Sections),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
		DeletedAt:      doc.DeletedAt,
	}
}

func mapSectionsFromDocs(docs []ReviewSectionDocument) []domain.ReviewSection {
	if len(docs) == 0 {
		return nil
	}
	sections := make([]domain.ReviewSection, 0, len(docs))
	for _, doc := range docs {
		sections = append(sections, domain.ReviewSection{
			SectionKey: doc.SectionKey,
			Rating:     doc.Rating,
			Comment:    doc.Comment,
		})
	}
	return sections
}

func mapSectionDocuments(sections []domain.ReviewSection) []ReviewSectionDocument {
	if len(sections) == 0 {
		return nil
	}
	docs := make([]ReviewSectionDocument, 0, len(sections))
	for _, section := range sections {
		docs = append(docs, ReviewSectionDocument{
			SectionKey: section.SectionKey,
			Rating:     section.Rating,
			Comment:    section.Comment,
		})
	}
	return docs
}
