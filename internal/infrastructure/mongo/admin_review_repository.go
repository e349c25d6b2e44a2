package mongo

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SamR2406/edurater/internal/admin/domain"
)

// AdminReviewRepository covers the review writes only admins may issue.
type AdminReviewRepository struct {
	reviews *mongo.Collection
	schools *mongo.Collection
}

// NewAdminReviewRepository binds the review and school collections.
func NewAdminReviewRepository(db *mongo.Database, reviewCollection, schoolCollection string) *AdminReviewRepository {
	return &AdminReviewRepository{
		reviews: db.Collection(reviewCollection),
		schools: db.Collection(schoolCollection),
	}
}

// SoftDelete hides a review. Unlike the author's own delete, it matches
// regardless of ownership.
func (r *AdminReviewRepository) SoftDelete(ctx context.Context, reviewID string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(reviewID))
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.reviews.UpdateOne(ctx,
		bson.M{"_id": objectID, "deletedAt": nil},
		bson.M{"$set": bson.M{"deletedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Restore clears deletedAt on a soft-deleted review.
func (r *AdminReviewRepository) Restore(ctx context.Context, reviewID string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(reviewID))
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.reviews.UpdateOne(ctx,
		bson.M{"_id": objectID, "deletedAt": bson.M{"$ne": nil}},
		bson.M{"$set": bson.M{"deletedAt": nil}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountBySchool tallies active reviews per school, busiest first, joined
// with the school names.
func (r *AdminReviewRepository) CountBySchool(ctx context.Context) ([]domain.SchoolReviewCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"deletedAt": nil}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$schoolUrn",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	type countRow struct {
		SchoolURN int `bson:"_id"`
		Count     int `bson:"count"`
	}

	rows := make([]countRow, 0)
	for cursor.Next(ctx) {
		var row countRow
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.SchoolReviewCount{}, nil
	}

	urns := make([]int, 0, len(rows))
	for _, row := range rows {
		urns = append(urns, row.SchoolURN)
	}
	nameMap, err := loadSchoolNames(ctx, r.schools, urns)
	if err != nil {
		return nil, err
	}

	counts := make([]domain.SchoolReviewCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, domain.SchoolReviewCount{
			SchoolURN:   row.SchoolURN,
			SchoolName:  nameMap[row.SchoolURN],
			ReviewCount: row.Count,
		})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].ReviewCount != counts[j].ReviewCount {
			return counts[i].ReviewCount > counts[j].ReviewCount
		}
		return counts[i].SchoolURN < counts[j].SchoolURN
	})
	return counts, nil
}

func loadSchoolNames(ctx context.Context, schools *mongo.Collection, urns []int) (map[int]string, error) {
	cursor, err := schools.Find(ctx, bson.M{"urn": bson.M{"$in": urns}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	nameMap := make(map[int]string, len(urns))
	for cursor.Next(ctx) {
		var doc SchoolDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		nameMap[doc.URN] = doc.Name
	}
	return nameMap, cursor.Err()
}
