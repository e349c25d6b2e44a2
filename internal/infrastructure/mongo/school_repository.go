package mongo

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SamR2406/edurater/internal/public/application"
	"github.com/SamR2406/edurater/internal/public/domain"
)

// SchoolRepository reads the school data set.
type SchoolRepository struct {
	schools *mongo.Collection
}

// NewSchoolRepository binds the school collection.
func NewSchoolRepository(db *mongo.Database, schoolCollection string) *SchoolRepository {
	return &SchoolRepository{schools: db.Collection(schoolCollection)}
}

// Find translates the search filter into a Mongo query. Postcode matches
// as a case-insensitive prefix (a resolved postcode or outcode narrows
// naturally); town and name match as substrings; phase matches exactly,
// case-insensitive.
func (r *SchoolRepository) Find(ctx context.Context, filter application.SchoolFilter, limit int) ([]domain.School, error) {
	mongoFilter := bson.M{}

	if filter.URN > 0 {
		mongoFilter["urn"] = filter.URN
	}
	if postcode := strings.TrimSpace(filter.Postcode); postcode != "" {
		mongoFilter["postcode"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(postcode), Options: "i"}
	}
	if town := strings.TrimSpace(filter.Town); town != "" {
		mongoFilter["town"] = primitive.Regex{Pattern: regexp.QuoteMeta(town), Options: "i"}
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		mongoFilter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
	}
	if phase := strings.TrimSpace(filter.Phase); phase != "" {
		mongoFilter["phase"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(phase) + "$", Options: "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.schools.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	schools := make([]domain.School, 0)
	for cursor.Next(ctx) {
		var doc SchoolDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		schools = append(schools, mapSchoolDocument(doc))
	}
	return schools, cursor.Err()
}

// FindByURN returns one school.
func (r *SchoolRepository) FindByURN(ctx context.Context, urn int) (*domain.School, error) {
	var doc SchoolDocument
	if err := r.schools.FindOne(ctx, bson.M{"urn": urn}).Decode(&doc); err != nil {
		return nil, err
	}
	school := mapSchoolDocument(doc)
	return &school, nil
}

func mapSchoolDocument(doc SchoolDocument) domain.School {
	return domain.School{
		URN:       doc.URN,
		Name:      doc.Name,
		Postcode:  doc.Postcode,
		Town:      doc.Town,
		Phase:     doc.Phase,
		Gender:    doc.Gender,
		Website:   doc.Website,
		Telephone: doc.Telephone,
		Capacity:  doc.Capacity,
		Pupils:    doc.Pupils,
	}
}
