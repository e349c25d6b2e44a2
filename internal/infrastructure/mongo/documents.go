package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SchoolDocument is the Mongo schema for one establishment record. URN is
// unique across the collection.
type SchoolDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	URN       int                `bson:"urn"`
	Name      string             `bson:"name"`
	Postcode  string             `bson:"postcode,omitempty"`
	Town      string             `bson:"town,omitempty"`
	Phase     string             `bson:"phase,omitempty"`
	Gender    string             `bson:"gender,omitempty"`
	Website   string             `bson:"website,omitempty"`
	Telephone string             `bson:"telephone,omitempty"`
	Capacity  *int               `bson:"capacity,omitempty"`
	Pupils    *int               `bson:"pupils,omitempty"`
}

// ReviewSectionDocument is one embedded section of a review.
type ReviewSectionDocument struct {
	SectionKey string   `bson:"sectionKey"`
	Rating     *float64 `bson:"rating,omitempty"`
	Comment    string   `bson:"comment,omitempty"`
}

// ReviewDocument is the review schema shared by the public and admin
// use-cases. DeletedAt present means soft-deleted.
type ReviewDocument struct {
	ID             primitive.ObjectID      `bson:"_id"`
	SchoolURN      int                     `bson:"schoolUrn"`
	UserID         string                  `bson:"userId"`
	Title          string                  `bson:"title,omitempty"`
	Body           string                  `bson:"body,omitempty"`
	Rating         *float64                `bson:"rating,omitempty"`
	RatingComputed *float64                `bson:"ratingComputed,omitempty"`
	Sections       []ReviewSectionDocument `bson:"sections,omitempty"`
	CreatedAt      time.Time               `bson:"createdAt"`
	UpdatedAt      time.Time               `bson:"updatedAt"`
	DeletedAt      *time.Time              `bson:"deletedAt,omitempty"`
}

// ReportDocument records one complaint against a review. The pair
// (reviewId, reporterId) is unique.
type ReportDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	ReviewID   primitive.ObjectID `bson:"reviewId"`
	ReporterID string             `bson:"reporterId"`
	Reason     string             `bson:"reason"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// StaffRequestDocument is one staff-access application. The pair
// (userId, schoolUrn) is unique.
type StaffRequestDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      string             `bson:"userId"`
	SchoolURN   int                `bson:"schoolUrn"`
	FullName    string             `bson:"fullName"`
	Position    string             `bson:"position"`
	SchoolEmail string             `bson:"schoolEmail,omitempty"`
	Evidence    string             `bson:"evidence,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// AdminUserDocument marks one user as an admin.
type AdminUserDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    string             `bson:"userId"`
	CreatedAt time.Time          `bson:"createdAt"`
}
