package application

import (
	"context"
	"errors"
	"time"

	"github.com/SamR2406/edurater/internal/public/domain"
)

// ErrDuplicateReport marks a second report of the same review by the same
// reporter.
var ErrDuplicateReport = errors.New("review already reported by this user")

// ErrDuplicateStaffRequest marks a repeated staff request for the same
// school by the same user.
var ErrDuplicateStaffRequest = errors.New("staff request already exists for this school")

// ErrNotOwner marks an edit or delete attempt by someone other than the
// review author.
var ErrNotOwner = errors.New("review belongs to another user")

// ErrNoStaffSchool marks a staff-metrics request from a user without an
// approved staff link to any school.
var ErrNoStaffSchool = errors.New("no school linked to this account")

// ReviewRepository provides review reads and writes. Find methods return
// active (non-soft-deleted) reviews only.
type ReviewRepository interface {
	FindBySchool(ctx context.Context, schoolURN int) ([]domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	SoftDelete(ctx context.Context, id string) error
}

// SchoolRepository abstracts read access to the school data set.
type SchoolRepository interface {
	Find(ctx context.Context, filter SchoolFilter, limit int) ([]domain.School, error)
	FindByURN(ctx context.Context, urn int) (*domain.School, error)
}

// ReportRepository records review reports.
type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
}

// StaffRequestRepository stores staff-access requests.
type StaffRequestRepository interface {
	FindByUser(ctx context.Context, userID string) ([]StaffRequest, error)
	FindByUserAndSchool(ctx context.Context, userID string, schoolURN int) (*StaffRequest, error)
	FindApprovedByUser(ctx context.Context, userID string) (*StaffRequest, error)
	Create(ctx context.Context, request *StaffRequest) error
}

// PostcodeResolver normalizes a user-supplied postcode through an external
// lookup service. Implementations degrade to an error on network trouble;
// callers fall back to raw text matching.
type PostcodeResolver interface {
	Resolve(ctx context.Context, postcode string) (ResolvedPostcode, error)
}

// ResolvedPostcode is the outcome of a postcode lookup cascade.
type ResolvedPostcode struct {
	Postcode string
	Outcode  string
}

// SchoolFilter expresses search criteria for schools. Postcode is matched
// as a prefix after resolution; Town and Name substring, case-insensitive.
type SchoolFilter struct {
	URN      int
	Postcode string
	Town     string
	Name     string
	Phase    string
}

// Report is a user complaint against a review.
type Report struct {
	ID         string
	ReviewID   string
	ReporterID string
	Reason     string
	Status     string
	CreatedAt  time.Time
}

// StaffRequest asks for staff access to one school's metrics.
type StaffRequest struct {
	ID          string
	UserID      string
	SchoolURN   int
	FullName    string
	Position    string
	SchoolEmail string
	Evidence    string
	Status      string
	CreatedAt   time.Time
}

// Staff request states.
const (
	StaffRequestPending  = "pending"
	StaffRequestApproved = "approved"
	StaffRequestRejected = "rejected"
)

// Report states.
const (
	ReportOpen      = "open"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

// ReviewQueryService describes review read use-cases.
type ReviewQueryService interface {
	ListBySchool(ctx context.Context, schoolURN int) (SchoolReviews, error)
	Detail(ctx context.Context, id string) (*domain.Review, error)
}

// SchoolReviews bundles a school's active reviews with their aggregate
// score.
type SchoolReviews struct {
	Reviews     []domain.Review
	SchoolScore *float64
	ReviewCount int
}

// ReviewCommandService handles review writes.
type ReviewCommandService interface {
	Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error)
	Update(ctx context.Context, id, userID string, cmd UpdateReviewCommand) (*domain.Review, error)
	Delete(ctx context.Context, id, userID string, isAdmin bool) error
	Report(ctx context.Context, reviewID, reporterID, reason string) error
}

// SubmitReviewCommand captures a new review submission.
type SubmitReviewCommand struct {
	SchoolURN int
	UserID    string
	Title     string
	Body      string
	Rating    *float64
	Sections  []SectionCommand
}

// UpdateReviewCommand captures a review edit. Nil pointers leave fields
// untouched; a non-nil Sections replaces the section set wholesale.
type UpdateReviewCommand struct {
	Title    *string
	Body     *string
	Rating   *float64
	Sections []SectionCommand
}

// SectionCommand is one section of a submitted review.
type SectionCommand struct {
	SectionKey string
	Rating     *float64
	Comment    string
}

// SchoolQueryService describes school search use-cases.
type SchoolQueryService interface {
	Search(ctx context.Context, filter SchoolFilter, limit int) ([]domain.School, error)
	Detail(ctx context.Context, urn int) (*domain.School, error)
}

// MetricsService produces the staff dashboard aggregates.
type MetricsService interface {
	SchoolMetrics(ctx context.Context, userID string, days int) (*SchoolMetrics, error)
}

// SchoolMetrics is the staff dashboard payload for one school.
type SchoolMetrics struct {
	School          domain.School
	Days            int
	DailySeries     []domain.DailyBucket
	SectionAverages []domain.SectionAverage
}

// StaffRequestService handles a user's own staff-access requests.
type StaffRequestService interface {
	ListOwn(ctx context.Context, userID string) ([]StaffRequest, error)
	Submit(ctx context.Context, cmd SubmitStaffRequestCommand) (*StaffRequest, error)
}

// SubmitStaffRequestCommand captures a staff-access application.
type SubmitStaffRequestCommand struct {
	UserID      string
	SchoolURN   int
	FullName    string
	Position    string
	SchoolEmail string
	Evidence    string
}
