package public

import (
	"time"

	publicapp "github.com/SamR2406/edurater/internal/public/application"
	publicdomain "github.com/SamR2406/edurater/internal/public/domain"
)

type schoolResponse struct {
	URN       int    `json:"urn"`
	Name      string `json:"name"`
	Postcode  string `json:"postcode,omitempty"`
	Town      string `json:"town,omitempty"`
	Phase     string `json:"phase,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Website   string `json:"website,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	Capacity  *int   `json:"capacity,omitempty"`
	Pupils    *int   `json:"pupils,omitempty"`
}

type schoolListResponse struct {
	Items []schoolResponse `json:"items"`
	Total int              `json:"total"`
}

type reviewSectionPayload struct {
	SectionKey string   `json:"section_key"`
	Rating     *float64 `json:"rating,omitempty"`
	Comment    string   `json:"comment,omitempty"`
}

type reviewResponse struct {
	ID             string                 `json:"id"`
	SchoolURN      int                    `json:"school_urn"`
	Title          string                 `json:"title,omitempty"`
	Body           string                 `json:"body,omitempty"`
	Rating         *float64               `json:"rating,omitempty"`
	RatingComputed *float64               `json:"rating_computed,omitempty"`
	Sections       []reviewSectionPayload `json:"sections,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type reviewListResponse struct {
	Items       []reviewResponse `json:"items"`
	SchoolScore *float64         `json:"schoolScore"`
	ReviewCount int              `json:"reviewCount"`
}

type metricsResponse struct {
	School          schoolResponse                `json:"school"`
	Days            int                           `json:"days"`
	DailySeries     []publicdomain.DailyBucket    `json:"dailySeries"`
	SectionAverages []publicdomain.SectionAverage `json:"sectionAverages"`
}

type staffRequestResponse struct {
	ID        string    `json:"id"`
	SchoolURN int       `json:"school_urn"`
	FullName  string    `json:"full_name"`
	Position  string    `json:"position"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func buildSchoolResponse(school publicdomain.School) schoolResponse {
	return schoolResponse{
		URN:       school.URN,
		Name:      school.Name,
		Postcode:  school.Postcode,
		Town:      school.Town,
		Phase:     school.Phase,
		Gender:    school.Gender,
		Website:   school.Website,
		Telephone: school.Telephone,
		Capacity:  school.Capacity,
		Pupils:    school.Pupils,
	}
}

func buildReviewResponse(review publicdomain.Review) reviewResponse {
	sections := make([]reviewSectionPayload, 0, len(review.Sections))
	for _, section := range review.Sections {
		sections = append(sections, reviewSectionPayload{
			SectionKey: section.SectionKey,
			Rating:     section.Rating,
			Comment:    section.Comment,
		})
	}
	return reviewResponse{
		ID:             review.ID,
		SchoolURN:      review.SchoolURN,
		Title:          review.Title,
		Body:           review.Body,
		Rating:         review.Rating,
		RatingComputed: review.RatingComputed,
		Sections:       sections,
		CreatedAt:      review.CreatedAt,
		UpdatedAt:      review.UpdatedAt,
	}
}

func buildStaffRequestResponse(request publicapp.StaffRequest) staffRequestResponse {
	return staffRequestResponse{
		ID:        request.ID,
		SchoolURN: request.SchoolURN,
		FullName:  request.FullName,
		Position:  request.Position,
		Status:    request.Status,
		CreatedAt: request.CreatedAt,
	}
}
