package common

import "github.com/SamR2406/edurater/internal/public/domain"

// Section pairs a canonical key with its display label for the review
// form.
type Section struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var sectionLabels = map[string]string{
	domain.SectionTeachingLearning:    "Teaching & Learning",
	domain.SectionBehaviourCulture:    "Behaviour & Culture",
	domain.SectionPastoralSafeguard:   "Pastoral Care & Safeguarding",
	domain.SectionSENDSupport:         "SEND Support",
	domain.SectionFacilities:          "Facilities & Resources",
	domain.SectionExtraCurricular:     "Extra-Curricular",
	domain.SectionParentCommunication: "Parent Communication",
}

// Sections returns the review sections in display order.
func Sections() []Section {
	keys := domain.SectionKeys()
	sections := make([]Section, 0, len(keys))
	for _, key := range keys {
		sections = append(sections, Section{Key: key, Label: sectionLabels[key]})
	}
	return sections
}
