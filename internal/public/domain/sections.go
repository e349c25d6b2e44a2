package domain

// Canonical review section keys. The review form and the aggregation
// endpoints share this set.
const (
	SectionTeachingLearning    = "teaching_learning"
	SectionBehaviourCulture    = "behaviour_culture"
	SectionPastoralSafeguard   = "pastoral_safeguarding"
	SectionSENDSupport         = "send_support"
	SectionFacilities          = "facilities_resources"
	SectionExtraCurricular     = "extra_curricular"
	SectionParentCommunication = "parent_communication"
)

var sectionKeys = []string{
	SectionTeachingLearning,
	SectionBehaviourCulture,
	SectionPastoralSafeguard,
	SectionSENDSupport,
	SectionFacilities,
	SectionExtraCurricular,
	SectionParentCommunication,
}

var sectionKeySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(sectionKeys))
	for _, key := range sectionKeys {
		set[key] = struct{}{}
	}
	return set
}()

// SectionKeys returns the canonical keys in display order.
func SectionKeys() []string {
	keys := make([]string, len(sectionKeys))
	copy(keys, sectionKeys)
	return keys
}

// KnownSectionKey reports whether key belongs to the canonical set.
func KnownSectionKey(key string) bool {
	_, ok := sectionKeySet[key]
	return ok
}
