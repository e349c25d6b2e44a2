package common

import (
	"testing"

	"github.com/SamR2406/edurater/internal/public/domain"
)

func TestSectionsCoverEveryKey(t *testing.T) {
	sections := Sections()
	keys := domain.SectionKeys()
	if len(sections) != len(keys) {
		t.Fatalf("got %d sections, want %d", len(sections), len(keys))
	}
	for i, section := range sections {
		if section.Key != keys[i] {
			t.Errorf("section %d key = %q, want %q", i, section.Key, keys[i])
		}
		if section.Label == "" {
			t.Errorf("section %q has no label", section.Key)
		}
	}
}
