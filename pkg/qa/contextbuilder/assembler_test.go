package contextbuilder

import (
	"strings"
	"testing"

	"textbook-qa-be/internal/constant"
	"textbook-qa-be/internal/entity"
)

func TestBuildContextEmpty(t *testing.T) {
	got := BuildContext(nil)
	if got != constant.NoRelevantContent {
		t.Errorf("BuildContext(nil) = %q, want sentinel %q", got, constant.NoRelevantContent)
	}

	got = BuildContext([]entity.Passage{})
	if got != constant.NoRelevantContent {
		t.Errorf("BuildContext(empty) = %q, want sentinel %q", got, constant.NoRelevantContent)
	}
}

func TestBuildContextSinglePassage(t *testing.T) {
	passages := []entity.Passage{
		{Content: "Photosynthesis converts light into chemical energy.", PageNumber: 12},
	}

	got := BuildContext(passages)

	if !strings.HasPrefix(got, "[Passage 1 | Page 12]\n") {
		t.Errorf("missing header, got %q", got)
	}
	if !strings.Contains(got, "Photosynthesis converts light into chemical energy.") {
		t.Errorf("missing content, got %q", got)
	}
	if strings.Contains(got, BlockSeparator) {
		t.Errorf("single passage must not contain separator, got %q", got)
	}
}

func TestBuildContextSectionHeader(t *testing.T) {
	passages := []entity.Passage{
		{Content: "Cells divide by mitosis.", PageNumber: 3, Section: "Cell Biology"},
	}

	got := BuildContext(passages)

	if !strings.Contains(got, "[Passage 1 | Page 3 | Cell Biology]") {
		t.Errorf("section missing from header, got %q", got)
	}
}

func TestBuildContextPreservesOrderAndSeparates(t *testing.T) {
	passages := []entity.Passage{
		{Content: "first excerpt", PageNumber: 1},
		{Content: "second excerpt", PageNumber: 2},
		{Content: "third excerpt", PageNumber: 3},
	}

	got := BuildContext(passages)

	if strings.Count(got, BlockSeparator) != 2 {
		t.Errorf("expected 2 separators for 3 passages, got %d in %q", strings.Count(got, BlockSeparator), got)
	}

	first := strings.Index(got, "first excerpt")
	second := strings.Index(got, "second excerpt")
	third := strings.Index(got, "third excerpt")
	if !(first < second && second < third) {
		t.Errorf("passages out of order: %d, %d, %d", first, second, third)
	}

	for i, want := range []string{"[Passage 1 | Page 1]", "[Passage 2 | Page 2]", "[Passage 3 | Page 3]"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing header %d: %q", i+1, want)
		}
	}
}
