package news

import "testing"

func TestSourceFilterRejects(t *testing.T) {
	spaceExploration := SourceFilter{Field: "categories", Excludes: []string{"Space Exploration"}}

	tests := []struct {
		name     string
		filters  []SourceFilter
		item     Item
		rejected bool
	}{
		{
			name:     "no filters",
			item:     Item{Categories: []string{"Space Exploration"}},
			rejected: false,
		},
		{
			name:     "space exploration excluded",
			filters:  []SourceFilter{spaceExploration},
			item:     Item{Categories: []string{"Astronomy", "Space Exploration"}},
			rejected: true,
		},
		{
			name:     "exclusion is case-insensitive substring",
			filters:  []SourceFilter{{Field: "categories", Excludes: []string{"space exploration"}}},
			item:     Item{Categories: []string{"Space Exploration Missions"}},
			rejected: true,
		},
		{
			name:     "no match across neighbouring categories",
			filters:  []SourceFilter{spaceExploration},
			item:     Item{Categories: []string{"Deep Space", "Exploration"}},
			rejected: false,
		},
		{
			name:     "other category kept",
			filters:  []SourceFilter{spaceExploration},
			item:     Item{Categories: []string{"Planetary Sciences"}},
			rejected: false,
		},
		{
			name:     "include matched",
			filters:  []SourceFilter{{Field: "title", Includes: []string{"mars", "moon"}}},
			item:     Item{Title: "New Moon craters"},
			rejected: false,
		},
		{
			name:     "include missed",
			filters:  []SourceFilter{{Field: "title", Includes: []string{"mars"}}},
			item:     Item{Title: "Jupiter storms"},
			rejected: true,
		},
		{
			name: "exclude wins over include",
			filters: []SourceFilter{
				{Field: "description", Includes: []string{"galaxy"}, Excludes: []string{"sponsored"}},
			},
			item:     Item{Description: "Sponsored galaxy tour"},
			rejected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := rejectedBy(tt.filters, tt.item)
			if (reason != "") != tt.rejected {
				t.Errorf("Expected rejected=%v, got reason '%s'", tt.rejected, reason)
			}
		})
	}
}
