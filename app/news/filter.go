package news

import (
	"fmt"
	"slices"
	"strings"
)

var filterFields = map[string]bool{
	"title":       true,
	"description": true,
	"link":        true,
	"categories":  true,
}

// rejects reports why item fails f, or "" when it passes. Categories are
// matched one by one, so "Space Exploration" never matches across a pair of
// neighbouring tags.
func (f SourceFilter) rejects(item Item) string {
	values := f.values(item)

	for _, exclude := range f.Excludes {
		if containsFold(values, exclude) {
			return fmt.Sprintf("%s contains '%s'", f.Field, exclude)
		}
	}

	if len(f.Includes) > 0 && !slices.ContainsFunc(f.Includes, func(include string) bool {
		return containsFold(values, include)
	}) {
		return fmt.Sprintf("%s contains none of %v", f.Field, f.Includes)
	}

	return ""
}

func (f SourceFilter) values(item Item) []string {
	switch f.Field {
	case "title":
		return []string{item.Title}
	case "description":
		return []string{item.Description}
	case "link":
		return []string{item.Link}
	case "categories":
		return item.Categories
	}
	return nil
}

func containsFold(values []string, pattern string) bool {
	pattern = strings.ToLower(pattern)
	return slices.ContainsFunc(values, func(v string) bool {
		return strings.Contains(strings.ToLower(v), pattern)
	})
}

// rejectedBy runs every science filter; the first rejection wins.
func rejectedBy(filters []SourceFilter, item Item) string {
	for _, filter := range filters {
		if reason := filter.rejects(item); reason != "" {
			return reason
		}
	}
	return ""
}
