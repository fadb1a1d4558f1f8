package news

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed data/sources.yml
var defaultSources []byte

// LoadSources reads the source configuration at path, or the embedded
// default when path is empty.
func LoadSources(configFile string) (*Sources, error) {
	data := defaultSources
	if configFile != "" {
		var err error
		data, err = os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	sources, err := parseSources(data)
	if err != nil {
		return nil, err
	}

	if err := validateSources(sources); err != nil {
		return nil, fmt.Errorf("invalid news sources %s: %w", configFile, err)
	}

	return sources, nil
}

// Override replaces configured endpoints with non-empty values.
func (s *Sources) Override(industryURL string, maxPages int, feedURLs []string) error {
	if industryURL != "" {
		s.Industry.URL = industryURL
	}
	if maxPages > 0 {
		s.Industry.MaxPages = maxPages
	}
	if len(feedURLs) > 0 {
		feeds := make([]FeedSource, 0, len(feedURLs))
		for _, feedURL := range feedURLs {
			feeds = append(feeds, FeedSource{Name: feedName(feedURL), URL: feedURL})
		}
		s.Science.Feeds = feeds
	}
	return validateSources(s)
}

func feedName(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Path == "" {
		return feedURL
	}
	return path.Base(u.Path)
}

func parseSources(data []byte) (*Sources, error) {
	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if sources.Industry.Category == "" {
		sources.Industry.Category = "Industry"
	}
	if sources.Industry.PageSize == 0 {
		sources.Industry.PageSize = 20
	}
	if sources.Industry.MaxPages == 0 {
		sources.Industry.MaxPages = 10
	}
	if sources.Science.Author == "" {
		sources.Science.Author = "phys.org"
	}

	return &sources, nil
}

func validateSources(sources *Sources) error {
	if sources.Industry.URL == "" {
		return fmt.Errorf("industry URL is required")
	}
	if len(sources.Science.Feeds) == 0 {
		return fmt.Errorf("at least one science feed is required")
	}

	positiveFields := map[string]int{
		"page size": sources.Industry.PageSize,
		"max pages": sources.Industry.MaxPages,
	}
	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	for i, feed := range sources.Science.Feeds {
		if feed.URL == "" {
			return fmt.Errorf("feed URL is required at index %d", i)
		}
	}

	for i, filter := range sources.Science.Filters {
		if !filterFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
