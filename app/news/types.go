package news

import (
	"errors"
	"time"
)

// ErrSourcesUnavailable means every news source of a request failed.
var ErrSourcesUnavailable = errors.New("news sources unavailable")

// Article is the public news record. Timestamp is epoch seconds, UTC.
type Article struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Author    string  `json:"author"`
	Image     string  `json:"image"`
	URL       string  `json:"url"`
	Timestamp float64 `json:"timestamp"`
	Category  string  `json:"category"`
}

type Query struct {
	Earliest time.Time
	Limit    int // negative means no limit
}

// Item is one parsed RSS entry before it becomes an Article
type Item struct {
	GUID         string
	Title        string
	Link         string
	Description  string
	PublishedAt  time.Time
	Categories   []string
	ThumbnailURL string
}

// Sources is the news source configuration
type Sources struct {
	Industry IndustrySource `yaml:"industry"`
	Science  ScienceSource  `yaml:"science"`
}

type IndustrySource struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	PageSize int    `yaml:"page_size"`
	MaxPages int    `yaml:"max_pages"`
}

type ScienceSource struct {
	Author  string         `yaml:"author"`
	Feeds   []FeedSource   `yaml:"feeds"`
	Filters []SourceFilter `yaml:"filters"`
}

type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type SourceFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
