package news

import (
	"testing"
	"time"
)

const physorgFeed = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Astronomy News</title>
    <link>https://phys.org/space-news/astronomy/</link>
    <item>
      <title> Webb spots a distant galaxy </title>
      <description>&lt;p&gt;Astronomers using &lt;b&gt;JWST&lt;/b&gt; found a galaxy.&lt;/p&gt;</description>
      <link>https://phys.org/news/2024-03-webb-galaxy.html</link>
      <category>Astronomy</category>
      <pubDate>Fri, 01 Mar 2024 12:00:00 -0500</pubDate>
      <guid isPermaLink="false">news630000001</guid>
      <media:thumbnail url="https://scx1.b-cdn.net/csz/news/tmb/2024/webb.jpg" width="90" height="90" />
    </item>
    <item>
      <title>Rover drills a new sample</title>
      <description>Plain summary.</description>
      <link>https://phys.org/news/2024-03-rover-sample.html</link>
      <category>Space Exploration</category>
      <pubDate>Fri, 01 Mar 2024 09:30:00 -0500</pubDate>
    </item>
  </channel>
</rss>`

func TestParserRun(t *testing.T) {
	parser := NewParser()
	items, err := parser.Run([]byte(physorgFeed))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got: %d", len(items))
	}

	item := items[0]
	if item.GUID != "news630000001" {
		t.Errorf("Expected GUID 'news630000001', got: %s", item.GUID)
	}
	if item.Title != "Webb spots a distant galaxy" {
		t.Errorf("Expected trimmed title, got: '%s'", item.Title)
	}
	if item.Description != "Astronomers using JWST found a galaxy." {
		t.Errorf("Expected plain description, got: '%s'", item.Description)
	}
	if item.ThumbnailURL != "https://scx1.b-cdn.net/csz/news/tmb/2024/webb.jpg" {
		t.Errorf("Expected media thumbnail, got: %s", item.ThumbnailURL)
	}
	if len(item.Categories) != 1 || item.Categories[0] != "Astronomy" {
		t.Errorf("Expected category Astronomy, got: %v", item.Categories)
	}

	expected := time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)
	if !item.PublishedAt.Equal(expected) {
		t.Errorf("Expected published %v, got: %v", expected, item.PublishedAt)
	}
	if item.PublishedAt.Location() != time.UTC {
		t.Errorf("Expected UTC time, got: %v", item.PublishedAt.Location())
	}

	// GUID falls back to the link
	if items[1].GUID != "https://phys.org/news/2024-03-rover-sample.html" {
		t.Errorf("Expected GUID from link, got: %s", items[1].GUID)
	}
	if items[1].ThumbnailURL != "" {
		t.Errorf("Expected no thumbnail, got: %s", items[1].ThumbnailURL)
	}
}

func TestParserInvalidFeed(t *testing.T) {
	parser := NewParser()
	if _, err := parser.Run([]byte("not a feed")); err == nil {
		t.Error("Expected error for invalid feed")
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  plain  ", "plain"},
		{"<p>Hello <i>world</i></p>", "Hello world"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := plainText(tt.input); got != tt.expected {
			t.Errorf("Expected '%s', got '%s'", tt.expected, got)
		}
	}
}
