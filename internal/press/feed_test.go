package press

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Acme Corp Press Releases</title>
    <link>https://investor.acme.com</link>
    <item>
      <title>Acme Reports Third Quarter 2025 Results</title>
      <link>https://investor.acme.com/news/q3-2025</link>
      <description>Revenue grew 12% year over year.</description>
      <pubDate>Thu, 30 Oct 2025 13:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Acme Announces Dividend</title>
      <link>https://investor.acme.com/news/dividend</link>
      <pubDate>Mon, 03 Mar 2025 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://investor.acme.com/news/untitled</link>
    </item>
  </channel>
</rss>`

func TestItemToArticle(t *testing.T) {
	feed, err := gofeed.NewParser().Parse(strings.NewReader(sampleFeed))
	require.NoError(t, err)
	require.Len(t, feed.Items, 3)

	since := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	a, ok := itemToArticle(feed.Items[0], 7, feed.Title, since)
	require.True(t, ok)
	assert.Equal(t, int64(7), a.CompanyID)
	assert.Equal(t, "Acme Reports Third Quarter 2025 Results", a.Title)
	assert.Equal(t, "https://investor.acme.com/news/q3-2025", a.URL)
	assert.Equal(t, "Acme Corp Press Releases", a.Source)
	assert.Equal(t, "Revenue grew 12% year over year.", a.Summary)
	require.NotNil(t, a.PublishedAt)
	assert.Equal(t, 2025, a.PublishedAt.Year())

	// Older than since
	_, ok = itemToArticle(feed.Items[1], 7, feed.Title, since)
	assert.False(t, ok)

	// No title
	_, ok = itemToArticle(feed.Items[2], 7, feed.Title, since)
	assert.False(t, ok)
}

func TestItemToArticleKeepsUndatedEntries(t *testing.T) {
	item := &gofeed.Item{
		Title: "Acme Schedules Earnings Call",
		Link:  "https://investor.acme.com/news/call",
	}

	a, ok := itemToArticle(item, 1, "Acme", time.Now())
	require.True(t, ok)
	assert.Nil(t, a.PublishedAt)
}
