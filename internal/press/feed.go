package press

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tenkay/backend/pkg/logger"
)

// FeedReader pulls press releases from company IR RSS/Atom feeds.
// Most IR sites publish one regardless of how the page itself is built,
// so the feed is tried before any HTML scraping.
type FeedReader struct {
	parser *gofeed.Parser
	logger *logger.Logger
}

// NewFeedReader creates a new feed reader
func NewFeedReader(log *logger.Logger) *FeedReader {
	parser := gofeed.NewParser()
	parser.UserAgent = "10KAY feed reader"

	return &FeedReader{
		parser: parser,
		logger: log,
	}
}

// Fetch parses the feed at feedURL and converts entries published after
// since into articles for the given company.
func (f *FeedReader) Fetch(ctx context.Context, feedURL string, companyID int64, since time.Time) ([]Article, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	source := feed.Title
	if source == "" {
		source = feedURL
	}

	var articles []Article
	for _, item := range feed.Items {
		a, ok := itemToArticle(item, companyID, source, since)
		if !ok {
			continue
		}
		articles = append(articles, a)
	}

	f.logger.WithFields(map[string]interface{}{
		"feed":  feedURL,
		"total": len(feed.Items),
		"kept":  len(articles),
	}).Debug("Parsed press feed")

	return articles, nil
}

// itemToArticle converts one feed entry. Entries without a link or title,
// and entries older than since, are dropped.
func itemToArticle(item *gofeed.Item, companyID int64, source string, since time.Time) (Article, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" || item.Link == "" {
		return Article{}, false
	}

	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}
	if published != nil && published.Before(since) {
		return Article{}, false
	}

	return Article{
		CompanyID:   companyID,
		Title:       title,
		URL:         item.Link,
		Source:      source,
		Summary:     strings.TrimSpace(item.Description),
		PublishedAt: published,
	}, true
}
