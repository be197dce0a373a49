package ir

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tenkay/backend/pkg/httputil"
	"github.com/tenkay/backend/pkg/logger"
)

// Document types recognized on investor-relations pages
const (
	DocPressRelease = "press_release"
	DocPresentation = "earnings_presentation"
	DocWebcast      = "webcast"
	DocOther        = "other"
)

// Document is a link discovered on a company's IR page
type Document struct {
	Title   string
	URL     string
	DocType string
}

// Scraper extracts investor-relations documents from company IR pages.
// IR sites share no common markup, so extraction is heuristic: find
// press/news sections, collect links with meaningful titles, classify
// by title keywords.
type Scraper struct {
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewScraper creates a new IR page scraper
func NewScraper(httpClient *httputil.Client, log *logger.Logger) *Scraper {
	return &Scraper{
		httpClient: httpClient,
		logger:     log,
	}
}

// ScrapeDocuments fetches an IR page and returns discovered documents
func (s *Scraper) ScrapeDocuments(ctx context.Context, pageURL string) ([]Document, error) {
	resp, err := s.httpClient.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch IR page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("IR page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse IR page: %w", err)
	}

	documents := extractDocuments(doc, pageURL)

	s.logger.WithFields(map[string]interface{}{
		"url":   pageURL,
		"count": len(documents),
	}).Debug("Scraped IR page")

	return documents, nil
}

// extractDocuments walks press/news sections of the parsed page. When
// no such section exists the whole page is scanned.
func extractDocuments(doc *goquery.Document, pageURL string) []Document {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	sections := doc.Find("div, section, article").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		combined := strings.ToLower(class + " " + id)
		return strings.Contains(combined, "press") ||
			strings.Contains(combined, "news") ||
			strings.Contains(combined, "release")
	})

	scope := sections
	if sections.Length() == 0 {
		scope = doc.Selection
	}

	seen := make(map[string]bool)
	var documents []Document

	scope.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")

		// Skip navigation links and stubs
		if len(title) < 10 {
			return
		}
		lowerHref := strings.ToLower(href)
		if strings.HasPrefix(lowerHref, "#") ||
			strings.HasPrefix(lowerHref, "javascript:") ||
			strings.HasPrefix(lowerHref, "mailto:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(ref).String()

		if seen[absolute] {
			return
		}
		seen[absolute] = true

		documents = append(documents, Document{
			Title:   title,
			URL:     absolute,
			DocType: classifyDocument(title),
		})
	})

	return documents
}

// classifyDocument buckets a document by title keywords
func classifyDocument(title string) string {
	lower := strings.ToLower(title)

	earnings := strings.Contains(lower, "earnings") ||
		strings.Contains(lower, "quarterly results") ||
		strings.Contains(lower, "full year") ||
		containsQuarterLabel(lower)

	if earnings {
		switch {
		case strings.Contains(lower, "presentation") || strings.Contains(lower, "slides"):
			return DocPresentation
		case strings.Contains(lower, "webcast") || strings.Contains(lower, "call"):
			return DocWebcast
		default:
			return DocPressRelease
		}
	}

	if strings.Contains(lower, "press release") || strings.Contains(lower, "news release") {
		return DocPressRelease
	}

	return DocOther
}

func containsQuarterLabel(s string) bool {
	for _, q := range []string{"q1", "q2", "q3", "q4"} {
		if strings.Contains(s, q) {
			return true
		}
	}
	return false
}
