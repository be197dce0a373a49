package ir

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `
<html>
<body>
  <nav>
    <a href="/">Home</a>
    <a href="#main">Skip to content</a>
  </nav>
  <div class="press-releases">
    <ul>
      <li><a href="/news/2025/q3-earnings">Acme Reports Third Quarter 2025 Earnings</a></li>
      <li><a href="https://cdn.acme.com/q3-2025-slides.pdf">Q3 2025 Earnings Presentation</a></li>
      <li><a href="/events/q3-call">Q3 2025 Earnings Conference Call Webcast</a></li>
      <li><a href="/news/2025/board-appointment">Acme Appoints New Board Member</a></li>
      <li><a href="mailto:ir@acme.com">Contact Investor Relations Team</a></li>
      <li><a href="javascript:void(0)">Subscribe to Email Alerts Now</a></li>
      <li><a href="/news/2025/q3-earnings">Acme Reports Third Quarter 2025 Earnings</a></li>
    </ul>
  </div>
  <footer>
    <a href="/legal/privacy-policy">Privacy Policy and Terms</a>
  </footer>
</body>
</html>`

func parsePage(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractDocuments(t *testing.T) {
	doc := parsePage(t, samplePage)

	docs := extractDocuments(doc, "https://investor.acme.com/news")
	require.Len(t, docs, 4)

	assert.Equal(t, "Acme Reports Third Quarter 2025 Earnings", docs[0].Title)
	assert.Equal(t, "https://investor.acme.com/news/2025/q3-earnings", docs[0].URL)
	assert.Equal(t, DocPressRelease, docs[0].DocType)

	// Absolute link kept as-is
	assert.Equal(t, "https://cdn.acme.com/q3-2025-slides.pdf", docs[1].URL)
	assert.Equal(t, DocPresentation, docs[1].DocType)

	assert.Equal(t, DocWebcast, docs[2].DocType)
	assert.Equal(t, DocOther, docs[3].DocType)
}

func TestExtractDocumentsScansWholePageWithoutSections(t *testing.T) {
	page := `<html><body>
		<a href="/releases/annual-report-2024">Full Year 2024 Results Announcement</a>
		<a href="/about">About</a>
	</body></html>`

	docs := extractDocuments(parsePage(t, page), "https://acme.com/ir")
	require.Len(t, docs, 1)
	assert.Equal(t, "https://acme.com/releases/annual-report-2024", docs[0].URL)
	assert.Equal(t, DocPressRelease, docs[0].DocType)
}

func TestClassifyDocument(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Q2 2025 Earnings Presentation", DocPresentation},
		{"Second Quarter 2025 Earnings Call Webcast", DocWebcast},
		{"Acme Reports Full Year 2024 Earnings", DocPressRelease},
		{"News Release: Product Launch", DocPressRelease},
		{"Annual Shareholder Meeting Details", DocOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyDocument(tt.title), tt.title)
	}
}
