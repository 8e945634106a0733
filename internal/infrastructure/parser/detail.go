package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"PaperHarvest/internal/domain"
)

const (
	maxAuthorElements = 10
	maxAuthorTextLen  = 100
)

var (
	upvoteExpr = regexp.MustCompile(`^\d+ upvote`)
	numberExpr = regexp.MustCompile(`\d+`)
)

// ParseDetail extracts a paper's metadata from its detail page. Each field
// has its own primary/fallback strategy chain; a missing field degrades to
// an empty value.
func ParseDetail(html, arxivID string) domain.PaperDetail {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.PaperDetail{PDFURL: defaultPDFURL(arxivID)}
	}

	return domain.PaperDetail{
		Title:        extractTitle(doc),
		Authors:      extractAuthors(doc),
		Abstract:     extractAbstract(doc),
		Tags:         extractTags(doc),
		PDFURL:       extractPDFURL(doc, arxivID),
		ThumbnailURL: extractThumbnail(doc),
		Upvotes:      extractUpvotes(doc),
	}
}

func extractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractAbstract prefers any p/div/section whose class mentions "abstract";
// otherwise the longest paragraph on the page wins.
func extractAbstract(doc *goquery.Document) string {
	var abstract string
	found := false
	doc.Find("p, div, section").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if strings.Contains(strings.ToLower(class), "abstract") {
			abstract = collapseSpace(sel.Text())
			found = true
			return false
		}
		return true
	})
	if found {
		return abstract
	}

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := collapseSpace(p.Text()); len(text) > len(abstract) {
			abstract = text
		}
	})
	return abstract
}

// extractAuthors takes citation_author meta values in document order when
// present, otherwise the text of up to 10 class~author elements.
func extractAuthors(doc *goquery.Document) []string {
	metas := doc.Find(`meta[name="citation_author"]`)
	if metas.Length() > 0 {
		authors := make([]string, 0, metas.Length())
		metas.Each(func(_ int, m *goquery.Selection) {
			content, _ := m.Attr("content")
			authors = append(authors, content)
		})
		return authors
	}

	var authors []string
	elements := 0
	doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if !strings.Contains(strings.ToLower(class), "author") {
			return true
		}
		elements++
		text := strings.TrimSpace(sel.Text())
		if text != "" && len(text) < maxAuthorTextLen {
			authors = append(authors, text)
		}
		return elements < maxAuthorElements
	})
	return authors
}

func extractTags(doc *goquery.Document) []string {
	content, ok := doc.Find(`meta[name="keywords"]`).First().Attr("content")
	if !ok {
		return nil
	}
	var tags []string
	for _, token := range strings.Split(content, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tags = append(tags, token)
		}
	}
	return tags
}

func extractPDFURL(doc *goquery.Document, arxivID string) string {
	if href, ok := doc.Find(`a[href*="arxiv.org/pdf"]`).First().Attr("href"); ok && href != "" {
		return href
	}
	return defaultPDFURL(arxivID)
}

func defaultPDFURL(arxivID string) string {
	return "https://arxiv.org/pdf/" + arxivID
}

func extractThumbnail(doc *goquery.Document) *string {
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		return &content
	}
	return nil
}

// extractUpvotes looks for "<digits> upvote" text first, then any standalone
// digit run anywhere on the page. The latter is noisy but better than
// nothing for pages that render the counter without a label.
func extractUpvotes(doc *goquery.Document) int {
	text := findText(doc.Selection, upvoteExpr)
	if text == "" {
		text = findText(doc.Selection, digitsExpr)
	}
	digits := numberExpr.FindString(text)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
