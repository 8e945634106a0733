package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"PaperHarvest/internal/domain"
)

const baseURL = "https://huggingface.co"

var (
	paperPathExpr = regexp.MustCompile(`^/papers/\d{4}\.\d{4,5}`)
	arxivIDExpr   = regexp.MustCompile(`\d{4}\.\d{4,5}`)
	digitsExpr    = regexp.MustCompile(`^\d+$`)
)

// ParseID extracts the dotted arXiv identifier from a URL or path, returning
// the empty string when no such token exists.
func ParseID(raw string) string {
	return arxivIDExpr.FindString(raw)
}

// ParseListing extracts up to maxCount unique papers from the listing page,
// in document order. Candidates are article containers holding a /papers/
// link; when the page carries no such containers every matching anchor is
// treated as its own container. Malformed HTML yields an empty result.
func ParseListing(html string, maxCount int) []domain.ListingEntry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	type candidate struct {
		container *goquery.Selection
		href      string
	}
	var candidates []candidate

	doc.Find("article").Each(func(_ int, article *goquery.Selection) {
		link := article.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			return paperPathExpr.MatchString(href)
		}).First()
		if link.Length() > 0 {
			href, _ := link.Attr("href")
			candidates = append(candidates, candidate{container: article, href: href})
		}
	})

	if len(candidates) == 0 {
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if paperPathExpr.MatchString(href) {
				candidates = append(candidates, candidate{container: a, href: href})
			}
		})
	}

	seen := map[string]struct{}{}
	var entries []domain.ListingEntry
	for _, c := range candidates {
		if len(entries) >= maxCount {
			break
		}

		id := ParseID(c.href)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		entries = append(entries, domain.ListingEntry{
			ArxivID: id,
			URL:     baseURL + "/papers/" + id,
			Upvotes: containerUpvotes(c.container),
		})
	}
	return entries
}

// containerUpvotes reads the first descendant text node that is a standalone
// digit run. Heuristic: unrelated numbers in the container count too.
func containerUpvotes(sel *goquery.Selection) int {
	text := findText(sel, digitsExpr)
	if text == "" {
		return 0
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return n
}
