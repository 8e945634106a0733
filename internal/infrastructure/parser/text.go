package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// findText walks the selection's text nodes in document order and returns
// the first trimmed text matching expr.
func findText(sel *goquery.Selection, expr *regexp.Regexp) string {
	var found string
	for _, node := range sel.Nodes {
		if found != "" {
			break
		}
		walkText(node, func(text string) bool {
			trimmed := strings.TrimSpace(text)
			if expr.MatchString(trimmed) {
				found = trimmed
				return false
			}
			return true
		})
	}
	return found
}

func walkText(n *html.Node, visit func(string) bool) bool {
	if n.Type == html.TextNode {
		return visit(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walkText(c, visit) {
			return false
		}
	}
	return true
}
