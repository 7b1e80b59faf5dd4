package crawler

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse parses an HTML document.
func Parse(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// ParseString parses fetched page text.
func ParseString(s string) (*goquery.Document, error) {
	return Parse(strings.NewReader(s))
}

// FindRequired returns the first descendant of sel with the given tag whose
// attributes match attrs. A "class" constraint matches when every listed class
// is present on the element; other attributes must be equal.
// If nothing matches, a *TagNotFoundError is returned.
func FindRequired(sel *goquery.Selection, tag string, attrs map[string]string) (*goquery.Selection, error) {
	found := sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return matchAttrs(s, attrs)
	}).First()

	if found.Length() == 0 {
		return nil, &TagNotFoundError{Tag: tag, Attrs: attrs}
	}
	return found, nil
}

// FindAll returns every descendant of sel with the given tag, in document order.
// When class is not empty, only elements carrying all of its classes match.
func FindAll(sel *goquery.Selection, tag, class string) *goquery.Selection {
	all := sel.Find(tag)
	if class == "" {
		return all
	}
	return all.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return matchAttrs(s, map[string]string{"class": class})
	})
}

// Select runs a CSS selector query below sel.
func Select(sel *goquery.Selection, query string) *goquery.Selection {
	return sel.Find(query)
}

// Text returns the concatenated text of every text node below the selection.
func Text(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}
	return b.String()
}

// collectText appends the text content of n and its descendants to b.
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// ResolveURL resolves href against base.
// It returns an error when either URL cannot be parsed or href is empty.
func ResolveURL(base, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("empty link on %s", base)
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", href, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// matchAttrs reports whether s satisfies every attribute constraint.
func matchAttrs(s *goquery.Selection, attrs map[string]string) bool {
	for key, want := range attrs {
		if key == "class" {
			for _, class := range strings.Fields(want) {
				if !s.HasClass(class) {
					return false
				}
			}
			continue
		}

		got, ok := s.Attr(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}
