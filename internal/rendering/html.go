// Package rendering inspects generated HTML documents. The pipeline treats
// structural problems as warnings: a slightly malformed page is still a
// usable artifact, so issues are reported, logged, and the run continues.
package rendering

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CheckDocument parses the document and returns a list of structural issues.
// An empty slice means the document looks like a servable, self-contained
// page. A parse failure is returned as an error since nothing below it can
// be checked.
func CheckDocument(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated HTML: %w", err)
	}

	var issues []string

	if !strings.Contains(strings.ToLower(html), "<html") {
		issues = append(issues, "missing <html> element")
	}
	if doc.Find("body").Length() == 0 {
		issues = append(issues, "missing <body> element")
	}
	if strings.TrimSpace(doc.Find("title").Text()) == "" {
		issues = append(issues, "missing or empty <title>")
	}

	// Self-containment: the artifact must render standalone, so any remote
	// reference is flagged.
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		issues = append(issues, fmt.Sprintf("external script reference: %s", src))
	})
	doc.Find("link[rel='stylesheet'][href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		issues = append(issues, fmt.Sprintf("external stylesheet reference: %s", href))
	})
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "//") {
			issues = append(issues, fmt.Sprintf("remote image reference: %s", src))
		}
	})

	return issues, nil
}
