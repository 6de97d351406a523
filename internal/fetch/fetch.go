// Package fetch extracts article text for enrichment. Extraction is strictly
// best effort: any failure (network, parse, timeout) yields empty text and
// never an error. This is deliberately the opposite of summarization, which
// fails hard; keep the two policies separate.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"agentdigest/internal/logger"
	"agentdigest/internal/textutil"
)

// hashPrefixLen bounds how much extracted text feeds the content hash. Hashing
// a fixed-length prefix keeps the hash stable when re-extraction of a long
// article differs only in its tail.
const hashPrefixLen = 20000

const defaultTimeout = 30 * time.Second

const userAgent = "agentdigest/1.0 (+https://github.com)"

// Extractor fetches article pages and pulls out their main text.
type Extractor struct {
	client *http.Client
}

// NewExtractor creates an extractor with a bounded request timeout.
func NewExtractor() *Extractor {
	return &Extractor{client: &http.Client{Timeout: defaultTimeout}}
}

// ExtractText fetches pageURL and returns (text, contentHash). On any failure
// it returns ("", "").
func (e *Extractor) ExtractText(ctx context.Context, pageURL string) (string, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		logger.Debug("Text extraction skipped", "url", pageURL, "error", err.Error())
		return "", ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		logger.Debug("Text extraction fetch failed", "url", pageURL, "error", err.Error())
		return "", ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("Text extraction fetch failed", "url", pageURL, "status", resp.StatusCode)
		return "", ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Debug("Text extraction read failed", "url", pageURL, "error", err.Error())
		return "", ""
	}

	text := extractFromHTML(string(body), pageURL)
	if text == "" {
		return "", ""
	}
	return text, HashText(text)
}

// extractFromHTML tries readability first and falls back to plain paragraph
// text when readability finds nothing.
func extractFromHTML(html, pageURL string) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = &url.URL{}
	}

	if article, err := readability.FromReader(strings.NewReader(html), parsedURL); err == nil {
		if text := textutil.CollapseWhitespace(article.TextContent); text != "" {
			return text
		}
	}

	return fallbackText(html)
}

// fallbackText pulls visible block-level text with goquery after stripping
// obvious boilerplate elements.
func fallbackText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript").Remove()

	var builder strings.Builder
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre").Each(func(_ int, sel *goquery.Selection) {
		builder.WriteString(sel.Text())
		builder.WriteString(" ")
	})

	return textutil.CollapseWhitespace(builder.String())
}

// HashText returns the hex SHA-256 of a bounded prefix of text, or "" for
// empty text.
func HashText(text string) string {
	if text == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(textutil.Prefix(text, hashPrefixLen)))
	return hex.EncodeToString(sum[:])
}
