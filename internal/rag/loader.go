// Package rag implements the report question-answering pipeline: fetch a
// report document, split it into overlapping chunks, embed them, retrieve
// the most similar chunks for a question, and ask the chat model to answer
// from that context only.
package rag

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

var (
	// ErrNoReport is returned when a project has no report link
	ErrNoReport = errors.New("project has no report link")
	// ErrEmptyDocument is returned when the fetched report has no readable text
	ErrEmptyDocument = errors.New("report document has no readable text")
)

// DocumentLoader fetches a remote document and returns its readable text.
type DocumentLoader interface {
	Load(ctx context.Context, rawURL string) (string, error)
}

// HTTPLoader fetches report pages over HTTP and extracts article text
// with go-readability.
type HTTPLoader struct {
	client *http.Client
	logger *zap.Logger
}

func NewHTTPLoader(client *http.Client, logger *zap.Logger) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{client: client, logger: logger}
}

// Load fetches the URL and extracts readable text. Reports are shared as
// web-published docs, so the payload is HTML.
func (l *HTTPLoader) Load(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid report URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build report request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("report fetch returned status %d", resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return "", fmt.Errorf("failed to extract report text: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", ErrEmptyDocument
	}

	l.logger.Debug("loaded report document",
		zap.String("url", rawURL),
		zap.String("title", article.Title),
		zap.Int("chars", len(text)),
	)
	return text, nil
}
