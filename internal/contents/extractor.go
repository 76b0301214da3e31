package contents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ExtractedBlock is a single block returned by the extraction service.
type ExtractedBlock struct {
	Content       string  `json:"content"`
	SourceFile    string  `json:"source_file"`
	SourceType    string  `json:"source_type"`
	SourcePage    *int    `json:"source_page"`
	SourceSection *string `json:"source_section"`
	ContentType   string  `json:"content_type"`
}

// ExtractionResponse is the extraction service's reply for one project.
type ExtractionResponse struct {
	FilesProcessed int              `json:"files_processed"`
	Blocks         []ExtractedBlock `json:"blocks"`
}

// Extractor invokes the external service that parses a project's source
// files into content blocks. Parsing itself (PDF, Word) lives entirely on
// the far side of this interface.
type Extractor interface {
	Extract(ctx context.Context, projectID uuid.UUID) (*ExtractionResponse, error)
}

type httpExtractor struct {
	baseURL string
	client  *http.Client
}

// NewHTTPExtractor creates an Extractor that calls the extraction service
// over HTTP. An empty baseURL yields an extractor that always reports the
// service unavailable.
func NewHTTPExtractor(baseURL string, timeout time.Duration) Extractor {
	return &httpExtractor{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (e *httpExtractor) Extract(ctx context.Context, projectID uuid.UUID) (*ExtractionResponse, error) {
	if e.baseURL == "" {
		return nil, fmt.Errorf("%w: no base URL configured", ErrExtractionUnavailable)
	}

	url := fmt.Sprintf("%s/projects/%s/extract", e.baseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionUnavailable, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrExtractionUnavailable, resp.StatusCode)
	}

	var result ExtractionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrExtractionUnavailable, err)
	}

	return &result, nil
}
