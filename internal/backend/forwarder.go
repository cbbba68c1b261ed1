package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
)

const (
	ComplianceUploadPath = "/compliance/upload"
	ContractGeneratePath = "/contract/generate"
	RiskUploadPath       = "/risk/upload"
)

// Response is an upstream reply kept as raw bytes so it can be relayed
// without re-encoding.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Forwarder posts request bodies to the analysis backend unchanged.
type Forwarder interface {
	Forward(ctx context.Context, path string, body []byte, contentType string) (*Response, error)
}

type httpForwarder struct {
	baseURL string
	logger  *utils.Logger
	client  *http.Client
}

// NewForwarder returns a Forwarder for baseURL. A nil client gets a default
// one with a long timeout, since analysis can take minutes.
func NewForwarder(baseURL string, client *http.Client, logger *utils.Logger) Forwarder {
	if client == nil {
		client = &http.Client{
			Timeout: 10 * time.Minute,
		}
	}
	return &httpForwarder{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		client:  client,
	}
}

func (f *httpForwarder) Forward(ctx context.Context, path string, body []byte, contentType string) (*Response, error) {
	url := f.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	f.logger.Debug("Upstream call finished",
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"duration_ms", time.Since(start).Milliseconds())

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
