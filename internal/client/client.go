package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/backend"
	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
)

const (
	AnalyzeProxyPath  = "/api/proxy/analyze"
	GenerateProxyPath = "/api/proxy/generate"
	NegotiatePath     = "/negotiate"
	NegotiationPath   = "/negotiation/"
)

// Endpoints are the base URLs the client talks to. Compliance analysis and
// contract generation go through the gateway. Risk detection and
// negotiations are called directly.
type Endpoints struct {
	Gateway     string
	Backend     string
	Negotiation string
}

// HTTPError is returned for non-2xx replies.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

type Client struct {
	endpoints Endpoints
	http      *http.Client
	logger    *utils.Logger
}

// New returns a Client. Timeouts are left to the caller's context, so the
// default http.Client has none.
func New(endpoints Endpoints, httpClient *http.Client, logger *utils.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	endpoints.Gateway = strings.TrimRight(endpoints.Gateway, "/")
	endpoints.Backend = strings.TrimRight(endpoints.Backend, "/")
	endpoints.Negotiation = strings.TrimRight(endpoints.Negotiation, "/")

	return &Client{
		endpoints: endpoints,
		http:      httpClient,
		logger:    logger,
	}
}

// SubmitCompliance uploads a contract to the gateway's analyze route. The
// raw reply is returned so callers can apply their own retry policy.
func (c *Client) SubmitCompliance(ctx context.Context, filename string, data []byte) (*backend.Response, error) {
	return c.postFile(ctx, c.endpoints.Gateway+AnalyzeProxyPath, filename, data)
}

// DetectRisk uploads a contract straight to the backend's risk analyser.
func (c *Client) DetectRisk(ctx context.Context, filename string, data []byte) (*models.RiskAnalysis, error) {
	resp, err := c.postFile(ctx, c.endpoints.Backend+backend.RiskUploadPath, filename, data)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		c.logger.Warn("Risk analysis failed", "status", resp.StatusCode)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: "Failed to analyze the contract"}
	}

	var analysis models.RiskAnalysis
	if err := json.Unmarshal(resp.Body, &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode risk analysis: %w", err)
	}
	return &analysis, nil
}

// GenerateContract posts the generation form through the gateway. When the
// reply has neither "contract" nor "text", Text holds the raw JSON.
func (c *Client) GenerateContract(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	resp, err := c.postJSON(ctx, c.endpoints.Gateway+GenerateProxyPath, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		var body struct {
			Error string `json:"error"`
		}
		message := "Failed to generate contract"
		if json.Unmarshal(resp.Body, &body) == nil && body.Error != "" {
			message = body.Error
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: message}
	}

	var generated models.GenerateResponse
	if err := json.Unmarshal(resp.Body, &generated); err != nil {
		return nil, fmt.Errorf("failed to decode generated contract: %w", err)
	}
	if generated.Body() == "" {
		generated.Text = string(resp.Body)
	}
	return &generated, nil
}

// Negotiate starts a negotiation when req.NegotiationID is empty, otherwise
// it adds a message to an existing one.
func (c *Client) Negotiate(ctx context.Context, req *models.NegotiateRequest) (*models.NegotiateResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("Please enter a message to start the negotiation.")
	}

	resp, err := c.postJSON(ctx, c.endpoints.Negotiation+NegotiatePath, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	var out models.NegotiateResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode negotiate response: %w", err)
	}
	return &out, nil
}

func (c *Client) GetNegotiation(ctx context.Context, id string) (*models.Negotiation, error) {
	endpoint := c.endpoints.Negotiation + NegotiationPath + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	var negotiation models.Negotiation
	if err := json.Unmarshal(resp.Body, &negotiation); err != nil {
		return nil, fmt.Errorf("failed to decode negotiation %s: %w", id, err)
	}
	if negotiation.ID == "" {
		negotiation.ID = id
	}
	return &negotiation, nil
}

func (c *Client) postFile(ctx context.Context, endpoint, filename string, data []byte) (*backend.Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (*backend.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*backend.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("API call finished",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	return &backend.Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
