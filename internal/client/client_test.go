package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Endpoints{Gateway: server.URL, Backend: server.URL, Negotiation: server.URL + "/"}, nil, utils.NewNopLogger())
}

func TestSubmitCompliance(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, AnalyzeProxyPath, r.URL.Path)
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "lease.pdf", header.Filename)
		assert.Equal(t, "%PDF-", string(data))
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	resp, err := c.SubmitCompliance(context.Background(), "lease.pdf", []byte("%PDF-"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestDetectRisk(t *testing.T) {
	t.Run("decodes analysis", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/risk/upload", r.URL.Path)
			w.Write([]byte(`{
				"good_clauses": [{"clause": "Payment within 30 days", "reason": "clear terms"}],
				"risk_clauses": [{"clause": "Unlimited liability", "risk": "one-sided"}],
				"recommendations": [{"clause": "Termination", "reason": "vague", "suggested_rewrite": "Either party may terminate with 30 days notice."}]
			}`))
		})

		analysis, err := c.DetectRisk(context.Background(), "c.pdf", []byte("%PDF-"))
		require.NoError(t, err)
		require.Len(t, analysis.GoodClauses, 1)
		assert.Equal(t, "one-sided", analysis.RiskClauses[0].Risk)
		assert.Equal(t, "Either party may terminate with 30 days notice.", analysis.Recommendations[0].SuggestedRewrite)
	})

	t.Run("non-OK", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Extracted text is empty."}`))
		})

		_, err := c.DetectRisk(context.Background(), "c.pdf", []byte("%PDF-"))
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
		assert.Equal(t, "Failed to analyze the contract", err.Error())
	})
}

func TestGenerateContract(t *testing.T) {
	req := &models.GenerateRequest{ContractType: "nda", PartyA: "A", PartyB: "B", Duration: "1 year", Jurisdiction: "Pune"}

	t.Run("contract field", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, GenerateProxyPath, r.URL.Path)
			var got models.GenerateRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "Pune", got.Jurisdiction)
			w.Write([]byte(`{"contract":"NDA text","pdf_url":"https://gofile.io/d/1"}`))
		})

		resp, err := c.GenerateContract(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "NDA text", resp.Body())
		assert.Equal(t, "https://gofile.io/d/1", resp.PDFURL)
	})

	t.Run("falls back to raw JSON", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"unexpected":true}`))
		})

		resp, err := c.GenerateContract(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, `{"unexpected":true}`, resp.Body())
	})

	t.Run("error from body", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Internal Server Error"}`))
		})

		_, err := c.GenerateContract(context.Background(), req)
		assert.EqualError(t, err, "Internal Server Error")
	})

	t.Run("error without body", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.GenerateContract(context.Background(), req)
		assert.EqualError(t, err, "Failed to generate contract")
	})
}

func TestNegotiate(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, NegotiatePath, r.URL.Path)
		var got models.NegotiateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, models.SpeakerOne, got.Speaker)
		assert.Empty(t, got.NegotiationID)
		w.Write([]byte(`{"negotiation_id":"n-1","status":"active"}`))
	})

	resp, err := c.Negotiate(context.Background(), &models.NegotiateRequest{Speaker: models.SpeakerOne, Message: "I want 10% off"})
	require.NoError(t, err)
	assert.Equal(t, "n-1", resp.NegotiationID)
	assert.Equal(t, models.NegotiationActive, resp.Status)

	_, err = c.Negotiate(context.Background(), &models.NegotiateRequest{Speaker: models.SpeakerOne, Message: "   "})
	assert.Error(t, err)
}

func TestGetNegotiation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/negotiation/n-1":
			w.Write([]byte(`{"status":"completed","messages":[{"speaker":"user1","message":"hi","timestamp":"2025-03-01T10:00:00.123456"}],"verdict":{"summary":"s","compromise":"c"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	n, err := c.GetNegotiation(context.Background(), "n-1")
	require.NoError(t, err)
	assert.Equal(t, "n-1", n.ID)
	assert.True(t, n.HasVerdict())
	assert.Equal(t, "hi", n.Messages[0].Body())

	_, err = c.GetNegotiation(context.Background(), "missing")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "HTTP error! status: 404", err.Error())
}
