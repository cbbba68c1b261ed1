package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/BerylCAtieno/vakeel-gateway/internal/backend"
	"github.com/BerylCAtieno/vakeel-gateway/internal/middleware"
	"github.com/BerylCAtieno/vakeel-gateway/internal/services"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
)

// errorKey selects the JSON field used for the error text. The analyze page
// reads "message" and the generate page reads "error".
type errorKey string

const (
	messageKey errorKey = "message"
	errorField errorKey = "error"
)

type ProxyHandler struct {
	service       services.ProxyService
	logger        *utils.Logger
	maxUploadSize int64
}

func NewProxyHandler(service services.ProxyService, maxUploadSize int64, logger *utils.Logger) *ProxyHandler {
	return &ProxyHandler{
		service:       service,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// Analyze forwards a multipart contract upload to the compliance checker.
func (h *ProxyHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, r, messageKey, err)
		return
	}

	resp, err := h.service.Analyze(r.Context(), body, r.Header.Get("Content-Type"))
	if err != nil {
		h.respondError(w, r, messageKey, err)
		return
	}

	h.relay(w, resp)
}

// Generate forwards a contract generation form as JSON.
func (h *ProxyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, r, errorField, err)
		return
	}

	resp, err := h.service.Generate(r.Context(), body)
	if err != nil {
		h.respondError(w, r, errorField, err)
		return
	}

	h.relay(w, resp)
}

func (h *ProxyHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.ContentLength > h.maxUploadSize {
		return nil, utils.NewPayloadTooLargeError(fmt.Sprintf("Request body exceeds %d bytes", h.maxUploadSize))
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, utils.NewPayloadTooLargeError(fmt.Sprintf("Request body exceeds %d bytes", h.maxUploadSize))
		}
		return nil, utils.WrapInternalError(services.GenericErrorMessage, err)
	}
	return body, nil
}

// relay writes the upstream status and body unchanged.
func (h *ProxyHandler) relay(w http.ResponseWriter, resp *backend.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		h.logger.Error("Failed to write relayed response", "error", err)
	}
}

func (h *ProxyHandler) respondError(w http.ResponseWriter, r *http.Request, key errorKey, err error) {
	status, message := utils.StatusOf(err)

	h.logger.Error("Request error",
		"status", status,
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFrom(r.Context()))

	respondJSON(w, h.logger, status, map[string]string{string(key): message})
}

func respondJSON(w http.ResponseWriter, logger *utils.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}
