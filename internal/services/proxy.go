package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/backend"
	"github.com/BerylCAtieno/vakeel-gateway/internal/storage"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
)

// GenericErrorMessage is the only failure text the proxy routes expose.
const GenericErrorMessage = "Internal Server Error"

// ProxyService forwards client requests to the analysis backend and decides
// whether the upstream reply may be relayed.
type ProxyService interface {
	Analyze(ctx context.Context, body []byte, contentType string) (*backend.Response, error)
	Generate(ctx context.Context, payload []byte) (*backend.Response, error)
}

type proxyService struct {
	forwarder backend.Forwarder
	archive   storage.Storage
	logger    *utils.Logger
	now       func() time.Time
}

// NewProxyService builds the proxy. archive may be nil, in which case
// uploads are not kept.
func NewProxyService(forwarder backend.Forwarder, archive storage.Storage, logger *utils.Logger) ProxyService {
	return &proxyService{
		forwarder: forwarder,
		archive:   archive,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *proxyService) Analyze(ctx context.Context, body []byte, contentType string) (*backend.Response, error) {
	if s.archive != nil {
		s.archiveUpload(ctx, body, contentType)
	}

	resp, err := s.forwarder.Forward(ctx, backend.ComplianceUploadPath, body, contentType)
	return s.relayable(backend.ComplianceUploadPath, resp, err)
}

func (s *proxyService) Generate(ctx context.Context, payload []byte) (*backend.Response, error) {
	if !json.Valid(payload) {
		s.logger.Warn("Rejecting generate request with invalid JSON", "bytes", len(payload))
		return nil, utils.WrapInternalError(GenericErrorMessage, errors.New("request body is not valid JSON"))
	}

	resp, err := s.forwarder.Forward(ctx, backend.ContractGeneratePath, payload, "application/json")
	return s.relayable(backend.ContractGeneratePath, resp, err)
}

// relayable collapses every upstream failure to the generic error. Only a
// 2xx JSON reply is passed through.
func (s *proxyService) relayable(path string, resp *backend.Response, err error) (*backend.Response, error) {
	if err != nil {
		s.logger.Error("Proxy error", "path", path, "error", err)
		return nil, utils.WrapInternalError(GenericErrorMessage, err)
	}

	if !resp.OK() {
		s.logger.Error("Proxy error", "path", path, "status", resp.StatusCode, "body", truncate(resp.Body, 512))
		return nil, utils.NewInternalError(GenericErrorMessage)
	}

	if !json.Valid(resp.Body) {
		s.logger.Error("Proxy error: upstream returned non-JSON body", "path", path, "status", resp.StatusCode)
		return nil, utils.NewInternalError(GenericErrorMessage)
	}

	return resp, nil
}

func (s *proxyService) archiveUpload(ctx context.Context, body []byte, contentType string) {
	part, err := storage.ExtractFilePart(body, contentType, "file")
	if err != nil {
		s.logger.Warn("Skipping upload archive", "error", err)
		return
	}

	key := storage.ArchiveKey(s.now(), utils.GenerateID(), part.Filename)
	if err := s.archive.Upload(ctx, key, part.Data, part.ContentType); err != nil {
		s.logger.Error("Failed to archive upload", "error", err, "key", key)
		return
	}

	s.logger.Info("Upload archived", "key", key, "filename", part.Filename, "size", len(part.Data))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
