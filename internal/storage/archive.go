package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var ErrNoFilePart = errors.New("multipart body has no file part")

// FilePart is a single file taken out of a multipart body.
type FilePart struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExtractFilePart finds the form field named field in a multipart body. The
// body itself is not modified.
func ExtractFilePart(body []byte, contentType, field string) (*FilePart, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content type: %w", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("expected multipart body, got %s", mediaType)
	}

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return nil, ErrNoFilePart
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read multipart body: %w", err)
		}

		if part.FormName() != field {
			part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read file part: %w", err)
		}

		return &FilePart{
			Filename:    part.FileName(),
			ContentType: mimetype.Detect(data).String(),
			Data:        data,
		}, nil
	}
}

// ArchiveKey builds the object key for an uploaded file.
func ArchiveKey(now time.Time, id, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("uploads/%s/%s/%s", now.UTC().Format("2006/01/02"), id, name)
}
