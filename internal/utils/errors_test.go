package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"bad request", NewBadRequestError("No file provided"), http.StatusBadRequest, "No file provided"},
		{"too large", NewPayloadTooLargeError("too big"), http.StatusRequestEntityTooLarge, "too big"},
		{"wrapped app error", fmt.Errorf("outer: %w", NewNotFoundError("missing")), http.StatusNotFound, "missing"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := StatusOf(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestWrapInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapInternalError("Internal Server Error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal Server Error: connection refused", err.Error())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel("WARN").String())
	assert.Equal(t, "INFO", ParseLevel("nonsense").String())
}
