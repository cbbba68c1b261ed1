package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCredentials = Credentials{ServiceID: "service_x", TemplateID: "template_y", PublicKey: "pk_z"}

func validMessage() *models.ContactMessage {
	return &models.ContactMessage{
		Name:    "Priya",
		Email:   "priya@example.com",
		Subject: "Lease question",
		Message: "Can you review my rental agreement?",
	}
}

func TestSendPostsTemplatePayload(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	m := NewEmailJS(server.URL, testCredentials, server.Client(), utils.NewNopLogger())
	require.NoError(t, m.Send(context.Background(), validMessage()))

	assert.Equal(t, "service_x", got.ServiceID)
	assert.Equal(t, "template_y", got.TemplateID)
	assert.Equal(t, "pk_z", got.UserID)
	assert.Equal(t, map[string]string{
		"name":    "Priya",
		"email":   "priya@example.com",
		"subject": "Lease question",
		"message": "Can you review my rental agreement?",
	}, got.TemplateParams)
}

func TestSendRejectedByService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The Public Key is invalid", http.StatusBadRequest)
	}))
	defer server.Close()

	m := NewEmailJS(server.URL, testCredentials, server.Client(), utils.NewNopLogger())
	err := m.Send(context.Background(), validMessage())

	assert.ErrorIs(t, err, ErrSendFailed)
	assert.Equal(t, "Failed to send email. Please try again later.", err.Error())
}

func TestSendTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	m := NewEmailJS(url, testCredentials, nil, utils.NewNopLogger())
	assert.ErrorIs(t, m.Send(context.Background(), validMessage()), ErrSendFailed)
}

func TestSendValidatesBeforePosting(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	msg := validMessage()
	msg.Message = "too short"

	m := NewEmailJS(server.URL, testCredentials, server.Client(), utils.NewNopLogger())
	err := m.Send(context.Background(), msg)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "Message must be at least 10 characters.")
	assert.False(t, called)
}

func TestSendRequiresCredentials(t *testing.T) {
	m := NewEmailJS("", Credentials{ServiceID: "service_x"}, nil, utils.NewNopLogger())
	assert.ErrorIs(t, m.Send(context.Background(), validMessage()), ErrNotConfigured)
}
