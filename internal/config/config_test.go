package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Equal(t, "https://convo-legal-mistral.onrender.com", cfg.NegotiationURL)
	assert.Equal(t, 5*time.Minute, cfg.UploadTimeout)
	assert.Equal(t, 3, cfg.UploadAttempts)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 12, cfg.PollMaxTicks)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadSize)
	assert.False(t, cfg.ArchiveUploads)
	assert.False(t, cfg.EmailJSConfigured())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "http://backend.internal:5000/")
	t.Setenv("UPLOAD_ATTEMPTS", "5")
	t.Setenv("POLL_INTERVAL", "250ms")
	t.Setenv("ARCHIVE_UPLOADS", "true")
	t.Setenv("EMAILJS_SERVICE_ID", "svc")
	t.Setenv("EMAILJS_TEMPLATE_ID", "tpl")
	t.Setenv("EMAILJS_PUBLIC_KEY", "pub")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://backend.internal:5000", cfg.BackendURL, "trailing slash is trimmed")
	assert.Equal(t, 5, cfg.UploadAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.True(t, cfg.ArchiveUploads)
	assert.True(t, cfg.EmailJSConfigured())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vakeel.yaml")
	content := "log_level: debug\npoll_max_ticks: 4\ngateway_url: http://gateway:8080\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.PollMaxTicks)
	assert.Equal(t, "http://gateway:8080", cfg.GatewayURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("rejects relative backend url", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "localhost:5000")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BACKEND_URL")
	})

	t.Run("rejects zero attempts", func(t *testing.T) {
		t.Setenv("UPLOAD_ATTEMPTS", "0")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UPLOAD_ATTEMPTS")
	})

	t.Run("archive requires bucket", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.ArchiveUploads = true
		cfg.S3BucketName = ""
		assert.ErrorContains(t, cfg.Validate(), "S3_BUCKET_NAME")
	})
}
