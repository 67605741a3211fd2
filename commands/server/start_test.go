package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:26658", opts.bind)
	assert.False(t, opts.debug)
	assert.Equal(t, "", opts.metrics)

	opts, err = parseFlags([]string{"-bind", "unix:///tmp/app.sock", "-debug", "-metrics", ":9100"})
	require.NoError(t, err)
	assert.Equal(t, "unix:///tmp/app.sock", opts.bind)
	assert.True(t, opts.debug)
	assert.Equal(t, ":9100", opts.metrics)

	_, err = parseFlags([]string{"-unknown"})
	assert.Error(t, err)
	_, err = parseFlags([]string{"extra"})
	assert.Error(t, err)
}

func TestMetricsServer(t *testing.T) {
	srv := MetricsServer(":0")

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
