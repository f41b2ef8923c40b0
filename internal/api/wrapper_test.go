package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCreds struct {
	token string
}

func (c staticCreds) Credential() (string, bool) {
	return c.token, c.token != ""
}

type captured struct {
	auth        string
	contentType string
	body        string
}

func captureServer(t *testing.T, status int) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.auth = r.Header.Get("Authorization")
		got.contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		got.body = string(body)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestDoAttachesBearerWhenCredentialPresent(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK)

	w := NewWrapper(srv.URL, staticCreds{token: "tok-1"})
	resp, err := w.Do(context.Background(), http.MethodGet, "/api/cart", nil, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-1", got.auth)
}

func TestDoOmitsBearerWhenAbsent(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK)

	w := NewWrapper(srv.URL, staticCreds{})
	resp, err := w.Do(context.Background(), http.MethodGet, "/api/products", nil, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, got.auth)
	assert.Empty(t, got.contentType, "no body, no default content type")
}

func TestDoDefaultsJSONContentTypeForBodies(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK)

	w := NewWrapper(srv.URL, staticCreds{})
	body := bytes.NewReader([]byte(`{"username":"alice"}`))
	resp, err := w.Do(context.Background(), http.MethodPost, "/api/auth/login", body, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "application/json", got.contentType)
}

func TestDoKeepsExplicitContentType(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK)

	w := NewWrapper(srv.URL, staticCreds{})
	header := http.Header{"Content-Type": {"text/plain"}}
	resp, err := w.Do(context.Background(), http.MethodPost, "/api/x", strings.NewReader("hi"), header)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "text/plain", got.contentType)
}

func TestDoForwardsMultipartContentTypeUnchanged(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := NewWrapper(srv.URL, staticCreds{token: "tok"})
	resp, err := w.Do(context.Background(), http.MethodPost, "/api/upload", NewFormBody(&buf, mw.FormDataContentType()), nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, mw.FormDataContentType(), got.contentType)
	assert.Contains(t, got.contentType, "boundary=")
	assert.Contains(t, got.body, "jpeg-bytes")
}

func TestDoReturnsNonSuccessResponsesWithoutError(t *testing.T) {
	srv, _ := captureServer(t, http.StatusForbidden)

	w := NewWrapper(srv.URL, staticCreds{})
	resp, err := w.Do(context.Background(), http.MethodGet, "/api/orders/my", nil, nil)
	require.NoError(t, err, "non-2xx is the caller's problem, not a transport failure")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDoWrapsTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens here anymore

	w := NewWrapper(srv.URL, staticCreds{})
	_, err := w.Do(context.Background(), http.MethodGet, "/api/cart", nil, nil)
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}
