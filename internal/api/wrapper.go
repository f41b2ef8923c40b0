package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// CredentialSource supplies the current bearer credential, if any.
type CredentialSource interface {
	Credential() (string, bool)
}

// TransportError marks a network-level failure (unreachable host, DNS
// failure). Non-success HTTP statuses are NOT transport errors; they reach
// the caller as ordinary responses.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FormBody is a multipart form payload. Its content type carries the
// boundary chosen by the multipart writer; the wrapper forwards it as-is
// instead of forcing JSON.
type FormBody struct {
	buf         *bytes.Buffer
	contentType string
}

// NewFormBody wraps an encoded multipart buffer and its content type.
func NewFormBody(buf *bytes.Buffer, contentType string) *FormBody {
	return &FormBody{buf: buf, contentType: contentType}
}

func (f *FormBody) Read(p []byte) (int, error) {
	return f.buf.Read(p)
}

// ContentType returns the multipart content type, boundary included.
func (f *FormBody) ContentType() string {
	return f.contentType
}

// Wrapper is the single outbound entry point to the remote commerce
// system. It attaches the current credential as a bearer header and
// defaults the content type to JSON for non-multipart bodies. Responses
// are returned unexamined; callers check status and parse the body.
type Wrapper struct {
	base  string
	creds CredentialSource
	httpc *http.Client
}

// NewWrapper builds a wrapper for the given base address.
func NewWrapper(base string, creds CredentialSource) *Wrapper {
	return &Wrapper{
		base:  strings.TrimRight(base, "/"),
		creds: creds,
		httpc: &http.Client{},
	}
}

// Do issues one request. The credential is read at call time so every
// request reflects current authentication state. Non-2xx responses are
// returned without error; only transport-level failures error, always as
// a *TransportError.
func (w *Wrapper) Do(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, w.base+path, body)
	if err != nil {
		return nil, err
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if token, ok := w.creds.Credential(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if form, ok := body.(*FormBody); ok {
		req.Header.Set("Content-Type", form.ContentType())
	} else if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{URL: req.URL.String(), Err: err}
	}
	return resp, nil
}
