// Package api is the thin HTTP client over the marketplace REST API. It adds
// bearer-token auth, JSON and multipart body handling, and uniform error
// surfacing; everything else about the API is treated as an opaque contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed API response size (10MB)
const maxResponseSize = 10 * 1024 * 1024

// AuthMode selects which bearer token, if any, a request carries
type AuthMode string

const (
	// AuthNone sends no Authorization header
	AuthNone AuthMode = ""
	// AuthUser sends the customer token
	AuthUser AuthMode = "user"
	// AuthVendor sends the vendor token
	AuthVendor AuthMode = "vendor"
	// AuthAuto picks user or vendor based on the persisted auth type
	AuthAuto AuthMode = "auto"
)

// TokenSource supplies session tokens for outgoing requests
type TokenSource interface {
	UserToken() string
	VendorToken() string
	AuthType() string
}

// FilePart is one file attachment of a multipart request
type FilePart struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// MultipartForm carries fields and file attachments for upload endpoints
type MultipartForm struct {
	Fields map[string]string
	Files  []FilePart
}

// Request describes one API call
type Request struct {
	Method string
	Path   string // e.g. "/wishlist/ids", no "/api" prefix
	Body   any    // JSON-encoded when non-nil
	Form   *MultipartForm
	Auth   AuthMode
}

// Client is the marketplace API client
type Client struct {
	baseURL    string
	serverBase string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates an API client for the given base URL
func New(baseURL, serverBase string, timeout time.Duration, tokens TokenSource, logger *zap.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serverBase: strings.TrimRight(serverBase, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes the request and decodes the JSON response into out when out is
// non-nil. Non-2xx responses become an *Error carrying the server's message.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := c.buildBody(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if token := c.tokenFor(req.Auth); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	} else if req.Auth != AuthNone {
		c.logger.Warn("request requires auth but no token found",
			zap.String("path", req.Path),
			zap.String("auth", string(req.Auth)),
		)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, req.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: invalid response from server: %w", method, req.Path, err)
	}
	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, auth AuthMode, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Auth: auth}, out)
}

// Post performs a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body any, auth AuthMode, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Auth: auth}, out)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string, auth AuthMode, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Auth: auth}, out)
}

// ResolveImageURL maps an API-relative image path to an absolute URL. Static
// uploads are served at /uploads on the server origin, not under /api.
func (c *Client) ResolveImageURL(imageURL string) string {
	u := strings.TrimSpace(imageURL)
	if u == "" {
		return "images/placeholder.jpg"
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if strings.HasPrefix(u, "/uploads") {
		return c.serverBase + u
	}
	return u
}

// buildBody prepares the request body and content type
func (c *Client) buildBody(req Request) (io.Reader, string, error) {
	if req.Form != nil {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for field, value := range req.Form.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, "", fmt.Errorf("write form field %q: %w", field, err)
			}
		}
		for _, f := range req.Form.Files {
			part, err := w.CreateFormFile(f.Field, f.Filename)
			if err != nil {
				return nil, "", fmt.Errorf("create form file %q: %w", f.Field, err)
			}
			if _, err := io.Copy(part, f.Reader); err != nil {
				return nil, "", fmt.Errorf("copy form file %q: %w", f.Field, err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	}

	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}

	return nil, "", nil
}

// tokenFor resolves the bearer token for the requested auth mode
func (c *Client) tokenFor(mode AuthMode) string {
	if c.tokens == nil {
		return ""
	}
	switch mode {
	case AuthUser:
		return c.tokens.UserToken()
	case AuthVendor:
		return c.tokens.VendorToken()
	case AuthAuto:
		if c.tokens.AuthType() == "vendor" {
			return c.tokens.VendorToken()
		}
		return c.tokens.UserToken()
	default:
		return ""
	}
}
