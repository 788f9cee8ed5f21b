// Package api is the HTTP client for the Briefly summarizer backend.
//
// It covers the three endpoint families the backend exposes: auth
// (unauthenticated JSON), summarization (bearer token, JSON or multipart),
// and admin (bearer token). Response classification is uniform: 401/403 on a
// protected call is an authentication rejection regardless of body content,
// any other non-2xx carries the server's "message" field when parseable, and
// transport failures surface as network errors. The client reads the bearer
// token through a TokenSource and never mutates session state itself.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/brieflyhq/briefly/internal/domain/summary"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for authenticated calls.
// The second return value is false when no token is available.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the summarizer backend.
type Client struct {
	baseURL    string
	basePath   string
	timeout    time.Duration
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	metrics    *metrics
	tracer     trace.Tracer
}

// NewClient creates a new backend client.
// It reads the server address from the BRIEFLY_SERVER_ADDR environment
// variable by default. Options override the defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  os.Getenv("BRIEFLY_SERVER_ADDR"),
		basePath: "/api/v1",
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
		tracer:   otel.Tracer("briefly/api"),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}
	if c.metrics == nil {
		// Private registry by default so repeated client construction
		// never collides on the global one.
		c.metrics = newMetrics(prometheus.NewRegistry())
	}

	return c
}

// Login exchanges credentials for a token. Unauthenticated JSON call.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	body := loginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account. Unauthenticated JSON call; a successful
// registration issues no token.
func (c *Client) Register(ctx context.Context, username, password, role string) error {
	body := registerRequest{Username: username, Password: password, Role: role}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", body, nil, false)
}

// SummarizeText submits text for summarization. Requires a token: when none
// is available the call fails with ErrAuthMissing before any network traffic.
func (c *Client) SummarizeText(ctx context.Context, text string, mode summary.Mode, length summary.Length) (*summary.Result, error) {
	var result summary.Result
	body := summarizeTextRequest{
		Text:          text,
		Mode:          mode.Wire(),
		SummaryLength: length.Wire(),
	}
	if err := c.doJSON(ctx, http.MethodPost, "/text/summarize", body, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// SummarizeFile submits a document for summarization as a multipart upload
// with fields file, summaryLength, and mode. The bearer header is attached
// but the Content-Type is left to the multipart writer.
func (c *Client) SummarizeFile(ctx context.Context, filename string, file io.Reader, mode summary.Mode, length summary.Length) (*summary.Result, error) {
	token, ok := c.token()
	if !ok {
		return nil, ErrAuthMissing
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create multipart file field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	if err := mw.WriteField("summaryLength", length.Wire()); err != nil {
		return nil, fmt.Errorf("write summaryLength field: %w", err)
	}
	if err := mw.WriteField("mode", mode.Wire()); err != nil {
		return nil, fmt.Errorf("write mode field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/text/summarize/file", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.do(req, "/text/summarize/file")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.classifyProtected(resp); err != nil {
		return nil, err
	}

	var result summary.Result
	if err := decodeBody(resp.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdminHistory fetches the usage history, bounded by the time filter.
// Requires an ADMIN token; role enforcement is server-side.
func (c *Client) AdminHistory(ctx context.Context, filter summary.TimeFilter) ([]summary.HistoryItem, error) {
	var items []summary.HistoryItem
	path := "/admin/history?timeFilter=" + url.QueryEscape(string(filter))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

// AdminUsers fetches all registered accounts.
func (c *Client) AdminUsers(ctx context.Context) ([]summary.User, error) {
	var users []summary.User
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminDeleteUser removes an account by ID.
func (c *Client) AdminDeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/users/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, true)
}

// token reads the current bearer token from the configured source.
func (c *Client) token() (string, bool) {
	if c.tokens == nil {
		return "", false
	}
	return c.tokens.Token()
}

// doJSON performs a JSON request against the backend and decodes the
// response into result (when non-nil). When authed is true the bearer token
// is attached, failing fast with ErrAuthMissing if none is available.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result any, authed bool) error {
	var token string
	if authed {
		var ok bool
		token, ok = c.token()
		if !ok {
			return ErrAuthMissing
		}
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := c.newRequest(ctx, method, path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}

	resp, err := c.do(req, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if authed {
		if err := c.classifyProtected(resp); err != nil {
			return err
		}
	} else {
		if err := c.classifyAuth(resp); err != nil {
			return err
		}
	}

	if result != nil {
		if err := decodeBody(resp.Body, result); err != nil {
			return err
		}
	}
	return nil
}

// newRequest builds an HTTP request with the base URL, base path, and a
// fresh X-Request-ID.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := strings.TrimRight(c.baseURL, "/") + c.basePath + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// do executes the request, recording a span and request counters. A transport
// failure (no response received) is wrapped as a NetworkError.
func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	ctx, span := c.tracer.Start(req.Context(), "api "+endpoint,
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("api.endpoint", endpoint),
		))
	defer span.End()

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		c.metrics.ErrorsTotal.WithLabelValues(endpoint).Inc()
		span.RecordError(err)
		c.logger.Debug("request failed", "endpoint", endpoint, "error", err)
		return nil, &NetworkError{Cause: err}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.metrics.RequestsTotal.WithLabelValues(endpoint, statusClass(resp.StatusCode)).Inc()
	c.logger.Debug("request completed", "endpoint", endpoint, "status", resp.StatusCode)
	return resp, nil
}

// classifyAuth classifies a response from the unauthenticated auth family.
// Any non-2xx becomes a ServerError carrying the server's message when the
// body is parseable JSON, or a status-derived fallback otherwise.
func (c *Client) classifyAuth(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, fromServer := serverMessage(resp.Body)
	if !fromServer {
		msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return &ServerError{StatusCode: resp.StatusCode, Message: msg, FromServer: fromServer}
}

// classifyProtected classifies a response from a bearer-authenticated call.
// 401 and 403 are authentication rejections with a fixed message; the body is
// not parsed in that case. Any other non-2xx becomes a ServerError.
func (c *Client) classifyProtected(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthRejectedError{StatusCode: resp.StatusCode}
	default:
		msg, fromServer := serverMessage(resp.Body)
		if !fromServer {
			msg = fmt.Sprintf("server error: %d", resp.StatusCode)
		}
		return &ServerError{StatusCode: resp.StatusCode, Message: msg, FromServer: fromServer}
	}
}

// serverMessage extracts the "message" field from a JSON error body. The
// second return value is false when the body is unreadable, not JSON, or
// lacks the field.
func serverMessage(body io.Reader) (string, bool) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", false
	}
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil || eb.Message == "" {
		return "", false
	}
	return eb.Message, true
}

// decodeBody decodes a 2xx response body, wrapping decode failures so they
// can be displayed like server errors.
func decodeBody(body io.Reader, result any) error {
	if err := json.NewDecoder(body).Decode(result); err != nil {
		return &MalformedResponseError{Cause: err}
	}
	return nil
}

// statusClass buckets an HTTP status for the request counter.
func statusClass(code int) string {
	switch {
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
