// Package api is the HTTP boundary of the GeoVision client. It converts any
// outcome of a request against the backend — a response of any status, a
// malformed body, a timeout, a refused connection — into a Result, so the
// layers above only ever deal with a closed set of application-level
// outcomes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karanja-droid/geo-miner-ai-sub000/internal/common"
)

const (
	// DefaultTimeout bounds every request; an expired request is aborted and
	// reported as a transport failure.
	DefaultTimeout = 10 * time.Second

	// DefaultRetryAfter is used when a 429 arrives without a parsable
	// Retry-After header. Policy choice, not a protocol requirement;
	// override via SetRetryAfterDefault.
	DefaultRetryAfter = 60
)

// Messages for outcomes that carry no server-provided detail.
const (
	msgTimeout      = "request timeout"
	msgNetworkError = "Network error"
	msgExpectedJSON = "expected JSON response from server"
	msgEmptyBody    = "empty response from server"
	msgInvalidJSON  = "invalid JSON response from server"

	msgUnauthorized = "Authentication required. Please log in again."
	msgForbidden    = "You do not have permission to perform this action."
	msgNotFound     = "The requested resource was not found."
	msgRateLimited  = "Too many requests. Please try again later."
	msgServerError  = "Internal server error. Please try again later."
	msgUnavailable  = "Service temporarily unavailable. Please try again later."
)

// Client issues requests against the backend and normalizes their outcomes.
// The zero timeout/default fields are filled in by New.
type Client struct {
	baseURL           string
	httpClient        *http.Client
	timeout           time.Duration
	retryAfterDefault int

	// tokenSource supplies the current bearer token; empty means
	// unauthenticated and the Authorization header is omitted entirely.
	tokenSource func() string

	// onUnauthorized fires once per 401 response, regardless of which
	// operation triggered it. The session layer installs a hook that purges
	// durable storage and raises the navigate-to-login intent.
	onUnauthorized func()
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:           strings.TrimRight(baseURL, "/"),
		httpClient:        &http.Client{},
		timeout:           DefaultTimeout,
		retryAfterDefault: DefaultRetryAfter,
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// SetRetryAfterDefault overrides the fallback Retry-After value (seconds).
func (c *Client) SetRetryAfterDefault(seconds int) {
	if seconds > 0 {
		c.retryAfterDefault = seconds
	}
}

// SetTokenSource installs the bearer-token supplier.
func (c *Client) SetTokenSource(fn func() string) {
	c.tokenSource = fn
}

// SetUnauthorizedHook installs the 401 side-effect hook.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// RequestOptions describes a single call. Body is JSON-encoded; RawBody, when
// set, takes precedence and is sent as-is with ContentType (no Content-Type
// header at all when ContentType is empty — multipart payloads carry their
// own boundary).
type RequestOptions struct {
	Method      string
	Path        string
	Body        any
	RawBody     io.Reader
	ContentType string
	Header      http.Header
}

// Get issues a GET against path.
func (c *Client) Get(ctx context.Context, path string) *Result {
	return c.Request(ctx, RequestOptions{Method: http.MethodGet, Path: path})
}

// PostJSON issues a POST with a JSON-encoded body.
func (c *Client) PostJSON(ctx context.Context, path string, body any) *Result {
	return c.Request(ctx, RequestOptions{Method: http.MethodPost, Path: path, Body: body})
}

// Request performs one HTTP call and returns its normalized outcome. It
// never returns nil and never panics.
func (c *Client) Request(ctx context.Context, opts RequestOptions) *Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	contentType := ""
	switch {
	case opts.RawBody != nil:
		body = opts.RawBody
		contentType = opts.ContentType
	case opts.Body != nil:
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return &Result{Status: 0, Err: err.Error()}
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+opts.Path, body)
	if err != nil {
		return &Result{Status: 0, Err: err.Error()}
	}

	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Result{Status: 0, Err: classifyTransportError(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{Status: 0, Err: classifyTransportError(err)}
	}

	return c.normalize(resp, raw)
}

// normalize classifies a received response into a Result. The body is
// treated as text first; JSON is only trusted after it parses.
func (c *Client) normalize(resp *http.Response, raw []byte) *Result {
	status := resp.StatusCode
	success := status >= 200 && status < 300

	// The 401 side effect fires no matter what the body looks like: a stale
	// token must never be left installed.
	if status == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	res := &Result{Status: status}
	if status == http.StatusTooManyRequests {
		res.RetryAfter = c.parseRetryAfter(resp.Header.Get("Retry-After"))
	}

	body := strings.TrimSpace(string(raw))
	switch {
	case !isJSONContentType(resp.Header.Get("Content-Type")):
		res.Err = msgExpectedJSON
	case body == "":
		res.Err = msgEmptyBody
	case !json.Valid([]byte(body)):
		res.Err = msgInvalidJSON
	case success:
		res.Data = json.RawMessage(body)
		return res
	default:
		res.Err = c.errorMessage(status, []byte(body))
		return res
	}

	// Unusable body. A 2xx without a usable payload is indistinguishable
	// from a transport fault to the caller, so it is reported as one.
	if success {
		res.Status = 0
	}
	return res
}

// errorMessage maps a non-2xx status plus a parseable JSON body to a
// user-facing message. Well-known statuses override the body detail.
func (c *Client) errorMessage(status int, body []byte) string {
	switch status {
	case http.StatusUnauthorized:
		return msgUnauthorized
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusTooManyRequests:
		return msgRateLimited
	case http.StatusInternalServerError:
		return msgServerError
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return msgUnavailable
	}

	if detail := extractDetail(body); detail != "" {
		return detail
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func (c *Client) parseRetryAfter(header string) int {
	if seconds, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && seconds > 0 {
		return seconds
	}
	return c.retryAfterDefault
}

// extractDetail pulls the human-readable error field out of a backend error
// body ("detail" in FastAPI payloads, "message" as a fallback).
func extractDetail(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Message
}

func isJSONContentType(header string) bool {
	if header == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// classifyTransportError maps errors raised before a response was received:
// aborts and timeouts first, then generic connectivity failures; anything
// else surfaces its own message.
func classifyTransportError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return msgTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return msgNetworkError
	}
	return err.Error()
}
