package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}

func TestRequest_SuccessWithJSONBody(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusOK, `{"id":"u1"}`))

	res := c.Get(context.Background(), "/api/v1/thing")
	require.True(t, res.OK())
	require.Equal(t, http.StatusOK, res.Status)
	require.JSONEq(t, `{"id":"u1"}`, string(res.Data))
	require.Empty(t, res.Err)
}

func TestRequest_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotContentType = r.Header.Get("Content-Type")
		jsonHandler(http.StatusOK, `{}`)(w, r)
	})
	c.SetTokenSource(func() string { return "tok-123" })

	res := c.PostJSON(context.Background(), "/api/v1/thing", map[string]string{"a": "b"})
	require.True(t, res.OK())
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotRequestID)
	require.Equal(t, "application/json", gotContentType)
}

func TestRequest_OmitsAuthorizationWithoutToken(t *testing.T) {
	var sawHeader bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		jsonHandler(http.StatusOK, `{}`)(w, r)
	})
	c.SetTokenSource(func() string { return "" })

	res := c.Get(context.Background(), "/")
	require.True(t, res.OK())
	require.False(t, sawHeader)
}

func TestRequest_RawBodyHasNoImplicitContentType(t *testing.T) {
	var gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		jsonHandler(http.StatusOK, `{}`)(w, r)
	})

	res := c.Request(context.Background(), RequestOptions{
		Method:  http.MethodPost,
		Path:    "/upload",
		RawBody: strings.NewReader("payload"),
	})
	require.True(t, res.OK())
	require.Empty(t, gotContentType)
}

func TestRequest_SuccessEmptyBodyBecomesTransportFailure(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusOK, "   \n"))

	res := c.Get(context.Background(), "/")
	require.False(t, res.OK())
	require.Equal(t, 0, res.Status)
	require.Contains(t, res.Err, "empty response")
	require.Nil(t, res.Data)
}

func TestRequest_SuccessInvalidJSONBecomesTransportFailure(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusOK, `{"broken":`))

	res := c.Get(context.Background(), "/")
	require.False(t, res.OK())
	require.Equal(t, 0, res.Status)
	require.Contains(t, res.Err, "invalid JSON")
}

func TestRequest_SuccessNonJSONContentType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>ok</html>")
	})

	res := c.Get(context.Background(), "/")
	require.False(t, res.OK())
	require.Equal(t, 0, res.Status)
	require.Contains(t, res.Err, "expected JSON")
}

func TestRequest_ErrorNonJSONContentTypeKeepsStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "nope")
	})

	res := c.Get(context.Background(), "/")
	require.Equal(t, http.StatusBadRequest, res.Status)
	require.Contains(t, res.Err, "expected JSON")
}

func TestRequest_ErrorEmptyBodyKeepsStatus(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusUnprocessableEntity, ""))

	res := c.Get(context.Background(), "/")
	require.Equal(t, http.StatusUnprocessableEntity, res.Status)
	require.Contains(t, res.Err, "empty response")
}

func TestRequest_ErrorDetailFromBody(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusUnprocessableEntity, `{"detail":"field is invalid"}`))

	res := c.Get(context.Background(), "/")
	require.Equal(t, http.StatusUnprocessableEntity, res.Status)
	require.Equal(t, "field is invalid", res.Err)
}

func TestRequest_BadRequestPassesDetailThrough(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusBadRequest, `{"detail":"Inactive user"}`))

	res := c.Get(context.Background(), "/")
	require.Equal(t, http.StatusBadRequest, res.Status)
	require.Equal(t, "Inactive user", res.Err)
}

func TestRequest_ErrorWithoutDetailFallsBack(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusUnprocessableEntity, `{"code":42}`))

	res := c.Get(context.Background(), "/")
	require.Equal(t, "request failed with status 422", res.Err)
}

func TestRequest_StatusOverridesIgnoreBodyDetail(t *testing.T) {
	tests := []struct {
		status  int
		wantMsg string
	}{
		{http.StatusUnauthorized, "Authentication required"},
		{http.StatusForbidden, "permission"},
		{http.StatusNotFound, "not found"},
		{http.StatusTooManyRequests, "Too many requests"},
		{http.StatusInternalServerError, "Internal server error"},
		{http.StatusBadGateway, "temporarily unavailable"},
		{http.StatusServiceUnavailable, "temporarily unavailable"},
		{http.StatusGatewayTimeout, "temporarily unavailable"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			c := newTestClient(t, jsonHandler(tt.status, `{"detail":"raw backend text"}`))

			res := c.Get(context.Background(), "/")
			require.Equal(t, tt.status, res.Status)
			require.Contains(t, res.Err, tt.wantMsg)
			require.NotContains(t, res.Err, "raw backend text")
		})
	}
}

func TestRequest_UnauthorizedFiresHook(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`))

	fired := 0
	c.SetUnauthorizedHook(func() { fired++ })

	res := c.Get(context.Background(), "/")
	require.Equal(t, http.StatusUnauthorized, res.Status)
	require.Equal(t, 1, fired)

	// Fires again on the next 401, whatever operation triggered it.
	_ = c.Get(context.Background(), "/")
	require.Equal(t, 2, fired)
}

func TestRequest_UnauthorizedHookFiresEvenWithGarbageBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "<html>login</html>")
	})

	fired := 0
	c.SetUnauthorizedHook(func() { fired++ })

	res := c.Get(context.Background(), "/")
	require.Equal(t, http.StatusUnauthorized, res.Status)
	require.Equal(t, 1, fired)
}

func TestRequest_RateLimitRetryAfterHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"detail":"slow down"}`)
	})

	res := c.Get(context.Background(), "/")
	require.Equal(t, http.StatusTooManyRequests, res.Status)
	require.Equal(t, 120, res.RetryAfter)
}

func TestRequest_RateLimitRetryAfterDefaults(t *testing.T) {
	t.Run("header absent", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(http.StatusTooManyRequests, `{}`))

		res := c.Get(context.Background(), "/")
		require.Equal(t, 60, res.RetryAfter)
	})

	t.Run("header unparsable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{}`)
		})

		res := c.Get(context.Background(), "/")
		require.Equal(t, 60, res.RetryAfter)
	})

	t.Run("configured default", func(t *testing.T) {
		c := newTestClient(t, jsonHandler(http.StatusTooManyRequests, `{}`))
		c.SetRetryAfterDefault(15)

		res := c.Get(context.Background(), "/")
		require.Equal(t, 15, res.RetryAfter)
	})
}

func TestRequest_TimeoutIsTransportFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		jsonHandler(http.StatusOK, `{}`)(w, r)
	})
	c.SetTimeout(50 * time.Millisecond)

	res := c.Get(context.Background(), "/")
	require.Equal(t, 0, res.Status)
	require.Contains(t, res.Err, "timeout")
}

func TestRequest_CanceledContextIsTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		jsonHandler(http.StatusOK, `{}`)(w, r)
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	res := c.Get(ctx, "/")
	require.Equal(t, 0, res.Status)
	require.Contains(t, res.Err, "timeout")
}

func TestRequest_ConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{}`))
	url := srv.URL
	srv.Close()

	c := New(url)
	res := c.Get(context.Background(), "/")
	require.Equal(t, 0, res.Status)
	require.Contains(t, res.Err, "Network error")
}

func TestRequest_UnencodableBodySurfacesMessageVerbatim(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusOK, `{}`))

	res := c.PostJSON(context.Background(), "/", make(chan int))
	require.Equal(t, 0, res.Status)
	require.Contains(t, res.Err, "unsupported type")
}

func TestResult_Transient(t *testing.T) {
	require.True(t, (&Result{Status: 0, Err: "Network error"}).Transient())
	require.True(t, (&Result{Status: 503, Err: "x"}).Transient())
	require.False(t, (&Result{Status: 401, Err: "x"}).Transient())
	require.False(t, (&Result{Status: 200, Data: []byte(`{}`)}).Transient())
}
