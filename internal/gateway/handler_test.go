package gateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxrelay/rxrelay/internal/gateway"
	"github.com/rxrelay/rxrelay/pkg/email"
	"github.com/rxrelay/rxrelay/pkg/ratelimit"
	"github.com/rxrelay/rxrelay/pkg/token"
)

const allowedOrigin = "https://forms.example.com"

type mockSender struct {
	mu    sync.Mutex
	calls []email.SendParams
	id    string
	err   error
}

func (m *mockSender) Send(_ context.Context, params email.SendParams) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, params)
	if m.err != nil {
		return "", m.err
	}
	return m.id, nil
}

func (m *mockSender) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockSender) lastCall() email.SendParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

func newTestGateway(t *testing.T, sender email.Sender, cfg gateway.Config) http.Handler {
	t.Helper()

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{allowedOrigin, "https://*.example.org"}
	}
	if cfg.RateLimitMax == 0 {
		cfg.RateLimitMax = 5
	}
	if cfg.RateLimitWindow == 0 {
		cfg.RateLimitWindow = time.Hour
	}

	limiter, err := ratelimit.NewSlidingWindow(ratelimit.NewMemoryStore(), cfg.RateLimitMax, cfg.RateLimitWindow)
	require.NoError(t, err)

	g := gateway.New(cfg, nil, limiter, sender, "pharmacy@example.com")
	return g.Router()
}

func validBody() map[string]any {
	return map[string]any{
		"firstName":    "Jane",
		"lastName":     "Doe",
		"dateOfBirth":  "1980-04-12",
		"phone":        "555-0100",
		"pharmacyName": "Main Street Pharmacy",
		"medications": []any{
			map[string]any{"name": "Lisinopril", "dosage": "10mg", "frequency": "daily"},
		},
	}
}

func postSubmission(t *testing.T, h http.Handler, body map[string]any, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader(payload))
	r.Header.Set("Origin", allowedOrigin)
	r.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(r)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	sender := &mockSender{id: "pm-12345"}
	h := newTestGateway(t, sender, gateway.Config{})

	w := postSubmission(t, h, validBody(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "pm-12345", body["requestId"])
	assert.Equal(t, float64(4), body["remainingSubmissions"])
	assert.Equal(t, 1, sender.callCount())

	call := sender.lastCall()
	assert.Equal(t, "pharmacy@example.com", call.SendTo)
	assert.Equal(t, "Prescription Transfer Request: Jane Doe", call.Subject)
	assert.Contains(t, call.BodyHTML, "Lisinopril")
	assert.Contains(t, call.BodyText, "Lisinopril")
}

func TestSubmit_OriginDenied(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		origin string
	}{
		{name: "unlisted origin", origin: "https://evil.example.net"},
		{name: "missing origin", origin: ""},
		{name: "wildcard suffix spoof", origin: "https://a.example.org.attacker.net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &mockSender{id: "pm-1"}
			h := newTestGateway(t, sender, gateway.Config{})

			w := postSubmission(t, h, validBody(), func(r *http.Request) {
				r.Header.Del("Origin")
				if tt.origin != "" {
					r.Header.Set("Origin", tt.origin)
				}
			})

			assert.Equal(t, http.StatusForbidden, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			// No delivery attempt may be made for a denied origin.
			assert.Zero(t, sender.callCount())
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSubmit_RateLimited(t *testing.T) {
	t.Parallel()

	const limit = 3
	sender := &mockSender{id: "pm-1"}
	h := newTestGateway(t, sender, gateway.Config{RateLimitMax: limit})

	for range limit {
		w := postSubmission(t, h, validBody(), nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := postSubmission(t, h, validBody(), nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	retryAfter, ok := body["retryAfter"].(float64)
	require.True(t, ok)
	assert.Positive(t, retryAfter)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, limit, sender.callCount())
}

func TestSubmit_RateLimitRecovers(t *testing.T) {
	t.Parallel()

	sender := &mockSender{id: "pm-1"}
	h := newTestGateway(t, sender, gateway.Config{RateLimitMax: 1, RateLimitWindow: 50 * time.Millisecond})

	w := postSubmission(t, h, validBody(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = postSubmission(t, h, validBody(), nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	time.Sleep(60 * time.Millisecond)

	w = postSubmission(t, h, validBody(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmit_ContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		wantCode    int
	}{
		{name: "json accepted", contentType: "application/json", wantCode: http.StatusOK},
		{name: "json with charset accepted", contentType: "application/json; charset=utf-8", wantCode: http.StatusOK},
		{name: "form encoding rejected", contentType: "application/x-www-form-urlencoded", wantCode: http.StatusUnsupportedMediaType},
		{name: "missing content type rejected", contentType: "", wantCode: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &mockSender{id: "pm-1"}
			h := newTestGateway(t, sender, gateway.Config{})

			w := postSubmission(t, h, validBody(), func(r *http.Request) {
				r.Header.Del("Content-Type")
				if tt.contentType != "" {
					r.Header.Set("Content-Type", tt.contentType)
				}
			})
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestSubmit_RequiredFields(t *testing.T) {
	t.Parallel()

	sender := &mockSender{id: "pm-1"}
	h := newTestGateway(t, sender, gateway.Config{})

	body := validBody()
	delete(body, "firstName")
	delete(body, "phone")

	w := postSubmission(t, h, body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, false, resp["success"])

	missing, ok := resp["missingFields"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"firstName", "phone"}, missing)
	assert.Zero(t, sender.callCount())
}

func TestSubmit_MalformedJSON(t *testing.T) {
	t.Parallel()

	sender := &mockSender{id: "pm-1"}
	h := newTestGateway(t, sender, gateway.Config{})

	r := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewReader([]byte("{not json")))
	r.Header.Set("Origin", allowedOrigin)
	r.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, sender.callCount())
}

func TestSubmit_SanitizesBeforeRendering(t *testing.T) {
	t.Parallel()

	sender := &mockSender{id: "pm-1"}
	h := newTestGateway(t, sender, gateway.Config{})

	body := validBody()
	body["notes"] = "<script>alert(1)</script>"

	w := postSubmission(t, h, body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, sender.callCount())

	call := sender.lastCall()
	assert.Contains(t, call.BodyHTML, "&lt;script&gt;alert(1)&lt;&#x2F;script&gt;")
	assert.NotContains(t, call.BodyHTML, "<script>")
	assert.NotContains(t, call.BodyText, "<script>")
}

func TestSubmit_DeliveryFailures(t *testing.T) {
	t.Parallel()

	t.Run("transport error maps to bad gateway", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{err: errors.New("postmark unreachable")}
		h := newTestGateway(t, sender, gateway.Config{})

		w := postSubmission(t, h, validBody(), nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		// The caller gets a generic message, not the transport error.
		assert.NotContains(t, body["error"], "postmark")
	})

	t.Run("missing credentials map to server error", func(t *testing.T) {
		t.Parallel()

		h := newTestGateway(t, email.NewUnconfigured(), gateway.Config{})

		w := postSubmission(t, h, validBody(), nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSubmit_SessionToken(t *testing.T) {
	t.Parallel()

	const secret = "session-secret"

	t.Run("valid token accepted", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{id: "pm-1"}
		h := newTestGateway(t, sender, gateway.Config{SessionSecret: secret})

		tok, err := token.Generate(token.NewSession(time.Hour), secret)
		require.NoError(t, err)

		body := validBody()
		body["sessionToken"] = tok

		w := postSubmission(t, h, body, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{id: "pm-1"}
		h := newTestGateway(t, sender, gateway.Config{SessionSecret: secret})

		tok, err := token.Generate(token.NewSession(-time.Minute), secret)
		require.NoError(t, err)

		body := validBody()
		body["sessionToken"] = tok

		w := postSubmission(t, h, body, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Zero(t, sender.callCount())
	})

	t.Run("token optional when present in config", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{id: "pm-1"}
		h := newTestGateway(t, sender, gateway.Config{SessionSecret: secret})

		w := postSubmission(t, h, validBody(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPreflight(t *testing.T) {
	t.Parallel()

	t.Run("allowed origin gets grant", func(t *testing.T) {
		t.Parallel()

		h := newTestGateway(t, &mockSender{id: "pm-1"}, gateway.Config{})

		r := httptest.NewRequest(http.MethodOptions, "/submit", nil)
		r.Header.Set("Origin", allowedOrigin)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("unknown origin gets no grant", func(t *testing.T) {
		t.Parallel()

		h := newTestGateway(t, &mockSender{id: "pm-1"}, gateway.Config{})

		r := httptest.NewRequest(http.MethodOptions, "/submit", nil)
		r.Header.Set("Origin", "https://evil.example.net")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newTestGateway(t, &mockSender{id: "pm-1"}, gateway.Config{})

	r := httptest.NewRequest(http.MethodGet, "/submit", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	h := newTestGateway(t, &mockSender{id: "pm-1"}, gateway.Config{})

	// Denied responses carry the defensive set too.
	w := postSubmission(t, h, validBody(), func(r *http.Request) {
		r.Header.Set("Origin", "https://evil.example.net")
	})

	headers := w.Header()
	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", headers.Get("Referrer-Policy"))
	assert.NotEmpty(t, headers.Get("Strict-Transport-Security"))
	assert.NotEmpty(t, headers.Get("Content-Security-Policy"))
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newTestGateway(t, &mockSender{id: "pm-1"}, gateway.Config{})

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
