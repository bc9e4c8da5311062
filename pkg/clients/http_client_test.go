package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

func newTestClient(t *testing.T, handler http.Handler, attempts int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Options{
		BaseURL:       server.URL,
		UserAgent:     "tap-leadbyte-test",
		Timeout:       5 * time.Second,
		RetryAttempts: attempts,
		RetryDelay:    time.Millisecond,
	}, zap.NewNop())
}

func TestClientGet(t *testing.T) {
	t.Run("returns body on 200", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "tap-leadbyte-test", r.Header.Get("User-Agent"))
			assert.Equal(t, "v", r.URL.Query().Get("k"))
			fmt.Fprint(w, `{"status":"Success"}`)
		}), 1)

		body, err := client.Get(context.Background(), "/things", url.Values{"k": []string{"v"}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"Success"}`, string(body))
	})

	t.Run("401 is an authentication error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}), 3)

		_, err := client.Get(context.Background(), "/things", nil)
		require.Error(t, err)
		assert.True(t, taperrors.IsType(err, taperrors.ErrorTypeAuthentication))
	})

	t.Run("404 is not retried", func(t *testing.T) {
		var calls int
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusNotFound)
		}), 3)

		_, err := client.Get(context.Background(), "/things", nil)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("5xx is retried until success", func(t *testing.T) {
		var calls int
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, `{}`)
		}), 5)

		_, err := client.Get(context.Background(), "/things", nil)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("429 is retried", func(t *testing.T) {
		var calls int
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			fmt.Fprint(w, `{}`)
		}), 3)

		_, err := client.Get(context.Background(), "/things", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("attempt budget is honored", func(t *testing.T) {
		var calls int
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}), 3)

		_, err := client.Get(context.Background(), "/things", nil)
		require.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("decorators see retried requests", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		}), 1)

		var seen int
		client.Use(func(next DoFunc) DoFunc {
			return func(req *http.Request) (*http.Response, error) {
				seen++
				return next(req)
			}
		})

		_, err := client.Get(context.Background(), "/things", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, seen)
	})
}

func TestRetryPolicy(t *testing.T) {
	t.Run("stops when shouldRetry declines", func(t *testing.T) {
		policy := NewRetryPolicy(5, time.Millisecond)

		var calls int
		err := policy.Execute(context.Background(), func() error {
			calls++
			return taperrors.New(taperrors.ErrorTypeData, "bad payload")
		}, taperrors.IsRetryable)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancellation interrupts backoff", func(t *testing.T) {
		policy := NewRetryPolicy(5, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := policy.Execute(ctx, func() error {
			return taperrors.New(taperrors.ErrorTypeConnection, "down")
		}, taperrors.IsRetryable)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("delay grows with attempts", func(t *testing.T) {
		policy := NewRetryPolicy(5, 100*time.Millisecond)
		policy.RandomizeFactor = 0

		assert.Equal(t, 100*time.Millisecond, policy.calculateDelay(0))
		assert.Equal(t, 200*time.Millisecond, policy.calculateDelay(1))
		assert.Equal(t, 400*time.Millisecond, policy.calculateDelay(2))
	})

	t.Run("delay is capped", func(t *testing.T) {
		policy := NewRetryPolicy(20, time.Second)
		policy.RandomizeFactor = 0

		assert.Equal(t, policy.MaxDelay, policy.calculateDelay(19))
	})
}
