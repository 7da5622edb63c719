package fbref

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fbref-crawler/internal/platform/resilience"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:        server.URL,
		Timeout:        2 * time.Second,
		Transport:      http.DefaultTransport,
		CircuitBreaker: breaker,
	})
}

func TestClientFetch_Success(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != DefaultUserAgent {
			t.Errorf("unexpected user agent %q", ua)
		}
		_, _ = w.Write([]byte("<html>ok</html>"))
	}, resilience.CircuitBreakerConfig{})

	page, err := client.Fetch(context.Background(), "/en/squads/18bb7c10/Arsenal-Stats")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page.StatusCode != http.StatusOK || page.StatusText != "OK" || page.Body != "<html>ok</html>" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestClientFetch_RejectsOversizedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><table id=\"stats_standard_9\"></table></html>"))
	}, resilience.CircuitBreakerConfig{})
	client.maxBody = 16

	page, err := client.Fetch(context.Background(), "/en/squads/18bb7c10/Arsenal-Stats")
	if !errors.Is(err, usecase.ErrFetchUnexpectedStatus) {
		t.Fatalf("expected ErrFetchUnexpectedStatus, got %v", err)
	}
	if page.StatusCode != http.StatusOK || page.Body != "" {
		t.Fatalf("expected status without a cut body, got %+v", page)
	}
}

func TestClientFetch_ClassifiesStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, usecase.ErrFetchForbidden},
		{http.StatusTooManyRequests, usecase.ErrFetchRateLimited},
		{http.StatusNotFound, usecase.ErrFetchUnexpectedStatus},
		{http.StatusBadGateway, usecase.ErrFetchUnexpectedStatus},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}, resilience.CircuitBreakerConfig{})

			page, err := client.Fetch(context.Background(), "/en/")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if page.StatusCode != tc.status || page.StatusText != http.StatusText(tc.status) {
				t.Fatalf("expected status to be recorded, got %+v", page)
			}
		})
	}
}

func TestClientFetch_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 50 * time.Millisecond, Transport: http.DefaultTransport})
	_, err := client.Fetch(context.Background(), "/en/")
	if !errors.Is(err, usecase.ErrFetchTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestClientFetch_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	client := NewClient(ClientConfig{BaseURL: addr, Timeout: time.Second, Transport: http.DefaultTransport})
	_, err := client.Fetch(context.Background(), "/en/")
	if !errors.Is(err, usecase.ErrFetchNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestClientFetch_BreakerFailsFastAfterRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, resilience.CircuitBreakerConfig{Enabled: true, OpenTimeout: time.Hour})

	for range 3 {
		if _, err := client.Fetch(context.Background(), "/en/"); !errors.Is(err, usecase.ErrFetchRateLimited) {
			t.Fatalf("expected rate limited, got %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single upstream call, got %d", got)
	}
}

func TestClientIsAlive(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/en/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}, resilience.CircuitBreakerConfig{})

	if err := client.IsAlive(context.Background()); err != nil {
		t.Fatalf("expected site to be alive, got %v", err)
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cases := map[string]time.Duration{
		"":                              0,
		"120":                           2 * time.Minute,
		" 3600 ":                        time.Hour,
		"-5":                            0,
		"Mon, 19 Oct 2026 12:30:00 GMT": 30 * time.Minute,
		"Mon, 19 Oct 2026 11:00:00 GMT": 0,
		"soon":                          0,
	}
	for header, want := range cases {
		if got := retryAfter(header, now); got != want {
			t.Fatalf("retryAfter(%q) = %s, want %s", header, got, want)
		}
	}
}

func TestClientFetch_RetryAfterExtendsBlock(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "1800")
		w.WriteHeader(http.StatusTooManyRequests)
	}, resilience.CircuitBreakerConfig{Enabled: true, OpenTimeout: time.Minute, MaxOpenTimeout: time.Hour})

	if _, err := client.Fetch(context.Background(), "/en/"); !errors.Is(err, usecase.ErrFetchRateLimited) {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if got := client.breaker.RetryAfter(); got <= 29*time.Minute || got > 30*time.Minute {
		t.Fatalf("expected roughly 30m block, got %s", got)
	}
}
