package fbref

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/platform/resilience"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL   = "https://fbref.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	defaultTimeout   = 30 * time.Second
	maxBodyBytes     = 16 << 20
)

type ClientConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Transport replaces the default transport, mostly for tests.
	Transport      http.RoundTripper
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches fbref pages. It never retries: a crawl records the outcome
// of each page and moves on.
type Client struct {
	http           *resty.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	maxBody        int
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = cloudflarebp.AddCloudFlareByPass(http.DefaultTransport.(*http.Transport).Clone())
	}

	httpClient := resty.New()
	httpClient.SetTransport(otelhttp.NewTransport(transport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "fbref " + r.Method + " " + r.URL.Path
		}),
	))
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetHeader("accept", "text/html,application/xhtml+xml")
	httpClient.SetHeader("accept-language", "en-US,en;q=0.9")
	httpClient.SetTimeout(timeout)
	httpClient.SetRetryCount(0)

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http:           httpClient,
		baseURL:        baseURL,
		logger:         logger.Named("fbref"),
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		maxBody:        maxBodyBytes,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch issues one GET. The returned page carries the status even when the
// error classifies it.
func (c *Client) Fetch(ctx context.Context, rawURL string) (usecase.FetchedPage, error) {
	target := c.resolve(rawURL)
	page := usecase.FetchedPage{URL: target}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fbref circuit breaker rejected request", "url", target, "retry_after", c.breaker.RetryAfter())
			page.StatusCode = http.StatusTooManyRequests
			page.StatusText = http.StatusText(http.StatusTooManyRequests)
			return page, crerr.Wrapf(usecase.ErrFetchRateLimited, "circuit open for %s", target)
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		err = classifyTransportError(err, target)
		c.record(err, 0)
		return page, err
	}

	page.StatusCode = resp.StatusCode()
	page.StatusText = statusText(resp)

	if err := classifyStatus(resp.StatusCode(), target); err != nil {
		c.record(err, retryAfter(resp.Header().Get("Retry-After"), time.Now()))
		c.logger.WarnContext(ctx, "fbref fetch rejected", "url", target, "status", resp.StatusCode())
		return page, err
	}
	c.record(nil, 0)

	// A cut page would parse into silently incomplete tables.
	body := resp.Body()
	if len(body) > c.maxBody {
		c.logger.WarnContext(ctx, "fbref page too large", "url", target, "bytes", len(body), "limit", c.maxBody)
		return page, crerr.Wrapf(usecase.ErrFetchUnexpectedStatus, "GET %s: body of %d bytes exceeds %d", target, len(body), c.maxBody)
	}
	page.Body = string(body)
	return page, nil
}

// IsAlive probes the site root and classifies the answer.
func (c *Client) IsAlive(ctx context.Context) error {
	_, err := c.Fetch(ctx, c.baseURL+"/en/")
	return err
}

func (c *Client) resolve(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if strings.HasPrefix(rawURL, "/") {
		return c.baseURL + rawURL
	}
	return rawURL
}

// record trips the breaker only on rate limiting; other failures say
// nothing about the upstream's tolerance.
func (c *Client) record(err error, hint time.Duration) {
	if !c.circuitEnabled {
		return
	}
	switch {
	case err == nil:
		c.breaker.RecordSuccess()
	case stderrors.Is(err, usecase.ErrFetchRateLimited):
		c.breaker.TripFor(hint)
	default:
		c.breaker.RecordSuccess()
	}
}

// retryAfter reads a Retry-After header given either as seconds or as an
// HTTP date. Anything unparseable yields zero.
func retryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if at, err := http.ParseTime(header); err == nil {
		return max(at.Sub(now), 0)
	}
	return 0
}

func statusText(resp *resty.Response) string {
	if text := http.StatusText(resp.StatusCode()); text != "" {
		return text
	}
	return strings.TrimSpace(resp.Status())
}

func classifyStatus(code int, target string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusForbidden:
		return crerr.Wrapf(usecase.ErrFetchForbidden, "GET %s: status %d", target, code)
	case code == http.StatusTooManyRequests:
		return crerr.Wrapf(usecase.ErrFetchRateLimited, "GET %s: status %d", target, code)
	default:
		return crerr.Wrapf(usecase.ErrFetchUnexpectedStatus, "GET %s: status %d", target, code)
	}
}

func classifyTransportError(err error, target string) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return crerr.Wrapf(usecase.ErrFetchTimeout, "GET %s: %v", target, err)
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return crerr.Wrapf(usecase.ErrFetchTimeout, "GET %s: %v", target, err)
	}
	return crerr.Wrapf(usecase.ErrFetchNetwork, "GET %s: %s", target, fmt.Sprint(err))
}
