package vlr

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vlrscraper/internal/components/assert"
	"vlrscraper/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const report_transport_get = "transport.get"

type Response struct {
	StatusCode int
	Body       []byte
}

// Transport issues GET requests for pages. The scraper does not care if
// responses come from the network or from recorded fixtures.
type Transport interface {
	Get(ctx context.Context, url string) (Response, error)
}

type HTTPOptions struct {
	// Timeout of a single request, retries included.
	Timeout time.Duration
	// Retries of requests that failed or answered with 429/5xx.
	Retries int
	// RateLimit is the number of requests allowed per second.
	RateLimit float64
	Burst     int
	// CacheSize is the number of successful responses kept in memory, 0
	// disables the cache.
	CacheSize int
	CacheTTL  time.Duration
	UserAgent string
	// Output receives full request/response dumps, may be nil.
	Output telemetry.InstrumentOutput
}

func DefaultHTTPOptions() HTTPOptions {
	return HTTPOptions{
		Timeout:   30 * time.Second,
		Retries:   2,
		RateLimit: 2,
		Burst:     2,
		CacheSize: 512,
		CacheTTL:  10 * time.Minute,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	}
}

type HTTPTransport struct {
	http  *resty.Client
	cache *expirable.LRU[string, Response]
	tel   telemetry.API
}

func NewHTTPTransport(opts HTTPOptions, tel telemetry.API) *HTTPTransport {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("vlr_http", tel)

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(opts.Retries)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return res.StatusCode() == http.StatusTooManyRequests ||
			res.StatusCode() >= 500
	})

	limit := rate.Limit(opts.RateLimit)
	if opts.RateLimit <= 0 {
		limit = rate.Inf
	}
	rateLimiter := rate.NewLimiter(limit, max(opts.Burst, 1))
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, tel, opts.Output)

	t := &HTTPTransport{
		http: client,
		tel:  tel,
	}
	if opts.CacheSize > 0 {
		t.cache = expirable.NewLRU[string, Response](opts.CacheSize, nil, opts.CacheTTL)
	}
	return t
}

func (t *HTTPTransport) Get(ctx context.Context, url string) (Response, error) {
	if t.cache != nil {
		cached, ok := t.cache.Get(url)
		if ok {
			t.tel.ReportDebug("cache hit", url)
			return cached, nil
		}
	}

	res, err := t.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		t.tel.ReportBroken(
			report_transport_get,
			fmt.Errorf("fetch: %w", err),
			url,
		)
		return Response{}, err
	}

	out := Response{
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
	}
	if t.cache != nil && out.StatusCode == http.StatusOK {
		t.cache.Add(url, out)
	}
	return out, nil
}
