package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ajmonfue/poke-explorer/internal/services/catalog/cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

const tracerName = "github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource/pokeapi"

// StatusError reports a non-200 upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("error fetching %s: status %d", e.URL, e.StatusCode)
}

// Client fetches PokeAPI resources through a response cache.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	ttl     time.Duration
	tracer  trace.Tracer
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL           string
	HTTPClient        *http.Client
	Cache             *cache.Cache
	TTL               time.Duration
	RequestsPerSecond float64
	Burst             int
}

// NewClient builds a client. A zero RequestsPerSecond disables throttling.
func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	responses := opts.Cache
	if responses == nil {
		responses = cache.New()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	limit := rate.Inf
	burst := opts.Burst
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		if burst <= 0 {
			burst = int(opts.RequestsPerSecond)
		}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		cache:   responses,
		ttl:     ttl,
		tracer:  otel.Tracer(tracerName),
	}
}

// URL joins a path onto the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// fetch decodes the JSON resource at url, served from the cache when fresh.
func fetch[T any](ctx context.Context, c *Client, url string) (T, error) {
	return cache.Get(ctx, c.cache, url, c.ttl, func(ctx context.Context) (T, error) {
		var out T
		err := c.getJSON(ctx, url, &out)
		return out, err
	})
}

func (c *Client) getJSON(ctx context.Context, url string, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "pokeapi.fetch", trace.WithAttributes(attribute.String("http.url", url)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
