package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/api3ctl/pkg/services/types"
)

var log = logging.Logger("service/market")

// DefaultBaseURL is the public API3 market API.
const DefaultBaseURL = "https://market.api3.org/api/v1"

// Client fetches descriptive dAPI metadata. Nothing it returns feeds into
// on-chain reads.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxTries   uint
}

type Option func(*Client)

func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMaxTries bounds attempts per request, including the first.
func WithMaxTries(n uint) Option {
	return func(c *Client) {
		c.maxTries = n
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxTries:   3,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// DapiMetadata looks up a dAPI by name on networkID.
func (c *Client) DapiMetadata(ctx context.Context, networkID, dapiName string) (*types.DapiMetadata, error) {
	u := fmt.Sprintf("%s/chains/%s/dapis/%s", c.baseURL, url.PathEscape(networkID), url.PathEscape(dapiName))

	var md types.DapiMetadata
	if err := c.get(ctx, u, &md); err != nil {
		return nil, err
	}
	if md.Name == "" {
		md.Name = dapiName
	}
	if md.Providers == nil {
		md.Providers = []string{}
	}
	return &md, nil
}

// get issues a GET with retries on transport failures, 429 and 5xx. Other
// statuses fail at once. Context cancellation is returned as is.
func (c *Client) get(ctx context.Context, u string, result any) error {
	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(&FetchError{URL: u, Err: err})
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("x-api-key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return struct{}{}, backoff.Permanent(ctx.Err())
			}
			return struct{}{}, &FetchError{URL: u, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			fetchErr := &FetchError{URL: u, StatusCode: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(body)))}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return struct{}{}, fetchErr
			}
			return struct{}{}, backoff.Permanent(fetchErr)
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return struct{}{}, backoff.Permanent(&FetchError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)})
		}
		return struct{}{}, nil
	}

	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 200 * time.Millisecond

	_, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithBackOff(exponentialBackoff),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, d time.Duration) {
			log.Debugw("market request failed, retrying", "url", u, "in", d, "error", err)
		}),
	)
	return err
}
