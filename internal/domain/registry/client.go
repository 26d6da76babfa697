package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
	"github.com/GriffinCanCode/blockhub/internal/shared/utils"
)

var (
	// ErrNotFound is returned when the remote registry has no such item
	ErrNotFound = errors.New("registry item not found")
	// ErrUnavailable is returned while the circuit breaker is open
	ErrUnavailable = errors.New("registry unavailable")
)

// StatusError reports an unexpected HTTP status from the registry
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry request %s failed with status %d", e.URL, e.Code)
}

// ClientOptions configures a Client
type ClientOptions struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RequestsPerSecond limits outgoing requests. Zero is unlimited.
	RequestsPerSecond float64
	UserAgent         string
	Logger            *logging.Logger
}

// DefaultClientOptions returns production settings for base
func DefaultClientOptions(base string) ClientOptions {
	return ClientOptions{
		BaseURL:      base,
		Timeout:      30 * time.Second,
		RetryMax:     3,
		RetryWaitMin: time.Second,
		RetryWaitMax: 30 * time.Second,
		UserAgent:    "blockhub-cli/1.0",
	}
}

// Client fetches registry items from a remote registry
type Client struct {
	base    string
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// NewClient creates a client with retrying transport and circuit breaker
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "blockhub-cli/1.0"
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	logger := opts.Logger.Named("registry")

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = opts.RetryWaitMax
	}
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	breaker := resilience.New("registry", resilience.Settings{
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Registry breaker state changed",
				zap.String("registry", opts.BaseURL),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		resty:   restyClient,
		limiter: limiter,
		breaker: breaker,
	}
}

// BaseURL returns the registry root the client talks to
func (c *Client) BaseURL() string {
	return c.base
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// Fetch retrieves {base}/r/{name}.json
func (c *Client) Fetch(ctx context.Context, name string) (types.RegistryItem, error) {
	if err := utils.ValidateSlug(name, "name"); err != nil {
		return types.RegistryItem{}, err
	}
	var item types.RegistryItem
	err := c.get(ctx, c.base+"/"+paths.Block{Name: name}.RegistryItem(), &item)
	return item, err
}

// Index retrieves {base}/r/registry.json
func (c *Client) Index(ctx context.Context) (types.RegistryIndex, error) {
	var index types.RegistryIndex
	err := c.get(ctx, c.base+"/"+paths.RegistryIndex, &index)
	return index, err
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	body, err := resilience.Do(c.breaker, func() ([]byte, error) {
		resp, err := c.resty.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", url, err)
		}
		switch code := resp.StatusCode(); {
		case code == http.StatusNotFound:
			return nil, ErrNotFound
		case code < 200 || code >= 300:
			return nil, &StatusError{URL: url, Code: code}
		}
		return resp.Body(), nil
	})
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
