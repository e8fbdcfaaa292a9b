package httpclient

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"cvss-scorer/internal/logger"
)

const (
	DefaultTimeout  = 15 * time.Second
	DefaultRetryMax = 3
)

// Options tune the retrying client. Zero values pick the defaults.
type Options struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// New returns an *http.Client that retries connection errors, 429 and 5xx
// responses with backoff, honouring Retry-After. The returned client is
// safe for concurrent use.
func New(opts Options) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = cleanhttp.DefaultPooledClient()
	retryClient.Logger = logger.NewRetryAdapter(log.Logger)

	retryClient.RetryMax = DefaultRetryMax
	if opts.RetryMax > 0 {
		retryClient.RetryMax = opts.RetryMax
	}
	if opts.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = opts.RetryWaitMax
	}
	// hand the last response back to the caller so it can report the status
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := retryClient.StandardClient()
	c.Timeout = DefaultTimeout
	if opts.Timeout > 0 {
		c.Timeout = opts.Timeout
	}
	return c
}
