// Package fmp is the Financial Modeling Prep style upstream used for US
// companies.
package fmp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/jaytaylor/html2text"
	"github.com/shubhamc1947/company-data/core"
	"github.com/shubhamc1947/company-data/provider"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	searchLimit  = 10
	historyLimit = 5
)

var errUnexpectedStatus = errors.New("unexpected status code")

// Client talks to the upstream API of one country.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *retryablehttp.Client
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

// NewClient creates a client. Each upstream call, retries and rate limit
// waits included, is bounded by cfg.Timeout whatever the caller's context
// says.
func NewClient(cfg core.ProviderConfig, logger *zap.SugaredLogger) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = retryLogger{logger: logger}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimit)), 1)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		http:    client,
		limiter: limiter,
		logger:  logger,
	}
}

func (c *Client) Search(ctx context.Context, name string) ([]provider.SearchResult, error) {
	c.logger.Infof("Searching company %q", name)

	params := url.Values{}
	params.Set("query", name)
	params.Set("limit", fmt.Sprint(searchLimit))

	var results []provider.SearchResult
	if err := c.get(ctx, "/search", params, &results); err != nil {
		c.logger.Errorf("Error during search for %q: %v", name, err)
		return nil, fmt.Errorf("search %q: %w", name, provider.ErrNoData)
	}

	if results == nil {
		results = []provider.SearchResult{}
	}

	return results, nil
}

func (c *Client) FetchRaw(ctx context.Context, symbol string) (*provider.RawCompanyData, error) {
	c.logger.Infof("Fetching data for symbol %v", symbol)

	var (
		profiles []provider.Profile
		income   []provider.IncomeStatement
		balance  []provider.BalanceSheet
	)

	history := url.Values{}
	history.Set("limit", fmt.Sprint(historyLimit))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := c.get(gctx, "/profile/"+url.PathEscape(symbol), nil, &profiles); err != nil {
			return err
		}
		if len(profiles) == 0 {
			return errors.New("empty profile")
		}
		return nil
	})

	// Statement histories are optional. A company is still cached with a
	// partial history, so failures are only logged.
	g.Go(func() error {
		if err := c.get(gctx, "/income-statement/"+url.PathEscape(symbol), history, &income); err != nil {
			c.logger.Warnf("Income statements for %v unavailable, continuing without them: %v", symbol, err)
			income = nil
		}
		return nil
	})

	g.Go(func() error {
		if err := c.get(gctx, "/balance-sheet-statement/"+url.PathEscape(symbol), history, &balance); err != nil {
			c.logger.Warnf("Balance sheets for %v unavailable, continuing without them: %v", symbol, err)
			balance = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		c.logger.Errorf("Unable to fetch profile for %v: %v", symbol, err)
		return nil, fmt.Errorf("profile of %v: %w", symbol, provider.ErrNoData)
	}

	profile := profiles[0]
	profile.Description = plainText(profile.Description)

	if income == nil {
		income = []provider.IncomeStatement{}
	}
	if balance == nil {
		balance = []provider.BalanceSheet{}
	}

	return &provider.RawCompanyData{
		Profile:          profile,
		IncomeStatements: income,
		BalanceSheets:    balance,
	}, nil
}

// get performs GET {baseURL}{path}?{params}&apikey=... and decodes the JSON
// body into out. Anything but a 200 is an error.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("apikey", c.apiKey)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// plainText strips markup the upstream sometimes leaves in descriptions.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return s
	}

	return text
}

// retryLogger sends retryablehttp's messages to zap.
type retryLogger struct {
	logger *zap.SugaredLogger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}
