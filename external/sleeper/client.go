package sleeper

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-matchups/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL         = "https://api.sleeper.app/v1"
	defaultSport           = "nfl"
	defaultTimeout         = 10 * time.Second
	maxResponseBodyBytes   = 64 << 20
	maxLoggedBodyBytes     = 256
	defaultMaxIdleConnTime = 30 * time.Second
)

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient       *fasthttp.Client
	BaseURL          string
	Sport            string
	Timeout          time.Duration
	DirectoryTimeout time.Duration
	MaxRetries       int
	Logger           *logging.Logger
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// Client reads league matchups and the player directory from a Sleeper
// compatible API.
type Client struct {
	httpClient       *fasthttp.Client
	baseURL          string
	sport            string
	timeout          time.Duration
	directoryTimeout time.Duration
	maxRetries       int
	logger           *logging.Logger
	validator        *validator.Validate
	breaker          *resilience.CircuitBreaker
	circuitEnabled   bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	directoryTimeout := cfg.DirectoryTimeout
	if directoryTimeout <= 0 {
		directoryTimeout = 2 * timeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "fantasy-matchups",
			ReadTimeout:         directoryTimeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: defaultMaxIdleConnTime,
			MaxResponseBodySize: maxResponseBodyBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	sport := strings.TrimSpace(cfg.Sport)
	if sport == "" {
		sport = defaultSport
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("sleeper circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:       httpClient,
		baseURL:          baseURL,
		sport:            sport,
		timeout:          timeout,
		directoryTimeout: directoryTimeout,
		maxRetries:       max(cfg.MaxRetries, 0),
		logger:           logger,
		validator:        validator.New(validator.WithRequiredStructEnabled()),
		breaker:          breaker,
		circuitEnabled:   cfg.CircuitBreaker.Enabled,
	}
}

func (c *Client) FetchMatchups(ctx context.Context, externalLeagueID string, week int) ([]usecase.ScoringSnapshot, error) {
	externalLeagueID = strings.TrimSpace(externalLeagueID)
	if externalLeagueID == "" || week < 1 {
		return nil, fmt.Errorf("%w: league id and positive week are required", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/league/%s/matchups/%d", url.PathEscape(externalLeagueID), week)
	raw, err := c.get(ctx, path, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("fetch matchups league=%s week=%d: %w", externalLeagueID, week, err)
	}

	var entries []matchupEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode matchups league=%s week=%d: %v", usecase.ErrFetchHTTP, externalLeagueID, week, err)
	}

	out := make([]usecase.ScoringSnapshot, 0, len(entries))
	for i, entry := range entries {
		if err := c.validator.Struct(entry); err != nil {
			return nil, fmt.Errorf("%w: invalid matchup entry index=%d league=%s: %v", usecase.ErrFetchHTTP, i, externalLeagueID, err)
		}
		snapshot, err := entry.toSnapshot()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", usecase.ErrFetchHTTP, err)
		}
		out = append(out, snapshot)
	}

	return out, nil
}

func (c *Client) FetchPlayerDirectory(ctx context.Context) (usecase.PlayerDirectory, error) {
	raw, err := c.get(ctx, "/players/"+url.PathEscape(c.sport), c.directoryTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetch player directory sport=%s: %w", c.sport, err)
	}

	var entries map[string]directoryEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode player directory: %v", usecase.ErrFetchHTTP, err)
	}

	out := make(usecase.PlayerDirectory, len(entries))
	for id, entry := range entries {
		if name := entry.displayName(); name != "" {
			out[strings.TrimSpace(id)] = name
		}
	}

	c.logger.InfoContext(ctx, "player directory fetched", "sport", c.sport, "players", len(out))
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	var raw []byte
	call := func() error {
		var err error
		raw, err = c.executeRequest(ctx, c.baseURL+path, timeout)
		return err
	}

	if !c.circuitEnabled {
		if err := call(); err != nil {
			return nil, c.classify(err)
		}
		return raw, nil
	}

	err := c.breaker.Execute(call, isSleeperCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: %w: scoring provider is temporarily unavailable", usecase.ErrFetchHTTP, usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, c.classify(err)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, timeout time.Duration) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, crerr.Mark(err, errSleeperTransient)
		}

		raw, err := c.do(ctx, fullURL, timeout)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isSleeperCircuitFailure(err) || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 250 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, crerr.Mark(ctx.Err(), errSleeperTransient)
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

type fetchResult struct {
	status int
	body   []byte
	err    error
}

// do returns as soon as ctx is done. DoDeadline has no cancellation hook, so
// the in-flight request keeps running until its deadline in the background.
func (c *Client) do(ctx context.Context, fullURL string, timeout time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("request canceled: %w", err)
	}

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	done := make(chan fetchResult, 1)
	go func() {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(fullURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set(fasthttp.HeaderAccept, "application/json")

		if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
			done <- fetchResult{err: err}
			return
		}
		done <- fetchResult{status: resp.StatusCode(), body: append([]byte(nil), resp.Body()...)}
	}()

	var res fetchResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("request canceled: %w", ctx.Err())
	case res = <-done:
	}

	if err := res.err; err != nil {
		if stderrors.Is(err, fasthttp.ErrTimeout) || stderrors.Is(err, fasthttp.ErrDialTimeout) {
			return nil, crerr.Mark(fmt.Errorf("%w: %v", usecase.ErrFetchTimeout, err), errSleeperTransient)
		}
		return nil, crerr.Mark(fmt.Errorf("send request: %w", err), errSleeperTransient)
	}

	if res.status >= 200 && res.status < 300 {
		return res.body, nil
	}

	statusErr := fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrFetchHTTP, res.status, abbreviateBody(res.body))
	if isRetryableStatus(res.status) {
		return nil, crerr.Mark(statusErr, errSleeperTransient)
	}
	return nil, statusErr
}

// classify makes sure every failure carries ErrFetchTimeout or ErrFetchHTTP.
func (c *Client) classify(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, usecase.ErrFetchTimeout), stderrors.Is(err, usecase.ErrFetchHTTP):
		return err
	case stderrors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", usecase.ErrFetchTimeout, err)
	default:
		return fmt.Errorf("%w: %v", usecase.ErrFetchHTTP, err)
	}
}

func isSleeperCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errSleeperTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxLoggedBodyBytes {
		return text[:maxLoggedBodyBytes] + "...(" + strconv.Itoa(len(text)) + " bytes)"
	}
	return text
}
