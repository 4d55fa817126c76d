package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"hyperstat/internal/codec"
	"hyperstat/internal/models"
	"hyperstat/internal/providers"
	"hyperstat/internal/structures"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout      = 10 * time.Second
	maxResponseBodySize = 1 << 20 // 1 MB
)

type NexonClientInterface interface {
	GetCharacterHyperStat(ctx context.Context, ocid, date, apiKey string) (*models.StatSnapshot, error)
}

type NexonClient struct {
	httpClient *http.Client
	decoder    *codec.HyperStatDecoder
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	limiter    *rate.Limiter
	baseURL    string
	path       string
	keyHeader  string
	timeout    time.Duration
}

func NewNexonClient(conf *structures.Config, httpClient *http.Client, decoder *codec.HyperStatDecoder, logger providers.Logger, metrics providers.MetricsProviderInterface) NexonClientInterface {
	c := &NexonClient{
		httpClient: httpClient,
		decoder:    decoder,
		logger:     logger,
		metrics:    metrics,
		baseURL:    conf.Nexon.BaseURL,
		path:       conf.Nexon.Path,
		keyHeader:  conf.Nexon.APIKeyHeader,
		timeout:    conf.Nexon.Timeout,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if conf.Nexon.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(conf.Nexon.RateLimit), max(conf.Nexon.Burst, 1))
	}
	return c
}

// GetCharacterHyperStat performs exactly one GET against the hyper-stat
// endpoint. date is forwarded verbatim.
func (c *NexonClient) GetCharacterHyperStat(ctx context.Context, ocid, date, apiKey string) (*models.StatSnapshot, error) {
	if ocid == "" {
		return nil, fmt.Errorf("%w: ocid", ErrMissingParameter)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key", ErrMissingParameter)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.IncUpstreamRequests(providers.OutcomeTransport)
			return nil, &TransportError{Op: "rate limit wait", Err: err}
		}
	}

	req, err := hyperStatRequest(c.path, c.keyHeader, ocid, date, apiKey).build(ctx, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debugf(providers.TypeUpstream, "GET %s ocid=%s date=%s request_id=%s", c.path, ocid, date, requestID)

	start := time.Now()
	snapshot, outcome, err := c.do(req)
	c.metrics.ObserveUpstreamDuration(time.Since(start))
	c.metrics.IncUpstreamRequests(outcome)

	if err != nil {
		c.logger.Warnf(providers.TypeUpstream, "request_id=%s failed: %s", requestID, err)
		return nil, err
	}
	return snapshot, nil
}

func (c *NexonClient) do(req *http.Request) (*models.StatSnapshot, string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.OutcomeTransport, &TransportError{Op: "request", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, providers.OutcomeTransport, &TransportError{Op: "read body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, providers.OutcomeStatus, newStatusError(resp.StatusCode, body)
	}

	snapshot, err := c.decoder.Decode(body)
	if err != nil {
		return nil, providers.OutcomeDecode, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return snapshot, providers.OutcomeOK, nil
}
