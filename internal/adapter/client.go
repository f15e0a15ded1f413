package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/debank-scanner/internal/errors"
	"github.com/debank-scanner/internal/logging"
	"github.com/debank-scanner/internal/metrics"
)

// PublicEntrypoint is the base URL of the public DeBank API
const PublicEntrypoint = "https://api.debank.com/"

// API paths relative to the public entrypoint
const (
	PathNetCurve24h           = "asset/net_curve_24h"
	PathHistoryList           = "history/list"
	PathTokenPrice            = "history/token_price"
	PathCollectionList        = "nft/collection_list"
	PathHistoryCollectionList = "nft/history_collection_list"
	PathNFTHistoryList        = "nft/history_list"
	PathNFTUsedChains         = "nft/used_chains"
	PathProjectList           = "portfolio/project_list"
	PathBalanceList           = "token/balance_list"
	PathCacheBalanceList      = "token/cache_balance_list"
	PathUserAddr              = "user/addr"
	PathUserTotalBalance      = "user/total_balance"
	// Legacy path served from the plain entrypoint
	PathUserInfo = "hi/user/info"
)

// ClientConfig configures a Client
type ClientConfig struct {
	BaseURL   string
	Transport Transport
	Proxies   []string
	Metrics   *metrics.Collector
	Logger    *logging.Logger
}

// Client sends requests to the DeBank API and validates their envelopes
type Client struct {
	baseURL   string
	transport Transport
	proxies   *ProxyPool
	metrics   *metrics.Collector
	logger    *logging.Logger
}

// NewClient creates a DeBank API client
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = PublicEntrypoint
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	transport := cfg.Transport
	if transport == nil {
		transport = NewFastHTTPTransport(30 * time.Second)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Client{
		baseURL:   baseURL,
		transport: transport,
		proxies:   NewProxyPool(cfg.Proxies...),
		metrics:   cfg.Metrics,
		logger:    logger.Named("debank"),
	}
}

// WithProxies returns a copy of the client that picks from the given proxies
func (c *Client) WithProxies(proxies ...string) *Client {
	clone := *c
	clone.proxies = NewProxyPool(proxies...)
	return &clone
}

// Pinned returns a copy of the client bound to one proxy drawn from the pool.
// Polling loops use it so every poll of a job goes through the same proxy.
func (c *Client) Pinned() *Client {
	clone := *c
	if proxy := c.proxies.Pick(); proxy != "" {
		clone.proxies = NewProxyPool(proxy)
	}
	return &clone
}

// Metrics returns the client's metrics collector, which may be nil
func (c *Client) Metrics() *metrics.Collector {
	return c.metrics
}

// Get requests path with params and returns the validated data payload
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (jsoniter.RawMessage, error) {
	url := c.baseURL + path
	proxy := c.proxies.Pick()

	logger := c.logger.WithFields(map[string]interface{}{
		"requestId": uuid.New().String(),
		"endpoint":  path,
		"proxied":   proxy != "",
	})

	startTime := time.Now()
	resp, err := c.transport.Get(ctx, url, params, proxy)
	if err != nil {
		c.metrics.ObserveRequest(path, metrics.OutcomeTransport, time.Since(startTime))
		logger.WithError(err).Warn("DeBank request failed")
		return nil, errors.NewTransportFailure(url, err)
	}

	data, err := ValidateResponse(resp)
	elapsed := time.Since(startTime)
	if err != nil {
		c.metrics.ObserveRequest(path, outcomeOf(err), elapsed)
		logger.WithFields(map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": elapsed,
		}).WithError(err).Warn("DeBank request rejected")
		return nil, err
	}

	c.metrics.ObserveRequest(path, metrics.OutcomeSuccess, elapsed)
	logger.WithFields(map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": elapsed,
		"bytes":    len(resp.Body),
	}).Debug("DeBank request completed")

	return data, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.IsTransportError(err):
		return metrics.OutcomeTransport
	case errors.IsAPIError(err):
		return metrics.OutcomeAPI
	default:
		return metrics.OutcomeInvalidData
	}
}
