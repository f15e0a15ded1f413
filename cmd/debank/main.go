// Package main provides a command line client for the DeBank analytics API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/config"
	"github.com/debank-scanner/internal/errors"
	"github.com/debank-scanner/internal/logging"
	"github.com/debank-scanner/internal/metrics"
	"github.com/debank-scanner/internal/retry"
	"github.com/debank-scanner/internal/service"
	"github.com/debank-scanner/internal/types"
)

const usage = `Usage: debank -op <operation> -address <0x...> [flags]

Operations:
  balance          tokens, NFTs and projects per chain
  balance-list     live token balances on -chain
  cache-balance    cached token balances on every chain
  current-balance  live token balances on every used chain
  projects         DeFi projects per chain
  collections      owned NFTs per chain
  profits          NFT profit leaderboard per chain
  nft-history      NFT trading history per chain
  nft-chains       chains with NFT activity
  history          transaction history (-pages, -start)
  token-price      token price (-chain, -token, -time)
  curve            24h net asset curve
  user             DeBank profile
  info             messaging profile
  total            total USD balance
`

type options struct {
	op        string
	address   string
	chain     types.ChainName
	noNFTs    bool
	raw       bool
	pageCount int
	startTime int64
	tokenID   string
	timeAt    int64
}

func main() {
	op := flag.String("op", "balance", "Operation to run")
	address := flag.String("address", "", "Address to query")
	chainFlag := flag.String("chain", "", "Chain to query (empty or 'all' for every chain)")
	noNFTs := flag.Bool("no-nfts", false, "Skip NFTs in the balance operation")
	raw := flag.Bool("raw", false, "Print unprocessed payloads where supported")
	pageCount := flag.Int("pages", 20, "Number of transactions for the history operation")
	startTime := flag.Int64("start", 0, "Only transactions before this unix time (0 for now)")
	tokenID := flag.String("token", "", "Token id for the token-price operation")
	timeAt := flag.Int64("time", 0, "Unix time for the token-price operation (0 for now)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.InitGlobalLogger(logging.ParseLogLevel(cfg.Logging.Level), logging.ParseLogFormat(cfg.Logging.Format))
	logger := logging.GetGlobalLogger()
	// stdout carries the result
	logger.SetOutput(os.Stderr)
	defer func() { _ = logger.Sync() }()

	chain, err := types.ParseChainName(*chainFlag)
	if err != nil {
		logger.WithError(err).Fatal("Invalid chain")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		collector, err = metrics.NewCollector(registry)
		if err != nil {
			logger.WithError(err).Fatal("Failed to register metrics")
		}
		shutdown := serveMetrics(cfg.Metrics.Addr, registry, logger)
		defer shutdown()
	}

	client := adapter.NewClient(adapter.ClientConfig{
		BaseURL:   cfg.DeBank.BaseURL,
		Transport: adapter.NewFastHTTPTransport(cfg.DeBank.Timeout),
		Proxies:   cfg.DeBank.Proxies,
		Metrics:   collector,
	})
	services := service.NewServices(client, &retry.PollConfig{
		MaxAttempts: cfg.Polling.MaxAttempts,
		Delay:       cfg.Polling.Delay,
	})

	opts := options{
		op:        strings.ToLower(*op),
		address:   *address,
		chain:     chain,
		noNFTs:    *noNFTs,
		raw:       *raw,
		pageCount: *pageCount,
		startTime: *startTime,
		tokenID:   *tokenID,
		timeAt:    *timeAt,
	}

	logger.WithFields(map[string]interface{}{
		"op":      opts.op,
		"chain":   opts.chain.String(),
		"proxies": len(cfg.DeBank.Proxies),
	}).Debug("Running operation")

	result, err := run(ctx, services, opts)
	if err != nil {
		logger.WithError(err).WithFields(map[string]interface{}{
			"status_code": errors.StatusCode(err),
			"retryable":   errors.IsRetryable(err),
		}).Error("Operation failed")
		os.Exit(1)
	}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("Failed to encode result")
	}
	fmt.Println(string(out))
}

func run(ctx context.Context, s *service.Services, o options) (interface{}, error) {
	switch o.op {
	case "balance":
		return s.Balance.GetBalance(ctx, o.address, o.chain, !o.noNFTs)
	case "balance-list":
		if o.raw {
			return s.Token.BalanceListRaw(ctx, o.address, o.chain)
		}
		return s.Token.BalanceList(ctx, o.address, o.chain)
	case "cache-balance":
		if o.raw {
			return s.Token.CacheBalanceListRaw(ctx, o.address)
		}
		return s.Token.CacheBalanceList(ctx, o.address)
	case "current-balance":
		return s.Token.CurrentBalanceList(ctx, o.address)
	case "projects":
		if o.raw {
			return s.Portfolio.ProjectListRaw(ctx, o.address)
		}
		return s.Portfolio.ProjectList(ctx, o.address)
	case "collections":
		if o.raw {
			return s.NFT.CollectionListRaw(ctx, o.address, o.chain)
		}
		return s.NFT.CollectionList(ctx, o.address, o.chain)
	case "profits":
		return s.NFT.HistoryCollectionList(ctx, o.address, o.chain)
	case "nft-history":
		return s.NFT.HistoryList(ctx, o.address, o.chain, nil)
	case "nft-chains":
		return s.NFT.UsedChains(ctx, o.address)
	case "history":
		return s.History.List(ctx, o.address, o.chain, o.startTime, o.pageCount)
	case "token-price":
		var timeAt *int64
		if o.timeAt > 0 {
			timeAt = &o.timeAt
		}
		return s.History.TokenPrice(ctx, o.chain, o.tokenID, timeAt)
	case "curve":
		return s.Asset.NetCurve24h(ctx, o.address)
	case "user":
		return s.User.Addr(ctx, o.address)
	case "info":
		return s.User.Info(ctx, o.address)
	case "total":
		return s.User.TotalBalance(ctx, o.address)
	default:
		return nil, fmt.Errorf("unknown operation %q", o.op)
	}
}

// serveMetrics exposes the registry on addr until the returned func is called
func serveMetrics(addr string, registry *prometheus.Registry, logger *logging.Logger) func() {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithField("addr", addr).Info("Serving metrics")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("Metrics server shutdown failed")
		}
	}
}
