package service

import (
	"context"
	"strconv"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/errors"
	"github.com/debank-scanner/internal/logging"
	"github.com/debank-scanner/internal/mapper"
	"github.com/debank-scanner/internal/models"
	"github.com/debank-scanner/internal/types"
)

// HistoryService reads an address's transaction history and historical prices
type HistoryService struct {
	client *adapter.Client
	logger *logging.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(client *adapter.Client) *HistoryService {
	return &HistoryService{
		client: client,
		logger: logging.GetGlobalLogger().Named("history"),
	}
}

// List returns up to pageCount transactions of address older than startTime
// (0 means now). Counts above 20 are fetched as consecutive pages, each
// starting where the previous one ended.
func (s *HistoryService) List(ctx context.Context, address string, chain types.ChainName, startTime int64, pageCount int) (*models.History, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	if pageCount <= 0 {
		return nil, errors.NewInvalidParameterError("pageCount", "must be positive")
	}

	var merged mapper.RawHistoryPage
	for i, count := range pageCounts(pageCount) {
		data, err := s.client.Get(ctx, adapter.PathHistoryList, map[string]string{
			"user_addr":  address,
			"chain":      chainParam(chain),
			"start_time": formatInt(startTime),
			"page_count": strconv.Itoa(count),
		})
		if err != nil {
			return nil, err
		}

		var page mapper.RawHistoryPage
		if err := mapper.Decode(data, &page, adapter.PathHistoryList); err != nil {
			return nil, err
		}
		mergeHistoryPage(&merged, page)

		if len(page.HistoryList) == 0 {
			s.logger.WithField("page", i+1).Debug("Empty history page, stopping pagination")
			break
		}
		last := page.HistoryList[len(page.HistoryList)-1]
		if last.TimeAt == nil {
			s.logger.WithField("page", i+1).Warn("History entry without time_at, stopping pagination")
			break
		}
		startTime = int64(*last.TimeAt)
	}

	history := mapper.MapHistory(address, merged)
	return &history, nil
}

// TokenPrice returns a token's USD price on chain, at timeAt when given
func (s *HistoryService) TokenPrice(ctx context.Context, chain types.ChainName, tokenID string, timeAt *int64) (float64, error) {
	if err := requireChain(chain); err != nil {
		return 0, err
	}
	if tokenID == "" {
		return 0, errors.NewInvalidParameterError("tokenID", "must not be empty")
	}

	params := map[string]string{
		"chain":    string(chain),
		"token_id": tokenID,
	}
	if timeAt != nil {
		params["time_at"] = formatInt(*timeAt)
	}

	data, err := s.client.Get(ctx, adapter.PathTokenPrice, params)
	if err != nil {
		return 0, err
	}
	var price mapper.RawTokenPrice
	if err := mapper.Decode(data, &price, adapter.PathTokenPrice); err != nil {
		return 0, err
	}
	return price.Price, nil
}

// chainParam encodes a chain selector; all chains is the empty string
func chainParam(chain types.ChainName) string {
	if chain.IsAll() {
		return ""
	}
	return string(chain)
}
