package service

import (
	"context"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/logging"
	"github.com/debank-scanner/internal/mapper"
	"github.com/debank-scanner/internal/models"
	"github.com/debank-scanner/internal/retry"
	"github.com/debank-scanner/internal/types"
)

// NFTHistoryOptions narrows nft/history_list. The zero value asks for the
// latest 20 trades of any type.
type NFTHistoryOptions struct {
	Type       string
	AnchorTime string
	AnchorID   string
	PageCount  int
	Direction  string
}

// NFTService reads NFT holdings, trading profits and trading history
type NFTService struct {
	client *adapter.Client
	poller *jobPoller
	logger *logging.Logger
}

// NewNFTService creates a new NFT service. A nil pollConfig uses the defaults.
func NewNFTService(client *adapter.Client, pollConfig *retry.PollConfig) *NFTService {
	if pollConfig == nil {
		pollConfig = retry.DefaultPollConfig()
	}
	logger := logging.GetGlobalLogger().Named("nft")
	return &NFTService{
		client: client,
		poller: &jobPoller{client: client, config: pollConfig, logger: logger},
		logger: logger,
	}
}

// UsedChains returns the chains on which address has interacted with NFTs
func (s *NFTService) UsedChains(ctx context.Context, address string) ([]string, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	return s.usedChains(ctx, address)
}

func (s *NFTService) usedChains(ctx context.Context, address string) ([]string, error) {
	data, err := s.client.Get(ctx, adapter.PathNFTUsedChains, map[string]string{"user_addr": address})
	if err != nil {
		return nil, err
	}
	return decodeList[string](data, adapter.PathNFTUsedChains)
}

// selectChains expands the all-chains selector into the address's NFT chains
func (s *NFTService) selectChains(ctx context.Context, address string, chain types.ChainName) ([]string, error) {
	if !chain.IsAll() {
		return []string{string(chain)}, nil
	}
	return s.usedChains(ctx, address)
}

func (s *NFTService) collections(ctx context.Context, address string, chain types.ChainName) ([]chainPayload, error) {
	chains, err := s.selectChains(ctx, address, chain)
	if err != nil {
		return nil, err
	}
	return s.poller.fetchAll(ctx, adapter.PathCollectionList, address, chains)
}

// CollectionListRaw returns the owned collections per chain as DeBank sends them,
// in the order the chains were queried. Chains whose job never finished are absent.
func (s *NFTService) CollectionListRaw(ctx context.Context, address string, chain types.ChainName) (models.Keyed[jsoniter.RawMessage], error) {
	var raw models.Keyed[jsoniter.RawMessage]
	address, err := normalizeAddress(address)
	if err != nil {
		return raw, err
	}
	payloads, err := s.collections(ctx, address, chain)
	if err != nil {
		return raw, err
	}
	for _, p := range payloads {
		raw.Set(p.Chain, p.Data)
	}
	return raw, nil
}

// CollectionList returns the owned NFTs as chains. Chains whose job never
// finished are absent.
func (s *NFTService) CollectionList(ctx context.Context, address string, chain types.ChainName) (models.ChainMap, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return models.ChainMap{}, err
	}
	payloads, err := s.collections(ctx, address, chain)
	if err != nil {
		return models.ChainMap{}, err
	}

	var chains models.ChainMap
	for _, p := range payloads {
		collections, err := decodeList[mapper.RawCollection](p.Data, adapter.PathCollectionList)
		if err != nil {
			return models.ChainMap{}, err
		}
		chains = chains.Merge(mapper.MapChain(p.Chain, nil, nil, collections))
	}
	return chains, nil
}

// HistoryCollectionList returns a profit leaderboard per chain, most
// profitable chain first. Chains without entries are skipped.
func (s *NFTService) HistoryCollectionList(ctx context.Context, address string, chain types.ChainName) (models.Keyed[models.ProfitLeaderboard], error) {
	var result models.Keyed[models.ProfitLeaderboard]
	address, err := normalizeAddress(address)
	if err != nil {
		return result, err
	}
	chains, err := s.selectChains(ctx, address, chain)
	if err != nil {
		return result, err
	}
	payloads, err := s.poller.fetchAll(ctx, adapter.PathHistoryCollectionList, address, chains)
	if err != nil {
		return result, err
	}

	var boards []models.ProfitLeaderboard
	for _, p := range payloads {
		profits, err := decodeList[mapper.RawProfit](p.Data, adapter.PathHistoryCollectionList)
		if err != nil {
			return result, err
		}
		if len(profits) == 0 {
			continue
		}
		boards = append(boards, mapper.MapProfitLeaderboard(p.Chain, profits))
	}
	for _, board := range models.SortProfitLeaderboards(boards) {
		result.Set(board.Chain, board)
	}
	return result, nil
}

// HistoryList returns the NFT trading history per chain, in the order the
// chains were queried. opts may be nil.
func (s *NFTService) HistoryList(ctx context.Context, address string, chain types.ChainName, opts *NFTHistoryOptions) (models.Keyed[models.NFTHistory], error) {
	var histories models.Keyed[models.NFTHistory]
	address, err := normalizeAddress(address)
	if err != nil {
		return histories, err
	}
	chains, err := s.selectChains(ctx, address, chain)
	if err != nil {
		return histories, err
	}
	if opts == nil {
		opts = &NFTHistoryOptions{}
	}
	pageCount := opts.PageCount
	if pageCount <= 0 {
		pageCount = historyPageSize
	}

	for _, name := range chains {
		data, err := s.client.Get(ctx, adapter.PathNFTHistoryList, map[string]string{
			"user_addr":   address,
			"chain":       name,
			"type":        opts.Type,
			"anchor_time": opts.AnchorTime,
			"anchor_id":   opts.AnchorID,
			"page_count":  strconv.Itoa(pageCount),
			"direction":   opts.Direction,
		})
		if err != nil {
			return models.Keyed[models.NFTHistory]{}, err
		}
		var raw mapper.RawNFTHistory
		if !isEmptyPayload(data) {
			if err := mapper.Decode(data, &raw, adapter.PathNFTHistoryList); err != nil {
				return models.Keyed[models.NFTHistory]{}, err
			}
		}
		histories.Set(name, mapper.MapNFTHistory(name, address, raw))
	}
	return histories, nil
}
