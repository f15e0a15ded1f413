package service

import (
	"context"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/logging"
	"github.com/debank-scanner/internal/mapper"
	"github.com/debank-scanner/internal/models"
	"github.com/debank-scanner/internal/types"
)

// BalanceService combines tokens, NFTs and projects into one view per chain
type BalanceService struct {
	tokens    *TokenService
	nfts      *NFTService
	portfolio *PortfolioService
	logger    *logging.Logger
}

// NewBalanceService creates a new balance service
func NewBalanceService(tokens *TokenService, nfts *NFTService, portfolio *PortfolioService) *BalanceService {
	return &BalanceService{
		tokens:    tokens,
		nfts:      nfts,
		portfolio: portfolio,
		logger:    logging.GetGlobalLogger().Named("balance"),
	}
}

// GetBalance returns the address's holdings on chain, or on every chain for
// the all-chains selector. Tokens come from live balances for one chain and
// from cached balances for all chains. NFTs are fetched only when parseNFTs
// is set. The result is ordered by descending USD value.
func (s *BalanceService) GetBalance(ctx context.Context, address string, chain types.ChainName, parseNFTs bool) (models.ChainMap, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return models.ChainMap{}, err
	}

	if chain.IsAll() {
		return s.allChains(ctx, address, parseNFTs)
	}
	return s.oneChain(ctx, address, chain, parseNFTs)
}

func (s *BalanceService) oneChain(ctx context.Context, address string, chain types.ChainName, parseNFTs bool) (models.ChainMap, error) {
	name := string(chain)

	tokenChain, err := s.tokens.balanceChain(ctx, address, name)
	if err != nil {
		return models.ChainMap{}, err
	}
	chains := models.NewChainMap(tokenChain)

	if parseNFTs {
		data, ready, err := s.nfts.poller.fetch(ctx, adapter.PathCollectionList, address, name)
		if err != nil {
			return models.ChainMap{}, err
		}
		if ready {
			collections, err := decodeList[mapper.RawCollection](data, adapter.PathCollectionList)
			if err != nil {
				return models.ChainMap{}, err
			}
			chains = chains.Merge(mapper.MapChain(name, nil, nil, collections))
		}
	}

	projects, err := s.portfolio.ProjectList(ctx, address)
	if err != nil {
		return models.ChainMap{}, err
	}
	if projectChain, ok := projects.Get(name); ok {
		chains = chains.Merge(projectChain)
	}

	return chains, nil
}

func (s *BalanceService) allChains(ctx context.Context, address string, parseNFTs bool) (models.ChainMap, error) {
	chains, err := s.tokens.CacheBalanceList(ctx, address)
	if err != nil {
		return models.ChainMap{}, err
	}

	if parseNFTs {
		nftChains, err := s.nfts.CollectionList(ctx, address, types.ChainAll)
		if err != nil {
			return models.ChainMap{}, err
		}
		chains = chains.MergeAll(nftChains)
	}

	projects, err := s.portfolio.ProjectList(ctx, address)
	if err != nil {
		return models.ChainMap{}, err
	}
	chains = chains.MergeAll(projects)

	s.logger.WithFields(map[string]interface{}{
		"chains":   chains.Len(),
		"usdValue": chains.TotalUSDValue(),
	}).Debug("Merged balances across chains")
	return chains, nil
}
