package service

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/logging"
	"github.com/debank-scanner/internal/mapper"
	"github.com/debank-scanner/internal/models"
	"github.com/debank-scanner/internal/types"
)

// TokenService reads an address's token balances
type TokenService struct {
	client *adapter.Client
	users  *UserService
	logger *logging.Logger
}

// NewTokenService creates a new token service
func NewTokenService(client *adapter.Client, users *UserService) *TokenService {
	return &TokenService{
		client: client,
		users:  users,
		logger: logging.GetGlobalLogger().Named("token"),
	}
}

func (s *TokenService) balanceList(ctx context.Context, address, chain string) (jsoniter.RawMessage, error) {
	return s.client.Get(ctx, adapter.PathBalanceList, map[string]string{
		"user_addr": address,
		"is_all":    "false",
		"chain":     chain,
	})
}

func (s *TokenService) balanceChain(ctx context.Context, address, chain string) (models.Chain, error) {
	data, err := s.balanceList(ctx, address, chain)
	if err != nil {
		return models.Chain{}, err
	}
	tokens, err := decodeList[mapper.RawToken](data, adapter.PathBalanceList)
	if err != nil {
		return models.Chain{}, err
	}
	return mapper.MapChain(chain, tokens, nil, nil), nil
}

// BalanceListRaw returns the live token balances on chain as DeBank sends them
func (s *TokenService) BalanceListRaw(ctx context.Context, address string, chain types.ChainName) (jsoniter.RawMessage, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	if err := requireChain(chain); err != nil {
		return nil, err
	}
	return s.balanceList(ctx, address, string(chain))
}

// BalanceList returns the live token balances on chain
func (s *TokenService) BalanceList(ctx context.Context, address string, chain types.ChainName) (models.Chain, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return models.Chain{}, err
	}
	if err := requireChain(chain); err != nil {
		return models.Chain{}, err
	}
	return s.balanceChain(ctx, address, string(chain))
}

func (s *TokenService) cacheBalanceList(ctx context.Context, address string) (jsoniter.RawMessage, error) {
	return s.client.Get(ctx, adapter.PathCacheBalanceList, map[string]string{"user_addr": address})
}

// CacheBalanceListRaw returns the cached balances of every chain, grouped by
// chain in the order DeBank lists them
func (s *TokenService) CacheBalanceListRaw(ctx context.Context, address string) (models.Keyed[[]jsoniter.RawMessage], error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return models.Keyed[[]jsoniter.RawMessage]{}, err
	}
	data, err := s.cacheBalanceList(ctx, address)
	if err != nil {
		return models.Keyed[[]jsoniter.RawMessage]{}, err
	}
	return groupByChain(data, adapter.PathCacheBalanceList)
}

// CacheBalanceList returns the balances DeBank cached at the last live query,
// as chains, most valuable chain first
func (s *TokenService) CacheBalanceList(ctx context.Context, address string) (models.ChainMap, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return models.ChainMap{}, err
	}
	data, err := s.cacheBalanceList(ctx, address)
	if err != nil {
		return models.ChainMap{}, err
	}
	tokens, err := decodeList[mapper.RawToken](data, adapter.PathCacheBalanceList)
	if err != nil {
		return models.ChainMap{}, err
	}
	return mapper.MapTokenChains(tokens), nil
}

// CurrentBalanceList queries live balances on every chain the address has
// used. Chains without tokens are left out.
func (s *TokenService) CurrentBalanceList(ctx context.Context, address string) (models.ChainMap, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return models.ChainMap{}, err
	}
	user, err := s.users.addr(ctx, address)
	if err != nil {
		return models.ChainMap{}, err
	}

	var chains models.ChainMap
	for _, name := range user.UsedChains {
		chain, err := s.balanceChain(ctx, address, name)
		if err != nil {
			return models.ChainMap{}, err
		}
		chains = chains.Merge(chain)
	}
	chains = chains.Filter(func(c models.Chain) bool { return !c.IsEmpty() })

	s.logger.WithFields(map[string]interface{}{
		"usedChains": len(user.UsedChains),
		"withTokens": chains.Len(),
	}).Debug("Collected current balances")
	return chains, nil
}
