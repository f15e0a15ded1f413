package service

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/mapper"
	"github.com/debank-scanner/internal/models"
)

// PortfolioService reads the DeFi projects holding an address's assets
type PortfolioService struct {
	client *adapter.Client
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(client *adapter.Client) *PortfolioService {
	return &PortfolioService{client: client}
}

func (s *PortfolioService) fetch(ctx context.Context, address string) (jsoniter.RawMessage, error) {
	return s.client.Get(ctx, adapter.PathProjectList, map[string]string{"user_addr": address})
}

// ProjectListRaw returns the raw projects grouped by chain in the order
// DeBank lists them
func (s *PortfolioService) ProjectListRaw(ctx context.Context, address string) (models.Keyed[[]jsoniter.RawMessage], error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return models.Keyed[[]jsoniter.RawMessage]{}, err
	}
	data, err := s.fetch(ctx, address)
	if err != nil {
		return models.Keyed[[]jsoniter.RawMessage]{}, err
	}
	return groupByChain(data, adapter.PathProjectList)
}

// ProjectList returns the projects as chains, most valuable chain first
func (s *PortfolioService) ProjectList(ctx context.Context, address string) (models.ChainMap, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return models.ChainMap{}, err
	}
	data, err := s.fetch(ctx, address)
	if err != nil {
		return models.ChainMap{}, err
	}
	projects, err := decodeList[mapper.RawProject](data, adapter.PathProjectList)
	if err != nil {
		return models.ChainMap{}, err
	}
	return mapper.MapProjectChains(projects), nil
}
