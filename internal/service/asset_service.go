package service

import (
	"context"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/mapper"
	"github.com/debank-scanner/internal/models"
)

// AssetService reads an address's asset value over time
type AssetService struct {
	client *adapter.Client
}

// NewAssetService creates a new asset service
func NewAssetService(client *adapter.Client) *AssetService {
	return &AssetService{client: client}
}

// NetCurve24h returns the net asset value of address over the last 24 hours
func (s *AssetService) NetCurve24h(ctx context.Context, address string) (*models.Curve, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, adapter.PathNetCurve24h, map[string]string{"user_addr": address})
	if err != nil {
		return nil, err
	}

	var raw mapper.RawCurve
	if err := mapper.Decode(data, &raw, adapter.PathNetCurve24h); err != nil {
		return nil, err
	}
	curve, err := mapper.MapCurve(raw)
	if err != nil {
		return nil, err
	}
	return &curve, nil
}
