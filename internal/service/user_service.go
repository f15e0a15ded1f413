package service

import (
	"context"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/mapper"
	"github.com/debank-scanner/internal/models"
)

// UserService reads DeBank profiles
type UserService struct {
	client *adapter.Client
}

// NewUserService creates a new user service
func NewUserService(client *adapter.Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) addr(ctx context.Context, address string) (mapper.RawUser, error) {
	var user mapper.RawUser
	data, err := s.client.Get(ctx, adapter.PathUserAddr, map[string]string{"addr": address})
	if err != nil {
		return user, err
	}
	err = mapper.Decode(data, &user, adapter.PathUserAddr)
	return user, err
}

// Addr returns the DeBank profile of address
func (s *UserService) Addr(ctx context.Context, address string) (*models.User, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	raw, err := s.addr(ctx, address)
	if err != nil {
		return nil, err
	}
	user := mapper.MapUser(raw)
	return &user, nil
}

// Info returns the messaging profile of address
func (s *UserService) Info(ctx context.Context, address string) (*models.Info, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, adapter.PathUserInfo, map[string]string{"id": address})
	if err != nil {
		return nil, err
	}
	var raw mapper.RawInfo
	if err := mapper.Decode(data, &raw, adapter.PathUserInfo); err != nil {
		return nil, err
	}
	info := mapper.MapInfo(raw)
	return &info, nil
}

// TotalBalance returns the USD value of everything address holds
func (s *UserService) TotalBalance(ctx context.Context, address string) (float64, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return 0, err
	}
	data, err := s.client.Get(ctx, adapter.PathUserTotalBalance, map[string]string{"addr": address})
	if err != nil {
		return 0, err
	}
	var raw mapper.RawTotalBalance
	if err := mapper.Decode(data, &raw, adapter.PathUserTotalBalance); err != nil {
		return 0, err
	}
	return raw.TotalUSDValue, nil
}
