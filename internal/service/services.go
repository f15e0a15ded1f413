package service

import (
	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/retry"
)

// Services bundles every endpoint service over one client
type Services struct {
	Asset     *AssetService
	History   *HistoryService
	NFT       *NFTService
	Portfolio *PortfolioService
	Token     *TokenService
	User      *UserService
	Balance   *BalanceService
}

// NewServices wires all services to client. A nil pollConfig uses the defaults.
func NewServices(client *adapter.Client, pollConfig *retry.PollConfig) *Services {
	users := NewUserService(client)
	tokens := NewTokenService(client, users)
	nfts := NewNFTService(client, pollConfig)
	portfolio := NewPortfolioService(client)

	return &Services{
		Asset:     NewAssetService(client),
		History:   NewHistoryService(client),
		NFT:       nfts,
		Portfolio: portfolio,
		Token:     tokens,
		User:      users,
		Balance:   NewBalanceService(tokens, nfts, portfolio),
	}
}
