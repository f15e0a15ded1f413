package mapper

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debank-scanner/internal/errors"
)

func decode[T any](t *testing.T, payload string) T {
	t.Helper()
	var v T
	require.NoError(t, Decode(jsoniter.RawMessage(payload), &v, "test payload"))
	return v
}

func TestDecode_Errors(t *testing.T) {
	var v RawToken
	err := Decode(nil, &v, "token")
	assert.True(t, errors.IsInvalidDataError(err))

	err = Decode(jsoniter.RawMessage(`{"amount": "lots"}`), &v, "token")
	assert.True(t, errors.IsInvalidDataError(err))
}

func TestMapToken(t *testing.T) {
	raw := decode[RawToken](t, `{
		"chain": "eth", "symbol": "ETH", "amount": 2, "price": 1500,
		"decimals": 18, "id": "eth", "is_core": true, "time_at": 1483200000
	}`)

	token := MapToken(raw)

	assert.Equal(t, "eth", token.Chain)
	assert.Equal(t, 3000.0, token.USDValue)
	require.NotNil(t, token.Decimals)
	assert.Equal(t, 18, *token.Decimals)
	assert.True(t, token.IsCore)
	assert.False(t, token.IsVerified)
}

func TestMapToken_MissingPrice(t *testing.T) {
	token := MapToken(decode[RawToken](t, `{"chain": "eth", "symbol": "X", "amount": 5, "price": null}`))

	assert.Zero(t, token.USDValue)
	assert.Nil(t, token.Price)
	assert.Nil(t, token.Decimals)
}

func TestMapNFT_USDSpent(t *testing.T) {
	raw := decode[RawNFT](t, `{
		"chain": "eth", "name": "Punk #1", "id": "1",
		"mint_gas_token": {"chain": "eth", "symbol": "ETH", "amount": 0.01, "price": 1000},
		"mint_pay_token": {},
		"pay_token": {"chain": "eth", "symbol": "ETH", "amount": 1, "price": 1000}
	}`)

	nft := MapNFT(raw, nil)

	assert.Nil(t, nft.MintPayToken, "empty object counts as absent")
	require.NotNil(t, nft.PayToken)
	assert.InDelta(t, 10+1000, nft.USDSpent, 1e-9)
}

func TestMapNFT_PayTokenWithoutChain(t *testing.T) {
	nft := MapNFT(decode[RawNFT](t, `{"name": "x", "pay_token": {"id": "eth", "amount": 1, "price": 5}}`), nil)

	assert.Nil(t, nft.PayToken)
	assert.Zero(t, nft.USDSpent)
}

func TestMapCollectionNFTs(t *testing.T) {
	collections := decode[[]RawCollection](t, `[
		{"chain": "eth", "name": "Punks", "id": "c1", "spent_token": {"chain": "eth", "symbol": "ETH", "amount": 2, "price": 10},
		 "nft_list": [{"name": "a", "chain": "eth"}, {"name": "b", "chain": "eth"}]},
		{"chain": "eth", "name": "Apes", "id": "c2", "nft_list": []}
	]`)

	nfts := MapCollectionNFTs(collections)

	require.Len(t, nfts, 2)
	require.NotNil(t, nfts[0].Collection)
	assert.Equal(t, "Punks", nfts[0].Collection.Name)
	require.NotNil(t, nfts[0].Collection.SpentToken)
	assert.Equal(t, 20.0, nfts[0].Collection.SpentToken.USDValue)
	assert.NotSame(t, nfts[0].Collection, nfts[1].Collection)
}

func TestMapProfitLeaderboard(t *testing.T) {
	raw := decode[[]RawProfit](t, `[
		{"chain": "eth", "name": "Punks", "id": "c1", "buy_count": 2,
		 "profit_token": {"chain": "eth", "symbol": "ETH", "amount": 1, "price": 100},
		 "spent_token": {"chain": "eth", "symbol": "ETH", "amount": 3, "price": 100}},
		{"chain": "eth", "name": "Apes", "id": "c2",
		 "profit_token": {"chain": "eth", "symbol": "ETH", "amount": 0.5, "price": 100}}
	]`)

	board := MapProfitLeaderboard("eth", raw)

	assert.InDelta(t, 150, board.USDProfit, 1e-9)
	require.Len(t, board.Profits, 2)
	assert.Equal(t, "Punks", board.Profits[0].Collection.Name)
	assert.Equal(t, 2.0, *board.Profits[0].BuyCount)
	require.NotNil(t, board.Profits[0].SpentToken)
	assert.Nil(t, board.Profits[1].SpentToken)
}

func TestMapProfitLeaderboard_Loss(t *testing.T) {
	raw := decode[[]RawProfit](t, `[
		{"chain": "bsc", "name": "Bunnies", "profit_token": {"chain": "bsc", "symbol": "BNB", "amount": 1, "price": 300}},
		{"chain": "bsc", "name": "Pancakes", "profit_token": {"chain": "bsc", "symbol": "BNB", "amount": -0.5, "price": 300}}
	]`)

	board := MapProfitLeaderboard("bsc", raw)

	require.Len(t, board.Profits, 2)
	assert.InDelta(t, -150, board.Profits[1].USDProfit, 1e-9)
	assert.Zero(t, board.Profits[1].ProfitToken.USDValue, "holding value stays non-negative")
	assert.InDelta(t, 150, board.USDProfit, 1e-9)
}

func TestMapNFTHistory(t *testing.T) {
	raw := decode[RawNFTHistory](t, `{"history_list": [
		{"type": "buy", "tx_id": "0xabc", "time_at": 1650000000, "user_addr": "0x1", "id": "h1",
		 "nft": {"name": "Punk", "chain": "eth"},
		 "collection": {"name": "Punks", "chain": "eth"},
		 "pay_token": {"chain": "eth", "symbol": "ETH", "amount": 1, "price": 100}}
	]}`)

	history := MapNFTHistory("eth", "0x1", raw)

	require.Len(t, history.Txs, 1)
	tx := history.Txs[0]
	assert.Equal(t, "eth", tx.Chain)
	assert.Equal(t, "0x1", tx.Address)
	require.NotNil(t, tx.NFT)
	require.NotNil(t, tx.NFT.Collection)
	assert.Equal(t, "Punks", tx.NFT.Collection.Name)
	assert.Equal(t, 100.0, tx.PayToken.USDValue)
}

func TestMapProject(t *testing.T) {
	raw := decode[RawProject](t, `{
		"chain": "eth", "name": "Aave", "id": "aave",
		"portfolio_item_list": [
			{"name": "Lending", "stats": {"asset_usd_value": 100, "debt_usd_value": 40, "net_usd_value": 60},
			 "details": {"supply_token_list": [
				{"chain": "eth", "symbol": "USDC", "amount": 10, "price": 1},
				{"chain": "eth", "symbol": "ETH", "amount": 1, "price": 90}]}},
			{"name": "Staked", "stats": {"asset_usd_value": 50},
			 "details": {"token": {"chain": "eth", "symbol": "AAVE", "amount": 1, "price": 50}}},
			{"name": "Empty", "details": {"supply_token_list": [], "token": {"symbol": "IGNORED"}}}
		]
	}`)

	project := MapProject(raw)

	assert.Zero(t, project.TVL)
	assert.False(t, project.IsTVL)
	assert.InDelta(t, 150, project.USDValue, 1e-9)
	require.Len(t, project.PortfolioItems, 3)

	lending := project.PortfolioItems[0]
	assert.Equal(t, 60.0, lending.NetUSDValue)
	require.Len(t, lending.Tokens, 2)
	assert.Equal(t, "ETH", lending.Tokens[0].Symbol)

	staked := project.PortfolioItems[1]
	require.Len(t, staked.Tokens, 1)
	assert.Equal(t, "AAVE", staked.Tokens[0].Symbol)

	assert.Empty(t, project.PortfolioItems[2].Tokens)
}

func TestMapTokenChains(t *testing.T) {
	raw := decode[[]RawToken](t, `[
		{"chain": "bsc", "symbol": "BNB", "amount": 1, "price": 300},
		{"chain": "eth", "symbol": "ETH", "amount": 1, "price": 2000},
		{"chain": "bsc", "symbol": "CAKE", "amount": 10, "price": 2}
	]`)

	m := MapTokenChains(raw)

	assert.Equal(t, []string{"eth", "bsc"}, m.Names())
	bsc, ok := m.Get("bsc")
	require.True(t, ok)
	assert.InDelta(t, 320, bsc.USDValue, 1e-9)
	assert.Equal(t, "BNB", bsc.Tokens[0].Symbol)
}

func TestMapProjectChains(t *testing.T) {
	raw := decode[[]RawProject](t, `[
		{"chain": "arb", "name": "GMX", "portfolio_item_list": [{"stats": {"asset_usd_value": 10}}]},
		{"chain": "eth", "name": "Aave", "portfolio_item_list": [{"stats": {"asset_usd_value": 20}}]}
	]`)

	m := MapProjectChains(raw)

	assert.Equal(t, []string{"eth", "arb"}, m.Names())
	assert.InDelta(t, 30, m.TotalUSDValue(), 1e-9)
}

func TestMapUserAndInfo(t *testing.T) {
	info := MapInfo(decode[RawInfo](t, `{
		"id": "0x1", "unread_message_count": 3,
		"user": {"id": "0x1", "avatar": {"url": "x"}, "used_chains": ["eth", "bsc"], "usd_value": 12.5}
	}`))

	assert.Equal(t, 3, info.UnreadMessageCount)
	require.NotNil(t, info.User)
	assert.Equal(t, []string{"eth", "bsc"}, info.User.UsedChains)
	assert.Equal(t, 12.5, *info.User.USDValue)
}

func TestMapCurve(t *testing.T) {
	curve, err := MapCurve(decode[RawCurve](t, `{"usd_value_list": [[1000, 100], [2000, 120], [3000, 150]]}`))

	require.NoError(t, err)
	assert.InDelta(t, 50, curve.PercentChange, 1e-9)
	assert.InDelta(t, 50, curve.USDChange, 1e-9)
	require.Len(t, curve.Marks, 3)
	assert.Equal(t, int64(1000), curve.Marks[0].Timestamp)
}

func TestMapCurve_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", `{"usd_value_list": []}`},
		{"missing", `{}`},
		{"zero start", `{"usd_value_list": [[1000, 0], [2000, 10]]}`},
		{"short sample", `{"usd_value_list": [[1000]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapCurve(decode[RawCurve](t, tt.payload))
			assert.True(t, errors.IsInvalidDataError(err))
		})
	}
}
