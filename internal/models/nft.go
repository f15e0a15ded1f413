package models

import "sort"

// Collection describes an NFT collection and its market statistics
type Collection struct {
	Chain           string                 `json:"chain"`
	Name            string                 `json:"name"`
	ID              string                 `json:"id"`
	Amount          *float64               `json:"amount,omitempty"`
	SpentToken      *Token                 `json:"spent_token,omitempty"`
	AvgPrice24h     *float64               `json:"avg_price_24h,omitempty"`
	AvgPriceLast24h *float64               `json:"avg_price_last_24h,omitempty"`
	FloorPrice      *float64               `json:"floor_price,omitempty"`
	FloorPrice24h   *float64               `json:"floor_price_24h,omitempty"`
	MaxPrice24h     *float64               `json:"max_price_24h,omitempty"`
	MaxPriceLast24h *float64               `json:"max_price_last_24h,omitempty"`
	Volume24h       *float64               `json:"volume_24h,omitempty"`
	VolumeLast24h   *float64               `json:"volume_last_24h,omitempty"`
	Description     string                 `json:"description,omitempty"`
	IsCore          bool                   `json:"is_core"`
	IsVisible       bool                   `json:"is_visible"`
	LogoURL         string                 `json:"logo_url,omitempty"`
	RankAt          *float64               `json:"rank_at,omitempty"`
	Thirdparty      map[string]interface{} `json:"thirdparty,omitempty"`
}

// NFT represents a single owned or transferred NFT
type NFT struct {
	Chain        string      `json:"chain"`
	Collection   *Collection `json:"collection,omitempty"`
	Name         string      `json:"name"`
	ContractID   string      `json:"contract_id,omitempty"`
	Amount       *float64    `json:"amount,omitempty"`
	USDSpent     float64     `json:"usd_spent"`
	MintGasToken *Token      `json:"mint_gas_token,omitempty"`
	MintPayToken *Token      `json:"mint_pay_token,omitempty"`
	PayToken     *Token      `json:"pay_token,omitempty"`
	Content      string      `json:"content,omitempty"`
	ContentType  string      `json:"content_type,omitempty"`
	DetailURL    string      `json:"detail_url,omitempty"`
	ID           string      `json:"id"`
	InnerID      string      `json:"inner_id,omitempty"`
	Minter       string      `json:"minter,omitempty"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
}

// SortNFTs returns a copy of nfts sorted by descending USD spent, stable on ties
func SortNFTs(nfts []NFT) []NFT {
	if nfts == nil {
		return nil
	}
	sorted := make([]NFT, len(nfts))
	copy(sorted, nfts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].USDSpent > sorted[j].USDSpent
	})
	return sorted
}

// Profit is one collection's trading result for an address
type Profit struct {
	Chain        string     `json:"chain"`
	Collection   Collection `json:"collection"`
	USDProfit    float64    `json:"usd_profit"`
	ProfitToken  *Token     `json:"profit_token,omitempty"`
	SpentToken   *Token     `json:"spent_token,omitempty"`
	RevenueToken *Token     `json:"revenue_token,omitempty"`
	Amount       *float64   `json:"amount,omitempty"`
	MintCount    *float64   `json:"mint_count,omitempty"`
	BuyCount     *float64   `json:"buy_count,omitempty"`
	SellCount    *float64   `json:"sell_count,omitempty"`
}

// ProfitLeaderboard aggregates an address's collection profits on one chain
type ProfitLeaderboard struct {
	Chain     string   `json:"chain"`
	USDProfit float64  `json:"usd_profit"`
	Profits   []Profit `json:"profits"`
}

// NewProfitLeaderboard sums the profits in their given order
func NewProfitLeaderboard(chain string, profits []Profit) ProfitLeaderboard {
	board := ProfitLeaderboard{Chain: chain, Profits: make([]Profit, len(profits))}
	copy(board.Profits, profits)
	for _, p := range profits {
		board.USDProfit += p.USDProfit
	}
	return board
}

// SortProfitLeaderboards returns a copy sorted by descending USD profit
func SortProfitLeaderboards(boards []ProfitLeaderboard) []ProfitLeaderboard {
	sorted := make([]ProfitLeaderboard, len(boards))
	copy(sorted, boards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].USDProfit > sorted[j].USDProfit
	})
	return sorted
}

// NFTTx is one entry of an address's NFT trading history
type NFTTx struct {
	Chain    string   `json:"chain"`
	Type     string   `json:"type"`
	TxID     string   `json:"tx_id"`
	TimeAt   *float64 `json:"time_at,omitempty"`
	Address  string   `json:"address"`
	NFT      *NFT     `json:"nft,omitempty"`
	PayToken *Token   `json:"pay_token,omitempty"`
	ID       string   `json:"id"`
}

// NFTHistory is an address's NFT trading history on one chain
type NFTHistory struct {
	Chain   string  `json:"chain"`
	Address string  `json:"address"`
	Txs     []NFTTx `json:"txs,omitempty"`
}
