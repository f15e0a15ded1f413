// Package mapper converts DeBank payloads into domain models.
//
// Payloads are first decoded into the wire types below, which mirror the API
// field names. Every wire field is optional. The Map functions then apply one
// default policy per field:
//
//	Entity         Field                                      When absent or null
//	Token          amount, price, decimals, time_at           nil
//	Token          usd_value                                  0 unless amount and price are both non-zero
//	Token          string and boolean fields                  "" and false
//	Collection     spent_token                                nil
//	Collection     price, volume and rank stats               nil
//	NFT            mint_gas_token, mint_pay_token             nil unless a non-empty object
//	NFT            pay_token                                  nil unless the object carries chain
//	PortfolioItem  stats.asset/debt/net_usd_value             0
//	PortfolioItem  tokens                                     supply_token_list, else [token], else nil
//	Project        tvl                                        0
//	Project        has_supported_portfolio, is_tvl,
//	               is_visible_in_defi                         false
//	Project        usd_value                                  sum of item asset values, 0 without items
//	Tx             type                                       cate_id, else tx.name, else ""
//	Tx             project                                    nil when project_id is not in project_dict
//	Tx item        token_dict entry                           item skipped and logged when missing
//	Tx             token_approve                              nil when its token_dict entry is missing
//	Curve          usd_value_list                             required, InvalidDataError when empty
package mapper

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/debank-scanner/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode unmarshals a data payload into v, reporting failures as invalid data
func Decode(data jsoniter.RawMessage, v interface{}, what string) error {
	if len(data) == 0 {
		return errors.NewInvalidDataError(what+": empty payload", nil)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewInvalidDataError("decode "+what, err)
	}
	return nil
}

// RawToken is a token object as DeBank sends it
type RawToken struct {
	Chain           string   `json:"chain"`
	Symbol          string   `json:"symbol"`
	Amount          *float64 `json:"amount"`
	Price           *float64 `json:"price"`
	Decimals        *float64 `json:"decimals"`
	DisplaySymbol   string   `json:"display_symbol"`
	ID              string   `json:"id"`
	IsCore          bool     `json:"is_core"`
	IsVerified      bool     `json:"is_verified"`
	IsWallet        bool     `json:"is_wallet"`
	LogoURL         string   `json:"logo_url"`
	Name            string   `json:"name"`
	OptimizedSymbol string   `json:"optimized_symbol"`
	ProtocolID      string   `json:"protocol_id"`
	TimeAt          *float64 `json:"time_at"`
}

// RawCollection is an NFT collection, optionally with the owned NFTs
type RawCollection struct {
	Chain           string                 `json:"chain"`
	Name            string                 `json:"name"`
	ID              string                 `json:"id"`
	Amount          *float64               `json:"amount"`
	SpentToken      *RawToken              `json:"spent_token"`
	AvgPrice24h     *float64               `json:"avg_price_24h"`
	AvgPriceLast24h *float64               `json:"avg_price_last_24h"`
	FloorPrice      *float64               `json:"floor_price"`
	FloorPrice24h   *float64               `json:"floor_price_24h"`
	MaxPrice24h     *float64               `json:"max_price_24h"`
	MaxPriceLast24h *float64               `json:"max_price_last_24h"`
	Volume24h       *float64               `json:"volume_24h"`
	VolumeLast24h   *float64               `json:"volume_last_24h"`
	Description     string                 `json:"description"`
	IsCore          bool                   `json:"is_core"`
	IsVisible       bool                   `json:"is_visible"`
	LogoURL         string                 `json:"logo_url"`
	RankAt          *float64               `json:"rank_at"`
	Thirdparty      map[string]interface{} `json:"thirdparty"`
	NFTList         []RawNFT               `json:"nft_list"`
}

// RawNFT is an NFT object as DeBank sends it
type RawNFT struct {
	Chain        string    `json:"chain"`
	Name         string    `json:"name"`
	ContractID   string    `json:"contract_id"`
	Amount       *float64  `json:"amount"`
	MintGasToken *RawToken `json:"mint_gas_token"`
	MintPayToken *RawToken `json:"mint_pay_token"`
	PayToken     *RawToken `json:"pay_token"`
	Content      string    `json:"content"`
	ContentType  string    `json:"content_type"`
	DetailURL    string    `json:"detail_url"`
	ID           string    `json:"id"`
	InnerID      string    `json:"inner_id"`
	Minter       string    `json:"minter"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

// RawProfit is a collection entry of the NFT profit leaderboard
type RawProfit struct {
	RawCollection
	MintCount    *float64  `json:"mint_count"`
	BuyCount     *float64  `json:"buy_count"`
	SellCount    *float64  `json:"sell_count"`
	ProfitToken  *RawToken `json:"profit_token"`
	RevenueToken *RawToken `json:"revenue_token"`
}

// RawStats holds a portfolio item's USD totals
type RawStats struct {
	AssetUSDValue float64 `json:"asset_usd_value"`
	DebtUSDValue  float64 `json:"debt_usd_value"`
	NetUSDValue   float64 `json:"net_usd_value"`
}

// RawPortfolioDetails holds the token breakdown of a portfolio item
type RawPortfolioDetails struct {
	SupplyTokenList []RawToken `json:"supply_token_list"`
	Token           *RawToken  `json:"token"`
}

// RawPortfolioItem is one position of a project
type RawPortfolioItem struct {
	Name          string                 `json:"name"`
	Stats         *RawStats              `json:"stats"`
	AssetDict     map[string]interface{} `json:"asset_dict"`
	DetailTypes   []string               `json:"detail_types"`
	Pool          map[string]interface{} `json:"pool"`
	PositionIndex interface{}            `json:"position_index"`
	ProxyDetail   map[string]interface{} `json:"proxy_detail"`
	UpdateAt      *float64               `json:"update_at"`
	Details       *RawPortfolioDetails   `json:"details"`
}

// RawProject is a DeFi project with the address's positions
type RawProject struct {
	Chain                 string             `json:"chain"`
	Name                  string             `json:"name"`
	SiteURL               string             `json:"site_url"`
	TVL                   *float64           `json:"tvl"`
	HasSupportedPortfolio bool               `json:"has_supported_portfolio"`
	ID                    string             `json:"id"`
	IsTVL                 bool               `json:"is_tvl"`
	IsVisibleInDefi       bool               `json:"is_visible_in_defi"`
	LogoURL               string             `json:"logo_url"`
	PlatformTokenID       string             `json:"platform_token_id"`
	TagIDs                []string           `json:"tag_ids"`
	PortfolioItemList     []RawPortfolioItem `json:"portfolio_item_list"`
}

// RawTxMeta is the on-chain part of a history entry
type RawTxMeta struct {
	Name      string   `json:"name"`
	FromAddr  string   `json:"from_addr"`
	ToAddr    string   `json:"to_addr"`
	EthGasFee *float64 `json:"eth_gas_fee"`
	USDGasFee *float64 `json:"usd_gas_fee"`
}

// RawTxItem references a token_dict entry moved by a transaction
type RawTxItem struct {
	TokenID string   `json:"token_id"`
	Amount  *float64 `json:"amount"`
}

// RawTokenApprove references the token_dict entry an approval covers
type RawTokenApprove struct {
	TokenID string   `json:"token_id"`
	Value   *float64 `json:"value"`
}

// RawTx is one history_list entry
type RawTx struct {
	Chain        string           `json:"chain"`
	CateID       string           `json:"cate_id"`
	ID           string           `json:"id"`
	TimeAt       *float64         `json:"time_at"`
	Tx           *RawTxMeta       `json:"tx"`
	OtherAddr    string           `json:"other_addr"`
	Receives     []RawTxItem      `json:"receives"`
	Sends        []RawTxItem      `json:"sends"`
	TokenApprove *RawTokenApprove `json:"token_approve"`
	ProjectID    string           `json:"project_id"`
}

// RawHistoryPage is the payload of history/list. TokenDict entries stay raw
// because each may describe a token or an NFT.
type RawHistoryPage struct {
	HistoryList []RawTx                        `json:"history_list"`
	ProjectDict map[string]RawProject          `json:"project_dict"`
	TokenDict   map[string]jsoniter.RawMessage `json:"token_dict"`
}

// RawNFTTx is one entry of the NFT trading history
type RawNFTTx struct {
	Type       string         `json:"type"`
	TxID       string         `json:"tx_id"`
	TimeAt     *float64       `json:"time_at"`
	UserAddr   string         `json:"user_addr"`
	NFT        *RawNFT        `json:"nft"`
	Collection *RawCollection `json:"collection"`
	PayToken   *RawToken      `json:"pay_token"`
	ID         string         `json:"id"`
}

// RawNFTHistory is the payload of nft/history_list
type RawNFTHistory struct {
	HistoryList []RawNFTTx `json:"history_list"`
}

// RawUser is the payload of user/addr
type RawUser struct {
	AccountID        string                 `json:"account_id"`
	Avatar           interface{}            `json:"avatar"`
	Comment          string                 `json:"comment"`
	CreateAt         *float64               `json:"create_at"`
	EmailVerified    bool                   `json:"email_verified"`
	FollowerCount    int                    `json:"follower_count"`
	FollowingCount   int                    `json:"following_count"`
	ID               string                 `json:"id"`
	IsContract       bool                   `json:"is_contract"`
	IsEditor         bool                   `json:"is_editor"`
	IsFollowed       bool                   `json:"is_followed"`
	IsFollowing      bool                   `json:"is_following"`
	IsMine           bool                   `json:"is_mine"`
	IsMirrorAuthor   bool                   `json:"is_mirror_author"`
	IsMultisigAddr   bool                   `json:"is_multisig_addr"`
	MarketStatus     string                 `json:"market_status"`
	Org              map[string]interface{} `json:"org"`
	ProtocolUSDValue *float64               `json:"protocol_usd_value"`
	Relation         string                 `json:"relation"`
	TVF              *float64               `json:"tvf"`
	USDValue         *float64               `json:"usd_value"`
	UsedChains       []string               `json:"used_chains"`
	WalletUSDValue   *float64               `json:"wallet_usd_value"`
}

// RawInfo is the payload of hi/user/info
type RawInfo struct {
	CreateAt            *float64 `json:"create_at"`
	ID                  string   `json:"id"`
	InitialPrice        *float64 `json:"initial_price"`
	OfferPrice          *float64 `json:"offer_price"`
	RepliedRate         *float64 `json:"replied_rate"`
	UnchargedOfferCount int      `json:"uncharged_offer_count"`
	UnchargedOfferValue *float64 `json:"uncharged_offer_value"`
	UnreadMessageCount  int      `json:"unread_message_count"`
	User                *RawUser `json:"user"`
}

// RawCurve is the payload of asset/net_curve_24h
type RawCurve struct {
	USDValueList [][]float64 `json:"usd_value_list"`
}

// RawJob is the payload of the asynchronous NFT endpoints
type RawJob struct {
	Job    jsoniter.RawMessage `json:"job"`
	Result *struct {
		Data jsoniter.RawMessage `json:"data"`
	} `json:"result"`
}

// RawTotalBalance is the payload of user/total_balance
type RawTotalBalance struct {
	TotalUSDValue float64 `json:"total_usd_value"`
}

// RawTokenPrice is the payload of history/token_price
type RawTokenPrice struct {
	Price float64 `json:"price"`
}
