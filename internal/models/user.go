package models

// User is a DeBank profile
type User struct {
	AccountID        string                 `json:"account_id,omitempty"`
	Avatar           interface{}            `json:"avatar,omitempty"`
	Comment          string                 `json:"comment,omitempty"`
	CreateAt         *float64               `json:"create_at,omitempty"`
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
	MarketStatus     string                 `json:"market_status,omitempty"`
	Org              map[string]interface{} `json:"org,omitempty"`
	ProtocolUSDValue *float64               `json:"protocol_usd_value,omitempty"`
	Relation         string                 `json:"relation,omitempty"`
	TVF              *float64               `json:"tvf,omitempty"`
	USDValue         *float64               `json:"usd_value,omitempty"`
	UsedChains       []string               `json:"used_chains,omitempty"`
	WalletUSDValue   *float64               `json:"wallet_usd_value,omitempty"`
}

// Info is the messaging profile attached to a DeBank user
type Info struct {
	CreateAt            *float64 `json:"create_at,omitempty"`
	ID                  string   `json:"id"`
	InitialPrice        *float64 `json:"initial_price,omitempty"`
	OfferPrice          *float64 `json:"offer_price,omitempty"`
	RepliedRate         *float64 `json:"replied_rate,omitempty"`
	UnchargedOfferCount int      `json:"uncharged_offer_count"`
	UnchargedOfferValue *float64 `json:"uncharged_offer_value,omitempty"`
	UnreadMessageCount  int      `json:"unread_message_count"`
	User                *User    `json:"user,omitempty"`
}

// Mark is one sample of a value curve
type Mark struct {
	Timestamp int64   `json:"timestamp"`
	USDValue  float64 `json:"usd_value"`
}

// Curve is an address's asset value over time with change from first to last sample
type Curve struct {
	PercentChange float64 `json:"percent_change"`
	USDChange     float64 `json:"usd_change"`
	Marks         []Mark  `json:"marks"`
}
