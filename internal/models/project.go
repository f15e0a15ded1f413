package models

import "sort"

// PortfolioItem is one position inside a project, e.g. a single pool deposit
type PortfolioItem struct {
	Name          string                 `json:"name"`
	AssetUSDValue float64                `json:"asset_usd_value"`
	DebtUSDValue  float64                `json:"debt_usd_value"`
	NetUSDValue   float64                `json:"net_usd_value"`
	Tokens        []Token                `json:"tokens,omitempty"`
	AssetDict     map[string]interface{} `json:"asset_dict,omitempty"`
	DetailTypes   []string               `json:"detail_types,omitempty"`
	Pool          map[string]interface{} `json:"pool,omitempty"`
	PositionIndex string                 `json:"position_index,omitempty"`
	ProxyDetail   map[string]interface{} `json:"proxy_detail,omitempty"`
	UpdateAt      *float64               `json:"update_at,omitempty"`
}

// Project is a DeFi protocol holding part of an address's assets
type Project struct {
	Chain                 string          `json:"chain"`
	Name                  string          `json:"name"`
	SiteURL               string          `json:"site_url,omitempty"`
	TVL                   float64         `json:"tvl"`
	USDValue              float64         `json:"usd_value"`
	PortfolioItems        []PortfolioItem `json:"portfolio_item_list,omitempty"`
	HasSupportedPortfolio bool            `json:"has_supported_portfolio"`
	ID                    string          `json:"id"`
	IsTVL                 bool            `json:"is_tvl"`
	IsVisibleInDefi       bool            `json:"is_visible_in_defi"`
	LogoURL               string          `json:"logo_url,omitempty"`
	PlatformTokenID       string          `json:"platform_token_id,omitempty"`
	TagIDs                []string        `json:"tag_ids,omitempty"`
}

// SortProjects returns a copy of projects sorted by descending USD value, stable on ties
func SortProjects(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	sorted := make([]Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].USDValue > sorted[j].USDValue
	})
	return sorted
}
