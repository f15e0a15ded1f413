// Package models defines the DeBank domain entities built by the mapper.
// Entities are immutable snapshots; every nested value is owned by its parent.
package models

import "sort"

// Token represents a fungible token position
type Token struct {
	Chain           string   `json:"chain"`
	Symbol          string   `json:"symbol"`
	Amount          *float64 `json:"amount,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Decimals        *int     `json:"decimals,omitempty"`
	USDValue        float64  `json:"usd_value"`
	DisplaySymbol   string   `json:"display_symbol,omitempty"`
	ID              string   `json:"id"`
	IsCore          bool     `json:"is_core"`
	IsVerified      bool     `json:"is_verified"`
	IsWallet        bool     `json:"is_wallet"`
	LogoURL         string   `json:"logo_url,omitempty"`
	Name            string   `json:"name"`
	OptimizedSymbol string   `json:"optimized_symbol,omitempty"`
	ProtocolID      string   `json:"protocol_id,omitempty"`
	TimeAt          *float64 `json:"time_at,omitempty"`
}

// TokenUSDValue returns the value of a holding: amount*price when both are
// present and non-zero. A negative product counts as 0.
func TokenUSDValue(amount, price *float64) float64 {
	if amount == nil || price == nil || *amount == 0 || *price == 0 {
		return 0
	}
	value := *amount * *price
	if value < 0 {
		return 0
	}
	return value
}

// SortTokens returns a copy of tokens sorted by descending USD value, stable on ties
func SortTokens(tokens []Token) []Token {
	if tokens == nil {
		return nil
	}
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].USDValue > sorted[j].USDValue
	})
	return sorted
}
