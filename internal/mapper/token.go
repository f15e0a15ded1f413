package mapper

import (
	"github.com/debank-scanner/internal/models"
)

// MapToken converts a token object. USDValue is derived from amount and price.
func MapToken(raw RawToken) models.Token {
	token := models.Token{
		Chain:           raw.Chain,
		Symbol:          raw.Symbol,
		Amount:          raw.Amount,
		Price:           raw.Price,
		USDValue:        models.TokenUSDValue(raw.Amount, raw.Price),
		DisplaySymbol:   raw.DisplaySymbol,
		ID:              raw.ID,
		IsCore:          raw.IsCore,
		IsVerified:      raw.IsVerified,
		IsWallet:        raw.IsWallet,
		LogoURL:         raw.LogoURL,
		Name:            raw.Name,
		OptimizedSymbol: raw.OptimizedSymbol,
		ProtocolID:      raw.ProtocolID,
		TimeAt:          raw.TimeAt,
	}
	if raw.Decimals != nil {
		decimals := int(*raw.Decimals)
		token.Decimals = &decimals
	}
	return token
}

// MapTokens converts a token list, keeping its order
func MapTokens(raw []RawToken) []models.Token {
	if len(raw) == 0 {
		return nil
	}
	tokens := make([]models.Token, len(raw))
	for i, t := range raw {
		tokens[i] = MapToken(t)
	}
	return tokens
}

// mapOptionalToken converts a nested token, treating null and {} as absent
func mapOptionalToken(raw *RawToken) *models.Token {
	if raw == nil || *raw == (RawToken{}) {
		return nil
	}
	token := MapToken(*raw)
	return &token
}

func tokenValue(t *models.Token) float64 {
	if t == nil {
		return 0
	}
	return t.USDValue
}

// signedValue is amount*price without the floor TokenUSDValue applies, so
// that losses stay negative
func signedValue(t *models.Token) float64 {
	if t == nil || t.Amount == nil || t.Price == nil {
		return 0
	}
	return *t.Amount * *t.Price
}
