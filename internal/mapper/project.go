package mapper

import (
	"fmt"

	"github.com/debank-scanner/internal/models"
)

// MapPortfolioItem converts one project position. Tokens come from
// detail.supply_token_list when the key is present, else from detail.token.
func MapPortfolioItem(raw RawPortfolioItem) models.PortfolioItem {
	item := models.PortfolioItem{
		Name:        raw.Name,
		AssetDict:   raw.AssetDict,
		DetailTypes: raw.DetailTypes,
		Pool:        raw.Pool,
		ProxyDetail: raw.ProxyDetail,
		UpdateAt:    raw.UpdateAt,
	}
	if raw.PositionIndex != nil {
		item.PositionIndex = fmt.Sprint(raw.PositionIndex)
	}
	if raw.Stats != nil {
		item.AssetUSDValue = raw.Stats.AssetUSDValue
		item.DebtUSDValue = raw.Stats.DebtUSDValue
		item.NetUSDValue = raw.Stats.NetUSDValue
	}
	if raw.Details != nil {
		switch {
		case raw.Details.SupplyTokenList != nil:
			item.Tokens = models.SortTokens(MapTokens(raw.Details.SupplyTokenList))
		case raw.Details.Token != nil:
			item.Tokens = []models.Token{MapToken(*raw.Details.Token)}
		}
	}
	return item
}

// MapProject converts a project. USDValue sums the asset value of its items.
func MapProject(raw RawProject) models.Project {
	project := models.Project{
		Chain:                 raw.Chain,
		Name:                  raw.Name,
		SiteURL:               raw.SiteURL,
		HasSupportedPortfolio: raw.HasSupportedPortfolio,
		ID:                    raw.ID,
		IsTVL:                 raw.IsTVL,
		IsVisibleInDefi:       raw.IsVisibleInDefi,
		LogoURL:               raw.LogoURL,
		PlatformTokenID:       raw.PlatformTokenID,
		TagIDs:                raw.TagIDs,
	}
	if raw.TVL != nil {
		project.TVL = *raw.TVL
	}
	for _, ri := range raw.PortfolioItemList {
		item := MapPortfolioItem(ri)
		project.USDValue += item.AssetUSDValue
		project.PortfolioItems = append(project.PortfolioItems, item)
	}
	return project
}

// MapProjects converts a project list, keeping its order
func MapProjects(raw []RawProject) []models.Project {
	if len(raw) == 0 {
		return nil
	}
	projects := make([]models.Project, len(raw))
	for i, p := range raw {
		projects[i] = MapProject(p)
	}
	return projects
}
