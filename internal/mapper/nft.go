package mapper

import (
	"github.com/debank-scanner/internal/models"
)

// MapCollection converts collection metadata. The nft_list is not part of it.
func MapCollection(raw RawCollection) models.Collection {
	return models.Collection{
		Chain:           raw.Chain,
		Name:            raw.Name,
		ID:              raw.ID,
		Amount:          raw.Amount,
		SpentToken:      mapOptionalToken(raw.SpentToken),
		AvgPrice24h:     raw.AvgPrice24h,
		AvgPriceLast24h: raw.AvgPriceLast24h,
		FloorPrice:      raw.FloorPrice,
		FloorPrice24h:   raw.FloorPrice24h,
		MaxPrice24h:     raw.MaxPrice24h,
		MaxPriceLast24h: raw.MaxPriceLast24h,
		Volume24h:       raw.Volume24h,
		VolumeLast24h:   raw.VolumeLast24h,
		Description:     raw.Description,
		IsCore:          raw.IsCore,
		IsVisible:       raw.IsVisible,
		LogoURL:         raw.LogoURL,
		RankAt:          raw.RankAt,
		Thirdparty:      raw.Thirdparty,
	}
}

// MapNFT converts an NFT. collection may be nil. A pay_token without a chain
// is an unresolved reference and is dropped.
func MapNFT(raw RawNFT, collection *models.Collection) models.NFT {
	nft := models.NFT{
		Chain:        raw.Chain,
		Collection:   collection,
		Name:         raw.Name,
		ContractID:   raw.ContractID,
		Amount:       raw.Amount,
		MintGasToken: mapOptionalToken(raw.MintGasToken),
		MintPayToken: mapOptionalToken(raw.MintPayToken),
		Content:      raw.Content,
		ContentType:  raw.ContentType,
		DetailURL:    raw.DetailURL,
		ID:           raw.ID,
		InnerID:      raw.InnerID,
		Minter:       raw.Minter,
		ThumbnailURL: raw.ThumbnailURL,
	}
	if raw.PayToken != nil && raw.PayToken.Chain != "" {
		nft.PayToken = mapOptionalToken(raw.PayToken)
	}
	nft.USDSpent = tokenValue(nft.MintGasToken) + tokenValue(nft.MintPayToken) + tokenValue(nft.PayToken)
	return nft
}

// MapCollectionNFTs flattens the nft_list of every collection. Each NFT gets
// its own copy of the owning collection.
func MapCollectionNFTs(collections []RawCollection) []models.NFT {
	var nfts []models.NFT
	for _, rc := range collections {
		for _, rn := range rc.NFTList {
			collection := MapCollection(rc)
			nfts = append(nfts, MapNFT(rn, &collection))
		}
	}
	return nfts
}

// MapProfit converts one leaderboard entry. The whole entry doubles as the
// collection description. USDProfit is negative for a loss.
func MapProfit(raw RawProfit) models.Profit {
	profit := models.Profit{
		Chain:        raw.Chain,
		Collection:   MapCollection(raw.RawCollection),
		ProfitToken:  mapOptionalToken(raw.ProfitToken),
		SpentToken:   mapOptionalToken(raw.SpentToken),
		RevenueToken: mapOptionalToken(raw.RevenueToken),
		Amount:       raw.Amount,
		MintCount:    raw.MintCount,
		BuyCount:     raw.BuyCount,
		SellCount:    raw.SellCount,
	}
	profit.USDProfit = signedValue(profit.ProfitToken)
	return profit
}

// MapProfitLeaderboard converts a chain's profit entries into a leaderboard
func MapProfitLeaderboard(chain string, raw []RawProfit) models.ProfitLeaderboard {
	profits := make([]models.Profit, len(raw))
	for i, p := range raw {
		profits[i] = MapProfit(p)
	}
	return models.NewProfitLeaderboard(chain, profits)
}

// MapNFTTx converts one NFT trade. The NFT carries the entry's collection.
func MapNFTTx(chain string, raw RawNFTTx) models.NFTTx {
	tx := models.NFTTx{
		Chain:    chain,
		Type:     raw.Type,
		TxID:     raw.TxID,
		TimeAt:   raw.TimeAt,
		Address:  raw.UserAddr,
		PayToken: mapOptionalToken(raw.PayToken),
		ID:       raw.ID,
	}
	if raw.NFT != nil {
		var collection *models.Collection
		if raw.Collection != nil {
			c := MapCollection(*raw.Collection)
			collection = &c
		}
		nft := MapNFT(*raw.NFT, collection)
		tx.NFT = &nft
	}
	return tx
}

// MapNFTHistory converts a chain's NFT trading history
func MapNFTHistory(chain, address string, raw RawNFTHistory) models.NFTHistory {
	history := models.NFTHistory{Chain: chain, Address: address}
	for _, entry := range raw.HistoryList {
		history.Txs = append(history.Txs, MapNFTTx(chain, entry))
	}
	return history
}
