package mapper

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/debank-scanner/internal/errors"
	"github.com/debank-scanner/internal/logging"
	"github.com/debank-scanner/internal/models"
	"github.com/debank-scanner/internal/types"
)

// IsTokenFragment reports whether a token_dict entry describes a fungible
// token: it must carry numeric decimals and a symbol.
func IsTokenFragment(raw RawToken) bool {
	return raw.Decimals != nil && *raw.Decimals >= 0 && raw.Symbol != ""
}

// ResolveTransactionItem looks up the referenced token_dict entry and builds
// a Token when the entry passes IsTokenFragment, an NFT otherwise. The item's
// amount replaces the entry's amount. An NFT pay_token is itself a token_dict
// reference and is resolved by id.
func ResolveTransactionItem(item RawTxItem, tokenDict map[string]jsoniter.RawMessage) (models.TransactionItem, error) {
	fragment, ok := tokenDict[item.TokenID]
	if !ok {
		return models.TransactionItem{}, errors.NewInvalidDataError(
			fmt.Sprintf("token_id %q not found in token_dict", item.TokenID), nil)
	}

	var token RawToken
	if err := json.Unmarshal(fragment, &token); err == nil && IsTokenFragment(token) {
		token.Amount = item.Amount
		return models.TokenItem(MapToken(token)), nil
	}

	var nft RawNFT
	if err := json.Unmarshal(fragment, &nft); err != nil {
		return models.TransactionItem{}, errors.NewInvalidDataError(
			fmt.Sprintf("token_dict entry %q is neither a token nor an NFT", item.TokenID), err)
	}
	nft.Amount = item.Amount
	nft.PayToken = resolvePayToken(nft.PayToken, tokenDict)
	return models.NFTItem(MapNFT(nft, nil)), nil
}

func resolvePayToken(ref *RawToken, tokenDict map[string]jsoniter.RawMessage) *RawToken {
	if ref == nil || *ref == (RawToken{}) {
		return nil
	}
	fragment, ok := tokenDict[ref.ID]
	if !ok {
		return nil
	}
	var token RawToken
	if err := json.Unmarshal(fragment, &token); err != nil {
		return nil
	}
	return &token
}

// resolveItems resolves every item, skipping those whose token_dict entry is
// missing or unreadable
func resolveItems(txID string, items []RawTxItem, tokenDict map[string]jsoniter.RawMessage) []models.TransactionItem {
	if len(items) == 0 {
		return nil
	}
	resolved := make([]models.TransactionItem, 0, len(items))
	for _, item := range items {
		ti, err := ResolveTransactionItem(item, tokenDict)
		if err != nil {
			logger().WithError(err).WithFields(map[string]interface{}{
				"tx":      txID,
				"tokenID": item.TokenID,
			}).Warn("Skipping unresolved transaction item")
			continue
		}
		resolved = append(resolved, ti)
	}
	return resolved
}

// resolveApprove builds the approved token. It returns nil when the token_dict
// entry is missing or unreadable.
func resolveApprove(txID string, approve *RawTokenApprove, tokenDict map[string]jsoniter.RawMessage) *models.Token {
	if approve == nil || approve.TokenID == "" {
		return nil
	}
	fields := map[string]interface{}{"tx": txID, "tokenID": approve.TokenID}

	fragment, ok := tokenDict[approve.TokenID]
	if !ok {
		logger().WithFields(fields).Warn("Approved token not in token_dict")
		return nil
	}
	var token RawToken
	if err := json.Unmarshal(fragment, &token); err != nil {
		logger().WithError(err).WithFields(fields).Warn("Unreadable approved token")
		return nil
	}
	token.Amount = approve.Value
	approved := MapToken(token)
	return &approved
}

// MapTx converts one history entry of address, resolving its references
// against the page dictionaries. References that cannot be resolved are left
// out rather than failing the entry.
func MapTx(raw RawTx, address string, projectDict map[string]RawProject, tokenDict map[string]jsoniter.RawMessage) models.Tx {
	tx := models.Tx{
		Chain:  raw.Chain,
		Type:   raw.CateID,
		TxID:   raw.ID,
		TimeAt: raw.TimeAt,
	}
	if raw.Tx != nil {
		if tx.Type == "" {
			tx.Type = raw.Tx.Name
		}
		tx.Sender = raw.Tx.FromAddr
		tx.Recipient = raw.Tx.ToAddr
		tx.EthGasFee = raw.Tx.EthGasFee
		tx.USDGasFee = raw.Tx.USDGasFee
	}

	switch tx.Type {
	case types.TxTypeReceive:
		tx.Sender = raw.OtherAddr
		tx.Recipient = address
	case types.TxTypeSend:
		tx.Sender = address
		tx.Recipient = raw.OtherAddr
	}

	tx.Receives = resolveItems(raw.ID, raw.Receives, tokenDict)
	tx.Sends = resolveItems(raw.ID, raw.Sends, tokenDict)
	tx.TokenApprove = resolveApprove(raw.ID, raw.TokenApprove, tokenDict)

	if raw.ProjectID != "" {
		if rp, ok := projectDict[raw.ProjectID]; ok {
			project := MapProject(rp)
			tx.Project = &project
		}
	}
	return tx
}

// MapHistory converts a (possibly merged) history page for address.
// The address is lowercased.
func MapHistory(address string, page RawHistoryPage) models.History {
	address = strings.ToLower(address)
	history := models.History{Address: address}
	for _, raw := range page.HistoryList {
		history.Txs = append(history.Txs, MapTx(raw, address, page.ProjectDict, page.TokenDict))
	}
	return history
}

func logger() *logging.Logger {
	return logging.GetGlobalLogger().Named("mapper")
}
