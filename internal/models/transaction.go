package models

// ItemKind tags which variant a TransactionItem holds
type ItemKind string

const (
	ItemKindToken ItemKind = "token"
	ItemKindNFT   ItemKind = "nft"
)

// TransactionItem is an asset received or sent by a transaction.
// Exactly one of Token or NFT is set, as named by Kind.
type TransactionItem struct {
	Kind  ItemKind `json:"kind"`
	Token *Token   `json:"token,omitempty"`
	NFT   *NFT     `json:"nft,omitempty"`
}

// TokenItem wraps a fungible token
func TokenItem(t Token) TransactionItem {
	return TransactionItem{Kind: ItemKindToken, Token: &t}
}

// NFTItem wraps an NFT
func NFTItem(n NFT) TransactionItem {
	return TransactionItem{Kind: ItemKindNFT, NFT: &n}
}

// IsToken reports whether the item is a fungible token
func (i TransactionItem) IsToken() bool {
	return i.Kind == ItemKindToken && i.Token != nil
}

// IsNFT reports whether the item is an NFT
func (i TransactionItem) IsNFT() bool {
	return i.Kind == ItemKindNFT && i.NFT != nil
}

// Amount returns the moved amount of whichever variant is set
func (i TransactionItem) Amount() *float64 {
	switch {
	case i.IsToken():
		return i.Token.Amount
	case i.IsNFT():
		return i.NFT.Amount
	default:
		return nil
	}
}

// Tx is one entry of an address's transaction history
type Tx struct {
	Chain        string            `json:"chain"`
	Type         string            `json:"type"`
	TxID         string            `json:"tx_id"`
	TimeAt       *float64          `json:"time_at,omitempty"`
	Sender       string            `json:"sender,omitempty"`
	Recipient    string            `json:"recipient,omitempty"`
	Receives     []TransactionItem `json:"receives,omitempty"`
	Sends        []TransactionItem `json:"sends,omitempty"`
	TokenApprove *Token            `json:"token_approve,omitempty"`
	EthGasFee    *float64          `json:"eth_gas_fee,omitempty"`
	USDGasFee    *float64          `json:"usd_gas_fee,omitempty"`
	Project      *Project          `json:"project,omitempty"`
}

// History is an address's transaction history, newest first
type History struct {
	Address string `json:"address"`
	Txs     []Tx   `json:"txs,omitempty"`
}
