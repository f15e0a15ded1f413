// Package types provides common type definitions for the DeBank scanner.
package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ChainName identifies a chain the way DeBank names it in query parameters
type ChainName string

const (
	// ChainAll is the empty selector, meaning every chain the address has used
	ChainAll ChainName = ""
	// ChainHeco represents the Huobi ECO chain
	ChainHeco ChainName = "heco"
	// ChainMatic represents the Polygon network
	ChainMatic ChainName = "matic"
	// ChainEthereum represents the Ethereum mainnet
	ChainEthereum ChainName = "eth"
	// ChainArbitrum represents the Arbitrum network
	ChainArbitrum ChainName = "arb"
	// ChainAvalanche represents the Avalanche C-chain
	ChainAvalanche ChainName = "avax"
	// ChainOptimism represents the Optimism network
	ChainOptimism ChainName = "op"
	// ChainBSC represents the BNB Chain (BSC)
	ChainBSC ChainName = "bsc"
	// ChainMoonbeam represents the Moonbeam network
	ChainMoonbeam ChainName = "mobm"
)

var knownChains = []ChainName{
	ChainHeco,
	ChainMatic,
	ChainEthereum,
	ChainArbitrum,
	ChainAvalanche,
	ChainOptimism,
	ChainBSC,
	ChainMoonbeam,
}

// KnownChains returns every named chain, excluding ChainAll
func KnownChains() []ChainName {
	chains := make([]ChainName, len(knownChains))
	copy(chains, knownChains)
	return chains
}

// ParseChainName validates a chain selector. The empty string and "all" map to ChainAll.
func ParseChainName(s string) (ChainName, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "all" {
		return ChainAll, nil
	}
	for _, chain := range knownChains {
		if string(chain) == name {
			return chain, nil
		}
	}
	return ChainAll, fmt.Errorf("unknown chain %q", s)
}

// IsAll reports whether the selector means every used chain
func (c ChainName) IsAll() bool {
	return c == ChainAll
}

func (c ChainName) String() string {
	if c == ChainAll {
		return "all"
	}
	return string(c)
}

// TxType values that change how sender and recipient are derived
const (
	TxTypeReceive = "receive"
	TxTypeSend    = "send"
)

// NormalizeAddress validates a hex address and returns it lowercased
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid address format: %s", address)
	}
	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}
