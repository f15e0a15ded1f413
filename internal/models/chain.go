package models

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// Chain aggregates an address's tokens, projects and NFTs on one chain
type Chain struct {
	Name     string    `json:"name"`
	USDValue float64   `json:"usd_value"`
	Tokens   []Token   `json:"tokens,omitempty"`
	Projects []Project `json:"projects,omitempty"`
	NFTs     []NFT     `json:"nfts,omitempty"`
}

// NewChain builds a chain from whichever sources were fetched.
// USDValue sums token and project values; NFTs are listed but carry no value.
func NewChain(name string, tokens []Token, projects []Project, nfts []NFT) Chain {
	c := Chain{Name: name}
	if len(tokens) > 0 {
		c.Tokens = SortTokens(tokens)
		for _, t := range tokens {
			c.USDValue += TokenUSDValue(t.Amount, t.Price)
		}
	}
	if len(projects) > 0 {
		c.Projects = SortProjects(projects)
		for _, p := range projects {
			c.USDValue += p.USDValue
		}
	}
	if len(nfts) > 0 {
		c.NFTs = SortNFTs(nfts)
	}
	return c
}

// Merge returns a new chain holding the contents of both chains.
// Values add up; each list is re-sorted. Neither input is modified.
func (c Chain) Merge(other Chain) Chain {
	return Chain{
		Name:     c.Name,
		USDValue: c.USDValue + other.USDValue,
		Tokens:   SortTokens(concat(c.Tokens, other.Tokens)),
		Projects: SortProjects(concat(c.Projects, other.Projects)),
		NFTs:     SortNFTs(concat(c.NFTs, other.NFTs)),
	}
}

// IsEmpty reports whether the chain holds no tokens, projects or NFTs
func (c Chain) IsEmpty() bool {
	return len(c.Tokens) == 0 && len(c.Projects) == 0 && len(c.NFTs) == 0
}

func concat[T any](a, b []T) []T {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// ChainMap is a chain-keyed collection whose iteration order is always
// descending USD value. The zero value is an empty map.
type ChainMap struct {
	chains []Chain
}

// NewChainMap builds an ordered map, merging chains that share a name
func NewChainMap(chains ...Chain) ChainMap {
	var m ChainMap
	for _, c := range chains {
		m = m.Merge(c)
	}
	return m
}

// Merge returns a new map with c merged into the entry of the same name,
// or added as a new entry. The result is re-sorted.
func (m ChainMap) Merge(c Chain) ChainMap {
	chains := make([]Chain, 0, len(m.chains)+1)
	merged := false
	for _, existing := range m.chains {
		if existing.Name == c.Name {
			existing = existing.Merge(c)
			merged = true
		}
		chains = append(chains, existing)
	}
	if !merged {
		chains = append(chains, c)
	}
	sortChains(chains)
	return ChainMap{chains: chains}
}

// MergeAll merges every chain of other into m
func (m ChainMap) MergeAll(other ChainMap) ChainMap {
	for _, c := range other.chains {
		m = m.Merge(c)
	}
	return m
}

// Filter returns the chains for which keep returns true, order preserved
func (m ChainMap) Filter(keep func(Chain) bool) ChainMap {
	var chains []Chain
	for _, c := range m.chains {
		if keep(c) {
			chains = append(chains, c)
		}
	}
	return ChainMap{chains: chains}
}

// Get returns the chain with the given name
func (m ChainMap) Get(name string) (Chain, bool) {
	for _, c := range m.chains {
		if c.Name == name {
			return c, true
		}
	}
	return Chain{}, false
}

// Len returns the number of chains
func (m ChainMap) Len() int {
	return len(m.chains)
}

// Names returns chain names in map order
func (m ChainMap) Names() []string {
	names := make([]string, len(m.chains))
	for i, c := range m.chains {
		names[i] = c.Name
	}
	return names
}

// Chains returns a copy of the chains in map order
func (m ChainMap) Chains() []Chain {
	chains := make([]Chain, len(m.chains))
	copy(chains, m.chains)
	return chains
}

// TotalUSDValue sums the value of every chain
func (m ChainMap) TotalUSDValue() float64 {
	var total float64
	for _, c := range m.chains {
		total += c.USDValue
	}
	return total
}

// MarshalJSON encodes the map as a JSON object keyed by chain name, in map order
func (m ChainMap) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, c := range m.chains {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(c.Name)
		stream.WriteVal(c)
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func sortChains(chains []Chain) {
	sort.SliceStable(chains, func(i, j int) bool {
		return chains[i].USDValue > chains[j].USDValue
	})
}
