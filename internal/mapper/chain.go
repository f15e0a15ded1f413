package mapper

import (
	"github.com/debank-scanner/internal/models"
)

// MapChain builds one chain from whichever raw sources were fetched for it
func MapChain(name string, tokens []RawToken, projects []RawProject, collections []RawCollection) models.Chain {
	return models.NewChain(name, MapTokens(tokens), MapProjects(projects), MapCollectionNFTs(collections))
}

// MapTokenChains groups a token list by each token's chain
func MapTokenChains(tokens []RawToken) models.ChainMap {
	var m models.ChainMap
	for _, name := range chainOrder(tokens, func(t RawToken) string { return t.Chain }) {
		m = m.Merge(MapChain(name, filter(tokens, func(t RawToken) bool { return t.Chain == name }), nil, nil))
	}
	return m
}

// MapProjectChains groups a project list by each project's chain
func MapProjectChains(projects []RawProject) models.ChainMap {
	var m models.ChainMap
	for _, name := range chainOrder(projects, func(p RawProject) string { return p.Chain }) {
		m = m.Merge(MapChain(name, nil, filter(projects, func(p RawProject) bool { return p.Chain == name }), nil))
	}
	return m
}

// MapNFTChains builds chains holding only NFTs, keyed by chain
func MapNFTChains(collections map[string][]RawCollection, order []string) models.ChainMap {
	var m models.ChainMap
	for _, name := range order {
		m = m.Merge(MapChain(name, nil, nil, collections[name]))
	}
	return m
}

// chainOrder returns distinct chain keys in first-seen order
func chainOrder[T any](items []T, key func(T) string) []string {
	seen := make(map[string]bool)
	var order []string
	for _, item := range items {
		k := key(item)
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}
	return order
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
