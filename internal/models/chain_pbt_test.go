package models

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: token value is never negative and equals the product when positive
func TestTokenUSDValue_Property(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("value is non-negative", prop.ForAll(
		func(amount, price float64) bool {
			v := TokenUSDValue(&amount, &price)
			if v < 0 {
				return false
			}
			if amount > 0 && price > 0 {
				return math.Abs(v-amount*price) < 1e-6
			}
			return true
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e4, 1e4),
	))

	properties.TestingRun(t)
}

// Property: a chain's value is the sum of its token and project values
func TestNewChain_SumProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("chain value sums its sources", prop.ForAll(
		func(amounts []float64, projectValues []float64) bool {
			var tokens []Token
			var want float64
			for i, a := range amounts {
				tokens = append(tokens, token(fmt.Sprintf("T%d", i), a, 2))
				want += a * 2
			}
			var projects []Project
			for _, v := range projectValues {
				projects = append(projects, Project{USDValue: v})
				want += v
			}
			c := NewChain("eth", tokens, projects, nil)
			return math.Abs(c.USDValue-want) < 1e-6
		},
		gen.SliceOf(gen.Float64Range(0.01, 1000)),
		gen.SliceOf(gen.Float64Range(0, 1000)),
	))

	properties.TestingRun(t)
}

// Property: chain map iteration order is descending by value
func TestChainMap_OrderProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("chains are ordered by descending value", prop.ForAll(
		func(values []float64) bool {
			var m ChainMap
			for i, v := range values {
				name := fmt.Sprintf("chain%d", i%4)
				m = m.Merge(NewChain(name, []Token{token("X", v, 1)}, nil, nil))
			}
			chains := m.Chains()
			for i := 1; i < len(chains); i++ {
				if chains[i-1].USDValue < chains[i].USDValue {
					return false
				}
			}
			return m.Len() <= 4
		},
		gen.SliceOf(gen.Float64Range(0.01, 1e6)),
	))

	properties.TestingRun(t)
}
