package types

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: every known chain parses back to itself regardless of case
func TestParseChainName_RoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("known chains parse to themselves", prop.ForAll(
		func(idx int, upper bool) bool {
			chain := knownChains[idx]
			input := string(chain)
			if upper {
				input = strings.ToUpper(input)
			}
			got, err := ParseChainName(input)
			return err == nil && got == chain
		},
		gen.IntRange(0, len(knownChains)-1),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: parse never yields a chain outside the closed set
func TestParseChainName_ClosedSetProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("parsed chains are known or all", prop.ForAll(
		func(s string) bool {
			got, err := ParseChainName(s)
			if err != nil {
				return got == ChainAll
			}
			if got == ChainAll {
				return true
			}
			for _, chain := range knownChains {
				if chain == got {
					return true
				}
			}
			return false
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
