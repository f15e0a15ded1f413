package models

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyed_Order(t *testing.T) {
	var k Keyed[int]
	assert.Equal(t, 0, k.Len())
	_, ok := k.Get("eth")
	assert.False(t, ok)

	k.Set("op", 1)
	k.Set("eth", 2)
	k.Set("bsc", 3)
	k.Set("op", 4)

	assert.Equal(t, []string{"op", "eth", "bsc"}, k.Keys())
	assert.Equal(t, []int{4, 2, 3}, k.Values())

	v, ok := k.Get("eth")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestKeyed_MarshalJSON(t *testing.T) {
	var k Keyed[ProfitLeaderboard]
	k.Set("op", ProfitLeaderboard{Chain: "op", USDProfit: 50})
	k.Set("eth", ProfitLeaderboard{Chain: "eth", USDProfit: -5})

	data, err := jsoniter.Marshal(k)
	require.NoError(t, err)

	var keys []string
	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, data)
	for field := iter.ReadObject(); field != ""; field = iter.ReadObject() {
		keys = append(keys, field)
		iter.Skip()
	}
	require.NoError(t, iter.Error)
	assert.Equal(t, []string{"op", "eth"}, keys)

	var empty Keyed[int]
	data, err = jsoniter.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
