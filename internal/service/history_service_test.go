package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/errors"
	"github.com/debank-scanner/internal/types"
)

func TestPageCounts(t *testing.T) {
	tests := []struct {
		total int
		want  []int
	}{
		{1, []int{1}},
		{20, []int{20}},
		{21, []int{20, 1}},
		{40, []int{20, 20}},
		{45, []int{20, 20, 5}},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, pageCounts(tt.total))
		})
	}
}

// historyPage builds count entries older than startTime, one second apart.
// Every entry receives usdc priced at price.
func historyPage(startTime int64, count int, price float64) string {
	if startTime == 0 {
		startTime = 1700000000
	}
	entries := make([]string, count)
	for i := 0; i < count; i++ {
		entries[i] = fmt.Sprintf(
			`{"chain": "eth", "cate_id": "receive", "id": "0x%d", "time_at": %d, "other_addr": "0xfrom",
			  "receives": [{"token_id": "usdc", "amount": 1}]}`,
			startTime-int64(i)-1, startTime-int64(i)-1)
	}
	return fmt.Sprintf(`{
		"history_list": [%s],
		"project_dict": {},
		"token_dict": {"usdc": {"chain": "eth", "symbol": "USDC", "decimals": 6, "price": %g, "id": "usdc"}}
	}`, strings.Join(entries, ","), price)
}

func TestHistoryService_List_Paginates(t *testing.T) {
	api := newFakeAPI(t)
	page := 0
	api.handle(adapter.PathHistoryList, func(params map[string]string) (int, string) {
		page++
		start, _ := strconv.ParseInt(params["start_time"], 10, 64)
		count, _ := strconv.Atoi(params["page_count"])
		return 200, historyPage(start, count, float64(page))
	})

	svc := NewHistoryService(api.client())
	history, err := svc.List(context.Background(), testAddress, types.ChainAll, 0, 45)
	require.NoError(t, err)

	calls := api.callsTo(adapter.PathHistoryList)
	require.Len(t, calls, 3)
	assert.Equal(t, []string{"20", "20", "5"}, []string{
		calls[0].params["page_count"], calls[1].params["page_count"], calls[2].params["page_count"],
	})
	assert.Equal(t, "0", calls[0].params["start_time"])
	assert.Equal(t, "1699999980", calls[1].params["start_time"])
	assert.Equal(t, "1699999960", calls[2].params["start_time"])
	assert.Equal(t, testAddrLow, calls[0].params["user_addr"])
	assert.Equal(t, "", calls[0].params["chain"])

	require.Len(t, history.Txs, 45)
	for i := 1; i < len(history.Txs); i++ {
		assert.LessOrEqual(t, *history.Txs[i].TimeAt, *history.Txs[i-1].TimeAt)
	}

	// token_dict entries from the first page win
	last := history.Txs[44].Receives[0]
	require.True(t, last.IsToken())
	assert.Equal(t, 1.0, *last.Token.Price)
	assert.Equal(t, testAddrLow, history.Txs[44].Recipient)
}

func TestHistoryService_List_SinglePage(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(adapter.PathHistoryList, func(params map[string]string) (int, string) {
		count, _ := strconv.Atoi(params["page_count"])
		return 200, historyPage(0, count, 1)
	})

	svc := NewHistoryService(api.client())
	history, err := svc.List(context.Background(), testAddress, types.ChainEthereum, 0, 20)
	require.NoError(t, err)

	require.Len(t, api.calls, 1)
	assert.Equal(t, "eth", api.calls[0].params["chain"])
	assert.Len(t, history.Txs, 20)
}

func TestHistoryService_List_StopsOnEmptyPage(t *testing.T) {
	api := newFakeAPI(t)
	page := 0
	api.handle(adapter.PathHistoryList, func(params map[string]string) (int, string) {
		page++
		if page == 1 {
			return 200, historyPage(0, 20, 1)
		}
		return 200, `{"history_list": [], "project_dict": {}, "token_dict": {}}`
	})

	svc := NewHistoryService(api.client())
	history, err := svc.List(context.Background(), testAddress, types.ChainAll, 0, 60)
	require.NoError(t, err)

	assert.Len(t, api.calls, 2)
	assert.Len(t, history.Txs, 20)
}

func TestHistoryService_List_InvalidInput(t *testing.T) {
	api := newFakeAPI(t)
	svc := NewHistoryService(api.client())

	_, err := svc.List(context.Background(), "not-an-address", types.ChainAll, 0, 20)
	assert.True(t, errors.IsValidationError(err))

	_, err = svc.List(context.Background(), testAddress, types.ChainAll, 0, 0)
	assert.True(t, errors.IsValidationError(err))

	assert.Empty(t, api.calls)
}

func TestHistoryService_List_PropagatesAPIError(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(adapter.PathHistoryList, func(map[string]string) (int, string) {
		return 503, `null`
	})

	svc := NewHistoryService(api.client())
	_, err := svc.List(context.Background(), testAddress, types.ChainAll, 0, 45)

	assert.True(t, errors.IsTransportError(err))
	assert.Equal(t, 503, errors.StatusCode(err))
	assert.Len(t, api.calls, 1)
}

func TestHistoryService_TokenPrice(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(adapter.PathTokenPrice, `{"price": 1834.5}`)
	svc := NewHistoryService(api.client())

	timeAt := int64(1650000000)
	price, err := svc.TokenPrice(context.Background(), types.ChainEthereum, "eth", &timeAt)
	require.NoError(t, err)
	assert.Equal(t, 1834.5, price)
	assert.Equal(t, map[string]string{"chain": "eth", "token_id": "eth", "time_at": "1650000000"}, api.calls[0].params)

	_, err = svc.TokenPrice(context.Background(), types.ChainEthereum, "eth", nil)
	require.NoError(t, err)
	_, hasTime := api.calls[1].params["time_at"]
	assert.False(t, hasTime)

	_, err = svc.TokenPrice(context.Background(), types.ChainAll, "eth", nil)
	assert.True(t, errors.IsValidationError(err))
}
