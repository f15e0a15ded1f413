// Package service exposes the DeBank endpoints as typed operations and
// aggregates results that span several pages or chains.
package service

import (
	"context"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/debank-scanner/internal/adapter"
	"github.com/debank-scanner/internal/errors"
	"github.com/debank-scanner/internal/logging"
	"github.com/debank-scanner/internal/mapper"
	"github.com/debank-scanner/internal/models"
	"github.com/debank-scanner/internal/retry"
	"github.com/debank-scanner/internal/types"
)

// historyPageSize is the largest page history/list serves
const historyPageSize = 20

// pageCounts splits a requested transaction count into page sizes:
// full pages of 20 followed by the non-zero remainder
func pageCounts(total int) []int {
	if total <= historyPageSize {
		return []int{total}
	}
	counts := make([]int, 0, total/historyPageSize+1)
	for i := 0; i < total/historyPageSize; i++ {
		counts = append(counts, historyPageSize)
	}
	if rem := total % historyPageSize; rem > 0 {
		counts = append(counts, rem)
	}
	return counts
}

// mergeHistoryPage appends next to acc. Dictionary entries already in acc win.
func mergeHistoryPage(acc *mapper.RawHistoryPage, next mapper.RawHistoryPage) {
	acc.HistoryList = append(acc.HistoryList, next.HistoryList...)

	if len(next.ProjectDict) > 0 && acc.ProjectDict == nil {
		acc.ProjectDict = make(map[string]mapper.RawProject, len(next.ProjectDict))
	}
	for id, project := range next.ProjectDict {
		if _, exists := acc.ProjectDict[id]; !exists {
			acc.ProjectDict[id] = project
		}
	}

	if len(next.TokenDict) > 0 && acc.TokenDict == nil {
		acc.TokenDict = make(map[string]jsoniter.RawMessage, len(next.TokenDict))
	}
	for id, token := range next.TokenDict {
		if _, exists := acc.TokenDict[id]; !exists {
			acc.TokenDict[id] = token
		}
	}
}

// chainPayload is one chain's data from a per-chain endpoint
type chainPayload struct {
	Chain string
	Data  jsoniter.RawMessage
}

// jobPoller fetches results of endpoints that answer with a server-side job
// until the job is done
type jobPoller struct {
	client *adapter.Client
	config *retry.PollConfig
	logger *logging.Logger
}

// fetch polls path for one chain through a single proxy. ready is false when
// the job never finished within the attempt budget.
func (p *jobPoller) fetch(ctx context.Context, path, address, chain string) (data jsoniter.RawMessage, ready bool, err error) {
	pinned := p.client.Pinned()
	params := map[string]string{
		"user_addr": address,
		"chain":     chain,
	}

	result, err := retry.UntilReady(logging.WithLogger(ctx, p.logger), p.config, func(ctx context.Context, attempt int) (bool, error) {
		raw, err := pinned.Get(ctx, path, params)
		if err != nil {
			return false, err
		}
		p.client.Metrics().ObservePoll(path)

		var job mapper.RawJob
		if err := mapper.Decode(raw, &job, path); err != nil {
			return false, err
		}
		if adapter.Truthy(job.Job) {
			return false, nil
		}
		if job.Result != nil {
			data = job.Result.Data
		}
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}

	if !result.Ready {
		p.client.Metrics().ObserveOmittedChain(path, chain)
		p.logger.WithFields(map[string]interface{}{
			"endpoint": path,
			"chain":    chain,
			"attempts": result.Attempts,
		}).Warn("Job not ready, omitting chain")
		return nil, false, nil
	}
	return data, true, nil
}

// fetchAll polls path for every chain in order, dropping chains whose job
// never finished
func (p *jobPoller) fetchAll(ctx context.Context, path, address string, chains []string) ([]chainPayload, error) {
	payloads := make([]chainPayload, 0, len(chains))
	for _, chain := range chains {
		data, ready, err := p.fetch(ctx, path, address, chain)
		if err != nil {
			return nil, err
		}
		if ready {
			payloads = append(payloads, chainPayload{Chain: chain, Data: data})
		}
	}
	return payloads, nil
}

// normalizeAddress validates an address argument
func normalizeAddress(address string) (string, error) {
	normalized, err := types.NormalizeAddress(address)
	if err != nil {
		return "", errors.NewInvalidParameterError("address", err.Error())
	}
	return normalized, nil
}

// requireChain rejects the all-chains selector for endpoints that need one chain
func requireChain(chain types.ChainName) error {
	if chain.IsAll() {
		return errors.NewInvalidParameterError("chain", "a specific chain is required")
	}
	return nil
}

// isEmptyPayload reports whether data carries nothing to decode
func isEmptyPayload(data jsoniter.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}

// decodeList decodes a list payload, treating an absent payload as empty
func decodeList[T any](data jsoniter.RawMessage, what string) ([]T, error) {
	if isEmptyPayload(data) {
		return nil, nil
	}
	var list []T
	if err := mapper.Decode(data, &list, what); err != nil {
		return nil, err
	}
	return list, nil
}

// groupByChain splits a raw list by each element's chain field, keeping the
// first-seen chain order
func groupByChain(data jsoniter.RawMessage, what string) (models.Keyed[[]jsoniter.RawMessage], error) {
	var groups models.Keyed[[]jsoniter.RawMessage]
	elements, err := decodeList[jsoniter.RawMessage](data, what)
	if err != nil {
		return groups, err
	}

	for _, element := range elements {
		var keyed struct {
			Chain string `json:"chain"`
		}
		if err := mapper.Decode(element, &keyed, what); err != nil {
			return models.Keyed[[]jsoniter.RawMessage]{}, err
		}
		group, _ := groups.Get(keyed.Chain)
		groups.Set(keyed.Chain, append(group, element))
	}
	return groups, nil
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
