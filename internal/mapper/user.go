package mapper

import (
	"fmt"

	"github.com/debank-scanner/internal/errors"
	"github.com/debank-scanner/internal/models"
)

// MapUser converts a DeBank profile
func MapUser(raw RawUser) models.User {
	return models.User{
		AccountID:        raw.AccountID,
		Avatar:           raw.Avatar,
		Comment:          raw.Comment,
		CreateAt:         raw.CreateAt,
		EmailVerified:    raw.EmailVerified,
		FollowerCount:    raw.FollowerCount,
		FollowingCount:   raw.FollowingCount,
		ID:               raw.ID,
		IsContract:       raw.IsContract,
		IsEditor:         raw.IsEditor,
		IsFollowed:       raw.IsFollowed,
		IsFollowing:      raw.IsFollowing,
		IsMine:           raw.IsMine,
		IsMirrorAuthor:   raw.IsMirrorAuthor,
		IsMultisigAddr:   raw.IsMultisigAddr,
		MarketStatus:     raw.MarketStatus,
		Org:              raw.Org,
		ProtocolUSDValue: raw.ProtocolUSDValue,
		Relation:         raw.Relation,
		TVF:              raw.TVF,
		USDValue:         raw.USDValue,
		UsedChains:       raw.UsedChains,
		WalletUSDValue:   raw.WalletUSDValue,
	}
}

// MapInfo converts a messaging profile
func MapInfo(raw RawInfo) models.Info {
	info := models.Info{
		CreateAt:            raw.CreateAt,
		ID:                  raw.ID,
		InitialPrice:        raw.InitialPrice,
		OfferPrice:          raw.OfferPrice,
		RepliedRate:         raw.RepliedRate,
		UnchargedOfferCount: raw.UnchargedOfferCount,
		UnchargedOfferValue: raw.UnchargedOfferValue,
		UnreadMessageCount:  raw.UnreadMessageCount,
	}
	if raw.User != nil {
		user := MapUser(*raw.User)
		info.User = &user
	}
	return info
}

// MapCurve converts [timestamp, value] samples and computes the change from
// the first to the last sample. An empty curve or a zero starting value has
// no defined percentage and is rejected.
func MapCurve(raw RawCurve) (models.Curve, error) {
	if len(raw.USDValueList) == 0 {
		return models.Curve{}, errors.NewInvalidDataError("usd_value_list is empty", nil)
	}

	marks := make([]models.Mark, len(raw.USDValueList))
	for i, sample := range raw.USDValueList {
		if len(sample) < 2 {
			return models.Curve{}, errors.NewInvalidDataError(
				fmt.Sprintf("usd_value_list sample %d has %d elements", i, len(sample)), nil)
		}
		marks[i] = models.Mark{Timestamp: int64(sample[0]), USDValue: sample[1]}
	}

	first := marks[0].USDValue
	last := marks[len(marks)-1].USDValue
	if first == 0 {
		return models.Curve{}, errors.NewInvalidDataError("usd_value_list starts at zero", nil)
	}

	return models.Curve{
		PercentChange: (last/first - 1) * 100,
		USDChange:     last - first,
		Marks:         marks,
	}, nil
}
