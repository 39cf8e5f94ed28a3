package wizard

import (
	"fmt"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
)

type RewardBlock string

const (
	RewardBonusLevel    RewardBlock = "bonus_level"
	RewardSpecialReward RewardBlock = "special_reward"
	RewardTopRanking    RewardBlock = "top_ranking"
)

const (
	defaultBonusPlays   = 5
	defaultSpecialPlays = 10
	defaultRankingPlays = 1
	defaultTopPositions = 3
)

// TopPositionChoices are the ranking sizes a brand can pick.
var TopPositionChoices = []int{1, 3, 5, 10}

func defaultPrize() model.Prize {
	return model.Prize{Kind: model.PrizeDiscountCode}
}

func DefaultBonusLevel() *model.BonusLevel {
	return &model.BonusLevel{RequiredPlays: defaultBonusPlays, Prize: defaultPrize()}
}

func DefaultSpecialReward() *model.SpecialReward {
	return &model.SpecialReward{RequiredPlays: defaultSpecialPlays, Prize: defaultPrize()}
}

func DefaultTopRanking() *model.TopRanking {
	return &model.TopRanking{
		RequiredPlays: defaultRankingPlays,
		TopPositions:  defaultTopPositions,
		Prizes:        ResizePrizes(nil, defaultTopPositions),
	}
}

// SetReward enables or disables a reward block on d. Enabling an already
// enabled block keeps its current values.
func SetReward(d *model.CampaignDraft, block RewardBlock, enabled bool) error {
	switch block {
	case RewardBonusLevel:
		if !enabled {
			d.BonusLevel = nil
		} else if d.BonusLevel == nil {
			d.BonusLevel = DefaultBonusLevel()
		}
	case RewardSpecialReward:
		if !enabled {
			d.SpecialReward = nil
		} else if d.SpecialReward == nil {
			d.SpecialReward = DefaultSpecialReward()
		}
	case RewardTopRanking:
		if !enabled {
			d.TopRanking = nil
		} else if d.TopRanking == nil {
			d.TopRanking = DefaultTopRanking()
		}
	default:
		return fmt.Errorf("%w: unknown reward block %q", appErrors.ErrInvalidPatch, block)
	}
	return nil
}

// ResizePrizes returns exactly n prizes numbered 1..n. Payloads of positions
// that survive the resize are kept.
func ResizePrizes(prizes []model.RankPrize, n int) []model.RankPrize {
	out := make([]model.RankPrize, n)
	for i := range out {
		out[i].Position = i + 1
		if i < len(prizes) {
			out[i].Prize = prizes[i].Prize
		} else {
			out[i].Prize = defaultPrize()
		}
	}
	return out
}

// SetTopPositions changes the ranking size of an enabled top-ranking block.
func SetTopPositions(d *model.CampaignDraft, n int) error {
	if d.TopRanking == nil {
		return appErrors.ErrRewardDisabled
	}
	valid := false
	for _, choice := range TopPositionChoices {
		if n == choice {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: got %d", appErrors.ErrInvalidTopPositions, n)
	}
	d.TopRanking.TopPositions = n
	d.TopRanking.Prizes = ResizePrizes(d.TopRanking.Prizes, n)
	return nil
}
