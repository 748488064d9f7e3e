package leveling

import (
	"math"

	"dropos/internal/domain"
)

const (
	GrowthFactor  = 1.6
	BaseThreshold = 1000
)

// AddExperience applies amount and returns the updated stats together with
// every level reached, in order. Each threshold is the previous one scaled
// by GrowthFactor and floored.
func AddExperience(stats domain.UserStats, amount int64) (domain.UserStats, []int) {
	stats = Normalize(stats)
	if amount > 0 {
		// saturate instead of wrapping negative
		if amount > math.MaxInt64-stats.Experience {
			stats.Experience = math.MaxInt64
		} else {
			stats.Experience += amount
		}
	}

	var reached []int
	for stats.Experience >= stats.NextLevelExp {
		stats.Experience -= stats.NextLevelExp
		stats.Level++
		stats.NextLevelExp = nextThreshold(stats.NextLevelExp)
		reached = append(reached, stats.Level)
	}
	stats.Rank = RankForLevel(stats.Level)
	return stats, reached
}

func nextThreshold(current int64) int64 {
	next := math.Floor(float64(current) * GrowthFactor)
	if next >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(next)
}

func RankForLevel(level int) string {
	switch {
	case level > 50:
		return domain.RankLivingLegend
	case level > 30:
		return domain.RankCommander
	case level > 15:
		return domain.RankSpecialist
	case level > 5:
		return domain.RankOperator
	default:
		return domain.RankRecruit
	}
}

// Normalize repairs stats read from storage: level and threshold have floors
// and the stored rank is replaced by the one derived from level.
func Normalize(stats domain.UserStats) domain.UserStats {
	if stats.Level < 1 {
		stats.Level = 1
	}
	if stats.NextLevelExp <= 0 {
		stats.NextLevelExp = BaseThreshold
	}
	if stats.Experience < 0 {
		stats.Experience = 0
	}
	if stats.Achievements == nil {
		stats.Achievements = []string{}
	}
	if stats.Skills == nil {
		stats.Skills = []domain.Skill{}
	}
	stats.Rank = RankForLevel(stats.Level)
	return stats
}

// Progress is the percent of the current level already earned.
func Progress(stats domain.UserStats) float64 {
	if stats.NextLevelExp <= 0 {
		return 0
	}
	return math.Min(100, float64(stats.Experience)/float64(stats.NextLevelExp)*100)
}
