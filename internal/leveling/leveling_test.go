package leveling

import (
	"math"
	"testing"

	"dropos/internal/domain"
)

func TestAddExperienceFollowsCompoundingThresholds(t *testing.T) {
	stats, reached := AddExperience(domain.DefaultStats(), 2500)

	if stats.Level != 2 || stats.Experience != 1500 || stats.NextLevelExp != 1600 {
		t.Fatalf("expected level 2 with 1500/1600, got level %d with %d/%d", stats.Level, stats.Experience, stats.NextLevelExp)
	}
	if len(reached) != 1 || reached[0] != 2 {
		t.Fatalf("expected exactly one level up to 2, got %v", reached)
	}
}

func TestAddExperienceCrossesSeveralLevels(t *testing.T) {
	// 1000 + 1600 + 2560 = 5160
	stats, reached := AddExperience(domain.DefaultStats(), 5200)

	if stats.Level != 4 {
		t.Fatalf("expected level 4, got %d", stats.Level)
	}
	if stats.Experience != 40 || stats.NextLevelExp != 4096 {
		t.Fatalf("expected 40/4096, got %d/%d", stats.Experience, stats.NextLevelExp)
	}
	if len(reached) != 3 || reached[0] != 2 || reached[2] != 4 {
		t.Fatalf("expected one signal per level, got %v", reached)
	}
}

func TestExperienceStaysBelowThreshold(t *testing.T) {
	stats := domain.DefaultStats()
	for _, grant := range []int64{0, 1, 999, 1, 1599, 7000, 123456} {
		before := stats.Level
		var reached []int
		stats, reached = AddExperience(stats, grant)
		if stats.Experience < 0 || stats.Experience >= stats.NextLevelExp {
			t.Fatalf("invariant broken after +%d: %d/%d", grant, stats.Experience, stats.NextLevelExp)
		}
		if stats.Level-before != len(reached) {
			t.Fatalf("expected level delta %d to equal signals %d", stats.Level-before, len(reached))
		}
	}
}

func TestHugeGrantSaturatesInsteadOfWrapping(t *testing.T) {
	stats := domain.UserStats{Level: 1, Experience: 10, NextLevelExp: BaseThreshold}
	for _, grant := range []int64{math.MaxInt64, math.MaxInt64 - 5, math.MaxInt64} {
		before := stats.Level
		var reached []int
		stats, reached = AddExperience(stats, grant)
		if stats.Experience < 0 || stats.Experience >= stats.NextLevelExp {
			t.Fatalf("invariant broken after +%d: level %d with %d/%d", grant, stats.Level, stats.Experience, stats.NextLevelExp)
		}
		if len(reached) == 0 || stats.Level-before != len(reached) {
			t.Fatalf("expected level ups for +%d, got %v", grant, reached)
		}
	}
	if stats.NextLevelExp <= 0 {
		t.Fatalf("expected positive threshold, got %d", stats.NextLevelExp)
	}
}

func TestNextThresholdCapsAtMaxInt64(t *testing.T) {
	if got := nextThreshold(1000); got != 1600 {
		t.Fatalf("expected 1600, got %d", got)
	}
	if got := nextThreshold(math.MaxInt64 / 2); got != math.MaxInt64 {
		t.Fatalf("expected cap at max int64, got %d", got)
	}
}

func TestNegativeGrantIgnored(t *testing.T) {
	stats, reached := AddExperience(domain.UserStats{Level: 3, Experience: 10, NextLevelExp: 2560}, -500)
	if stats.Experience != 10 || len(reached) != 0 {
		t.Fatalf("expected negative grant to be ignored, got %d (%v)", stats.Experience, reached)
	}
}

func TestRankForLevel(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, domain.RankRecruit},
		{5, domain.RankRecruit},
		{6, domain.RankOperator},
		{16, domain.RankSpecialist},
		{31, domain.RankCommander},
		{50, domain.RankCommander},
		{51, domain.RankLivingLegend},
	}
	for _, c := range cases {
		if got := RankForLevel(c.level); got != c.want {
			t.Fatalf("level %d: expected %s, got %s", c.level, c.want, got)
		}
	}
}

func TestNormalizeRecomputesRank(t *testing.T) {
	stats := Normalize(domain.UserStats{Level: 40, Rank: "Emperor", NextLevelExp: 10})
	if stats.Rank != domain.RankCommander {
		t.Fatalf("expected rank derived from level, got %s", stats.Rank)
	}
	zero := Normalize(domain.UserStats{})
	if zero.Level != 1 || zero.NextLevelExp != BaseThreshold {
		t.Fatalf("expected floors applied, got %+v", zero)
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(domain.UserStats{Experience: 250, NextLevelExp: 1000}); got != 25 {
		t.Fatalf("expected 25%%, got %v", got)
	}
}
