package progress

import (
	"context"
	"fmt"
)

// LevelStats aggregates attempts at one difficulty level.
type LevelStats struct {
	Level     int
	Attempted int
	Correct   int
	Score     int
}

// Accuracy returns the fraction of attempts answered correctly, or 0
// when nothing was attempted.
func (l LevelStats) Accuracy() float64 {
	if l.Attempted == 0 {
		return 0
	}
	return float64(l.Correct) / float64(l.Attempted)
}

// Stats summarizes all graded attempts for one collection.
type Stats struct {
	Collection string
	Attempted  int
	Correct    int
	Score      int
	ByLevel    []LevelStats // ascending by level, attempted levels only
}

// Accuracy returns the overall fraction of correct attempts.
func (s Stats) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// ComputeStats aggregates every recorded attempt for a collection.
func ComputeStats(ctx context.Context, repo AttemptRepo, collection string) (Stats, error) {
	attempts, err := repo.List(ctx, collection)
	if err != nil {
		return Stats{}, fmt.Errorf("compute stats: %w", err)
	}

	stats := Stats{Collection: collection}
	byLevel := make(map[int]*LevelStats)
	for _, a := range attempts {
		stats.Attempted++
		stats.Score += a.Score
		if a.Correct {
			stats.Correct++
		}

		ls := byLevel[a.Level]
		if ls == nil {
			ls = &LevelStats{Level: a.Level}
			byLevel[a.Level] = ls
		}
		ls.Attempted++
		ls.Score += a.Score
		if a.Correct {
			ls.Correct++
		}
	}

	for level := 0; level <= maxLevel(byLevel); level++ {
		if ls, ok := byLevel[level]; ok {
			stats.ByLevel = append(stats.ByLevel, *ls)
		}
	}
	return stats, nil
}

func maxLevel(m map[int]*LevelStats) int {
	max := 0
	for level := range m {
		if level > max {
			max = level
		}
	}
	return max
}
