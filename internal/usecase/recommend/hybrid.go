package recommend

import (
	"github.com/kailas-cloud/recodex/internal/domain/ranking"
)

// DefaultOversample is the candidate count requested from each recommender
// before blending.
const DefaultOversample = 10

// blend merges the content and collaborative rankings.
// Each list is converted to reciprocal-rank scores 1/(i+1), absent ids score 0,
// and the combined score is alpha*content + (1-alpha)*collaborative.
func blend(content, collab []int, alpha float64, topN int) []ranking.Scored {
	cScores := ranking.ReciprocalRank(content)
	fScores := ranking.ReciprocalRank(collab)

	merged := make(map[int]float64, len(cScores)+len(fScores))
	for id, s := range cScores {
		merged[id] += alpha * s
	}
	for id, s := range fScores {
		merged[id] += (1 - alpha) * s
	}

	return ranking.Top(ranking.FromMap(merged), topN)
}

// oversample returns how many candidates to pull from each recommender.
func oversample(base, topN int) int {
	if base <= 0 {
		base = DefaultOversample
	}
	if topN > base {
		return topN
	}
	return base
}
