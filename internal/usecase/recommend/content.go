package recommend

import (
	"github.com/kailas-cloud/recodex/internal/domain/ranking"
)

// rankContent accumulates each seed's similarity ranking into a running total
// per candidate. Seeds themselves are never candidates.
func rankContent(snap *Snapshot, seeds []int, topN int) ([]ranking.Scored, error) {
	if len(seeds) == 0 {
		return nil, nil
	}

	seedSet := make(map[int]struct{}, len(seeds))
	for _, id := range seeds {
		seedSet[id] = struct{}{}
	}

	totals := make(map[int]float64)
	for id := range seedSet {
		similar, err := snap.Content.Similar(id)
		if err != nil {
			return nil, err
		}
		for _, s := range similar {
			if _, isSeed := seedSet[s.ID]; isSeed {
				continue
			}
			totals[s.ID] += s.Score
		}
	}

	return ranking.Top(ranking.FromMap(totals), topN), nil
}
