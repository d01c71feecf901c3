package recommend

import (
	"github.com/kailas-cloud/recodex/internal/domain/ranking"
)

// rankCollaborative scores every restaurant in the rating matrix column space as
// sum_v sim(u, v) * r(v, i), skipping restaurants the user already rated.
// The user must be present in the collaborative index.
func rankCollaborative(snap *Snapshot, userID, topN int) ([]ranking.Scored, error) {
	sims, err := snap.Collaborative.Row(userID)
	if err != nil {
		return nil, err
	}
	pivot := snap.Collaborative.Pivot()
	self, _ := pivot.UserRow(userID)
	own := pivot.Row(self)

	scores := make([]float64, len(pivot.Restaurants))
	for v, sim := range sims {
		if sim == 0 {
			continue
		}
		for j, r := range pivot.Row(v) {
			scores[j] += sim * r
		}
	}

	out := make([]ranking.Scored, 0, len(scores))
	for j, s := range scores {
		if own[j] != 0 {
			continue
		}
		out = append(out, ranking.Scored{ID: pivot.Restaurants[j], Score: s})
	}
	ranking.Sort(out)
	return ranking.Top(out, topN), nil
}

// coldStart lists sampled ids with a zero score, in sample order.
func coldStart(ids []int) []ranking.Scored {
	out := make([]ranking.Scored, len(ids))
	for i, id := range ids {
		out[i] = ranking.Scored{ID: id}
	}
	return out
}
