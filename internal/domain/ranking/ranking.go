// Package ranking provides the scored list shared by all recommenders.
package ranking

import "sort"

// Scored is a restaurant id with its score.
type Scored struct {
	ID    int
	Score float64
}

// Sort orders items by score descending, ties by ascending id.
func Sort(items []Scored) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}

// FromMap sorts the accumulated scores into a ranked list.
func FromMap(scores map[int]float64) []Scored {
	items := make([]Scored, 0, len(scores))
	for id, s := range scores {
		items = append(items, Scored{ID: id, Score: s})
	}
	Sort(items)
	return items
}

// Top truncates a sorted list to at most n items.
func Top(items []Scored, n int) []Scored {
	if n < len(items) {
		return items[:n]
	}
	return items
}

// IDs extracts ids in rank order.
func IDs(items []Scored) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// ReciprocalRank scores the i-th id (0-indexed) as 1/(i+1).
func ReciprocalRank(ids []int) map[int]float64 {
	scores := make(map[int]float64, len(ids))
	for i, id := range ids {
		scores[id] = 1.0 / float64(i+1)
	}
	return scores
}
