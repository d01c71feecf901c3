package similarity

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/domain/catalog"
	"github.com/kailas-cloud/recodex/internal/domain/ranking"
)

// ContentIndex is the restaurant x restaurant similarity over
// one-hot(primary cuisine) ++ raw average cost for two.
type ContentIndex struct {
	catalog    *catalog.Catalog
	vocabulary []string
	matrix     *Matrix
}

// BuildContent computes the content index for the whole catalog.
func BuildContent(ctx context.Context, cat *catalog.Catalog) (*ContentIndex, error) {
	vocab := cuisineVocabulary(cat)
	slot := make(map[string]int, len(vocab))
	for i, c := range vocab {
		slot[c] = i
	}

	vectors := make([][]float64, cat.Len())
	for i := range vectors {
		r := cat.At(i)
		v := make([]float64, len(vocab)+1)
		v[slot[r.PrimaryCuisine()]] = 1
		v[len(vocab)] = r.CostForTwo()
		vectors[i] = v
	}

	m, err := pairwise(ctx, vectors)
	if err != nil {
		return nil, fmt.Errorf("build content index: %w", err)
	}
	return &ContentIndex{catalog: cat, vocabulary: vocab, matrix: m}, nil
}

// Vocabulary returns the sorted distinct cuisines used as one-hot features.
func (x *ContentIndex) Vocabulary() []string {
	out := make([]string, len(x.vocabulary))
	copy(out, x.vocabulary)
	return out
}

// Len returns the number of indexed restaurants.
func (x *ContentIndex) Len() int { return x.matrix.Size() }

// Score returns the similarity between two restaurants.
func (x *ContentIndex) Score(a, b int) (float64, error) {
	i, ok := x.catalog.Position(a)
	if !ok {
		return 0, domain.NewNotFound("restaurant", a)
	}
	j, ok := x.catalog.Position(b)
	if !ok {
		return 0, domain.NewNotFound("restaurant", b)
	}
	return x.matrix.At(i, j), nil
}

// Similar ranks every other restaurant by similarity to id.
func (x *ContentIndex) Similar(id int) ([]ranking.Scored, error) {
	pos, ok := x.catalog.Position(id)
	if !ok {
		return nil, domain.NewNotFound("restaurant", id)
	}

	row := x.matrix.Row(pos)
	out := make([]ranking.Scored, 0, len(row)-1)
	for j, s := range row {
		if j == pos {
			continue
		}
		out = append(out, ranking.Scored{ID: x.catalog.At(j).ID(), Score: s})
	}
	ranking.Sort(out)
	return out, nil
}

func cuisineVocabulary(cat *catalog.Catalog) []string {
	seen := make(map[string]struct{})
	for i := 0; i < cat.Len(); i++ {
		seen[cat.At(i).PrimaryCuisine()] = struct{}{}
	}
	vocab := make([]string, 0, len(seen))
	for c := range seen {
		vocab = append(vocab, c)
	}
	sort.Strings(vocab)
	return vocab
}
