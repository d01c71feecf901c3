// Package recodex is an embeddable hybrid restaurant recommender.
//
// It combines a content recommender (cosine similarity over a one-hot primary
// cuisine plus cost-for-two vector), a user-user collaborative recommender
// (cosine similarity over a user x restaurant rating matrix) and a hybrid
// blend of both rankings by alpha-weighted reciprocal rank.
//
//	eng, err := recodex.New(restaurants, ratings, recodex.WithSeed(42))
//	if err != nil { ... }
//	recs, err := eng.Hybrid(ctx, 101, 5, 0.5)
//
// An Engine is immutable after New and safe for concurrent use.
package recodex
