package recodex

// Restaurant is a catalog entry.
type Restaurant struct {
	ID   int
	Name string
	// Cuisines is the comma-separated cuisine list; only the first entry is
	// used for similarity. Restaurant() returns the primary cuisine here.
	Cuisines        string
	CostForTwo      float64
	City            string
	AggregateRating float64
}

// Rating is an explicit 1-5 star rating.
type Rating struct {
	UserID       int
	RestaurantID int
	Value        int
}

// Recommendation is a ranked restaurant. Score semantics depend on the
// strategy: summed similarity (content), weighted rating sum
// (collaborative) or blended reciprocal rank (hybrid).
type Recommendation struct {
	RestaurantID int
	Name         string
	Score        float64
}
