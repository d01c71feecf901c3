package chi

// ErrorResponseCode is the machine-readable error code of an API error.
type ErrorResponseCode string

// API error codes.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeInvalidParameter   ErrorResponseCode = "invalid_parameter"
	ErrorResponseCodeInvalidRating      ErrorResponseCode = "invalid_rating"
	ErrorResponseCodeRestaurantNotFound ErrorResponseCode = "restaurant_not_found"
	ErrorResponseCodeNotFound           ErrorResponseCode = "not_found"
	ErrorResponseCodeNotReady           ErrorResponseCode = "not_ready"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// Restaurant is a catalog entry.
type Restaurant struct {
	Id              int     `json:"id"`
	Name            string  `json:"name"`
	PrimaryCuisine  string  `json:"primary_cuisine"`
	CostForTwo      float64 `json:"cost_for_two"`
	City            string  `json:"city"`
	AggregateRating float64 `json:"aggregate_rating"`
}

// RecommendationItem is one ranked restaurant.
type RecommendationItem struct {
	RestaurantId int     `json:"restaurant_id"`
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
}

// RecommendationListResponse is a ranked recommendation list.
type RecommendationListResponse struct {
	Strategy string               `json:"strategy"`
	UserId   *int                 `json:"user_id,omitempty"`
	Alpha    *float64             `json:"alpha,omitempty"`
	Items    []RecommendationItem `json:"items"`
}

// RatingItem is one entry of a user's history.
type RatingItem struct {
	RestaurantId int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Rating       int    `json:"rating"`
}

// RatingListResponse is a user's rating history.
type RatingListResponse struct {
	UserId int          `json:"user_id"`
	Items  []RatingItem `json:"items"`
}

// UserListResponse lists users with at least one rating.
type UserListResponse struct {
	Items []int `json:"items"`
}

// RecordRatingRequest is the body of POST /ratings.
type RecordRatingRequest struct {
	UserId       int `json:"user_id"`
	RestaurantId int `json:"restaurant_id"`
	Rating       int `json:"rating"`
}

// RecordRatingResponse acknowledges a recorded rating.
type RecordRatingResponse struct {
	Sequence int64 `json:"sequence"`
}

// RebuildResponse summarizes a freshly installed snapshot.
type RebuildResponse struct {
	Restaurants int    `json:"restaurants"`
	Users       int    `json:"users"`
	Ratings     int    `json:"ratings"`
	BuiltAt     string `json:"built_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ContentRecommendationsParams are the query parameters of
// GET /recommendations/content.
type ContentRecommendationsParams struct {
	Rated []int `form:"rated" json:"rated"`
	TopN  *int  `form:"top_n,omitempty" json:"top_n,omitempty"`
}

// CollaborativeRecommendationsParams are the query parameters of
// GET /users/{userID}/recommendations/collaborative.
type CollaborativeRecommendationsParams struct {
	TopN *int `form:"top_n,omitempty" json:"top_n,omitempty"`
}

// HybridRecommendationsParams are the query parameters of
// GET /users/{userID}/recommendations/hybrid.
type HybridRecommendationsParams struct {
	TopN  *int     `form:"top_n,omitempty" json:"top_n,omitempty"`
	Alpha *float64 `form:"alpha,omitempty" json:"alpha,omitempty"`
}
