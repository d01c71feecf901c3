// Package chi serves the recommendation HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recodex/internal/domain"
	"github.com/kailas-cloud/recodex/internal/logger"
	datasetuc "github.com/kailas-cloud/recodex/internal/usecase/dataset"
	healthuc "github.com/kailas-cloud/recodex/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/recodex/internal/usecase/recommend"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Defaults applied when a request omits optional parameters.
type Defaults struct {
	TopN  int
	Alpha float64
}

// Server implements ServerInterface.
type Server struct {
	recommend     *recommenduc.Service
	dataset       *datasetuc.Service
	health        *healthuc.Service
	metrics       http.Handler
	defaults      Defaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server. metrics serves GET /metrics.
func NewServer(
	recommend *recommenduc.Service,
	dataset *datasetuc.Service,
	health *healthuc.Service,
	metrics http.Handler,
	defaults Defaults,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		dataset:   dataset,
		health:    health,
		metrics:   metrics,
		defaults:  defaults,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		notFoundHandler,
		sentinelHandler(domain.ErrInvalidParameter, http.StatusBadRequest, ErrorResponseCodeInvalidParameter),
		sentinelHandler(domain.ErrInvalidRating, http.StatusBadRequest, ErrorResponseCodeInvalidRating),
		sentinelHandler(domain.ErrNotReady, http.StatusServiceUnavailable, ErrorResponseCodeNotReady),
	}
	return s
}

// GetRestaurant handles GET /restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request, id int) {
	rest, err := s.recommend.Restaurant(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Restaurant{
		Id:              rest.ID(),
		Name:            rest.Name(),
		PrimaryCuisine:  rest.PrimaryCuisine(),
		CostForTwo:      rest.CostForTwo(),
		City:            rest.City(),
		AggregateRating: rest.AggregateRating(),
	})
}

// ContentRecommendations handles GET /recommendations/content.
func (s *Server) ContentRecommendations(w http.ResponseWriter, r *http.Request, params ContentRecommendationsParams) {
	recs, err := s.recommend.ContentBased(r.Context(), params.Rated, s.topN(params.TopN))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationListResponse{
		Strategy: recommenduc.StrategyContent,
		Items:    recommendationsToAPI(recs),
	})
}

// CollaborativeRecommendations handles GET /users/{userID}/recommendations/collaborative.
func (s *Server) CollaborativeRecommendations(
	w http.ResponseWriter,
	r *http.Request,
	userID int,
	params CollaborativeRecommendationsParams,
) {
	recs, err := s.recommend.Collaborative(r.Context(), userID, s.topN(params.TopN))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationListResponse{
		Strategy: recommenduc.StrategyCollaborative,
		UserId:   &userID,
		Items:    recommendationsToAPI(recs),
	})
}

// HybridRecommendations handles GET /users/{userID}/recommendations/hybrid.
func (s *Server) HybridRecommendations(
	w http.ResponseWriter,
	r *http.Request,
	userID int,
	params HybridRecommendationsParams,
) {
	alpha := s.defaults.Alpha
	if params.Alpha != nil {
		alpha = *params.Alpha
	}

	recs, err := s.recommend.Hybrid(r.Context(), userID, s.topN(params.TopN), alpha)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationListResponse{
		Strategy: recommenduc.StrategyHybrid,
		UserId:   &userID,
		Alpha:    &alpha,
		Items:    recommendationsToAPI(recs),
	})
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.recommend.Users(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if users == nil {
		users = []int{}
	}
	writeJSON(w, http.StatusOK, UserListResponse{Items: users})
}

// GetUserRatings handles GET /users/{userID}/ratings.
func (s *Server) GetUserRatings(w http.ResponseWriter, r *http.Request, userID int) {
	history, err := s.recommend.UserRatings(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	snap, err := s.recommend.Snapshot()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]RatingItem, len(history))
	for i, rt := range history {
		items[i] = RatingItem{
			RestaurantId: rt.RestaurantID(),
			Name:         snap.Catalog.Name(rt.RestaurantID()),
			Rating:       rt.Value(),
		}
	}
	writeJSON(w, http.StatusOK, RatingListResponse{UserId: userID, Items: items})
}

// RecordRating handles POST /ratings.
func (s *Server) RecordRating(w http.ResponseWriter, r *http.Request) {
	var req RecordRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// The restaurant must exist in the serving catalog.
	if _, err := s.recommend.Restaurant(r.Context(), req.RestaurantId); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	seq, err := s.dataset.Record(r.Context(), req.UserId, req.RestaurantId, req.Rating)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, RecordRatingResponse{Sequence: seq})
}

// Rebuild handles POST /admin/rebuild.
func (s *Server) Rebuild(w http.ResponseWriter, r *http.Request) {
	if err := s.recommend.Rebuild(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	snap, err := s.recommend.Snapshot()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RebuildResponse{
		Restaurants: snap.Catalog.Len(),
		Users:       snap.Collaborative.Users(),
		Ratings:     snap.Ratings.Len(),
		BuiltAt:     snap.BuiltAt.UTC().Format(time.RFC3339),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		http.NotFound(w, r)
		return
	}
	s.metrics.ServeHTTP(w, r)
}

func (s *Server) topN(p *int) int {
	if p == nil {
		return s.defaults.TopN
	}
	return *p
}

func recommendationsToAPI(recs []recommenduc.Recommendation) []RecommendationItem {
	items := make([]RecommendationItem, len(recs))
	for i, rec := range recs {
		items[i] = RecommendationItem{
			RestaurantId: rec.RestaurantID,
			Name:         rec.Name,
			Score:        rec.Score,
		}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe error message without exposing internals.
func safeDomainMessage(err error) string {
	var ipe *domain.InvalidParameterError
	if errors.As(err, &ipe) {
		return ipe.Error()
	}
	var nfe *domain.NotFoundError
	if errors.As(err, &nfe) {
		return nfe.Error()
	}

	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidParameter,
		domain.ErrInvalidRating,
		domain.ErrNotReady,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// notFoundHandler maps ErrNotFound to 404, with a restaurant-specific code.
func notFoundHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrNotFound) {
		return false
	}
	code := ErrorResponseCodeNotFound
	var nfe *domain.NotFoundError
	if errors.As(err, &nfe) && nfe.Kind == "restaurant" {
		code = ErrorResponseCodeRestaurantNotFound
	}
	writeError(w, http.StatusNotFound, code, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
