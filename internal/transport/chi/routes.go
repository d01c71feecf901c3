package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the API operations.
type ServerInterface interface {
	// (GET /restaurants/{id})
	GetRestaurant(w http.ResponseWriter, r *http.Request, id int)
	// (GET /recommendations/content)
	ContentRecommendations(w http.ResponseWriter, r *http.Request, params ContentRecommendationsParams)
	// (GET /users)
	ListUsers(w http.ResponseWriter, r *http.Request)
	// (GET /users/{userID}/ratings)
	GetUserRatings(w http.ResponseWriter, r *http.Request, userID int)
	// (GET /users/{userID}/recommendations/collaborative)
	CollaborativeRecommendations(
		w http.ResponseWriter, r *http.Request, userID int, params CollaborativeRecommendationsParams)
	// (GET /users/{userID}/recommendations/hybrid)
	HybridRecommendations(w http.ResponseWriter, r *http.Request, userID int, params HybridRecommendationsParams)
	// (POST /ratings)
	RecordRating(w http.ResponseWriter, r *http.Request)
	// (POST /admin/rebuild)
	Rebuild(w http.ResponseWriter, r *http.Request)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	Middlewares      []func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler mounts si on a new router.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions mounts si on options.BaseRouter (a new router when nil).
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		}
	}
	wrapper := serverInterfaceWrapper{
		handler:      si,
		middlewares:  options.Middlewares,
		errorHandler: options.ErrorHandlerFunc,
	}

	r.Get("/restaurants/{id}", wrapper.GetRestaurant)
	r.Get("/recommendations/content", wrapper.ContentRecommendations)
	r.Get("/users", wrapper.plain(si.ListUsers))
	r.Get("/users/{userID}/ratings", wrapper.GetUserRatings)
	r.Get("/users/{userID}/recommendations/collaborative", wrapper.CollaborativeRecommendations)
	r.Get("/users/{userID}/recommendations/hybrid", wrapper.HybridRecommendations)
	r.Post("/ratings", wrapper.plain(si.RecordRating))
	r.Post("/admin/rebuild", wrapper.plain(si.Rebuild))
	r.Get("/health", wrapper.plain(si.HealthCheck))
	r.Get("/metrics", wrapper.plain(si.Metrics))

	return r
}

// serverInterfaceWrapper binds path and query parameters before dispatch.
type serverInterfaceWrapper struct {
	handler      ServerInterface
	middlewares  []func(http.Handler) http.Handler
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (sw *serverInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.Handler) {
	for _, mw := range sw.middlewares {
		h = mw(h)
	}
	h.ServeHTTP(w, r)
}

func (sw *serverInterfaceWrapper) plain(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sw.serve(w, r, fn)
	}
}

func (sw *serverInterfaceWrapper) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return 0, false
	}
	return v, true
}

func (sw *serverInterfaceWrapper) query(
	w http.ResponseWriter, r *http.Request, name string, explode bool, dest any,
) bool {
	if err := runtime.BindQueryParameter("form", explode, false, name, r.URL.Query(), dest); err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

// GetRestaurant operation middleware.
func (sw *serverInterfaceWrapper) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := sw.pathInt(w, r, "id")
	if !ok {
		return
	}
	sw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw.handler.GetRestaurant(w, r, id)
	}))
}

// ContentRecommendations operation middleware.
func (sw *serverInterfaceWrapper) ContentRecommendations(w http.ResponseWriter, r *http.Request) {
	var params ContentRecommendationsParams
	if !sw.query(w, r, "rated", true, &params.Rated) {
		return
	}
	if !sw.query(w, r, "top_n", true, &params.TopN) {
		return
	}
	sw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw.handler.ContentRecommendations(w, r, params)
	}))
}

// GetUserRatings operation middleware.
func (sw *serverInterfaceWrapper) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := sw.pathInt(w, r, "userID")
	if !ok {
		return
	}
	sw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw.handler.GetUserRatings(w, r, userID)
	}))
}

// CollaborativeRecommendations operation middleware.
func (sw *serverInterfaceWrapper) CollaborativeRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := sw.pathInt(w, r, "userID")
	if !ok {
		return
	}
	var params CollaborativeRecommendationsParams
	if !sw.query(w, r, "top_n", true, &params.TopN) {
		return
	}
	sw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw.handler.CollaborativeRecommendations(w, r, userID, params)
	}))
}

// HybridRecommendations operation middleware.
func (sw *serverInterfaceWrapper) HybridRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := sw.pathInt(w, r, "userID")
	if !ok {
		return
	}
	var params HybridRecommendationsParams
	if !sw.query(w, r, "top_n", true, &params.TopN) {
		return
	}
	if !sw.query(w, r, "alpha", true, &params.Alpha) {
		return
	}
	sw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw.handler.HybridRecommendations(w, r, userID, params)
	}))
}
