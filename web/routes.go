package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/s0up4200/flickhunt/metrics"
)

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	router.HandleFunc("/movie/{id}", s.handleMovie).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/trending", s.handleAPITrending).Methods(http.MethodGet)
	apiRouter.HandleFunc("/search", s.handleAPISearch).Methods(http.MethodGet)
	apiRouter.HandleFunc("/movies/{id}", s.handleAPIMovie).Methods(http.MethodGet)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return router
}

// routeName returns the matched path template, used as a low-cardinality metrics label
func (s *Server) routeName(r *http.Request) string {
	var match mux.RouteMatch
	if s.router.Match(r, &match) && match.Route != nil {
		if tmpl, err := match.Route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
