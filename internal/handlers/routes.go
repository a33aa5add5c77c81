package handlers

import (
	"net/http"

	"github.com/blogly/blogly/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires every Blogly route onto one handler chain:
// request logging, metrics, panic recovery, then the mux.
func NewRouter(s *store.Store, views Renderer, flash *Flash, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	errs := &ErrorHandler{Views: views, Log: log}
	users := &UserHandler{Store: s, Views: views, Err: errs, Flash: flash}
	posts := &PostHandler{Store: s, Views: views, Err: errs, Flash: flash}
	tags := &TagHandler{Store: s, Views: views, Err: errs, Flash: flash}
	health := &HealthHandler{Store: s}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", posts.Home)

	mux.HandleFunc("GET /users", users.List)
	mux.HandleFunc("GET /users/add", users.New)
	mux.HandleFunc("POST /users/add", users.Create)
	mux.HandleFunc("GET /users/new", users.New)
	mux.HandleFunc("POST /users/new", users.Create)
	mux.HandleFunc("GET /users/{id}", users.Show)
	mux.HandleFunc("GET /users/{id}/edit", users.Edit)
	mux.HandleFunc("POST /users/{id}/edit", users.Update)
	// Singular /user/ is the historical delete path; the plural form matches
	// every other user route.
	mux.HandleFunc("POST /user/{id}/delete", users.Delete)
	mux.HandleFunc("POST /users/{id}/delete", users.Delete)

	mux.HandleFunc("GET /users/{id}/posts/new", posts.New)
	mux.HandleFunc("POST /users/{id}/posts/new", posts.Create)
	mux.HandleFunc("GET /posts/{id}", posts.Show)
	mux.HandleFunc("GET /posts/{id}/edit", posts.Edit)
	mux.HandleFunc("POST /posts/{id}/edit", posts.Update)
	mux.HandleFunc("POST /posts/{id}/delete", posts.Delete)

	mux.HandleFunc("GET /tags", tags.List)
	mux.HandleFunc("GET /tags/new", tags.New)
	mux.HandleFunc("POST /tags/new", tags.Create)
	mux.HandleFunc("GET /tags/{id}", tags.Show)
	mux.HandleFunc("GET /tags/{id}/edit", tags.Edit)
	mux.HandleFunc("POST /tags/{id}/edit", tags.Update)
	mux.HandleFunc("POST /tags/{id}/delete", tags.Delete)

	mux.HandleFunc("GET /healthz", health.Check)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", errs.NotFound)

	return RequestLogger(log)(Metrics(errs.RecoveryMiddleware(mux)))
}
