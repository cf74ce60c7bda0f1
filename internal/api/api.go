// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"
	"strings"

	"github.com/arbiterhq/arbiter/internal/auth"
	"github.com/arbiterhq/arbiter/internal/config"
	"github.com/arbiterhq/arbiter/internal/infrastructure"
	"github.com/arbiterhq/arbiter/pkg/middleware"
	"github.com/arbiterhq/arbiter/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))
	m.Use(guard([]byte(cfg.Auth.TokenSecret), runtime))

	return m, nil
}

// guard applies bearer-token authentication to every route except the
// sign-in endpoints, which by definition run before a token exists.
func guard(secret []byte, runtime *Runtime) func(http.Handler) http.Handler {
	authenticate := auth.Middleware(secret, runtime.Logger)

	return func(next http.Handler) http.Handler {
		guarded := authenticate(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/auth/") {
				next.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}
