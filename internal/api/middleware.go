package api

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware that allows browser callers from origin ("*" for
// any) and answers preflight requests.
func CORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
}
