package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows any origin in development. Otherwise only the listed origins
// get CORS headers, and none do when the list is empty.
func Cors(origins []string, development bool) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	switch {
	case development:
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	case len(origins) > 0:
		options.AllowedOrigins = origins
	default:
		options.AllowOriginFunc = func(origin string) bool {
			return false
		}
	}
	return cors.New(options).Handler
}
