package middleware

import (
	"net/http"

	"github.com/fitchallenge/backend/config"
	"github.com/rs/cors"
)

// Cors allows the embedded admin and the storefront to call the api from the
// configured origins. All origins are allowed if none is configured.
func Cors(cfg config.APIServerConfigs, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}).Handler(h)
}
