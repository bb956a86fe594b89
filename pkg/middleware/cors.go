package middleware

import (
	"net/http"
	"strings"

	"github.com/vfg2006/stock-analytics-api/pkg/log"
)

// Origens do front autorizadas a consumir a API
var allowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://stock-analytics-web.vercel.app",
}

func isOriginAllowed(origin string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range allowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}

	// Em desenvolvimento o front pode subir em qualquer porta local
	return log.IsDevelopment() && strings.HasPrefix(origin, "http://localhost:")
}

// Cors libera as origens conhecidas e encerra o preflight antes do router
func Cors() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if isOriginAllowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Requested-With")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Max-Age", "86400") // Cache do preflight por 24 horas
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
