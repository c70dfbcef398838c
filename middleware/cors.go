package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the listed origins; "*" allows any origin.
func CORS(origins []string) gin.HandlerFunc {
	allowAny := false
	allowedOrigins := map[string]bool{}
	for _, origin := range origins {
		if origin == "*" {
			allowAny = true
		}
		allowedOrigins[origin] = true
	}
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowAny || allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
