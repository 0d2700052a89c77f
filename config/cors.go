package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
	"http://127.0.0.1:5173",
}

// AllowedOrigins returns the dev origins plus CLIENT_URL when set.
func AllowedOrigins(clientURL string) []string {
	origins := append([]string{}, defaultOrigins...)
	if clientURL != "" {
		origins = append(origins, clientURL)
	}
	return origins
}

func SetupCORS(app *fiber.App, origins []string) {
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			for _, allowed := range origins {
				if allowed == origin {
					return true
				}
			}
			return false
		},
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
	}))
}
