package main

import (
	"os"
	"time"

	"github.com/ruby4mag/servicemap-go-backend/internal/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "X-Requested-With", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.Health)
	r.GET("/examples/:filename", handlers.ExampleFile)

	api := r.Group("/api")
	{
		api.GET("/services", handlers.IndexServices)
		api.POST("/services", handlers.NewService)
		api.GET("/services/:id", handlers.ShowService)
		api.PUT("/services/:id", handlers.UpdateService)
		api.DELETE("/services/:id", handlers.DeleteService)

		api.GET("/connections", handlers.IndexConnections)
		api.POST("/connections", handlers.NewConnection)
		api.GET("/connections/:id", handlers.ShowConnection)
		api.PUT("/connections/:id", handlers.UpdateConnection)
		api.DELETE("/connections/:id", handlers.DeleteConnection)

		api.GET("/graph", handlers.ServiceGraph)
		api.GET("/impact/:serviceId", handlers.ImpactAnalysis)

		api.POST("/import", handlers.ImportYAML)
		api.GET("/imports", handlers.IndexImports)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
