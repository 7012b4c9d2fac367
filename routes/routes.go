package routes

import (
	"github.com/Isann22/NutriTrack-Backend/controllers"
	"github.com/Isann22/NutriTrack-Backend/middlewares"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Recommendation *controllers.RecommendationController
	Catalog        *controllers.CatalogController
	Health         *controllers.HealthController
	JWTSecret      string // empty disables auth on /api
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.RequestID())

	r.GET("/healthz", d.Health.Health)

	api := r.Group("/api")
	if d.JWTSecret != "" {
		api.Use(middlewares.AuthMiddleware(d.JWTSecret))
	}
	{
		api.POST("/recommendation", d.Recommendation.Recommend)
		api.POST("/metrics", d.Recommendation.Metrics)
		api.GET("/catalog", d.Catalog.List)
	}

	return r
}
