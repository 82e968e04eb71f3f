package api

import (
	"alcyxob/travel-planner/internal/metrics"
	"alcyxob/travel-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(
	router *gin.Engine,
	logger *logrus.Logger,
	destinationService service.DestinationService,
	tripService service.TripService,
	seeder DatabaseSeeder,
	gatherer prometheus.Gatherer, // nil disables /metrics
) {
	// Match and decode path parameters on the escaped path so that names containing
	// "%2F" still route to a single segment.
	router.UseRawPath = true
	router.UnescapePathValues = true

	destinationHandler := NewDestinationHandler(destinationService, logger)
	tripHandler := NewTripHandler(tripService, logger)
	seedHandler := NewSeedHandler(seeder, logger)

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
	}

	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Travel Planner API is running!"})
		})

		destinationGroup := api.Group("/destinations")
		{
			destinationGroup.GET("", destinationHandler.GetDestinations)
			destinationGroup.POST("", destinationHandler.CreateDestination)
			destinationGroup.GET("/:name/plans", destinationHandler.GetTravelPlans)
		}
		api.POST("/travel-plans", destinationHandler.CreateTravelPlan)

		tripGroup := api.Group("/trips")
		{
			tripGroup.POST("", tripHandler.CreateTrip)
			// Static segment takes precedence over :id.
			tripGroup.GET("/shared/:token", tripHandler.GetSharedTrip)
			tripGroup.GET("/:id/progress", tripHandler.GetTripProgress)
			tripGroup.PUT("/:id/progress", tripHandler.UpdateTripProgress)
		}

		api.POST("/seed-database", seedHandler.SeedDatabase)
	}
}
