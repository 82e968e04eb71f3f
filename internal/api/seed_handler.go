package api

import (
	"alcyxob/travel-planner/internal/seed"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DatabaseSeeder populates the database with the built-in fixtures.
type DatabaseSeeder interface {
	Seed(ctx context.Context) (*seed.Result, error)
}

type SeedHandler struct {
	seeder DatabaseSeeder
	logger *logrus.Logger
}

func NewSeedHandler(seeder DatabaseSeeder, logger *logrus.Logger) *SeedHandler {
	return &SeedHandler{seeder: seeder, logger: logger}
}

// SeedDatabase godoc
// @Summary Insert the built-in destinations and travel plans
// @Description Existing records are left untouched, so the call can be repeated.
// @Tags Admin
// @Produce json
// @Success 200 {object} gin.H "Database seeded successfully"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /seed-database [post]
func (h *SeedHandler) SeedDatabase(c *gin.Context) {
	res, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("error seeding database")
		abortWithError(c, http.StatusInternalServerError, "Failed to seed database")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":             "Database seeded successfully",
		"destinationsCreated": res.DestinationsCreated,
		"plansCreated":        res.PlansCreated,
	})
}
