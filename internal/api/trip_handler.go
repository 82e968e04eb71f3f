// internal/api/trip_handler.go
package api

import (
	"alcyxob/travel-planner/internal/domain"
	"alcyxob/travel-planner/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TripHandler struct {
	tripService service.TripService
	logger      *logrus.Logger
}

func NewTripHandler(tripService service.TripService, logger *logrus.Logger) *TripHandler {
	return &TripHandler{tripService: tripService, logger: logger}
}

// --- DTOs ---

type CreateTripRequest struct {
	Destination    string  `json:"destination" binding:"required"`
	StartDate      *Date   `json:"start_date" binding:"required"`
	EndDate        *Date   `json:"end_date" binding:"required"`
	Travelers      *int    `json:"travelers" binding:"required"`
	SelectedBudget string  `json:"selected_budget" binding:"required"`
	UserEmail      *string `json:"user_email"`
}

type CreateTripResponse struct {
	TripID     string `json:"tripId"`
	Message    string `json:"message"`
	ShareURL   string `json:"shareUrl"`
	ShareToken string `json:"shareToken"`
}

type UpdateProgressRequest struct {
	CompletedActivities map[string]bool `json:"completed_activities" binding:"required"`
}

type UpdateProgressResponse struct {
	Message            string  `json:"message"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

type TripProgressResponse struct {
	TripID              string          `json:"tripId"`
	Destination         string          `json:"destination"`
	SelectedBudget      string          `json:"selectedBudget"`
	CompletedActivities map[string]bool `json:"completedActivities"`
	ProgressPercentage  float64         `json:"progressPercentage"`
}

// UserTripResponse is the full trip record returned to holders of a share token.
type UserTripResponse struct {
	ID                  string          `json:"id"`
	Destination         string          `json:"destination"`
	StartDate           time.Time       `json:"start_date"`
	EndDate             time.Time       `json:"end_date"`
	Travelers           int             `json:"travelers"`
	SelectedBudget      string          `json:"selected_budget"`
	CompletedActivities map[string]bool `json:"completed_activities"`
	UserEmail           *string         `json:"user_email"`
	ShareToken          string          `json:"share_token"`
	CreatedAt           time.Time       `json:"created_at"`
}

// --- Mappers ---

// ShareURL is the client-side path at which a shared trip is viewed.
func ShareURL(token string) string {
	return "/trips/" + token
}

func nonNilActivities(m map[string]bool) map[string]bool {
	if m == nil {
		return map[string]bool{}
	}
	return m
}

func MapTripToResponse(t *domain.UserTrip) UserTripResponse {
	return UserTripResponse{
		ID:                  t.ID,
		Destination:         t.Destination,
		StartDate:           t.StartDate,
		EndDate:             t.EndDate,
		Travelers:           t.Travelers,
		SelectedBudget:      t.SelectedBudget,
		CompletedActivities: nonNilActivities(t.CompletedActivities),
		UserEmail:           t.UserEmail,
		ShareToken:          t.ShareToken,
		CreatedAt:           t.CreatedAt,
	}
}

func MapProgressToResponse(p *service.TripProgress) TripProgressResponse {
	return TripProgressResponse{
		TripID:              p.Trip.ID,
		Destination:         p.Trip.Destination,
		SelectedBudget:      p.Trip.SelectedBudget,
		CompletedActivities: nonNilActivities(p.Trip.CompletedActivities),
		ProgressPercentage:  p.ProgressPercentage,
	}
}

// --- Handler Methods ---

// CreateTrip godoc
// @Summary Save a trip
// @Description Stores the trip and returns the share token and share path.
// @Tags Trips
// @Accept json
// @Produce json
// @Param trip body CreateTripRequest true "Trip details"
// @Success 200 {object} CreateTripResponse
// @Failure 422 {object} gin.H "Validation error"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trips [post]
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripInput{
		Destination:    req.Destination,
		StartDate:      req.StartDate.Time,
		EndDate:        req.EndDate.Time,
		Travelers:      *req.Travelers,
		SelectedBudget: req.SelectedBudget,
		UserEmail:      req.UserEmail,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.WithError(err).Error("error creating trip")
		abortWithError(c, http.StatusInternalServerError, "Failed to create trip")
		return
	}

	c.JSON(http.StatusOK, CreateTripResponse{
		TripID:     trip.ID,
		Message:    "Trip saved successfully",
		ShareURL:   ShareURL(trip.ShareToken),
		ShareToken: trip.ShareToken,
	})
}

// GetTripProgress godoc
// @Summary Get trip progress
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} TripProgressResponse
// @Failure 404 {object} gin.H "Trip not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trips/{id}/progress [get]
func (h *TripHandler) GetTripProgress(c *gin.Context) {
	tripID := c.Param("id")

	progress, err := h.tripService.GetProgress(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			abortWithError(c, http.StatusNotFound, "Trip not found")
			return
		}
		h.logger.WithError(err).WithField("trip_id", tripID).Error("error getting trip progress")
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch trip progress")
		return
	}
	c.JSON(http.StatusOK, MapProgressToResponse(progress))
}

// UpdateTripProgress godoc
// @Summary Replace the completed activities of a trip
// @Description Keys are client-chosen activity identifiers such as "day1_activity2".
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param progress body UpdateProgressRequest true "Completed activities"
// @Success 200 {object} UpdateProgressResponse
// @Failure 404 {object} gin.H "Trip not found"
// @Failure 422 {object} gin.H "Validation error"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trips/{id}/progress [put]
func (h *TripHandler) UpdateTripProgress(c *gin.Context) {
	tripID := c.Param("id")

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	progress, err := h.tripService.UpdateProgress(c.Request.Context(), tripID, req.CompletedActivities)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			abortWithError(c, http.StatusNotFound, "Trip not found")
			return
		}
		h.logger.WithError(err).WithField("trip_id", tripID).Error("error updating trip progress")
		abortWithError(c, http.StatusInternalServerError, "Failed to update trip progress")
		return
	}

	c.JSON(http.StatusOK, UpdateProgressResponse{
		Message:            "Progress updated successfully",
		ProgressPercentage: progress.ProgressPercentage,
	})
}

// GetSharedTrip godoc
// @Summary Get a trip by its share token
// @Tags Trips
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} UserTripResponse
// @Failure 404 {object} gin.H "Shared trip not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trips/shared/{token} [get]
func (h *TripHandler) GetSharedTrip(c *gin.Context) {
	token := c.Param("token")

	trip, err := h.tripService.GetSharedTrip(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrSharedTripNotFound) {
			abortWithError(c, http.StatusNotFound, "Shared trip not found")
			return
		}
		h.logger.WithError(err).Error("error getting shared trip")
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch shared trip")
		return
	}
	c.JSON(http.StatusOK, MapTripToResponse(trip))
}
