// internal/api/destination_handler.go
package api

import (
	"alcyxob/travel-planner/internal/domain"
	"alcyxob/travel-planner/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DestinationHandler struct {
	destinationService service.DestinationService
	logger             *logrus.Logger
}

func NewDestinationHandler(destinationService service.DestinationService, logger *logrus.Logger) *DestinationHandler {
	return &DestinationHandler{destinationService: destinationService, logger: logger}
}

// --- DTOs ---

type DestinationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Popular   bool      `json:"popular"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateDestinationRequest struct {
	Name     string  `json:"name" binding:"required"`
	Country  string  `json:"country" binding:"required"`
	Popular  bool    `json:"popular"`
	ImageURL *string `json:"image_url"`
}

type ActivityDTO struct {
	Time string `json:"time" binding:"required"`
	Task string `json:"task" binding:"required"`
	Type string `json:"type" binding:"required"`
}

type DayItineraryDTO struct {
	Day        int           `json:"day" binding:"required"`
	Title      string        `json:"title" binding:"required"`
	Activities []ActivityDTO `json:"activities" binding:"dive"`
}

// BudgetPlanDTO is used for both requests and responses.
type BudgetPlanDTO struct {
	TotalBudget   string            `json:"total_budget" binding:"required"`
	Duration      string            `json:"duration" binding:"required"`
	Accommodation string            `json:"accommodation"`
	Transport     string            `json:"transport"`
	Highlights    []string          `json:"highlights"`
	Itinerary     []DayItineraryDTO `json:"itinerary" binding:"dive"`
}

type TravelPlansResponse struct {
	Destination string                   `json:"destination"`
	Plans       map[string]BudgetPlanDTO `json:"plans"`
}

type CreateTravelPlanRequest struct {
	DestinationID    string         `json:"destination_id"`
	DestinationName  string         `json:"destination_name" binding:"required"`
	Backpacker       *BudgetPlanDTO `json:"backpacker" binding:"required"`
	TravelEnthusiast *BudgetPlanDTO `json:"travel_enthusiast" binding:"required"`
	Luxury           *BudgetPlanDTO `json:"luxury" binding:"required"`
}

type TravelPlanResponse struct {
	ID               string        `json:"id"`
	DestinationID    string        `json:"destination_id"`
	DestinationName  string        `json:"destination_name"`
	Backpacker       BudgetPlanDTO `json:"backpacker"`
	TravelEnthusiast BudgetPlanDTO `json:"travel_enthusiast"`
	Luxury           BudgetPlanDTO `json:"luxury"`
	CreatedAt        time.Time     `json:"created_at"`
}

// planResponseKeys maps tiers to the keys used in TravelPlansResponse.Plans.
var planResponseKeys = map[domain.BudgetTier]string{
	domain.TierBackpacker:       "backpacker",
	domain.TierTravelEnthusiast: "travelEnthusiast",
	domain.TierLuxury:           "luxury",
}

// --- Mappers ---

func MapDestinationToResponse(d *domain.Destination) DestinationResponse {
	return DestinationResponse{
		ID:        d.ID,
		Name:      d.Name,
		Country:   d.Country,
		Popular:   d.Popular,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
	}
}

func MapDestinationsToResponse(destinations []domain.Destination) []DestinationResponse {
	out := make([]DestinationResponse, len(destinations))
	for i := range destinations {
		out[i] = MapDestinationToResponse(&destinations[i])
	}
	return out
}

func MapBudgetPlanToDTO(p domain.BudgetPlan) BudgetPlanDTO {
	highlights := p.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	itinerary := make([]DayItineraryDTO, len(p.Itinerary))
	for i, day := range p.Itinerary {
		activities := make([]ActivityDTO, len(day.Activities))
		for j, a := range day.Activities {
			activities[j] = ActivityDTO{Time: a.Time, Task: a.Task, Type: a.Type}
		}
		itinerary[i] = DayItineraryDTO{Day: day.Day, Title: day.Title, Activities: activities}
	}
	return BudgetPlanDTO{
		TotalBudget:   p.TotalBudget,
		Duration:      p.Duration,
		Accommodation: p.Accommodation,
		Transport:     p.Transport,
		Highlights:    highlights,
		Itinerary:     itinerary,
	}
}

func MapDTOToBudgetPlan(dto *BudgetPlanDTO) domain.BudgetPlan {
	itinerary := make([]domain.DayItinerary, len(dto.Itinerary))
	for i, day := range dto.Itinerary {
		activities := make([]domain.Activity, len(day.Activities))
		for j, a := range day.Activities {
			activities[j] = domain.Activity{Time: a.Time, Task: a.Task, Type: a.Type}
		}
		itinerary[i] = domain.DayItinerary{Day: day.Day, Title: day.Title, Activities: activities}
	}
	return domain.BudgetPlan{
		TotalBudget:   dto.TotalBudget,
		Duration:      dto.Duration,
		Accommodation: dto.Accommodation,
		Transport:     dto.Transport,
		Highlights:    dto.Highlights,
		Itinerary:     itinerary,
	}
}

func MapTravelPlanToPlansResponse(p *domain.TravelPlan) TravelPlansResponse {
	plans := make(map[string]BudgetPlanDTO, len(planResponseKeys))
	for tier, key := range planResponseKeys {
		bp, _ := p.PlanFor(tier)
		plans[key] = MapBudgetPlanToDTO(bp)
	}
	return TravelPlansResponse{Destination: p.DestinationName, Plans: plans}
}

func MapTravelPlanToResponse(p *domain.TravelPlan) TravelPlanResponse {
	return TravelPlanResponse{
		ID:               p.ID,
		DestinationID:    p.DestinationID,
		DestinationName:  p.DestinationName,
		Backpacker:       MapBudgetPlanToDTO(p.Backpacker),
		TravelEnthusiast: MapBudgetPlanToDTO(p.TravelEnthusiast),
		Luxury:           MapBudgetPlanToDTO(p.Luxury),
		CreatedAt:        p.CreatedAt,
	}
}

// --- Handler Methods ---

// GetDestinations godoc
// @Summary List destinations
// @Tags Destinations
// @Produce json
// @Param popular query bool false "Only popular destinations"
// @Success 200 {array} DestinationResponse
// @Failure 422 {object} gin.H "Invalid popular flag"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /destinations [get]
func (h *DestinationHandler) GetDestinations(c *gin.Context) {
	popular, err := strconv.ParseBool(c.DefaultQuery("popular", "false"))
	if err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "popular must be a boolean")
		return
	}

	destinations, err := h.destinationService.ListDestinations(c.Request.Context(), popular)
	if err != nil {
		h.logger.WithError(err).Error("error getting destinations")
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch destinations")
		return
	}
	c.JSON(http.StatusOK, MapDestinationsToResponse(destinations))
}

// GetTravelPlans godoc
// @Summary Get the three-tier travel plans of a destination
// @Tags Destinations
// @Produce json
// @Param name path string true "Destination name, matched ignoring case"
// @Success 200 {object} TravelPlansResponse
// @Failure 404 {object} gin.H "Travel plans not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /destinations/{name}/plans [get]
func (h *DestinationHandler) GetTravelPlans(c *gin.Context) {
	name := c.Param("name")

	plan, err := h.destinationService.GetTravelPlan(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrTravelPlanNotFound) {
			abortWithError(c, http.StatusNotFound, fmt.Sprintf("Travel plans not found for %s", name))
			return
		}
		h.logger.WithError(err).WithField("destination", name).Error("error getting travel plans")
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch travel plans")
		return
	}
	c.JSON(http.StatusOK, MapTravelPlanToPlansResponse(plan))
}

// CreateDestination godoc
// @Summary Add a destination
// @Tags Destinations
// @Accept json
// @Produce json
// @Param destination body CreateDestinationRequest true "Destination"
// @Success 201 {object} DestinationResponse
// @Failure 422 {object} gin.H "Validation error"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /destinations [post]
func (h *DestinationHandler) CreateDestination(c *gin.Context) {
	var req CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	destination, err := h.destinationService.CreateDestination(c.Request.Context(), service.CreateDestinationInput{
		Name:     req.Name,
		Country:  req.Country,
		Popular:  req.Popular,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.WithError(err).Error("error creating destination")
		abortWithError(c, http.StatusInternalServerError, "Failed to create destination")
		return
	}
	c.JSON(http.StatusCreated, MapDestinationToResponse(destination))
}

// CreateTravelPlan godoc
// @Summary Add travel plans for a destination
// @Tags Destinations
// @Accept json
// @Produce json
// @Param plan body CreateTravelPlanRequest true "Plans for all three tiers"
// @Success 201 {object} TravelPlanResponse
// @Failure 422 {object} gin.H "Validation error"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /travel-plans [post]
func (h *DestinationHandler) CreateTravelPlan(c *gin.Context) {
	var req CreateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	plan, err := h.destinationService.CreateTravelPlan(c.Request.Context(), &domain.TravelPlan{
		DestinationID:    req.DestinationID,
		DestinationName:  req.DestinationName,
		Backpacker:       MapDTOToBudgetPlan(req.Backpacker),
		TravelEnthusiast: MapDTOToBudgetPlan(req.TravelEnthusiast),
		Luxury:           MapDTOToBudgetPlan(req.Luxury),
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.WithError(err).Error("error creating travel plan")
		abortWithError(c, http.StatusInternalServerError, "Failed to create travel plan")
		return
	}
	c.JSON(http.StatusCreated, MapTravelPlanToResponse(plan))
}
