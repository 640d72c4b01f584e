package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wayfare/internal/models/request_models"
	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// CreateItinerary godoc
// @Summary Create an itinerary
// @Description Create a new itinerary owned by the authenticated user
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.CreateItineraryRequest true "Itinerary"
// @Success 200 {object} response_models.ItineraryResponse
// @Security BearerAuth
// @Router /itineraries [post]
func (i *ItineraryController) CreateItinerary(c *gin.Context) {
	var req request_models.CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Title is required")
		return
	}

	ownerId := c.GetString("user_id")

	itinerary, err := i.itineraryService.CreateItinerary(c.Request.Context(), req, ownerId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary created successfully")
}

// GetItineraryById godoc
// @Summary Get itinerary details
// @Tags Itinerary
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryDetailResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId} [get]
func (i *ItineraryController) GetItineraryById(c *gin.Context) {
	itineraryId := c.Param("itineraryId")
	if itineraryId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	itinerary, err := i.itineraryService.GetItineraryById(c.Request.Context(), itineraryId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

// ListItineraries godoc
// @Summary List itineraries for the authenticated user
// @Tags Itinerary
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5) minimum(1) maximum(100)
// @Success 200 {array} response_models.ItineraryResponse
// @Security BearerAuth
// @Router /itineraries [get]
func (i *ItineraryController) ListItineraries(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "5")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	ownerId := c.GetString("user_id")

	itineraries, err := i.itineraryService.ListItinerariesByOwner(c.Request.Context(), page, pageSize, ownerId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itineraries, "Itineraries fetched successfully")
}

// DeleteItinerary godoc
// @Summary Delete an itinerary by ID
// @Tags Itinerary
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId} [delete]
func (i *ItineraryController) DeleteItinerary(c *gin.Context) {
	itineraryId := c.Param("itineraryId")
	if itineraryId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	if err := i.itineraryService.DeleteItinerary(c.Request.Context(), itineraryId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Itinerary deleted successfully")
}

// ReviewItinerary godoc
// @Summary Re-validate every segment of an itinerary
// @Description Runs the full rule catalog over each segment and returns per-segment verdicts
// @Tags Itinerary
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {array} response_models.SegmentMutationResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/review [get]
func (i *ItineraryController) ReviewItinerary(c *gin.Context) {
	itineraryId := c.Param("itineraryId")
	if itineraryId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	reviews, err := i.itineraryService.ReviewItinerary(c.Request.Context(), itineraryId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Itinerary reviewed")
}
