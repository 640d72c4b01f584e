package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfare/internal/models/request_models"
	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

type PlaceController struct {
	placeService services.PlaceServiceInterface
}

func NewPlaceController(placeService services.PlaceServiceInterface) *PlaceController {
	return &PlaceController{
		placeService: placeService,
	}
}

// CreatePlace godoc
// @Summary Register a known place
// @Description Adds a place to the catalog the designer agent resolves locations against; the embedding is computed on insert
// @Tags Place
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlaceRequest true "Place"
// @Success 200 {object} response_models.PlaceResponse
// @Security BearerAuth
// @Router /places [post]
func (p *PlaceController) CreatePlace(c *gin.Context) {
	var req request_models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "name and code are required")
		return
	}

	place, err := p.placeService.CreatePlace(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place registered successfully")
}

// GetPlaceByCode godoc
// @Summary Look up a place by code
// @Tags Place
// @Produce json
// @Param code path string true "Place code"
// @Success 200 {object} response_models.PlaceResponse
// @Security BearerAuth
// @Router /places/{code} [get]
func (p *PlaceController) GetPlaceByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place code is required")
		return
	}

	place, err := p.placeService.GetPlaceByCode(c.Request.Context(), code)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place fetched successfully")
}
