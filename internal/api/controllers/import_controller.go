package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfare/internal/models/request_models"
	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

type ImportController struct {
	importService services.ImportServiceInterface
}

func NewImportController(importService services.ImportServiceInterface) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// ImportContent godoc
// @Summary Extract candidate segments from raw content
// @Description Runs the LLM extraction pipeline over raw text (email, ICS, plain text) and returns reviewed candidates; nothing is persisted
// @Tags Import
// @Accept json
// @Produce json
// @Param request body request_models.ImportRequest true "Raw content and target itinerary"
// @Success 200 {object} response_models.ImportResponse
// @Security BearerAuth
// @Router /import [post]
func (i *ImportController) ImportContent(c *gin.Context) {
	var req request_models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "itinerary_id and raw are required")
		return
	}

	result, err := i.importService.ImportContent(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Content imported")
}
