package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfare/internal/models/request_models"
	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

type DesignerController struct {
	designerService services.DesignerServiceInterface
}

func NewDesignerController(designerService services.DesignerServiceInterface) *DesignerController {
	return &DesignerController{
		designerService: designerService,
	}
}

// Chat godoc
// @Summary Talk to the trip designer agent
// @Description Continues (or starts) a designer session; segment proposals come back with rule-engine verdicts attached
// @Tags Designer
// @Accept json
// @Produce json
// @Param request body request_models.DesignerChatRequest true "Message"
// @Success 200 {object} response_models.DesignerChatResponse
// @Security BearerAuth
// @Router /designer/chat [post]
func (d *DesignerController) Chat(c *gin.Context) {
	var req request_models.DesignerChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "itinerary_id and message are required")
		return
	}

	result, err := d.designerService.Chat(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Designer replied")
}
