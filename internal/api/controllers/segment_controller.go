package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfare/internal/models/request_models"
	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

type SegmentController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewSegmentController(itineraryService services.ItineraryServiceInterface) *SegmentController {
	return &SegmentController{
		itineraryService: itineraryService,
	}
}

// AddSegment godoc
// @Summary Add a segment to an itinerary
// @Description Validates the segment first; error-severity rule failures block the add
// @Tags Segment
// @Accept json
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param request body request_models.SegmentPayload true "Segment"
// @Success 200 {object} response_models.SegmentMutationResponse
// @Failure 422 {object} utils.APIResponse "Blocked by validation"
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/segments [post]
func (s *SegmentController) AddSegment(c *gin.Context) {
	itineraryId := c.Param("itineraryId")

	var payload request_models.SegmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Kind, start_time and end_time are required")
		return
	}

	result, err := s.itineraryService.AddSegment(c.Request.Context(), itineraryId, &payload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if !result.Verdict.Valid {
		first := result.Verdict.Errors[0]
		msg := first.Message
		if first.Suggestion != "" {
			msg += ". " + first.Suggestion
		}
		utils.RespondBlocked(c, result, msg)
		return
	}

	utils.RespondSuccess(c, result, "Segment added successfully")
}

// UpdateSegment godoc
// @Summary Update a segment
// @Tags Segment
// @Accept json
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param segmentId path string true "Segment ID"
// @Param request body request_models.SegmentPayload true "Segment"
// @Success 200 {object} response_models.SegmentMutationResponse
// @Failure 422 {object} utils.APIResponse "Blocked by validation"
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/segments/{segmentId} [put]
func (s *SegmentController) UpdateSegment(c *gin.Context) {
	itineraryId := c.Param("itineraryId")
	segmentId := c.Param("segmentId")

	var payload request_models.SegmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Kind, start_time and end_time are required")
		return
	}

	result, err := s.itineraryService.UpdateSegment(c.Request.Context(), itineraryId, segmentId, &payload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if !result.Verdict.Valid {
		first := result.Verdict.Errors[0]
		msg := first.Message
		if first.Suggestion != "" {
			msg += ". " + first.Suggestion
		}
		utils.RespondBlocked(c, result, msg)
		return
	}

	utils.RespondSuccess(c, result, "Segment updated successfully")
}

// DeleteSegment godoc
// @Summary Delete a segment
// @Tags Segment
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param segmentId path string true "Segment ID"
// @Success 200 {object} response_models.SegmentMutationResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/segments/{segmentId} [delete]
func (s *SegmentController) DeleteSegment(c *gin.Context) {
	itineraryId := c.Param("itineraryId")
	segmentId := c.Param("segmentId")

	result, err := s.itineraryService.DeleteSegment(c.Request.Context(), itineraryId, segmentId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Segment deleted successfully")
}

// MoveSegment godoc
// @Summary Move a segment by a time delta
// @Description Shifts the segment and its dependency closure; post-move conflicts are surfaced as warnings, not rejections
// @Tags Segment
// @Accept json
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param segmentId path string true "Segment ID"
// @Param request body request_models.MoveSegmentRequest true "Delta in minutes"
// @Success 200 {object} response_models.MoveSegmentResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/segments/{segmentId}/move [post]
func (s *SegmentController) MoveSegment(c *gin.Context) {
	itineraryId := c.Param("itineraryId")
	segmentId := c.Param("segmentId")

	var req request_models.MoveSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DeltaMinutes == 0 {
		utils.RespondError(c, http.StatusBadRequest, "delta_minutes is required and must be non-zero")
		return
	}

	result, err := s.itineraryService.MoveSegment(c.Request.Context(), itineraryId, segmentId, req.DeltaMinutes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	msg := "Segment moved successfully"
	if result.ConflictWarning != "" {
		msg = "Segment moved with conflicts: " + result.ConflictWarning
	}
	utils.RespondSuccess(c, result, msg)
}
