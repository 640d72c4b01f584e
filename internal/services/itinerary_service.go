package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"wayfare/internal/models/db_models"
	"wayfare/internal/models/request_models"
	"wayfare/internal/models/response_models"
	"wayfare/internal/repositories"
	"wayfare/internal/rules"
	"wayfare/internal/scheduler"
	"wayfare/pkg/utils"
)

type ItineraryServiceInterface interface {
	CreateItinerary(ctx context.Context, req request_models.CreateItineraryRequest, ownerId string) (*response_models.ItineraryResponse, error)
	GetItineraryById(ctx context.Context, itineraryId string) (*response_models.ItineraryDetailResponse, error)
	ListItinerariesByOwner(ctx context.Context, page int, pageSize int, ownerId string) ([]response_models.ItineraryResponse, error)
	DeleteItinerary(ctx context.Context, itineraryId string) error

	AddSegment(ctx context.Context, itineraryId string, payload *request_models.SegmentPayload) (*response_models.SegmentMutationResponse, error)
	UpdateSegment(ctx context.Context, itineraryId string, segmentId string, payload *request_models.SegmentPayload) (*response_models.SegmentMutationResponse, error)
	DeleteSegment(ctx context.Context, itineraryId string, segmentId string) (*response_models.SegmentMutationResponse, error)
	MoveSegment(ctx context.Context, itineraryId string, segmentId string, deltaMinutes int64) (*response_models.MoveSegmentResponse, error)
	ReviewItinerary(ctx context.Context, itineraryId string) ([]response_models.SegmentMutationResponse, error)
}

type ItineraryService struct {
	itineraryRepo repositories.ItineraryRepository
	engine        *rules.Engine
}

func NewItineraryService(itineraryRepo repositories.ItineraryRepository, engine *rules.Engine) ItineraryServiceInterface {
	return &ItineraryService{
		itineraryRepo: itineraryRepo,
		engine:        engine,
	}
}

func (s *ItineraryService) CreateItinerary(ctx context.Context, req request_models.CreateItineraryRequest, ownerId string) (*response_models.ItineraryResponse, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, utils.ErrInvalidInput
	}
	owner, err := uuid.Parse(ownerId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	itinerary := &db_models.Itinerary{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      db_models.ItineraryStatusDraft,
		Version:     1,
		OwnerID:     owner,
	}
	for _, t := range req.Travelers {
		itinerary.Travelers = append(itinerary.Travelers, db_models.Traveler{
			FullName: t.FullName,
			Email:    t.Email,
		})
	}

	if err := s.itineraryRepo.CreateItinerary(ctx, itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := response_models.BuildItineraryResponse(itinerary)
	return &out, nil
}

func (s *ItineraryService) GetItineraryById(ctx context.Context, itineraryId string) (*response_models.ItineraryDetailResponse, error) {
	itinerary, err := s.loadItinerary(ctx, itineraryId)
	if err != nil {
		return nil, err
	}
	return response_models.BuildItineraryDetailResponse(itinerary), nil
}

func (s *ItineraryService) ListItinerariesByOwner(ctx context.Context, page, pageSize int, ownerId string) ([]response_models.ItineraryResponse, error) {
	itineraries, err := s.itineraryRepo.ListItinerariesByOwner(ctx, page, pageSize, ownerId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ItineraryResponse, 0, len(itineraries))
	for i := range itineraries {
		out = append(out, response_models.BuildItineraryResponse(&itineraries[i]))
	}
	return out, nil
}

func (s *ItineraryService) DeleteItinerary(ctx context.Context, itineraryId string) error {
	err := s.itineraryRepo.DeleteItinerary(ctx, itineraryId)
	if err != nil {
		if errors.Is(err, utils.ErrItineraryNotFound) {
			return err
		}
		return utils.ErrDatabaseError
	}
	return nil
}

// AddSegment validates the segment against the itinerary and persists it
// only when no error-severity rule failed. Warnings never block; they are
// stored on the segment's metadata so they survive alongside it.
func (s *ItineraryService) AddSegment(ctx context.Context, itineraryId string, payload *request_models.SegmentPayload) (*response_models.SegmentMutationResponse, error) {
	itinerary, err := s.loadItinerary(ctx, itineraryId)
	if err != nil {
		return nil, err
	}

	segment, err := payload.ToSegment()
	if err != nil {
		return nil, err
	}
	if segment.ID == uuid.Nil {
		segment.ID = uuid.New()
	}

	verdict := s.engine.ValidateAdd(itinerary, segment)
	if !verdict.Valid {
		return &response_models.SegmentMutationResponse{Verdict: verdict}, nil
	}

	attachWarnings(segment, &verdict)
	if err := s.itineraryRepo.AddSegment(ctx, itinerary, segment); err != nil {
		return nil, mapRepoError(err)
	}

	resp := response_models.BuildSegmentResponse(segment)
	return &response_models.SegmentMutationResponse{Verdict: verdict, Segment: &resp}, nil
}

func (s *ItineraryService) UpdateSegment(ctx context.Context, itineraryId string, segmentId string, payload *request_models.SegmentPayload) (*response_models.SegmentMutationResponse, error) {
	itinerary, err := s.loadItinerary(ctx, itineraryId)
	if err != nil {
		return nil, err
	}
	segId, err := uuid.Parse(segmentId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if itinerary.FindSegment(segId) == nil {
		return nil, utils.ErrSegmentNotFound
	}

	segment, err := payload.ToSegment()
	if err != nil {
		return nil, err
	}
	segment.ID = segId

	verdict := s.engine.ValidateUpdate(itinerary, segment)
	if !verdict.Valid {
		return &response_models.SegmentMutationResponse{Verdict: verdict}, nil
	}

	attachWarnings(segment, &verdict)
	if err := s.itineraryRepo.UpdateSegment(ctx, itinerary, segment); err != nil {
		return nil, mapRepoError(err)
	}

	resp := response_models.BuildSegmentResponse(segment)
	return &response_models.SegmentMutationResponse{Verdict: verdict, Segment: &resp}, nil
}

func (s *ItineraryService) DeleteSegment(ctx context.Context, itineraryId string, segmentId string) (*response_models.SegmentMutationResponse, error) {
	itinerary, err := s.loadItinerary(ctx, itineraryId)
	if err != nil {
		return nil, err
	}
	segId, err := uuid.Parse(segmentId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if itinerary.FindSegment(segId) == nil {
		return nil, utils.ErrSegmentNotFound
	}

	verdict := s.engine.ValidateDelete(itinerary, segId)
	if !verdict.Valid {
		return &response_models.SegmentMutationResponse{Verdict: verdict}, nil
	}

	if err := s.itineraryRepo.DeleteSegment(ctx, itinerary, segId); err != nil {
		return nil, mapRepoError(err)
	}
	return &response_models.SegmentMutationResponse{Verdict: verdict}, nil
}

// MoveSegment shifts a segment and its dependency closure by the delta,
// then rescans for conflicts. A conflict does not reject the move, it is
// surfaced as a warning on the response ("warn but allow").
func (s *ItineraryService) MoveSegment(ctx context.Context, itineraryId string, segmentId string, deltaMinutes int64) (*response_models.MoveSegmentResponse, error) {
	itinerary, err := s.loadItinerary(ctx, itineraryId)
	if err != nil {
		return nil, err
	}
	segId, err := uuid.Parse(segmentId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	delta := time.Duration(deltaMinutes) * time.Minute
	shifted, err := scheduler.AdjustDependentSegments(itinerary.Segments, segId, delta)
	if err != nil {
		return nil, err
	}

	warning := ""
	if conflictErr := scheduler.ValidateNoConflicts(shifted); conflictErr != nil {
		warning = conflictErr.Error()
	}

	if err := s.itineraryRepo.ReplaceSegments(ctx, itinerary, shifted); err != nil {
		return nil, mapRepoError(err)
	}

	out := &response_models.MoveSegmentResponse{
		Segments:        make([]response_models.SegmentResponse, 0, len(shifted)),
		ConflictWarning: warning,
	}
	for i := range shifted {
		out.Segments = append(out.Segments, response_models.BuildSegmentResponse(&shifted[i]))
	}
	return out, nil
}

// ReviewItinerary re-validates every segment in place, for consistency
// reports in the CLI and UI.
func (s *ItineraryService) ReviewItinerary(ctx context.Context, itineraryId string) ([]response_models.SegmentMutationResponse, error) {
	itinerary, err := s.loadItinerary(ctx, itineraryId)
	if err != nil {
		return nil, err
	}

	out := make([]response_models.SegmentMutationResponse, 0, len(itinerary.Segments))
	for i := range itinerary.Segments {
		seg := itinerary.Segments[i]
		verdict := s.engine.ValidateUpdate(itinerary, &seg)
		resp := response_models.BuildSegmentResponse(&seg)
		out = append(out, response_models.SegmentMutationResponse{Verdict: verdict, Segment: &resp})
	}
	return out, nil
}

func (s *ItineraryService) loadItinerary(ctx context.Context, itineraryId string) (*db_models.Itinerary, error) {
	itinerary, err := s.itineraryRepo.GetItineraryById(ctx, itineraryId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return itinerary, nil
}

func attachWarnings(segment *db_models.Segment, verdict *rules.ValidationResult) {
	if len(verdict.Warnings) == 0 {
		return
	}
	if segment.Metadata == nil {
		segment.Metadata = make(map[string]string)
	}
	segment.Metadata["validation_warnings"] = strings.Join(verdict.WarningMessages(), "; ")
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, utils.ErrVersionConflict),
		errors.Is(err, utils.ErrSegmentNotFound),
		errors.Is(err, utils.ErrItineraryNotFound):
		return err
	default:
		return utils.ErrDatabaseError
	}
}
