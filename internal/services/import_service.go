package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"wayfare/internal/models/db_models"
	"wayfare/internal/models/request_models"
	"wayfare/internal/models/response_models"
	"wayfare/internal/repositories"
	"wayfare/internal/rules"
	"wayfare/pkg/utils"
)

type ImportServiceInterface interface {
	ImportContent(ctx context.Context, req request_models.ImportRequest) (*response_models.ImportResponse, error)
}

// ImportService runs the LLM extraction pipeline: raw content in,
// reviewed candidate segments out. Nothing is persisted here; the caller
// picks candidates and adds them through the itinerary service.
type ImportService struct {
	itineraryRepo repositories.ItineraryRepository
	llm           utils.LLMClientInterface
	engine        *rules.Engine
}

func NewImportService(itineraryRepo repositories.ItineraryRepository, llm utils.LLMClientInterface, engine *rules.Engine) ImportServiceInterface {
	return &ImportService{
		itineraryRepo: itineraryRepo,
		llm:           llm,
		engine:        engine,
	}
}

func (s *ImportService) ImportContent(ctx context.Context, req request_models.ImportRequest) (*response_models.ImportResponse, error) {
	itinerary, err := s.itineraryRepo.GetItineraryById(ctx, req.ItineraryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	doc, err := s.llm.ExtractSegmentsJSON(ctx, req.Raw, req.FormatHint)
	if err != nil {
		log.Printf("extraction failed: %v", err)
		return nil, err
	}

	var extraction request_models.ExtractionDocument
	if err := json.Unmarshal([]byte(doc), &extraction); err != nil {
		log.Printf("extraction returned undecodable json: %v", err)
		return nil, utils.ErrInvalidInput
	}

	out := &response_models.ImportResponse{
		Candidates: make([]response_models.CandidateReview, 0, len(extraction.Segments)),
	}
	for i := range extraction.Segments {
		candidate := &extraction.Segments[i]
		segment, err := candidate.ToSegment()
		if err != nil {
			log.Printf("dropping malformed candidate %d: %v", i, err)
			continue
		}
		segment.ID = uuid.New()
		segment.Source = db_models.SegmentSourceImport

		verdict := s.engine.ValidateAdd(itinerary, segment)
		out.Candidates = append(out.Candidates, response_models.CandidateReview{
			Segment:    response_models.BuildSegmentResponse(segment),
			Confidence: candidate.Confidence,
			Verdict:    verdict,
		})
	}
	return out, nil
}
