package services

import (
	"context"
	"fmt"
	"strings"

	"wayfare/internal/models/db_models"
	"wayfare/internal/models/request_models"
	"wayfare/internal/models/response_models"
	"wayfare/internal/repositories"
	"wayfare/pkg/utils"
)

type PlaceServiceInterface interface {
	CreatePlace(ctx context.Context, req request_models.CreatePlaceRequest) (*response_models.PlaceResponse, error)
	GetPlaceByCode(ctx context.Context, code string) (*response_models.PlaceResponse, error)
}

// PlaceService maintains the known-place catalog the designer agent
// resolves locations against. Embeddings are computed at insert time.
type PlaceService struct {
	placeRepo repositories.PlaceEmbeddingRepository
	llm       utils.LLMClientInterface
}

func NewPlaceService(placeRepo repositories.PlaceEmbeddingRepository, llm utils.LLMClientInterface) PlaceServiceInterface {
	return &PlaceService{
		placeRepo: placeRepo,
		llm:       llm,
	}
}

func (s *PlaceService) CreatePlace(ctx context.Context, req request_models.CreatePlaceRequest) (*response_models.PlaceResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || req.Name == "" {
		return nil, utils.ErrInvalidInput
	}

	existing, err := s.placeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrPlaceAlreadyExists
	}

	embedding, err := s.llm.GetEmbedding(ctx, embeddingText(req))
	if err != nil {
		return nil, fmt.Errorf("embedding place %q: %w", req.Name, err)
	}

	place := &db_models.PlaceEmbedding{
		Name:        req.Name,
		Code:        code,
		Country:     req.Country,
		Description: req.Description,
		Embedding:   embedding,
	}
	if err := s.placeRepo.CreatePlace(ctx, place); err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := response_models.BuildPlaceResponse(place)
	return &out, nil
}

func (s *PlaceService) GetPlaceByCode(ctx context.Context, code string) (*response_models.PlaceResponse, error) {
	place, err := s.placeRepo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}
	out := response_models.BuildPlaceResponse(place)
	return &out, nil
}

func embeddingText(req request_models.CreatePlaceRequest) string {
	parts := []string{req.Name}
	if req.Country != "" {
		parts = append(parts, req.Country)
	}
	if req.Description != "" {
		parts = append(parts, req.Description)
	}
	return strings.Join(parts, ", ")
}
