package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfare/internal/models/request_models"
	"wayfare/pkg/utils"
)

func newPlaceTestService(places *fakePlaceRepo) PlaceServiceInterface {
	return NewPlaceService(places, &fakeLLMClient{})
}

func TestCreatePlaceNormalizesCodeAndStoresEmbedding(t *testing.T) {
	places := &fakePlaceRepo{}
	service := newPlaceTestService(places)

	resp, err := service.CreatePlace(context.Background(), request_models.CreatePlaceRequest{
		Name:    "Louvre Museum",
		Code:    " louvre ",
		Country: "France",
	})

	require.NoError(t, err)
	assert.Equal(t, "LOUVRE", resp.Code)
	assert.Equal(t, "Louvre Museum", resp.Name)

	require.Len(t, places.places, 1)
	stored := places.places[0]
	assert.Equal(t, "LOUVRE", stored.Code)
	assert.NotEmpty(t, stored.Embedding.Slice(), "embedding computed at insert time")
}

func TestCreatePlaceRejectsDuplicateCode(t *testing.T) {
	places := &fakePlaceRepo{}
	service := newPlaceTestService(places)

	_, err := service.CreatePlace(context.Background(), request_models.CreatePlaceRequest{
		Name: "Louvre Museum",
		Code: "LOUVRE",
	})
	require.NoError(t, err)

	_, err = service.CreatePlace(context.Background(), request_models.CreatePlaceRequest{
		Name: "The Louvre",
		Code: "louvre",
	})
	assert.ErrorIs(t, err, utils.ErrPlaceAlreadyExists)
	assert.Len(t, places.places, 1, "duplicate is not persisted")
}

func TestCreatePlaceRequiresNameAndCode(t *testing.T) {
	service := newPlaceTestService(&fakePlaceRepo{})

	_, err := service.CreatePlace(context.Background(), request_models.CreatePlaceRequest{Name: "Somewhere"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = service.CreatePlace(context.Background(), request_models.CreatePlaceRequest{Code: "SOME"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestGetPlaceByCode(t *testing.T) {
	places := &fakePlaceRepo{}
	service := newPlaceTestService(places)

	_, err := service.CreatePlace(context.Background(), request_models.CreatePlaceRequest{
		Name: "Narita International",
		Code: "NRT",
	})
	require.NoError(t, err)

	resp, err := service.GetPlaceByCode(context.Background(), "nrt")
	require.NoError(t, err)
	assert.Equal(t, "Narita International", resp.Name)

	_, err = service.GetPlaceByCode(context.Background(), "MISSING")
	assert.ErrorIs(t, err, utils.ErrPlaceNotFound)
}
