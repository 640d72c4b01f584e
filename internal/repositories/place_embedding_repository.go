package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"wayfare/internal/models/db_models"
)

type PlaceEmbeddingRepository interface {
	CreatePlace(ctx context.Context, place *db_models.PlaceEmbedding) error
	FindByCode(ctx context.Context, code string) (*db_models.PlaceEmbedding, error)
	SearchByVector(ctx context.Context, vector pgvector.Vector) ([]db_models.PlaceEmbedding, error)
}

type placeEmbeddingRepository struct {
	db *gorm.DB
}

func NewPlaceEmbeddingRepository(db *gorm.DB) PlaceEmbeddingRepository {
	return &placeEmbeddingRepository{
		db: db,
	}
}

func (p *placeEmbeddingRepository) CreatePlace(ctx context.Context, place *db_models.PlaceEmbedding) error {
	return p.db.WithContext(ctx).Create(place).Error
}

func (p *placeEmbeddingRepository) FindByCode(ctx context.Context, code string) (*db_models.PlaceEmbedding, error) {
	var place db_models.PlaceEmbedding
	err := p.db.WithContext(ctx).First(&place, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (p *placeEmbeddingRepository) SearchByVector(ctx context.Context, vector pgvector.Vector) ([]db_models.PlaceEmbedding, error) {
	var results []db_models.PlaceEmbedding

	vecStr := vector.String()

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM place_embeddings
        WHERE (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT 10
    `

	err := p.db.WithContext(ctx).Raw(query, vecStr).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
