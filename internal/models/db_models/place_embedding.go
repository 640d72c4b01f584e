package db_models

import "github.com/pgvector/pgvector-go"

// PlaceEmbedding is a known place (city, airport, venue) with a vector
// embedding of its description, used by the trip designer to resolve
// free-form place mentions to canonical locations.
type PlaceEmbedding struct {
	BaseModel
	Name        string
	Code        string `gorm:"index"`
	Country     string
	Description string
	Embedding   pgvector.Vector `gorm:"type:vector(1536)"`

	// Similarity is populated by vector search queries, not stored.
	Similarity float64 `gorm:"-"`
}

func (PlaceEmbedding) TableName() string {
	return "place_embeddings"
}
