package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wayfare/internal/models/db_models"
	"wayfare/pkg/utils"
)

type ItineraryRepository interface {
	CreateItinerary(ctx context.Context, itinerary *db_models.Itinerary) error
	GetItineraryById(ctx context.Context, itineraryId string) (*db_models.Itinerary, error)
	ListItinerariesByOwner(ctx context.Context, page int, pageSize int, ownerId string) ([]db_models.Itinerary, error)
	DeleteItinerary(ctx context.Context, itineraryId string) error

	AddSegment(ctx context.Context, itinerary *db_models.Itinerary, segment *db_models.Segment) error
	UpdateSegment(ctx context.Context, itinerary *db_models.Itinerary, segment *db_models.Segment) error
	DeleteSegment(ctx context.Context, itinerary *db_models.Itinerary, segmentId uuid.UUID) error
	ReplaceSegments(ctx context.Context, itinerary *db_models.Itinerary, segments []db_models.Segment) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{
		db: db,
	}
}

func (r *itineraryRepository) CreateItinerary(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) GetItineraryById(ctx context.Context, itineraryId string) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Travelers").
		Preload("Segments", func(db *gorm.DB) *gorm.DB {
			// Insertion order, not temporal order.
			return db.Order("created_at, id")
		}).
		First(&itinerary, "id = ?", itineraryId).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &itinerary, nil
}

func (r *itineraryRepository) ListItinerariesByOwner(ctx context.Context, page, pageSize int, ownerId string) ([]db_models.Itinerary, error) {
	var itineraries []db_models.Itinerary
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerId).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *itineraryRepository) DeleteItinerary(ctx context.Context, itineraryId string) error {
	res := r.db.WithContext(ctx).Delete(&db_models.Itinerary{}, "id = ?", itineraryId)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrItineraryNotFound
	}
	return nil
}

func (r *itineraryRepository) AddSegment(ctx context.Context, itinerary *db_models.Itinerary, segment *db_models.Segment) error {
	segment.ItineraryID = itinerary.ID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, itinerary); err != nil {
			return err
		}
		return tx.Create(segment).Error
	})
}

func (r *itineraryRepository) UpdateSegment(ctx context.Context, itinerary *db_models.Itinerary, segment *db_models.Segment) error {
	segment.ItineraryID = itinerary.ID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, itinerary); err != nil {
			return err
		}
		res := tx.Model(&db_models.Segment{}).
			Where("id = ? AND itinerary_id = ?", segment.ID, itinerary.ID).
			Select("*").Omit("id", "itinerary_id", "created_at").
			Updates(segment)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrSegmentNotFound
		}
		return nil
	})
}

func (r *itineraryRepository) DeleteSegment(ctx context.Context, itinerary *db_models.Itinerary, segmentId uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, itinerary); err != nil {
			return err
		}
		res := tx.Delete(&db_models.Segment{}, "id = ? AND itinerary_id = ?", segmentId, itinerary.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrSegmentNotFound
		}
		return nil
	})
}

func (r *itineraryRepository) ReplaceSegments(ctx context.Context, itinerary *db_models.Itinerary, segments []db_models.Segment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpVersion(tx, itinerary); err != nil {
			return err
		}
		for i := range segments {
			s := &segments[i]
			s.ItineraryID = itinerary.ID
			if err := tx.Save(s).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// bumpVersion is the compare-and-swap guard: the update only lands when
// the stored version still matches the loaded one.
func bumpVersion(tx *gorm.DB, itinerary *db_models.Itinerary) error {
	res := tx.Model(&db_models.Itinerary{}).
		Where("id = ? AND version = ?", itinerary.ID, itinerary.Version).
		Updates(map[string]interface{}{
			"version":    itinerary.Version + 1,
			"updated_at": time.Now().Unix(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrVersionConflict
	}
	itinerary.Version++
	return nil
}
