package repository

import (
	"context"
	"errors"

	"github.com/niyati34/college-meme-page/internal/cache"
	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/pagination"

	"gorm.io/gorm"
)

// CollectionRepository defines persistence operations for collections.
type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetByID(ctx context.Context, id uint) (*models.Collection, error)
	ListPublic(ctx context.Context, page pagination.Params) ([]*models.Collection, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, includePrivate bool, page pagination.Params) ([]*models.Collection, int64, error)
	Update(ctx context.Context, collection *models.Collection) error
	Delete(ctx context.Context, id uint) error
	AddMeme(ctx context.Context, collectionID, memeID uint) (bool, error)
	RemoveMeme(ctx context.Context, collectionID, memeID uint) (bool, error)
}

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository returns a new CollectionRepository implementation.
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// withMemesCount adds the join-row count as a SELECT alias.
func withMemesCount(db *gorm.DB) *gorm.DB {
	return db.Select("collections.*, " +
		"(SELECT COUNT(*) FROM collection_memes WHERE collection_memes.collection_id = collections.id) as memes_count")
}

func (r *collectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	if err := r.db.WithContext(ctx).Create(collection).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id uint) (*models.Collection, error) {
	var collection models.Collection
	err := withMemesCount(r.db.WithContext(ctx)).
		Preload("Author").
		First(&collection, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Collection", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &collection, nil
}

func (r *collectionRepository) ListPublic(ctx context.Context, page pagination.Params) ([]*models.Collection, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Collection{}).Where("is_public = ?", true)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var collections []*models.Collection
	err := withMemesCount(base.Session(&gorm.Session{})).
		Preload("Author").
		Order("is_featured DESC, created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&collections).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return collections, total, nil
}

func (r *collectionRepository) ListByAuthor(ctx context.Context, authorID uint, includePrivate bool, page pagination.Params) ([]*models.Collection, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Collection{}).Where("author_id = ?", authorID)
	if !includePrivate {
		base = base.Where("is_public = ?", true)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var collections []*models.Collection
	err := withMemesCount(base.Session(&gorm.Session{})).
		Preload("Author").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&collections).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return collections, total, nil
}

func (r *collectionRepository) Update(ctx context.Context, collection *models.Collection) error {
	if err := r.db.WithContext(ctx).Omit("Memes").Save(collection).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCollection(ctx, collection.ID)
	return nil
}

func (r *collectionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Collection{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Collection", id)
	}
	if err := r.db.WithContext(ctx).Where("collection_id = ?", id).Delete(&models.CollectionMeme{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCollection(ctx, id)
	return nil
}

func (r *collectionRepository) AddMeme(ctx context.Context, collectionID, memeID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO collection_memes (collection_id, meme_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (collection_id, meme_id) DO NOTHING`,
		collectionID, memeID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateCollection(ctx, collectionID)
	}
	return result.RowsAffected > 0, nil
}

func (r *collectionRepository) RemoveMeme(ctx context.Context, collectionID, memeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("collection_id = ? AND meme_id = ?", collectionID, memeID).
		Delete(&models.CollectionMeme{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateCollection(ctx, collectionID)
	}
	return result.RowsAffected > 0, nil
}
