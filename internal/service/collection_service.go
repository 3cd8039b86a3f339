package service

import (
	"context"
	"strings"

	"github.com/niyati34/college-meme-page/internal/cache"
	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/pagination"
	"github.com/niyati34/college-meme-page/internal/repository"
)

// CollectionService orchestrates user-curated meme collections.
type CollectionService struct {
	collectionRepo repository.CollectionRepository
	memeRepo       repository.MemeRepository
}

// CollectionInput is the payload for creating or updating a collection.
type CollectionInput struct {
	OwnerID     uint
	Name        string
	Description string
	CoverImage  string
	IsPublic    *bool
	Category    string
	Tags        []string
}

// CollectionPage is one page of collections plus pagination metadata.
type CollectionPage struct {
	Collections []*models.Collection `json:"collections"`
	Pagination  pagination.Meta      `json:"pagination"`
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(
	collectionRepo repository.CollectionRepository,
	memeRepo repository.MemeRepository,
) *CollectionService {
	return &CollectionService{collectionRepo: collectionRepo, memeRepo: memeRepo}
}

const maxCollectionNameLen = 100

func (s *CollectionService) CreateCollection(ctx context.Context, in CollectionInput) (*models.Collection, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Collection name is required")
	}
	if len(name) > maxCollectionNameLen {
		return nil, models.NewValidationError("Collection name too long (max 100 characters)")
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	collection := &models.Collection{
		Name:        name,
		Description: in.Description,
		AuthorID:    in.OwnerID,
		CoverImage:  in.CoverImage,
		IsPublic:    isPublic,
		Category:    in.Category,
		Tags:        cleanLabels(in.Tags),
	}
	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return s.collectionRepo.GetByID(ctx, collection.ID)
}

// GetCollection returns a collection. Private collections are visible only to
// their owner.
func (s *CollectionService) GetCollection(ctx context.Context, id, currentUserID uint) (*models.Collection, error) {
	// Anonymous reads only ever see public collections, so they can share a
	// cache entry. Owners bypass the cache to see private state.
	if currentUserID == 0 {
		var collection models.Collection
		err := cache.Aside(ctx, cache.CollectionKey(id), &collection, cache.CollectionTTL, func() error {
			c, err := s.collectionRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !c.IsPublic {
				return models.NewNotFoundError("Collection", id)
			}
			collection = *c
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &collection, nil
	}

	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !collection.IsPublic && collection.AuthorID != currentUserID {
		return nil, models.NewNotFoundError("Collection", id)
	}
	return collection, nil
}

func (s *CollectionService) ListPublicCollections(ctx context.Context, page pagination.Params) (*CollectionPage, error) {
	collections, total, err := s.collectionRepo.ListPublic(ctx, page)
	if err != nil {
		return nil, err
	}
	return &CollectionPage{Collections: collections, Pagination: pagination.NewMeta(page, total)}, nil
}

func (s *CollectionService) ListUserCollections(ctx context.Context, authorID uint, page pagination.Params, currentUserID uint) (*CollectionPage, error) {
	includePrivate := authorID == currentUserID
	collections, total, err := s.collectionRepo.ListByAuthor(ctx, authorID, includePrivate, page)
	if err != nil {
		return nil, err
	}
	return &CollectionPage{Collections: collections, Pagination: pagination.NewMeta(page, total)}, nil
}

func (s *CollectionService) UpdateCollection(ctx context.Context, id uint, in CollectionInput) (*models.Collection, error) {
	collection, err := s.ownedCollection(ctx, id, in.OwnerID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		if len(name) > maxCollectionNameLen {
			return nil, models.NewValidationError("Collection name too long (max 100 characters)")
		}
		collection.Name = name
	}
	if in.Description != "" {
		collection.Description = in.Description
	}
	if in.CoverImage != "" {
		collection.CoverImage = in.CoverImage
	}
	if in.IsPublic != nil {
		collection.IsPublic = *in.IsPublic
	}
	if in.Category != "" {
		collection.Category = in.Category
	}
	if in.Tags != nil {
		collection.Tags = cleanLabels(in.Tags)
	}

	if err := s.collectionRepo.Update(ctx, collection); err != nil {
		return nil, err
	}
	cache.InvalidateCollection(ctx, id)
	return s.collectionRepo.GetByID(ctx, id)
}

func (s *CollectionService) DeleteCollection(ctx context.Context, id, ownerID uint) error {
	if _, err := s.ownedCollection(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCollection(ctx, id)
	return nil
}

// AddMeme puts an active meme into the owner's collection.
func (s *CollectionService) AddMeme(ctx context.Context, collectionID, memeID, ownerID uint) error {
	if _, err := s.ownedCollection(ctx, collectionID, ownerID); err != nil {
		return err
	}

	meme, err := s.memeRepo.GetByID(ctx, memeID, 0)
	if err != nil {
		return err
	}
	if meme.Status != models.MemeStatusActive {
		return models.NewNotFoundError("Meme", memeID)
	}

	added, err := s.collectionRepo.AddMeme(ctx, collectionID, memeID)
	if err != nil {
		return err
	}
	if !added {
		return models.NewValidationError("Meme is already in this collection")
	}
	cache.InvalidateCollection(ctx, collectionID)
	return nil
}

func (s *CollectionService) RemoveMeme(ctx context.Context, collectionID, memeID, ownerID uint) error {
	if _, err := s.ownedCollection(ctx, collectionID, ownerID); err != nil {
		return err
	}

	removed, err := s.collectionRepo.RemoveMeme(ctx, collectionID, memeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Meme", memeID)
	}
	cache.InvalidateCollection(ctx, collectionID)
	return nil
}

func (s *CollectionService) ownedCollection(ctx context.Context, id, ownerID uint) (*models.Collection, error) {
	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection.AuthorID != ownerID {
		return nil, models.NewUnauthorizedError("Only the owner can modify this collection")
	}
	return collection, nil
}
