package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niyati34/college-meme-page/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestCreateCollectionDefaultsToPublic(t *testing.T) {
	repo := newCollectionRepoStub()
	svc := NewCollectionService(repo, noopMemeRepo())

	created, err := svc.CreateCollection(context.Background(), CollectionInput{
		OwnerID: 1,
		Name:    "  Exam Week  ",
		Tags:    []string{"exams", "exams", " stress "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Exam Week", created.Name)
	assert.True(t, created.IsPublic)
	assert.Equal(t, []string{"exams", "stress"}, []string(created.Tags))
}

func TestCreateCollectionValidation(t *testing.T) {
	svc := NewCollectionService(newCollectionRepoStub(), noopMemeRepo())

	_, err := svc.CreateCollection(context.Background(), CollectionInput{OwnerID: 1, Name: "  "})
	assertValidationError(t, err, "name is required")

	_, err = svc.CreateCollection(context.Background(), CollectionInput{
		OwnerID: 1,
		Name:    strings.Repeat("x", maxCollectionNameLen+1),
	})
	assertValidationError(t, err, "name too long")
}

func TestGetCollectionPrivateVisibility(t *testing.T) {
	repo := newCollectionRepoStub()
	svc := NewCollectionService(repo, noopMemeRepo())

	created, err := svc.CreateCollection(context.Background(), CollectionInput{
		OwnerID:  1,
		Name:     "Drafts",
		IsPublic: boolPtr(false),
	})
	require.NoError(t, err)

	got, err := svc.GetCollection(context.Background(), created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetCollection(context.Background(), created.ID, 2)
	assertNotFoundError(t, err)

	_, err = svc.GetCollection(context.Background(), created.ID, 0)
	assertNotFoundError(t, err)
}

func TestUpdateCollectionOwnerOnly(t *testing.T) {
	repo := newCollectionRepoStub()
	svc := NewCollectionService(repo, noopMemeRepo())

	created, err := svc.CreateCollection(context.Background(), CollectionInput{OwnerID: 1, Name: "Memes"})
	require.NoError(t, err)

	_, err = svc.UpdateCollection(context.Background(), created.ID, CollectionInput{OwnerID: 2, Name: "Hijacked"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)

	updated, err := svc.UpdateCollection(context.Background(), created.ID, CollectionInput{
		OwnerID:  1,
		Name:     "Best Memes",
		IsPublic: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Best Memes", updated.Name)
	assert.False(t, updated.IsPublic)
}

func TestAddMemeMembership(t *testing.T) {
	repo := newCollectionRepoStub()
	memeRepo := noopMemeRepo()
	svc := NewCollectionService(repo, memeRepo)

	created, err := svc.CreateCollection(context.Background(), CollectionInput{OwnerID: 1, Name: "Memes"})
	require.NoError(t, err)

	require.NoError(t, svc.AddMeme(context.Background(), created.ID, 7, 1))

	err = svc.AddMeme(context.Background(), created.ID, 7, 1)
	assertValidationError(t, err, "already in this collection")

	require.NoError(t, svc.RemoveMeme(context.Background(), created.ID, 7, 1))

	err = svc.RemoveMeme(context.Background(), created.ID, 7, 1)
	assertNotFoundError(t, err)
}

func TestAddMemeRejectsInactive(t *testing.T) {
	repo := newCollectionRepoStub()
	memeRepo := noopMemeRepo()
	memeRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		return &models.Meme{ID: id, Status: models.MemeStatusInactive}, nil
	}
	svc := NewCollectionService(repo, memeRepo)

	created, err := svc.CreateCollection(context.Background(), CollectionInput{OwnerID: 1, Name: "Memes"})
	require.NoError(t, err)

	err = svc.AddMeme(context.Background(), created.ID, 7, 1)
	assertNotFoundError(t, err)
}

func TestDeleteCollectionOwnerOnly(t *testing.T) {
	repo := newCollectionRepoStub()
	svc := NewCollectionService(repo, noopMemeRepo())

	created, err := svc.CreateCollection(context.Background(), CollectionInput{OwnerID: 1, Name: "Memes"})
	require.NoError(t, err)

	err = svc.DeleteCollection(context.Background(), created.ID, 2)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)

	require.NoError(t, svc.DeleteCollection(context.Background(), created.ID, 1))

	_, err = svc.GetCollection(context.Background(), created.ID, 1)
	assertNotFoundError(t, err)
}
