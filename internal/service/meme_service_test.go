package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/pagination"
	"github.com/niyati34/college-meme-page/internal/repository"
)

func assertValidationError(t *testing.T, err error, contains string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	if contains != "" {
		assert.Contains(t, appErr.Message, contains)
	}
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestCreateMemeValidation(t *testing.T) {
	svc := NewMemeService(noopMemeRepo(), nil, nil, adminChecker())

	tests := []struct {
		name     string
		input    CreateMemeInput
		contains string
	}{
		{
			name:     "empty title",
			input:    CreateMemeInput{AuthorID: 1, Title: "   ", MediaURL: "https://cdn.example.com/a.jpg"},
			contains: "Title is required",
		},
		{
			name:     "missing media url",
			input:    CreateMemeInput{AuthorID: 1, Title: "hello"},
			contains: "media_url is required",
		},
		{
			name:     "malformed media url",
			input:    CreateMemeInput{AuthorID: 1, Title: "hello", MediaURL: "not a url"},
			contains: "valid URL",
		},
		{
			name:     "bad aspect ratio",
			input:    CreateMemeInput{AuthorID: 1, Title: "hello", MediaURL: "https://cdn.example.com/a.jpg", AspectRatio: "wide"},
			contains: "aspect_ratio",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMeme(context.Background(), tt.input)
			assertValidationError(t, err, tt.contains)
		})
	}
}

func TestCreateMemeDefaultsAndLabels(t *testing.T) {
	repo := noopMemeRepo()
	var created *models.Meme
	repo.createFn = func(_ context.Context, m *models.Meme) error {
		m.ID = 7
		created = m
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		return created, nil
	}
	svc := NewMemeService(repo, nil, nil, adminChecker())

	view, err := svc.CreateMeme(context.Background(), CreateMemeInput{
		AuthorID:   3,
		Title:      "  exam season  ",
		MediaURL:   "https://cdn.example.com/exam.mp4",
		Categories: []string{"college", " college ", "", "Exams"},
		Tags:       []string{"finals", "finals", "library"},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), view.ID)
	assert.Equal(t, "exam season", created.Title)
	assert.Equal(t, models.AspectRatioNormal, created.AspectRatio)
	assert.Equal(t, models.MediaTypeVideo, created.MediaType)
	assert.Equal(t, models.MemeStatusActive, created.Status)
	assert.Equal(t, []string{"college", "Exams"}, []string(created.Categories))
	assert.Equal(t, []string{"finals", "library"}, []string(created.Tags))
}

func TestListMemesTrendingEnsuresScores(t *testing.T) {
	repo := noopMemeRepo()
	scored := 0
	repo.ensureScoredFn = func(_ context.Context) (int64, error) {
		scored++
		return 2, nil
	}
	var gotFilter repository.ListFilter
	repo.listFn = func(_ context.Context, filter repository.ListFilter, _ pagination.Params, _ uint) ([]*models.Meme, int64, error) {
		gotFilter = filter
		return []*models.Meme{{ID: 1, Status: models.MemeStatusActive}}, 1, nil
	}
	svc := NewMemeService(repo, nil, nil, adminChecker())

	page, err := svc.ListMemes(context.Background(), ListMemesInput{
		Page:          pagination.Params{Page: 1, Limit: 20},
		SortBy:        models.SortTrending,
		CurrentUserID: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, scored)
	assert.Equal(t, models.SortTrending, gotFilter.Sort)
	assert.Len(t, page.Memes, 1)
	assert.Equal(t, int64(1), page.Pagination.TotalItems)
}

func TestListMemesNonTrendingSkipsScoring(t *testing.T) {
	repo := noopMemeRepo()
	repo.ensureScoredFn = func(_ context.Context) (int64, error) {
		t.Fatal("EnsureScored should not run for non-trending sorts")
		return 0, nil
	}
	svc := NewMemeService(repo, nil, nil, adminChecker())

	_, err := svc.ListMemes(context.Background(), ListMemesInput{
		Page:          pagination.Params{Page: 1, Limit: 20},
		CurrentUserID: 5,
	})
	require.NoError(t, err)
}

func TestSearchMemesRequiresQuery(t *testing.T) {
	svc := NewMemeService(noopMemeRepo(), nil, nil, adminChecker())

	_, err := svc.SearchMemes(context.Background(), "   ", pagination.Params{Page: 1, Limit: 20}, 0)
	assertValidationError(t, err, "Search query is required")
}

func TestTrendingMemesClampsLimit(t *testing.T) {
	repo := noopMemeRepo()
	var gotLimit int
	repo.listFn = func(_ context.Context, _ repository.ListFilter, page pagination.Params, _ uint) ([]*models.Meme, int64, error) {
		gotLimit = page.Limit
		return nil, 0, nil
	}
	svc := NewMemeService(repo, nil, nil, adminChecker())

	_, err := svc.TrendingMemes(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)

	_, err = svc.TrendingMemes(context.Background(), 9999, 1)
	require.NoError(t, err)
	assert.Equal(t, pagination.MaxLimit, gotLimit)
}

func TestGetMemeVisibility(t *testing.T) {
	memes := map[uint]*models.Meme{
		1: {ID: 1, AuthorID: 10, Status: models.MemeStatusActive},
		2: {ID: 2, AuthorID: 10, Status: models.MemeStatusInactive},
		3: {ID: 3, AuthorID: 10, Status: models.MemeStatusDeleted},
	}
	repo := noopMemeRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		if m, ok := memes[id]; ok {
			return m, nil
		}
		return nil, models.NewNotFoundError("Meme", id)
	}
	svc := NewMemeService(repo, nil, nil, adminChecker(99))

	tests := []struct {
		name          string
		memeID        uint
		currentUserID uint
		visible       bool
	}{
		{"active meme visible to anyone", 1, 0, true},
		{"inactive hidden from anonymous", 2, 0, false},
		{"inactive hidden from other users", 2, 20, false},
		{"inactive visible to author", 2, 10, true},
		{"inactive visible to admin", 2, 99, true},
		{"deleted hidden from author", 3, 10, false},
		{"deleted hidden from admin", 3, 99, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.GetMeme(context.Background(), tt.memeID, tt.currentUserID)
			if tt.visible {
				require.NoError(t, err)
				assert.Equal(t, tt.memeID, view.ID)
			} else {
				assertNotFoundError(t, err)
			}
		})
	}
}

func TestToggleReactionAddNotifiesAuthor(t *testing.T) {
	repo := noopMemeRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		return &models.Meme{ID: id, AuthorID: 10, Status: models.MemeStatusActive}, nil
	}
	store := &notificationRepoStub{}
	pusher := &notifierStub{}
	svc := NewMemeService(repo, store, pusher, adminChecker())

	liked, err := svc.ToggleReaction(context.Background(), 5, 1, models.ReactionLike)
	require.NoError(t, err)
	assert.True(t, liked)

	require.Len(t, store.created, 1)
	assert.Equal(t, uint(10), store.created[0].RecipientID)
	assert.Equal(t, uint(5), store.created[0].ActorID)
	assert.Equal(t, models.NotificationLike, store.created[0].Type)
	require.Len(t, pusher.published, 1)
	assert.Equal(t, models.NotificationLike, pusher.published[0].Type)
}

func TestToggleReactionRemoveOnSecondToggle(t *testing.T) {
	repo := noopMemeRepo()
	repo.reactFn = func(_ context.Context, _, _ uint, _ string) (bool, error) { return false, nil }
	unreacted := false
	repo.unreactFn = func(_ context.Context, _, _ uint, _ string) (bool, error) {
		unreacted = true
		return true, nil
	}
	store := &notificationRepoStub{}
	svc := NewMemeService(repo, store, nil, adminChecker())

	liked, err := svc.ToggleReaction(context.Background(), 5, 1, models.ReactionLike)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.True(t, unreacted)
	assert.Empty(t, store.created, "removing a reaction must not notify")
}

func TestToggleReactionSelfLikeSkipsNotification(t *testing.T) {
	repo := noopMemeRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		return &models.Meme{ID: id, AuthorID: 5, Status: models.MemeStatusActive}, nil
	}
	store := &notificationRepoStub{}
	svc := NewMemeService(repo, store, nil, adminChecker())

	liked, err := svc.ToggleReaction(context.Background(), 5, 1, models.ReactionLike)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Empty(t, store.created)
}

func TestToggleReactionDislikeDoesNotNotify(t *testing.T) {
	repo := noopMemeRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		return &models.Meme{ID: id, AuthorID: 10, Status: models.MemeStatusActive}, nil
	}
	store := &notificationRepoStub{}
	svc := NewMemeService(repo, store, nil, adminChecker())

	_, err := svc.ToggleReaction(context.Background(), 5, 1, models.ReactionDislike)
	require.NoError(t, err)
	assert.Empty(t, store.created)
}

func TestToggleReactionRejectsUnknownKind(t *testing.T) {
	svc := NewMemeService(noopMemeRepo(), nil, nil, adminChecker())

	_, err := svc.ToggleReaction(context.Background(), 5, 1, "love")
	assertValidationError(t, err, "reaction kind")
}

func TestToggleReactionInactiveMeme(t *testing.T) {
	repo := noopMemeRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		return &models.Meme{ID: id, AuthorID: 10, Status: models.MemeStatusInactive}, nil
	}
	svc := NewMemeService(repo, nil, nil, adminChecker())

	_, err := svc.ToggleReaction(context.Background(), 5, 1, models.ReactionLike)
	assertNotFoundError(t, err)
}

func TestDeleteMemePermissions(t *testing.T) {
	repo := noopMemeRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		return &models.Meme{ID: id, AuthorID: 10, Status: models.MemeStatusActive}, nil
	}
	deleted := 0
	repo.deleteFn = func(_ context.Context, _ uint) error {
		deleted++
		return nil
	}
	svc := NewMemeService(repo, nil, nil, adminChecker(99))

	require.NoError(t, svc.DeleteMeme(context.Background(), 10, 1), "author can delete")
	require.NoError(t, svc.DeleteMeme(context.Background(), 99, 1), "admin can delete")
	assert.Equal(t, 2, deleted)

	err := svc.DeleteMeme(context.Background(), 20, 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
	assert.Equal(t, 2, deleted)
}

func TestSetStatusTransitions(t *testing.T) {
	repo := noopMemeRepo()
	current := models.MemeStatusActive
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Meme, error) {
		return &models.Meme{ID: id, Status: current}, nil
	}
	var applied string
	repo.updateStatusFn = func(_ context.Context, _ uint, status string) error {
		applied = status
		return nil
	}
	svc := NewMemeService(repo, nil, nil, adminChecker())

	require.NoError(t, svc.SetStatus(context.Background(), 1, models.MemeStatusInactive))
	assert.Equal(t, models.MemeStatusInactive, applied)

	err := svc.SetStatus(context.Background(), 1, models.MemeStatusDeleted)
	assertValidationError(t, err, "delete operation")

	err = svc.SetStatus(context.Background(), 1, "archived")
	assertValidationError(t, err, "Invalid status")

	current = models.MemeStatusDeleted
	err = svc.SetStatus(context.Background(), 1, models.MemeStatusActive)
	assertValidationError(t, err, "Deleted memes")
}

func TestRegisterViewPropagatesError(t *testing.T) {
	repo := noopMemeRepo()
	repo.incrementViewsFn = func(_ context.Context, _ uint) error {
		return errors.New("db down")
	}
	svc := NewMemeService(repo, nil, nil, adminChecker())

	assert.Error(t, svc.RegisterView(context.Background(), 1))
}
