// Package service contains business logic orchestration between handlers and repositories.
package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/niyati34/college-meme-page/internal/cache"
	"github.com/niyati34/college-meme-page/internal/media"
	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/notifications"
	"github.com/niyati34/college-meme-page/internal/pagination"
	"github.com/niyati34/college-meme-page/internal/repository"
)

// Notifier is the push side of the notification pipeline. The concrete
// implementation publishes to Redis; a nil notifier disables pushes.
type Notifier interface {
	PublishUser(ctx context.Context, userID uint, event notifications.Event) error
}

// MemeService orchestrates meme reads, writes and reactions.
type MemeService struct {
	memeRepo         repository.MemeRepository
	notificationRepo repository.NotificationRepository
	notifier         Notifier
	isAdmin          func(ctx context.Context, userID uint) (bool, error)
}

// CreateMemeInput is the payload for publishing a meme from a hosted media URL.
type CreateMemeInput struct {
	AuthorID    uint
	Title       string
	MediaURL    string
	AspectRatio string
	Categories  []string
	Tags        []string
}

// ListMemesInput carries the validated listing parameters.
type ListMemesInput struct {
	Page          pagination.Params
	Category      string
	Search        string
	Tags          []string
	SortBy        string
	CurrentUserID uint
}

// MemePage is one page of meme views plus its pagination metadata.
type MemePage struct {
	Memes      []models.MemeView `json:"memes"`
	Pagination pagination.Meta   `json:"pagination"`
}

// NewMemeService creates a new MemeService.
func NewMemeService(
	memeRepo repository.MemeRepository,
	notificationRepo repository.NotificationRepository,
	notifier Notifier,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *MemeService {
	return &MemeService{
		memeRepo:         memeRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		isAdmin:          isAdmin,
	}
}

const maxTitleLen = 300

func (s *MemeService) CreateMeme(ctx context.Context, in CreateMemeInput) (*models.MemeView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.MediaURL) == "" {
		return nil, models.NewValidationError("media_url is required")
	}
	if _, err := url.ParseRequestURI(in.MediaURL); err != nil {
		return nil, models.NewValidationError("media_url must be a valid URL")
	}

	aspect := in.AspectRatio
	switch aspect {
	case "":
		aspect = models.AspectRatioNormal
	case models.AspectRatioNormal, models.AspectRatioReel:
		// valid
	default:
		return nil, models.NewValidationError("Invalid aspect_ratio")
	}

	meme := &models.Meme{
		Title:       title,
		MediaURL:    in.MediaURL,
		MediaType:   media.KindFromURL(in.MediaURL),
		AspectRatio: aspect,
		AuthorID:    in.AuthorID,
		Categories:  cleanLabels(in.Categories),
		Tags:        cleanLabels(in.Tags),
		Status:      models.MemeStatusActive,
	}
	if err := s.memeRepo.Create(ctx, meme); err != nil {
		return nil, err
	}
	cache.BumpMemeListVersion(ctx)

	return s.GetMeme(ctx, meme.ID, in.AuthorID)
}

// cleanLabels trims entries and drops empties and duplicates, preserving order.
func cleanLabels(labels []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		key := strings.ToLower(l)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}

func (s *MemeService) ListMemes(ctx context.Context, in ListMemesInput) (*MemePage, error) {
	filter := repository.ListFilter{
		Category: in.Category,
		Search:   strings.TrimSpace(in.Search),
		Tags:     cleanLabels(in.Tags),
		Sort:     in.SortBy,
	}

	// Trending reads depend on materialized scores; make sure unscored rows
	// get one before the window is computed.
	if in.SortBy == models.SortTrending {
		if _, err := s.memeRepo.EnsureScored(ctx); err != nil {
			return nil, err
		}
	}

	var memes []*models.Meme
	var total int64
	var err error

	type cachedPage struct {
		Memes []*models.Meme `json:"memes"`
		Total int64          `json:"total"`
	}

	if in.CurrentUserID == 0 {
		// Anonymous pages share a cache entry per filter+window; the liked
		// flag is uniformly false for them.
		key := cache.MemeListKey(ctx, filter.Signature(), in.Page.Page, in.Page.Limit)
		var page cachedPage
		err = cache.Aside(ctx, key, &page, cache.ListTTL, func() error {
			var fetchErr error
			page.Memes, page.Total, fetchErr = s.memeRepo.List(ctx, filter, in.Page, 0)
			return fetchErr
		})
		memes, total = page.Memes, page.Total
	} else {
		memes, total, err = s.memeRepo.List(ctx, filter, in.Page, in.CurrentUserID)
	}
	if err != nil {
		return nil, err
	}

	views := make([]models.MemeView, 0, len(memes))
	for _, m := range memes {
		views = append(views, models.ViewOf(m))
	}
	return &MemePage{
		Memes:      views,
		Pagination: pagination.NewMeta(in.Page, total),
	}, nil
}

// TrendingMemes returns the first page of the trending sort.
func (s *MemeService) TrendingMemes(ctx context.Context, limit int, currentUserID uint) ([]models.MemeView, error) {
	if limit < 1 {
		limit = 10
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}
	page, err := s.ListMemes(ctx, ListMemesInput{
		Page:          pagination.Params{Page: 1, Limit: limit},
		SortBy:        models.SortTrending,
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return nil, err
	}
	return page.Memes, nil
}

// SearchMemes runs a title/tag search. An empty query is rejected.
func (s *MemeService) SearchMemes(ctx context.Context, query string, page pagination.Params, currentUserID uint) (*MemePage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.ListMemes(ctx, ListMemesInput{
		Page:          page,
		Search:        query,
		CurrentUserID: currentUserID,
	})
}

func (s *MemeService) GetMeme(ctx context.Context, id uint, currentUserID uint) (*models.MemeView, error) {
	if currentUserID == 0 {
		// Anonymous detail reads share a cache entry; the liked flag is
		// uniformly false for them.
		var view models.MemeView
		err := cache.Aside(ctx, cache.MemeKey(id), &view, cache.MemeTTL, func() error {
			meme, err := s.memeRepo.GetByID(ctx, id, 0)
			if err != nil {
				return err
			}
			if err := s.checkVisibility(ctx, meme, 0); err != nil {
				return err
			}
			view = models.ViewOf(meme)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &view, nil
	}

	meme, err := s.memeRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisibility(ctx, meme, currentUserID); err != nil {
		return nil, err
	}
	view := models.ViewOf(meme)
	return &view, nil
}

// checkVisibility hides non-active memes from everyone but their author and
// admins. Deleted memes are gone for good.
func (s *MemeService) checkVisibility(ctx context.Context, meme *models.Meme, currentUserID uint) error {
	if meme.Status == models.MemeStatusActive {
		return nil
	}
	if meme.Status == models.MemeStatusDeleted {
		return models.NewNotFoundError("Meme", meme.ID)
	}
	if currentUserID != 0 {
		if currentUserID == meme.AuthorID {
			return nil
		}
		if admin, err := s.isAdmin(ctx, currentUserID); err == nil && admin {
			return nil
		}
	}
	return models.NewNotFoundError("Meme", meme.ID)
}

// UserMemes lists a user's active memes, newest first.
func (s *MemeService) UserMemes(ctx context.Context, authorID uint, page pagination.Params, currentUserID uint) (*MemePage, error) {
	memes, total, err := s.memeRepo.GetByAuthor(ctx, authorID, page, currentUserID)
	if err != nil {
		return nil, err
	}
	views := make([]models.MemeView, 0, len(memes))
	for _, m := range memes {
		views = append(views, models.ViewOf(m))
	}
	return &MemePage{Memes: views, Pagination: pagination.NewMeta(page, total)}, nil
}

// RegisterView counts one view. The increment is a single SQL statement so
// concurrent views cannot lose counts.
func (s *MemeService) RegisterView(ctx context.Context, id uint) error {
	return s.memeRepo.IncrementViews(ctx, id)
}

// RegisterShare counts one share.
func (s *MemeService) RegisterShare(ctx context.Context, id uint) error {
	return s.memeRepo.IncrementShares(ctx, id)
}

// ToggleReaction flips the user's like or dislike on a meme and returns the
// state after the toggle. A notification goes to the author on a fresh like.
func (s *MemeService) ToggleReaction(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	if kind != models.ReactionLike && kind != models.ReactionDislike {
		return false, models.NewValidationError("Invalid reaction kind")
	}

	meme, err := s.memeRepo.GetByID(ctx, memeID, userID)
	if err != nil {
		return false, err
	}
	if meme.Status != models.MemeStatusActive {
		return false, models.NewNotFoundError("Meme", memeID)
	}

	added, err := s.memeRepo.React(ctx, userID, memeID, kind)
	if err != nil {
		return false, err
	}
	cache.InvalidateMeme(ctx, memeID)
	if !added {
		// Row already existed: this toggle removes it.
		if _, err := s.memeRepo.Unreact(ctx, userID, memeID, kind); err != nil {
			return false, err
		}
		return false, nil
	}

	if kind == models.ReactionLike && meme.AuthorID != userID {
		s.notify(ctx, &models.Notification{
			RecipientID: meme.AuthorID,
			ActorID:     userID,
			Type:        models.NotificationLike,
			MemeID:      &memeID,
		})
	}
	return true, nil
}

// notify stores the notification and pushes it best-effort. Push failures are
// not surfaced; the stored row remains the durable copy.
func (s *MemeService) notify(ctx context.Context, n *models.Notification) {
	if s.notificationRepo == nil {
		return
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return
	}
	if s.notifier != nil {
		_ = s.notifier.PublishUser(ctx, n.RecipientID, notifications.EventOf(n))
	}
}

// DeleteMeme removes a meme. Only the author or an admin may delete; comments
// go with it.
func (s *MemeService) DeleteMeme(ctx context.Context, userID, memeID uint) error {
	meme, err := s.memeRepo.GetByID(ctx, memeID, userID)
	if err != nil {
		return err
	}
	if meme.AuthorID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("Only the author or an admin can delete this meme")
		}
	}
	if err := s.memeRepo.Delete(ctx, memeID); err != nil {
		return err
	}
	cache.InvalidateMeme(ctx, memeID)
	return nil
}

// SetStatus changes a meme's lifecycle state. Deleted is terminal.
func (s *MemeService) SetStatus(ctx context.Context, memeID uint, status string) error {
	switch status {
	case models.MemeStatusActive, models.MemeStatusInactive:
		// valid targets
	case models.MemeStatusDeleted:
		return models.NewValidationError("Use the delete operation to remove a meme")
	default:
		return models.NewValidationError("Invalid status")
	}

	meme, err := s.memeRepo.GetByID(ctx, memeID, 0)
	if err != nil {
		return err
	}
	if meme.Status == models.MemeStatusDeleted {
		return models.NewValidationError("Deleted memes cannot change status")
	}
	if err := s.memeRepo.UpdateStatus(ctx, memeID, status); err != nil {
		return err
	}
	cache.InvalidateMeme(ctx, memeID)
	return nil
}
