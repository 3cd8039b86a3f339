package service

import (
	"context"
	"strings"

	"github.com/niyati34/college-meme-page/internal/cache"
	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/notifications"
	"github.com/niyati34/college-meme-page/internal/pagination"
	"github.com/niyati34/college-meme-page/internal/repository"
)

const maxCommentLen = 2000

// CommentService orchestrates comment creation, listing and deletion.
type CommentService struct {
	commentRepo      repository.CommentRepository
	memeRepo         repository.MemeRepository
	notificationRepo repository.NotificationRepository
	notifier         Notifier
	isAdmin          func(ctx context.Context, userID uint) (bool, error)
}

// CreateCommentInput is the payload for posting a comment.
type CreateCommentInput struct {
	AuthorID uint
	MemeID   uint
	Text     string
}

// CommentPage is one page of comment views plus pagination metadata.
type CommentPage struct {
	Comments   []models.CommentView `json:"comments"`
	Pagination pagination.Meta      `json:"pagination"`
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	memeRepo repository.MemeRepository,
	notificationRepo repository.NotificationRepository,
	notifier Notifier,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		memeRepo:         memeRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		isAdmin:          isAdmin,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.CommentView, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	meme, err := s.memeRepo.GetByID(ctx, in.MemeID, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if meme.Status != models.MemeStatusActive {
		return nil, models.NewNotFoundError("Meme", in.MemeID)
	}

	comment := &models.Comment{
		MemeID:   in.MemeID,
		AuthorID: in.AuthorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	cache.InvalidateMeme(ctx, in.MemeID)

	if meme.AuthorID != in.AuthorID && s.notificationRepo != nil {
		memeID := in.MemeID
		n := &models.Notification{
			RecipientID: meme.AuthorID,
			ActorID:     in.AuthorID,
			Type:        models.NotificationComment,
			MemeID:      &memeID,
		}
		if err := s.notificationRepo.Create(ctx, n); err == nil && s.notifier != nil {
			_ = s.notifier.PublishUser(ctx, n.RecipientID, notifications.EventOf(n))
		}
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	view := models.CommentViewOf(created)
	return &view, nil
}

// ListComments returns a meme's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, memeID uint, page pagination.Params) (*CommentPage, error) {
	if _, err := s.memeRepo.GetByID(ctx, memeID, 0); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByMeme(ctx, memeID, page)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, models.CommentViewOf(c))
	}
	return &CommentPage{Comments: views, Pagination: pagination.NewMeta(page, total)}, nil
}

// DeleteComment removes a comment. Allowed for the comment author, the meme
// author, or an admin.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID {
		allowed := false
		if meme, err := s.memeRepo.GetByID(ctx, comment.MemeID, 0); err == nil && meme.AuthorID == userID {
			allowed = true
		}
		if !allowed {
			admin, err := s.isAdmin(ctx, userID)
			if err != nil {
				return err
			}
			allowed = admin
		}
		if !allowed {
			return models.NewUnauthorizedError("Not allowed to delete this comment")
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	cache.InvalidateMeme(ctx, comment.MemeID)
	return nil
}
