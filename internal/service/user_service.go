package service

import (
	"context"

	"github.com/niyati34/college-meme-page/internal/cache"
	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/notifications"
	"github.com/niyati34/college-meme-page/internal/pagination"
	"github.com/niyati34/college-meme-page/internal/repository"
	"github.com/niyati34/college-meme-page/internal/validation"
)

// UserService orchestrates profiles and the follow graph.
type UserService struct {
	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	notificationRepo repository.NotificationRepository
	notifier         Notifier
}

// UpdateProfileInput carries the editable profile fields. Empty fields are
// left unchanged.
type UpdateProfileInput struct {
	UserID      uint
	DisplayName string
	Bio         string
	AvatarURL   string
}

// UserPage is one page of users plus pagination metadata.
type UserPage struct {
	Users      []models.PublicAuthor `json:"users"`
	Pagination pagination.Meta       `json:"pagination"`
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notificationRepo repository.NotificationRepository,
	notifier Notifier,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

// GetProfile returns a user with follower, following and meme counts.
// Profiles are the same for every viewer, so they are cached unconditionally.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		u, err := s.userRepo.GetProfile(ctx, id)
		if err != nil {
			return err
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxDisplayNameLen = 50

	if in.DisplayName != "" {
		if len(in.DisplayName) > maxDisplayNameLen {
			return nil, models.NewValidationError("Display name too long (max 50 characters)")
		}
		user.DisplayName = in.DisplayName
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.AvatarURL != "" {
		if err := validation.ValidateURL(in.AvatarURL); err != nil {
			return nil, models.NewValidationError("avatar_url must be a valid URL")
		}
		user.AvatarURL = in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateUser(ctx, in.UserID)

	return user, nil
}

// Follow adds a follow edge. Self-follows and repeated follows are rejected.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	added, err := s.followRepo.Follow(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !added {
		return models.NewValidationError("Already following this user")
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)

	if s.notificationRepo != nil {
		n := &models.Notification{
			RecipientID: followeeID,
			ActorID:     followerID,
			Type:        models.NotificationFollow,
		}
		if err := s.notificationRepo.Create(ctx, n); err == nil && s.notifier != nil {
			_ = s.notifier.PublishUser(ctx, n.RecipientID, notifications.EventOf(n))
		}
	}
	return nil
}

// Unfollow removes a follow edge. Unfollowing someone you don't follow is
// rejected.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	removed, err := s.followRepo.Unfollow(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Not following this user")
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

func (s *UserService) ListFollowers(ctx context.Context, userID uint, page pagination.Params) (*UserPage, error) {
	users, total, err := s.followRepo.ListFollowers(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return userPageOf(users, page, total), nil
}

func (s *UserService) ListFollowing(ctx context.Context, userID uint, page pagination.Params) (*UserPage, error) {
	users, total, err := s.followRepo.ListFollowing(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return userPageOf(users, page, total), nil
}

func userPageOf(users []*models.User, page pagination.Params, total int64) *UserPage {
	public := make([]models.PublicAuthor, 0, len(users))
	for _, u := range users {
		public = append(public, models.PublicAuthorOf(u))
	}
	return &UserPage{Users: public, Pagination: pagination.NewMeta(page, total)}
}

// IsAdmin reports whether the user holds the admin role. Wired into services
// that gate privileged operations.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
