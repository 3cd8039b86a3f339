package server

import (
	"context"

	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/pagination"
	"github.com/niyati34/college-meme-page/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMemeRepository is a mock of the MemeRepository interface
type MockMemeRepository struct {
	mock.Mock
}

func (m *MockMemeRepository) Create(ctx context.Context, meme *models.Meme) error {
	args := m.Called(ctx, meme)
	return args.Error(0)
}

func (m *MockMemeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Meme, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meme), args.Error(1)
}

func (m *MockMemeRepository) List(ctx context.Context, filter repository.ListFilter, page pagination.Params, currentUserID uint) ([]*models.Meme, int64, error) {
	args := m.Called(ctx, filter, page, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Meme), args.Get(1).(int64), args.Error(2)
}

func (m *MockMemeRepository) GetByAuthor(ctx context.Context, authorID uint, page pagination.Params, currentUserID uint) ([]*models.Meme, int64, error) {
	args := m.Called(ctx, authorID, page, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Meme), args.Get(1).(int64), args.Error(2)
}

func (m *MockMemeRepository) Update(ctx context.Context, meme *models.Meme) error {
	args := m.Called(ctx, meme)
	return args.Error(0)
}

func (m *MockMemeRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMemeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemeRepository) IncrementViews(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemeRepository) IncrementShares(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemeRepository) EnsureScored(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemeRepository) React(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	args := m.Called(ctx, userID, memeID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemeRepository) Unreact(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	args := m.Called(ctx, userID, memeID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemeRepository) IsReacted(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	args := m.Called(ctx, userID, memeID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemeRepository) GetReactedMemeIDs(ctx context.Context, userID uint, memeIDs []uint) ([]uint, error) {
	args := m.Called(ctx, userID, memeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockNotificationRepository is a mock of the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, page pagination.Params) ([]*models.Notification, int64, error) {
	args := m.Called(ctx, recipientID, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, recipientID, id uint) error {
	args := m.Called(ctx, recipientID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}
