package service

import (
	"context"

	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/notifications"
	"github.com/niyati34/college-meme-page/internal/pagination"
	"github.com/niyati34/college-meme-page/internal/repository"
)

// memeRepoStub is a stub for repository.MemeRepository.
type memeRepoStub struct {
	createFn            func(context.Context, *models.Meme) error
	getByIDFn           func(context.Context, uint, uint) (*models.Meme, error)
	listFn              func(context.Context, repository.ListFilter, pagination.Params, uint) ([]*models.Meme, int64, error)
	getByAuthorFn       func(context.Context, uint, pagination.Params, uint) ([]*models.Meme, int64, error)
	updateFn            func(context.Context, *models.Meme) error
	updateStatusFn      func(context.Context, uint, string) error
	deleteFn            func(context.Context, uint) error
	incrementViewsFn    func(context.Context, uint) error
	incrementSharesFn   func(context.Context, uint) error
	ensureScoredFn      func(context.Context) (int64, error)
	reactFn             func(context.Context, uint, uint, string) (bool, error)
	unreactFn           func(context.Context, uint, uint, string) (bool, error)
	isReactedFn         func(context.Context, uint, uint, string) (bool, error)
	getReactedMemeIDsFn func(context.Context, uint, []uint) ([]uint, error)
}

func (s *memeRepoStub) Create(ctx context.Context, meme *models.Meme) error {
	return s.createFn(ctx, meme)
}
func (s *memeRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Meme, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *memeRepoStub) List(ctx context.Context, filter repository.ListFilter, page pagination.Params, currentUserID uint) ([]*models.Meme, int64, error) {
	return s.listFn(ctx, filter, page, currentUserID)
}
func (s *memeRepoStub) GetByAuthor(ctx context.Context, authorID uint, page pagination.Params, currentUserID uint) ([]*models.Meme, int64, error) {
	return s.getByAuthorFn(ctx, authorID, page, currentUserID)
}
func (s *memeRepoStub) Update(ctx context.Context, meme *models.Meme) error {
	return s.updateFn(ctx, meme)
}
func (s *memeRepoStub) UpdateStatus(ctx context.Context, id uint, status string) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *memeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *memeRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *memeRepoStub) IncrementShares(ctx context.Context, id uint) error {
	return s.incrementSharesFn(ctx, id)
}
func (s *memeRepoStub) EnsureScored(ctx context.Context) (int64, error) {
	return s.ensureScoredFn(ctx)
}
func (s *memeRepoStub) React(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	return s.reactFn(ctx, userID, memeID, kind)
}
func (s *memeRepoStub) Unreact(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	return s.unreactFn(ctx, userID, memeID, kind)
}
func (s *memeRepoStub) IsReacted(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	return s.isReactedFn(ctx, userID, memeID, kind)
}
func (s *memeRepoStub) GetReactedMemeIDs(ctx context.Context, userID uint, memeIDs []uint) ([]uint, error) {
	return s.getReactedMemeIDsFn(ctx, userID, memeIDs)
}

func noopMemeRepo() *memeRepoStub {
	return &memeRepoStub{
		createFn: func(_ context.Context, m *models.Meme) error { m.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Meme, error) {
			return &models.Meme{ID: id, Status: models.MemeStatusActive}, nil
		},
		listFn: func(_ context.Context, _ repository.ListFilter, _ pagination.Params, _ uint) ([]*models.Meme, int64, error) {
			return nil, 0, nil
		},
		getByAuthorFn: func(_ context.Context, _ uint, _ pagination.Params, _ uint) ([]*models.Meme, int64, error) {
			return nil, 0, nil
		},
		updateFn:          func(_ context.Context, _ *models.Meme) error { return nil },
		updateStatusFn:    func(_ context.Context, _ uint, _ string) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		incrementViewsFn:  func(_ context.Context, _ uint) error { return nil },
		incrementSharesFn: func(_ context.Context, _ uint) error { return nil },
		ensureScoredFn:    func(_ context.Context) (int64, error) { return 0, nil },
		reactFn:           func(_ context.Context, _, _ uint, _ string) (bool, error) { return true, nil },
		unreactFn:         func(_ context.Context, _, _ uint, _ string) (bool, error) { return true, nil },
		isReactedFn:       func(_ context.Context, _, _ uint, _ string) (bool, error) { return false, nil },
		getReactedMemeIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) {
			return nil, nil
		},
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	created []*models.Notification
}

func (s *notificationRepoStub) Create(_ context.Context, n *models.Notification) error {
	s.created = append(s.created, n)
	return nil
}
func (s *notificationRepoStub) ListByRecipient(_ context.Context, _ uint, _ pagination.Params) ([]*models.Notification, int64, error) {
	return s.created, int64(len(s.created)), nil
}
func (s *notificationRepoStub) MarkRead(_ context.Context, _, _ uint) error      { return nil }
func (s *notificationRepoStub) MarkAllRead(_ context.Context, _ uint) (int64, error) { return 0, nil }
func (s *notificationRepoStub) CountUnread(_ context.Context, _ uint) (int64, error) {
	return int64(len(s.created)), nil
}

// notifierStub records pushed events.
type notifierStub struct {
	published []notifications.Event
}

func (s *notifierStub) PublishUser(_ context.Context, _ uint, event notifications.Event) error {
	s.published = append(s.published, event)
	return nil
}

func adminChecker(adminIDs ...uint) func(context.Context, uint) (bool, error) {
	return func(_ context.Context, userID uint) (bool, error) {
		for _, id := range adminIDs {
			if id == userID {
				return true, nil
			}
		}
		return false, nil
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByMemeFn  func(context.Context, uint, pagination.Params) ([]*models.Comment, int64, error)
	deleteFn      func(context.Context, uint) error
	countByMemeFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByMeme(ctx context.Context, memeID uint, page pagination.Params) ([]*models.Comment, int64, error) {
	return s.listByMemeFn(ctx, memeID, page)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountByMeme(ctx context.Context, memeID uint) (int64, error) {
	return s.countByMemeFn(ctx, memeID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, MemeID: 1, AuthorID: 2, Text: "hello"}, nil
		},
		listByMemeFn: func(_ context.Context, _ uint, _ pagination.Params) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		countByMemeFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	users map[uint]*models.User
}

func newUserRepoStub(users ...*models.User) *userRepoStub {
	s := &userRepoStub{users: make(map[uint]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *userRepoStub) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, models.NewNotFoundError("User", id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.GetByID(ctx, id)
}
func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (s *userRepoStub) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (s *userRepoStub) Create(_ context.Context, u *models.User) error {
	u.ID = uint(len(s.users) + 1)
	s.users[u.ID] = u
	return nil
}
func (s *userRepoStub) Update(_ context.Context, u *models.User) error {
	s.users[u.ID] = u
	return nil
}
func (s *userRepoStub) Delete(_ context.Context, id uint) error {
	delete(s.users, id)
	return nil
}

// followRepoStub is an in-memory follow graph.
type followRepoStub struct {
	edges map[[2]uint]bool
}

func newFollowRepoStub() *followRepoStub {
	return &followRepoStub{edges: make(map[[2]uint]bool)}
}

func (s *followRepoStub) Follow(_ context.Context, followerID, followeeID uint) (bool, error) {
	key := [2]uint{followerID, followeeID}
	if s.edges[key] {
		return false, nil
	}
	s.edges[key] = true
	return true, nil
}
func (s *followRepoStub) Unfollow(_ context.Context, followerID, followeeID uint) (bool, error) {
	key := [2]uint{followerID, followeeID}
	if !s.edges[key] {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}
func (s *followRepoStub) IsFollowing(_ context.Context, followerID, followeeID uint) (bool, error) {
	return s.edges[[2]uint{followerID, followeeID}], nil
}
func (s *followRepoStub) ListFollowers(_ context.Context, _ uint, _ pagination.Params) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (s *followRepoStub) ListFollowing(_ context.Context, _ uint, _ pagination.Params) ([]*models.User, int64, error) {
	return nil, 0, nil
}

// collectionRepoStub is an in-memory collection store.
type collectionRepoStub struct {
	collections map[uint]*models.Collection
	members     map[[2]uint]bool
	nextID      uint
}

func newCollectionRepoStub() *collectionRepoStub {
	return &collectionRepoStub{
		collections: make(map[uint]*models.Collection),
		members:     make(map[[2]uint]bool),
		nextID:      1,
	}
}

func (s *collectionRepoStub) Create(_ context.Context, c *models.Collection) error {
	c.ID = s.nextID
	s.nextID++
	s.collections[c.ID] = c
	return nil
}
func (s *collectionRepoStub) GetByID(_ context.Context, id uint) (*models.Collection, error) {
	if c, ok := s.collections[id]; ok {
		return c, nil
	}
	return nil, models.NewNotFoundError("Collection", id)
}
func (s *collectionRepoStub) ListPublic(_ context.Context, _ pagination.Params) ([]*models.Collection, int64, error) {
	return nil, 0, nil
}
func (s *collectionRepoStub) ListByAuthor(_ context.Context, _ uint, _ bool, _ pagination.Params) ([]*models.Collection, int64, error) {
	return nil, 0, nil
}
func (s *collectionRepoStub) Update(_ context.Context, c *models.Collection) error {
	s.collections[c.ID] = c
	return nil
}
func (s *collectionRepoStub) Delete(_ context.Context, id uint) error {
	delete(s.collections, id)
	return nil
}
func (s *collectionRepoStub) AddMeme(_ context.Context, collectionID, memeID uint) (bool, error) {
	key := [2]uint{collectionID, memeID}
	if s.members[key] {
		return false, nil
	}
	s.members[key] = true
	return true, nil
}
func (s *collectionRepoStub) RemoveMeme(_ context.Context, collectionID, memeID uint) (bool, error) {
	key := [2]uint{collectionID, memeID}
	if !s.members[key] {
		return false, nil
	}
	delete(s.members, key)
	return true, nil
}
