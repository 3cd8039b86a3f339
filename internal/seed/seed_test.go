package seed

import (
	"testing"

	"github.com/niyati34/college-meme-page/internal/database"
	"github.com/niyati34/college-meme-page/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestFactoryCreateUser(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "password123", user.Password)

	admin, err := f.CreateUser(func(u *models.User) {
		u.Username = "root"
		u.Role = models.RoleAdmin
	})
	require.NoError(t, err)
	assert.Equal(t, "root", admin.Username)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestFactoryCreateMemeDefaults(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	author, err := f.CreateUser()
	require.NoError(t, err)

	meme, err := f.CreateMeme(author)
	require.NoError(t, err)
	assert.NotZero(t, meme.ID)
	assert.Equal(t, author.ID, meme.AuthorID)
	assert.Equal(t, models.MemeStatusActive, meme.Status)
	assert.NotEmpty(t, meme.MediaURL)
	assert.NotEmpty(t, meme.Categories)
	if meme.MediaType == models.MediaTypeVideo {
		assert.Equal(t, models.AspectRatioReel, meme.AspectRatio)
	} else {
		assert.Equal(t, models.AspectRatioNormal, meme.AspectRatio)
	}
}

func TestFactoryDryRunWritesNothing(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db, Options{DryRun: true, SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = f.CreateMeme(user)
	require.NoError(t, err)

	var users, memes int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Meme{}).Count(&memes).Error)
	assert.Zero(t, users)
	assert.Zero(t, memes)
}

func TestSeedSocialMesh(t *testing.T) {
	db := newTestDB(t)
	s := NewSeederWithOptions(db, Options{SkipBcrypt: true})

	users, err := s.SeedSocialMesh(10)
	require.NoError(t, err)
	assert.Len(t, users, 10)

	var followCount int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)
	assert.Positive(t, followCount)

	var selfFollows int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = followee_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)
}

func TestSeedEngagement(t *testing.T) {
	db := newTestDB(t)
	s := NewSeederWithOptions(db, Options{SkipBcrypt: true})

	users, err := s.SeedSocialMesh(8)
	require.NoError(t, err)

	memes, err := s.SeedEngagement(users, 20)
	require.NoError(t, err)
	assert.Len(t, memes, 20)

	var memeCount int64
	require.NoError(t, db.Model(&models.Meme{}).Count(&memeCount).Error)
	assert.EqualValues(t, 20, memeCount)

	// every persisted meme must carry a materialized trending score
	var unscored int64
	require.NoError(t, db.Model(&models.Meme{}).
		Where("trending_score = 0").Count(&unscored).Error)
	assert.Zero(t, unscored)

	var collections int64
	require.NoError(t, db.Model(&models.Collection{}).Count(&collections).Error)
	assert.Positive(t, collections)
}

func TestSeedEngagementRequiresUsers(t *testing.T) {
	db := newTestDB(t)
	s := NewSeederWithOptions(db, Options{SkipBcrypt: true})

	_, err := s.SeedEngagement(nil, 5)
	assert.Error(t, err)
}

func TestClearAll(t *testing.T) {
	db := newTestDB(t)
	s := NewSeederWithOptions(db, Options{SkipBcrypt: true})

	users, err := s.SeedSocialMesh(5)
	require.NoError(t, err)
	_, err = s.SeedEngagement(users, 10)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	for _, model := range []interface{}{
		&models.User{}, &models.Meme{}, &models.Comment{},
		&models.Reaction{}, &models.Follow{}, &models.Collection{},
	} {
		var count int64
		require.NoError(t, db.Unscoped().Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T not cleared", model)
	}
}
