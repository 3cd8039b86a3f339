// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/niyati34/college-meme-page/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Options tunes how the factory generates and persists data.
type Options struct {
	// DryRun builds entities and assigns synthetic IDs without writing to
	// the database.
	DryRun bool
	// SkipBcrypt stores the plain seed password instead of hashing it.
	// Much faster for large seeds; never enable outside local dev.
	SkipBcrypt bool
	// MaxDays spreads generated created_at timestamps over this many days
	// back from now. Zero means 90.
	MaxDays int
}

// memeCategories is the pool of categories assigned to generated memes.
var memeCategories = []string{
	"exams", "hostel", "canteen", "professors", "placements",
	"assignments", "fests", "freshers", "library", "attendance",
}

var memeTags = []string{
	"relatable", "dank", "wholesome", "cursed", "oc",
	"monday", "deadline", "viva", "backbench", "chai",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:    gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:       gofakeit.Email(),
		Role:        models.RoleUser,
		DisplayName: gofakeit.Name(),
		Bio:         gofakeit.Sentence(10),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildMeme constructs a meme struct populated like CreateMeme but does not
// persist it. Useful for batching.
func (f *Factory) BuildMeme(author *models.User, overrides ...func(*models.Meme)) *models.Meme {
	meme := &models.Meme{
		Title:       gofakeit.Sentence(5),
		MediaType:   models.MediaTypeImage,
		AspectRatio: models.AspectRatioNormal,
		AuthorID:    author.ID,
		Status:      models.MemeStatusActive,
		Views:       1 + f.rng.Intn(5000),
		Shares:      f.rng.Intn(200),
		Categories:  datatypes.NewJSONSlice(f.pick(memeCategories, 1+f.rng.Intn(2))),
		Tags:        datatypes.NewJSONSlice(f.pick(memeTags, 1+f.rng.Intn(3))),
	}

	// roughly one in five memes is a vertical video reel
	if f.rng.Intn(5) == 0 {
		meme.MediaType = models.MediaTypeVideo
		meme.AspectRatio = models.AspectRatioReel
		meme.MediaURL = fmt.Sprintf("https://cdn.memepage.local/reels/%s.mp4", gofakeit.UUID())
	} else {
		meme.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	meme.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(meme)
	}
	return meme
}

// CreateMeme constructs and persists a sample `models.Meme` for the given author.
func (f *Factory) CreateMeme(author *models.User, overrides ...func(*models.Meme)) (*models.Meme, error) {
	meme := f.BuildMeme(author, overrides...)

	if f.opts.DryRun {
		f.nextID++
		meme.ID = f.nextID
		log.Printf("[dry-run] CreateMeme: author=%d title=%q", meme.AuthorID, meme.Title)
		return meme, nil
	}

	if err := f.db.Create(meme).Error; err != nil {
		return nil, err
	}
	return meme, nil
}

// CreateMemesBatch persists multiple memes in a single DB call when possible.
func (f *Factory) CreateMemesBatch(memes []*models.Meme) error {
	if len(memes) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, m := range memes {
			f.nextID++
			m.ID = f.nextID
		}
		log.Printf("[dry-run] CreateMemesBatch: %d memes (no DB write)", len(memes))
		return nil
	}
	return f.db.Create(&memes).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided meme authored by the provided user.
func (f *Factory) CreateComment(user *models.User, meme *models.Meme, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:     gofakeit.Sentence(8),
		AuthorID: user.ID,
		MemeID:   meme.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction persists a reaction of the given kind from `user` on `meme`.
func (f *Factory) CreateReaction(user *models.User, meme *models.Meme, kind string) error {
	if f.opts.DryRun {
		return nil
	}
	reaction := &models.Reaction{
		UserID: user.ID,
		MemeID: meme.ID,
		Kind:   kind,
	}
	return f.db.Create(reaction).Error
}

// CreateFollow persists a follow edge from `follower` to `followee`.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	follow := &models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	return f.db.Create(follow).Error
}

// CreateCollection constructs and persists a sample `models.Collection`
// owned by the provided user.
func (f *Factory) CreateCollection(owner *models.User, overrides ...func(*models.Collection)) (*models.Collection, error) {
	category := memeCategories[f.rng.Intn(len(memeCategories))]
	collection := &models.Collection{
		Name:        fmt.Sprintf("Best of %s", category),
		Description: gofakeit.Sentence(12),
		AuthorID:    owner.ID,
		CoverImage:  fmt.Sprintf("https://picsum.photos/seed/cover-%s/600/400", gofakeit.UUID()),
		IsPublic:    f.rng.Intn(4) != 0,
		Category:    category,
		Tags:        datatypes.NewJSONSlice(f.pick(memeTags, 1+f.rng.Intn(2))),
	}

	for _, override := range overrides {
		override(collection)
	}

	if f.opts.DryRun {
		f.nextID++
		collection.ID = f.nextID
		return collection, nil
	}

	if err := f.db.Create(collection).Error; err != nil {
		return nil, err
	}
	return collection, nil
}

// AddToCollection persists collection membership for the given meme.
func (f *Factory) AddToCollection(collection *models.Collection, meme *models.Meme) error {
	if f.opts.DryRun {
		return nil
	}
	member := &models.CollectionMeme{
		CollectionID: collection.ID,
		MemeID:       meme.ID,
	}
	return f.db.Create(member).Error
}

// pick returns n distinct random elements from pool.
func (f *Factory) pick(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	idx := f.rng.Perm(len(pool))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}
