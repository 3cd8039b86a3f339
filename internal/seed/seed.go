package seed

import (
	"fmt"
	"log"
	"time"

	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/ranking"

	"gorm.io/gorm"
)

// Seeder populates the database with a connected mesh of users, memes and
// engagement so local development starts from something that looks lived-in.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return NewSeederWithOptions(db, Options{})
}

// NewSeederWithOptions creates a Seeder with the given factory options.
func NewSeederWithOptions(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// Factory exposes the underlying factory for callers that need one-off entities.
func (s *Seeder) Factory() *Factory {
	return s.factory
}

// ClearAll removes all seeded data. Order matters: children before parents.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []interface{}{
		&models.CollectionMeme{},
		&models.Collection{},
		&models.Notification{},
		&models.Reaction{},
		&models.Comment{},
		&models.Follow{},
		&models.Meme{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	return nil
}

// SeedSocialMesh creates numUsers accounts and a follow graph between them.
// Each user follows a handful of others, with a few accounts accumulating
// many followers so profile pages have something to paginate.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	log.Printf("Creating %d users...", numUsers)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}

	if len(users) < 2 {
		return users, nil
	}

	log.Println("Building follow graph...")
	rng := s.factory.rng
	edges := make(map[[2]uint]bool)
	follows := 0
	for _, follower := range users {
		// the first few users are "popular"; everyone has a shot at them
		targets := 2 + rng.Intn(5)
		for j := 0; j < targets; j++ {
			var followee *models.User
			if rng.Intn(3) == 0 {
				followee = users[rng.Intn(3)]
			} else {
				followee = users[rng.Intn(len(users))]
			}
			key := [2]uint{follower.ID, followee.ID}
			if followee.ID == follower.ID || edges[key] {
				continue
			}
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				return nil, fmt.Errorf("creating follow: %w", err)
			}
			edges[key] = true
			follows++
		}
	}
	log.Printf("Created %d follow edges", follows)
	return users, nil
}

// SeedEngagement creates numMemes memes across the given users plus
// reactions, comments and collections, then materializes trending scores.
// It returns the created memes.
func (s *Seeder) SeedEngagement(users []*models.User, numMemes int) ([]*models.Meme, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute memes to")
	}

	log.Printf("Creating %d memes...", numMemes)
	rng := s.factory.rng

	memes := make([]*models.Meme, 0, numMemes)
	for i := 0; i < numMemes; i++ {
		author := users[rng.Intn(len(users))]
		memes = append(memes, s.factory.BuildMeme(author))
	}
	if err := s.factory.CreateMemesBatch(memes); err != nil {
		return nil, fmt.Errorf("creating memes: %w", err)
	}

	log.Println("Adding reactions and comments...")
	likes := make(map[uint]int, len(memes))
	for _, meme := range memes {
		// skew engagement so a minority of memes dominate trending
		reactors := rng.Intn(len(users))
		if rng.Intn(4) != 0 {
			reactors = rng.Intn(len(users)/4 + 1)
		}
		for _, idx := range rng.Perm(len(users))[:reactors] {
			kind := models.ReactionLike
			if rng.Intn(10) == 0 {
				kind = models.ReactionDislike
			}
			if err := s.factory.CreateReaction(users[idx], meme, kind); err != nil {
				return nil, fmt.Errorf("creating reaction: %w", err)
			}
			if kind == models.ReactionLike {
				likes[meme.ID]++
			}
		}

		comments := rng.Intn(6)
		for j := 0; j < comments; j++ {
			commenter := users[rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, meme); err != nil {
				return nil, fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	log.Println("Creating collections...")
	curators := len(users)/5 + 1
	for i := 0; i < curators; i++ {
		owner := users[rng.Intn(len(users))]
		collection, err := s.factory.CreateCollection(owner)
		if err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
		members := 3 + rng.Intn(8)
		for _, idx := range rng.Perm(len(memes))[:min(members, len(memes))] {
			if err := s.factory.AddToCollection(collection, memes[idx]); err != nil {
				return nil, fmt.Errorf("adding meme to collection: %w", err)
			}
		}
	}

	if !s.factory.opts.DryRun {
		log.Println("Materializing trending scores...")
		now := time.Now()
		for _, meme := range memes {
			score := ranking.ScoreAt(likes[meme.ID], meme.Views, meme.CreatedAt, now)
			if err := s.db.Model(&models.Meme{}).Where("id = ?", meme.ID).
				Update("trending_score", score).Error; err != nil {
				return nil, fmt.Errorf("scoring meme %d: %w", meme.ID, err)
			}
		}
		log.Printf("Scored %d memes", len(memes))
	}

	return memes, nil
}
