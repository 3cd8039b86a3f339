// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/niyati34/college-meme-page/internal/cache"
	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/observability"
	"github.com/niyati34/college-meme-page/internal/pagination"

	"gorm.io/gorm"
)

// ListFilter describes the recognized meme listing filters. All present
// filters AND together; Search is itself an OR across title and tags.
type ListFilter struct {
	Category string
	Search   string
	Tags     []string
	Sort     string
}

// Signature returns a stable string form of the filter for cache keys.
func (f ListFilter) Signature() string {
	parts := []string{f.Sort, f.Category, f.Search, strings.Join(f.Tags, ",")}
	return strings.Join(parts, "|")
}

// MemeRepository defines the interface for meme data operations
type MemeRepository interface {
	Create(ctx context.Context, meme *models.Meme) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Meme, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params, currentUserID uint) ([]*models.Meme, int64, error)
	GetByAuthor(ctx context.Context, authorID uint, page pagination.Params, currentUserID uint) ([]*models.Meme, int64, error)
	Update(ctx context.Context, meme *models.Meme) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	IncrementShares(ctx context.Context, id uint) error
	EnsureScored(ctx context.Context) (int64, error)
	React(ctx context.Context, userID, memeID uint, kind string) (bool, error)
	Unreact(ctx context.Context, userID, memeID uint, kind string) (bool, error)
	IsReacted(ctx context.Context, userID, memeID uint, kind string) (bool, error)
	GetReactedMemeIDs(ctx context.Context, userID uint, memeIDs []uint) ([]uint, error)
}

type memeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewMemeRepository creates a new meme repository
func NewMemeRepository(db *gorm.DB) MemeRepository {
	return &memeRepository{db: db, log: observability.NewRepoLogger("memes")}
}

func (r *memeRepository) Create(ctx context.Context, meme *models.Meme) error {
	defer observability.TrackQuery("create", "memes")()

	if err := r.db.WithContext(ctx).Create(meme).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	cache.BumpMemeListVersion(ctx)
	return nil
}

// GetByID always hits the database. Caching detail reads is the service
// layer's job; it caches the public projection only after the visibility
// check, so hidden memes never land in the cache.
func (r *memeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Meme, error) {
	defer observability.TrackQuery("get", "memes")()

	var meme models.Meme
	err := r.applyMemeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		First(&meme, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Meme", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &meme, nil
}

func (r *memeRepository) List(ctx context.Context, filter ListFilter, page pagination.Params, currentUserID uint) ([]*models.Meme, int64, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "List", "memes")
	defer span.End()
	defer observability.TrackQuery("list", "memes")()

	base := r.applyFilter(r.db.WithContext(ctx).Model(&models.Meme{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		r.log.LogError(ctx, err, "list.count")
		return nil, 0, models.NewInternalError(err)
	}

	var memes []*models.Meme
	q := r.applyMemeDetails(base.Session(&gorm.Session{}), currentUserID).
		Preload("Author")
	err := applySort(q, filter.Sort).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&memes).Error
	if err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, 0, models.NewInternalError(err)
	}
	return memes, total, nil
}

func (r *memeRepository) GetByAuthor(ctx context.Context, authorID uint, page pagination.Params, currentUserID uint) ([]*models.Meme, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Meme{}).
		Where("memes.status = ?", models.MemeStatusActive).
		Where("memes.author_id = ?", authorID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var memes []*models.Meme
	err := r.applyMemeDetails(base.Session(&gorm.Session{}), currentUserID).
		Preload("Author").
		Order("memes.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&memes).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return memes, total, nil
}

// applyFilter translates a ListFilter into WHERE clauses. Tag and category
// arrays are stored as JSON; membership checks expand them per element with
// jsonb_array_elements_text on PostgreSQL and json_each elsewhere, so the
// same filters run against the SQLite databases used in tests.
func (r *memeRepository) applyFilter(db *gorm.DB, filter ListFilter) *gorm.DB {
	db = db.Where("memes.status = ?", models.MemeStatusActive)
	postgres := db.Dialector.Name() == "postgres"

	if filter.Category != "" {
		if postgres {
			db = db.Where(
				"EXISTS (SELECT 1 FROM jsonb_array_elements_text(memes.categories) AS c(label) WHERE c.label = ?)",
				filter.Category,
			)
		} else {
			db = db.Where(
				"EXISTS (SELECT 1 FROM json_each(memes.categories) AS c WHERE c.value = ?)",
				filter.Category,
			)
		}
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		if postgres {
			db = db.Where(
				"(memes.title ILIKE ? OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(memes.tags) AS t(tag) WHERE t.tag ILIKE ?))",
				like, like,
			)
		} else {
			// SQLite LIKE is already case-insensitive for ASCII.
			db = db.Where(
				"(memes.title LIKE ? OR EXISTS (SELECT 1 FROM json_each(memes.tags) AS t WHERE t.value LIKE ?))",
				like, like,
			)
		}
	}
	if len(filter.Tags) > 0 {
		if postgres {
			db = db.Where(
				"EXISTS (SELECT 1 FROM jsonb_array_elements_text(memes.tags) AS t(tag) WHERE t.tag IN ?)",
				filter.Tags,
			)
		} else {
			db = db.Where(
				"EXISTS (SELECT 1 FROM json_each(memes.tags) AS t WHERE t.value IN ?)",
				filter.Tags,
			)
		}
	}
	return db
}

// applySort appends the ORDER BY clause for the requested sort type.
// likes_count is a SELECT alias from applyMemeDetails with no physical
// column behind it, so ORDER BY resolves it to the subquery on every
// dialect. Unrecognized values fall back to newest.
func applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case models.SortTrending:
		return db.Order("memes.trending_score DESC, memes.created_at DESC")
	case models.SortPopular:
		return db.Order("likes_count DESC, memes.views DESC")
	case models.SortMostViewed:
		return db.Order("memes.views DESC")
	case models.SortOldest:
		return db.Order("memes.created_at ASC")
	default:
		return db.Order("memes.created_at DESC")
	}
}

// applyMemeDetails adds subqueries to fetch counts and liked status in a single query.
func (r *memeRepository) applyMemeDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "memes.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.meme_id = memes.id) as comments_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.meme_id = memes.id AND reactions.kind = 'like') as likes_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.meme_id = memes.id AND reactions.kind = 'dislike') as dislikes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM reactions WHERE reactions.meme_id = memes.id AND reactions.user_id = ? AND reactions.kind = 'like') as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *memeRepository) Update(ctx context.Context, meme *models.Meme) error {
	if err := r.db.WithContext(ctx).Save(meme).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMeme(ctx, meme.ID)
	return nil
}

func (r *memeRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Meme{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Meme", id)
	}
	cache.InvalidateMeme(ctx, id)
	return nil
}

// Delete marks the meme deleted and removes its comments. The two statements
// are intentionally not wrapped in a transaction; a crash between them leaves
// orphan comments on a meme that no listing will ever surface.
func (r *memeRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "memes")()

	result := r.db.WithContext(ctx).Model(&models.Meme{}).
		Where("id = ?", id).
		Update("status", models.MemeStatusDeleted)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "delete")
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Meme", id)
	}

	if err := r.db.WithContext(ctx).Where("meme_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		r.log.LogError(ctx, err, "delete.cascade_comments")
		return models.NewInternalError(err)
	}

	r.log.LogWrite(ctx, "delete", map[string]interface{}{"meme_id": id})
	cache.InvalidateMeme(ctx, id)
	return nil
}

func (r *memeRepository) IncrementViews(ctx context.Context, id uint) error {
	// Single-statement increment; a read-modify-write here loses counts
	// under concurrent requests.
	result := r.db.WithContext(ctx).Exec(
		"UPDATE memes SET views = views + 1 WHERE id = ? AND status = ?",
		id, models.MemeStatusActive,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Meme", id)
	}
	return nil
}

func (r *memeRepository) IncrementShares(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE memes SET shares = shares + 1 WHERE id = ? AND status = ?",
		id, models.MemeStatusActive,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Meme", id)
	}
	return nil
}

// EnsureScored materializes trending scores for rows that never received one.
// It is idempotent and safe to run from any listing path; scored rows are
// left untouched so reads stay side-effect free.
func (r *memeRepository) EnsureScored(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("ensure_scored", "memes")()

	result := r.db.WithContext(ctx).Exec(
		`UPDATE memes SET trending_score =
		   2 * (SELECT COUNT(*) FROM reactions WHERE reactions.meme_id = memes.id AND reactions.kind = 'like')
		   + views
		   + GREATEST(0, 10 - FLOOR(EXTRACT(EPOCH FROM (NOW() - created_at)) / 86400)::int)
		 WHERE trending_score = 0 AND status = ?`,
		models.MemeStatusActive,
	)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "ensure_scored")
		return 0, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		observability.TrendingRecomputes.Add(float64(result.RowsAffected))
	}
	return result.RowsAffected, nil
}

func (r *memeRepository) React(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	// INSERT ... ON CONFLICT DO NOTHING keeps concurrent toggles atomic and
	// avoids duplicate key errors.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO reactions (user_id, meme_id, kind, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, meme_id, kind) DO NOTHING`,
		userID, memeID, kind,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateMeme(ctx, memeID)
	}
	return result.RowsAffected > 0, nil
}

func (r *memeRepository) Unreact(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND meme_id = ? AND kind = ?", userID, memeID, kind).
		Delete(&models.Reaction{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateMeme(ctx, memeID)
	}
	return result.RowsAffected > 0, nil
}

func (r *memeRepository) IsReacted(ctx context.Context, userID, memeID uint, kind string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ? AND meme_id = ? AND kind = ?", userID, memeID, kind).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *memeRepository) GetReactedMemeIDs(ctx context.Context, userID uint, memeIDs []uint) ([]uint, error) {
	if len(memeIDs) == 0 {
		return nil, nil
	}
	var reacted []uint
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ? AND meme_id IN ? AND kind = ?", userID, memeIDs, models.ReactionLike).
		Pluck("meme_id", &reacted).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reacted, nil
}
