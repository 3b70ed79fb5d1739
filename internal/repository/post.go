package repository

import (
	"context"
	"errors"
	"strings"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.Post, int64, error)
	Feed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postFilterColumns whitelists exact-match filter fields for posts.
var postFilterColumns = map[string]string{
	"publication_year": "publication_year",
	"author":           "user_id",
	"user_id":          "user_id",
}

// postOrderColumns whitelists caller-selectable ordering fields for posts.
var postOrderColumns = map[string]string{
	"created_at":       "created_at",
	"updated_at":       "updated_at",
	"title":            "title",
	"publication_year": "publication_year",
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, q models.ListQuery) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{})
	base = applyFilters(base, q.Filters, postFilterColumns)

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := applyOrdering(
		r.applyPostDetails(base.Session(&gorm.Session{})),
		q.Ordering, postOrderColumns, "created_at DESC, id DESC",
	).
		Preload("User").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// Feed returns posts authored by users the follower follows, newest first
// with the post ID as the tie-break key.
func (r *postRepository) Feed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, int64, error) {
	followees := r.db.Model(&models.Follow{}).
		Select("followee_id").
		Where("follower_id = ?", followerID)

	base := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("user_id IN (?)", followees)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.applyPostDetails(base.Session(&gorm.Session{})).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a post and its comments in one transaction. The comment
// delete is explicit so stores without FK enforcement still cascade.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// applyPostDetails adds the comment-count subquery to a post query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count")
}

// applyFilters appends exact-match WHERE clauses for whitelisted fields.
// Unknown fields are silently ignored.
func applyFilters(db *gorm.DB, filters map[string]any, columns map[string]string) *gorm.DB {
	for field, value := range filters {
		column, ok := columns[field]
		if !ok {
			continue
		}
		db = db.Where(column+" = ?", value)
	}
	return db
}

// applyOrdering appends the ORDER BY clause for a caller-selected field with
// a "-" prefix for descending, plus an id tie-break in the same direction.
// Unknown fields fall back to the default ordering.
func applyOrdering(db *gorm.DB, ordering string, columns map[string]string, defaultOrder string) *gorm.DB {
	if ordering == "" {
		return db.Order(defaultOrder)
	}

	direction := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		field = ordering[1:]
	}

	column, ok := columns[field]
	if !ok {
		return db.Order(defaultOrder)
	}
	return db.Order(column + " " + direction + ", id " + direction)
}
