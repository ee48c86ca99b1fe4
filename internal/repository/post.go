// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"feedsvc/internal/models"

	"gorm.io/gorm"
)

// PostFilter holds the optional collection filters; they compose conjunctively.
type PostFilter struct {
	Skip       int
	Limit      int
	InterestID *int
	CreatedBy  *int
	Search     string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	// Create inserts the post and its interest associations in a single
	// transaction. An unknown interest id aborts the whole operation.
	Create(ctx context.Context, post *models.Post, interestIDs []int) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	// Interests returns the interests associated with a post, joined through
	// the association table.
	Interests(ctx context.Context, postID int) ([]models.Interest, error)
	// List returns the filtered page ordered by creation time descending,
	// plus the total number of matching rows ignoring the page window.
	List(ctx context.Context, f PostFilter) ([]*models.Post, int64, error)
	// Update applies the supplied column assignments and, when interestIDs is
	// non-nil, replaces the full association set (nil keeps it untouched, an
	// empty slice clears it). Both steps run in a single transaction.
	Update(ctx context.Context, id int, assignments map[string]any, interestIDs []int) error
	Delete(ctx context.Context, id int) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, interestIDs []int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return associateInterests(tx, post.PostID, interestIDs)
	})
}

// associateInterests validates each referenced interest and inserts the
// association rows. Returning an error rolls back the surrounding transaction,
// so no partial association set is ever committed.
func associateInterests(tx *gorm.DB, postID int, interestIDs []int) error {
	for _, interestID := range interestIDs {
		var count int64
		if err := tx.Model(&models.Interest{}).Where("interest_id = ?", interestID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return models.NewInvalidReferenceError(interestID)
		}
		if err := tx.Create(&models.PostInterest{PostID: postID, InterestID: interestID}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, "post_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Interests(ctx context.Context, postID int) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Joins("INNER JOIN post_interests pi ON pi.interest_id = interests.interest_id").
		Where("pi.post_id = ?", postID).
		Order("interests.interest_id").
		Find(&interests).Error
	return interests, err
}

// filtered applies the conjunctive collection filters to a posts query.
func (r *postRepository) filtered(db *gorm.DB, f PostFilter) *gorm.DB {
	q := db.Model(&models.Post{})
	if f.InterestID != nil {
		q = q.Where("post_id IN (SELECT post_id FROM post_interests WHERE interest_id = ?)", *f.InterestID)
	}
	if f.CreatedBy != nil {
		q = q.Where("created_by = ?", *f.CreatedBy)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR body ILIKE ?", pattern, pattern)
	}
	return q
}

func (r *postRepository) List(ctx context.Context, f PostFilter) ([]*models.Post, int64, error) {
	var total int64
	if err := r.filtered(r.db.WithContext(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.filtered(r.db.WithContext(ctx), f).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, id int, assignments map[string]any, interestIDs []int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(assignments) > 0 {
			if err := tx.Model(&models.Post{}).Where("post_id = ?", id).Updates(assignments).Error; err != nil {
				return err
			}
		}
		if interestIDs != nil {
			// Replace-all semantics: drop the existing set, then validate and
			// insert the provided one.
			if err := tx.Where("post_id = ?", id).Delete(&models.PostInterest{}).Error; err != nil {
				return err
			}
			if err := associateInterests(tx, id, interestIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostInterest{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&models.Post{}).Error
	})
}
