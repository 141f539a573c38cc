package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

var commentOrdering = map[string]string{
	"created_at": "comments.created_at",
}

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

// FindByID finds a comment by ID with optional preloading
func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.Comment, error) {
	var comment models.Comment
	if err := preloadAll(r.db, preload).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update updates a comment
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Save(comment).Error
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// List retrieves comments with filtering and pagination
func (r *GormCommentRepository) List(filter CommentFilter) ([]models.Comment, int64, error) {
	var comments []models.Comment

	query := r.db.Model(&models.Comment{})

	if filter.ProjectID != nil {
		query = query.Where("comments.project_id = ?", *filter.ProjectID)
	}
	if filter.UserID != nil {
		query = query.Where("comments.user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderBy(filter.Ordering, commentOrdering, "comments.created_at DESC"))
	listQuery = paginate(listQuery, filter.Pagination)

	if err := listQuery.Preload("User").Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
