package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/logger"
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

var (
	ErrContentRequired     = errors.New("content cannot be empty")
	ErrUnknownProject      = errors.New("project does not exist")
	ErrNotCommentAuthor    = fmt.Errorf("%w: only the author can edit this comment", ErrForbidden)
	ErrCommentDeleteDenied = fmt.Errorf("%w: only the author or the project creator can delete this comment", ErrForbidden)
)

// CommentService handles project comments
type CommentService struct {
	commentRepo repository.CommentRepository
	projectRepo repository.ProjectRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, projectRepo repository.ProjectRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		projectRepo: projectRepo,
	}
}

// CreateCommentInput represents input for posting a comment
type CreateCommentInput struct {
	ActorID   uint64
	ProjectID uint64
	Content   string
}

// ListCommentsInput represents filters for listing comments
type ListCommentsInput struct {
	ProjectID  *uint64
	UserID     *uint64
	Ordering   string
	Pagination utils.PaginationParams
}

// ListComments returns comments matching the filters, newest first
func (s *CommentService) ListComments(input ListCommentsInput) ([]models.Comment, int64, error) {
	comments, total, err := s.commentRepo.List(repository.CommentFilter{
		ProjectID:  input.ProjectID,
		UserID:     input.UserID,
		Ordering:   input.Ordering,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// GetComment returns a comment with its author
func (s *CommentService) GetComment(id uint64) (*models.Comment, error) {
	return s.findComment(id, "User")
}

// CreateComment posts a comment authored by the actor
func (s *CommentService) CreateComment(input CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, invalid("content", ErrContentRequired)
	}

	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("project_id", ErrUnknownProject)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	comment := &models.Comment{
		ProjectID: input.ProjectID,
		UserID:    input.ActorID,
		Content:   content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.findComment(comment.ID, "User")
}

// UpdateComment replaces the content of a comment. Author only; checked
// before the new content is applied.
func (s *CommentService) UpdateComment(id, actorID uint64, content string) (*models.Comment, error) {
	comment, err := s.findComment(id)
	if err != nil {
		return nil, err
	}

	if !CanEditComment(actorID, *comment) {
		return nil, ErrNotCommentAuthor
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", ErrContentRequired)
	}
	comment.Content = content

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return s.findComment(comment.ID, "User")
}

// DeleteComment removes a comment if the actor wrote it or owns the project
func (s *CommentService) DeleteComment(id, actorID uint64) error {
	comment, err := s.findComment(id, "Project")
	if err != nil {
		return err
	}

	if !CanDeleteComment(actorID, *comment, comment.Project) {
		return ErrCommentDeleteDenied
	}

	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	logger.Info().
		Uint64("comment_id", comment.ID).
		Uint64("project_id", comment.ProjectID).
		Uint64("actor_id", actorID).
		Msg("comment deleted")
	return nil
}

func (s *CommentService) findComment(id uint64, preload ...string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}
