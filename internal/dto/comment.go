package dto

import (
	"time"

	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64          `json:"id"`
	ProjectID uint64          `json:"project_id"`
	UserID    uint64          `json:"user_id"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	User      *UserSummaryDTO `json:"user,omitempty"`
}

// CommentListResponse represents a paginated list of comments
type CommentListResponse struct {
	Comments   []CommentDTO             `json:"comments"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		ProjectID: comment.ProjectID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}

	// Include author if preloaded
	if comment.User.ID != 0 {
		user := ToUserSummaryDTO(comment.User)
		dto.User = &user
	}

	return dto
}

func ToCommentListResponse(comments []models.Comment, params utils.PaginationParams, total int64) CommentListResponse {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}

	return CommentListResponse{
		Comments:   items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
