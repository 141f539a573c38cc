package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/collab-projects-api/internal/dto"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListComments returns comments, filterable by project and user
func (h *CommentHandler) ListComments(c *gin.Context) {
	projectID, ok := queryUint64(c, "project")
	if !ok {
		return
	}
	userID, ok := queryUint64(c, "user")
	if !ok {
		return
	}

	input := services.ListCommentsInput{
		ProjectID:  projectID,
		UserID:     userID,
		Ordering:   c.Query("ordering"),
		Pagination: utils.GetPaginationParams(c),
	}

	comments, total, err := h.commentService.ListComments(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentListResponse(comments, input.Pagination, total))
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// CreateComment posts a comment as the authenticated user
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Content   string `json:"content" binding:"required"`
	}

	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(services.CreateCommentInput{
		ActorID:   userID,
		ProjectID: req.ProjectID,
		Content:   req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// UpdateComment edits a comment. Author only.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	type UpdateCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(id, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment. Author or project creator only.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
