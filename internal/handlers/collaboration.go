package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/collab-projects-api/internal/dto"
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

type CollaborationHandler struct {
	collaborationService *services.CollaborationService
}

func NewCollaborationHandler(collaborationService *services.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{collaborationService: collaborationService}
}

type resolveRequest struct {
	Response string `json:"response"`
}

// ListCollaborations returns the collaborations visible to the authenticated
// user: their own requests and the requests on projects they created
func (h *CollaborationHandler) ListCollaborations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := queryUint64(c, "project")
	if !ok {
		return
	}
	filterUserID, ok := queryUint64(c, "user")
	if !ok {
		return
	}

	input := services.ListCollaborationsInput{
		ActorID:    userID,
		ProjectID:  projectID,
		UserID:     filterUserID,
		Ordering:   c.Query("ordering"),
		Pagination: utils.GetPaginationParams(c),
	}
	if raw := c.Query("state"); raw != "" {
		state := models.CollaborationState(raw)
		input.State = &state
	}

	collabs, total, err := h.collaborationService.ListCollaborations(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollaborationListResponse(collabs, input.Pagination, total))
}

// ListMine returns the authenticated user's own requests
func (h *CollaborationHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	collabs, total, err := h.collaborationService.ListMine(userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollaborationListResponse(collabs, params, total))
}

// CreateCollaboration asks to join the project named in the body
func (h *CollaborationHandler) CreateCollaboration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateCollaborationRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Message   string `json:"message"`
	}

	var req CreateCollaborationRequest
	if !bindJSON(c, &req) {
		return
	}

	collab, err := h.collaborationService.RequestCollaboration(services.RequestCollaborationInput{
		ProjectID: req.ProjectID,
		ActorID:   userID,
		Message:   req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCollaborationDTO(*collab))
}

// GetCollaboration returns a collaboration visible to the authenticated user
func (h *CollaborationHandler) GetCollaboration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "collaboration")
	if !ok {
		return
	}

	collab, err := h.collaborationService.GetCollaboration(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollaborationDTO(*collab))
}

// AcceptCollaboration accepts a pending request. Project creator only.
func (h *CollaborationHandler) AcceptCollaboration(c *gin.Context) {
	h.resolve(c, h.collaborationService.AcceptCollaboration)
}

// RejectCollaboration rejects a pending request. Project creator only.
func (h *CollaborationHandler) RejectCollaboration(c *gin.Context) {
	h.resolve(c, h.collaborationService.RejectCollaboration)
}

func (h *CollaborationHandler) resolve(c *gin.Context, action func(id, actorID uint64, response string) (*models.Collaboration, error)) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "collaboration")
	if !ok {
		return
	}

	var req resolveRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	collab, err := action(id, userID, req.Response)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollaborationDTO(*collab))
}

// CancelCollaboration withdraws the authenticated user's own request
func (h *CollaborationHandler) CancelCollaboration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "collaboration")
	if !ok {
		return
	}

	collab, err := h.collaborationService.CancelCollaboration(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCollaborationDTO(*collab))
}
