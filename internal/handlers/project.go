package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/collab-projects-api/internal/dto"
	apierrors "github.com/yukikurage/collab-projects-api/internal/errors"
	"github.com/yukikurage/collab-projects-api/internal/middleware"
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

type ProjectHandler struct {
	projectService       *services.ProjectService
	collaborationService *services.CollaborationService
}

func NewProjectHandler(projectService *services.ProjectService, collaborationService *services.CollaborationService) *ProjectHandler {
	return &ProjectHandler{
		projectService:       projectService,
		collaborationService: collaborationService,
	}
}

// ListProjects returns projects, filterable by state, discipline, creator,
// collaborator and search
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	disciplineID, ok := queryUint64(c, "discipline")
	if !ok {
		return
	}
	creatorID, ok := queryUint64(c, "creator")
	if !ok {
		return
	}
	collaboratorID, ok := queryUint64(c, "collaborator")
	if !ok {
		return
	}

	input := services.ListProjectsInput{
		DisciplineID:   disciplineID,
		CreatorID:      creatorID,
		CollaboratorID: collaboratorID,
		Search:         c.Query("search"),
		Ordering:       c.Query("ordering"),
		Pagination:     utils.GetPaginationParams(c),
	}
	if raw := c.Query("state"); raw != "" {
		state := models.ProjectState(raw)
		input.State = &state
	}

	projects, total, err := h.projectService.ListProjects(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, input.Pagination, total))
}

// ListMine returns the projects the authenticated user created
func (h *ProjectHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	projects, total, err := h.projectService.ListMine(userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params, total))
}

// ListCollaborating returns the projects where the authenticated user is an accepted collaborator
func (h *ProjectHandler) ListCollaborating(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	projects, total, err := h.projectService.ListCollaborating(userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params, total))
}

// GetProject returns a project with its counters
// Project is already loaded by RequireProject middleware
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(project))
}

// CreateProject creates a project owned by the authenticated user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Title               string              `json:"title" binding:"required,max=200"`
		Description         string              `json:"description" binding:"required"`
		Objective           string              `json:"objective" binding:"required"`
		ImageURL            string              `json:"image_url" binding:"max=500"`
		State               models.ProjectState `json:"state"`
		TargetCollaborators uint                `json:"target_collaborators"`
		StartDate           *string             `json:"start_date"`
		EndDate             *string             `json:"end_date"`
		SkillIDs            []uint64            `json:"skill_ids"`
		DisciplineIDs       []uint64            `json:"discipline_ids"`
	}

	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	startDate, ok := parseDate(c, "start_date", req.StartDate)
	if !ok {
		return
	}
	endDate, ok := parseDate(c, "end_date", req.EndDate)
	if !ok {
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		ActorID:             userID,
		Title:               req.Title,
		Description:         req.Description,
		Objective:           req.Objective,
		ImageURL:            req.ImageURL,
		State:               req.State,
		TargetCollaborators: req.TargetCollaborators,
		StartDate:           startDate,
		EndDate:             endDate,
		SkillIDs:            req.SkillIDs,
		DisciplineIDs:       req.DisciplineIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update. Only the creator may do this.
// Sending a date as null or "" clears it.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Title               *string              `json:"title" binding:"omitempty,max=200"`
		Description         *string              `json:"description"`
		Objective           *string              `json:"objective"`
		ImageURL            *string              `json:"image_url" binding:"omitempty,max=500"`
		State               *models.ProjectState `json:"state"`
		TargetCollaborators *uint                `json:"target_collaborators"`
		StartDate           *string              `json:"start_date"`
		EndDate             *string              `json:"end_date"`
		SkillIDs            *[]uint64            `json:"skill_ids"`
		DisciplineIDs       *[]uint64            `json:"discipline_ids"`
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	nulls := nullFields(c)

	startDate, ok := parseDate(c, "start_date", req.StartDate)
	if !ok {
		return
	}
	endDate, ok := parseDate(c, "end_date", req.EndDate)
	if !ok {
		return
	}

	project, err := h.projectService.UpdateProject(projectID, userID, services.UpdateProjectInput{
		Title:               req.Title,
		Description:         req.Description,
		Objective:           req.Objective,
		ImageURL:            req.ImageURL,
		State:               req.State,
		TargetCollaborators: req.TargetCollaborators,
		StartDate:           startDate,
		ClearStartDate:      nulls["start_date"] || (req.StartDate != nil && *req.StartDate == ""),
		EndDate:             endDate,
		ClearEndDate:        nulls["end_date"] || (req.EndDate != nil && *req.EndDate == ""),
		SkillIDs:            req.SkillIDs,
		DisciplineIDs:       req.DisciplineIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project. Only the creator may do this.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DraftProject turns a free-form idea into a project draft using AI
func (h *ProjectHandler) DraftProject(c *gin.Context) {
	type DraftProjectRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req DraftProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.projectService.DraftProject(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDraftDTO(*draft))
}

// ListCollaborators returns the accepted collaborations of a project
func (h *ProjectHandler) ListCollaborators(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	collabs, err := h.collaborationService.ListCollaborators(project.Project.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collaborators": dto.ToCollaborationDTOs(collabs),
	})
}

// ListPendingRequests returns the pending requests of a project. Creator only.
func (h *ProjectHandler) ListPendingRequests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	collabs, err := h.collaborationService.ListPendingRequests(project.Project.ID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": dto.ToCollaborationDTOs(collabs),
	})
}

// RequestCollaboration asks to join the project as a collaborator
func (h *ProjectHandler) RequestCollaboration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	type RequestCollaborationRequest struct {
		Message string `json:"message"`
	}

	var req RequestCollaborationRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	collab, err := h.collaborationService.RequestCollaboration(services.RequestCollaborationInput{
		ProjectID: projectID,
		ActorID:   userID,
		Message:   req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCollaborationDTO(*collab))
}
