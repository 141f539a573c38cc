package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/collab-projects-api/internal/dto"
	apierrors "github.com/yukikurage/collab-projects-api/internal/errors"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

type UserHandler struct {
	userService    *services.UserService
	projectService *services.ProjectService
}

func NewUserHandler(userService *services.UserService, projectService *services.ProjectService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		projectService: projectService,
	}
}

// ListUsers returns users, filterable by discipline, semester, is_active and search
func (h *UserHandler) ListUsers(c *gin.Context) {
	disciplineID, ok := queryUint64(c, "discipline")
	if !ok {
		return
	}

	input := services.ListUsersInput{
		DisciplineID: disciplineID,
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering"),
		Pagination:   utils.GetPaginationParams(c),
	}

	if raw := c.Query("semester"); raw != "" {
		semester, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apierrors.BadRequest(c, "Invalid semester")
			return
		}
		value := uint(semester)
		input.Semester = &value
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid is_active")
			return
		}
		input.IsActive = &active
	}

	users, total, err := h.userService.ListUsers(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, input.Pagination, total))
}

// GetUser returns a user's public profile
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// GetUserProjects returns the projects a user created
func (h *UserHandler) GetUserProjects(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	if _, err := h.userService.GetUser(userID); err != nil {
		respondError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	projects, total, err := h.projectService.ListProjects(services.ListProjectsInput{
		CreatorID:  &userID,
		Pagination: params,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, params, total))
}

// GetProfile returns the authenticated user's profile with project counters
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// UpdateProfile applies a partial update to the authenticated user's profile.
// Sending "discipline_id": null clears the discipline.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type UpdateProfileRequest struct {
		FirstName    *string   `json:"first_name" binding:"omitempty,max=100"`
		LastName     *string   `json:"last_name" binding:"omitempty,max=100"`
		Phone        *string   `json:"phone" binding:"omitempty,max=20"`
		AvatarURL    *string   `json:"avatar_url" binding:"omitempty,max=500"`
		Bio          *string   `json:"bio"`
		Program      *string   `json:"program" binding:"omitempty,max=200"`
		Semester     *uint     `json:"semester"`
		DisciplineID *uint64   `json:"discipline_id"`
		SkillIDs     *[]uint64 `json:"skill_ids"`
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	nulls := nullFields(c)

	profile, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		AvatarURL:       req.AvatarURL,
		Bio:             req.Bio,
		Program:         req.Program,
		Semester:        req.Semester,
		DisciplineID:    req.DisciplineID,
		ClearDiscipline: nulls["discipline_id"],
		SkillIDs:        req.SkillIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}
