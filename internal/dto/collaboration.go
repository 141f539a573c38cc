package dto

import (
	"time"

	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// CollaborationDTO represents a collaboration request in API responses
type CollaborationDTO struct {
	ID        uint64                    `json:"id"`
	ProjectID uint64                    `json:"project_id"`
	UserID    uint64                    `json:"user_id"`
	State     models.CollaborationState `json:"state"`
	Role      models.CollaborationRole  `json:"role"`
	Message   string                    `json:"message"`
	Response  string                    `json:"response"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
	User      *UserSummaryDTO           `json:"user,omitempty"`
	Project   *ProjectSummaryDTO        `json:"project,omitempty"`
}

// CollaborationListResponse represents a paginated list of collaborations
type CollaborationListResponse struct {
	Collaborations []CollaborationDTO       `json:"collaborations"`
	Pagination     utils.PaginationResponse `json:"pagination"`
}

// ToCollaborationDTO converts a Collaboration model to CollaborationDTO
func ToCollaborationDTO(collab models.Collaboration) CollaborationDTO {
	dto := CollaborationDTO{
		ID:        collab.ID,
		ProjectID: collab.ProjectID,
		UserID:    collab.UserID,
		State:     collab.State,
		Role:      collab.Role,
		Message:   collab.Message,
		Response:  collab.Response,
		CreatedAt: collab.CreatedAt,
		UpdatedAt: collab.UpdatedAt,
	}

	if collab.User.ID != 0 {
		user := ToUserSummaryDTO(collab.User)
		dto.User = &user
	}
	if collab.Project.ID != 0 {
		project := ToProjectSummaryDTO(collab.Project)
		dto.Project = &project
	}

	return dto
}

func ToCollaborationDTOs(collabs []models.Collaboration) []CollaborationDTO {
	items := make([]CollaborationDTO, len(collabs))
	for i, collab := range collabs {
		items[i] = ToCollaborationDTO(collab)
	}
	return items
}

func ToCollaborationListResponse(collabs []models.Collaboration, params utils.PaginationParams, total int64) CollaborationListResponse {
	return CollaborationListResponse{
		Collaborations: ToCollaborationDTOs(collabs),
		Pagination:     utils.NewPaginationResponse(params, total),
	}
}
