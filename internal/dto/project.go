package dto

import (
	"time"

	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// ProjectSummaryDTO is the compact form of a project embedded in other resources
type ProjectSummaryDTO struct {
	ID        uint64              `json:"id"`
	Title     string              `json:"title"`
	State     models.ProjectState `json:"state"`
	CreatorID uint64              `json:"creator_id"`
}

// ProjectDTO represents a project in API responses. The collaborator counters
// are derived from accepted collaborations, never stored.
type ProjectDTO struct {
	ID                   uint64              `json:"id"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Objective            string              `json:"objective"`
	ImageURL             string              `json:"image_url"`
	State                models.ProjectState `json:"state"`
	TargetCollaborators  uint                `json:"target_collaborators"`
	CurrentCollaborators int64               `json:"current_collaborators"`
	HasVacancy           bool                `json:"has_vacancy"`
	TotalComments        int64               `json:"total_comments"`
	StartDate            *time.Time          `json:"start_date"`
	EndDate              *time.Time          `json:"end_date"`
	CreatorID            uint64              `json:"creator_id"`
	Creator              *UserSummaryDTO     `json:"creator,omitempty"`
	RequiredSkills       []SkillDTO          `json:"required_skills"`
	RequiredDisciplines  []DisciplineDTO     `json:"required_disciplines"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO             `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ProjectDraftDTO is an AI-generated starting point for a new project
type ProjectDraftDTO struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Objective           string   `json:"objective"`
	TargetCollaborators uint     `json:"target_collaborators"`
	SuggestedSkills     []string `json:"suggested_skills"`
	SkillIDs            []uint64 `json:"skill_ids"`
}

func ToProjectSummaryDTO(project models.Project) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ID:        project.ID,
		Title:     project.Title,
		State:     project.State,
		CreatorID: project.CreatorID,
	}
}

// ToProjectDTO converts a project with its counters to ProjectDTO
func ToProjectDTO(p services.ProjectWithStats) ProjectDTO {
	project := p.Project
	dto := ProjectDTO{
		ID:                   project.ID,
		Title:                project.Title,
		Description:          project.Description,
		Objective:            project.Objective,
		ImageURL:             project.ImageURL,
		State:                project.State,
		TargetCollaborators:  project.TargetCollaborators,
		CurrentCollaborators: p.CurrentCollaborators,
		HasVacancy:           p.HasVacancy(),
		TotalComments:        p.TotalComments,
		StartDate:            project.StartDate,
		EndDate:              project.EndDate,
		CreatorID:            project.CreatorID,
		RequiredSkills:       ToSkillDTOs(project.RequiredSkills),
		RequiredDisciplines:  ToDisciplineDTOs(project.RequiredDisciplines),
		CreatedAt:            project.CreatedAt,
		UpdatedAt:            project.UpdatedAt,
	}

	// Include creator if preloaded
	if project.Creator.ID != 0 {
		creator := ToUserSummaryDTO(project.Creator)
		dto.Creator = &creator
	}

	return dto
}

func ToProjectListResponse(projects []services.ProjectWithStats, params utils.PaginationParams, total int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}

	return ProjectListResponse{
		Projects:   items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}

func ToProjectDraftDTO(draft services.ProjectDraft) ProjectDraftDTO {
	dto := ProjectDraftDTO{
		Title:               draft.Title,
		Description:         draft.Description,
		Objective:           draft.Objective,
		TargetCollaborators: draft.TargetCollaborators,
		SuggestedSkills:     draft.SuggestedSkills,
		SkillIDs:            draft.SkillIDs,
	}
	if dto.SuggestedSkills == nil {
		dto.SuggestedSkills = []string{}
	}
	if dto.SkillIDs == nil {
		dto.SkillIDs = []uint64{}
	}
	return dto
}
