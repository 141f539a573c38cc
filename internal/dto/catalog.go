package dto

import (
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// SkillDTO represents a skill in API responses
type SkillDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DisciplineDTO represents a discipline in API responses
type DisciplineDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SkillListResponse represents a paginated list of skills
type SkillListResponse struct {
	Skills     []SkillDTO               `json:"skills"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// DisciplineListResponse represents a paginated list of disciplines
type DisciplineListResponse struct {
	Disciplines []DisciplineDTO          `json:"disciplines"`
	Pagination  utils.PaginationResponse `json:"pagination"`
}

func ToSkillDTO(skill models.Skill) SkillDTO {
	return SkillDTO{ID: skill.ID, Name: skill.Name, Description: skill.Description}
}

func ToDisciplineDTO(discipline models.Discipline) DisciplineDTO {
	return DisciplineDTO{ID: discipline.ID, Name: discipline.Name, Description: discipline.Description}
}

// ToSkillDTOs never returns nil so that empty sets encode as []
func ToSkillDTOs(skills []models.Skill) []SkillDTO {
	items := make([]SkillDTO, len(skills))
	for i, skill := range skills {
		items[i] = ToSkillDTO(skill)
	}
	return items
}

// ToDisciplineDTOs never returns nil so that empty sets encode as []
func ToDisciplineDTOs(disciplines []models.Discipline) []DisciplineDTO {
	items := make([]DisciplineDTO, len(disciplines))
	for i, discipline := range disciplines {
		items[i] = ToDisciplineDTO(discipline)
	}
	return items
}

func ToSkillListResponse(skills []models.Skill, params utils.PaginationParams, total int64) SkillListResponse {
	return SkillListResponse{
		Skills:     ToSkillDTOs(skills),
		Pagination: utils.NewPaginationResponse(params, total),
	}
}

func ToDisciplineListResponse(disciplines []models.Discipline, params utils.PaginationParams, total int64) DisciplineListResponse {
	return DisciplineListResponse{
		Disciplines: ToDisciplineDTOs(disciplines),
		Pagination:  utils.NewPaginationResponse(params, total),
	}
}
