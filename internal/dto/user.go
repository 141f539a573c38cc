package dto

import (
	"time"

	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// UserSummaryDTO is the compact form of a user embedded in other resources
type UserSummaryDTO struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	UserSummaryDTO
	Phone        string         `json:"phone"`
	Bio          string         `json:"bio"`
	Program      string         `json:"program"`
	Semester     uint           `json:"semester"`
	DisciplineID *uint64        `json:"discipline_id"`
	Discipline   *DisciplineDTO `json:"discipline,omitempty"`
	Skills       []SkillDTO     `json:"skills"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ProfileDTO is a user together with counters over the projects they created
type ProfileDTO struct {
	UserDTO
	TotalProjects  int64 `json:"total_projects"`
	ActiveProjects int64 `json:"active_projects"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO                `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		AvatarURL: user.AvatarURL,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		UserSummaryDTO: ToUserSummaryDTO(user),
		Phone:          user.Phone,
		Bio:            user.Bio,
		Program:        user.Program,
		Semester:       user.Semester,
		DisciplineID:   user.DisciplineID,
		Skills:         ToSkillDTOs(user.Skills),
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	// Include discipline if preloaded
	if user.Discipline != nil {
		discipline := ToDisciplineDTO(*user.Discipline)
		dto.Discipline = &discipline
	}

	return dto
}

// ToProfileDTO converts a UserProfile to ProfileDTO
func ToProfileDTO(profile services.UserProfile) ProfileDTO {
	return ProfileDTO{
		UserDTO:        ToUserDTO(profile.User),
		TotalProjects:  profile.TotalProjects,
		ActiveProjects: profile.ActiveProjects,
	}
}

// ToUserListResponse converts a page of users to UserListResponse
func ToUserListResponse(users []models.User, params utils.PaginationParams, total int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}

	return UserListResponse{
		Users:      items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
