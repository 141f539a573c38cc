package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

var ErrInvalidSemester = errors.New("semester must be a positive number")

// UserService handles profile reads and updates
type UserService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	catalogRepo repository.CatalogRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository, catalogRepo repository.CatalogRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		catalogRepo: catalogRepo,
	}
}

// UserProfile is a user together with counters over the projects they created
type UserProfile struct {
	User           models.User
	TotalProjects  int64
	ActiveProjects int64
}

// ListUsersInput represents filters for listing users
type ListUsersInput struct {
	DisciplineID *uint64
	Semester     *uint
	IsActive     *bool
	Search       string
	Ordering     string
	Pagination   utils.PaginationParams
}

// UpdateProfileInput holds a partial profile update. Nil fields are left as they are.
type UpdateProfileInput struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	AvatarURL       *string
	Bio             *string
	Program         *string
	Semester        *uint
	DisciplineID    *uint64
	ClearDiscipline bool
	SkillIDs        *[]uint64
}

// ListUsers returns users matching the filters
func (s *UserService) ListUsers(input ListUsersInput) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(repository.UserFilter{
		DisciplineID: input.DisciplineID,
		Semester:     input.Semester,
		IsActive:     input.IsActive,
		Search:       input.Search,
		Ordering:     input.Ordering,
		Pagination:   input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser returns a user with discipline and skills
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Discipline", "Skills")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetProfile returns a user with project counters
func (s *UserService) GetProfile(id uint64) (*UserProfile, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	total, active, err := s.projectRepo.CountByCreator(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	return &UserProfile{User: *user, TotalProjects: total, ActiveProjects: active}, nil
}

// UpdateProfile applies a partial update to the user's own profile
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*UserProfile, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.validateProfileUpdate(input); err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Program != nil {
		user.Program = strings.TrimSpace(*input.Program)
	}
	if input.Semester != nil {
		user.Semester = *input.Semester
	}
	if input.ClearDiscipline {
		user.DisciplineID = nil
	} else if input.DisciplineID != nil {
		user.DisciplineID = input.DisciplineID
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if input.SkillIDs != nil {
		if err := s.userRepo.ReplaceSkills(user, uniqueUint64(*input.SkillIDs)); err != nil {
			return nil, fmt.Errorf("failed to update skills: %w", err)
		}
	}

	return s.GetProfile(user.ID)
}

func (s *UserService) validateProfileUpdate(input UpdateProfileInput) error {
	if input.FirstName != nil && strings.TrimSpace(*input.FirstName) == "" {
		return invalid("first_name", ErrFieldRequired)
	}
	if input.LastName != nil && strings.TrimSpace(*input.LastName) == "" {
		return invalid("last_name", ErrFieldRequired)
	}
	if input.Program != nil && strings.TrimSpace(*input.Program) == "" {
		return invalid("program", ErrFieldRequired)
	}
	if input.Semester != nil && *input.Semester == 0 {
		return invalid("semester", ErrInvalidSemester)
	}
	if !input.ClearDiscipline && input.DisciplineID != nil {
		if err := ensureDisciplines(s.catalogRepo, "discipline_id", []uint64{*input.DisciplineID}); err != nil {
			return err
		}
	}
	if input.SkillIDs != nil {
		if err := ensureSkills(s.catalogRepo, "skill_ids", *input.SkillIDs); err != nil {
			return err
		}
	}
	return nil
}
