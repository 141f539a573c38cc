package repository

import (
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user's own columns
	Update(user *models.User) error

	// ReplaceSkills replaces the user's skill set
	ReplaceSkills(user *models.User, skillIDs []uint64) error

	// List retrieves users with filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	DisciplineID *uint64
	Semester     *uint
	IsActive     *bool
	Search       string
	Ordering     string
	Pagination   utils.PaginationParams
}

// CatalogRepository defines the interface for skill and discipline data access
type CatalogRepository interface {
	CreateSkill(skill *models.Skill) error
	FindSkillByID(id uint64) (*models.Skill, error)
	FindSkillByName(name string) (*models.Skill, error)
	UpdateSkill(skill *models.Skill) error
	// DeleteSkill removes a skill and detaches it from users and projects
	DeleteSkill(id uint64) error
	ListSkills(filter CatalogFilter) ([]models.Skill, int64, error)
	// CountSkills counts how many of the given skill IDs exist
	CountSkills(ids []uint64) (int64, error)

	CreateDiscipline(discipline *models.Discipline) error
	FindDisciplineByID(id uint64) (*models.Discipline, error)
	FindDisciplineByName(name string) (*models.Discipline, error)
	UpdateDiscipline(discipline *models.Discipline) error
	// DeleteDiscipline removes a discipline, clears it on users and detaches it from projects
	DeleteDiscipline(id uint64) error
	ListDisciplines(filter CatalogFilter) ([]models.Discipline, int64, error)
	// CountDisciplines counts how many of the given discipline IDs exist
	CountDisciplines(ids []uint64) (int64, error)
}

// CatalogFilter holds filtering options for listing skills and disciplines
type CatalogFilter struct {
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project and its required skill and discipline links
	Create(project *models.Project, skillIDs, disciplineIDs []uint64) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// Update saves a project. Nil id slices leave the corresponding links untouched.
	Update(project *models.Project, skillIDs, disciplineIDs *[]uint64) error

	// Delete removes a project with its collaborations, comments and links
	Delete(id uint64) error

	// List retrieves projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// CountAccepted returns the number of accepted collaborations per project
	CountAccepted(projectIDs []uint64) (map[uint64]int64, error)

	// CountComments returns the number of comments per project
	CountComments(projectIDs []uint64) (map[uint64]int64, error)

	// CountByCreator returns how many projects a user created, and how many of them are active
	CountByCreator(userID uint64) (total, active int64, err error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	State          *models.ProjectState
	DisciplineID   *uint64
	CreatorID      *uint64
	CollaboratorID *uint64
	Search         string
	Ordering       string
	Pagination     utils.PaginationParams
}

// LockedProject is a project read under a row lock together with its
// accepted collaborator count, both taken inside the same transaction.
type LockedProject struct {
	Project  models.Project
	Accepted int64
}

// CreateGuard decides whether a collaboration may be inserted. existing is
// the row already linking the same project and user, or nil.
type CreateGuard func(locked LockedProject, existing *models.Collaboration) error

// TransitionGuard validates and applies a state change to collab. Any
// returned error rolls the transaction back.
type TransitionGuard func(locked LockedProject, collab *models.Collaboration) error

// CollaborationRepository defines the interface for collaboration data access
type CollaborationRepository interface {
	// Create runs guard under the project lock and inserts collab if it passes
	Create(collab *models.Collaboration, guard CreateGuard) error

	// FindByID finds a collaboration by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Collaboration, error)

	// List retrieves collaborations with filtering and pagination
	List(filter CollaborationFilter) ([]models.Collaboration, int64, error)

	// Transition locks the collaboration and its project, runs guard and saves the result
	Transition(id uint64, guard TransitionGuard) (*models.Collaboration, error)
}

// CollaborationFilter holds filtering options for listing collaborations
type CollaborationFilter struct {
	ProjectID *uint64
	UserID    *uint64
	State     *models.CollaborationState
	// VisibleTo limits results to rows requested by, or addressed to, this user
	VisibleTo  *uint64
	Ordering   string
	Pagination utils.PaginationParams
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id uint64, preload ...string) (*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uint64) error
	List(filter CommentFilter) ([]models.Comment, int64, error)
}

// CommentFilter holds filtering options for listing comments
type CommentFilter struct {
	ProjectID  *uint64
	UserID     *uint64
	Ordering   string
	Pagination utils.PaginationParams
}
