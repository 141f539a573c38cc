package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/logger"
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

const maxProjectTitleLength = 200

var (
	ErrNotProjectCreator      = fmt.Errorf("%w: only the project creator can perform this action", ErrForbidden)
	ErrTitleRequired          = errors.New("title is required")
	ErrTitleTooLong           = fmt.Errorf("title must be at most %d characters", maxProjectTitleLength)
	ErrDescriptionRequired    = errors.New("description is required")
	ErrObjectiveRequired      = errors.New("objective is required")
	ErrInvalidProjectState    = errors.New("unknown project state")
	ErrInvalidTarget          = errors.New("target collaborators must be at least 1")
	ErrEndBeforeStart         = errors.New("end date cannot be before start date")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAIDraftIncomplete      = errors.New("AI did not produce a usable project draft")
	ErrDraftTextRequired      = errors.New("text is required")
)

var projectDetailPreloads = []string{"Creator", "RequiredSkills", "RequiredDisciplines"}

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	catalogRepo repository.CatalogRepository
	aiService   *AIService
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, catalogRepo repository.CatalogRepository, aiService *AIService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		catalogRepo: catalogRepo,
		aiService:   aiService,
	}
}

// ProjectWithStats is a project with its derived counters. The counters are
// computed from the collaboration and comment tables on every read.
type ProjectWithStats struct {
	Project              models.Project
	CurrentCollaborators int64
	TotalComments        int64
}

// HasVacancy reports whether the project still accepts collaborators
func (p ProjectWithStats) HasVacancy() bool {
	return p.Project.HasVacancy(p.CurrentCollaborators)
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	ActorID             uint64
	Title               string
	Description         string
	Objective           string
	ImageURL            string
	State               models.ProjectState
	TargetCollaborators uint
	StartDate           *time.Time
	EndDate             *time.Time
	SkillIDs            []uint64
	DisciplineIDs       []uint64
}

// UpdateProjectInput represents a partial project update
type UpdateProjectInput struct {
	Title               *string
	Description         *string
	Objective           *string
	ImageURL            *string
	State               *models.ProjectState
	TargetCollaborators *uint
	StartDate           *time.Time
	ClearStartDate      bool
	EndDate             *time.Time
	ClearEndDate        bool
	SkillIDs            *[]uint64
	DisciplineIDs       *[]uint64
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	State          *models.ProjectState
	DisciplineID   *uint64
	CreatorID      *uint64
	CollaboratorID *uint64
	Search         string
	Ordering       string
	Pagination     utils.PaginationParams
}

// ListProjects returns projects matching the filters, with counters
func (s *ProjectService) ListProjects(input ListProjectsInput) ([]ProjectWithStats, int64, error) {
	projects, total, err := s.projectRepo.List(repository.ProjectFilter{
		State:          input.State,
		DisciplineID:   input.DisciplineID,
		CreatorID:      input.CreatorID,
		CollaboratorID: input.CollaboratorID,
		Search:         input.Search,
		Ordering:       input.Ordering,
		Pagination:     input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	withStats, err := s.attachStats(projects)
	if err != nil {
		return nil, 0, err
	}
	return withStats, total, nil
}

// ListMine returns the projects created by the actor
func (s *ProjectService) ListMine(actorID uint64, pagination utils.PaginationParams) ([]ProjectWithStats, int64, error) {
	return s.ListProjects(ListProjectsInput{CreatorID: &actorID, Pagination: pagination})
}

// ListCollaborating returns the projects where the actor is an accepted collaborator
func (s *ProjectService) ListCollaborating(actorID uint64, pagination utils.PaginationParams) ([]ProjectWithStats, int64, error) {
	return s.ListProjects(ListProjectsInput{CollaboratorID: &actorID, Pagination: pagination})
}

// GetProject returns a project with its relations and counters
func (s *ProjectService) GetProject(id uint64) (*ProjectWithStats, error) {
	project, err := s.findProject(id, projectDetailPreloads...)
	if err != nil {
		return nil, err
	}

	withStats, err := s.attachStats([]models.Project{*project})
	if err != nil {
		return nil, err
	}
	return &withStats[0], nil
}

// CreateProject creates a project owned by the actor
func (s *ProjectService) CreateProject(input CreateProjectInput) (*ProjectWithStats, error) {
	if input.State == "" {
		input.State = models.ProjectStateDraft
	}
	if input.TargetCollaborators == 0 {
		input.TargetCollaborators = 1
	}

	project := &models.Project{
		Title:               strings.TrimSpace(input.Title),
		Description:         strings.TrimSpace(input.Description),
		Objective:           strings.TrimSpace(input.Objective),
		ImageURL:            strings.TrimSpace(input.ImageURL),
		CreatorID:           input.ActorID,
		State:               input.State,
		TargetCollaborators: input.TargetCollaborators,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
	}

	if err := validateProject(project); err != nil {
		return nil, err
	}

	skillIDs := uniqueUint64(input.SkillIDs)
	disciplineIDs := uniqueUint64(input.DisciplineIDs)
	if err := ensureSkills(s.catalogRepo, "skill_ids", skillIDs); err != nil {
		return nil, err
	}
	if err := ensureDisciplines(s.catalogRepo, "discipline_ids", disciplineIDs); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(project, skillIDs, disciplineIDs); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logger.Info().
		Uint64("project_id", project.ID).
		Uint64("creator_id", project.CreatorID).
		Msg("project created")

	return s.GetProject(project.ID)
}

// UpdateProject applies a partial update. Only the creator may update, and
// the check runs before any input touches the loaded project.
func (s *ProjectService) UpdateProject(id, actorID uint64, input UpdateProjectInput) (*ProjectWithStats, error) {
	project, err := s.findProject(id)
	if err != nil {
		return nil, err
	}

	if !CanEditProject(actorID, *project) {
		return nil, ErrNotProjectCreator
	}

	if input.Title != nil {
		project.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	if input.Objective != nil {
		project.Objective = strings.TrimSpace(*input.Objective)
	}
	if input.ImageURL != nil {
		project.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.State != nil {
		project.State = *input.State
	}
	if input.TargetCollaborators != nil {
		project.TargetCollaborators = *input.TargetCollaborators
	}
	if input.ClearStartDate {
		project.StartDate = nil
	} else if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.ClearEndDate {
		project.EndDate = nil
	} else if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := validateProject(project); err != nil {
		return nil, err
	}

	var skillIDs, disciplineIDs *[]uint64
	if input.SkillIDs != nil {
		ids := uniqueUint64(*input.SkillIDs)
		if err := ensureSkills(s.catalogRepo, "skill_ids", ids); err != nil {
			return nil, err
		}
		skillIDs = &ids
	}
	if input.DisciplineIDs != nil {
		ids := uniqueUint64(*input.DisciplineIDs)
		if err := ensureDisciplines(s.catalogRepo, "discipline_ids", ids); err != nil {
			return nil, err
		}
		disciplineIDs = &ids
	}

	if err := s.projectRepo.Update(project, skillIDs, disciplineIDs); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetProject(project.ID)
}

// DeleteProject deletes a project if the actor is its creator
func (s *ProjectService) DeleteProject(id, actorID uint64) error {
	project, err := s.findProject(id)
	if err != nil {
		return err
	}

	if !CanDeleteProject(actorID, *project) {
		return ErrNotProjectCreator
	}

	if err := s.projectRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	logger.Info().Uint64("project_id", id).Uint64("actor_id", actorID).Msg("project deleted")
	return nil
}

// DraftProject asks the AI service for a project outline and resolves the
// suggested skill names against the catalog.
func (s *ProjectService) DraftProject(ctx context.Context, text string) (*ProjectDraft, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, invalid("text", ErrDraftTextRequired)
	}

	draft, err := s.aiService.DraftProjectFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to draft project: %w", err)
	}

	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" || strings.TrimSpace(draft.Description) == "" {
		return nil, ErrAIDraftIncomplete
	}
	draft.Title = truncateRunes(draft.Title, maxProjectTitleLength)
	if draft.TargetCollaborators < 1 {
		draft.TargetCollaborators = 1
	}

	draft.SkillIDs = nil
	for _, name := range draft.SuggestedSkills {
		skill, err := s.catalogRepo.FindSkillByName(strings.TrimSpace(name))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to match skill: %w", err)
		}
		draft.SkillIDs = append(draft.SkillIDs, skill.ID)
	}
	draft.SkillIDs = uniqueUint64(draft.SkillIDs)

	return draft, nil
}

func (s *ProjectService) findProject(id uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) attachStats(projects []models.Project) ([]ProjectWithStats, error) {
	ids := make([]uint64, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	accepted, err := s.projectRepo.CountAccepted(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count collaborators: %w", err)
	}
	comments, err := s.projectRepo.CountComments(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	result := make([]ProjectWithStats, len(projects))
	for i, p := range projects {
		result[i] = ProjectWithStats{
			Project:              p,
			CurrentCollaborators: accepted[p.ID],
			TotalComments:        comments[p.ID],
		}
	}
	return result, nil
}

// truncateRunes cuts s to at most n characters without splitting one.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func validateProject(p *models.Project) error {
	switch {
	case p.Title == "":
		return invalid("title", ErrTitleRequired)
	case utf8.RuneCountInString(p.Title) > maxProjectTitleLength:
		return invalid("title", ErrTitleTooLong)
	case p.Description == "":
		return invalid("description", ErrDescriptionRequired)
	case p.Objective == "":
		return invalid("objective", ErrObjectiveRequired)
	case !p.State.Valid():
		return invalid("state", ErrInvalidProjectState)
	case p.TargetCollaborators < 1:
		return invalid("target_collaborators", ErrInvalidTarget)
	case p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate):
		return invalid("end_date", ErrEndBeforeStart)
	}
	return nil
}
