package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/logger"
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

var (
	ErrNoVacancy               = errors.New("this project has no vacancies left")
	ErrOwnProject              = errors.New("you cannot request to collaborate on your own project")
	ErrAlreadyRequested        = errors.New("a collaboration request for this project already exists")
	ErrCollaborationNotPending = errors.New("only pending requests can be accepted or rejected")
	ErrCollaborationClosed     = errors.New("this collaboration can no longer be cancelled")
	ErrNotRequester            = fmt.Errorf("%w: only the requesting user can cancel this collaboration", ErrForbidden)
	ErrCollaborationHidden     = fmt.Errorf("%w: this collaboration belongs to another user", ErrForbidden)
)

var collaborationPreloads = []string{"User", "Project"}

// CollaborationService handles collaboration requests and their resolution
type CollaborationService struct {
	collabRepo  repository.CollaborationRepository
	projectRepo repository.ProjectRepository
}

// NewCollaborationService creates a new CollaborationService
func NewCollaborationService(collabRepo repository.CollaborationRepository, projectRepo repository.ProjectRepository) *CollaborationService {
	return &CollaborationService{
		collabRepo:  collabRepo,
		projectRepo: projectRepo,
	}
}

// RequestCollaborationInput represents a request to join a project
type RequestCollaborationInput struct {
	ProjectID uint64
	ActorID   uint64
	Message   string
}

// ListCollaborationsInput represents filters for listing collaborations.
// Results are always limited to what the actor may see.
type ListCollaborationsInput struct {
	ActorID    uint64
	ProjectID  *uint64
	UserID     *uint64
	State      *models.CollaborationState
	Ordering   string
	Pagination utils.PaginationParams
}

// ValidateRequest checks a join request against the project as read under
// lock. existing is any collaboration already linking the actor to it.
func ValidateRequest(locked repository.LockedProject, actorID uint64, existing *models.Collaboration) error {
	if !locked.Project.HasVacancy(locked.Accepted) {
		return invalid("project", ErrNoVacancy)
	}
	if locked.Project.CreatorID == actorID {
		return invalid("project", ErrOwnProject)
	}
	if existing != nil {
		return invalid("project", ErrAlreadyRequested)
	}
	return nil
}

// RequestCollaboration creates a PENDING request from the actor
func (s *CollaborationService) RequestCollaboration(input RequestCollaborationInput) (*models.Collaboration, error) {
	collab := &models.Collaboration{
		ProjectID: input.ProjectID,
		UserID:    input.ActorID,
		State:     models.CollaborationPending,
		Role:      models.RoleCollaborator,
		Message:   strings.TrimSpace(input.Message),
	}

	err := s.collabRepo.Create(collab, func(locked repository.LockedProject, existing *models.Collaboration) error {
		return ValidateRequest(locked, input.ActorID, existing)
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrProjectNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, invalid("project", ErrAlreadyRequested)
		case IsValidation(err):
			return nil, err
		}
		return nil, fmt.Errorf("failed to create collaboration: %w", err)
	}

	logger.Info().
		Uint64("collaboration_id", collab.ID).
		Uint64("project_id", collab.ProjectID).
		Uint64("user_id", collab.UserID).
		Msg("collaboration requested")

	return s.findCollaboration(collab.ID)
}

// AcceptCollaboration accepts a pending request. The project row is locked
// and vacancy recounted inside the same transaction as the write.
func (s *CollaborationService) AcceptCollaboration(id, actorID uint64, response string) (*models.Collaboration, error) {
	return s.transition(id, "accepted", func(locked repository.LockedProject, collab *models.Collaboration) error {
		if !CanResolveCollaboration(actorID, locked.Project) {
			return ErrNotProjectCreator
		}
		if collab.State != models.CollaborationPending {
			return invalid("state", ErrCollaborationNotPending)
		}
		if !locked.Project.HasVacancy(locked.Accepted) {
			return invalid("project", ErrNoVacancy)
		}

		collab.State = models.CollaborationAccepted
		collab.Response = strings.TrimSpace(response)
		return nil
	})
}

// RejectCollaboration rejects a pending request regardless of vacancy
func (s *CollaborationService) RejectCollaboration(id, actorID uint64, response string) (*models.Collaboration, error) {
	return s.transition(id, "rejected", func(locked repository.LockedProject, collab *models.Collaboration) error {
		if !CanResolveCollaboration(actorID, locked.Project) {
			return ErrNotProjectCreator
		}
		if collab.State != models.CollaborationPending {
			return invalid("state", ErrCollaborationNotPending)
		}

		collab.State = models.CollaborationRejected
		collab.Response = strings.TrimSpace(response)
		return nil
	})
}

// CancelCollaboration lets the requester withdraw a pending or accepted collaboration
func (s *CollaborationService) CancelCollaboration(id, actorID uint64) (*models.Collaboration, error) {
	return s.transition(id, "cancelled", func(locked repository.LockedProject, collab *models.Collaboration) error {
		if !CanCancelCollaboration(actorID, *collab) {
			return ErrNotRequester
		}
		if collab.State != models.CollaborationPending && collab.State != models.CollaborationAccepted {
			return invalid("state", ErrCollaborationClosed)
		}

		collab.State = models.CollaborationCancelled
		return nil
	})
}

// GetCollaboration returns a collaboration visible to the actor
func (s *CollaborationService) GetCollaboration(id, actorID uint64) (*models.Collaboration, error) {
	collab, err := s.findCollaboration(id)
	if err != nil {
		return nil, err
	}
	if !CanViewCollaboration(actorID, *collab, collab.Project) {
		return nil, ErrCollaborationHidden
	}
	return collab, nil
}

// ListCollaborations returns the actor's own requests and the requests made to the actor's projects
func (s *CollaborationService) ListCollaborations(input ListCollaborationsInput) ([]models.Collaboration, int64, error) {
	collabs, total, err := s.collabRepo.List(repository.CollaborationFilter{
		ProjectID:  input.ProjectID,
		UserID:     input.UserID,
		State:      input.State,
		VisibleTo:  &input.ActorID,
		Ordering:   input.Ordering,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collaborations: %w", err)
	}
	return collabs, total, nil
}

// ListMine returns the requests the actor has sent
func (s *CollaborationService) ListMine(actorID uint64, pagination utils.PaginationParams) ([]models.Collaboration, int64, error) {
	return s.ListCollaborations(ListCollaborationsInput{ActorID: actorID, UserID: &actorID, Pagination: pagination})
}

// ListCollaborators returns the accepted collaborations of a project
func (s *CollaborationService) ListCollaborators(projectID uint64) ([]models.Collaboration, error) {
	if _, err := s.findProject(projectID); err != nil {
		return nil, err
	}

	accepted := models.CollaborationAccepted
	collabs, _, err := s.collabRepo.List(repository.CollaborationFilter{ProjectID: &projectID, State: &accepted})
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	return collabs, nil
}

// ListPendingRequests returns a project's pending requests. Creator only.
func (s *CollaborationService) ListPendingRequests(projectID, actorID uint64) ([]models.Collaboration, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if !CanResolveCollaboration(actorID, *project) {
		return nil, ErrNotProjectCreator
	}

	pending := models.CollaborationPending
	collabs, _, err := s.collabRepo.List(repository.CollaborationFilter{ProjectID: &projectID, State: &pending})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return collabs, nil
}

func (s *CollaborationService) transition(id uint64, action string, guard repository.TransitionGuard) (*models.Collaboration, error) {
	updated, err := s.collabRepo.Transition(id, guard)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrCollaborationNotFound
		case IsForbidden(err), IsValidation(err):
			return nil, err
		}
		return nil, fmt.Errorf("failed to update collaboration: %w", err)
	}

	logger.Info().
		Uint64("collaboration_id", updated.ID).
		Uint64("project_id", updated.ProjectID).
		Str("state", string(updated.State)).
		Msg("collaboration " + action)

	return s.findCollaboration(updated.ID)
}

func (s *CollaborationService) findCollaboration(id uint64) (*models.Collaboration, error) {
	collab, err := s.collabRepo.FindByID(id, collaborationPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollaborationNotFound
		}
		return nil, fmt.Errorf("failed to find collaboration: %w", err)
	}
	return collab, nil
}

func (s *CollaborationService) findProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
