package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

var collaborationOrdering = map[string]string{
	"created_at": "collaborations.created_at",
	"updated_at": "collaborations.updated_at",
}

// GormCollaborationRepository is a GORM implementation of CollaborationRepository
type GormCollaborationRepository struct {
	db *gorm.DB
}

// NewCollaborationRepository creates a new CollaborationRepository
func NewCollaborationRepository(db *gorm.DB) CollaborationRepository {
	return &GormCollaborationRepository{db: db}
}

// Create runs guard while holding the project row lock and inserts collab when it passes
func (r *GormCollaborationRepository) Create(collab *models.Collaboration, guard CreateGuard) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		locked, err := lockProject(tx, collab.ProjectID)
		if err != nil {
			return err
		}

		var existing *models.Collaboration
		var found models.Collaboration
		err = tx.Where("project_id = ? AND user_id = ?", collab.ProjectID, collab.UserID).Take(&found).Error
		switch {
		case err == nil:
			existing = &found
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := guard(locked, existing); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(collab).Error
	})
}

// FindByID finds a collaboration by ID with optional preloading
func (r *GormCollaborationRepository) FindByID(id uint64, preload ...string) (*models.Collaboration, error) {
	var collab models.Collaboration
	if err := preloadAll(r.db, preload).First(&collab, id).Error; err != nil {
		return nil, err
	}
	return &collab, nil
}

// List retrieves collaborations with filtering and pagination
func (r *GormCollaborationRepository) List(filter CollaborationFilter) ([]models.Collaboration, int64, error) {
	var collabs []models.Collaboration

	query := r.db.Model(&models.Collaboration{})

	if filter.ProjectID != nil {
		query = query.Where("collaborations.project_id = ?", *filter.ProjectID)
	}
	if filter.UserID != nil {
		query = query.Where("collaborations.user_id = ?", *filter.UserID)
	}
	if filter.State != nil {
		query = query.Where("collaborations.state = ?", *filter.State)
	}
	if filter.VisibleTo != nil {
		ownedProjects := r.db.Model(&models.Project{}).
			Select("projects.id").
			Where("projects.creator_id = ?", *filter.VisibleTo)
		query = query.Where(
			"collaborations.user_id = ? OR collaborations.project_id IN (?)",
			*filter.VisibleTo, ownedProjects,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderBy(filter.Ordering, collaborationOrdering, "collaborations.created_at DESC"))
	listQuery = paginate(listQuery, filter.Pagination)

	if err := listQuery.Preload("User").Preload("Project").Find(&collabs).Error; err != nil {
		return nil, 0, err
	}

	return collabs, total, nil
}

// Transition locks the collaboration and then its project, lets guard mutate
// the row and saves it. The guard sees the accepted count as of the lock.
func (r *GormCollaborationRepository) Transition(id uint64, guard TransitionGuard) (*models.Collaboration, error) {
	var collab models.Collaboration

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&collab, id).Error; err != nil {
			return err
		}

		locked, err := lockProject(tx, collab.ProjectID)
		if err != nil {
			return err
		}

		if err := guard(locked, &collab); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(&collab).Error
	})
	if err != nil {
		return nil, err
	}

	return &collab, nil
}

// lockProject reads a project with SELECT ... FOR UPDATE and counts its
// accepted collaborations inside the same transaction.
func lockProject(tx *gorm.DB, projectID uint64) (LockedProject, error) {
	var project models.Project
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, projectID).Error; err != nil {
		return LockedProject{}, err
	}

	var accepted int64
	if err := tx.Model(&models.Collaboration{}).
		Where("project_id = ? AND state = ?", projectID, models.CollaborationAccepted).
		Count(&accepted).Error; err != nil {
		return LockedProject{}, err
	}

	return LockedProject{Project: project, Accepted: accepted}, nil
}
