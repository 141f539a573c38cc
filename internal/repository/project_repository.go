package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

var projectOrdering = map[string]string{
	"created_at":           "projects.created_at",
	"title":                "projects.title",
	"target_collaborators": "projects.target_collaborators",
}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project and links its required skills and disciplines in one transaction
func (r *GormProjectRepository) Create(project *models.Project, skillIDs, disciplineIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		if len(skillIDs) > 0 {
			if err := replaceAssociation(tx, project, "RequiredSkills", &project.RequiredSkills, skillIDs); err != nil {
				return err
			}
		}
		if len(disciplineIDs) > 0 {
			if err := replaceAssociation(tx, project, "RequiredDisciplines", &project.RequiredDisciplines, disciplineIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	if err := preloadAll(r.db, preload).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update saves the project's columns and, when given, replaces its links
func (r *GormProjectRepository) Update(project *models.Project, skillIDs, disciplineIDs *[]uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}
		if skillIDs != nil {
			if err := replaceAssociation(tx, project, "RequiredSkills", &[]models.Skill{}, *skillIDs); err != nil {
				return err
			}
		}
		if disciplineIDs != nil {
			if err := replaceAssociation(tx, project, "RequiredDisciplines", &[]models.Discipline{}, *disciplineIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a project and everything that hangs off it
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Collaboration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_required_skills WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_required_disciplines WHERE project_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List retrieves projects with filtering and pagination
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{})

	if filter.State != nil {
		query = query.Where("projects.state = ?", *filter.State)
	}
	if filter.CreatorID != nil {
		query = query.Where("projects.creator_id = ?", *filter.CreatorID)
	}
	if filter.DisciplineID != nil {
		disciplineSubQuery := r.db.Table("project_required_disciplines").
			Select("1").
			Where("project_required_disciplines.project_id = projects.id").
			Where("project_required_disciplines.discipline_id = ?", *filter.DisciplineID)
		query = query.Where("EXISTS (?)", disciplineSubQuery)
	}
	if filter.CollaboratorID != nil {
		collaborationSubQuery := r.db.Model(&models.Collaboration{}).
			Select("1").
			Where("collaborations.project_id = projects.id").
			Where("collaborations.user_id = ?", *filter.CollaboratorID).
			Where("collaborations.state = ?", models.CollaborationAccepted)
		query = query.Where("EXISTS (?)", collaborationSubQuery)
	}
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where(
			"LOWER(projects.title) LIKE ? OR LOWER(projects.description) LIKE ? OR LOWER(projects.objective) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderBy(filter.Ordering, projectOrdering, "projects.created_at DESC"))
	listQuery = paginate(listQuery, filter.Pagination)

	if err := listQuery.
		Preload("Creator").
		Preload("RequiredSkills").
		Preload("RequiredDisciplines").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

type projectCount struct {
	ProjectID uint64
	Count     int64
}

// CountAccepted returns the number of accepted collaborations per project
func (r *GormProjectRepository) CountAccepted(projectIDs []uint64) (map[uint64]int64, error) {
	return r.countPerProject(
		r.db.Model(&models.Collaboration{}).Where("state = ?", models.CollaborationAccepted),
		projectIDs,
	)
}

// CountComments returns the number of comments per project
func (r *GormProjectRepository) CountComments(projectIDs []uint64) (map[uint64]int64, error) {
	return r.countPerProject(r.db.Model(&models.Comment{}), projectIDs)
}

// CountByCreator returns how many projects a user created and how many are active
func (r *GormProjectRepository) CountByCreator(userID uint64) (total, active int64, err error) {
	if err = r.db.Model(&models.Project{}).Where("creator_id = ?", userID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.Model(&models.Project{}).
		Where("creator_id = ? AND state = ?", userID, models.ProjectStateActive).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *GormProjectRepository) countPerProject(query *gorm.DB, projectIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	var rows []projectCount
	if err := query.
		Select("project_id, COUNT(*) AS count").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ProjectID] = row.Count
	}
	return counts, nil
}
