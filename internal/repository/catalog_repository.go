package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

var catalogOrdering = map[string]string{
	"name": "name",
	"id":   "id",
}

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

// CreateSkill creates a new skill
func (r *GormCatalogRepository) CreateSkill(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

// FindSkillByID finds a skill by ID
func (r *GormCatalogRepository) FindSkillByID(id uint64) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.First(&skill, id).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// FindSkillByName finds a skill by name, ignoring case
func (r *GormCatalogRepository) FindSkillByName(name string) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// UpdateSkill updates a skill
func (r *GormCatalogRepository) UpdateSkill(skill *models.Skill) error {
	return r.db.Save(skill).Error
}

// DeleteSkill removes a skill and its user and project links
func (r *GormCatalogRepository) DeleteSkill(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_skills WHERE skill_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_required_skills WHERE skill_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Skill{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListSkills retrieves skills ordered by name
func (r *GormCatalogRepository) ListSkills(filter CatalogFilter) ([]models.Skill, int64, error) {
	var skills []models.Skill
	total, err := r.listCatalog(&models.Skill{}, filter, &skills)
	if err != nil {
		return nil, 0, err
	}
	return skills, total, nil
}

// CountSkills counts how many of the given skill IDs exist
func (r *GormCatalogRepository) CountSkills(ids []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Skill{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// CreateDiscipline creates a new discipline
func (r *GormCatalogRepository) CreateDiscipline(discipline *models.Discipline) error {
	return r.db.Create(discipline).Error
}

// FindDisciplineByID finds a discipline by ID
func (r *GormCatalogRepository) FindDisciplineByID(id uint64) (*models.Discipline, error) {
	var discipline models.Discipline
	if err := r.db.First(&discipline, id).Error; err != nil {
		return nil, err
	}
	return &discipline, nil
}

// FindDisciplineByName finds a discipline by name, ignoring case
func (r *GormCatalogRepository) FindDisciplineByName(name string) (*models.Discipline, error) {
	var discipline models.Discipline
	if err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&discipline).Error; err != nil {
		return nil, err
	}
	return &discipline, nil
}

// UpdateDiscipline updates a discipline
func (r *GormCatalogRepository) UpdateDiscipline(discipline *models.Discipline) error {
	return r.db.Save(discipline).Error
}

// DeleteDiscipline removes a discipline, clears it on users and drops project links
func (r *GormCatalogRepository) DeleteDiscipline(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Model(&models.User{}).
			Where("discipline_id = ?", id).
			Update("discipline_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_required_disciplines WHERE discipline_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Discipline{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListDisciplines retrieves disciplines ordered by name
func (r *GormCatalogRepository) ListDisciplines(filter CatalogFilter) ([]models.Discipline, int64, error) {
	var disciplines []models.Discipline
	total, err := r.listCatalog(&models.Discipline{}, filter, &disciplines)
	if err != nil {
		return nil, 0, err
	}
	return disciplines, total, nil
}

// CountDisciplines counts how many of the given discipline IDs exist
func (r *GormCatalogRepository) CountDisciplines(ids []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Discipline{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *GormCatalogRepository) listCatalog(model any, filter CatalogFilter, dest any) (int64, error) {
	query := r.db.Model(model)
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}

	listQuery := query.Order(orderBy(filter.Ordering, catalogOrdering, "name ASC"))
	if err := paginate(listQuery, filter.Pagination).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
