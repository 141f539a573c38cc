package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

var userOrdering = map[string]string{
	"created_at": "users.created_at",
	"first_name": "users.first_name",
	"last_name":  "users.last_name",
}

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Omit(clause.Associations).Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	if err := preloadAll(r.db, preload).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email, ignoring case
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user's own columns
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

// ReplaceSkills replaces the user's skill set
func (r *GormUserRepository) ReplaceSkills(user *models.User, skillIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return replaceAssociation(tx, user, "Skills", &[]models.Skill{}, skillIDs)
	})
}

// List retrieves users with filtering and pagination
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{})

	if filter.DisciplineID != nil {
		query = query.Where("users.discipline_id = ?", *filter.DisciplineID)
	}
	if filter.Semester != nil {
		query = query.Where("users.semester = ?", *filter.Semester)
	}
	if filter.IsActive != nil {
		query = query.Where("users.is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where(
			"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(users.program) LIKE ? OR LOWER(users.bio) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(orderBy(filter.Ordering, userOrdering, "users.created_at DESC"))
	listQuery = paginate(listQuery, filter.Pagination)

	if err := listQuery.Preload("Discipline").Preload("Skills").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// replaceAssociation loads the rows named by ids into dest and makes them the
// full content of owner's many2many association.
func replaceAssociation(tx *gorm.DB, owner any, name string, dest any, ids []uint64) error {
	association := tx.Model(owner).Association(name)
	if len(ids) == 0 {
		return association.Clear()
	}
	if err := tx.Where("id IN ?", ids).Find(dest).Error; err != nil {
		return err
	}
	return association.Replace(dest)
}
