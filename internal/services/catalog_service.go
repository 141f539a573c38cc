package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

const maxCatalogNameLength = 100

var (
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = fmt.Errorf("name must be at most %d characters", maxCatalogNameLength)
	ErrSkillExists      = errors.New("a skill with this name already exists")
	ErrDisciplineExists = errors.New("a discipline with this name already exists")
)

// CatalogService manages the skill and discipline reference lists
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// CatalogInput carries the editable fields of a skill or discipline
type CatalogInput struct {
	Name        string
	Description string
}

// ListCatalogInput represents filters for listing skills or disciplines
type ListCatalogInput struct {
	Search     string
	Ordering   string
	Pagination utils.PaginationParams
}

func (in ListCatalogInput) filter() repository.CatalogFilter {
	return repository.CatalogFilter{
		Search:     in.Search,
		Ordering:   in.Ordering,
		Pagination: in.Pagination,
	}
}

func normalizeCatalogInput(input CatalogInput) (CatalogInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		return input, invalid("name", ErrNameRequired)
	}
	if utf8.RuneCountInString(input.Name) > maxCatalogNameLength {
		return input, invalid("name", ErrNameTooLong)
	}
	return input, nil
}

// ListSkills returns skills ordered by name
func (s *CatalogService) ListSkills(input ListCatalogInput) ([]models.Skill, int64, error) {
	skills, total, err := s.catalogRepo.ListSkills(input.filter())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, total, nil
}

// GetSkill returns a skill by ID
func (s *CatalogService) GetSkill(id uint64) (*models.Skill, error) {
	skill, err := s.catalogRepo.FindSkillByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to find skill: %w", err)
	}
	return skill, nil
}

// CreateSkill creates a skill with a unique name
func (s *CatalogService) CreateSkill(input CatalogInput) (*models.Skill, error) {
	input, err := normalizeCatalogInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSkillNameFree(input.Name, 0); err != nil {
		return nil, err
	}

	skill := &models.Skill{Name: input.Name, Description: input.Description}
	if err := s.catalogRepo.CreateSkill(skill); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("name", ErrSkillExists)
		}
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return skill, nil
}

// UpdateSkill replaces a skill's name and description
func (s *CatalogService) UpdateSkill(id uint64, input CatalogInput) (*models.Skill, error) {
	skill, err := s.GetSkill(id)
	if err != nil {
		return nil, err
	}
	input, err = normalizeCatalogInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSkillNameFree(input.Name, id); err != nil {
		return nil, err
	}

	skill.Name = input.Name
	skill.Description = input.Description
	if err := s.catalogRepo.UpdateSkill(skill); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("name", ErrSkillExists)
		}
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}
	return skill, nil
}

// DeleteSkill removes a skill
func (s *CatalogService) DeleteSkill(id uint64) error {
	if err := s.catalogRepo.DeleteSkill(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		return fmt.Errorf("failed to delete skill: %w", err)
	}
	return nil
}

// ListDisciplines returns disciplines ordered by name
func (s *CatalogService) ListDisciplines(input ListCatalogInput) ([]models.Discipline, int64, error) {
	disciplines, total, err := s.catalogRepo.ListDisciplines(input.filter())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list disciplines: %w", err)
	}
	return disciplines, total, nil
}

// GetDiscipline returns a discipline by ID
func (s *CatalogService) GetDiscipline(id uint64) (*models.Discipline, error) {
	discipline, err := s.catalogRepo.FindDisciplineByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDisciplineNotFound
		}
		return nil, fmt.Errorf("failed to find discipline: %w", err)
	}
	return discipline, nil
}

// CreateDiscipline creates a discipline with a unique name
func (s *CatalogService) CreateDiscipline(input CatalogInput) (*models.Discipline, error) {
	input, err := normalizeCatalogInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDisciplineNameFree(input.Name, 0); err != nil {
		return nil, err
	}

	discipline := &models.Discipline{Name: input.Name, Description: input.Description}
	if err := s.catalogRepo.CreateDiscipline(discipline); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("name", ErrDisciplineExists)
		}
		return nil, fmt.Errorf("failed to create discipline: %w", err)
	}
	return discipline, nil
}

// UpdateDiscipline replaces a discipline's name and description
func (s *CatalogService) UpdateDiscipline(id uint64, input CatalogInput) (*models.Discipline, error) {
	discipline, err := s.GetDiscipline(id)
	if err != nil {
		return nil, err
	}
	input, err = normalizeCatalogInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDisciplineNameFree(input.Name, id); err != nil {
		return nil, err
	}

	discipline.Name = input.Name
	discipline.Description = input.Description
	if err := s.catalogRepo.UpdateDiscipline(discipline); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("name", ErrDisciplineExists)
		}
		return nil, fmt.Errorf("failed to update discipline: %w", err)
	}
	return discipline, nil
}

// DeleteDiscipline removes a discipline
func (s *CatalogService) DeleteDiscipline(id uint64) error {
	if err := s.catalogRepo.DeleteDiscipline(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDisciplineNotFound
		}
		return fmt.Errorf("failed to delete discipline: %w", err)
	}
	return nil
}

func (s *CatalogService) ensureSkillNameFree(name string, selfID uint64) error {
	existing, err := s.catalogRepo.FindSkillByName(name)
	if err == nil && existing.ID != selfID {
		return invalid("name", ErrSkillExists)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check skill name: %w", err)
	}
	return nil
}

func (s *CatalogService) ensureDisciplineNameFree(name string, selfID uint64) error {
	existing, err := s.catalogRepo.FindDisciplineByName(name)
	if err == nil && existing.ID != selfID {
		return invalid("name", ErrDisciplineExists)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check discipline name: %w", err)
	}
	return nil
}
