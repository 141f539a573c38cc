package services

import (
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// serviceSuite wires every service against a fresh in-memory database
type serviceSuite struct {
	suite.Suite
	db *gorm.DB
	// dsn defaults to a private in-memory database
	dsn string

	userRepo    repository.UserRepository
	catalogRepo repository.CatalogRepository
	projectRepo repository.ProjectRepository
	collabRepo  repository.CollaborationRepository
	commentRepo repository.CommentRepository

	auth           *AuthService
	users          *UserService
	catalog        *CatalogService
	projects       *ProjectService
	collaborations *CollaborationService
	comments       *CommentService
}

func (s *serviceSuite) SetupTest() {
	dsn := s.dsn
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)

	if dsn == ":memory:" {
		sqlDB, err := db.DB()
		s.Require().NoError(err)
		sqlDB.SetMaxOpenConns(1)
	}

	s.Require().NoError(db.AutoMigrate(models.All()...))
	s.db = db

	s.userRepo = repository.NewUserRepository(db)
	s.catalogRepo = repository.NewCatalogRepository(db)
	s.projectRepo = repository.NewProjectRepository(db)
	s.collabRepo = repository.NewCollaborationRepository(db)
	s.commentRepo = repository.NewCommentRepository(db)

	s.auth = NewAuthService(s.userRepo, s.catalogRepo, TokenConfig{AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour})
	s.users = NewUserService(s.userRepo, s.projectRepo, s.catalogRepo)
	s.catalog = NewCatalogService(s.catalogRepo)
	s.projects = NewProjectService(s.projectRepo, s.catalogRepo, nil)
	s.collaborations = NewCollaborationService(s.collabRepo, s.projectRepo)
	s.comments = NewCommentService(s.commentRepo, s.projectRepo)
}

func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *serviceSuite) createUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		FirstName:    "Test",
		LastName:     "User",
		Program:      "Engineering",
	}
	s.Require().NoError(s.userRepo.Create(user))
	return user
}

func (s *serviceSuite) createProject(creatorID uint64, target uint) *models.Project {
	created, err := s.projects.CreateProject(CreateProjectInput{
		ActorID:             creatorID,
		Title:               "Solar Car",
		Description:         "Build a small solar car",
		Objective:           "Win the regional fair",
		State:               models.ProjectStateActive,
		TargetCollaborators: target,
	})
	s.Require().NoError(err)
	return &created.Project
}

func (s *serviceSuite) request(projectID, userID uint64) (*models.Collaboration, error) {
	return s.collaborations.RequestCollaboration(RequestCollaborationInput{
		ProjectID: projectID,
		ActorID:   userID,
		Message:   "I would like to help",
	})
}

func (s *serviceSuite) countAccepted(projectID uint64) int64 {
	var count int64
	s.Require().NoError(s.db.Model(&models.Collaboration{}).
		Where("project_id = ? AND state = ?", projectID, models.CollaborationAccepted).
		Count(&count).Error)
	return count
}

func (s *serviceSuite) requireValidation(err error, field string, target error) {
	s.Require().Error(err)
	var vErr *ValidationError
	s.Require().ErrorAs(err, &vErr)
	s.Equal(field, vErr.Field)
	s.ErrorIs(err, target)
	s.False(IsForbidden(err))
}

func paginationAll() utils.PaginationParams {
	return utils.NewPaginationParams(1, 100)
}
