package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/constants"
	apierrors "github.com/yukikurage/collab-projects-api/internal/errors"
	"github.com/yukikurage/collab-projects-api/internal/models"
	"github.com/yukikurage/collab-projects-api/internal/repository"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// handlerSuite serves the full route table against a fresh in-memory database
type handlerSuite struct {
	suite.Suite
	db     *gorm.DB
	svc    Services
	router *gin.Engine
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("handler-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(models.All()...))
	s.db = db

	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	collabRepo := repository.NewCollaborationRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s.svc = Services{
		Auth:           services.NewAuthService(userRepo, catalogRepo, services.TokenConfig{AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour}),
		Users:          services.NewUserService(userRepo, projectRepo, catalogRepo),
		Catalog:        services.NewCatalogService(catalogRepo),
		Projects:       services.NewProjectService(projectRepo, catalogRepo, nil),
		Collaborations: services.NewCollaborationService(collabRepo, projectRepo),
		Comments:       services.NewCommentService(commentRepo, projectRepo),
	}

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r, s.svc)
	s.router = r
}

func (s *handlerSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *handlerSuite) createUser(email string) *models.User {
	user, err := s.svc.Auth.Register(services.RegisterInput{
		Email:           email,
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
		FirstName:       "Test",
		LastName:        "User",
		Program:         "Engineering",
	})
	s.Require().NoError(err)
	return user
}

func (s *handlerSuite) tokenFor(user *models.User) string {
	pair, err := s.svc.Auth.IssueTokens(user)
	s.Require().NoError(err)
	return pair.Access
}

func (s *handlerSuite) createProject(creator *models.User, target uint) uint64 {
	project, err := s.svc.Projects.CreateProject(services.CreateProjectInput{
		ActorID:             creator.ID,
		Title:               "Solar Car",
		Description:         "Build a small solar car",
		Objective:           "Win the regional fair",
		State:               models.ProjectStateActive,
		TargetCollaborators: target,
	})
	s.Require().NoError(err)
	return project.Project.ID
}

// do sends a JSON request through the router, authenticated when token is set
func (s *handlerSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

// requireFieldError asserts a 400 validation response naming field
func (s *handlerSuite) requireFieldError(w *httptest.ResponseRecorder, field string) {
	s.Require().Equal(http.StatusBadRequest, w.Code, w.Body.String())

	var body struct {
		Code    string              `json:"code"`
		Details map[string][]string `json:"details"`
	}
	s.decode(w, &body)
	s.Equal(apierrors.ErrCodeValidationFailed, body.Code)
	s.NotEmpty(body.Details[field], "expected an error for %q in %s", field, w.Body.String())
}

func (s *handlerSuite) requireCode(w *httptest.ResponseRecorder, status int, code string) {
	s.Require().Equal(status, w.Code, w.Body.String())

	var body apierrors.APIError
	s.decode(w, &body)
	s.Equal(code, body.Code)
}
