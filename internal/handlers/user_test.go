package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/collab-projects-api/internal/dto"
	apierrors "github.com/yukikurage/collab-projects-api/internal/errors"
	"github.com/yukikurage/collab-projects-api/internal/services"
)

type UserHandlerTestSuite struct {
	handlerSuite
}

func (s *UserHandlerTestSuite) TestProfile() {
	user := s.createUser("ana@example.com")
	s.createProject(user, 1)
	token := s.tokenFor(user)

	w := s.do(http.MethodGet, "/api/users/profile", nil, token)
	s.Require().Equal(http.StatusOK, w.Code)

	var profile dto.ProfileDTO
	s.decode(w, &profile)
	s.Equal(int64(1), profile.TotalProjects)
	s.Equal(int64(1), profile.ActiveProjects)
	s.NotNil(profile.Skills)
}

func (s *UserHandlerTestSuite) TestUpdateProfile() {
	user := s.createUser("ana@example.com")
	token := s.tokenFor(user)
	discipline, err := s.svc.Catalog.CreateDiscipline(services.CatalogInput{Name: "Design"})
	s.Require().NoError(err)

	w := s.do(http.MethodPatch, "/api/users/profile", map[string]any{"bio": "hello", "discipline_id": discipline.ID}, token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var profile dto.ProfileDTO
	s.decode(w, &profile)
	s.Equal("hello", profile.Bio)
	s.Require().NotNil(profile.Discipline)
	s.Equal("Design", profile.Discipline.Name)

	w = s.do(http.MethodPatch, "/api/users/profile", map[string]any{"discipline_id": nil}, token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	profile = dto.ProfileDTO{}
	s.decode(w, &profile)
	s.Nil(profile.DisciplineID)
	s.Equal("hello", profile.Bio)

	s.requireFieldError(s.do(http.MethodPatch, "/api/users/profile", map[string]any{"semester": 0}, token), "semester")
}

func (s *UserHandlerTestSuite) TestGetUserAndProjects() {
	owner := s.createUser("owner@example.com")
	viewer := s.createUser("viewer@example.com")
	s.createProject(owner, 1)
	token := s.tokenFor(viewer)

	w := s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", owner.ID), nil, token)
	s.Require().Equal(http.StatusOK, w.Code)

	var list dto.ProjectListResponse
	s.decode(s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/projects", owner.ID), nil, token), &list)
	s.Len(list.Projects, 1)

	s.requireCode(s.do(http.MethodGet, "/api/users/999", nil, token), http.StatusNotFound, apierrors.ErrCodeNotFound)
	s.requireCode(s.do(http.MethodGet, "/api/users", nil, ""), http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
