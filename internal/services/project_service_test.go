package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

type ProjectServiceTestSuite struct {
	serviceSuite
}

func (s *ProjectServiceTestSuite) TestCreateAssignsActorAndDefaults() {
	creator := s.createUser("creator@example.com")

	created, err := s.projects.CreateProject(CreateProjectInput{
		ActorID:     creator.ID,
		Title:       "  Robotics  ",
		Description: "Line follower",
		Objective:   "Learn control",
	})
	s.Require().NoError(err)

	s.Equal(creator.ID, created.Project.CreatorID)
	s.Equal(creator.Email, created.Project.Creator.Email)
	s.Equal("Robotics", created.Project.Title)
	s.Equal(models.ProjectStateDraft, created.Project.State)
	s.Equal(uint(1), created.Project.TargetCollaborators)
	s.Zero(created.CurrentCollaborators)
	s.True(created.HasVacancy())
}

func (s *ProjectServiceTestSuite) TestCreateValidation() {
	creator := s.createUser("creator@example.com")
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	base := CreateProjectInput{ActorID: creator.ID, Title: "T", Description: "D", Objective: "O"}

	missingTitle := base
	missingTitle.Title = "   "
	_, err := s.projects.CreateProject(missingTitle)
	s.requireValidation(err, "title", ErrTitleRequired)

	badState := base
	badState.State = "ARCHIVED"
	_, err = s.projects.CreateProject(badState)
	s.requireValidation(err, "state", ErrInvalidProjectState)

	badDates := base
	badDates.StartDate = &start
	badDates.EndDate = &end
	_, err = s.projects.CreateProject(badDates)
	s.requireValidation(err, "end_date", ErrEndBeforeStart)

	unknownSkill := base
	unknownSkill.SkillIDs = []uint64{42}
	_, err = s.projects.CreateProject(unknownSkill)
	s.requireValidation(err, "skill_ids", ErrUnknownSkill)

	var count int64
	s.db.Model(&models.Project{}).Count(&count)
	s.Zero(count)
}

func (s *ProjectServiceTestSuite) TestTitleLengthCountsCharacters() {
	creator := s.createUser("creator@example.com")

	accented := strings.Repeat("á", 150)
	created, err := s.projects.CreateProject(CreateProjectInput{
		ActorID:     creator.ID,
		Title:       accented,
		Description: "D",
		Objective:   "O",
	})
	s.Require().NoError(err)
	s.Equal(accented, created.Project.Title)

	_, err = s.projects.CreateProject(CreateProjectInput{
		ActorID:     creator.ID,
		Title:       strings.Repeat("ñ", maxProjectTitleLength+1),
		Description: "D",
		Objective:   "O",
	})
	s.requireValidation(err, "title", ErrTitleTooLong)
}

func (s *ProjectServiceTestSuite) TestUnauthorizedUpdateLeavesProjectUnchanged() {
	owner := s.createUser("owner@example.com")
	intruder := s.createUser("intruder@example.com")
	project := s.createProject(owner.ID, 2)

	before, err := s.projectRepo.FindByID(project.ID)
	s.Require().NoError(err)

	title := "Hijacked"
	state := models.ProjectStateCancelled
	target := uint(50)
	_, err = s.projects.UpdateProject(project.ID, intruder.ID, UpdateProjectInput{
		Title:               &title,
		State:               &state,
		TargetCollaborators: &target,
	})
	s.ErrorIs(err, ErrNotProjectCreator)
	s.True(IsForbidden(err))
	s.False(IsValidation(err))

	after, err := s.projectRepo.FindByID(project.ID)
	s.Require().NoError(err)
	s.Equal(before.Title, after.Title)
	s.Equal(before.State, after.State)
	s.Equal(before.TargetCollaborators, after.TargetCollaborators)
	s.Equal(before.CreatorID, after.CreatorID)
	s.True(before.UpdatedAt.Equal(after.UpdatedAt))
}

func (s *ProjectServiceTestSuite) TestUpdateByCreator() {
	owner := s.createUser("owner@example.com")
	project := s.createProject(owner.ID, 2)
	skill, err := s.catalog.CreateSkill(CatalogInput{Name: "Go"})
	s.Require().NoError(err)

	title := "Solar Car II"
	state := models.ProjectStateInProgress
	skillIDs := []uint64{skill.ID, skill.ID}
	updated, err := s.projects.UpdateProject(project.ID, owner.ID, UpdateProjectInput{
		Title:    &title,
		State:    &state,
		SkillIDs: &skillIDs,
	})
	s.Require().NoError(err)
	s.Equal("Solar Car II", updated.Project.Title)
	s.Equal(models.ProjectStateInProgress, updated.Project.State)
	s.Len(updated.Project.RequiredSkills, 1)

	// any state may follow any other
	draft := models.ProjectStateDraft
	updated, err = s.projects.UpdateProject(project.ID, owner.ID, UpdateProjectInput{State: &draft})
	s.Require().NoError(err)
	s.Equal(models.ProjectStateDraft, updated.Project.State)
}

func (s *ProjectServiceTestSuite) TestInvalidUpdateLeavesProjectUnchanged() {
	owner := s.createUser("owner@example.com")
	project := s.createProject(owner.ID, 2)

	zero := uint(0)
	title := "Renamed"
	_, err := s.projects.UpdateProject(project.ID, owner.ID, UpdateProjectInput{Title: &title, TargetCollaborators: &zero})
	s.requireValidation(err, "target_collaborators", ErrInvalidTarget)

	after, err := s.projectRepo.FindByID(project.ID)
	s.Require().NoError(err)
	s.Equal(project.Title, after.Title)
	s.Equal(uint(2), after.TargetCollaborators)
}

func (s *ProjectServiceTestSuite) TestDeleteCreatorOnly() {
	owner := s.createUser("owner@example.com")
	member := s.createUser("member@example.com")
	project := s.createProject(owner.ID, 2)
	_, err := s.request(project.ID, member.ID)
	s.Require().NoError(err)

	s.ErrorIs(s.projects.DeleteProject(project.ID, member.ID), ErrNotProjectCreator)
	s.Require().NoError(s.projects.DeleteProject(project.ID, owner.ID))

	_, err = s.projects.GetProject(project.ID)
	s.ErrorIs(err, ErrProjectNotFound)
	s.ErrorIs(s.projects.DeleteProject(project.ID, owner.ID), ErrProjectNotFound)
}

func (s *ProjectServiceTestSuite) TestListsAndCounters() {
	owner := s.createUser("owner@example.com")
	member := s.createUser("member@example.com")
	first := s.createProject(owner.ID, 1)
	s.createProject(owner.ID, 1)

	pending, err := s.request(first.ID, member.ID)
	s.Require().NoError(err)
	_, err = s.collaborations.AcceptCollaboration(pending.ID, owner.ID, "")
	s.Require().NoError(err)
	_, err = s.comments.CreateComment(CreateCommentInput{ActorID: member.ID, ProjectID: first.ID, Content: "hello"})
	s.Require().NoError(err)

	mine, total, err := s.projects.ListMine(owner.ID, paginationAll())
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(mine, 2)

	collaborating, total, err := s.projects.ListCollaborating(member.ID, paginationAll())
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(first.ID, collaborating[0].Project.ID)
	s.Equal(int64(1), collaborating[0].CurrentCollaborators)
	s.Equal(int64(1), collaborating[0].TotalComments)
	s.False(collaborating[0].HasVacancy())

	search, total, err := s.projects.ListProjects(ListProjectsInput{Search: "SOLAR", Pagination: paginationAll()})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(search, 2)
}

func (s *ProjectServiceTestSuite) TestDraftProjectRequiresAI() {
	_, err := s.projects.DraftProject(context.Background(), "an idea")
	s.ErrorIs(err, ErrAIServiceNotConfigured)
}

func (s *ProjectServiceTestSuite) TestDraftProjectMatchesCatalogSkills() {
	goSkill, err := s.catalog.CreateSkill(CatalogInput{Name: "Go"})
	s.Require().NoError(err)

	s.useDraftAnswer(map[string]any{
		"title":                "Campus Bike Sharing",
		"description":          "Track shared bikes on campus",
		"objective":            "Ship an MVP",
		"target_collaborators": 0,
		"suggested_skills":     []string{"go", "Unknown Skill"},
	})

	draft, err := s.projects.DraftProject(context.Background(), "bikes for students")
	s.Require().NoError(err)
	s.Equal("Campus Bike Sharing", draft.Title)
	s.Equal(uint(1), draft.TargetCollaborators)
	s.Equal([]uint64{goSkill.ID}, draft.SkillIDs)
}

func (s *ProjectServiceTestSuite) TestDraftProjectTruncatesTitleOnCharacters() {
	s.useDraftAnswer(map[string]any{
		"title":                strings.Repeat("é", maxProjectTitleLength+20),
		"description":          "Diseño de un huerto urbano",
		"objective":            "Prototipo",
		"target_collaborators": 3,
	})

	draft, err := s.projects.DraftProject(context.Background(), "huerto")
	s.Require().NoError(err)
	s.True(utf8.ValidString(draft.Title))
	s.Equal(maxProjectTitleLength, utf8.RuneCountInString(draft.Title))
}

// useDraftAnswer points the project service at a chat completion server
// that always answers with answer encoded as JSON
func (s *ProjectServiceTestSuite) useDraftAnswer(answer map[string]any) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/chat/completions", r.URL.Path)
		content, _ := json.Marshal(answer)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": string(content)},
			}},
		})
	}))
	s.T().Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	s.projects = NewProjectService(s.projectRepo, s.catalogRepo, NewAIServiceWithConfig(cfg))
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
