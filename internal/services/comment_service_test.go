package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommentServiceTestSuite struct {
	serviceSuite
}

func (s *CommentServiceTestSuite) TestCreateAssignsAuthor() {
	owner := s.createUser("owner@example.com")
	author := s.createUser("author@example.com")
	project := s.createProject(owner.ID, 1)

	comment, err := s.comments.CreateComment(CreateCommentInput{ActorID: author.ID, ProjectID: project.ID, Content: " Nice idea "})
	s.Require().NoError(err)
	s.Equal(author.ID, comment.UserID)
	s.Equal("Nice idea", comment.Content)
	s.Equal(author.Email, comment.User.Email)
}

func (s *CommentServiceTestSuite) TestCreateValidation() {
	author := s.createUser("author@example.com")
	project := s.createProject(author.ID, 1)

	_, err := s.comments.CreateComment(CreateCommentInput{ActorID: author.ID, ProjectID: project.ID, Content: "   "})
	s.requireValidation(err, "content", ErrContentRequired)

	_, err = s.comments.CreateComment(CreateCommentInput{ActorID: author.ID, ProjectID: 999, Content: "hi"})
	s.requireValidation(err, "project_id", ErrUnknownProject)
	s.False(IsNotFound(err))
}

func (s *CommentServiceTestSuite) TestUpdateAuthorOnly() {
	owner := s.createUser("owner@example.com")
	author := s.createUser("author@example.com")
	project := s.createProject(owner.ID, 1)
	comment, err := s.comments.CreateComment(CreateCommentInput{ActorID: author.ID, ProjectID: project.ID, Content: "original"})
	s.Require().NoError(err)

	// the project creator may delete but not edit
	_, err = s.comments.UpdateComment(comment.ID, owner.ID, "edited by owner")
	s.ErrorIs(err, ErrNotCommentAuthor)

	stored, err := s.comments.GetComment(comment.ID)
	s.Require().NoError(err)
	s.Equal("original", stored.Content)

	updated, err := s.comments.UpdateComment(comment.ID, author.ID, "edited")
	s.Require().NoError(err)
	s.Equal("edited", updated.Content)

	_, err = s.comments.UpdateComment(comment.ID, author.ID, "")
	s.requireValidation(err, "content", ErrContentRequired)
}

func (s *CommentServiceTestSuite) TestDeleteByAuthorOrProjectCreator() {
	owner := s.createUser("owner@example.com")
	author := s.createUser("author@example.com")
	outsider := s.createUser("outsider@example.com")
	project := s.createProject(owner.ID, 1)

	first, err := s.comments.CreateComment(CreateCommentInput{ActorID: author.ID, ProjectID: project.ID, Content: "one"})
	s.Require().NoError(err)
	second, err := s.comments.CreateComment(CreateCommentInput{ActorID: author.ID, ProjectID: project.ID, Content: "two"})
	s.Require().NoError(err)

	err = s.comments.DeleteComment(first.ID, outsider.ID)
	s.ErrorIs(err, ErrCommentDeleteDenied)
	s.True(IsForbidden(err))

	s.Require().NoError(s.comments.DeleteComment(first.ID, owner.ID))
	s.Require().NoError(s.comments.DeleteComment(second.ID, author.ID))

	_, err = s.comments.GetComment(first.ID)
	s.ErrorIs(err, ErrCommentNotFound)

	_, total, err := s.comments.ListComments(ListCommentsInput{ProjectID: &project.ID})
	s.Require().NoError(err)
	s.Zero(total)
}

func TestCommentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceTestSuite))
}
