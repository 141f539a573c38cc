package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/collab-projects-api/internal/utils"
)

type AuthServiceTestSuite struct {
	serviceSuite
}

func (s *AuthServiceTestSuite) registerInput(email string) RegisterInput {
	return RegisterInput{
		Email:           email,
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
		FirstName:       "Ana",
		LastName:        "Rojas",
		Program:         "Computer Science",
	}
}

func (s *AuthServiceTestSuite) TestRegisterNormalizesEmail() {
	user, err := s.auth.Register(s.registerInput("  Ana@Example.COM "))
	s.Require().NoError(err)
	s.Equal("ana@example.com", user.Email)
	s.Equal(uint(1), user.Semester)
	s.True(user.IsActive)
	s.NotEqual("supersecret", user.PasswordHash)

	_, err = s.auth.Register(s.registerInput("ANA@example.com"))
	s.requireValidation(err, "email", ErrEmailTaken)
}

func (s *AuthServiceTestSuite) TestRegisterValidation() {
	input := s.registerInput("a@example.com")
	input.Password = "short"
	input.PasswordConfirm = "short"
	_, err := s.auth.Register(input)
	s.requireValidation(err, "password", ErrPasswordTooShort)

	input = s.registerInput("a@example.com")
	input.PasswordConfirm = "different1"
	_, err = s.auth.Register(input)
	s.requireValidation(err, "password", ErrPasswordMismatch)

	input = s.registerInput("a@example.com")
	input.Program = ""
	_, err = s.auth.Register(input)
	s.requireValidation(err, "program", ErrFieldRequired)

	missing := uint64(77)
	input = s.registerInput("a@example.com")
	input.DisciplineID = &missing
	_, err = s.auth.Register(input)
	s.requireValidation(err, "discipline_id", ErrUnknownDiscipline)
}

func (s *AuthServiceTestSuite) TestLogin() {
	registered, err := s.auth.Register(s.registerInput("ana@example.com"))
	s.Require().NoError(err)

	user, err := s.auth.Login(LoginInput{Email: "ANA@example.com", Password: "supersecret"})
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)

	_, err = s.auth.Login(LoginInput{Email: "ana@example.com", Password: "wrong-password"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.auth.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	s.ErrorIs(err, ErrInvalidCredentials)

	s.db.Model(registered).Update("is_active", false)
	_, err = s.auth.Login(LoginInput{Email: "ana@example.com", Password: "supersecret"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestTokens() {
	user, err := s.auth.Register(s.registerInput("ana@example.com"))
	s.Require().NoError(err)

	pair, err := s.auth.IssueTokens(user)
	s.Require().NoError(err)

	claims, err := utils.ParseToken(pair.Access, utils.TokenTypeAccess)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)

	refreshed, err := s.auth.RefreshTokens(pair.Refresh)
	s.Require().NoError(err)
	s.NotEmpty(refreshed.Access)

	_, err = s.auth.RefreshTokens(pair.Access)
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestChangePassword() {
	user, err := s.auth.Register(s.registerInput("ana@example.com"))
	s.Require().NoError(err)

	err = s.auth.ChangePassword(user.ID, ChangePasswordInput{OldPassword: "nope-nope", NewPassword: "newpassword", NewPasswordConfirm: "newpassword"})
	s.requireValidation(err, "old_password", ErrWrongPassword)

	err = s.auth.ChangePassword(user.ID, ChangePasswordInput{OldPassword: "supersecret", NewPassword: "newpassword", NewPasswordConfirm: "otherpassword"})
	s.requireValidation(err, "new_password", ErrPasswordMismatch)

	s.Require().NoError(s.auth.ChangePassword(user.ID, ChangePasswordInput{OldPassword: "supersecret", NewPassword: "newpassword", NewPasswordConfirm: "newpassword"}))

	_, err = s.auth.Login(LoginInput{Email: "ana@example.com", Password: "newpassword"})
	s.NoError(err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
