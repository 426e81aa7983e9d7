package services

import (
	"context"

	"github.com/yukikurage/project-dashboard-api/internal/constants"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

func (suite *ServiceTestSuite) register(username string) *models.User {
	user, err := suite.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
		Password: "secret123",
	})
	suite.Require().NoError(err)
	return user
}

func (suite *ServiceTestSuite) TestRegister() {
	user := suite.register("alice")
	suite.True(user.IsActive)
	suite.NotEqual("secret123", user.PasswordHash)

	_, err := suite.auth.Register(context.Background(), RegisterInput{Username: "alice", Email: "other@example.com", Password: "secret123"})
	suite.ErrorIs(err, ErrUsernameTaken)

	_, err = suite.auth.Register(context.Background(), RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "secret123"})
	suite.ErrorIs(err, ErrEmailTaken)

	_, err = suite.auth.Register(context.Background(), RegisterInput{Username: "al", Email: "bad", Password: "123"})
	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Len(verr.Fields, 3)
}

func (suite *ServiceTestSuite) TestLoginAndAuthenticate() {
	user := suite.register("alice")
	ctx := context.Background()

	_, err := suite.auth.Login(ctx, "alice", "wrong-password")
	suite.ErrorIs(err, ErrInvalidCredentials)
	_, err = suite.auth.Login(ctx, "nobody", "secret123")
	suite.ErrorIs(err, ErrInvalidCredentials)

	result, err := suite.auth.Login(ctx, "alice", "secret123")
	suite.Require().NoError(err)
	suite.Equal(constants.TokenType, result.TokenType)
	suite.NotEmpty(result.AccessToken)

	resolved, err := suite.auth.Authenticate(ctx, result.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(user.ID, resolved.ID)

	_, err = suite.auth.Authenticate(ctx, "not-a-token")
	suite.ErrorIs(err, ErrInvalidToken)
}

func (suite *ServiceTestSuite) TestInactiveUser() {
	suite.register("alice")
	ctx := context.Background()

	result, err := suite.auth.Login(ctx, "alice", "secret123")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Model(&models.User{}).Where("username = ?", "alice").Update("is_active", false).Error)

	_, err = suite.auth.Authenticate(ctx, result.AccessToken)
	suite.ErrorIs(err, ErrInactiveUser)
	_, err = suite.auth.Login(ctx, "alice", "secret123")
	suite.ErrorIs(err, ErrInactiveUser)
}

func (suite *ServiceTestSuite) TestUpdateMe() {
	user := suite.register("alice")
	ctx := context.Background()

	updated, err := suite.users.UpdateMe(ctx, user, UpdateUserInput{FullName: ptr("Alice Liddell")})
	suite.Require().NoError(err)
	suite.Equal("Alice Liddell", updated.FullName)
	suite.Equal("alice@example.com", updated.Email)

	_, err = suite.users.UpdateMe(ctx, user, UpdateUserInput{Password: ptr("123")})
	var verr *ValidationError
	suite.ErrorAs(err, &verr)

	_, err = suite.users.UpdateMe(ctx, user, UpdateUserInput{Password: ptr("new-secret")})
	suite.Require().NoError(err)
	_, err = suite.auth.Login(ctx, "alice", "new-secret")
	suite.NoError(err)

	users, err := suite.users.ListUsers(ctx, 0, 10)
	suite.Require().NoError(err)
	suite.Len(users, 1)

	_, err = suite.users.GetUser(ctx, 999)
	suite.ErrorIs(err, ErrUserNotFound)
}
