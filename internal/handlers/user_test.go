package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
)

func (suite *HandlerTestSuite) TestGetMe() {
	alice, token := suite.signUp("alice")

	w := suite.request(http.MethodGet, "/users/me", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var me dto.UserDTO
	suite.decode(w, &me)
	suite.Equal(alice.ID, me.ID)
	suite.Equal("alice", me.Username)
}

func (suite *HandlerTestSuite) TestUpdateMe() {
	_, token := suite.signUp("alice")

	w := suite.request(http.MethodPut, "/users/me", token, gin.H{"full_name": "Alice C.", "password": "newsecret"})
	suite.Equal(http.StatusOK, w.Code)
	var me dto.UserDTO
	suite.decode(w, &me)
	suite.Equal("Alice C.", me.FullName)

	w = suite.request(http.MethodPost, "/auth/login", "", gin.H{"username": "alice", "password": "secret123"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	w = suite.request(http.MethodPost, "/auth/login", "", gin.H{"username": "alice", "password": "newsecret"})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateMe_ShortPassword() {
	_, token := suite.signUp("alice")

	w := suite.request(http.MethodPut, "/users/me", token, gin.H{"password": "abc"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(suite.apiError(w)["details"], "password")
}

func (suite *HandlerTestSuite) TestListUsers() {
	_, token := suite.signUp("alice")
	suite.signUp("bob")

	w := suite.request(http.MethodGet, "/users", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var users []dto.UserDTO
	suite.decode(w, &users)
	suite.Len(users, 2)
}
