package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
)

func (suite *HandlerTestSuite) TestCreateComment_OnTaskAndProject() {
	alice, token := suite.signUp("alice")
	project := suite.createProject(token, "Website")
	task := suite.createTask(token, project.ID, nil)

	w := suite.request(http.MethodPost, "/comments", token, gin.H{"content": "Looks good", "task_id": task.ID})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var comment dto.CommentDTO
	suite.decode(w, &comment)
	suite.Equal("Looks good", comment.Content)
	suite.Equal(alice.ID, comment.AuthorID)
	suite.Require().NotNil(comment.TaskID)
	suite.Nil(comment.ProjectID)

	w = suite.request(http.MethodPost, "/comments", token, gin.H{"content": "Kickoff notes", "project_id": project.ID})
	suite.Equal(http.StatusCreated, w.Code)

	var comments []dto.CommentDTO
	w = suite.request(http.MethodGet, path("/comments/task/%d", task.ID), token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &comments)
	suite.Len(comments, 1)

	w = suite.request(http.MethodGet, path("/comments/project/%d", project.ID), token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &comments)
	suite.Len(comments, 1)
	suite.Equal("Kickoff notes", comments[0].Content)
}

func (suite *HandlerTestSuite) TestCreateComment_NeedsExactlyOneTarget() {
	_, token := suite.signUp("alice")
	project := suite.createProject(token, "Website")
	task := suite.createTask(token, project.ID, nil)

	w := suite.request(http.MethodPost, "/comments", token, gin.H{"content": "Orphan"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.request(http.MethodPost, "/comments", token, gin.H{"content": "Both", "task_id": task.ID, "project_id": project.ID})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.request(http.MethodPost, "/comments", token, gin.H{"content": "Missing", "task_id": 404})
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPost, "/comments", token, gin.H{"task_id": task.ID})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateAndDeleteComment_AuthorOnly() {
	_, aliceToken := suite.signUp("alice")
	_, bobToken := suite.signUp("bob")
	project := suite.createProject(aliceToken, "Website")

	w := suite.request(http.MethodPost, "/comments", aliceToken, gin.H{"content": "Draft", "project_id": project.ID})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var comment dto.CommentDTO
	suite.decode(w, &comment)

	w = suite.request(http.MethodPut, path("/comments/%d", comment.ID), bobToken, gin.H{"content": "Edited by bob"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPut, path("/comments/%d", comment.ID), aliceToken, gin.H{"content": "Final"})
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &comment)
	suite.Equal("Final", comment.Content)

	w = suite.request(http.MethodDelete, path("/comments/%d", comment.ID), bobToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodDelete, path("/comments/%d", comment.ID), aliceToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodDelete, path("/comments/%d", comment.ID), aliceToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
