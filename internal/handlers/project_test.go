package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

func (suite *HandlerTestSuite) TestCreateProject_DefaultsToActive() {
	owner, token := suite.signUp("alice")

	project := suite.createProject(token, "Website")

	suite.Equal("Website", project.Title)
	suite.Equal(models.ProjectStatusActive, project.Status)
	suite.Equal(owner.ID, project.OwnerID)
}

func (suite *HandlerTestSuite) TestCreateProject_MissingTitle() {
	_, token := suite.signUp("alice")

	w := suite.request(http.MethodPost, "/projects", token, gin.H{"description": "no title"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(suite.apiError(w)["details"], "title")
}

func (suite *HandlerTestSuite) TestCreateProject_InvalidStatus() {
	_, token := suite.signUp("alice")

	w := suite.request(http.MethodPost, "/projects", token, gin.H{"title": "Website", "status": "archived"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(suite.apiError(w)["details"], "status")
}

func (suite *HandlerTestSuite) TestListAndGetProjects() {
	_, aliceToken := suite.signUp("alice")
	_, bobToken := suite.signUp("bob")
	project := suite.createProject(aliceToken, "Website")
	suite.createProject(bobToken, "Mobile")

	w := suite.request(http.MethodGet, "/projects", bobToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	var projects []dto.ProjectDTO
	suite.decode(w, &projects)
	suite.Len(projects, 2)

	w = suite.request(http.MethodGet, path("/projects/%d", project.ID), bobToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	var got dto.ProjectDTO
	suite.decode(w, &got)
	suite.Equal("Website", got.Title)
	suite.Require().NotNil(got.Owner)
	suite.Equal("alice", got.Owner.Username)
}

func (suite *HandlerTestSuite) TestGetProject_NotFound() {
	_, token := suite.signUp("alice")

	w := suite.request(http.MethodGet, "/projects/404", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetProject_InvalidID() {
	_, token := suite.signUp("alice")

	w := suite.request(http.MethodGet, "/projects/abc", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateProject_Owner() {
	_, token := suite.signUp("alice")
	project := suite.createProject(token, "Website")

	w := suite.request(http.MethodPut, path("/projects/%d", project.ID), token, gin.H{"status": "on_hold"})

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ProjectDTO
	suite.decode(w, &got)
	suite.Equal(models.ProjectStatusOnHold, got.Status)
	suite.Equal("Website", got.Title)
	suite.Equal("Main site", got.Description)
}

func (suite *HandlerTestSuite) TestUpdateProject_NotOwner() {
	_, aliceToken := suite.signUp("alice")
	_, bobToken := suite.signUp("bob")
	project := suite.createProject(aliceToken, "Website")

	w := suite.request(http.MethodPut, path("/projects/%d", project.ID), bobToken, gin.H{"title": "Hijacked"})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateProject_NotFound() {
	_, token := suite.signUp("alice")

	w := suite.request(http.MethodPut, "/projects/404", token, gin.H{"title": "Anything"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateProject_NullTitle() {
	_, token := suite.signUp("alice")
	project := suite.createProject(token, "Website")

	w := suite.request(http.MethodPut, path("/projects/%d", project.ID), token, `{"title": null}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteProject() {
	_, aliceToken := suite.signUp("alice")
	_, bobToken := suite.signUp("bob")
	project := suite.createProject(aliceToken, "Website")
	task := suite.createTask(aliceToken, project.ID, nil)

	w := suite.request(http.MethodDelete, path("/projects/%d", project.ID), bobToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodDelete, path("/projects/%d", project.ID), aliceToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"Project deleted successfully"}`, w.Body.String())

	w = suite.request(http.MethodGet, path("/projects/%d", project.ID), aliceToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	w = suite.request(http.MethodGet, path("/tasks/%d", task.ID), aliceToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListProjectTasks() {
	_, token := suite.signUp("alice")
	project := suite.createProject(token, "Website")
	other := suite.createProject(token, "Mobile")
	suite.createTask(token, project.ID, nil)
	suite.createTask(token, project.ID, gin.H{"title": "Write docs"})
	suite.createTask(token, other.ID, nil)

	w := suite.request(http.MethodGet, path("/projects/%d/tasks", project.ID), token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	suite.Len(tasks, 2)
}

func (suite *HandlerTestSuite) TestProjectSummary() {
	_, token := suite.signUp("alice")
	project := suite.createProject(token, "Website")
	suite.createTask(token, project.ID, gin.H{"status": "closed", "estimated_hours": 4})
	suite.createTask(token, project.ID, gin.H{"status": "completed", "estimated_hours": 2})
	suite.createTask(token, project.ID, gin.H{"status": "todo"})

	w := suite.request(http.MethodGet, path("/projects/%d/summary", project.ID), token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var summary dto.ProjectSummaryDTO
	suite.decode(w, &summary)
	suite.Equal(project.ID, summary.ProjectID)
	suite.Equal("Website", summary.ProjectTitle)
	suite.EqualValues(3, summary.TotalTasks)
	suite.EqualValues(2, summary.ClosedTasks)
	suite.EqualValues(1, summary.TodoTasks)
	suite.InDelta(66.67, summary.CompletionPercentage, 0.001)
	suite.InDelta(6.0, summary.TotalEstimatedHours, 0.001)
}

func (suite *HandlerTestSuite) TestProjectSummary_NotOwner() {
	_, aliceToken := suite.signUp("alice")
	_, bobToken := suite.signUp("bob")
	project := suite.createProject(aliceToken, "Website")

	w := suite.request(http.MethodGet, path("/projects/%d/summary", project.ID), bobToken, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}
