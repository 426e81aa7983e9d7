package services

import (
	"context"

	"github.com/yukikurage/project-dashboard-api/internal/models"
)

func (suite *ServiceTestSuite) TestCreateProject() {
	u1 := suite.createUser("alice")

	project, err := suite.projects.CreateProject(context.Background(), u1, CreateProjectInput{Title: " Launch ", Description: "Q3 launch"})

	suite.Require().NoError(err)
	suite.Equal("Launch", project.Title)
	suite.Equal(models.ProjectStatusActive, project.Status)
	suite.Equal(u1.ID, project.OwnerID)

	_, err = suite.projects.CreateProject(context.Background(), u1, CreateProjectInput{Title: "x", Status: "paused"})
	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Contains(verr.Fields, "status")
}

func (suite *ServiceTestSuite) TestUpdateProject_OwnerOnly() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	ctx := context.Background()

	_, err := suite.projects.UpdateProject(ctx, u2, project.ID, UpdateProjectInput{Title: ptr("Hijacked")})
	suite.ErrorIs(err, ErrProjectPermissionDenied)

	_, err = suite.projects.UpdateProject(ctx, u1, 999, UpdateProjectInput{Title: ptr("Nope")})
	suite.ErrorIs(err, ErrProjectNotFound)

	status := models.ProjectStatusOnHold
	updated, err := suite.projects.UpdateProject(ctx, u1, project.ID, UpdateProjectInput{Status: &status})
	suite.Require().NoError(err)
	suite.Equal(models.ProjectStatusOnHold, updated.Status)
	suite.Equal("Website", updated.Title)
}

func (suite *ServiceTestSuite) TestDeleteProject() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusTodo)
	ctx := context.Background()

	suite.ErrorIs(suite.projects.DeleteProject(ctx, u2, project.ID), ErrProjectPermissionDenied)
	suite.NoError(suite.projects.DeleteProject(ctx, u1, project.ID))

	_, err := suite.projects.GetProject(ctx, project.ID)
	suite.ErrorIs(err, ErrProjectNotFound)
	_, err = suite.tasks.GetTask(ctx, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestListProjectTasks() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	suite.createTask(project, u1, models.TaskStatusTodo)
	suite.createTask(project, u1, models.TaskStatusReview)
	ctx := context.Background()

	tasks, err := suite.projects.ListProjectTasks(ctx, project.ID, 0, 100)
	suite.Require().NoError(err)
	suite.Len(tasks, 2)

	page, err := suite.projects.ListProjectTasks(ctx, project.ID, 1, 1)
	suite.Require().NoError(err)
	suite.Len(page, 1)

	_, err = suite.projects.ListProjectTasks(ctx, 999, 0, 100)
	suite.ErrorIs(err, ErrProjectNotFound)

	projects, err := suite.projects.ListProjects(ctx, 0, 100)
	suite.Require().NoError(err)
	suite.Len(projects, 1)
	suite.Equal(u1.Username, projects[0].Owner.Username)
}
