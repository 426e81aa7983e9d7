package services

import (
	"context"

	"github.com/yukikurage/project-dashboard-api/internal/models"
)

func (suite *ServiceTestSuite) TestCreateComment_Targets() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	task := suite.createTask(project, u1, models.TaskStatusTodo)
	ctx := context.Background()

	onTask, err := suite.comments.CreateComment(ctx, u1, CreateCommentInput{Content: "Looks good", TaskID: &task.ID})
	suite.Require().NoError(err)
	suite.Equal(task.ID, *onTask.TaskID)
	suite.Nil(onTask.ProjectID)

	_, err = suite.comments.CreateComment(ctx, u1, CreateCommentInput{Content: "Kickoff notes", ProjectID: &project.ID})
	suite.Require().NoError(err)

	var verr *ValidationError
	_, err = suite.comments.CreateComment(ctx, u1, CreateCommentInput{Content: "both", TaskID: &task.ID, ProjectID: &project.ID})
	suite.ErrorAs(err, &verr)
	_, err = suite.comments.CreateComment(ctx, u1, CreateCommentInput{Content: "neither"})
	suite.ErrorAs(err, &verr)

	missing := uint64(999)
	_, err = suite.comments.CreateComment(ctx, u1, CreateCommentInput{Content: "ghost", TaskID: &missing})
	suite.ErrorIs(err, ErrTaskNotFound)

	taskComments, err := suite.comments.ListTaskComments(ctx, task.ID)
	suite.Require().NoError(err)
	suite.Len(taskComments, 1)

	projectComments, err := suite.comments.ListProjectComments(ctx, project.ID)
	suite.Require().NoError(err)
	suite.Len(projectComments, 1)
}

func (suite *ServiceTestSuite) TestUpdateComment_AuthorOnly() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	ctx := context.Background()

	comment, err := suite.comments.CreateComment(ctx, u2, CreateCommentInput{Content: "first", ProjectID: &project.ID})
	suite.Require().NoError(err)

	_, err = suite.comments.UpdateComment(ctx, u1, comment.ID, "edited by owner")
	suite.ErrorIs(err, ErrCommentPermissionDenied)
	suite.ErrorIs(suite.comments.DeleteComment(ctx, u1, comment.ID), ErrCommentPermissionDenied)

	_, err = suite.comments.UpdateComment(ctx, u2, 999, "x")
	suite.ErrorIs(err, ErrCommentNotFound)

	updated, err := suite.comments.UpdateComment(ctx, u2, comment.ID, "second")
	suite.Require().NoError(err)
	suite.Equal("second", updated.Content)

	suite.NoError(suite.comments.DeleteComment(ctx, u2, comment.ID))
	_, err = suite.comments.UpdateComment(ctx, u2, comment.ID, "third")
	suite.ErrorIs(err, ErrCommentNotFound)
}

func (suite *ServiceTestSuite) TestDeleteTask_RemovesComments() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	task := suite.createTask(project, u1, models.TaskStatusTodo)
	ctx := context.Background()

	_, err := suite.comments.CreateComment(ctx, u1, CreateCommentInput{Content: "note", TaskID: &task.ID})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.tasks.DeleteTask(ctx, u1, task.ID))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&count).Error)
	suite.Equal(int64(0), count)
}
