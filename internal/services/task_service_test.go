package services

import (
	"context"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/notifications"
)

func (suite *ServiceTestSuite) TestCreateTask_DefaultsAssigneeToCreator() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)

	task, err := suite.tasks.CreateTask(context.Background(), u1, CreateTaskInput{
		Title:     "Write docs",
		ProjectID: project.ID,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(task.AssigneeID)
	suite.Equal(u1.ID, *task.AssigneeID)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.Equal(0.0, task.ActualHours)
	suite.Empty(suite.notifier.all())
}

func (suite *ServiceTestSuite) TestCreateTask_OtherAssigneeIsNotified() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)

	task, err := suite.tasks.CreateTask(context.Background(), u1, CreateTaskInput{
		Title:      "Review PR",
		ProjectID:  project.ID,
		AssigneeID: &u2.ID,
	})

	suite.Require().NoError(err)
	suite.Equal(u2.ID, *task.AssigneeID)

	sent := suite.notifier.all()
	suite.Require().Len(sent, 1)
	suite.Equal(notifications.KindAssigned, sent[0].Kind)
	suite.Equal(u2.Email, sent[0].RecipientEmail)
	suite.Equal("Website", sent[0].ProjectName)
	suite.Equal(u1.DisplayName(), sent[0].ActorName)
}

func (suite *ServiceTestSuite) TestCreateTask_AnyUserInAnyProject() {
	owner := suite.createUser("alice")
	other := suite.createUser("carol")
	project := suite.createProject(owner)

	_, err := suite.tasks.CreateTask(context.Background(), other, CreateTaskInput{
		Title:     "Drive-by task",
		ProjectID: project.ID,
	})
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestCreateTask_Errors() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	ctx := context.Background()

	_, err := suite.tasks.CreateTask(ctx, u1, CreateTaskInput{Title: "x", ProjectID: 999})
	suite.ErrorIs(err, ErrProjectNotFound)

	missing := uint64(999)
	_, err = suite.tasks.CreateTask(ctx, u1, CreateTaskInput{Title: "x", ProjectID: project.ID, AssigneeID: &missing})
	suite.ErrorIs(err, ErrAssigneeNotFound)

	_, err = suite.tasks.CreateTask(ctx, u1, CreateTaskInput{Title: "  ", ProjectID: project.ID, Status: "archived", Priority: "urgent"})
	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Contains(verr.Fields, "title")
	suite.Contains(verr.Fields, "status")
	suite.Contains(verr.Fields, "priority")
}

func (suite *ServiceTestSuite) TestUpdateTask_PreservesUnspecifiedFields() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	task := suite.createTask(project, u1, models.TaskStatusTodo)
	suite.Require().NoError(suite.db.Model(task).UpdateColumn("actual_hours", 4.5).Error)

	updated, err := suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{
		Title: ptr("Fix login redirect"),
	})

	suite.Require().NoError(err)
	suite.Equal("Fix login redirect", updated.Title)
	suite.Equal(task.Description, updated.Description)
	suite.Equal(models.TaskStatusTodo, updated.Status)
	suite.Equal(models.TaskPriorityHigh, updated.Priority)
	suite.Equal(4.5, updated.ActualHours)
	suite.Equal(u1.ID, *updated.AssigneeID)
}

func (suite *ServiceTestSuite) TestUpdateTask_ForbiddenThenNotFound() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	u3 := suite.createUser("carol")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusTodo)

	_, err := suite.tasks.UpdateTask(context.Background(), u3, task.ID, UpdateTaskInput{Status: ptr(models.TaskStatusReview)})
	suite.ErrorIs(err, ErrTaskPermissionDenied)

	_, err = suite.tasks.UpdateTask(context.Background(), u3, 999, UpdateTaskInput{Status: ptr(models.TaskStatusReview)})
	suite.ErrorIs(err, ErrTaskNotFound)

	suite.Equal(models.TaskStatusTodo, suite.reloadTask(task.ID).Status)
}

func (suite *ServiceTestSuite) TestUpdateTask_ReassignmentWinsOverStatus() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	u3 := suite.createUser("carol")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusTodo)

	updated, err := suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{
		Status:        ptr(models.TaskStatusClosed),
		AssigneeID:    &u3.ID,
		AssigneeIDSet: true,
	})

	suite.Require().NoError(err)
	suite.Equal(u3.ID, *updated.AssigneeID)

	sent := suite.notifier.all()
	suite.Require().Len(sent, 1)
	suite.Equal(notifications.KindReassigned, sent[0].Kind)
	suite.Equal(u3.Email, sent[0].RecipientEmail)
}

func (suite *ServiceTestSuite) TestUpdateTask_OwnerClosesTask() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusTodo)

	updated, err := suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{Status: ptr(models.TaskStatusClosed)})

	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusClosed, updated.Status)
	sent := suite.notifier.all()
	suite.Require().Len(sent, 1)
	suite.Equal(notifications.KindCompleted, sent[0].Kind)
	suite.Equal(u2.Email, sent[0].RecipientEmail)
}

func (suite *ServiceTestSuite) TestUpdateTask_AssigneeClosesOwnTaskSilently() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusTodo)

	updated, err := suite.tasks.UpdateTask(context.Background(), u2, task.ID, UpdateTaskInput{Status: ptr(models.TaskStatusClosed)})

	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusClosed, updated.Status)
	suite.Empty(suite.notifier.all())
}

func (suite *ServiceTestSuite) TestUpdateTask_CompletedAliasStoredAsClosed() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusInTest)

	updated, err := suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{Status: ptr(models.TaskStatusCompleted)})

	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusClosed, updated.Status)
	sent := suite.notifier.all()
	suite.Require().Len(sent, 1)
	suite.Equal(notifications.KindCompleted, sent[0].Kind)
}

func (suite *ServiceTestSuite) TestUpdateTask_StatusChangeNotifiesAssignee() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusTodo)

	_, err := suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{Status: ptr(models.TaskStatusReview)})

	suite.Require().NoError(err)
	sent := suite.notifier.all()
	suite.Require().Len(sent, 1)
	suite.Equal(notifications.KindStatusChanged, sent[0].Kind)
	suite.Equal("review", sent[0].NewStatus)
}

func (suite *ServiceTestSuite) TestUpdateTask_NoNotificationWithoutTransition() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusTodo)

	_, err := suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{
		Description: ptr("More detail"),
		Status:      ptr(models.TaskStatusTodo),
	})
	suite.Require().NoError(err)

	_, err = suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{
		AssigneeIDSet: true,
	})
	suite.Require().NoError(err)
	suite.Nil(suite.reloadTask(task.ID).AssigneeID)

	suite.Empty(suite.notifier.all())
}

func (suite *ServiceTestSuite) TestUpdateTask_ClearsNullableFields() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	task := suite.createTask(project, u1, models.TaskStatusTodo)
	suite.Require().NoError(suite.db.Model(task).UpdateColumn("estimated_hours", 8).Error)

	updated, err := suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{EstimatedHoursSet: true})

	suite.Require().NoError(err)
	suite.Nil(updated.EstimatedHours)
}

func (suite *ServiceTestSuite) TestUpdateTask_Validation() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	task := suite.createTask(project, u1, models.TaskStatusTodo)

	_, err := suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{
		Title:             ptr(""),
		Status:            ptr(models.TaskStatus("archived")),
		EstimatedHours:    ptr(-1.0),
		EstimatedHoursSet: true,
	})

	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Len(verr.Fields, 3)
	suite.Equal("Fix login", suite.reloadTask(task.ID).Title)

	missing := uint64(999)
	_, err = suite.tasks.UpdateTask(context.Background(), u1, task.ID, UpdateTaskInput{AssigneeID: &missing, AssigneeIDSet: true})
	suite.ErrorIs(err, ErrAssigneeNotFound)
}

func (suite *ServiceTestSuite) TestDeleteTask_Permissions() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	u3 := suite.createUser("carol")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusTodo)
	ctx := context.Background()

	suite.ErrorIs(suite.tasks.DeleteTask(ctx, u3, task.ID), ErrTaskDeleteDenied)
	suite.ErrorIs(suite.tasks.DeleteTask(ctx, u2, task.ID), ErrTaskDeleteDenied)
	suite.ErrorIs(suite.tasks.DeleteTask(ctx, u1, 999), ErrTaskNotFound)

	suite.NoError(suite.tasks.DeleteTask(ctx, u1, task.ID))
	_, err := suite.tasks.GetTask(ctx, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
	suite.Empty(suite.notifier.all())
}

func (suite *ServiceTestSuite) TestListTasks_Filters() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	other := suite.createProject(u2)
	suite.createTask(project, u1, models.TaskStatusTodo)
	suite.createTask(project, u2, models.TaskStatusClosed)
	suite.createTask(other, u2, models.TaskStatusTodo)
	ctx := context.Background()

	tasks, err := suite.tasks.ListTasks(ctx, ListTasksInput{ProjectID: &project.ID})
	suite.Require().NoError(err)
	suite.Len(tasks, 2)

	tasks, err = suite.tasks.ListTasks(ctx, ListTasksInput{Status: ptr(models.TaskStatusCompleted)})
	suite.Require().NoError(err)
	suite.Len(tasks, 1)

	mine, err := suite.tasks.ListMyTasks(ctx, u2, 0, 100)
	suite.Require().NoError(err)
	suite.Len(mine, 2)

	missing := uint64(999)
	_, err = suite.tasks.ListTasks(ctx, ListTasksInput{ProjectID: &missing})
	suite.ErrorIs(err, ErrProjectNotFound)
}
