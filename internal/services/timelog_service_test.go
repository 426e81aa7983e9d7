package services

import (
	"context"
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
)

func (suite *ServiceTestSuite) TestLogTime_AnyUserAccumulatesHours() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	u3 := suite.createUser("carol")
	project := suite.createProject(u1)
	task := suite.createTask(project, u2, models.TaskStatusInProgress)
	ctx := context.Background()

	log, err := suite.timeLogs.LogTime(ctx, u3, task.ID, LogTimeInput{Hours: 2, Description: "pairing"})
	suite.Require().NoError(err)
	suite.Equal(u3.ID, log.UserID)
	suite.False(log.Date.IsZero())

	_, err = suite.timeLogs.LogTime(ctx, u2, task.ID, LogTimeInput{Hours: 1.25})
	suite.Require().NoError(err)

	suite.Equal(3.25, suite.reloadTask(task.ID).ActualHours)

	logs, err := suite.timeLogs.ListTaskTimeLogs(ctx, task.ID)
	suite.Require().NoError(err)
	suite.Len(logs, 2)

	var sum float64
	for _, l := range logs {
		sum += l.Hours
	}
	suite.Equal(suite.reloadTask(task.ID).ActualHours, sum)
}

func (suite *ServiceTestSuite) TestLogTime_Errors() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	task := suite.createTask(project, u1, models.TaskStatusTodo)
	ctx := context.Background()

	_, err := suite.timeLogs.LogTime(ctx, u1, task.ID, LogTimeInput{Hours: 0})
	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Contains(verr.Fields, "hours")

	_, err = suite.timeLogs.LogTime(ctx, u1, 999, LogTimeInput{Hours: 1})
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.timeLogs.ListTaskTimeLogs(ctx, 999)
	suite.ErrorIs(err, ErrTaskNotFound)

	suite.Equal(0.0, suite.reloadTask(task.ID).ActualHours)
}

func (suite *ServiceTestSuite) TestTimeLogSummary() {
	u1 := suite.createUser("alice")
	project := suite.createProject(u1)
	first := suite.createTask(project, u1, models.TaskStatusTodo)
	second := suite.createTask(project, u1, models.TaskStatusTodo)
	ctx := context.Background()

	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	old := day.AddDate(0, -1, 0)
	_, err := suite.timeLogs.LogTime(ctx, u1, first.ID, LogTimeInput{Hours: 2, Date: &day})
	suite.Require().NoError(err)
	_, err = suite.timeLogs.LogTime(ctx, u1, first.ID, LogTimeInput{Hours: 3, Date: &day})
	suite.Require().NoError(err)
	_, err = suite.timeLogs.LogTime(ctx, u1, second.ID, LogTimeInput{Hours: 1, Date: &old})
	suite.Require().NoError(err)

	from := day.AddDate(0, 0, -1)
	summary, err := suite.timeLogs.TimeLogSummary(ctx, u1.ID, &from, nil)
	suite.Require().NoError(err)
	suite.Equal(5.0, summary.TotalHours)
	suite.Equal(int64(2), summary.TotalEntries)
	suite.Require().Len(summary.Tasks, 1)
	suite.Equal(first.ID, summary.Tasks[0].TaskID)

	all, err := suite.timeLogs.TimeLogSummary(ctx, u1.ID, nil, nil)
	suite.Require().NoError(err)
	suite.Equal(6.0, all.TotalHours)
	suite.Len(all.Tasks, 2)

	_, err = suite.timeLogs.TimeLogSummary(ctx, 999, nil, nil)
	suite.ErrorIs(err, ErrUserNotFound)

	_, err = suite.timeLogs.TimeLogSummary(ctx, u1.ID, &day, &old)
	var verr *ValidationError
	suite.ErrorAs(err, &verr)
}

func (suite *ServiceTestSuite) TestListTimeLogs_Filters() {
	u1 := suite.createUser("alice")
	u2 := suite.createUser("bobby")
	project := suite.createProject(u1)
	task := suite.createTask(project, u1, models.TaskStatusTodo)
	ctx := context.Background()

	_, err := suite.timeLogs.LogTime(ctx, u1, task.ID, LogTimeInput{Hours: 1})
	suite.Require().NoError(err)
	_, err = suite.timeLogs.LogTime(ctx, u2, task.ID, LogTimeInput{Hours: 2})
	suite.Require().NoError(err)

	logs, err := suite.timeLogs.ListTimeLogs(ctx, ListTimeLogsInput{UserID: &u2.ID, Limit: 10})
	suite.Require().NoError(err)
	suite.Require().Len(logs, 1)
	suite.Equal(2.0, logs[0].Hours)
	suite.Equal("bobby", logs[0].User.Username)
}
