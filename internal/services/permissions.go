package services

import "github.com/yukikurage/project-dashboard-api/internal/models"

// CanModifyProject reports whether actor may update or delete the project.
func CanModifyProject(actor *models.User, project *models.Project) bool {
	return actor != nil && project != nil && actor.ID == project.OwnerID
}

// CanUpdateTask reports whether actor may edit the task: the project owner or
// the task's current assignee.
func CanUpdateTask(actor *models.User, project *models.Project, task *models.Task) bool {
	if actor == nil || task == nil {
		return false
	}
	if CanModifyProject(actor, project) {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == actor.ID
}

// CanDeleteTask reports whether actor may delete a task of project. Only the
// project owner can; being the assignee is not enough.
func CanDeleteTask(actor *models.User, project *models.Project) bool {
	return CanModifyProject(actor, project)
}

// CanModifyComment reports whether actor wrote the comment.
func CanModifyComment(actor *models.User, comment *models.Comment) bool {
	return actor != nil && comment != nil && actor.ID == comment.AuthorID
}
