package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker/internal/constants"
	apierrors "github.com/yukikurage/project-tracker/internal/errors"
	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/services"
)

// LoadTask loads the live task named by :id with its push history.
// Unknown tasks, deleted tasks and tasks of deleted projects answer 404.
func LoadTask(taskService *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, ok := ParseIDParam(c, "id")
		if !ok {
			c.Abort()
			return
		}

		task, err := taskService.GetTask(taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "Failed to load task")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task stored by LoadTask
func GetTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := value.(*models.Task)
	return task, ok
}
