package dto

import (
	"time"

	"github.com/yukikurage/project-tracker/internal/models"
	"github.com/yukikurage/project-tracker/internal/utils"
)

// TaskPushDTO represents one entry of a task's push history
type TaskPushDTO struct {
	Date             time.Time    `json:"date"`
	PushByEmployeeID *uint64      `json:"push_by_employee_id"`
	PushToEmployeeID uint64       `json:"push_to_employee_id"`
	Comment          string       `json:"comment"`
	PushTo           *EmployeeDTO `json:"push_to,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID         uint64            `json:"id"`
	ProjectID  uint64            `json:"project_id"`
	Title      string            `json:"title"`
	StatusID   models.TaskStatus `json:"status_id"`
	StatusName string            `json:"status_name"`
	OwnerID    *uint64           `json:"owner_id"`
	Pushes     []TaskPushDTO     `json:"pushes,omitempty"`
	Audit      *AuditDTO         `json:"audit,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// JobDTO represents logged time in API responses
type JobDTO struct {
	ID              uint64    `json:"id"`
	TaskID          uint64    `json:"task_id"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Audit           *AuditDTO `json:"audit,omitempty"`
}

// JobListResponse lists the jobs of a task with their total
type JobListResponse struct {
	Jobs         []JobDTO `json:"jobs"`
	TotalMinutes int64    `json:"total_minutes"`
}

// ToTaskPushDTO converts a TaskPush model to TaskPushDTO
func ToTaskPushDTO(push models.TaskPush) TaskPushDTO {
	dto := TaskPushDTO{
		Date:             push.Date,
		PushByEmployeeID: push.PushByEmployeeID,
		PushToEmployeeID: push.PushToEmployeeID,
		Comment:          push.Comment,
	}

	// Include target if preloaded
	if push.PushTo != nil {
		to := ToEmployeeDTO(*push.PushTo)
		dto.PushTo = &to
	}

	return dto
}

// ToTaskDTO converts a Task model to TaskDTO. OwnerID is null for a task that was never pushed.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:         task.ID,
		ProjectID:  task.ProjectID,
		Title:      task.Title,
		StatusID:   task.StatusID,
		StatusName: task.StatusName(),
		Audit:      ToAuditDTO(task.Entity),
	}

	if ownerID, err := task.OwnerID(); err == nil {
		dto.OwnerID = &ownerID
	}

	if len(task.Pushes) > 0 {
		dto.Pushes = make([]TaskPushDTO, len(task.Pushes))
		for i, push := range task.Pushes {
			dto.Pushes[i] = ToTaskPushDTO(push)
		}
	}

	return dto
}

// ToTaskListResponse converts a page of tasks
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Pagination: params.Response(total),
	}
}

// ToJobDTO converts a Job model to JobDTO
func ToJobDTO(job models.Job) JobDTO {
	return JobDTO{
		ID:              job.ID,
		TaskID:          job.TaskID,
		Description:     job.Description,
		DurationMinutes: job.DurationMinutes,
		Audit:           ToAuditDTO(job.Entity),
	}
}

// ToJobListResponse converts the jobs of a task
func ToJobListResponse(jobs []models.Job, totalMinutes int64) JobListResponse {
	items := make([]JobDTO, len(jobs))
	for i, job := range jobs {
		items[i] = ToJobDTO(job)
	}

	return JobListResponse{
		Jobs:         items,
		TotalMinutes: totalMinutes,
	}
}
