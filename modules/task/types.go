package task

import (
	"context"
	"time"
)

// TaskRequest carries the caller-supplied fields shared by create and
// update. An explicit priority or deadline always wins over a value
// derived from a title macro.
type TaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE COMPLETED OVERDUE LATE"`
	Priority    string `json:"priority,omitempty" validate:"omitempty,oneof=CRITICAL HIGH MEDIUM LOW"`
	Deadline    string `json:"deadline,omitempty"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	TaskRequest
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

// UpdateTaskRequest is the request for updating a task. Title,
// description and status are a full overwrite, not a merge.
type UpdateTaskRequest struct {
	TaskID string `json:"task_id"`
	TaskRequest
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct {
	SortBy        string `json:"sort_by,omitempty" validate:"omitempty,oneof=title priority"`
	SortDirection string `json:"sort_direction,omitempty" validate:"omitempty,oneof=ASC DESC"`
}

// Error codes carried by ServiceError.
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeNotFound   = "not_found"
)

// ServiceError is a domain outcome carried inside service responses across
// the request-reply boundary. Transport and store failures stay plain Go
// errors and never use this type.
type ServiceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func badRequest(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeBadRequest, Message: message}
}

func notFound() *ServiceError {
	return &ServiceError{Code: ErrCodeNotFound, Message: msgTaskNotFound}
}

// TaskView is a task as seen by callers. The deadline is formatted as
// YYYY-MM-DD.
type TaskView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Deadline    string    `json:"deadline,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskResult is the tagged outcome of single-task operations: either Task
// or Error is set.
type TaskResult struct {
	Task  *TaskView     `json:"task,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskView    `json:"tasks"`
	Total int           `json:"total"`
	Error *ServiceError `json:"error,omitempty"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool          `json:"deleted"`
	Message string        `json:"message,omitempty"`
	Error   *ServiceError `json:"error,omitempty"`
}

// TaskPort defines the interface driving adapters use to reach the core
// domain.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResult, error)
	GetTask(ctx context.Context, taskID string) (*TaskResult, error)
	ListTasks(ctx context.Context, sortBy, sortDirection string) (*ListTasksResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResult, error)
	DeleteTask(ctx context.Context, taskID string) (*DeleteTaskResponse, error)
}
