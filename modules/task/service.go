package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domain "github.com/Vallvoron/TodoList/domain/task"
	"github.com/Vallvoron/TodoList/events"
	"github.com/go-monolith/mono"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResult, error) {
	if serr := validateRequest(&req.TaskRequest); serr != nil {
		return TaskResult{Error: serr}, nil
	}

	newTask := &domain.Task{ID: uuid.New().String()}
	if serr := applyRequest(newTask, &req.TaskRequest); serr != nil {
		return TaskResult{Error: serr}, nil
	}

	if err := m.repo.Save(ctx, newTask); err != nil {
		return TaskResult{}, fmt.Errorf("failed to save task: %w", err)
	}
	m.invalidate(ctx, newTask.ID)
	m.publishCreated(newTask)

	view := toTaskView(newTask)
	return TaskResult{Task: &view}, nil
}

// getTask handles the get-task service request. Reads are cache-aside:
// concurrent misses for the same id are collapsed through singleflight.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResult, error) {
	key := "id:" + req.TaskID

	if m.cache != nil {
		var view TaskView
		if hit, err := m.cache.Get(ctx, key, &view); err == nil && hit {
			return TaskResult{Task: &view}, nil
		}
	}

	result, err, _ := m.group.Do(key, func() (any, error) {
		stored, err := m.repo.FindByID(ctx, req.TaskID)
		if err != nil {
			return nil, err
		}
		view := toTaskView(stored)
		m.cacheSet(ctx, key, view)
		return &view, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return TaskResult{Error: notFound()}, nil
		}
		return TaskResult{}, err
	}
	return TaskResult{Task: result.(*TaskView)}, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if err := validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return ListTasksResponse{Error: badRequest(fieldMessage(fieldErrs[0]))}, nil
		}
		return ListTasksResponse{Error: badRequest(err.Error())}, nil
	}

	key := "list:" + req.SortBy + ":" + req.SortDirection

	if m.cache != nil {
		var cached ListTasksResponse
		if hit, err := m.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	result, err, _ := m.group.Do(key, func() (any, error) {
		tasks, err := m.repo.FindAll(ctx, req.SortBy, req.SortDirection)
		if err != nil {
			return nil, err
		}
		resp := ListTasksResponse{
			Tasks: make([]TaskView, 0, len(tasks)),
			Total: len(tasks),
		}
		for _, t := range tasks {
			resp.Tasks = append(resp.Tasks, toTaskView(t))
		}
		m.cacheSet(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return ListTasksResponse{}, err
	}
	return result.(ListTasksResponse), nil
}

// updateTask handles the update-task service request. Title, description
// and status are fully replaced from the request; the write pipeline then
// reruns macro parsing and status derivation on the stored record.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResult, error) {
	stored, err := m.repo.FindByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return TaskResult{Error: notFound()}, nil
		}
		return TaskResult{}, err
	}

	if serr := validateRequest(&req.TaskRequest); serr != nil {
		return TaskResult{Error: serr}, nil
	}
	if serr := applyRequest(stored, &req.TaskRequest); serr != nil {
		return TaskResult{Error: serr}, nil
	}

	if err := m.repo.Save(ctx, stored); err != nil {
		return TaskResult{}, fmt.Errorf("failed to update task: %w", err)
	}
	m.invalidate(ctx, stored.ID)
	m.publishUpdated(stored)

	view := toTaskView(stored)
	return TaskResult{Task: &view}, nil
}

// deleteTask handles the delete-task service request. The repository
// reports the missing-id case itself, so deletion is a single store call.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.repo.DeleteByID(ctx, req.TaskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return DeleteTaskResponse{Error: notFound()}, nil
		}
		return DeleteTaskResponse{}, err
	}
	m.invalidate(ctx, req.TaskID)
	m.publishDeleted(req.TaskID)

	return DeleteTaskResponse{Deleted: true, Message: msgTaskDeleted}, nil
}

// cacheSet stores a value in the cache, logging failures instead of
// propagating them.
func (m *TaskModule) cacheSet(ctx context.Context, key string, value any) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Set(ctx, key, value); err != nil {
		log.Printf("[task] cache set failed for %s: %v", key, err)
	}
}

// invalidate drops the cached entry for a task and every cached listing.
func (m *TaskModule) invalidate(ctx context.Context, taskID string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Delete(ctx, "id:"+taskID); err != nil {
		log.Printf("[task] cache invalidation failed for task %s: %v", taskID, err)
	}
	if err := m.cache.DeletePattern(ctx, "list:*"); err != nil {
		log.Printf("[task] cache list invalidation failed: %v", err)
	}
}

// Event publishing is best-effort: failures are logged and never fail the
// surrounding operation.

func (m *TaskModule) publishCreated(t *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		Priority:  string(t.Priority),
		Deadline:  t.Deadline,
		CreatedAt: t.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] failed to publish TaskCreated event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishUpdated(t *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskUpdatedEvent{
		TaskID:    t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		Priority:  string(t.Priority),
		Deadline:  t.Deadline,
		UpdatedAt: t.UpdatedAt,
	}
	if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] failed to publish TaskUpdated event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishDeleted(taskID string) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		TaskID:    taskID,
		DeletedAt: time.Now(),
	}
	if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] failed to publish TaskDeleted event for task %s: %v", taskID, err)
	}
}
