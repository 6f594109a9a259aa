package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vallvoron/TodoList/modules/task"
)

// stubPort is a canned TaskPort implementation for handler tests.
type stubPort struct {
	createResult *task.TaskResult
	getResult    *task.TaskResult
	updateResult *task.TaskResult
	deleteResult *task.DeleteTaskResponse
	listResult   *task.ListTasksResponse

	lastSortBy        string
	lastSortDirection string
}

func (s *stubPort) CreateTask(_ context.Context, _ *task.CreateTaskRequest) (*task.TaskResult, error) {
	return s.createResult, nil
}

func (s *stubPort) GetTask(_ context.Context, _ string) (*task.TaskResult, error) {
	return s.getResult, nil
}

func (s *stubPort) ListTasks(_ context.Context, sortBy, sortDirection string) (*task.ListTasksResponse, error) {
	s.lastSortBy = sortBy
	s.lastSortDirection = sortDirection
	return s.listResult, nil
}

func (s *stubPort) UpdateTask(_ context.Context, _ *task.UpdateTaskRequest) (*task.TaskResult, error) {
	return s.updateResult, nil
}

func (s *stubPort) DeleteTask(_ context.Context, _ string) (*task.DeleteTaskResponse, error) {
	return s.deleteResult, nil
}

func setupTestAPI(t *testing.T, port *stubPort) *APIModule {
	t.Helper()

	m := NewModule(3000)
	m.taskAdapter = port
	m.initApp()
	return m
}

func doRequest(t *testing.T, m *APIModule, method, target, body string) *http.Response {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func TestCreateTaskHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		view := &task.TaskView{ID: "task-1", Title: "Wash the car", Status: "ACTIVE", Priority: "MEDIUM"}
		m := setupTestAPI(t, &stubPort{createResult: &task.TaskResult{Task: view}})

		resp := doRequest(t, m, http.MethodPost, "/api/v1/tasks/", `{"title":"Wash the car"}`)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var body TaskResponse
		decodeBody(t, resp, &body)
		if body.ID != "task-1" || body.Title != "Wash the car" {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("validation error becomes 400", func(t *testing.T) {
		m := setupTestAPI(t, &stubPort{createResult: &task.TaskResult{
			Error: &task.ServiceError{Code: task.ErrCodeBadRequest, Message: "title cannot be shorter than 4 characters"},
		}})

		resp := doRequest(t, m, http.MethodPost, "/api/v1/tasks/", `{"title":"abc"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}

		var body ErrorResponse
		decodeBody(t, resp, &body)
		if body.Message != "title cannot be shorter than 4 characters" {
			t.Errorf("message = %q", body.Message)
		}
	})

	t.Run("malformed body becomes 400", func(t *testing.T) {
		m := setupTestAPI(t, &stubPort{})

		resp := doRequest(t, m, http.MethodPost, "/api/v1/tasks/", `{"title":`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})
}

func TestGetTaskHandler_NotFound(t *testing.T) {
	m := setupTestAPI(t, &stubPort{getResult: &task.TaskResult{
		Error: &task.ServiceError{Code: task.ErrCodeNotFound, Message: "task not found"},
	}})

	resp := doRequest(t, m, http.MethodGet, "/api/v1/tasks/missing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	var body ErrorResponse
	decodeBody(t, resp, &body)
	if body.Message != "task not found" {
		t.Errorf("message = %q, want %q", body.Message, "task not found")
	}
}

func TestListTasksHandler_PassesSortParams(t *testing.T) {
	stub := &stubPort{listResult: &task.ListTasksResponse{
		Tasks: []task.TaskView{{ID: "task-1", Title: "Task A", Status: "ACTIVE", Priority: "HIGH"}},
		Total: 1,
	}}
	m := setupTestAPI(t, stub)

	resp := doRequest(t, m, http.MethodGet, "/api/v1/tasks/?sort_by=priority&sort_direction=DESC", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	if stub.lastSortBy != "priority" || stub.lastSortDirection != "DESC" {
		t.Errorf("sort params = (%q, %q), want (priority, DESC)", stub.lastSortBy, stub.lastSortDirection)
	}

	var body ListTasksResponse
	decodeBody(t, resp, &body)
	if body.Total != 1 || len(body.Tasks) != 1 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestDeleteTaskHandler(t *testing.T) {
	m := setupTestAPI(t, &stubPort{deleteResult: &task.DeleteTaskResponse{
		Deleted: true,
		Message: "task deleted",
	}})

	resp := doRequest(t, m, http.MethodDelete, "/api/v1/tasks/task-1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body MessageResponse
	decodeBody(t, resp, &body)
	if body.Message != "task deleted" {
		t.Errorf("message = %q, want %q", body.Message, "task deleted")
	}
}

func TestHealthHandler(t *testing.T) {
	m := setupTestAPI(t, &stubPort{})

	resp := doRequest(t, m, http.MethodGet, "/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body HealthResponse
	decodeBody(t, resp, &body)
	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
}
