package api

import (
	"github.com/Vallvoron/TodoList/modules/task"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	api := m.app.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.Post("/", m.createTask)
	tasks.Get("/", m.listTasks)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// createTask handles POST /api/v1/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
		})
	}

	resp, err := m.taskAdapter.CreateTask(c.Context(), &task.CreateTaskRequest{
		TaskRequest: task.TaskRequest{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			Deadline:    req.Deadline,
		},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "create_failed",
			Message: err.Error(),
		})
	}
	if resp.Error != nil {
		return renderServiceError(c, resp.Error)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(resp.Task))
}

// getTask handles GET /api/v1/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "get_failed",
			Message: err.Error(),
		})
	}
	if resp.Error != nil {
		return renderServiceError(c, resp.Error)
	}

	return c.JSON(toTaskResponse(resp.Task))
}

// listTasks handles GET /api/v1/tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	sortBy := c.Query("sort_by", "")
	sortDirection := c.Query("sort_direction", "")

	resp, err := m.taskAdapter.ListTasks(c.Context(), sortBy, sortDirection)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "list_failed",
			Message: err.Error(),
		})
	}
	if resp.Error != nil {
		return renderServiceError(c, resp.Error)
	}

	tasks := make([]TaskResponse, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, toTaskResponse(&t))
	}

	return c.JSON(ListTasksResponse{
		Tasks: tasks,
		Total: resp.Total,
	})
}

// updateTask handles PUT /api/v1/tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
		})
	}

	resp, err := m.taskAdapter.UpdateTask(c.Context(), &task.UpdateTaskRequest{
		TaskID: c.Params("id"),
		TaskRequest: task.TaskRequest{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			Deadline:    req.Deadline,
		},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "update_failed",
			Message: err.Error(),
		})
	}
	if resp.Error != nil {
		return renderServiceError(c, resp.Error)
	}

	return c.JSON(toTaskResponse(resp.Task))
}

// deleteTask handles DELETE /api/v1/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	resp, err := m.taskAdapter.DeleteTask(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "delete_failed",
			Message: err.Error(),
		})
	}
	if resp.Error != nil {
		return renderServiceError(c, resp.Error)
	}

	return c.JSON(MessageResponse{Message: resp.Message})
}

// renderServiceError maps a domain outcome to its HTTP status.
func renderServiceError(c *fiber.Ctx, serr *task.ServiceError) error {
	status := fiber.StatusBadRequest
	if serr.Code == task.ErrCodeNotFound {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:   serr.Code,
		Message: serr.Message,
	})
}

// toTaskResponse converts a task view into the HTTP response shape.
func toTaskResponse(t *task.TaskView) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
