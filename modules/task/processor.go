package task

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/Vallvoron/TodoList/domain/task"
	"github.com/go-playground/validator/v10"
)

// Canonical response messages. Clients may parse them; treat as opaque
// strings and keep them stable.
const (
	msgTitleTooShort  = "title cannot be shorter than 4 characters"
	msgTitleTooLong   = "title cannot be longer than 255 characters"
	msgDeadlinePast   = "deadline cannot be earlier than the current time"
	msgDeadlineFormat = "deadline must be a date in format YYYY-MM-DD"
	msgTaskNotFound   = "task not found"
	msgTaskDeleted    = "task deleted"
)

const (
	titleMinLen = 4
	titleMaxLen = 255
)

var validate = validator.New()

// validateRequest trims the raw title, enforces the pre-macro length
// minimum and runs struct tag validation on the remaining fields. A nil
// return means the request may enter the write pipeline.
func validateRequest(req *TaskRequest) *ServiceError {
	req.Title = strings.TrimSpace(req.Title)
	if utf8.RuneCountInString(req.Title) < titleMinLen {
		return badRequest(msgTitleTooShort)
	}
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return badRequest(fieldMessage(fieldErrs[0]))
		}
		return badRequest(err.Error())
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Status":
		return "status must be one of: ACTIVE, COMPLETED, OVERDUE, LATE"
	case "Priority":
		return "priority must be one of: CRITICAL, HIGH, MEDIUM, LOW"
	case "SortBy":
		return "sort_by must be one of: title, priority"
	case "SortDirection":
		return "sort_direction must be one of: ASC, DESC"
	}
	return "invalid request"
}

// applyRequest is the write pipeline shared by create and update. It
// overwrites the task's title, description and status from the request,
// parses title macros, applies defaults for absent fields, rejects a
// resulting deadline in the past and derives the final status. Create
// passes a fresh task; update passes the stored record, whose existing
// priority and deadline survive unless the request or a macro replaces
// them.
func applyRequest(t *domain.Task, req *TaskRequest) *ServiceError {
	t.Title = req.Title
	t.Description = req.Description

	declared := domain.StatusActive
	if req.Status != "" {
		declared = domain.Status(req.Status)
	}

	parsed := domain.ParseTitleMacros(t.Title)
	t.Title = parsed.Title

	if n := utf8.RuneCountInString(t.Title); n < titleMinLen {
		return badRequest(msgTitleTooShort)
	} else if n > titleMaxLen {
		return badRequest(msgTitleTooLong)
	}

	switch {
	case req.Priority != "":
		t.Priority = domain.Priority(req.Priority)
	case parsed.Priority != "":
		t.Priority = parsed.Priority
	case t.Priority == "":
		t.Priority = domain.PriorityMedium
	}

	switch {
	case req.Deadline != "":
		deadline, err := time.Parse(domain.DateLayout, req.Deadline)
		if err != nil {
			return badRequest(msgDeadlineFormat)
		}
		t.Deadline = &deadline
	case parsed.Deadline != nil:
		t.Deadline = parsed.Deadline
	}

	today := domain.Today()
	if t.Deadline != nil && domain.DateOf(*t.Deadline).Before(today) {
		return badRequest(msgDeadlinePast)
	}

	t.Status = domain.DeriveStatus(declared, t.Deadline, today)
	return nil
}

// toTaskView converts a task entity into its caller-facing view.
func toTaskView(t *domain.Task) TaskView {
	view := TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Deadline != nil {
		view.Deadline = t.Deadline.Format(domain.DateLayout)
	}
	return view
}
