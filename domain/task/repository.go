package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when no task exists for the given id.
var ErrTaskNotFound = errors.New("task not found")

// Fields accepted by FindAll for sorting.
const (
	SortByTitle    = "title"
	SortByPriority = "priority"
)

// priorityOrderExpr sorts priorities by their declared rank rather than
// alphabetically, so ascending means CRITICAL first and LOW last.
const priorityOrderExpr = "CASE priority" +
	" WHEN 'CRITICAL' THEN 0" +
	" WHEN 'HIGH' THEN 1" +
	" WHEN 'MEDIUM' THEN 2" +
	" WHEN 'LOW' THEN 3" +
	" ELSE 4 END"

// Repository provides database access to task records.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs database migrations for the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Task{})
}

// FindAll returns all tasks. sortBy may be "title" or "priority"; anything
// else falls back to creation order. sortDirection defaults to ascending
// unless it equals "DESC" (case-insensitive).
func (r *Repository) FindAll(ctx context.Context, sortBy, sortDirection string) ([]*Task, error) {
	dir := " ASC"
	if strings.EqualFold(sortDirection, "DESC") {
		dir = " DESC"
	}

	query := r.db.WithContext(ctx)
	switch sortBy {
	case SortByTitle:
		query = query.Order("title" + dir)
	case SortByPriority:
		query = query.Order(priorityOrderExpr + dir)
	default:
		query = query.Order("created_at ASC")
	}

	var tasks []*Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID retrieves a task by its id.
func (r *Repository) FindByID(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Save persists a task, inserting it on first save and updating it on
// subsequent saves. GORM maintains CreatedAt and UpdatedAt.
func (r *Repository) Save(ctx context.Context, task *Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// DeleteByID removes a task permanently.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ExistsByID reports whether a task exists for the given id.
func (r *Repository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return count > 0, nil
}
