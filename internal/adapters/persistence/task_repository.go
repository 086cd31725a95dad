package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TaskModel is the database model for tasks
type TaskModel struct {
	ID        string `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Priority  int
	Status    string `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// TaskRepository defines persistence operations for tasks
type TaskRepository interface {
	Save(ctx context.Context, task *TaskModel) error
	FindByID(ctx context.Context, id string) (*TaskModel, error)
	List(ctx context.Context) ([]TaskModel, error)
}

// GormTaskRepository implements TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM task repository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// Save persists a task (upsert: create or update)
func (r *GormTaskRepository) Save(ctx context.Context, task *TaskModel) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return fmt.Errorf("failed to save task: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*TaskModel, error) {
	var model TaskModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("task not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find task: %w", result.Error)
	}

	return &model, nil
}

// List retrieves all tasks ordered by creation time
func (r *GormTaskRepository) List(ctx context.Context) ([]TaskModel, error) {
	var models []TaskModel
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", result.Error)
	}
	return models, nil
}
