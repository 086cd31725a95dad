package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DispatchLogModel is the database model for dispatch audit entries
type DispatchLogModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	DispatchID  string `gorm:"index"`
	RequestName string `gorm:"not null"`
	Kind        string `gorm:"not null"`
	Outcome     string `gorm:"not null"`
	Error       string
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (DispatchLogModel) TableName() string {
	return "dispatch_logs"
}

// DispatchLogEntry is a dispatch audit record
type DispatchLogEntry struct {
	DispatchID  string
	RequestName string
	Kind        string
	Outcome     string
	Error       string
	CreatedAt   time.Time
}

// DispatchLogRepository defines persistence operations for dispatch audit entries
type DispatchLogRepository interface {
	Record(ctx context.Context, entry DispatchLogEntry) error
	Recent(ctx context.Context, limit int) ([]DispatchLogEntry, error)
	RecentWithOffset(ctx context.Context, limit, offset int) ([]DispatchLogEntry, error)
}

// GormDispatchLogRepository implements DispatchLogRepository using GORM
type GormDispatchLogRepository struct {
	db *gorm.DB
}

// NewGormDispatchLogRepository creates a new GORM dispatch log repository
func NewGormDispatchLogRepository(db *gorm.DB) *GormDispatchLogRepository {
	return &GormDispatchLogRepository{db: db}
}

// Record persists a dispatch audit entry
func (r *GormDispatchLogRepository) Record(ctx context.Context, entry DispatchLogEntry) error {
	model := DispatchLogModel{
		DispatchID:  entry.DispatchID,
		RequestName: entry.RequestName,
		Kind:        entry.Kind,
		Outcome:     entry.Outcome,
		Error:       entry.Error,
		CreatedAt:   entry.CreatedAt,
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to record dispatch log: %w", result.Error)
	}
	return nil
}

// Recent retrieves the most recent dispatch entries, newest first
func (r *GormDispatchLogRepository) Recent(ctx context.Context, limit int) ([]DispatchLogEntry, error) {
	return r.RecentWithOffset(ctx, limit, 0)
}

// RecentWithOffset retrieves a page of recent dispatch entries, newest first
func (r *GormDispatchLogRepository) RecentWithOffset(ctx context.Context, limit, offset int) ([]DispatchLogEntry, error) {
	var models []DispatchLogModel
	result := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to query dispatch logs: %w", result.Error)
	}

	entries := make([]DispatchLogEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, DispatchLogEntry{
			DispatchID:  model.DispatchID,
			RequestName: model.RequestName,
			Kind:        model.Kind,
			Outcome:     model.Outcome,
			Error:       model.Error,
			CreatedAt:   model.CreatedAt,
		})
	}

	return entries, nil
}
