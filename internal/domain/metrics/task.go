package metrics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/domain/user"
)

const (
	TaskStatusOpen       = "open"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusCancelled  = "cancelled"
)

// Task rows are owned by the task service; the collector only reads them.
type Task struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Title            string     `gorm:"not null;column:title" json:"title"`
	Status           string     `gorm:"not null;column:status;index" json:"status"`
	Priority         int        `gorm:"column:priority;not null;default:3" json:"priority"`
	Category         string     `gorm:"column:category" json:"category"`
	IsOptional       bool       `gorm:"column:is_optional;not null;default:false" json:"is_optional"`
	EstimatedMinutes int        `gorm:"column:estimated_minutes;not null;default:0" json:"estimated_minutes"`
	DueAt            *time.Time `gorm:"column:due_at;index" json:"due_at,omitempty"`
	CompletedAt      *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Task) TableName() string { return "task" }

// Active reports whether the task still demands attention. Optional tasks are
// excluded from load accounting even while open.
func (t Task) Active() bool {
	if t.IsOptional {
		return false
	}
	return t.Status == TaskStatusOpen || t.Status == TaskStatusInProgress
}

func (t Task) OverdueAt(now time.Time) bool {
	return t.Active() && t.DueAt != nil && t.DueAt.Before(now)
}
