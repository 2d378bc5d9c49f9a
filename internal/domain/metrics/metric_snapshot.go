package metrics

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/pulsecheck-backend/internal/domain/user"
)

// MetricSnapshot is one analysis run's quantitative summary of a user's day.
// One row per (user, period): a re-run over the same period overwrites its
// row, and the baseline learner reads up to 30 of them as history.
type MetricSnapshot struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index:idx_metric_snapshot_user_period,unique" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	PeriodStart time.Time `gorm:"column:period_start;not null;index:idx_metric_snapshot_user_period,unique" json:"period_start"`
	PeriodEnd   time.Time `gorm:"column:period_end;not null" json:"period_end"`

	ActiveTasks     int     `gorm:"column:active_tasks;not null;default:0" json:"active_tasks"`
	OverdueTasks    int     `gorm:"column:overdue_tasks;not null;default:0" json:"overdue_tasks"`
	WorkHours       float64 `gorm:"column:work_hours;not null;default:0" json:"work_hours"`
	MeetingCount    int     `gorm:"column:meeting_count;not null;default:0" json:"meeting_count"`
	MeetingHours    float64 `gorm:"column:meeting_hours;not null;default:0" json:"meeting_hours"`
	BackToBackCount int     `gorm:"column:back_to_back_count;not null;default:0" json:"back_to_back_count"`

	// Minutes after midnight of the day's earliest observed activity. Nil when
	// the day had no timed activity; the work-pattern median skips those days.
	FirstActivityMinutes *int `gorm:"column:first_activity_minutes" json:"first_activity_minutes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (MetricSnapshot) TableName() string { return "metric_snapshot" }

// Valid rejects rows that cannot have been produced by the collector. The
// baseline learner drops invalid history instead of failing.
func (s MetricSnapshot) Valid() bool {
	if s.ActiveTasks < 0 || s.OverdueTasks < 0 || s.MeetingCount < 0 || s.BackToBackCount < 0 {
		return false
	}
	if s.WorkHours < 0 || s.MeetingHours < 0 {
		return false
	}
	if s.PeriodEnd.Before(s.PeriodStart) {
		return false
	}
	if s.FirstActivityMinutes != nil && (*s.FirstActivityMinutes < 0 || *s.FirstActivityMinutes >= 24*60) {
		return false
	}
	return true
}
