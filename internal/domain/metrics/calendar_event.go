package metrics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/domain/user"
)

// CalendarEvent rows are owned by the calendar sync service; read-only here.
type CalendarEvent struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Title         string    `gorm:"not null;column:title" json:"title"`
	Category      string    `gorm:"column:category" json:"category"`
	StartsAt      time.Time `gorm:"column:starts_at;not null;index" json:"starts_at"`
	EndsAt        time.Time `gorm:"column:ends_at;not null" json:"ends_at"`
	AttendeeCount int       `gorm:"column:attendee_count;not null;default:0" json:"attendee_count"`
	IsMeeting     bool      `gorm:"column:is_meeting;not null;default:false" json:"is_meeting"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CalendarEvent) TableName() string { return "calendar_event" }

// Meeting treats explicitly flagged events and anything with two or more
// attendees as meetings.
func (e CalendarEvent) Meeting() bool {
	return e.IsMeeting || e.AttendeeCount >= 2
}

func (e CalendarEvent) Duration() time.Duration {
	if e.EndsAt.Before(e.StartsAt) {
		return 0
	}
	return e.EndsAt.Sub(e.StartsAt)
}
