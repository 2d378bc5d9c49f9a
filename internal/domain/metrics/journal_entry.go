package metrics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/domain/user"
)

const (
	JournalSourceDiary     = "diary"
	JournalSourceCheckin   = "checkin"
	JournalSourceCompanion = "companion"
)

// JournalEntry rows come from the journaling surfaces. Content is personal
// text: it is never serialized to API responses and the logger redacts it.
type JournalEntry struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Source     string    `gorm:"not null;column:source" json:"source"`
	Content    string    `gorm:"not null;column:content" json:"-"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;index" json:"recorded_at"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (JournalEntry) TableName() string { return "journal_entry" }
