package user

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserProfile carries the work-context facts the ranker needs: whether the
// user can hand tasks off and whether they run a team. Maintained by the
// profile service; read-only here.
type UserProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Role        string         `gorm:"column:role" json:"role"`
	Seniority   string         `gorm:"column:seniority" json:"seniority"`
	CanDelegate bool           `gorm:"column:can_delegate;not null;default:false" json:"can_delegate"`
	ManagesTeam bool           `gorm:"column:manages_team;not null;default:false" json:"manages_team"`
	Constraints datatypes.JSON `gorm:"type:jsonb;column:constraints" json:"constraints"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserProfile) TableName() string { return "user_profile" }

// ProfileConstraints is the decoded shape of UserProfile.Constraints.
type ProfileConstraints struct {
	MaxDailyMeetingHours float64  `json:"max_daily_meeting_hours,omitempty"`
	ProtectedHours       []string `json:"protected_hours,omitempty"`
}

func DecodeProfileConstraints(raw datatypes.JSON) ProfileConstraints {
	var out ProfileConstraints
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}

func EncodeProfileConstraints(c ProfileConstraints) datatypes.JSON {
	raw, err := json.Marshal(c)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
