package burnout

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	CategoryWorkloadManagement = "workload_management"
	CategoryTimeManagement     = "time_management"
	CategoryMeetingManagement  = "meeting_management"
	CategoryStressManagement   = "stress_management"
	CategoryRecovery           = "recovery"
	CategoryDelegation         = "delegation"
)

// Strategy is a curated coping technique from the knowledge base. Rows and
// their vector-store embeddings are written by an offline ingestion process;
// at runtime the table is read-only.
type Strategy struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Category      string         `gorm:"not null;column:category;index" json:"category"`
	Title         string         `gorm:"not null;column:title" json:"title"`
	Description   string         `gorm:"not null;column:description" json:"description"`
	ActionSteps   datatypes.JSON `gorm:"type:jsonb;column:action_steps" json:"action_steps"`
	Prerequisites datatypes.JSON `gorm:"type:jsonb;column:prerequisites" json:"prerequisites"`
	Difficulty    int            `gorm:"column:difficulty;not null;default:3" json:"difficulty"`
	Embedded      bool           `gorm:"column:embedded;not null;default:false" json:"embedded"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Strategy) TableName() string { return "strategy" }

// StrategyPrerequisites is the decoded shape of Strategy.Prerequisites.
type StrategyPrerequisites struct {
	RequiresDelegation bool `json:"requires_delegation"`
	RequiresTeam       bool `json:"requires_team"`
}

func DecodePrerequisites(raw datatypes.JSON) StrategyPrerequisites {
	var out StrategyPrerequisites
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}

func EncodePrerequisites(p StrategyPrerequisites) datatypes.JSON {
	raw, err := json.Marshal(p)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}

func (s Strategy) PrerequisiteFlags() StrategyPrerequisites {
	return DecodePrerequisites(s.Prerequisites)
}

func (s Strategy) ActionStepList() []string {
	return decodeStringList(s.ActionSteps)
}

// Categories lists every valid strategy category in a stable order.
func Categories() []string {
	return []string{
		CategoryWorkloadManagement,
		CategoryTimeManagement,
		CategoryMeetingManagement,
		CategoryStressManagement,
		CategoryRecovery,
		CategoryDelegation,
	}
}
