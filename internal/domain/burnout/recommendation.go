package burnout

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/domain/user"
)

const (
	RecommendationStatusPending = "pending"
	RecommendationStatusApplied = "applied"
	RecommendationStatusSkipped = "skipped"
)

// Recommendation is one generated suggestion tied to an analysis and the
// strategy that grounded it. The pipeline only ever creates pending rows;
// status transitions come from the presentation layer. Regeneration
// soft-deletes superseded pending rows, so resolved rows survive as history.
type Recommendation struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	AnalysisID uuid.UUID        `gorm:"type:uuid;not null;column:analysis_id;index" json:"analysis_id"`
	Analysis   *BurnoutAnalysis `gorm:"constraint:OnDelete:CASCADE;foreignKey:AnalysisID;references:ID" json:"-"`

	StrategyID uuid.UUID `gorm:"type:uuid;not null;column:strategy_id" json:"strategy_id"`
	Strategy   *Strategy `gorm:"foreignKey:StrategyID;references:ID" json:"strategy,omitempty"`

	Title          string         `gorm:"not null;column:title" json:"title"`
	Description    string         `gorm:"not null;column:description" json:"description"`
	Rationale      string         `gorm:"column:rationale" json:"rationale"`
	ActionSteps    datatypes.JSON `gorm:"type:jsonb;column:action_steps" json:"action_steps"`
	RelevanceScore float64        `gorm:"column:relevance_score;not null" json:"relevance_score"`
	Status         string         `gorm:"column:status;not null;default:pending;index" json:"status"`
	Degraded       bool           `gorm:"column:degraded;not null;default:false" json:"degraded"`
	ResolvedAt     *time.Time     `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Recommendation) TableName() string { return "recommendation" }

func (r Recommendation) ActionStepList() []string {
	return decodeStringList(r.ActionSteps)
}

// ValidStatusTransition permits only pending → applied|skipped.
func ValidStatusTransition(from, to string) bool {
	if from != RecommendationStatusPending {
		return false
	}
	return to == RecommendationStatusApplied || to == RecommendationStatusSkipped
}
