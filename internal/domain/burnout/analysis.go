package burnout

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/pulsecheck-backend/internal/domain/metrics"
	"github.com/yungbote/pulsecheck-backend/internal/domain/user"
)

const (
	RiskLevelGreen  = "green"
	RiskLevelYellow = "yellow"
	RiskLevelRed    = "red"
)

const (
	DegradedReasonSentimentFallback = "sentiment_fallback"
	DegradedReasonRetrievalFallback = "retrieval_fallback"
)

// BurnoutAnalysis is one completed scoring run. Rows are immutable after the
// commit that creates them together with their recommendations; corrections
// are new rows, never updates.
type BurnoutAnalysis struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	SnapshotID uuid.UUID               `gorm:"type:uuid;not null;column:snapshot_id" json:"snapshot_id"`
	Snapshot   *metrics.MetricSnapshot `gorm:"foreignKey:SnapshotID;references:ID" json:"snapshot,omitempty"`

	FinalScore float64 `gorm:"column:final_score;not null" json:"final_score"`
	Level      string  `gorm:"column:level;not null;index" json:"level"`

	WorkloadScore float64 `gorm:"column:workload_score;not null" json:"workload_score"`
	TaskScore     float64 `gorm:"column:task_score;not null" json:"task_score"`
	TimeScore     float64 `gorm:"column:time_score;not null" json:"time_score"`
	MeetingScore  float64 `gorm:"column:meeting_score;not null" json:"meeting_score"`

	SentimentScore     float64 `gorm:"column:sentiment_score;not null" json:"sentiment_score"`
	SentimentPolarity  float64 `gorm:"column:sentiment_polarity;not null" json:"sentiment_polarity"`
	SentimentIntensity float64 `gorm:"column:sentiment_intensity;not null" json:"sentiment_intensity"`
	DominantEmotion    string  `gorm:"column:dominant_emotion" json:"dominant_emotion"`

	PrimaryIssues   datatypes.JSON `gorm:"type:jsonb;column:primary_issues" json:"primary_issues"`
	Degraded        bool           `gorm:"column:degraded;not null;default:false" json:"degraded"`
	DegradedReasons datatypes.JSON `gorm:"type:jsonb;column:degraded_reasons" json:"degraded_reasons"`

	Recommendations []Recommendation `gorm:"foreignKey:AnalysisID;references:ID" json:"recommendations,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (BurnoutAnalysis) TableName() string { return "burnout_analysis" }

func (a BurnoutAnalysis) PrimaryIssueLabels() []string {
	return decodeStringList(a.PrimaryIssues)
}

func (a BurnoutAnalysis) DegradedReasonList() []string {
	return decodeStringList(a.DegradedReasons)
}

func EncodeStringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
