// Package domain re-exports the persistent model types from their bounded
// contexts so callers can import one package.
package domain

import (
	"gorm.io/datatypes"

	"github.com/yungbote/pulsecheck-backend/internal/domain/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/domain/metrics"
	"github.com/yungbote/pulsecheck-backend/internal/domain/user"
)

type User = user.User
type UserProfile = user.UserProfile
type ProfileConstraints = user.ProfileConstraints

type Task = metrics.Task
type CalendarEvent = metrics.CalendarEvent
type JournalEntry = metrics.JournalEntry
type MetricSnapshot = metrics.MetricSnapshot

type BurnoutAnalysis = burnout.BurnoutAnalysis
type Recommendation = burnout.Recommendation
type Strategy = burnout.Strategy
type StrategyPrerequisites = burnout.StrategyPrerequisites

const (
	TaskStatusOpen       = metrics.TaskStatusOpen
	TaskStatusInProgress = metrics.TaskStatusInProgress
	TaskStatusDone       = metrics.TaskStatusDone
	TaskStatusCancelled  = metrics.TaskStatusCancelled

	JournalSourceDiary     = metrics.JournalSourceDiary
	JournalSourceCheckin   = metrics.JournalSourceCheckin
	JournalSourceCompanion = metrics.JournalSourceCompanion

	RiskLevelGreen  = burnout.RiskLevelGreen
	RiskLevelYellow = burnout.RiskLevelYellow
	RiskLevelRed    = burnout.RiskLevelRed

	DegradedReasonSentimentFallback = burnout.DegradedReasonSentimentFallback
	DegradedReasonRetrievalFallback = burnout.DegradedReasonRetrievalFallback

	RecommendationStatusPending = burnout.RecommendationStatusPending
	RecommendationStatusApplied = burnout.RecommendationStatusApplied
	RecommendationStatusSkipped = burnout.RecommendationStatusSkipped

	CategoryWorkloadManagement = burnout.CategoryWorkloadManagement
	CategoryTimeManagement     = burnout.CategoryTimeManagement
	CategoryMeetingManagement  = burnout.CategoryMeetingManagement
	CategoryStressManagement   = burnout.CategoryStressManagement
	CategoryRecovery           = burnout.CategoryRecovery
	CategoryDelegation         = burnout.CategoryDelegation
)

func Categories() []string { return burnout.Categories() }

func DecodeProfileConstraints(raw datatypes.JSON) ProfileConstraints {
	return user.DecodeProfileConstraints(raw)
}

func EncodeProfileConstraints(c ProfileConstraints) datatypes.JSON {
	return user.EncodeProfileConstraints(c)
}

func EncodeStringList(items []string) datatypes.JSON { return burnout.EncodeStringList(items) }

func DecodePrerequisites(raw datatypes.JSON) burnout.StrategyPrerequisites {
	return burnout.DecodePrerequisites(raw)
}

func EncodePrerequisites(p burnout.StrategyPrerequisites) datatypes.JSON {
	return burnout.EncodePrerequisites(p)
}

func ValidStatusTransition(from, to string) bool { return burnout.ValidStatusTransition(from, to) }
