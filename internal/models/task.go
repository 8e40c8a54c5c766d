package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TaskType string

const (
	TaskTypeSocial   TaskType = "social"
	TaskTypeSurvey   TaskType = "survey"
	TaskTypeReferral TaskType = "referral"
	TaskTypeVisit    TaskType = "visit"
)

// Task is an administrator-defined unit of work with a fixed one-time
// reward per user. Rewards are immutable once a task is published;
// changing them never touches past completions.
type Task struct {
	bun.BaseModel `bun:"table:task"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Description   string    `bun:"description" json:"description"`
	Type          TaskType  `bun:"type" json:"type"`
	Reward        float64   `bun:"reward" json:"reward"`
	Enabled       bool      `bun:"enabled" json:"-"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"-"`
}

type TaskCompletion struct {
	bun.BaseModel `bun:"table:task_completion"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        string    `bun:"user_id" json:"user_id"`
	TaskID        int64     `bun:"task_id" json:"task_id"`
	CompletedAt   time.Time `bun:"completed_at,default:current_timestamp" json:"completed_at"`
}
