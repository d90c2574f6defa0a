package syncs

import (
	_ "embed"
	"time"

	"github.com/google/uuid"
)

// Schema creates the gymstats_sync table.
//
//go:embed schema.sql
var Schema string

type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerManual   Trigger = "manual"
	TriggerSchedule Trigger = "schedule"
)

// Sync is one snapshot refresh attempt. SnapshotID is nil and Error set
// when the attempt failed.
type Sync struct {
	ID         int        `json:"id"`
	SnapshotID *uuid.UUID `json:"snapshot_id,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	DurationMs int64      `json:"duration_ms"`
	Workouts   int        `json:"workouts"`
	Duplicates int        `json:"duplicates"`
	AuthMode   string     `json:"auth_mode"`
	Trigger    Trigger    `json:"trigger"`
	Error      *string    `json:"error,omitempty"`
}

func (s Sync) Failed() bool {
	return s.Error != nil
}
