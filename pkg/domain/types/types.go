package types

import (
	"github.com/google/uuid"
)

// RunID identifies one execution of the report pipeline
type RunID string

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// NewRunID creates a new RunID using UUID v7 so that IDs sort by creation time
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		return RunID(uuid.New().String())
	}
	return RunID(id.String())
}

// FormID is the xmlFormId of an ODK Central form
type FormID string

// String returns the string representation
func (id FormID) String() string {
	return string(id)
}

// InstanceID is the instance identifier (`__id`) of a submission
type InstanceID string

// String returns the string representation
func (id InstanceID) String() string {
	return string(id)
}

// RunStatus represents the state of a pipeline run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// String returns the string representation of the status
func (s RunStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s RunStatus) IsValid() bool {
	switch s {
	case RunStatusRunning, RunStatusSucceeded, RunStatusFailed:
		return true
	default:
		return false
	}
}

// SortOrder is the direction in which the daily table rows are ordered
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// String returns the string representation
func (o SortOrder) String() string {
	return string(o)
}

// IsValid checks if the order is one of the known directions
func (o SortOrder) IsValid() bool {
	return o == SortAscending || o == SortDescending
}
