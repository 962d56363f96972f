package training

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusSuggested  Status = "suggested"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusSuggested, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Training belongs to one employee. Progress is 0-100 and reaches 100
// only when the training is completed. SuggestedBy records the admin who
// created it through the suggestion flow.
type Training struct {
	ID             uuid.UUID  `json:"id"`
	EmployeeID     uuid.UUID  `json:"employeeId"`
	Name           string     `json:"trainingName"`
	Description    string     `json:"description,omitempty"`
	Provider       string     `json:"provider,omitempty"`
	Status         Status     `json:"status"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	Progress       int        `json:"progress"`
	SuggestedBy    string     `json:"suggestedBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
