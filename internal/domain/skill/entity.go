package skill

import (
	"time"

	"github.com/google/uuid"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

// Skill belongs to one employee. Category is a free-text grouping key
// used by the category distribution.
type Skill struct {
	ID              uuid.UUID   `json:"id"`
	EmployeeID      uuid.UUID   `json:"employeeId"`
	Name            string      `json:"skillName"`
	Category        string      `json:"category"`
	Proficiency     Proficiency `json:"proficiencyLevel"`
	YearsExperience int         `json:"yearsOfExperience,omitempty"`
	LastUsed        *time.Time  `json:"lastUsed,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
