package employee

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Employee is a workforce member. ExternalID references the identity
// provider account and is unique across employees; Role is fixed at
// creation. Child records (qualifications, trainings, skills) live in
// their own collections keyed back by employeeId.
type Employee struct {
	ID              uuid.UUID `json:"id"`
	ExternalID      string    `json:"externalId"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	CellNumber      string    `json:"cellNumber"`
	Profession      string    `json:"profession"`
	Role            Role      `json:"role"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
