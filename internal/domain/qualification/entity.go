package qualification

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Qualification belongs to one employee. Exactly one of
// {ApprovedBy+ApprovedAt} or {RejectionReason} is ever populated;
// transitions are one-way out of pending.
type Qualification struct {
	ID              uuid.UUID  `json:"id"`
	EmployeeID      uuid.UUID  `json:"employeeId"`
	Institution     string     `json:"institution"`
	Name            string     `json:"qualificationName"`
	YearObtained    int        `json:"yearObtained,omitempty"`
	CertificateURL  string     `json:"certificateUrl,omitempty"`
	Status          Status     `json:"status"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
