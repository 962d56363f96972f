package dto

import "time"

type CreateTrainingRequest struct {
	EmployeeID   string     `json:"employeeId" validate:"required,uuid"`
	TrainingName string     `json:"trainingName" validate:"required"`
	Description  string     `json:"description"`
	Provider     string     `json:"provider"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

type SuggestTrainingRequest struct {
	EmployeeID   string     `json:"employeeId" validate:"required,uuid"`
	TrainingName string     `json:"trainingName" validate:"required"`
	Description  string     `json:"description"`
	Provider     string     `json:"provider"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

type UpdateTrainingRequest struct {
	TrainingName *string    `json:"trainingName" validate:"omitempty,min=1"`
	Description  *string    `json:"description"`
	Provider     *string    `json:"provider"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Status       *string    `json:"status" validate:"omitempty,oneof=not_started suggested in_progress completed"`
	Progress     *int       `json:"progress" validate:"omitempty,gte=0,lte=100"`
}
