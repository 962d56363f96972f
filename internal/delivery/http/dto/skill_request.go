package dto

import "time"

type CreateSkillRequest struct {
	EmployeeID        string     `json:"employeeId" validate:"required,uuid"`
	SkillName         string     `json:"skillName" validate:"required"`
	Category          string     `json:"category" validate:"required"`
	ProficiencyLevel  string     `json:"proficiencyLevel" validate:"required,oneof=beginner intermediate advanced expert"`
	YearsOfExperience int        `json:"yearsOfExperience" validate:"gte=0"`
	LastUsed          *time.Time `json:"lastUsed"`
}

type UpdateSkillRequest struct {
	SkillName         *string    `json:"skillName" validate:"omitempty,min=1"`
	Category          *string    `json:"category" validate:"omitempty,min=1"`
	ProficiencyLevel  *string    `json:"proficiencyLevel" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsOfExperience *int       `json:"yearsOfExperience" validate:"omitempty,gte=0"`
	LastUsed          *time.Time `json:"lastUsed"`
}
