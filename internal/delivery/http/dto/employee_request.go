package dto

type CreateEmployeeRequest struct {
	ExternalID string `json:"externalId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	CellNumber string `json:"cellNumber"`
	Profession string `json:"profession"`
	Role       string `json:"role" validate:"omitempty,oneof=employee admin"`
}

type UpdateEmployeeRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Email      *string `json:"email" validate:"omitempty,email"`
	CellNumber *string `json:"cellNumber"`
	Profession *string `json:"profession"`
	IsActive   *bool   `json:"isActive"`
}
