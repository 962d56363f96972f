package dto

type CreateQualificationRequest struct {
	EmployeeID        string `json:"employeeId" validate:"required,uuid"`
	Institution       string `json:"institution"`
	QualificationName string `json:"qualificationName" validate:"required"`
	YearObtained      int    `json:"yearObtained" validate:"omitempty,gte=1900,lte=2100"`
	CertificateURL    string `json:"certificateUrl" validate:"omitempty,url"`
}

type RejectQualificationRequest struct {
	Reason string `json:"reason" validate:"required"`
}
