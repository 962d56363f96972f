package notify

import "skills-audit/internal/domain/employee"

type Kind string

const (
	KindQualificationApproved Kind = "qualification_approved"
	KindQualificationRejected Kind = "qualification_rejected"
	KindTrainingSuggested     Kind = "training_suggested"
	KindProfileUpdated        Kind = "profile_update"
)

// Message is a fully resolved outbound notification. RecipientExternalID
// addresses the push channel; RecipientEmail the mail channel.
type Message struct {
	Kind                Kind
	RecipientExternalID string
	RecipientEmail      string
	Title               string
	Body                string
	Data                map[string]string
}

// The builders below are pure: workflow event in, message out. Dispatch
// is a separate concern.

func QualificationApproved(emp employee.Employee, qualificationName string) Message {
	return Message{
		Kind:                KindQualificationApproved,
		RecipientExternalID: emp.ExternalID,
		RecipientEmail:      emp.Email,
		Title:               "Qualification Approved",
		Body:                "Your " + qualificationName + " has been approved by HR.",
		Data: map[string]string{
			"type":              string(KindQualificationApproved),
			"qualificationName": qualificationName,
		},
	}
}

func QualificationRejected(emp employee.Employee, qualificationName, reason string) Message {
	return Message{
		Kind:                KindQualificationRejected,
		RecipientExternalID: emp.ExternalID,
		RecipientEmail:      emp.Email,
		Title:               "Qualification Update",
		Body:                "Your " + qualificationName + " requires additional review. Please check details.",
		Data: map[string]string{
			"type":              string(KindQualificationRejected),
			"qualificationName": qualificationName,
			"reason":            reason,
		},
	}
}

func TrainingSuggested(emp employee.Employee, trainingName string) Message {
	return Message{
		Kind:                KindTrainingSuggested,
		RecipientExternalID: emp.ExternalID,
		RecipientEmail:      emp.Email,
		Title:               "New Training Suggested",
		Body:                "HR has suggested a new training: " + trainingName,
		Data: map[string]string{
			"type":         string(KindTrainingSuggested),
			"trainingName": trainingName,
		},
	}
}

func ProfileUpdated(emp employee.Employee, detail string) Message {
	return Message{
		Kind:                KindProfileUpdated,
		RecipientExternalID: emp.ExternalID,
		RecipientEmail:      emp.Email,
		Title:               "Profile Updated",
		Body:                detail,
		Data: map[string]string{
			"type": string(KindProfileUpdated),
		},
	}
}
