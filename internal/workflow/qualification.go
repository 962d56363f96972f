package workflow

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"skills-audit/internal/blob"
	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/qualification"
	"skills-audit/internal/notify"

	"github.com/google/uuid"
)

// QualificationService owns the pending → approved|rejected workflow.
// The store write always happens before the notification is dispatched;
// a lost notification is logged and never rolls the write back.
type QualificationService struct {
	quals     *qualification.Repository
	employees *employee.Repository
	notifier  *notify.Notifier
	blobs     blob.Storage
	cache     Invalidator
	logger    *log.Logger
}

func NewQualificationService(
	quals *qualification.Repository,
	employees *employee.Repository,
	notifier *notify.Notifier,
	blobs blob.Storage,
	cache Invalidator,
	logger *log.Logger,
) *QualificationService {
	if logger == nil {
		logger = log.Default()
	}
	if blobs == nil {
		blobs = blob.Noop{}
	}
	return &QualificationService{
		quals:     quals,
		employees: employees,
		notifier:  notifier,
		blobs:     blobs,
		cache:     cache,
		logger:    logger,
	}
}

type CreateQualificationInput struct {
	EmployeeID     uuid.UUID
	Institution    string
	Name           string
	YearObtained   int
	CertificateURL string
}

func (s *QualificationService) Create(ctx context.Context, in CreateQualificationInput) (qualification.Qualification, error) {
	if strings.TrimSpace(in.Name) == "" {
		return qualification.Qualification{}, fmt.Errorf("%w: qualification name is required", ErrValidation)
	}

	if _, err := s.employees.GetByID(ctx, in.EmployeeID); err != nil {
		return qualification.Qualification{}, mapDependency(err)
	}

	q, err := s.quals.Create(ctx, qualification.Qualification{
		EmployeeID:     in.EmployeeID,
		Institution:    strings.TrimSpace(in.Institution),
		Name:           strings.TrimSpace(in.Name),
		YearObtained:   in.YearObtained,
		CertificateURL: in.CertificateURL,
		Status:         qualification.StatusPending,
	})
	if err != nil {
		return qualification.Qualification{}, mapStoreErr(err)
	}

	invalidate(ctx, s.cache)
	return q, nil
}

// Approve moves a pending qualification to approved and records the
// acting admin. Re-approving an approved record is a no-op; approving a
// rejected one fails, transitions are one-way out of pending.
func (s *QualificationService) Approve(ctx context.Context, id uuid.UUID, actor Actor) (qualification.Qualification, error) {
	q, err := s.quals.GetByID(ctx, id)
	if err != nil {
		return qualification.Qualification{}, mapStoreErr(err)
	}

	emp, err := s.employees.GetByID(ctx, q.EmployeeID)
	if err != nil {
		return qualification.Qualification{}, mapDependency(err)
	}

	switch q.Status {
	case qualification.StatusApproved:
		return q, nil
	case qualification.StatusRejected:
		return qualification.Qualification{}, fmt.Errorf("%w: qualification already rejected", ErrValidation)
	}

	now := time.Now().UTC()
	err = s.quals.Update(ctx, id, map[string]any{
		"status":     qualification.StatusApproved,
		"approvedBy": actor.EmployeeID.String(),
		"approvedAt": now,
	})
	if err != nil {
		return qualification.Qualification{}, mapStoreErr(err)
	}

	q.Status = qualification.StatusApproved
	q.ApprovedBy = actor.EmployeeID.String()
	q.ApprovedAt = &now
	q.UpdatedAt = now

	invalidate(ctx, s.cache)
	s.notifier.Dispatch(ctx, notify.QualificationApproved(emp, q.Name))
	s.logger.Printf("qualification approved | id=%s approver=%s", id, actor.EmployeeID)
	return q, nil
}

// Reject moves a pending qualification to rejected with a mandatory
// reason. Repeating the identical rejection is a no-op.
func (s *QualificationService) Reject(ctx context.Context, id uuid.UUID, reason string, actor Actor) (qualification.Qualification, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return qualification.Qualification{}, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	q, err := s.quals.GetByID(ctx, id)
	if err != nil {
		return qualification.Qualification{}, mapStoreErr(err)
	}

	emp, err := s.employees.GetByID(ctx, q.EmployeeID)
	if err != nil {
		return qualification.Qualification{}, mapDependency(err)
	}

	switch q.Status {
	case qualification.StatusRejected:
		if q.RejectionReason == reason {
			return q, nil
		}
		return qualification.Qualification{}, fmt.Errorf("%w: qualification already rejected", ErrValidation)
	case qualification.StatusApproved:
		return qualification.Qualification{}, fmt.Errorf("%w: qualification already approved", ErrValidation)
	}

	err = s.quals.Update(ctx, id, map[string]any{
		"status":          qualification.StatusRejected,
		"rejectionReason": reason,
	})
	if err != nil {
		return qualification.Qualification{}, mapStoreErr(err)
	}

	q.Status = qualification.StatusRejected
	q.RejectionReason = reason
	q.UpdatedAt = time.Now().UTC()

	invalidate(ctx, s.cache)
	s.notifier.Dispatch(ctx, notify.QualificationRejected(emp, q.Name, reason))
	s.logger.Printf("qualification rejected | id=%s actor=%s reason=%q", id, actor.EmployeeID, reason)
	return q, nil
}

func (s *QualificationService) GetByID(ctx context.Context, id uuid.UUID) (qualification.Qualification, error) {
	q, err := s.quals.GetByID(ctx, id)
	if err != nil {
		return qualification.Qualification{}, mapStoreErr(err)
	}
	return q, nil
}

func (s *QualificationService) ListPending(ctx context.Context) ([]qualification.Qualification, error) {
	items, err := s.quals.ListPending(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return items, nil
}

// PendingApproval pairs a pending qualification with its owner for the
// approvals queue. Qualifications whose employee is gone are skipped.
type PendingApproval struct {
	Qualification qualification.Qualification
	Employee      employee.Employee
}

func (s *QualificationService) ListPendingWithEmployees(ctx context.Context) ([]PendingApproval, error) {
	pending, err := s.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PendingApproval, 0, len(pending))
	for _, q := range pending {
		emp, err := s.employees.GetByID(ctx, q.EmployeeID)
		if err != nil {
			s.logger.Printf("pending approval skipped | qualification=%s employee=%s err=%v", q.ID, q.EmployeeID, err)
			continue
		}
		out = append(out, PendingApproval{Qualification: q, Employee: emp})
	}
	return out, nil
}

func (s *QualificationService) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]qualification.Qualification, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, mapStoreErr(err)
	}
	items, err := s.quals.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Delete releases the certificate blob before removing the record. The
// blob delete is best-effort cleanup; the store delete is authoritative
// and proceeds even when the blob service fails.
func (s *QualificationService) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := s.quals.GetByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}

	if q.CertificateURL != "" {
		if err := s.blobs.Delete(ctx, q.CertificateURL); err != nil {
			s.logger.Printf("certificate blob delete failed | qualification=%s ref=%s err=%v", id, q.CertificateURL, err)
		}
	}

	if err := s.quals.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	invalidate(ctx, s.cache)
	return nil
}

func mapDependency(err error) error {
	if err == nil {
		return nil
	}
	mapped := mapStoreErr(err)
	if mapped == ErrNotFound {
		return fmt.Errorf("%w: owning employee not found", ErrDependencyMissing)
	}
	return mapped
}
