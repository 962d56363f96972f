package workflow

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/training"
	"skills-audit/internal/notify"

	"github.com/google/uuid"
)

// transitions is the enforced status graph. Self-loops are not listed
// and therefore rejected; completed is terminal.
var transitions = map[training.Status][]training.Status{
	training.StatusNotStarted: {training.StatusSuggested, training.StatusInProgress},
	training.StatusSuggested:  {training.StatusInProgress},
	training.StatusInProgress: {training.StatusCompleted},
}

func canTransition(from, to training.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type TrainingService struct {
	trainings *training.Repository
	employees *employee.Repository
	notifier  *notify.Notifier
	cache     Invalidator
	logger    *log.Logger
}

func NewTrainingService(
	trainings *training.Repository,
	employees *employee.Repository,
	notifier *notify.Notifier,
	cache Invalidator,
	logger *log.Logger,
) *TrainingService {
	if logger == nil {
		logger = log.Default()
	}
	return &TrainingService{
		trainings: trainings,
		employees: employees,
		notifier:  notifier,
		cache:     cache,
		logger:    logger,
	}
}

type SuggestTrainingInput struct {
	EmployeeID  uuid.UUID
	Name        string
	Description string
	Provider    string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Suggest creates a training in the suggested state on behalf of the
// acting admin and notifies the employee exactly once.
func (s *TrainingService) Suggest(ctx context.Context, in SuggestTrainingInput, actor Actor) (training.Training, error) {
	if strings.TrimSpace(in.Name) == "" {
		return training.Training{}, fmt.Errorf("%w: training name is required", ErrValidation)
	}

	emp, err := s.employees.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return training.Training{}, mapDependency(err)
	}

	t, err := s.trainings.Create(ctx, training.Training{
		EmployeeID:  in.EmployeeID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Provider:    in.Provider,
		Status:      training.StatusSuggested,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Progress:    0,
		SuggestedBy: actor.EmployeeID.String(),
	})
	if err != nil {
		return training.Training{}, mapStoreErr(err)
	}

	invalidate(ctx, s.cache)
	s.notifier.Dispatch(ctx, notify.TrainingSuggested(emp, t.Name))
	s.logger.Printf("training suggested | id=%s employee=%s by=%s", t.ID, in.EmployeeID, actor.EmployeeID)
	return t, nil
}

type CreateTrainingInput struct {
	EmployeeID  uuid.UUID
	Name        string
	Description string
	Provider    string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *TrainingService) Create(ctx context.Context, in CreateTrainingInput) (training.Training, error) {
	if strings.TrimSpace(in.Name) == "" {
		return training.Training{}, fmt.Errorf("%w: training name is required", ErrValidation)
	}
	if _, err := s.employees.GetByID(ctx, in.EmployeeID); err != nil {
		return training.Training{}, mapDependency(err)
	}

	t, err := s.trainings.Create(ctx, training.Training{
		EmployeeID:  in.EmployeeID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Provider:    in.Provider,
		Status:      training.StatusNotStarted,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Progress:    0,
	})
	if err != nil {
		return training.Training{}, mapStoreErr(err)
	}
	invalidate(ctx, s.cache)
	return t, nil
}

type UpdateTrainingInput struct {
	Name        *string
	Description *string
	Provider    *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *training.Status
	Progress    *int
}

// Update applies a free-form edit gated by the transition table.
// Completing a training pins progress to 100 and stamps the completion
// date; outside the completed state progress stays below 100. Later
// edits to a completed training leave its completion fields untouched.
func (s *TrainingService) Update(ctx context.Context, id uuid.UUID, in UpdateTrainingInput) (training.Training, error) {
	t, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		return training.Training{}, mapStoreErr(err)
	}

	fields := make(map[string]any)

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return training.Training{}, fmt.Errorf("%w: training name is required", ErrValidation)
		}
		fields["trainingName"] = name
		t.Name = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
		t.Description = *in.Description
	}
	if in.Provider != nil {
		fields["provider"] = *in.Provider
		t.Provider = *in.Provider
	}
	if in.StartDate != nil {
		fields["startDate"] = *in.StartDate
		t.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		fields["endDate"] = *in.EndDate
		t.EndDate = in.EndDate
	}

	newStatus := t.Status
	if in.Status != nil && *in.Status != t.Status {
		if !in.Status.Valid() {
			return training.Training{}, fmt.Errorf("%w: unknown training status %q", ErrValidation, *in.Status)
		}
		if !canTransition(t.Status, *in.Status) {
			return training.Training{}, fmt.Errorf("%w: cannot move training from %s to %s", ErrValidation, t.Status, *in.Status)
		}
		newStatus = *in.Status
		fields["status"] = newStatus
	}

	completing := newStatus == training.StatusCompleted && t.Status != training.StatusCompleted
	if completing {
		now := time.Now().UTC()
		fields["progress"] = 100
		fields["completionDate"] = now
		t.Progress = 100
		t.CompletionDate = &now
	} else if in.Progress != nil {
		p := *in.Progress
		if p < 0 || p > 100 {
			return training.Training{}, fmt.Errorf("%w: progress must be within 0-100", ErrValidation)
		}
		if newStatus == training.StatusCompleted {
			if p != 100 {
				return training.Training{}, fmt.Errorf("%w: completed training keeps progress pinned to 100", ErrValidation)
			}
		} else {
			if p == 100 {
				return training.Training{}, fmt.Errorf("%w: progress 100 requires completed status", ErrValidation)
			}
			fields["progress"] = p
			t.Progress = p
		}
	}

	if len(fields) == 0 {
		return t, nil
	}

	if err := s.trainings.Update(ctx, id, fields); err != nil {
		return training.Training{}, mapStoreErr(err)
	}

	t.Status = newStatus
	t.UpdatedAt = time.Now().UTC()
	invalidate(ctx, s.cache)
	return t, nil
}

func (s *TrainingService) GetByID(ctx context.Context, id uuid.UUID) (training.Training, error) {
	t, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		return training.Training{}, mapStoreErr(err)
	}
	return t, nil
}

// TrainingWithEmployee pairs a training with its owner for list views.
type TrainingWithEmployee struct {
	Training training.Training
	Employee employee.Employee
}

// ListAll joins every training with its employee in memory, newest
// first. Trainings whose employee is gone are skipped.
func (s *TrainingService) ListAll(ctx context.Context) ([]TrainingWithEmployee, error) {
	items, err := s.trainings.List(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return s.joinEmployees(ctx, items)
}

// ListByStatus narrows the joined view to one status.
func (s *TrainingService) ListByStatus(ctx context.Context, status training.Status) ([]TrainingWithEmployee, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown training status %q", ErrValidation, status)
	}
	items, err := s.trainings.ListByStatus(ctx, status)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return s.joinEmployees(ctx, items)
}

func (s *TrainingService) joinEmployees(ctx context.Context, items []training.Training) ([]TrainingWithEmployee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	byID := make(map[uuid.UUID]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	out := make([]TrainingWithEmployee, 0, len(items))
	for _, t := range items {
		emp, ok := byID[t.EmployeeID]
		if !ok {
			s.logger.Printf("training without employee skipped | training=%s employee=%s", t.ID, t.EmployeeID)
			continue
		}
		out = append(out, TrainingWithEmployee{Training: t, Employee: emp})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Training.CreatedAt.After(out[j].Training.CreatedAt)
	})
	return out, nil
}

func (s *TrainingService) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]training.Training, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, mapStoreErr(err)
	}
	items, err := s.trainings.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *TrainingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trainings.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	invalidate(ctx, s.cache)
	return nil
}
