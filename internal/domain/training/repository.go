package training

import (
	"context"
	"encoding/json"
	"fmt"

	"skills-audit/internal/store"

	"github.com/google/uuid"
)

type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Training, error) {
	doc, err := r.store.Get(ctx, store.CollectionTrainings, id)
	if err != nil {
		return Training{}, err
	}
	return decode(doc)
}

func (r *Repository) List(ctx context.Context) ([]Training, error) {
	docs, err := r.store.List(ctx, store.CollectionTrainings)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Training, error) {
	docs, err := r.store.Query(ctx, store.CollectionTrainings, "employeeId", employeeID.String())
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) ListByStatus(ctx context.Context, status Status) ([]Training, error) {
	docs, err := r.store.Query(ctx, store.CollectionTrainings, "status", string(status))
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) Create(ctx context.Context, t Training) (Training, error) {
	id, err := r.store.Create(ctx, store.CollectionTrainings, t)
	if err != nil {
		return Training{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.store.Update(ctx, store.CollectionTrainings, id, fields)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, store.CollectionTrainings, id)
}

func decode(doc store.Document) (Training, error) {
	var t Training
	if err := json.Unmarshal(doc.Data, &t); err != nil {
		return Training{}, fmt.Errorf("decode training %s: %w", doc.ID, err)
	}
	t.ID = doc.ID
	t.CreatedAt = doc.CreatedAt
	t.UpdatedAt = doc.UpdatedAt
	return t, nil
}

func decodeAll(docs []store.Document) ([]Training, error) {
	out := make([]Training, 0, len(docs))
	for _, doc := range docs {
		t, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
