package employee

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

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Employee, error) {
	doc, err := r.store.Get(ctx, store.CollectionEmployees, id)
	if err != nil {
		return Employee{}, err
	}
	return decode(doc)
}

func (r *Repository) GetByExternalID(ctx context.Context, externalID string) (Employee, error) {
	docs, err := r.store.Query(ctx, store.CollectionEmployees, "externalId", externalID)
	if err != nil {
		return Employee{}, err
	}
	if len(docs) == 0 {
		return Employee{}, store.ErrNotFound
	}
	return decode(docs[0])
}

func (r *Repository) List(ctx context.Context) ([]Employee, error) {
	docs, err := r.store.List(ctx, store.CollectionEmployees)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) ListActive(ctx context.Context) ([]Employee, error) {
	docs, err := r.store.Query(ctx, store.CollectionEmployees, "isActive", "true")
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) Create(ctx context.Context, e Employee) (Employee, error) {
	id, err := r.store.Create(ctx, store.CollectionEmployees, e)
	if err != nil {
		return Employee{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.store.Update(ctx, store.CollectionEmployees, id, fields)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, store.CollectionEmployees, id)
}

func decode(doc store.Document) (Employee, error) {
	var e Employee
	if err := json.Unmarshal(doc.Data, &e); err != nil {
		return Employee{}, fmt.Errorf("decode employee %s: %w", doc.ID, err)
	}
	e.ID = doc.ID
	e.CreatedAt = doc.CreatedAt
	e.UpdatedAt = doc.UpdatedAt
	return e, nil
}

func decodeAll(docs []store.Document) ([]Employee, error) {
	out := make([]Employee, 0, len(docs))
	for _, doc := range docs {
		e, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
