package qualification

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

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Qualification, error) {
	doc, err := r.store.Get(ctx, store.CollectionQualifications, id)
	if err != nil {
		return Qualification{}, err
	}
	return decode(doc)
}

func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Qualification, error) {
	docs, err := r.store.Query(ctx, store.CollectionQualifications, "employeeId", employeeID.String())
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) ListByStatus(ctx context.Context, status Status) ([]Qualification, error) {
	docs, err := r.store.Query(ctx, store.CollectionQualifications, "status", string(status))
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) ListPending(ctx context.Context) ([]Qualification, error) {
	return r.ListByStatus(ctx, StatusPending)
}

func (r *Repository) Create(ctx context.Context, q Qualification) (Qualification, error) {
	id, err := r.store.Create(ctx, store.CollectionQualifications, q)
	if err != nil {
		return Qualification{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.store.Update(ctx, store.CollectionQualifications, id, fields)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, store.CollectionQualifications, id)
}

func decode(doc store.Document) (Qualification, error) {
	var q Qualification
	if err := json.Unmarshal(doc.Data, &q); err != nil {
		return Qualification{}, fmt.Errorf("decode qualification %s: %w", doc.ID, err)
	}
	q.ID = doc.ID
	q.CreatedAt = doc.CreatedAt
	q.UpdatedAt = doc.UpdatedAt
	return q, nil
}

func decodeAll(docs []store.Document) ([]Qualification, error) {
	out := make([]Qualification, 0, len(docs))
	for _, doc := range docs {
		q, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
