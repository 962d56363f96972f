package skill

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

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Skill, error) {
	doc, err := r.store.Get(ctx, store.CollectionSkills, id)
	if err != nil {
		return Skill{}, err
	}
	return decode(doc)
}

func (r *Repository) List(ctx context.Context) ([]Skill, error) {
	docs, err := r.store.List(ctx, store.CollectionSkills)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Skill, error) {
	docs, err := r.store.Query(ctx, store.CollectionSkills, "employeeId", employeeID.String())
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

func (r *Repository) Create(ctx context.Context, s Skill) (Skill, error) {
	id, err := r.store.Create(ctx, store.CollectionSkills, s)
	if err != nil {
		return Skill{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.store.Update(ctx, store.CollectionSkills, id, fields)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, store.CollectionSkills, id)
}

func decode(doc store.Document) (Skill, error) {
	var s Skill
	if err := json.Unmarshal(doc.Data, &s); err != nil {
		return Skill{}, fmt.Errorf("decode skill %s: %w", doc.ID, err)
	}
	s.ID = doc.ID
	s.CreatedAt = doc.CreatedAt
	s.UpdatedAt = doc.UpdatedAt
	return s, nil
}

func decodeAll(docs []store.Document) ([]Skill, error) {
	out := make([]Skill, 0, len(docs))
	for _, doc := range docs {
		s, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
