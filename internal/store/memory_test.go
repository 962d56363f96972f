package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type testRecord struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
	IsActive bool   `json:"isActive"`
}

func TestMemory_CreateAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Create(ctx, CollectionEmployees, testRecord{Name: "Jo", Status: "pending"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	doc, err := m.Get(ctx, CollectionEmployees, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.ID != id {
		t.Fatalf("expected id %s, got %s", id, doc.ID)
	}
	if doc.CreatedAt.IsZero() || doc.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be stamped")
	}
	if fieldText(doc.Data, "id") != id.String() {
		t.Fatalf("expected id embedded in document body")
	}
}

func TestMemory_GetNotFound(t *testing.T) {
	m := NewMemory()
	if _, err := m.Get(context.Background(), CollectionEmployees, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_QueryEqualityOnly(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Create(ctx, CollectionQualifications, testRecord{Name: "a", Status: "pending"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.Create(ctx, CollectionQualifications, testRecord{Name: "b", Status: "approved"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.Create(ctx, CollectionQualifications, testRecord{Name: "c", Status: "pending"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	docs, err := m.Query(ctx, CollectionQualifications, "status", "pending")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 pending docs, got %d", len(docs))
	}
	// insertion order is preserved
	if fieldText(docs[0].Data, "name") != "a" || fieldText(docs[1].Data, "name") != "c" {
		t.Fatalf("expected insertion order a,c")
	}
}

func TestMemory_QueryNonStringField(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Create(ctx, CollectionEmployees, testRecord{Name: "x", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.Create(ctx, CollectionEmployees, testRecord{Name: "y", IsActive: false}); err != nil {
		t.Fatalf("create: %v", err)
	}

	docs, err := m.Query(ctx, CollectionEmployees, "isActive", "true")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(docs) != 1 || fieldText(docs[0].Data, "name") != "x" {
		t.Fatalf("expected only the active record")
	}
}

func TestMemory_UpdateMergesFields(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Create(ctx, CollectionTrainings, testRecord{Name: "go", Status: "not_started", Count: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := m.Update(ctx, CollectionTrainings, id, map[string]any{"status": "in_progress"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	doc, err := m.Get(ctx, CollectionTrainings, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fieldText(doc.Data, "status") != "in_progress" {
		t.Fatalf("expected merged status, got %q", fieldText(doc.Data, "status"))
	}
	// untouched fields survive the merge
	if fieldText(doc.Data, "name") != "go" {
		t.Fatalf("expected name to survive partial update")
	}
	if !doc.UpdatedAt.After(doc.CreatedAt) && !doc.UpdatedAt.Equal(doc.CreatedAt) {
		t.Fatalf("expected updatedAt to be maintained")
	}
}

func TestMemory_UpdateLeavesCallerFieldsUntouched(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Create(ctx, CollectionTrainings, testRecord{Name: "go"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fields := map[string]any{"status": "in_progress"}
	if err := m.Update(ctx, CollectionTrainings, id, fields); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("caller map grew to %d entries: %v", len(fields), fields)
	}
	if _, ok := fields["updatedAt"]; ok {
		t.Fatalf("updatedAt leaked into the caller map")
	}
}

func TestMemory_UpdateNotFound(t *testing.T) {
	m := NewMemory()
	err := m.Update(context.Background(), CollectionTrainings, uuid.New(), map[string]any{"status": "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Create(ctx, CollectionSkills, testRecord{Name: "sql"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := m.Delete(ctx, CollectionSkills, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, CollectionSkills, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := m.Delete(ctx, CollectionSkills, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	docs, err := m.List(ctx, CollectionSkills)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected empty collection, got %d", len(docs))
	}
}
