package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skills-audit/internal/database"

	"github.com/google/uuid"
)

// stubDB records the last Exec call; reads are not exercised here.
type stubDB struct {
	execQuery string
	execArgs  []any
	affected  int64
}

func (d *stubDB) Ping(context.Context) error { return nil }
func (d *stubDB) Close() error               { return nil }

func (d *stubDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	d.execQuery = query
	d.execArgs = args
	return d.affected, nil
}

func (d *stubDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *stubDB) QueryRow(context.Context, string, ...any) database.Row {
	return nil
}

func TestPostgres_UpdateLeavesCallerFieldsUntouched(t *testing.T) {
	db := &stubDB{affected: 1}
	s := NewPostgres(db, time.Second)

	fields := map[string]any{"trainingName": "Advanced Go"}
	if err := s.Update(context.Background(), CollectionTrainings, uuid.New(), fields); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(fields) != 1 {
		t.Fatalf("caller map grew to %d entries: %v", len(fields), fields)
	}
	if _, ok := fields["updatedAt"]; ok {
		t.Fatalf("updatedAt leaked into the caller map")
	}

	if len(db.execArgs) == 0 {
		t.Fatalf("expected an UPDATE to be issued")
	}
	patch, ok := db.execArgs[0].([]byte)
	if !ok {
		t.Fatalf("expected jsonb patch as first arg, got %T", db.execArgs[0])
	}
	var decoded map[string]any
	if err := json.Unmarshal(patch, &decoded); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	if decoded["trainingName"] != "Advanced Go" {
		t.Fatalf("expected trainingName in patch, got %v", decoded)
	}
	if _, ok := decoded["updatedAt"]; !ok {
		t.Fatalf("expected updatedAt stamped in the patch, got %v", decoded)
	}
}

func TestPostgres_UpdateMissingRecord(t *testing.T) {
	s := NewPostgres(&stubDB{affected: 0}, time.Second)

	err := s.Update(context.Background(), CollectionTrainings, uuid.New(), map[string]any{"x": 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
