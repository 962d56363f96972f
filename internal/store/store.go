package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection names. Each collection is independent; there are no native
// joins or cross-collection transactions.
const (
	CollectionEmployees      = "employees"
	CollectionQualifications = "qualifications"
	CollectionTrainings      = "trainings"
	CollectionSkills         = "skills"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnavailable = errors.New("record store unavailable")
)

// Document is one record in a collection. Data holds the JSON body;
// CreatedAt/UpdatedAt are maintained by the store on every write.
type Document struct {
	ID        uuid.UUID
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the uniform access layer over the record collections. Query
// supports single-field equality only, matching the backing document
// store; result ordering is the store default. Implementations must be
// safe for concurrent use and must not retry on failure; a failed call
// surfaces as ErrUnavailable and retry policy stays with the caller.
type Store interface {
	Get(ctx context.Context, collection string, id uuid.UUID) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Query(ctx context.Context, collection, field, value string) ([]Document, error)
	Create(ctx context.Context, collection string, record any) (uuid.UUID, error)
	Update(ctx context.Context, collection string, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, collection string, id uuid.UUID) error
}
