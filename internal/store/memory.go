package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests and local development.
// Query matches the JSON text of the field, the same comparison the
// Postgres implementation performs with data->>field.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[uuid.UUID]Document
	order       map[string][]uuid.UUID
}

func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[uuid.UUID]Document),
		order:       make(map[string][]uuid.UUID),
	}
}

func (m *Memory) Get(_ context.Context, collection string, id uuid.UUID) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (m *Memory) List(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Document, 0, len(m.order[collection]))
	for _, id := range m.order[collection] {
		if doc, ok := m.collections[collection][id]; ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *Memory) Query(_ context.Context, collection, field, value string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Document, 0)
	for _, id := range m.order[collection] {
		doc, ok := m.collections[collection][id]
		if !ok {
			continue
		}
		if fieldText(doc.Data, field) == value {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *Memory) Create(_ context.Context, collection string, record any) (uuid.UUID, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode record: %w", err)
	}

	id := uuid.New()
	now := time.Now().UTC()
	body, err = stampDocument(body, id, now, now)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collections[collection] == nil {
		m.collections[collection] = make(map[uuid.UUID]Document)
	}
	m.collections[collection][id] = Document{ID: id, Data: body, CreatedAt: now, UpdatedAt: now}
	m.order[collection] = append(m.order[collection], id)
	return id, nil
}

func (m *Memory) Update(_ context.Context, collection string, id uuid.UUID, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}

	var body map[string]any
	if err := json.Unmarshal(doc.Data, &body); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	now := time.Now().UTC()
	for k, v := range fields {
		body[k] = v
	}
	body["updatedAt"] = now

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	doc.Data = data
	doc.UpdatedAt = now
	m.collections[collection][id] = doc
	return nil
}

func (m *Memory) Delete(_ context.Context, collection string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.collections[collection], id)
	return nil
}

// fieldText renders one top-level field the way Postgres' data->>field
// does: strings bare, everything else as compact JSON.
func fieldText(data []byte, field string) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	raw, ok := body[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
