package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Storage releases blob references (certificate files) held by records.
// Uploads happen elsewhere; the core only deletes.
type Storage interface {
	Delete(ctx context.Context, ref string) error
}

// HTTPStorage talks to the blob service over its REST API.
type HTTPStorage struct {
	client *resty.Client
}

func NewHTTPStorage(baseURL, token string) *HTTPStorage {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &HTTPStorage{client: client}
}

func (s *HTTPStorage) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("ref", ref).
		Delete("/objects")
	if err != nil {
		return err
	}
	if resp.IsError() && resp.StatusCode() != 404 {
		return fmt.Errorf("blob delete status %d", resp.StatusCode())
	}
	return nil
}

// Noop is used when no blob service is configured.
type Noop struct{}

func (Noop) Delete(context.Context, string) error { return nil }
