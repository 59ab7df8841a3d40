package storage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
)

// SupabaseStore uploads objects to Supabase Storage over its REST API.
type SupabaseStore struct {
	config *config.StorageConfig
	client *resty.Client
}

// NewSupabaseStore creates the store. Returns nil when storage is not
// configured; callers treat a nil store as "no image persistence".
func NewSupabaseStore(cfg *config.StorageConfig) *SupabaseStore {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("apikey", cfg.APIKey)

	return &SupabaseStore{
		config: cfg,
		client: client,
	}
}

// Upload stores data under objectPath in the configured bucket.
func (s *SupabaseStore) Upload(ctx context.Context, objectPath string, data []byte, contentType string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(fmt.Sprintf("/storage/v1/object/%s/%s", s.config.Bucket, objectPath))
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("storage returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// PublicURL resolves the public URL for an uploaded object.
func (s *SupabaseStore) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.config.URL, s.config.Bucket, objectPath)
}
