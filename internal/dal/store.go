package dal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Billy-Davies-2/expansion-draft/internal/models"
)

// Store reads and writes the typed draft documents on top of a BlobStore
type Store struct {
	blobs BlobStore
}

// NewStore wraps a BlobStore
func NewStore(blobs BlobStore) *Store {
	return &Store{blobs: blobs}
}

// Blobs exposes the underlying BlobStore
func (s *Store) Blobs() BlobStore {
	return s.blobs
}

func load[T any](ctx context.Context, blobs BlobStore, name BlobName, out *T) error {
	data, err := blobs.Get(ctx, name)
	if errors.Is(err, ErrBlobNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func save[T any](ctx context.Context, blobs BlobStore, name BlobName, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := blobs.Set(ctx, name, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (s *Store) LoadProtections(ctx context.Context) (models.Protections, error) {
	out := models.Protections{}
	if err := load(ctx, s.blobs, BlobProtections, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = models.Protections{}
	}
	return out, nil
}

func (s *Store) SaveProtections(ctx context.Context, p models.Protections) error {
	if p == nil {
		p = models.Protections{}
	}
	return save(ctx, s.blobs, BlobProtections, p)
}

func (s *Store) LoadOrder(ctx context.Context) ([]string, error) {
	out := []string{}
	if err := load(ctx, s.blobs, BlobDraftOrder, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (s *Store) SaveOrder(ctx context.Context, order []string) error {
	if order == nil {
		order = []string{}
	}
	return save(ctx, s.blobs, BlobDraftOrder, order)
}

func (s *Store) LoadPicks(ctx context.Context) ([]models.Pick, error) {
	out := []models.Pick{}
	if err := load(ctx, s.blobs, BlobDraftPicks, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Pick{}
	}
	return out, nil
}

func (s *Store) SavePicks(ctx context.Context, picks []models.Pick) error {
	if picks == nil {
		picks = []models.Pick{}
	}
	return save(ctx, s.blobs, BlobDraftPicks, picks)
}

func (s *Store) LoadDispersed(ctx context.Context) (models.DispersedSet, error) {
	out := models.DispersedSet{}
	if err := load(ctx, s.blobs, BlobDispersed, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = models.DispersedSet{}
	}
	return out, nil
}

func (s *Store) SaveDispersed(ctx context.Context, d models.DispersedSet) error {
	return save(ctx, s.blobs, BlobDispersed, d)
}

// ResetAll clears every draft document
func (s *Store) ResetAll(ctx context.Context) error {
	return s.blobs.Reset(ctx)
}
