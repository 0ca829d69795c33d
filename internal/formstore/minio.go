package formstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"transaction_form/internal/adapters/storage"
	"transaction_form/internal/transactions/ports"

	"github.com/google/uuid"
)

const (
	objectPrefix      = "forms/"
	objectContentType = "application/json"
)

// MinIOStore keeps one JSON object per record under forms/<id>.json.
type MinIOStore struct {
	objects storage.ObjectStore
	bucket  string
	now     func() time.Time
}

// NewMinIOStore creates the bucket if needed.
func NewMinIOStore(ctx context.Context, objects storage.ObjectStore, bucket string) (*MinIOStore, error) {
	if err := objects.EnsureBucketExists(ctx, bucket); err != nil {
		return nil, err
	}
	return &MinIOStore{objects: objects, bucket: bucket, now: time.Now}, nil
}

func objectKey(id uuid.UUID) string {
	return objectPrefix + id.String() + ".json"
}

func (s *MinIOStore) Create(ctx context.Context, rec ports.NewFormRecord) (ports.FormRecord, error) {
	record := ports.FormRecord{
		ID:         uuid.New(),
		Submission: rec.Submission,
		EventID:    rec.EventID,
		CreatedAt:  s.now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ports.FormRecord{}, fmt.Errorf("encode transaction form: %w", err)
	}
	if err := s.objects.PutObject(ctx, s.bucket, objectKey(record.ID), objectContentType, data); err != nil {
		return ports.FormRecord{}, err
	}
	return record, nil
}

func (s *MinIOStore) GetByID(ctx context.Context, id uuid.UUID) (ports.FormRecord, error) {
	return s.read(ctx, objectKey(id))
}

func (s *MinIOStore) ListAll(ctx context.Context) ([]ports.FormRecord, error) {
	keys, err := s.objects.ListKeys(ctx, s.bucket, objectPrefix)
	if err != nil {
		return nil, err
	}

	records := make([]ports.FormRecord, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		record, err := s.read(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path.Base(key), err)
		}
		records = append(records, record)
	}

	sortNewestFirst(records)
	return records, nil
}

func (s *MinIOStore) read(ctx context.Context, key string) (ports.FormRecord, error) {
	data, err := s.objects.GetObject(ctx, s.bucket, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return ports.FormRecord{}, errNotFound()
	}
	if err != nil {
		return ports.FormRecord{}, err
	}

	var record ports.FormRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return ports.FormRecord{}, fmt.Errorf("decode transaction form: %w", err)
	}
	return record, nil
}
