package formstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"transaction_form/internal/adapters/storage"
	"transaction_form/internal/transactions/ports"
	"transaction_form/platform/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	putErr  error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (f *fakeObjects) EnsureBucketExists(_ context.Context, bucket string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[bucket] = true
	return nil
}

func (f *fakeObjects) PutObject(_ context.Context, bucket, key, _ string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+key] = append([]byte(nil), data...)
	return nil
}

func (f *fakeObjects) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (f *fakeObjects) ListKeys(_ context.Context, bucket, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, bucket+"/"+prefix) {
			keys = append(keys, strings.TrimPrefix(k, bucket+"/"))
		}
	}
	return keys, nil
}

func TestMinIOStore(t *testing.T) {
	objects := newFakeObjects()
	ctx := context.Background()

	store, err := NewMinIOStore(ctx, objects, "transaction-forms")
	require.NoError(t, err)
	assert.True(t, objects.buckets["transaction-forms"])

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := store.Create(ctx, ports.NewFormRecord{Submission: sampleSubmission("First"), EventID: "1"})
	require.NoError(t, err)
	_, err = store.Create(ctx, ports.NewFormRecord{Submission: sampleSubmission("Second"), EventID: "2"})
	require.NoError(t, err)

	assert.Contains(t, objects.objects, "transaction-forms/forms/"+first.ID.String()+".json")

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Submission, got.Submission)
	assert.Equal(t, "1", got.EventID)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Second", records[0].Submission.ClientName)

	_, err = store.GetByID(ctx, uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMinIOStoreCreateFailure(t *testing.T) {
	objects := newFakeObjects()
	objects.putErr = errors.New("bucket gone")

	store, err := NewMinIOStore(context.Background(), objects, "b")
	require.NoError(t, err)

	_, err = store.Create(context.Background(), ports.NewFormRecord{Submission: sampleSubmission("Jane")})
	assert.Error(t, err)
}
