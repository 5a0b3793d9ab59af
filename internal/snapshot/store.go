package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"registry-service/internal/models"
)

const keyPrefix = "snapshots/"

// Snapshot is a point-in-time export of the whole scene: every designer and
// every placed object.
type Snapshot struct {
	TakenAt   time.Time         `json:"takenAt"`
	Designers []models.Designer `json:"designers"`
	Objects   []models.Object3D `json:"objects"`
}

// Store writes scene snapshots to object storage and reads them back.
type Store struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewStore creates a snapshot store over the given MinIO client and bucket.
func NewStore(client *minio.Client, bucket string, logger *zap.Logger) *Store {
	return &Store{client: client, bucket: bucket, logger: logger}
}

func snapshotKey(takenAt time.Time) string {
	return fmt.Sprintf("%s%s.json", keyPrefix, takenAt.UTC().Format("20060102T150405"))
}

// Export serializes the scene and uploads it, returning the storage key.
func (s *Store) Export(ctx context.Context, designers []models.Designer, objects []models.Object3D) (string, error) {
	snap := Snapshot{
		TakenAt:   time.Now(),
		Designers: designers,
		Objects:   objects,
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return "", errors.Wrap(err, "could not encode snapshot")
	}
	key := snapshotKey(snap.TakenAt)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", errors.Wrap(err, "could not upload snapshot")
	}
	s.logger.Info("scene snapshot exported",
		zap.String("key", key),
		zap.Int("designers", len(snap.Designers)),
		zap.Int("objects", len(snap.Objects)),
	)
	return key, nil
}

// Load fetches and decodes a snapshot by key.
func (s *Store) Load(ctx context.Context, key string) (*Snapshot, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch snapshot")
	}
	defer obj.Close()
	var snap Snapshot
	if err := json.NewDecoder(obj).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "could not decode snapshot")
	}
	return &snap, nil
}

// List returns the keys of all stored snapshots.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var keys []string
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: keyPrefix}) {
		if info.Err != nil {
			return nil, errors.Wrap(info.Err, "could not list snapshots")
		}
		keys = append(keys, info.Key)
	}
	return keys, nil
}
