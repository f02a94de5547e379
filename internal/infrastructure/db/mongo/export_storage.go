package mongo

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExportStorage implements ports.ExportStorage on a GridFS bucket. Each
// export is one named object; filenames are unique per call because they
// embed the request timestamp.
type ExportStorage struct {
	bucket *gridfs.Bucket
}

func NewExportStorage(db *mongo.Database, bucketName string) (*ExportStorage, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &ExportStorage{bucket: bucket}, nil
}

func (s *ExportStorage) Put(ctx context.Context, filename string, data []byte) error {
	// The gridfs API is deadline-based rather than context-based.
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}
	if err := s.bucket.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("gridfs deadline: %w", err)
	}

	if _, err := s.bucket.UploadFromStream(filename, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("gridfs upload %s: %w", filename, err)
	}
	return nil
}
