package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
)

const notFoundCode = "NoSuchKey"

// cloudBackend stores assets in S3-compatible cloud object storage. The
// per-class transform descriptor travels as object metadata; applying it is
// the storage provider's job, not ours.
type cloudBackend struct {
	client *minio.Client
	bucket string
}

// newCloudBackend initializes the cloud object storage client from the
// three credential fields.
func newCloudBackend(cfg config.Storage) (*cloudBackend, error) {
	client, err := minio.New(cfg.CloudEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.CloudAccessKey, cfg.CloudSecretKey, ""),
		Secure: cfg.CloudSecure,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cloud storage client")
	}

	return &cloudBackend{client: client, bucket: cfg.CloudBucket}, nil
}

// Kind implements Backend.
func (b *cloudBackend) Kind() Kind {
	return KindCloud
}

// BuildPath implements Backend. For the cloud variant the path is the
// object key below the bucket.
func (b *cloudBackend) BuildPath(dest Destination) string {
	return path.Join(dest.Folder, dest.Name)
}

// Put implements Backend.
func (b *cloudBackend) Put(ctx context.Context, class AssetClass, dest Destination, r io.Reader, size int64, contentType string) (*Location, error) {
	policy, err := PolicyFor(class)
	if err != nil {
		return nil, err
	}

	key := b.BuildPath(dest)

	info, err := b.client.PutObject(ctx, b.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: policy.Transform,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store object")
	}

	return &Location{
		Kind:   KindCloud,
		Folder: dest.Folder,
		Name:   dest.Name,
		URL:    b.objectURL(key),
		Size:   info.Size,
	}, nil
}

// Exists implements Backend.
func (b *cloudBackend) Exists(ctx context.Context, dest Destination) (bool, error) {
	_, err := b.client.StatObject(ctx, b.bucket, b.BuildPath(dest), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == notFoundCode {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to stat object")
	}

	return true, nil
}

// OpenRead implements Backend.
func (b *cloudBackend) OpenRead(ctx context.Context, dest Destination) (io.ReadCloser, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.BuildPath(dest), minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open object")
	}

	return obj, nil
}

func (b *cloudBackend) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", b.client.EndpointURL(), b.bucket, key)
}
