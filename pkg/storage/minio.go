package storage

import (
	"bytes"
	"context"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"net/url"
	"strings"
)

// AudioStore keeps uploaded recordings in a MinIO / S3 bucket.
type AudioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewAudioStore(client *minio.Client, bucket, publicURL string) *AudioStore {
	return &AudioStore{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}
}

func (s *AudioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	zerolog.Ctx(ctx).Info().Str("bucket", s.bucket).Msg("creating bucket")
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *AudioStore) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return s.ObjectURL(objectName)
}

func (s *AudioStore) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// ObjectURL is the address the object is served from: the configured public URL,
// or the MinIO endpoint itself.
func (s *AudioStore) ObjectURL(objectName string) (string, error) {
	base := s.publicURL
	if base == "" {
		base = s.client.EndpointURL().String()
	}

	return url.JoinPath(base, append([]string{s.bucket}, strings.Split(objectName, "/")...)...)
}
