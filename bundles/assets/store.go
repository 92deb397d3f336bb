package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Store.Open when the key does not exist.
var ErrNotFound = errors.New("asset not found")

// Store reads and writes cover images.
type Store interface {
	// Open returns the content of key. Callers must close it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Put stores r under key.
	Put(ctx context.Context, key string, r io.Reader) error
}

// CoverKey returns the key of the cover image of a model.
func CoverKey(id uint) string {
	return fmt.Sprintf("model-%d.jpg", id)
}

// DirStore keeps assets as files in a local directory.
type DirStore struct {
	Dir string
}

func (d DirStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return "", errors.Errorf("invalid asset key %q", key)
	}
	return filepath.Join(d.Dir, clean), nil
}

// Open implements Store.
func (d DirStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := d.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening asset %s", key)
	}
	return f, nil
}

// Put implements Store.
func (d DirStore) Put(_ context.Context, key string, r io.Reader) error {
	p, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0711); err != nil {
		return errors.Wrap(err, "creating asset dir")
	}
	f, err := os.Create(p)
	if err != nil {
		return errors.Wrapf(err, "creating asset %s", key)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return errors.Wrapf(err, "writing asset %s", key)
	}
	return nil
}

// S3Store keeps assets in an S3 bucket.
// The following environment variables must be set unless the session is
// configured explicitly:
// AWS_REGION
// AWS_ACCESS_KEY_ID
// AWS_SECRET_ACCESS_KEY
type S3Store struct {
	// s3 clients are safe to use concurrently.
	svc      *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Store returns a store on bucket. Keys are stored under the prefix
// directory, eg. covers/model-1.jpg.
func NewS3Store(sess *session.Session, bucket, prefix string) *S3Store {
	svc := s3.New(sess)
	return &S3Store{
		svc:      svc,
		uploader: s3manager.NewUploaderWithClient(svc),
		bucket:   bucket,
		prefix:   prefix,
	}
}

func (s *S3Store) key(key string) string {
	return strings.TrimPrefix(path.Join(s.prefix, key), "/")
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.svc.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		aerr, ok := err.(awserr.Error)
		if !ok || (aerr.Code() != s3.ErrCodeBucketAlreadyExists &&
			aerr.Code() != s3.ErrCodeBucketAlreadyOwnedByYou) {
			return errors.Wrapf(err, "creating bucket %s", s.bucket)
		}
	}
	return s.svc.WaitUntilBucketExistsWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
}

// Open implements Store.
func (s *S3Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting s3 object %s", key)
	}
	return out.Body, nil
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Body:   r,
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	return errors.Wrapf(err, "uploading %s", key)
}
