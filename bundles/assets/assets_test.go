package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 255, G: 107, B: 53, A: 255})
		}
	}
	return img
}

func storeRoundTrip(t *testing.T, s Store) {
	ctx := context.Background()
	_, err := s.Open(ctx, CoverKey(404))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, CoverKey(7), strings.NewReader("cover bytes")))
	rc, err := s.Open(ctx, CoverKey(7))
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "cover bytes", string(b))
}

func TestDirStore(t *testing.T) {
	s := DirStore{Dir: t.TempDir()}
	storeRoundTrip(t, s)

	_, err := s.Open(context.Background(), "../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func newFakeS3Session(t *testing.T) *session.Session {
	faker := gofakes3.New(s3mem.New())
	ts := httptest.NewServer(faker.Server())
	t.Cleanup(ts.Close)

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials("test-key", "test-secret", ""),
		Endpoint:         aws.String(ts.URL),
		Region:           aws.String("us-east-1"),
		DisableSSL:       aws.Bool(true),
		S3ForcePathStyle: aws.Bool(true),
	})
	require.NoError(t, err)
	return sess
}

func storedKeys(t *testing.T, sess *session.Session, bucket string) []string {
	out, err := s3.New(sess).ListObjectsV2(&s3.ListObjectsV2Input{Bucket: aws.String(bucket)})
	require.NoError(t, err)
	keys := make([]string, 0, len(out.Contents))
	for _, o := range out.Contents {
		keys = append(keys, aws.StringValue(o.Key))
	}
	return keys
}

func TestS3Store(t *testing.T) {
	sess := newFakeS3Session(t)

	s := NewS3Store(sess, "gallery-covers", "covers")
	require.NoError(t, s.EnsureBucket(context.Background()))
	require.NoError(t, s.EnsureBucket(context.Background()), "existing bucket is fine")
	storeRoundTrip(t, s)
	assert.Equal(t, []string{"covers/model-7.jpg"}, storedKeys(t, sess, "gallery-covers"))
}

func TestS3StoreKeys(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"covers", "model-1.jpg", "covers/model-1.jpg"},
		{"covers/", "model-1.jpg", "covers/model-1.jpg"},
		{"covers", "/model-1.jpg", "covers/model-1.jpg"},
		{"", "model-1.jpg", "model-1.jpg"},
		{"", "/model-1.jpg", "model-1.jpg"},
	}
	for _, test := range tests {
		s := &S3Store{prefix: test.prefix}
		assert.Equal(t, test.want, s.key(test.key), "%q + %q", test.prefix, test.key)
	}
}

func TestCoverKey(t *testing.T) {
	assert.Equal(t, "model-12.jpg", CoverKey(12))
}

func TestThumbnail(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, testImage(600, 400)))

	out, err := Thumbnail(&src, ThumbnailWidth)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	src.Reset()
	require.NoError(t, jpeg.Encode(&src, testImage(120, 80), nil))
	out, err = Thumbnail(&src, ThumbnailWidth)
	require.NoError(t, err)
	img, err = jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx(), "small images are not upscaled")

	_, err = Thumbnail(strings.NewReader("not an image"), ThumbnailWidth)
	assert.Error(t, err)
}
