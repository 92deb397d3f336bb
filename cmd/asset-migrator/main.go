// The asset migrator uploads the cover images saved on disk to an S3 bucket,
// so the gallery backend can serve them with GALLERY_S3_BUCKET set.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/assets"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

const (
	maxParallelUploads = 8
	coverPrefix        = "covers"
)

func main() {
	src, dst := setup()

	keys, err := listCovers(src.Dir)
	if err != nil {
		log.Fatalln("Failed to list covers:", err)
	}
	if len(keys) == 0 {
		log.Println("No covers to migrate in", src.Dir)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Listen for Interrupt and Terminate signals
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Println("Signal received:", sig.String())
		cancel()
	}()

	started := time.Now()
	bar := newProgressBar(len(keys))
	fails := run(ctx, src, dst, keys, maxParallelUploads, func() { _ = bar.Add(1) })

	log.Println("Covers were migrated. Took:", time.Since(started).Seconds(), "seconds")
	if len(fails) > 0 {
		log.Printf("However, the following covers returned an error while uploading them:")
		for _, fail := range fails {
			log.Printf("Cover [%s] - Error: %s\n", fail.Key, fail.Error)
		}
		os.Exit(1)
	}
}

func setup() (assets.DirStore, *assets.S3Store) {
	dir, err := gz.ReadEnvVar("GALLERY_UPLOADS_DIR")
	if err != nil {
		log.Fatalln(err)
	}
	bucket, err := gz.ReadEnvVar("GALLERY_S3_BUCKET")
	if err != nil {
		log.Fatalln(err)
	}

	// Initialize S3 config
	sess := session.Must(session.NewSession())
	dst := assets.NewS3Store(sess, bucket, coverPrefix)
	if err := dst.EnsureBucket(context.Background()); err != nil {
		log.Fatalln("Failed to prepare bucket:", err)
	}
	return assets.DirStore{Dir: dir}, dst
}

func newProgressBar(size int) *progressbar.ProgressBar {
	return progressbar.NewOptions(size,
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Uploading covers"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

type errorUploading struct {
	Key   string
	Error error
}

// listCovers returns the keys of the regular files in dir, sorted.
func listCovers(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", dir)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			keys = append(keys, e.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// run copies every key from src to dst using the given number of workers.
// done is called once per processed key. Keys left when ctx is cancelled are
// reported as failures.
func run(ctx context.Context, src, dst assets.Store, keys []string, workers int, done func()) []errorUploading {
	c := make(chan string, len(keys))
	for _, k := range keys {
		c <- k
	}
	close(c)

	e := make(chan errorUploading, len(keys))
	finished := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		go func() {
			for key := range c {
				if err := ctx.Err(); err != nil {
					e <- errorUploading{Key: key, Error: err}
				} else if err := copyAsset(ctx, src, dst, key); err != nil {
					e <- errorUploading{Key: key, Error: err}
				}
				if done != nil {
					done()
				}
			}
			finished <- struct{}{}
		}()
	}
	for i := 0; i < workers; i++ {
		<-finished
	}
	close(e)

	fails := make([]errorUploading, 0)
	for f := range e {
		fails = append(fails, f)
	}
	sort.Slice(fails, func(i, j int) bool { return fails[i].Key < fails[j].Key })
	return fails
}

func copyAsset(ctx context.Context, src, dst assets.Store, key string) error {
	r, err := src.Open(ctx, key)
	if err != nil {
		return err
	}
	defer r.Close()
	return dst.Put(ctx, key, r)
}
