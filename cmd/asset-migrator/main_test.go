package main

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gazebo-web/model-gallery/bundles/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCovers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0711))
	for _, name := range []string{"model-2.jpg", "model-1.jpg"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	keys, err := listCovers(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"model-1.jpg", "model-2.jpg"}, keys)

	_, err = listCovers(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	src := assets.DirStore{Dir: t.TempDir()}
	dst := assets.DirStore{Dir: t.TempDir()}
	ctx := context.Background()
	keys := []string{"model-1.jpg", "model-2.jpg", "model-3.jpg"}
	for _, k := range keys[:2] {
		require.NoError(t, src.Put(ctx, k, strings.NewReader("cover "+k)))
	}

	var processed int32
	fails := run(ctx, src, dst, keys, 2, func() { atomic.AddInt32(&processed, 1) })
	assert.EqualValues(t, len(keys), processed)
	require.Len(t, fails, 1)
	assert.Equal(t, "model-3.jpg", fails[0].Key)
	assert.ErrorIs(t, fails[0].Error, assets.ErrNotFound)

	r, err := dst.Open(ctx, "model-2.jpg")
	require.NoError(t, err)
	defer r.Close()
	b, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "cover model-2.jpg", string(b))
}

func TestRunCancelled(t *testing.T) {
	src := assets.DirStore{Dir: t.TempDir()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fails := run(ctx, src, assets.DirStore{Dir: t.TempDir()}, []string{"a.jpg", "b.jpg"}, 1, nil)
	require.Len(t, fails, 2)
	assert.ErrorIs(t, fails[0].Error, context.Canceled)
}
