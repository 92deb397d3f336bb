package viewer

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Binary glTF container layout.
const (
	glbMagic      = 0x46546C67 // "glTF"
	glbVersion    = 2
	glbChunkJSON  = 0x4E4F534A // "JSON"
	glbHeaderSize = 12
	glbChunkHead  = 8
)

// makeGLB wraps a glTF JSON document into a binary container.
func makeGLB(doc string) []byte {
	js := []byte(doc)
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}
	var buf bytes.Buffer
	total := uint32(glbHeaderSize + glbChunkHead + len(js))
	binary.Write(&buf, binary.LittleEndian, uint32(glbMagic))
	binary.Write(&buf, binary.LittleEndian, uint32(glbVersion))
	binary.Write(&buf, binary.LittleEndian, total)
	binary.Write(&buf, binary.LittleEndian, uint32(len(js)))
	binary.Write(&buf, binary.LittleEndian, uint32(glbChunkJSON))
	buf.Write(js)
	return buf.Bytes()
}

const cubeDoc = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"mesh": 0, "translation": [10, 0, 0], "scale": [2, 1, 1]}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0, "NORMAL": 1}}]}],
  "accessors": [
    {"type": "VEC3", "min": [-0.5, -0.5, -0.5], "max": [0.5, 0.5, 0.5]},
    {"type": "VEC3"}
  ]
}`

func loaded(t *testing.T, res LoadResult) BoundingInfo {
	t.Helper()
	l, ok := res.(Loaded)
	require.True(t, ok, "expected Loaded, got %#v", res)
	return l.Bounds
}

func TestLoadBoundsGLB(t *testing.T) {
	bi := loaded(t, LoadBounds(bytes.NewReader(makeGLB(cubeDoc))))
	assert.Equal(t, Vec3{2, 1, 1}, bi.Size)
	assert.Equal(t, Vec3{10, 0, 0}, bi.Center)
	assert.Equal(t, 2.0, bi.MaxDim)
}

func TestLoadBoundsJSON(t *testing.T) {
	bi := loaded(t, LoadBounds(bytes.NewReader([]byte(cubeDoc))))
	assert.Equal(t, 2.0, bi.MaxDim)
}

func TestLoadBoundsHierarchy(t *testing.T) {
	// Parent moves up by 5, child is rotated 90 degrees around Z.
	doc := `{
	  "scenes": [{"nodes": [0]}],
	  "nodes": [
	    {"translation": [0, 5, 0], "children": [1]},
	    {"mesh": 0, "rotation": [0, 0, 0.7071067811865476, 0.7071067811865476]}
	  ],
	  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
	  "accessors": [{"type": "VEC3", "min": [0, 0, 0], "max": [4, 1, 1]}]
	}`
	bi := loaded(t, LoadBounds(bytes.NewReader(makeGLB(doc))))
	assert.InDelta(t, 1.0, bi.Size.X, 1e-9)
	assert.InDelta(t, 4.0, bi.Size.Y, 1e-9)
	assert.InDelta(t, 1.0, bi.Size.Z, 1e-9)
	assert.InDelta(t, 7.0, bi.Center.Y, 1e-9)
	assert.InDelta(t, 4.0, bi.MaxDim, 1e-9)
}

func TestLoadBoundsMatrixNode(t *testing.T) {
	// Column-major matrix: uniform scale 3 and a translation of (0, 0, -2).
	doc := `{
	  "scenes": [{"nodes": [0]}],
	  "nodes": [{"mesh": 0, "matrix": [3,0,0,0, 0,3,0,0, 0,0,3,0, 0,0,-2,1]}],
	  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
	  "accessors": [{"type": "VEC3", "min": [-1, -1, -1], "max": [1, 1, 1]}]
	}`
	bi := loaded(t, LoadBounds(bytes.NewReader([]byte(doc))))
	assert.InDelta(t, 6.0, bi.MaxDim, 1e-9)
	assert.InDelta(t, -2.0, bi.Center.Z, 1e-9)
}

func TestLoadBoundsWithoutNodes(t *testing.T) {
	doc := `{
	  "meshes": [
	    {"primitives": [{"attributes": {"POSITION": 0}}]},
	    {"primitives": [{"attributes": {"POSITION": 1}}]}
	  ],
	  "accessors": [
	    {"type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 1]},
	    {"type": "VEC3", "min": [-3, 0, 0], "max": [0, 1, 1]}
	  ]
	}`
	bi := loaded(t, LoadBounds(bytes.NewReader([]byte(doc))))
	assert.Equal(t, Vec3{4, 1, 1}, bi.Size)
}

func TestLoadBoundsFailures(t *testing.T) {
	cases := map[string][]byte{
		"empty":       {},
		"bad magic":   []byte("not a gltf container at all"),
		"truncated":   makeGLB(cubeDoc)[:30],
		"bad json":    []byte("{not json"),
		"no geometry": []byte(`{"meshes": [{"primitives": [{"attributes": {"NORMAL": 0}}]}], "accessors": [{"type": "VEC3"}]}`),
	}
	for name, data := range cases {
		res := LoadBounds(bytes.NewReader(data))
		f, ok := res.(Failed)
		assert.True(t, ok, name)
		assert.Equal(t, ReasonInvalidAsset, f.Reason, name)
		assert.Error(t, f.Err, name)
	}
}

func TestFetchBounds(t *testing.T) {
	glb := makeGLB(cubeDoc)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sanweifile/robot.glb" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "model/gltf-binary")
		w.Write(glb)
	}))
	defer srv.Close()

	bi := loaded(t, FetchBounds(context.Background(), srv.Client(), srv.URL+"/sanweifile/robot.glb"))
	assert.Equal(t, 2.0, bi.MaxDim)

	res := FetchBounds(context.Background(), srv.Client(), srv.URL+"/sanweifile/missing.glb")
	f, ok := res.(Failed)
	require.True(t, ok)
	assert.Equal(t, ReasonStatus, f.Reason)

	res = FetchBounds(context.Background(), nil, "http://127.0.0.1:0/nothing.glb")
	f, ok = res.(Failed)
	require.True(t, ok)
	assert.Equal(t, ReasonFetch, f.Reason)
}
