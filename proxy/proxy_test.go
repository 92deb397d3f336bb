package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteFileURL(t *testing.T) {
	cases := map[string]string{
		"http://127.0.0.1:9001/sanweifile/a/robot.glb":     "/sanweifile/a/robot.glb",
		"http://10.213.19.130:9001/sanweifile/cover.png":   "/sanweifile/cover.png",
		"https://cdn.example.com/sanweifile/cover.png":     "https://cdn.example.com/sanweifile/cover.png",
		"/sanweifile/already/relative.glb":                 "/sanweifile/already/relative.glb",
		"":                                                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, RewriteFileURL(in), in)
	}

	assert.Equal(t, "/sanweifile/x.glb",
		RewriteFileURL("http://files.local:8000/sanweifile/x.glb", "http://files.local:8000"))
	// Custom hosts replace the defaults.
	assert.Equal(t, "http://127.0.0.1:9001/x",
		RewriteFileURL("http://127.0.0.1:9001/x", "http://files.local:8000"))
}

func TestPrefixProxy(t *testing.T) {
	var gotPath, gotHost, gotQuery string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHost = r.Host
		gotQuery = r.URL.RawQuery
		io.WriteString(w, "ok")
	}))
	defer backend.Close()

	target, err := ParseTarget(backend.URL)
	require.NoError(t, err)
	front := httptest.NewServer(NewPrefixProxy(target, "/api"))
	defer front.Close()

	resp, err := http.Get(front.URL + "/api/search/list?pageNum=2&pageSize=16")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "/search/list", gotPath)
	assert.Equal(t, "pageNum=2&pageSize=16", gotQuery)
	assert.Equal(t, target.Host, gotHost)

	resp, err = http.Get(front.URL + "/api")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/", gotPath)
}

func TestFileProxyKeepsPath(t *testing.T) {
	var gotPath string
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer files.Close()

	target, err := ParseTarget(files.URL)
	require.NoError(t, err)
	front := httptest.NewServer(NewFileProxy(target))
	defer front.Close()

	resp, err := http.Get(front.URL + "/sanweifile/robots/arm.glb")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/sanweifile/robots/arm.glb", gotPath)
}

func TestParseTarget(t *testing.T) {
	_, err := ParseTarget("10.213.19.130:9090")
	assert.Error(t, err)
	_, err = ParseTarget("ftp://files")
	assert.Error(t, err)
	_, err = ParseTarget("http://")
	assert.Error(t, err)
	u, err := ParseTarget("http://10.213.19.130:9090")
	require.NoError(t, err)
	assert.Equal(t, "10.213.19.130:9090", u.Host)
}
