package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/catalog"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/stretchr/testify/require"
)

// Test utilities and some mocks

const (
	ctJSON string = "application/json; charset=utf-8"

	// testModelCount is the size of the catalog generated by setup.
	testModelCount = 80
	testSeed       = 1
)

// setup helper function
func setup() {
	setupWithCustomInitalizer(nil)
}

type customInitializer func(ctx context.Context)

// testContext returns a context carrying a quiet test logger.
func testContext() context.Context {
	logger := gz.NewLogger("test", true, gz.VerbosityWarning)
	return gz.NewContextWithLogger(context.Background(), logger)
}

// setup helper function
func setupWithCustomInitalizer(customFn customInitializer) {
	logCtx := testContext()
	// Make sure we don't have data from other tests.
	// For this we drop db tables and recreate them.
	packageTearDown(logCtx)
	DBAddDefaultData(logCtx, globals.DB)
	DBPopulate(logCtx, globals.DB, testModelCount, testSeed)

	globals.QueryCache = nil
	globals.ElasticSearch = nil
	globals.Assets = nil

	if customFn != nil {
		customFn(logCtx)
	}
}

// uri builds a request URI with the given query values.
func uri(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

// request sends a request through the gallery router.
func request(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	Router.ServeHTTP(rec, req)
	return rec
}

// postJSON sends v as the JSON body of a POST request.
func postJSON(t *testing.T, target string, v interface{}) *httptest.ResponseRecorder {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return request(t, http.MethodPost, target, bytes.NewReader(b))
}

// getEnvelope requests a listing and decodes its envelope. Listing
// responses are always 200.
func getEnvelope(t *testing.T, target string) catalog.Envelope {
	rec := request(t, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, ctJSON, rec.Header().Get("Content-Type"))
	var env catalog.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// getDemoList requests a demo listing and decodes it.
func getDemoList(t *testing.T, target string) catalog.DemoList {
	rec := request(t, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list catalog.DemoList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list), rec.Body.String())
	return list
}

// demoModelResult is catalog.DemoResult with a typed model.
type demoModelResult struct {
	Success bool               `json:"success"`
	Data    *catalog.DemoRecord `json:"data"`
	Message string             `json:"message"`
}

func decodeDemoModel(t *testing.T, rec *httptest.ResponseRecorder) demoModelResult {
	var res demoModelResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}
