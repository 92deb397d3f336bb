package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gazebo-web/model-gallery/bundles/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoriesResponse struct {
	Success bool           `json:"success"`
	Data    []categoryInfo `json:"data"`
}

type categoryResponse struct {
	Success bool         `json:"success"`
	Data    categoryInfo `json:"data"`
	Message string       `json:"message"`
}

func TestCategoryListRoute(t *testing.T) {
	setup()

	rec := request(t, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res categoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	require.Len(t, res.Data, len(category.Codes))

	var total int64
	for i, c := range res.Data {
		assert.Equal(t, category.Codes[i], c.Code, "sidebar order")
		assert.Equal(t, category.Label(c.Code), c.Label)
		assert.Equal(t, c.Code, c.Slug)
		total += c.Count
	}
	assert.EqualValues(t, testModelCount, total)
}

func TestCategoryGetRoute(t *testing.T) {
	setup()

	rec := request(t, http.MethodGet, "/categories/vehicle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res categoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "vehicle", res.Data.Code)
	assert.Equal(t, "载具", res.Data.Label)

	rec = request(t, http.MethodGet, "/categories/spaceship", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	res = categoryResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}
