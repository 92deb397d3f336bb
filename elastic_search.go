package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/models"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

// connectToElasticSearch Establishes a connection to elastic search.
// It reads the address from GALLERY_ELASTIC_ADDRESS, and the optional
// GALLERY_ELASTIC_USERNAME and GALLERY_ELASTIC_PASSWORD.
func connectToElasticSearch(ctx context.Context) error {
	var response map[string]interface{}

	address, err := gz.ReadEnvVar("GALLERY_ELASTIC_ADDRESS")
	if err != nil {
		gz.LoggerFromContext(ctx).Debug("No ElasticSearch configuration, skipping")
		return err
	}
	username, _ := gz.ReadEnvVar("GALLERY_ELASTIC_USERNAME")
	password, _ := gz.ReadEnvVar("GALLERY_ELASTIC_PASSWORD")

	cfg := elasticsearch.Config{
		Addresses: []string{address},
		Username:  username,
		Password:  password,
	}

	// Create a new elastic search client.
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		gz.LoggerFromContext(ctx).Error("Elastic search error creating new elasticsearch client:", err)
		return err
	}

	// Get cluster info
	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		gz.LoggerFromContext(ctx).Error("Elastic search error getting response:", err)
		return err
	}
	defer res.Body.Close()

	// Check response status
	if res.IsError() {
		gz.LoggerFromContext(ctx).Error("Elastic search error:", res.String())
		return errors.Errorf("elastic search info: %s", res.Status())
	}

	// Deserialize the response into a map.
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		gz.LoggerFromContext(ctx).Error("Error parsing the response body:", err)
	}

	// Print client and server version numbers.
	gz.LoggerFromContext(ctx).Info("Elastic Search Client:", elasticsearch.Version)
	if version, ok := response["version"].(map[string]interface{}); ok {
		gz.LoggerFromContext(ctx).Info("Elastic Search Server:", version["number"])
	}

	globals.ElasticSearch = client
	return nil
}

// createIndex creates the models index and its mappings, unless it already
// exists.
func createIndex(ctx context.Context) {
	if globals.ElasticSearch == nil {
		return
	}

	exists := esapi.IndicesExistsRequest{Index: []string{models.IndexName}}
	res, err := exists.Do(ctx, globals.ElasticSearch)
	if err != nil {
		gz.LoggerFromContext(ctx).Error("Error checking the models index:", err)
		return
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return
	}

	create := esapi.IndicesCreateRequest{
		Index: models.IndexName,
		Body:  strings.NewReader(models.IndexMappings),
	}
	res, err = create.Do(ctx, globals.ElasticSearch)
	if err != nil {
		gz.LoggerFromContext(ctx).Error("Error creating index with response:", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		gz.LoggerFromContext(ctx).Error("Error creating index:", res.String())
	}
}

// updateIndex indexes every model of the DB.
func updateIndex(ctx context.Context, db *gorm.DB) {
	models.ElasticSearchUpdateAll(ctx, db)
}
