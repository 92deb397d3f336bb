package models

// Import this file's dependencies
import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/jinzhu/gorm"
)

// IndexName is the Elastic Search index holding the models.
const IndexName = "gallery_models"

// IndexMappings is the set of mappings for IndexName.
const IndexMappings = `{
  "mappings": {
    "properties": {
      "name":        {"type": "text", "fields": {"keyword": {"type": "keyword", "ignore_above": 256}}},
      "description": {"type": "text"},
      "type":        {"type": "text", "fields": {"keyword": {"type": "keyword", "ignore_above": 256}}},
      "category":    {"type": "keyword"},
      "packageName": {"type": "text"}
    }
  }
}`

// This is the structure of the data stored in the models index.
type modelElastic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	PackageName string `json:"packageName,omitempty"`
}

// ElasticSearchUpdateModel will update ElasticSearch with a single model.
func ElasticSearchUpdateModel(ctx context.Context, model Model) {
	if globals.ElasticSearch == nil {
		return
	}

	m := modelElastic{
		Name:        str(model.Name),
		Description: str(model.Description),
		Type:        str(model.Type),
		Category:    str(model.Category),
		PackageName: str(model.PackageName),
	}
	jsonModel, _ := json.Marshal(&m)

	// Set up the request object.
	req := esapi.IndexRequest{
		Index:      IndexName,
		DocumentID: strconv.FormatUint(uint64(model.ID), 10),
		Body:       bytes.NewReader(jsonModel),
	}

	// Perform the request with the client.
	add, err := req.Do(ctx, globals.ElasticSearch)
	if err != nil {
		gz.LoggerFromContext(ctx).Critical("Error getting response:", err)
		return
	}
	defer add.Body.Close()

	if add.IsError() {
		gz.LoggerFromContext(ctx).Error("[", add.Status(), "] Error indexing document ID:", model.ID)
	}
}

// ElasticSearchUpdateAll will update ElasticSearch with all the models in the
// SQL database.
func ElasticSearchUpdateAll(ctx context.Context, tx *gorm.DB) {
	if globals.ElasticSearch == nil {
		return
	}

	// Make sure that we have a Model table.
	if hasTable := tx.HasTable(&Model{}); hasTable {
		var models Models
		tx.Find(&models)

		// TODO: Use the Bulk ElasticSearch API.
		for _, model := range models {
			ElasticSearchUpdateModel(ctx, model)
		}

		// Make the documents visible to search at once.
		refresh := esapi.IndicesRefreshRequest{Index: []string{IndexName}}
		if res, err := refresh.Do(ctx, globals.ElasticSearch); err != nil {
			gz.LoggerFromContext(ctx).Error("Error refreshing the models index:", err)
		} else {
			res.Body.Close()
		}
	}
}

// searchQuery builds the Elastic Search query of a keyword listing.
func searchQuery(lr ListRequest) map[string]interface{} {
	must := []interface{}{
		map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  strings.TrimSpace(lr.Keyword),
				"fields": []string{"name^2", "description", "type", "packageName"},
			},
		},
	}
	var filter []interface{}
	if lr.Category != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"category": lr.Category},
		})
	}
	if lr.Type != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"type.keyword": lr.Type},
		})
	}
	boolQuery := map[string]interface{}{"must": must}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort":  []interface{}{"_score", map[string]interface{}{"_id": "asc"}},
	}
}

// searchResponse is the part of an Elastic Search response we read.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// ElasticSearchModels runs a keyword listing on Elastic Search and loads the
// matching models from the DB, in relevance order.
func ElasticSearchModels(ctx context.Context, tx *gorm.DB, lr ListRequest) (Models, *gz.PaginationResult, *gz.ErrMsg) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery(lr)); err != nil {
		return nil, nil, gz.NewErrorMessageWithArgs(gz.ErrorUnexpected, err,
			[]string{"Error encoding search query"})
	}

	es := globals.ElasticSearch
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(IndexName),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(true),
		es.Search.WithFrom(int(lr.offset())),
		es.Search.WithSize(int(lr.PerPage)),
	)
	if err != nil {
		return nil, nil, gz.NewErrorMessageWithArgs(gz.ErrorUnexpected, err,
			[]string{"Error getting search response"})
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, nil, gz.NewErrorMessageWithArgs(gz.ErrorUnexpected, nil,
			[]string{"Search error ", res.Status()})
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, nil, gz.NewErrorMessageWithArgs(gz.ErrorUnexpected, err,
			[]string{"Error parsing the search response body"})
	}

	var ids []uint
	for _, hit := range sr.Hits.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 64)
		if err != nil {
			gz.LoggerFromContext(ctx).Error("Unable to convert ID to int64.", hit.ID)
			continue
		}
		ids = append(ids, uint(id))
	}

	list := Models{}
	if len(ids) > 0 {
		var found Models
		if err := QueryForModels(tx).Where("id IN (?)", ids).Find(&found).Error; err != nil {
			return nil, nil, gz.NewErrorMessageWithBase(gz.ErrorNoDatabase, err)
		}
		byID := make(map[uint]Model, len(found))
		for _, m := range found {
			byID[m.ID] = m
		}
		for _, id := range ids {
			if m, ok := byID[id]; ok {
				list = append(list, m)
			}
		}
	}

	pagination := &gz.PaginationResult{
		Page:       lr.Page,
		PerPage:    lr.PerPage,
		QueryCount: sr.Hits.Total.Value,
		PageFound:  len(list) > 0 || lr.Page == 1,
	}
	return list, pagination, nil
}
