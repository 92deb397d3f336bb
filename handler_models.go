package main

import (
	"context"
	"net/http"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/models"
	"github.com/gazebo-web/model-gallery/catalog"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/jinzhu/gorm"
)

const maxDemoPageSize = 100

// demoListRequest is the query of the /api/models listing and search routes.
// Missing or invalid numbers fall back to the defaults.
type demoListRequest struct {
	Page     int64  `form:"page"`
	PageSize int64  `form:"pageSize"`
	Category string `form:"category"`
	Keyword  string `form:"keyword"`
}

// readDemoListRequest decodes the query of a demo listing. It never fails:
// values that cannot be read are replaced by their defaults.
func readDemoListRequest(r *http.Request) demoListRequest {
	req := demoListRequest{Page: defaultPageNum, PageSize: defaultPageSize}
	if err := r.ParseForm(); err == nil {
		if errs := globals.FormDecoder.Decode(&req, r.Form); errs != nil {
			gz.LoggerFromContext(r.Context()).Debug("Ignoring invalid list params",
				getDecodeErrorsExtraInfo(errs))
		}
	}
	if req.Page < 1 {
		req.Page = defaultPageNum
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxDemoPageSize {
		req.PageSize = maxDemoPageSize
	}
	return req
}

// demoList runs lr and builds the demo listing response.
func demoList(ctx context.Context, tx *gorm.DB, lr models.ListRequest) (interface{}, *gz.ErrMsg) {
	list, pagination, em := (&models.Service{}).ModelList(ctx, tx, lr)
	if em != nil {
		return nil, em
	}
	return catalog.DemoList{
		Success:    true,
		Data:       list.DemoRecords(),
		Total:      pagination.QueryCount,
		Page:       lr.Page,
		PageSize:   lr.PerPage,
		TotalPages: catalog.TotalPages(pagination.QueryCount, lr.PerPage),
	}, nil
}

// ModelList returns a page of models. The category query parameter filters
// on the robot type, eg. 机械臂.
// You can request this method with the following cURL request:
//
//	curl -k -X GET 'http://localhost:9090/api/models?page=1&pageSize=10'
func ModelList(tx *gorm.DB, w http.ResponseWriter, r *http.Request) (interface{}, *gz.ErrMsg) {
	req := readDemoListRequest(r)
	return demoList(r.Context(), tx, models.ListRequest{
		Page:    req.Page,
		PerPage: req.PageSize,
		Type:    req.Category,
	})
}

// ModelSearch returns a page of the models whose name, type or description
// contains the keyword, ignoring case. An empty keyword matches every model.
// You can request this method with the following cURL request:
//
//	curl -k -X GET 'http://localhost:9090/api/models/search?keyword=机械臂'
func ModelSearch(tx *gorm.DB, w http.ResponseWriter, r *http.Request) (interface{}, *gz.ErrMsg) {
	req := readDemoListRequest(r)
	return demoList(r.Context(), tx, models.ListRequest{
		Page:    req.Page,
		PerPage: req.PageSize,
		Type:    req.Category,
		Keyword: req.Keyword,
	})
}

// ModelGet returns a single model.
// You can request this method with the following cURL request:
//
//	curl -k -X GET http://localhost:9090/api/models/1
func ModelGet(tx *gorm.DB, w http.ResponseWriter, r *http.Request) (interface{}, *gz.ErrMsg) {
	id, em := readModelID(r)
	if em != nil {
		return nil, em
	}
	model, em := (&models.Service{}).GetModel(tx, id)
	if em != nil {
		return nil, em
	}
	return catalog.DemoResult{Success: true, Data: model.ToDemoRecord()}, nil
}

// likeRequest is the body of POST /api/models/{id}/likes.
// swagger:model
type likeRequest struct {
	// True to like the model, false to remove the like.
	Liked *bool `json:"liked" validate:"required"`
}

// ModelLike records a like or an unlike of a model and returns the updated
// model.
// You can request this method with the following cURL request:
//
//	curl -k -X POST -d '{"liked":true}' http://localhost:9090/api/models/1/likes
func ModelLike(tx *gorm.DB, w http.ResponseWriter, r *http.Request) (interface{}, *gz.ErrMsg) {
	id, em := readModelID(r)
	if em != nil {
		return nil, em
	}
	var req likeRequest
	if em := ParseStruct(&req, r, false); em != nil {
		return nil, em
	}
	model, em := (&models.Service{}).SetLike(r.Context(), tx, id, *req.Liked)
	if em != nil {
		return nil, em
	}
	return catalog.DemoResult{Success: true, Data: model.ToDemoRecord()}, nil
}
