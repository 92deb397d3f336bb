package main

import (
	"net/http"
	"strings"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/models"
	"github.com/gazebo-web/model-gallery/catalog"
	"github.com/jinzhu/gorm"
)

const (
	defaultPageNum  = 1
	defaultPageSize = 10
)

// searchListRequest is the query of GET /search/list.
// swagger:model
type searchListRequest struct {
	// Page to return, starting at 1.
	PageNum int64 `form:"pageNum" validate:"gte=1"`
	// Models per page.
	PageSize int64 `form:"pageSize" validate:"gte=1,lte=100"`
	// Optional category code, eg. robot.
	Category string `form:"category" validate:"omitempty,categorycode"`
	// Optional search term.
	Keyword string `form:"keyword" validate:"max=100,nopercent"`
}

// SearchList returns a page of the catalog, optionally filtered by category
// and keyword.
// You can request this method with the following cURL request:
//
//	curl -k -X GET 'http://localhost:9090/search/list?pageNum=1&pageSize=16&category=robot'
func SearchList(tx *gorm.DB, w http.ResponseWriter, r *http.Request) (interface{}, *gz.ErrMsg) {
	req := searchListRequest{PageNum: defaultPageNum, PageSize: defaultPageSize}
	if em := ParseStruct(&req, r, true); em != nil {
		return nil, em
	}

	lr := models.ListRequest{
		Page:     req.PageNum,
		PerPage:  req.PageSize,
		Category: strings.TrimSpace(req.Category),
		Keyword:  req.Keyword,
	}
	list, pagination, em := (&models.Service{}).ModelList(r.Context(), tx, lr)
	if em != nil {
		return nil, em
	}

	return &catalog.Page{
		Records: list.Records(),
		Total:   pagination.QueryCount,
		Current: req.PageNum,
		Size:    req.PageSize,
		Pages:   catalog.TotalPages(pagination.QueryCount, req.PageSize),
	}, nil
}
