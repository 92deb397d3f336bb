package main

import (
	"net/http"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/category"
	"github.com/gazebo-web/model-gallery/bundles/models"
	"github.com/gazebo-web/model-gallery/catalog"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
)

// categoryInfo is a sidebar category with the number of models in it.
// swagger:model
type categoryInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
	Count int64  `json:"count"`
}

// CategoryList returns a list with all available categories.
// You can request this method with the following curl command:
//
//	curl -k -X GET http://localhost:9090/categories
func CategoryList(tx *gorm.DB, w http.ResponseWriter,
	r *http.Request) (interface{}, *gz.ErrMsg) {
	s := &category.Service{}
	categories, em := s.List(tx)
	if em != nil {
		return nil, em
	}
	counts, em := (&models.Service{}).CountByCategory(tx)
	if em != nil {
		return nil, em
	}

	list := make([]categoryInfo, 0, len(*categories))
	for _, c := range *categories {
		list = append(list, categoryInfo{
			Code:  *c.Code,
			Label: *c.Label,
			Slug:  *c.Slug,
			Count: counts[*c.Code],
		})
	}
	return catalog.DemoResult{Success: true, Data: list}, nil
}

// CategoryGet returns a single category by its slug.
// You can request this method with the following curl command:
//
//	curl -k -X GET http://localhost:9090/categories/robot
func CategoryGet(tx *gorm.DB, w http.ResponseWriter,
	r *http.Request) (interface{}, *gz.ErrMsg) {
	slug, ok := mux.Vars(r)["slug"]
	if !ok {
		return nil, gz.NewErrorMessage(gz.ErrorNameNotFound)
	}
	c, err := category.BySlug(tx, slug)
	if err != nil {
		return nil, gz.NewErrorMessageWithArgs(gz.ErrorNameNotFound, err, []string{slug})
	}
	count, em := (&models.Service{}).CountByCategory(tx)
	if em != nil {
		return nil, em
	}
	return catalog.DemoResult{Success: true, Data: categoryInfo{
		Code:  *c.Code,
		Label: *c.Label,
		Slug:  *c.Slug,
		Count: count[*c.Code],
	}}, nil
}
