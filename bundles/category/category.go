package category

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/jinzhu/gorm"
)

// Category groups models in the gallery sidebar. The Code is what the
// listing endpoint filters on, the Label is what the sidebar shows.
//
// swagger:model
type Category struct {
	gorm.Model

	// Code is the machine name of the category, eg. "robot".
	Code *string `gorm:"not null;unique" json:"code"`

	// Label is the display name of the category.
	Label *string `gorm:"not null" json:"label"`

	// Slug is the human-friendly URL path to the category
	Slug *string `gorm:"not null;unique" json:"slug"`
}

// Categories is an array of Category
//
// swagger:model
type Categories []Category

// Codes lists the category codes in sidebar order.
var Codes = []string{"furniture", "prop", "architecture", "robot", "vehicle", "character"}

// Labels maps each category code to its display label.
var Labels = map[string]string{
	"furniture":    "家具",
	"prop":         "道具",
	"architecture": "建筑",
	"robot":        "机器人",
	"vehicle":      "载具",
	"character":    "角色",
}

// Label returns the display label for code. Unknown codes are returned
// unchanged.
func Label(code string) string {
	if l, ok := Labels[code]; ok {
		return l
	}
	return code
}

// IsKnown returns true if code is one of the gallery categories.
func IsKnown(code string) bool {
	_, ok := Labels[strings.TrimSpace(code)]
	return ok
}

// ByCode returns a category by the given code.
func ByCode(tx *gorm.DB, code string) (*Category, error) {
	var cat Category
	q := tx.Model(&Category{}).Where("code = ?", code)

	if err := q.First(&cat).Error; err != nil {
		return nil, err
	}

	return &cat, nil
}

// BySlug returns a category by the given slug.
func BySlug(tx *gorm.DB, slug string) (*Category, error) {
	var cat Category

	q := tx.Model(&Category{}).Where("slug = ?", slug)

	if err := q.First(&cat).Error; err != nil {
		return nil, err
	}

	return &cat, nil
}

// Defaults returns the default set of categories, one per code.
func Defaults() Categories {
	cats := make(Categories, 0, len(Codes))
	for _, code := range Codes {
		code := code
		label := Labels[code]
		s := slug.Make(code)
		cats = append(cats, Category{Code: &code, Label: &label, Slug: &s})
	}
	return cats
}

// CodesOf returns the codes of the given categories.
func CodesOf(categories Categories) []string {
	var sl []string
	for _, c := range categories {
		sl = append(sl, *c.Code)
	}
	return sl
}
