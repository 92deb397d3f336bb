package category

import (
	"context"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/jinzhu/gorm"
)

// Service is the main struct exported by this Categories service.
type Service struct{}

// List returns the categories in sidebar order.
func (cs *Service) List(tx *gorm.DB) (*Categories, *gz.ErrMsg) {
	var categories Categories

	if err := tx.Model(&Category{}).Find(&categories).Error; err != nil {
		return nil, gz.NewErrorMessageWithBase(gz.ErrorUnexpected, err)
	}
	order := make(map[string]int, len(Codes))
	for i, c := range Codes {
		order[c] = i
	}
	sorted := make(Categories, 0, len(categories))
	for _, code := range Codes {
		for _, c := range categories {
			if c.Code != nil && *c.Code == code {
				sorted = append(sorted, c)
			}
		}
	}
	for _, c := range categories {
		if c.Code == nil {
			continue
		}
		if _, known := order[*c.Code]; !known {
			sorted = append(sorted, c)
		}
	}
	return &sorted, nil
}

// Seed creates the default categories that are missing from the DB.
func (cs *Service) Seed(ctx context.Context, tx *gorm.DB) *gz.ErrMsg {
	for _, c := range Defaults() {
		c := c
		if _, err := ByCode(tx, *c.Code); err == nil {
			continue
		}
		if err := tx.Create(&c).Error; err != nil {
			gz.LoggerFromContext(ctx).Error("Unable to create category", *c.Code, err)
			return gz.NewErrorMessageWithBase(gz.ErrorDbSave, err)
		}
	}
	return nil
}
