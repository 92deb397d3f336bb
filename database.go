package main

// Import this file's dependencies
import (
	"context"
	"log"
	"math/rand"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/category"
	"github.com/gazebo-web/model-gallery/bundles/models"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/jinzhu/gorm"
)

const defaultPopulateCount = models.DefaultPopulateCount

// DBMigrate auto migrates database tables
func DBMigrate(ctx context.Context, db *gorm.DB) {
	// Note about Migration from GORM doc: http://jinzhu.me/gorm/database.html#migration
	//
	// WARNING: AutoMigrate will ONLY create tables, missing columns and missing indexes,
	// and WON'T change existing column's type or delete unused columns to protect your data.
	//

	if db != nil {
		db.AutoMigrate(
			&category.Category{},
			&models.Model{},
		)
	}
}

// DBDropModels drops all tables from DB. Used by tests.
func DBDropModels(ctx context.Context, db *gorm.DB) {
	if db != nil {
		db.DropTableIfExists(
			&models.Model{},
			&category.Category{},
		)
	}
}

// DBAddDefaultData adds default data. Eg. Categories.
func DBAddDefaultData(ctx context.Context, db *gorm.DB) {
	if db != nil {
		if em := (&category.Service{}).Seed(ctx, db); em != nil {
			gz.LoggerFromContext(ctx).Critical("Error adding default categories", em.BaseError)
			log.Fatal("Error adding default categories", em.BaseError)
		}
	}
}

// DBPopulate populates an empty models table with count generated models.
// The same seed gives the same catalog.
func DBPopulate(ctx context.Context, db *gorm.DB, count int, seed int64) {
	if db == nil || count == 0 {
		return
	}
	rnd := rand.New(rand.NewSource(seed))
	if em := (&models.Service{}).Populate(ctx, db, count, globals.FileServerURL, rnd); em != nil {
		gz.LoggerFromContext(ctx).Error("Error populating models", em.BaseError)
	}
}
