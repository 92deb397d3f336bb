package migrate

import (
	"context"
	"log"
	"strconv"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/models"
	"github.com/jinzhu/gorm"
	"github.com/satori/go.uuid"
)

// ModelUUIDs iterates over existing model DB records and sets a UUID to
// those models having UUID = nil. Rows imported from the original mock data
// do not have one.
func ModelUUIDs(ctx context.Context, db *gorm.DB) {
	tx := db.Begin()
	var modelList models.Models
	if err := tx.Model(&models.Model{}).Where("uuid IS NULL OR uuid = ''").
		Find(&modelList).Error; err != nil {
		tx.Rollback()
		log.Fatal("[MIGRATION] Error finding models without uuid", err)
	}
	for _, model := range modelList {
		id := uuid.NewV4().String()
		if err := tx.Model(&model).UpdateColumn("uuid", id).Error; err != nil {
			tx.Rollback()
			log.Fatal("[MIGRATION] Error setting model uuid", err, model.ID)
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Fatal("[MIGRATION] Error during 'ModelUUIDs' commit TX", err)
	}
	if len(modelList) > 0 {
		gz.LoggerFromContext(ctx).Info("[MIGRATION] Set uuid of", len(modelList), "models")
	}
}

// LikesFromViews is a migrate script that seeds the like count of models
// that have no likes with their view count, which is what the gallery used
// to show as likes.
// NOTE: This script is expected to be run just once on each server, and
// only when GALLERY_MIGRATE_LIKES_FROM_VIEWS is true.
func LikesFromViews(ctx context.Context, db *gorm.DB) {
	migrate, _ := gz.ReadEnvVar("GALLERY_MIGRATE_LIKES_FROM_VIEWS")
	if value, err := strconv.ParseBool(migrate); err != nil || !value {
		if err != nil && migrate != "" {
			log.Printf("Error parsing GALLERY_MIGRATE_LIKES_FROM_VIEWS. Got value: %s. Error: %s", migrate, err)
		}
		return
	}
	log.Println("[MIGRATION] Running 'Likes from views' migration script")

	res := db.Model(&models.Model{}).Where("like_count = 0 AND view_count > 0").
		UpdateColumn("like_count", gorm.Expr("view_count"))
	if res.Error != nil {
		log.Fatal("[MIGRATION] Error during 'Likes from views'", res.Error)
	}

	gz.LoggerFromContext(ctx).Info("[MIGRATION] Seeded likes of", res.RowsAffected, "models")
	log.Println("[MIGRATION] Successfully finished 'Likes from views' migration script")
}
