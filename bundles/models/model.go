package models

import (
	"fmt"
	"time"

	"github.com/gazebo-web/model-gallery/catalog"
	"github.com/jinzhu/gorm"
)

// Model represents a robot model of the gallery catalog.
//
// swagger:model dbModel
type Model struct {
	// Override default GORM Model fields
	ID        uint       `gorm:"primary_key" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"-"`
	DeletedAt *time.Time `sql:"index" json:"-"`

	// Unique identifier for the the model
	UUID *string `gorm:"unique_index" json:"uuid"`

	// The display name of the model
	Name *string `gorm:"not null" json:"name"`

	// A description of the model (max 65,535 chars)
	Description *string `gorm:"type:text" json:"description,omitempty"`

	// Category code, one of category.Codes
	Category *string `gorm:"index" json:"category"`

	// Kind of robot, eg. 机械臂
	Type *string `gorm:"index" json:"type"`

	// Name of the downloadable package
	PackageName *string `json:"packageName,omitempty"`

	// Bytes of the downloadable package
	PackageSize int64 `json:"packageSize"`

	// URL of the cover image on the file server
	CoverImage *string `json:"coverImage,omitempty"`

	// URL of the GLB preview on the file server
	PreviewModelURL *string `json:"previewModelUrl,omitempty"`

	DownloadCount int     `json:"downloadCount"`
	ViewCount     int     `json:"viewCount"`
	LikeCount     int     `json:"likeCount"`
	Rating        float64 `json:"rating"`
}

// Models is an array of Model
//
// swagger:model
type Models []Model

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToRecord returns the listing record of the model.
func (m *Model) ToRecord() catalog.Record {
	return catalog.Record{
		ID:              m.ID,
		Name:            str(m.Name),
		Description:     str(m.Description),
		Category:        str(m.Category),
		PackageSize:     m.PackageSize,
		CoverImage:      str(m.CoverImage),
		PreviewModelURL: str(m.PreviewModelURL),
		DownloadCount:   m.DownloadCount,
		ViewCount:       m.ViewCount,
		LikeCount:       m.LikeCount,
		CreateTime:      m.CreatedAt.Format(catalog.TimeLayout),
		PackageName:     str(m.PackageName),
	}
}

// ToDemoRecord returns the record served by the /api/models routes.
func (m *Model) ToDemoRecord() catalog.DemoRecord {
	return catalog.DemoRecord{
		ID:           m.ID,
		Name:         str(m.Name),
		Size:         catalog.FormatFileSize(m.PackageSize),
		Type:         str(m.Type),
		Category:     str(m.Category),
		ImageURL:     fmt.Sprintf("/api/models/%d/image", m.ID),
		ThumbnailURL: fmt.Sprintf("/api/models/%d/thumbnail", m.ID),
		Description:  str(m.Description),
		CreatedAt:    m.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		Downloads:    m.DownloadCount,
		Likes:        m.LikeCount,
		Rating:       fmt.Sprintf("%.1f", m.Rating),
	}
}

// Records returns the listing records of the models.
func (ms Models) Records() []catalog.Record {
	out := make([]catalog.Record, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToRecord())
	}
	return out
}

// DemoRecords returns the /api/models records of the models.
func (ms Models) DemoRecords() []catalog.DemoRecord {
	out := make([]catalog.DemoRecord, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDemoRecord())
	}
	return out
}

// QueryForModels returns a gorm query configured to query models.
func QueryForModels(q *gorm.DB) *gorm.DB {
	return q.Model(&Model{})
}

// GetModelByID returns a model by its id.
func GetModelByID(tx *gorm.DB, id uint) (*Model, error) {
	var m Model
	if err := QueryForModels(tx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
