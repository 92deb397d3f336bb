package client

import (
	"time"

	"github.com/gazebo-web/model-gallery/bundles/category"
	"github.com/gazebo-web/model-gallery/catalog"
	"github.com/gazebo-web/model-gallery/proxy"
)

// DefaultDescription replaces an empty model description.
const DefaultDescription = "暂无简介"

// Model is a catalog record ready for display.
type Model struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Type            string     `json:"type"`
	Category        string     `json:"category"`
	Size            string     `json:"size"`
	ImageURL        string     `json:"imageUrl"`
	PreviewModelURL string     `json:"previewModelUrl"`
	DownloadCount   int        `json:"downloadCount"`
	ViewCount       int        `json:"viewCount"`
	LikeCount       int        `json:"likeCount"`
	IsLiked         bool       `json:"isLiked"`
	CreatedAt       *time.Time `json:"createdAt"`
	PackageName     string     `json:"packageName"`
}

// FromRecord maps a listing record into a display model. File-server URLs
// are rewritten with proxy.RewriteFileURL using hosts, or the default hosts
// when none are given. The like count starts from the view count.
func FromRecord(r catalog.Record, hosts ...string) Model {
	m := Model{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Type:            category.Label(r.Category),
		Category:        r.Category,
		Size:            catalog.FormatFileSize(r.PackageSize),
		ImageURL:        proxy.RewriteFileURL(r.CoverImage, hosts...),
		PreviewModelURL: proxy.RewriteFileURL(r.PreviewModelURL, hosts...),
		DownloadCount:   r.DownloadCount,
		ViewCount:       r.ViewCount,
		LikeCount:       r.ViewCount,
		PackageName:     r.PackageName,
	}
	if m.Description == "" {
		m.Description = DefaultDescription
	}
	if t, ok := catalog.ParseTime(r.CreateTime); ok {
		m.CreatedAt = &t
	}
	return m
}

// ToggleLike flips the liked flag and moves the like count with it.
func (m *Model) ToggleLike() {
	if m.IsLiked {
		m.IsLiked = false
		m.LikeCount--
		return
	}
	m.IsLiked = true
	m.LikeCount++
}
