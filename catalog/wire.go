// Package catalog holds the wire contract shared by the catalog backend and
// its clients: the listing envelope, the record shapes and the formatting
// helpers both sides agree on.
package catalog

import (
	"fmt"
	"time"
)

// CodeOK is the envelope code of a successful listing response.
const CodeOK = "200"

// TimeLayout is the layout of Record.CreateTime.
const TimeLayout = "2006-01-02 15:04:05"

// Envelope is the response of GET /search/list.
type Envelope struct {
	Code string `json:"code"`
	Data *Page  `json:"data"`
	Msg  string `json:"msg"`
}

// OK returns true if the envelope carries a successful page.
func (e Envelope) OK() bool {
	return e.Code == CodeOK && e.Data != nil
}

// Page is one page of listing records.
type Page struct {
	Records []Record `json:"records"`
	Total   int64    `json:"total"`
	Current int64    `json:"current"`
	Size    int64    `json:"size"`
	Pages   int64    `json:"pages"`
}

// Record is a model as the listing endpoint serves it.
type Record struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	PackageSize     int64  `json:"packageSize"`
	CoverImage      string `json:"coverImage"`
	PreviewModelURL string `json:"previewModelUrl"`
	DownloadCount   int    `json:"downloadCount"`
	ViewCount       int    `json:"viewCount"`
	LikeCount       int    `json:"likeCount"`
	CreateTime      string `json:"createTime"`
	PackageName     string `json:"packageName"`
}

// DemoRecord is a model as the /api/models routes serve it.
type DemoRecord struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Size         string `json:"size"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Description  string `json:"description"`
	CreatedAt    string `json:"createdAt"`
	Downloads    int    `json:"downloads"`
	Likes        int    `json:"likes"`
	Rating       string `json:"rating"`
}

// DemoList is the response of the /api/models listing and search routes.
type DemoList struct {
	Success    bool         `json:"success"`
	Data       []DemoRecord `json:"data"`
	Total      int64        `json:"total"`
	Page       int64        `json:"page"`
	PageSize   int64        `json:"pageSize"`
	TotalPages int64        `json:"totalPages"`
}

// DemoResult is the response of the single model routes. Message is set
// when Success is false.
type DemoResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// TotalPages returns the number of pages needed for total items.
func TotalPages(total, size int64) int64 {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// FormatFileSize renders a byte count for display: 未知 for zero, bytes
// below 1 KB, then KB and MB with two decimals.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes <= 0:
		return "未知"
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// ParseTime reads a CreateTime value. Both TimeLayout and RFC 3339 are
// accepted.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{TimeLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
