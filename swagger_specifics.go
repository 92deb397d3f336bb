package main

import (
	"github.com/gazebo-web/model-gallery/catalog"
)

// This module contains swagger specifics related to doc generation.
// The are defined as private to avoid issues with linter and swagger
// requesting conflicting comments on types.

/////////////////////////////////////////////////
///////  swagger responses
/////////////////////////////////////////////////

// Listing envelope
// swagger:response listingEnvelope
type listingEnvelope struct {
	// In: body
	Envelope catalog.Envelope
}

// Page of models of the demo routes
// swagger:response demoList
type demoListResponse struct {
	// In: body
	List catalog.DemoList
}

// A single model of the demo routes
// swagger:response demoModel
type demoModel struct {
	// In: body
	Result catalog.DemoResult
}

// Error of the demo routes
// swagger:response demoError
type demoError struct {
	// In: body
	Result catalog.DemoResult
}

// Categories with their model counts
// swagger:response categoryList
type categoryList struct {
	// In: body
	Categories []categoryInfo
}

/////////////////////////////////////////////////
///////  swagger Parameters
/////////////////////////////////////////////////

// swagger:parameters singleModel modelImage modelThumbnail likeModel
type idInPath struct {
	// in: path
	ID uint `json:"id"`
}

// swagger:parameters singleCategory
type slugInPath struct {
	// in: path
	Slug string `json:"slug"`
}

// swagger:parameters likeModel
type likeBody struct {
	// in: body
	Body likeRequest
}

// swagger:parameters listModels searchModels
type demoListParams struct {
	// The page to return
	// in: query
	// default: 1
	Page int64 `json:"page"`

	// Models per page
	// in: query
	// default: 10
	PageSize int64 `json:"pageSize"`

	// Robot type, eg. 机械臂
	// in: query
	Category string `json:"category"`

	// Search term
	// in: query
	Keyword string `json:"keyword"`
}

// swagger:parameters searchList
type searchListParams struct {
	// in: query
	// default: 1
	PageNum int64 `json:"pageNum"`

	// in: query
	// default: 10
	PageSize int64 `json:"pageSize"`

	// Category code, eg. robot
	// in: query
	Category string `json:"category"`

	// in: query
	Keyword string `json:"keyword"`
}
