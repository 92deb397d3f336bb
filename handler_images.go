package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/bundles/assets"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

// ModelImage writes the cover image of a model, or redirects to the
// placeholder image when there is none.
// You can request this method with the following cURL request:
//
//	curl -k -L -X GET http://localhost:9090/api/models/1/image
func ModelImage(tx *gorm.DB, w http.ResponseWriter, r *http.Request) (interface{}, *gz.ErrMsg) {
	return serveCover(w, r, false)
}

// ModelThumbnail writes the cover image of a model scaled down to
// assets.ThumbnailWidth, or redirects to the placeholder image.
// You can request this method with the following cURL request:
//
//	curl -k -L -X GET http://localhost:9090/api/models/1/thumbnail
func ModelThumbnail(tx *gorm.DB, w http.ResponseWriter, r *http.Request) (interface{}, *gz.ErrMsg) {
	return serveCover(w, r, true)
}

func serveCover(w http.ResponseWriter, r *http.Request, thumbnail bool) (interface{}, *gz.ErrMsg) {
	id, em := readModelID(r)
	if em != nil {
		return nil, em
	}
	placeholder := fmt.Sprintf(globals.PlaceholderURL, id)
	if globals.Assets == nil {
		http.Redirect(w, r, placeholder, http.StatusFound)
		return nil, nil
	}

	logger := gz.LoggerFromContext(r.Context())
	rc, err := globals.Assets.Open(r.Context(), assets.CoverKey(id))
	if err != nil {
		if !errors.Is(err, assets.ErrNotFound) {
			logger.Warning("Unable to open cover image", id, err)
		}
		http.Redirect(w, r, placeholder, http.StatusFound)
		return nil, nil
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	if !thumbnail {
		if _, err := io.Copy(w, rc); err != nil {
			logger.Error("Error writing cover image", id, err)
		}
		return nil, nil
	}

	b, err := assets.Thumbnail(rc, assets.ThumbnailWidth)
	if err != nil {
		logger.Warning("Unable to build thumbnail", id, err)
		w.Header().Del("Content-Type")
		http.Redirect(w, r, placeholder, http.StatusFound)
		return nil, nil
	}
	if _, err := w.Write(b); err != nil {
		logger.Error("Error writing thumbnail", id, err)
	}
	return nil, nil
}
