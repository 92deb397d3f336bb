// Package assets stores the cover images of the gallery models and renders
// their thumbnails.
package assets

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ThumbnailWidth is the width of the card thumbnails.
const ThumbnailWidth = 300

// Thumbnail decodes a JPEG or PNG image and re-encodes it as a JPEG of the
// given width, keeping the aspect ratio. Images already narrower are not
// upscaled.
func Thumbnail(r io.Reader, width uint) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}
	if uint(img.Bounds().Dx()) > width {
		img = resize.Resize(width, 0, img, resize.Lanczos3)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, errors.Wrap(err, "encoding thumbnail")
	}
	return buf.Bytes(), nil
}
