package media

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	apperrors "github.com/Mohameddacar/xasuusqor/internal/errors"
)

// Thumbnailer renders fixed-size thumbnails for image attachments shown
// in the entry media gallery.
type Thumbnailer struct {
	width  int
	height int
}

// NewThumbnailer creates a Thumbnailer with the given bounding box.
func NewThumbnailer(width, height int) *Thumbnailer {
	return &Thumbnailer{width: width, height: height}
}

// Thumbnail decodes an image (JPEG, PNG, GIF or WebP) and writes a JPEG
// thumbnail fitted within the configured bounds, preserving aspect ratio.
func (t *Thumbnailer) Thumbnail(r io.Reader, w io.Writer) error {
	img, _, err := image.Decode(r)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalid, "failed to decode image", err)
	}

	thumb := imaging.Fit(img, t.width, t.height, imaging.Lanczos)
	if err := imaging.Encode(w, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, "failed to encode thumbnail", err)
	}
	return nil
}

// Dimensions decodes only the image header and returns its size.
func Dimensions(r io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalid, "failed to decode image header", err)
	}
	return cfg.Width, cfg.Height, nil
}
