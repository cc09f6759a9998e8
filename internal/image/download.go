package imagepkg

import (
	"bytes"
	"context"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/youruser/talingdeck/internal/util"
)

// Fetcher loads a card image by URL.
type Fetcher func(ctx context.Context, url string) (image.Image, error)

// DownloadImage downloads an image from URL and decodes it.
func DownloadImage(ctx context.Context, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, url, 10*time.Second)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", url)
	}
	return img, nil
}
