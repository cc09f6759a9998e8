package imagepkg

import (
	"bytes"
	"image"
	"image/png"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize     = 64
	maxQRSize     = 1024
	DefaultQRSize = 400
)

// ClampQRSize keeps requested QR sizes within what we are willing to render.
func ClampQRSize(size int) int {
	switch {
	case size <= 0:
		return DefaultQRSize
	case size < minQRSize:
		return minQRSize
	case size > maxQRSize:
		return maxQRSize
	}
	return size
}

// ErrQRContent is returned for text no QR code can hold, such as content
// beyond the largest symbol version.
var ErrQRContent = errors.New("qr content cannot be encoded")

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	// at a fixed recovery level New only fails on the content itself
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(ErrQRContent, err.Error())
	}
	b, err := q.PNG(ClampQRSize(size))
	if err != nil {
		return nil, errors.Wrap(err, "encode qr png")
	}
	return b, nil
}

// GenerateQRImage returns the QR code as an image for composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "decode qr png")
	}
	return img, nil
}
