package imagepkg

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/youruser/talingdeck/internal/deck"
)

const (
	sheetWidth = 2150
	margin     = 48
	leadW      = 400
	leadH      = 560
	tileW      = 215
	tileH      = 300
	tileGap    = 8
	pipSize    = 16
	pipRow     = pipSize + 12
	perRow     = (sheetWidth - 2*margin + tileGap) / (tileW + tileGap)
)

var (
	background  = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	placeholder = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	pipColor    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// Tile is one distinct card on the sheet; Count is drawn as pips beneath it.
type Tile struct {
	Image image.Image
	Count int
}

// ComposeDeckImage lays out the lead card and QR code across the top and the
// remaining cards in rows below. Nil images are drawn as grey placeholders.
func ComposeDeckImage(lead image.Image, tiles []Tile, qr image.Image) image.Image {
	top := margin
	if lead != nil || qr != nil {
		top += leadH + margin
	}
	rows := (len(tiles) + perRow - 1) / perRow
	h := top + rows*(tileH+pipRow+tileGap) + margin
	canvas := imaging.New(sheetWidth, h, background)

	if lead != nil {
		l := imaging.Fit(lead, leadW, leadH, imaging.Lanczos)
		canvas = imaging.Paste(canvas, l, image.Pt(margin, margin))
	}
	if qr != nil {
		q := imaging.Resize(qr, leadW, leadW, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(sheetWidth-margin-leadW, margin))
	}

	for i, t := range tiles {
		x := margin + (i%perRow)*(tileW+tileGap)
		y := top + (i/perRow)*(tileH+pipRow+tileGap)
		var img image.Image
		if t.Image != nil {
			img = imaging.Fill(t.Image, tileW, tileH, imaging.Center, imaging.Lanczos)
		} else {
			img = imaging.New(tileW, tileH, placeholder)
		}
		canvas = imaging.Paste(canvas, img, image.Pt(x, y))
		pip := imaging.New(pipSize, pipSize, pipColor)
		for p := 0; p < t.Count; p++ {
			canvas = imaging.Paste(canvas, pip, image.Pt(x+p*(pipSize+4), y+tileH+6))
		}
	}
	return canvas
}

// RenderDeck fetches the deck's card art and composes the sheet. Cards whose
// art cannot be fetched get a placeholder; qrText, when set, is drawn as a
// QR code in the top right.
func RenderDeck(ctx context.Context, cats deck.Categories, qrText string, fetch Fetcher, logger *zap.Logger) (image.Image, error) {
	if fetch == nil {
		fetch = DownloadImage
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	load := func(e deck.Entry) image.Image {
		if e.Card.Image == "" {
			return nil
		}
		img, err := fetch(ctx, e.Card.Image)
		if err != nil {
			logger.Warn("card image download failed",
				zap.String("rule_name", e.Card.RuleName),
				zap.Error(err))
			return nil
		}
		return img
	}

	var lead image.Image
	if cats.Exclusive != nil {
		lead = load(*cats.Exclusive)
		if lead == nil {
			lead = imaging.New(leadW, leadH, placeholder)
		}
	}

	var tiles []Tile
	for _, group := range [][]deck.Entry{cats.Avatars, cats.Magics, cats.Constructs, cats.Others, cats.Life} {
		for _, e := range group {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			tiles = append(tiles, Tile{Image: load(e), Count: e.Count})
		}
	}

	var qr image.Image
	if qrText != "" {
		q, err := GenerateQRImage(qrText, DefaultQRSize)
		if err != nil {
			return nil, err
		}
		qr = q
	}
	return ComposeDeckImage(lead, tiles, qr), nil
}
