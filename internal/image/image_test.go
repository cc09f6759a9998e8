package imagepkg

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/talingdeck/internal/cards"
	"github.com/youruser/talingdeck/internal/deck"
)

func TestClampQRSize(t *testing.T) {
	assert.Equal(t, DefaultQRSize, ClampQRSize(0))
	assert.Equal(t, minQRSize, ClampQRSize(10))
	assert.Equal(t, maxQRSize, ClampQRSize(5000))
	assert.Equal(t, 256, ClampQRSize(256))
}

func TestGenerateQRPNG(t *testing.T) {
	b, err := GenerateQRPNG("deck:abc", 256)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestComposeDeckImageSize(t *testing.T) {
	tiles := make([]Tile, perRow+1)
	out := ComposeDeckImage(nil, tiles, nil)
	assert.Equal(t, sheetWidth, out.Bounds().Dx())
	assert.Equal(t, margin+2*(tileH+pipRow+tileGap)+margin, out.Bounds().Dy())

	withLead := ComposeDeckImage(imaging.New(10, 10, color.White), nil, nil)
	assert.Equal(t, margin+leadH+margin+margin, withLead.Bounds().Dy())
}

func TestRenderDeckUsesFetcherAndPlaceholders(t *testing.T) {
	d := deck.New()
	withArt := cards.Card{Name: "Garuda", RuleName: "Garuda", Type: "Avatar", Image: "https://img/garuda.png"}
	broken := cards.Card{Name: "Naga", RuleName: "Naga", Type: "Magic", Image: "https://img/broken.png"}
	noArt := cards.Card{Name: "Lotus", RuleName: "Lotus", Type: "Life"}
	for _, c := range []cards.Card{withArt, withArt, broken, noArt} {
		require.True(t, d.AddCard(c, nil).OK())
	}

	var fetched []string
	fetch := func(ctx context.Context, url string) (image.Image, error) {
		fetched = append(fetched, url)
		if url == broken.Image {
			return nil, errors.New("404")
		}
		return imaging.New(50, 70, color.NRGBA{R: 0xff, A: 0xff}), nil
	}

	out, err := RenderDeck(context.Background(), d.Categorize(), "http://localhost/api/decks/x/snapshot", fetch, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{withArt.Image, broken.Image}, fetched)
	assert.Equal(t, sheetWidth, out.Bounds().Dx())

	// first tile carries the fetched art, the third is a placeholder
	top := margin + leadH + margin
	r, _, _, _ := out.At(margin+tileW/2, top+tileH/2).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	ph := out.At(margin+2*(tileW+tileGap)+tileW/2, top+tileH/2)
	assert.Equal(t, color.NRGBAModel.Convert(placeholder), color.NRGBAModel.Convert(ph))
}

func TestRenderDeckHonoursCancellation(t *testing.T) {
	d := deck.New()
	require.True(t, d.AddCard(cards.Card{Name: "A", RuleName: "A", Type: "Avatar"}, nil).OK())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RenderDeck(ctx, d.Categorize(), "", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateQRPNGRejectsOversizedText(t *testing.T) {
	_, err := GenerateQRPNG(strings.Repeat("x", 8000), 256)
	assert.ErrorIs(t, err, ErrQRContent)
}
