package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
)

func TestValidateImageType(t *testing.T) {
	for _, ok := range []string{"image/jpeg", "image/png", "image/gif", "image/png; charset=binary"} {
		assert.NoError(t, ValidateImageType(ok), ok)
	}
	for _, bad := range []string{"", "image/webp", "text/plain", "png"} {
		assert.True(t, economy.IsValidation(ValidateImageType(bad)), bad)
	}
}

func TestBuildCardImages(t *testing.T) {
	base, foil, err := BuildCardImages(samplePNG(t))
	require.NoError(t, err)

	baseImg, err := png.Decode(bytes.NewReader(base))
	require.NoError(t, err)
	foilImg, err := png.Decode(bytes.NewReader(foil))
	require.NoError(t, err)
	assert.Equal(t, baseImg.Bounds(), foilImg.Bounds())

	b := color.NRGBAModel.Convert(baseImg.At(1, 1)).(color.NRGBA)
	f := color.NRGBAModel.Convert(foilImg.At(1, 1)).(color.NRGBA)
	assert.Greater(t, f.R, b.R, "foil is brighter")
	assert.Less(t, int(f.B)-int(b.B), int(f.R)-int(b.R), "foil is more saturated")
	assert.Equal(t, b.A, f.A)

	_, _, err = BuildCardImages([]byte("not an image"))
	assert.True(t, economy.IsValidation(err))
}

func TestModulateClamps(t *testing.T) {
	assert.Equal(t, uint8(255), modulate(250, 100))
	assert.Equal(t, uint8(0), modulate(0, 200))
}

func TestFoilVariantKeepsBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 6, 9))
	assert.Equal(t, src.Bounds(), foilVariant(src).Bounds())
}

func TestLocalImageStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalImageStore(dir, "https://img.example/cards/")
	require.NoError(t, err)
	url, err := store.PutCardImage(context.Background(), "rare/1_a.png", []byte("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/cards/rare/1_a.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "rare", "1_a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)

	store, err = NewLocalImageStore(dir, "")
	require.NoError(t, err)
	url, err = store.PutCardImage(context.Background(), "../../escape.png", []byte("y"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, err)
}
