package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"mime"
	"net/http"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
)

const (
	foilBrightness = 1.1
	foilSaturation = 1.2
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// ValidateImageType accepts jpeg, png and gif uploads.
func ValidateImageType(contentType string) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return economy.NewValidationError("Invalid file type! Only JPEG, PNG and GIF images are allowed.")
	}
	if _, ok := allowedImageTypes[mediaType]; !ok {
		return economy.NewValidationError("Invalid file type! Only JPEG, PNG and GIF images are allowed.")
	}
	return nil
}

// BuildCardImages decodes an upload and returns it re-encoded as PNG along
// with its foil variant.
func BuildCardImages(data []byte) (base, foil []byte, err error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, economy.NewValidationError("Could not read the image: %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, nil, fmt.Errorf("failed to encode card image: %w", err)
	}
	base = bytes.Clone(buf.Bytes())

	buf.Reset()
	if err := png.Encode(&buf, foilVariant(img)); err != nil {
		return nil, nil, fmt.Errorf("failed to encode foil image: %w", err)
	}
	return base, buf.Bytes(), nil
}

// foilVariant brightens and saturates every pixel.
func foilVariant(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			r, g, bl := float64(c.R), float64(c.G), float64(c.B)
			lum := 0.299*r + 0.587*g + 0.114*bl
			dst.SetNRGBA(x, y, color.NRGBA{
				R: modulate(r, lum),
				G: modulate(g, lum),
				B: modulate(bl, lum),
				A: c.A,
			})
		}
	}
	return dst
}

func modulate(v, lum float64) uint8 {
	v = (lum + (v-lum)*foilSaturation) * foilBrightness
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v + 0.5)
}

// ImageFetcher downloads an uploaded attachment.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type HTTPImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewHTTPImageFetcher() *HTTPImageFetcher {
	return &HTTPImageFetcher{
		client:   &http.Client{Timeout: config.ImageFetchTimeout},
		maxBytes: config.MaxImageBytes,
	}
}

func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, economy.NewValidationError("Image is too large! The limit is %d MB.", f.maxBytes>>20)
	}
	return data, nil
}
