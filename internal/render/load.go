package render

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultHTTPClient is used by LoadBase when no client is given.
var DefaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// LoadBase decodes the photo at src, a file path or an http(s) URL. PNG,
// JPEG and WebP are supported. Every failure wraps ErrBaseUnavailable.
func LoadBase(ctx context.Context, src string, client *http.Client) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: no source", ErrBaseUnavailable)
	}
	var r io.ReadCloser
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if client == nil {
			client = DefaultHTTPClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBaseUnavailable, err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch %s: %w", ErrBaseUnavailable, src, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: fetch %s: status %d", ErrBaseUnavailable, src, resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBaseUnavailable, err)
		}
		r = f
	}
	defer r.Close()
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrBaseUnavailable, src, err)
	}
	return img, nil
}

// Scale resizes img to w x h for preview.
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if img == nil || w <= 0 || h <= 0 {
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Blank returns an opaque image of the given size, used when a scene has
// no photo yet but geometry still needs to be shown.
func Blank(w, h int, c image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if c == nil {
		c = image.White
	}
	draw.Draw(dst, dst.Bounds(), c, image.Point{}, draw.Src)
	return dst
}
