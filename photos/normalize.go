package photos

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/apex/log"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
)

const (
	maxImageDimension = 1280
	jpegQuality       = 85
)

// orientation reads the EXIF orientation tag, defaulting to 1 (upright)
// when the tag or the EXIF block is missing.
func orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// reorient bakes the common EXIF rotations into the pixels. Mirrored
// orientations (2, 4, 5, 7) are rare from phone cameras and pass through.
func reorient(img image.Image, orient int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch orient {
	case 3: // rotated 180
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(w-1-x, h-1-y, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	case 6: // rotated 90 CW
		out := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(h-1-y, x, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	case 8: // rotated 90 CCW
		out := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(y, w-1-x, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	}
	return img
}

// normalizeJPEG corrects orientation and caps the longer edge at
// maxImageDimension, re-encoding at a constant quality. Images already
// upright and within the cap are returned unchanged.
func normalizeJPEG(data []byte) ([]byte, error) {
	orient := orientation(data)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if orient != 1 {
		img = reorient(img, orient)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if orient == 1 && w <= maxImageDimension && h <= maxImageDimension {
		return data, nil
	}

	if w > maxImageDimension || h > maxImageDimension {
		scale := float64(maxImageDimension) / float64(w)
		if s := float64(maxImageDimension) / float64(h); s < scale {
			scale = s
		}
		scaled := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	log.Infof("Photo normalized: %d bytes -> %d bytes (orientation %d)", len(data), buf.Len(), orient)
	return buf.Bytes(), nil
}
