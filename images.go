package newsdesk

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Inline images are always re-encoded as PNG so that repeated edit cycles
// never accumulate compression loss.
const (
	imageMIME    = "image/png"
	dataURIStart = "data:" + imageMIME + ";base64,"
)

// DecodeImage decodes raw bytes as PNG, JPEG, or GIF.
func DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnreadableImage)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return img, nil
}

// ResizeImage scales src to the requested size using Catmull-Rom
// interpolation. When preserveAspect is true the result is the largest size
// that fits inside targetWidth x targetHeight at the source's aspect ratio;
// otherwise the image is stretched to the exact target.
func ResizeImage(src image.Image, targetWidth, targetHeight int, preserveAspect bool) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if preserveAspect {
		targetWidth, targetHeight = FitDimensions(w, h, targetWidth, targetHeight)
	}
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}
	if targetWidth == w && targetHeight == h {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// FitDimensions returns the largest size bounded by maxW x maxH that keeps
// the w:h aspect ratio.
func FitDimensions(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return maxW, maxH
	}
	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	fw := int(float64(w)*scale + 0.5)
	fh := int(float64(h)*scale + 0.5)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

// EncodeImage encodes img as PNG and returns the raw bytes alongside their
// base64 form. PNG is lossless, so anything previously produced by this
// codec round-trips byte-for-byte.
func EncodeImage(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("%w: encode png: %v", ErrImageProcessing, err)
	}
	return buf.Bytes(), base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
