package portrait

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"log"
	"strings"

	_ "github.com/kolesa-team/go-webp/decoder" // WebP decoder registration

	"historical-portrait-server/modules/common/utils"
)

const (
	maxImageDimension = 1024
	jpegQuality       = 85
)

// PrepareImage - validate, decode, downscale and re-encode an uploaded photo.
// Output is always JPEG at fixed quality with neither dimension above
// maxImageDimension; smaller images pass through at their original size.
func PrepareImage(data []byte, declaredType string, maxBytes int64) ([]byte, error) {
	if !strings.HasPrefix(declaredType, "image/") {
		return nil, NewError(KindInvalidInput, "Only image files are allowed", nil)
	}

	if int64(len(data)) > maxBytes {
		return nil, NewError(KindInvalidInput,
			fmt.Sprintf("Image exceeds the %d MB upload limit", maxBytes>>20), nil)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, NewError(KindUnprocessableImage, "Invalid or corrupted image file", err)
	}

	bounds := img.Bounds()
	log.Printf("🔍 Decoded upload: %s %dx%d (%d bytes)", format, bounds.Dx(), bounds.Dy(), len(data))

	resized := utils.ResizeToFit(img, maxImageDimension)

	out, err := utils.EncodeJPEG(resized, jpegQuality)
	if err != nil {
		return nil, NewError(KindInternalError, "Failed to re-encode image", err)
	}

	outBounds := resized.Bounds()
	log.Printf("✅ Image prepared: %dx%d JPEG, %d bytes", outBounds.Dx(), outBounds.Dy(), len(out))

	return out, nil
}
