package portrait

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

const testMaxBytes = int64(10 << 20)

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func makeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode test JPEG: %v", err)
	}
	return buf.Bytes()
}

func makeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(width, height)); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func decodePrepared(t *testing.T, data []byte) (image.Image, string) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode prepared image: %v", err)
	}
	return img, format
}

func TestPrepareImageDownscalesToBound(t *testing.T) {
	out, err := PrepareImage(makeTestJPEG(t, 2048, 1024), "image/jpeg", testMaxBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, format := decodePrepared(t, out)
	if format != "jpeg" {
		t.Fatalf("expected jpeg output, got %s", format)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 1024 || bounds.Dy() != 512 {
		t.Fatalf("expected 1024x512, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPrepareImagePreservesPortraitAspect(t *testing.T) {
	out, err := PrepareImage(makeTestJPEG(t, 2000, 3000), "image/jpeg", testMaxBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, _ := decodePrepared(t, out)
	bounds := img.Bounds()
	if bounds.Dy() != 1024 {
		t.Fatalf("expected height 1024, got %d", bounds.Dy())
	}
	if bounds.Dx() > 1024 {
		t.Fatalf("width %d exceeds bound", bounds.Dx())
	}
	// 2:3 input should stay roughly 2:3
	if bounds.Dx() < 680 || bounds.Dx() > 684 {
		t.Fatalf("unexpected width %d for 2:3 input", bounds.Dx())
	}
}

func TestPrepareImageNeverUpscales(t *testing.T) {
	out, err := PrepareImage(makeTestJPEG(t, 100, 80), "image/jpeg", testMaxBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, _ := decodePrepared(t, out)
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Fatalf("small image was resized to %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPrepareImageAcceptsPNG(t *testing.T) {
	out, err := PrepareImage(makeTestPNG(t, 1200, 600), "image/png", testMaxBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, format := decodePrepared(t, out)
	if format != "jpeg" {
		t.Fatalf("expected jpeg re-encode of PNG input, got %s", format)
	}
}

func TestPrepareImageRejectsNonImageType(t *testing.T) {
	_, err := PrepareImage(makeTestJPEG(t, 64, 64), "text/plain", testMaxBytes)
	if err == nil {
		t.Fatalf("expected rejection of non-image content type")
	}
	if KindOf(err) != KindInvalidInput {
		t.Fatalf("expected invalid_input, got %s", KindOf(err))
	}
}

func TestPrepareImageRejectsOversize(t *testing.T) {
	data := makeTestJPEG(t, 64, 64)
	_, err := PrepareImage(data, "image/jpeg", int64(len(data))-1)
	if err == nil {
		t.Fatalf("expected rejection above size ceiling")
	}
	if KindOf(err) != KindInvalidInput {
		t.Fatalf("expected invalid_input, got %s", KindOf(err))
	}
}

func TestPrepareImageRejectsCorruptBytes(t *testing.T) {
	_, err := PrepareImage([]byte("definitely not an image"), "image/jpeg", testMaxBytes)
	if err == nil {
		t.Fatalf("expected decode failure")
	}
	if KindOf(err) != KindUnprocessableImage {
		t.Fatalf("expected unprocessable_image, got %s", KindOf(err))
	}
}
