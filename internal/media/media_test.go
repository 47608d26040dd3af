package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestProcessPNGBecomesJPEG(t *testing.T) {
	result, err := Process(bytes.NewReader(testPNG(100, 80)))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
	if result.Width != 100 || result.Height != 80 {
		t.Errorf("expected 100x80, got %dx%d", result.Width, result.Height)
	}
}

func TestProcessGIF(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 10, 10), []color.Color{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := Process(&buf); err != nil {
		t.Fatalf("Process GIF: %v", err)
	}
}

func TestProcessDownscaleKeepsAspect(t *testing.T) {
	result, err := Process(bytes.NewReader(testPNG(3200, 800)))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != MaxDimension || b.Dy() != 400 {
		t.Errorf("expected %dx400, got %dx%d", MaxDimension, b.Dx(), b.Dy())
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(bytes.NewReader(testPNG(50, 50)))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}
	if result.Width != 50 || result.Height != 50 {
		t.Errorf("small image should not be resized: got %dx%d", result.Width, result.Height)
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	_, err := Process(strings.NewReader("not an image"))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestLocalUpload(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocal(dir, "/uploads/")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	u := &Uploader{Storage: local}

	url, err := u.Upload(context.Background(), "store-1", bytes.NewReader(testPNG(20, 20)))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/stores/store-1/") || !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("unexpected url %q", url)
	}

	rel := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("stored file is not an image: %v", err)
	}
}

func TestLocalPutStaysInDir(t *testing.T) {
	dir := t.TempDir()
	local, _ := NewLocal(filepath.Join(dir, "up"), "/uploads")

	url, err := local.Put(context.Background(), "../../escape.jpg", []byte("x"), "image/jpeg")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/uploads/escape.jpg" {
		t.Errorf("unexpected url %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "up", "escape.jpg")); err != nil {
		t.Errorf("expected file inside upload dir: %v", err)
	}
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h RGB
// pixels, with no image data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProcessRejectsHugeDimensions(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"png 20000x20000", pngHeader(20000, 20000)},
		// Logical screen of 65535x65535 with no color table.
		{"gif 65535x65535", []byte("GIF89a\xff\xff\xff\xff\x00\x00\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Process(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrUnsupported) {
				t.Fatalf("expected ErrUnsupported, got %v", err)
			}
			if !strings.Contains(err.Error(), "exceeds") {
				t.Errorf("expected a pixel limit error, got %v", err)
			}
		})
	}
}
