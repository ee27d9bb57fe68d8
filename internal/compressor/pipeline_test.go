package compressor

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestProcessSingleImageMissing(t *testing.T) {
	opts := testOptions(t, FormatJPEG)
	path := filepath.Join(t.TempDir(), "ghost.jpg")

	err := ProcessSingleImage(path, opts)
	if !IsKind(err, KindPathNotFound) {
		t.Fatalf("Expected KindPathNotFound, got %v", err)
	}
	assertNoFiles(t, opts.OutputDir)
}

func TestProcessSingleImageNotAnImage(t *testing.T) {
	opts := testOptions(t, FormatJPEG)
	path := filepath.Join(t.TempDir(), "notes.jpg")
	if err := os.WriteFile(path, []byte("definitely not pixels"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := ProcessSingleImage(path, opts)
	if !IsKind(err, KindInvalidFormat) {
		t.Fatalf("Expected KindInvalidFormat, got %v", err)
	}
	assertNoFiles(t, opts.OutputDir)
}

func TestProcessSingleImageRotatesBeforeResize(t *testing.T) {
	opts := testOptions(t, FormatPNG)
	opts.Width = 100
	path := writeOrientedJPEG(t, t.TempDir(), "portrait.jpg", 400, 300, 6)

	if err := ProcessSingleImage(path, opts); err != nil {
		t.Fatalf("ProcessSingleImage: %v", err)
	}

	img := decodeFile(t, OutputPath(path, opts))
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 133 {
		t.Errorf("Expected 100x133, got %v", img.Bounds().Size())
	}
}

func TestProcessSingleImageAppliesEveryOrientation(t *testing.T) {
	writers := map[string]func(*testing.T, string, string, int, int, uint16) string{
		"jpg": writeOrientedJPEG,
		"png": writeOrientedPNG,
	}

	for ext, write := range writers {
		for value := uint16(1); value <= 8; value++ {
			opts := testOptions(t, FormatPNG)
			opts.Width = 50
			path := write(t, t.TempDir(), "landscape."+ext, 100, 50, value)

			if err := ProcessSingleImage(path, opts); err != nil {
				t.Fatalf("%s orientation %d: %v", ext, value, err)
			}

			wantW, wantH := 50, 25
			if Orientation(value).SwapsDimensions() {
				wantW, wantH = 50, 100
			}
			size := decodeFile(t, OutputPath(path, opts)).Bounds().Size()
			if size.X != wantW || size.Y != wantH {
				t.Errorf("%s orientation %d: expected %dx%d, got %dx%d", ext, value, wantW, wantH, size.X, size.Y)
			}
		}
	}
}

func TestProcessSingleImageKeepsSmallImages(t *testing.T) {
	opts := testOptions(t, FormatJPEG)
	opts.Width = 1000
	path := writeTestPNG(t, t.TempDir(), "small.png", 40, 30)

	if err := ProcessSingleImage(path, opts); err != nil {
		t.Fatalf("ProcessSingleImage: %v", err)
	}

	img := decodeFile(t, filepath.Join(opts.OutputDir, "small_compressed.jpg"))
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("Expected 40x30, got %v", img.Bounds().Size())
	}
}

func TestProcessSingleImageDropsExif(t *testing.T) {
	opts := testOptions(t, FormatJPEG)
	opts.Privacy = PrivacyKeepAll
	path := writeOrientedJPEG(t, t.TempDir(), "tagged.jpg", 16, 8, 3)

	if err := ProcessSingleImage(path, opts); err != nil {
		t.Fatalf("ProcessSingleImage: %v", err)
	}

	data, err := os.ReadFile(OutputPath(path, opts))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if bytes.Contains(data, []byte("Exif\x00\x00")) {
		t.Error("Expected output to carry no EXIF segment")
	}
	if got := ReadOrientation(OutputPath(path, opts)); got != OrientationNormal {
		t.Errorf("Expected output to read as normal, got %v", got)
	}
}
