package compressor

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func newTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: 0x80, A: 0xff})
		}
	}
	return img
}

func writeTestJPEG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, newTestImage(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode JPEG: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write JPEG: %v", err)
	}
	return path
}

func writeTestPNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, newTestImage(width, height)); err != nil {
		t.Fatalf("encode PNG: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write PNG: %v", err)
	}
	return path
}

// writeOrientedJPEG writes a JPEG whose APP1 segment carries a single IFD0
// entry: the orientation tag set to value.
func writeOrientedJPEG(t *testing.T, dir, name string, width, height int, value uint16) string {
	t.Helper()

	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, newTestImage(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode JPEG: %v", err)
	}
	data := encoded.Bytes()
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Fatalf("unexpected JPEG header: % x", data[:2])
	}

	payload := append([]byte("Exif\x00\x00"), buildOrientationTIFF(value)...)

	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xd8})
	buf.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(payload)+2))
	buf.Write(payload)
	buf.Write(data[2:])

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write JPEG: %v", err)
	}
	return path
}

// writeOrientedPNG writes a PNG with an eXIf chunk right after IHDR carrying
// the orientation tag set to value.
func writeOrientedPNG(t *testing.T, dir, name string, width, height int, value uint16) string {
	t.Helper()

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, newTestImage(width, height)); err != nil {
		t.Fatalf("encode PNG: %v", err)
	}
	data := encoded.Bytes()
	// signature (8) + IHDR chunk (4 length + 4 type + 13 data + 4 crc)
	const afterIHDR = 33
	if len(data) < afterIHDR || string(data[12:16]) != "IHDR" {
		t.Fatalf("unexpected PNG layout")
	}

	out := append([]byte{}, data[:afterIHDR]...)
	out = append(out, buildPNGChunk("eXIf", buildOrientationTIFF(value))...)
	out = append(out, data[afterIHDR:]...)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatalf("write PNG: %v", err)
	}
	return path
}

func buildPNGChunk(chunkType string, data []byte) []byte {
	chunk := make([]byte, 0, 12+len(data))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(data)))
	chunk = append(chunk, chunkType...)
	chunk = append(chunk, data...)
	crc := crc32.ChecksumIEEE(append([]byte(chunkType), data...))
	return binary.BigEndian.AppendUint32(chunk, crc)
}

func buildOrientationTIFF(value uint16) []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(1))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(orientationTagID))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(3))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(1))
	_ = binary.Write(&tiff, binary.LittleEndian, value)
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))
	return tiff.Bytes()
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func testOptions(t *testing.T, format OutputFormat) ProcessOptions {
	t.Helper()
	return ProcessOptions{
		Quality:   QualityMedium,
		Format:    format,
		Privacy:   PrivacyRemoveAll,
		OutputDir: t.TempDir(),
		Workers:   2,
	}
}
