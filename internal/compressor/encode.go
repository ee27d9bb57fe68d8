package compressor

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

type encodeFunc func(w io.Writer, img image.Image, quality int) error

// OutputPath returns <OutputDir>/<stem>_compressed.<ext> for inputPath.
func OutputPath(inputPath string, opts ProcessOptions) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(opts.OutputDir, fmt.Sprintf("%s_compressed.%s", stem, opts.Format.Extension()))
}

func encoderFor(format OutputFormat) (encodeFunc, error) {
	switch format {
	case FormatJPEG:
		return encodeJPEG, nil
	case FormatPNG:
		return encodePNG, nil
	case FormatWebP:
		return nil, errInternal("WebP format not yet supported")
	default:
		return nil, errInternal(fmt.Sprintf("unsupported output format: %s", format))
	}
}

func encodeJPEG(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, dropAlpha(img), imaging.JPEG, imaging.JPEGQuality(quality))
}

func encodePNG(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(pngCompressionLevel(quality)))
}

// pngCompressionLevel trades size for speed: the highest quality preset
// gets the fastest compression, the lowest preset the smallest output.
func pngCompressionLevel(quality int) png.CompressionLevel {
	switch {
	case quality >= 90:
		return png.BestSpeed
	case quality >= 75:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// dropAlpha converts img to 8-bit RGB by discarding the alpha channel
// without compositing.
func dropAlpha(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// writeImage encodes img into a temporary file next to destPath and renames
// it into place, so a failed encode never leaves a partial output behind.
func writeImage(img image.Image, destPath string, opts ProcessOptions) error {
	encode, err := encoderFor(opts.Format)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".imgcompress-*.tmp")
	if err != nil {
		return errSaveFailed(destPath, err)
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return errSaveFailed(destPath, err)
	}

	bw := bufio.NewWriter(tmpFile)
	if err := encode(bw, img, opts.Quality.Percentage()); err != nil {
		_ = tmpFile.Close()
		return errSaveFailed(destPath, err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmpFile.Close()
		return errSaveFailed(destPath, err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return errSaveFailed(destPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return errSaveFailed(destPath, err)
	}

	if err := replaceFile(tmpFile.Name(), destPath); err != nil {
		return errSaveFailed(destPath, err)
	}
	return nil
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
