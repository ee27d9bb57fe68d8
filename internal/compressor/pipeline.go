package compressor

import (
	"bufio"
	"errors"
	"image"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ProcessSingleImage decodes the image at path, corrects its orientation,
// downsizes it to opts.Width when narrower, and writes the re-encoded result
// into opts.OutputDir. Orientation must be fixed before resizing or rotated
// images end up with the wrong aspect ratio.
func ProcessSingleImage(path string, opts ProcessOptions) error {
	img, err := loadImage(path)
	if err != nil {
		return err
	}

	img = ReadOrientation(path).Apply(img)
	img = resizeToWidth(img, opts.Width)

	return writeImage(img, OutputPath(path, opts), opts)
}

func loadImage(path string) (image.Image, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, errPathNotFound(path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errInvalidFormat(path, err)
	}
	defer file.Close()

	img, err := imaging.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, errInvalidFormat(path, err)
	}
	return img, nil
}
