package compressor

import (
	"io"
	"os"

	exif "github.com/dsoprea/go-exif/v3"
	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/sirupsen/logrus"

	"github.com/horacio12345/image-compressor/internal/logger"
)

const (
	orientationTagID = 0x0112
	thumbnailIfdPath = "IFD1"
)

// orientationExtractor pulls the raw orientation tag out of an image
// container. found is false when the container parsed but carries no
// usable orientation value.
type orientationExtractor interface {
	name() string
	orientation(rs io.ReadSeeker) (value uint64, found bool, err error)
}

// goExifExtractor scans any container (JPEG APP1, PNG eXIf, bare TIFF) for
// the first TIFF header and parses the IFDs behind it.
type goExifExtractor struct{}

func (goExifExtractor) name() string {
	return "go-exif"
}

func (goExifExtractor) orientation(rs io.ReadSeeker) (uint64, bool, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, false, err
	}

	rawExif, err := exif.SearchAndExtractExifWithReader(rs)
	if err != nil {
		return 0, false, err
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return 0, false, err
	}

	for _, tag := range tags {
		if tag.TagId != orientationTagID || tag.IfdPath == thumbnailIfdPath {
			continue
		}
		value, ok := firstUint(tag.Value)
		return value, ok, nil
	}
	return 0, false, nil
}

// goexifExtractor handles JPEG APP1 and bare TIFF streams.
type goexifExtractor struct{}

func (goexifExtractor) name() string {
	return "goexif"
}

func (goexifExtractor) orientation(rs io.ReadSeeker) (uint64, bool, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, false, err
	}

	x, err := goexif.Decode(rs)
	if x == nil || (err != nil && goexif.IsCriticalError(err)) {
		return 0, false, err
	}

	tag, err := x.Get(goexif.Orientation)
	if err != nil {
		return 0, false, nil
	}
	value, err := tag.Int(0)
	if err != nil || value < 0 {
		return 0, false, nil
	}
	return uint64(value), true, nil
}

// orientationReader tries each extractor in order; the first one that
// parses the container decides the result.
type orientationReader struct {
	extractors []orientationExtractor
}

func newOrientationReader() *orientationReader {
	return &orientationReader{
		extractors: []orientationExtractor{
			goExifExtractor{},
			goexifExtractor{},
		},
	}
}

func (r *orientationReader) read(path string) (Orientation, error) {
	file, err := os.Open(path)
	if err != nil {
		return OrientationNormal, errExifRead(path, err)
	}
	defer file.Close()

	var firstErr error
	for _, extractor := range r.extractors {
		value, found, err := extractor.orientation(file)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"extractor": extractor.name(),
				"file":      path,
			}).WithError(err).Debug("Orientation extractor failed, trying next")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !found {
			return OrientationNormal, nil
		}
		return orientationFromTag(value), nil
	}

	return OrientationNormal, errExifRead(path, firstErr)
}

var defaultOrientationReader = newOrientationReader()

// ReadOrientationStrict reports the EXIF orientation of the file at path.
// Open and container parse failures are returned as KindExifRead errors;
// a container without an orientation tag yields OrientationNormal.
func ReadOrientationStrict(path string) (Orientation, error) {
	return defaultOrientationReader.read(path)
}

// ReadOrientation is the best-effort variant used by the pipeline: any
// failure means no correction.
func ReadOrientation(path string) Orientation {
	orientation, err := ReadOrientationStrict(path)
	if err != nil {
		return OrientationNormal
	}
	return orientation
}

func orientationFromTag(value uint64) Orientation {
	if value < uint64(OrientationNormal) || value > uint64(OrientationRotate270) {
		return OrientationNormal
	}
	return Orientation(value)
}

func firstUint(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case []uint16:
		if len(v) > 0 {
			return uint64(v[0]), true
		}
	case []uint32:
		if len(v) > 0 {
			return uint64(v[0]), true
		}
	case []uint8:
		if len(v) > 0 {
			return uint64(v[0]), true
		}
	case []int32:
		if len(v) > 0 && v[0] >= 0 {
			return uint64(v[0]), true
		}
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	}
	return 0, false
}
