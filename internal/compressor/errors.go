package compressor

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an ImageError. The set is closed.
type ErrorKind int

const (
	KindPathNotFound ErrorKind = iota + 1
	KindInvalidFormat
	KindExifRead
	KindSaveFailed
	// KindInvalidDimensions is reserved for explicit dimension validation;
	// the batch pipeline never produces it.
	KindInvalidDimensions
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindPathNotFound:
		return "path_not_found"
	case KindInvalidFormat:
		return "invalid_format"
	case KindExifRead:
		return "exif_read_error"
	case KindSaveFailed:
		return "save_failed"
	case KindInvalidDimensions:
		return "invalid_dimensions"
	case KindInternal:
		return "internal_error"
	default:
		return "unknown"
	}
}

// ImageError is a terminal, non-retryable failure. Which payload fields are
// set depends on Kind.
type ImageError struct {
	Kind    ErrorKind
	Path    string
	Details string
	Width   int
	Height  int
	Err     error
}

func (e *ImageError) Error() string {
	switch e.Kind {
	case KindPathNotFound:
		return fmt.Sprintf("path not found: %s", e.Path)
	case KindInvalidFormat:
		return fmt.Sprintf("invalid format: %s", e.Path)
	case KindExifRead:
		return fmt.Sprintf("EXIF read error in %s: %s", e.Path, e.Details)
	case KindSaveFailed:
		return fmt.Sprintf("save failed for %s: %s", e.Path, e.Details)
	case KindInvalidDimensions:
		return fmt.Sprintf("invalid dimensions %dx%d: %s", e.Width, e.Height, e.Details)
	default:
		return fmt.Sprintf("internal error: %s", e.Details)
	}
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

func errPathNotFound(path string, cause error) *ImageError {
	return &ImageError{Kind: KindPathNotFound, Path: path, Err: cause}
}

func errInvalidFormat(path string, cause error) *ImageError {
	return &ImageError{Kind: KindInvalidFormat, Path: path, Err: cause}
}

func errExifRead(path string, cause error) *ImageError {
	return &ImageError{Kind: KindExifRead, Path: path, Details: cause.Error(), Err: cause}
}

func errSaveFailed(path string, cause error) *ImageError {
	return &ImageError{Kind: KindSaveFailed, Path: path, Details: cause.Error(), Err: cause}
}

func errInvalidDimensions(width, height int, reason string) *ImageError {
	return &ImageError{Kind: KindInvalidDimensions, Width: width, Height: height, Details: reason}
}

func errInternal(message string) *ImageError {
	return &ImageError{Kind: KindInternal, Details: message}
}

// IsKind reports whether err is, or wraps, an ImageError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var imgErr *ImageError
	if errors.As(err, &imgErr) {
		return imgErr.Kind == kind
	}
	return false
}
