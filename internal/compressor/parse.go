package compressor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector is wrapped by every selector parsing failure.
var ErrInvalidSelector = errors.New("invalid selector")

func ParseQuality(s string) (QualityPreset, error) {
	switch strings.ToLower(s) {
	case "high", "alta":
		return QualityHigh, nil
	case "medium", "media":
		return QualityMedium, nil
	case "low", "baja":
		return QualityLow, nil
	default:
		return 0, fmt.Errorf("%w: invalid quality: %s", ErrInvalidSelector, s)
	}
}

func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return 0, fmt.Errorf("%w: invalid format: %s", ErrInvalidSelector, s)
	}
}

func ParsePrivacy(s string) (PrivacyLevel, error) {
	switch strings.ToLower(s) {
	case "keep_all", "todo":
		return PrivacyKeepAll, nil
	case "remove_sensitive", "sensible":
		return PrivacyRemoveSensitive, nil
	case "remove_all", "nada":
		return PrivacyRemoveAll, nil
	default:
		return 0, fmt.Errorf("%w: invalid privacy level: %s", ErrInvalidSelector, s)
	}
}

// NewProcessOptions validates the caller's selector strings and builds the
// batch configuration. Nothing is processed when it returns an error.
func NewProcessOptions(quality, format, privacy string, width int, outputDir string) (ProcessOptions, error) {
	q, err := ParseQuality(quality)
	if err != nil {
		return ProcessOptions{}, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return ProcessOptions{}, err
	}
	p, err := ParsePrivacy(privacy)
	if err != nil {
		return ProcessOptions{}, err
	}
	if width < 0 {
		return ProcessOptions{}, errInvalidDimensions(width, 0, "target width must be positive")
	}
	if strings.TrimSpace(outputDir) == "" {
		return ProcessOptions{}, errInternal("output directory is required")
	}

	return ProcessOptions{
		Quality:   q,
		Format:    f,
		Privacy:   p,
		Width:     width,
		OutputDir: outputDir,
	}, nil
}
