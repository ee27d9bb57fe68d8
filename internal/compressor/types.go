package compressor

import "fmt"

// QualityPreset is the compression level chosen once per batch.
type QualityPreset int

const (
	QualityHigh QualityPreset = iota
	QualityMedium
	QualityLow
)

// Percentage maps the preset to the numeric quality shared by the JPEG
// encoder and the PNG compression-level selection.
func (q QualityPreset) Percentage() int {
	switch q {
	case QualityHigh:
		return 90
	case QualityMedium:
		return 75
	default:
		return 60
	}
}

func (q QualityPreset) String() string {
	switch q {
	case QualityHigh:
		return "high"
	case QualityMedium:
		return "medium"
	case QualityLow:
		return "low"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

type OutputFormat int

const (
	FormatJPEG OutputFormat = iota
	FormatPNG
	// FormatWebP is accepted by the selector but every file fails to encode.
	FormatWebP
)

// Extension returns the output file extension without the dot.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	default:
		return "bin"
	}
}

func (f OutputFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// PrivacyLevel records how much source metadata the caller wants kept.
// Output is always re-encoded from decoded pixels, so no level carries
// metadata into the written file. RemoveSensitive behaves as RemoveAll.
type PrivacyLevel int

const (
	PrivacyKeepAll PrivacyLevel = iota
	PrivacyRemoveSensitive
	PrivacyRemoveAll
)

func (p PrivacyLevel) String() string {
	switch p {
	case PrivacyKeepAll:
		return "keep_all"
	case PrivacyRemoveSensitive:
		return "remove_sensitive"
	case PrivacyRemoveAll:
		return "remove_all"
	default:
		return fmt.Sprintf("privacy(%d)", int(p))
	}
}

// ProcessOptions is built once per batch and shared read-only by all workers.
type ProcessOptions struct {
	Quality QualityPreset
	Format  OutputFormat
	Privacy PrivacyLevel
	// Width is the target width in pixels; 0 disables resizing.
	Width     int
	OutputDir string
	// Workers is the pool size; 0 means runtime.NumCPU().
	Workers int
}

// ProgressInfo is the aggregate outcome of one batch.
type ProgressInfo struct {
	TotalImages int    `json:"total_images"`
	Successful  int    `json:"successful"`
	Failed      int    `json:"failed"`
	CurrentFile string `json:"current_file,omitempty"`
}

func (p ProgressInfo) Processed() int {
	return p.Successful + p.Failed
}

// ProgressUpdate is emitted once per finished file.
type ProgressUpdate struct {
	Total  int
	File   string
	Err    error
	Failed bool
}
