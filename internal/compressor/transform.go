package compressor

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Orientation is the EXIF orientation tag value (1-8).
type Orientation int

const (
	OrientationNormal Orientation = iota + 1
	OrientationFlipH
	OrientationRotate180
	OrientationFlipV
	// OrientationTranspose is a 90° clockwise rotation followed by a horizontal flip.
	OrientationTranspose
	// OrientationRotate90 needs a 90° clockwise rotation.
	OrientationRotate90
	// OrientationTransverse is a 270° clockwise rotation followed by a horizontal flip.
	OrientationTransverse
	// OrientationRotate270 needs a 270° clockwise rotation.
	OrientationRotate270
)

func (o Orientation) String() string {
	switch o {
	case OrientationNormal:
		return "normal"
	case OrientationFlipH:
		return "flip-horizontal"
	case OrientationRotate180:
		return "rotate-180"
	case OrientationFlipV:
		return "flip-vertical"
	case OrientationTranspose:
		return "transpose"
	case OrientationRotate90:
		return "rotate-90"
	case OrientationTransverse:
		return "transverse"
	case OrientationRotate270:
		return "rotate-270"
	default:
		return "normal"
	}
}

// SwapsDimensions reports whether applying o exchanges width and height.
func (o Orientation) SwapsDimensions() bool {
	return o >= OrientationTranspose && o <= OrientationRotate270
}

// Apply returns img with the geometric correction for o applied.
// imaging rotates counter-clockwise, so a clockwise 90° is its Rotate270.
func (o Orientation) Apply(img image.Image) image.Image {
	switch o {
	case OrientationFlipH:
		return imaging.FlipH(img)
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationFlipV:
		return imaging.FlipV(img)
	case OrientationTranspose:
		return imaging.Transpose(img)
	case OrientationRotate90:
		return imaging.Rotate270(img)
	case OrientationTransverse:
		return imaging.Transverse(img)
	case OrientationRotate270:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// resizeToWidth downsamples img to targetWidth keeping the aspect ratio.
// It never upscales; a zero target disables resizing.
func resizeToWidth(img image.Image, targetWidth int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if targetWidth <= 0 || targetWidth >= width {
		return img
	}

	targetHeight := proportionalHeight(targetWidth, width, height)
	return imaging.Resize(img, targetWidth, targetHeight, imaging.Lanczos)
}

func proportionalHeight(targetWidth, width, height int) int {
	h := int(math.Round(float64(targetWidth) * float64(height) / float64(width)))
	if h < 1 {
		return 1
	}
	return h
}
