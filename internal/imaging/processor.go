package imaging

import (
	"fmt"
	"os"

	"github.com/h2non/bimg"
)

// thumbMaxDim bounds both thumbnail dimensions. Thumbnails fit inside a
// square of this size, preserving aspect ratio, and are never upscaled.
const thumbMaxDim = 300

// thumbQuality is the JPEG quality for thumbnails; conversions from HEIC keep
// maximum quality since they replace the original.
const (
	thumbQuality   = 80
	convertQuality = 100
)

// rotationAngles maps the accepted rotation degrees onto libvips angles.
var rotationAngles = map[int]bimg.Angle{
	90:  bimg.D90,
	180: bimg.D180,
	270: bimg.D270,
}

// ValidDegrees reports whether degrees is an accepted rotation.
func ValidDegrees(degrees int) bool {
	_, ok := rotationAngles[degrees]
	return ok
}

// Processor performs image codec work through libvips (bimg). Conversion and
// thumbnailing retry internally per the configured policy; rotation does not,
// since its caller owns the temp-file cleanup.
type Processor struct {
	retry RetryPolicy
}

// NewProcessor returns a Processor with the default retry policy.
func NewProcessor() *Processor {
	return &Processor{retry: DefaultRetry()}
}

// NewProcessorWithRetry returns a Processor with a custom retry policy.
func NewProcessorWithRetry(policy RetryPolicy) *Processor {
	return &Processor{retry: policy}
}

// ConvertToJPEG re-encodes the image at src as a maximum-quality JPEG at dst,
// correcting orientation from embedded metadata. Used to normalize HEIC/HEIF
// uploads. src is left in place; the caller decides its fate.
func (p *Processor) ConvertToJPEG(src, dst string) error {
	return p.retry.Do(fmt.Sprintf("convert %s", src), func() error {
		return transcode(src, dst, bimg.Options{
			Type:    bimg.JPEG,
			Quality: convertQuality,
		})
	})
}

// Thumbnail writes a preview of src to dst: JPEG, orientation-corrected,
// fitting inside 300×300 without upscaling.
func (p *Processor) Thumbnail(src, dst string) error {
	return p.retry.Do(fmt.Sprintf("thumbnail %s", src), func() error {
		return thumbnailOnce(src, dst)
	})
}

// Rotate re-encodes src rotated by the given degrees into dst, keeping the
// source format. Orientation metadata is not reapplied: the caller asked for
// an exact rotation of the pixels as currently displayed.
func (p *Processor) Rotate(src, dst string, degrees int) error {
	angle, ok := rotationAngles[degrees]
	if !ok {
		return fmt.Errorf("unsupported rotation: %d degrees", degrees)
	}
	return transcode(src, dst, bimg.Options{
		Rotate:       angle,
		NoAutoRotate: true,
	})
}

func thumbnailOnce(src, dst string) error {
	buf, err := bimg.Read(src)
	if err != nil {
		return err
	}

	img := bimg.NewImage(buf)
	size, err := img.Size()
	if err != nil {
		return err
	}

	opts := bimg.Options{Type: bimg.JPEG, Quality: thumbQuality}
	// Constrain the longer edge only; libvips scales the other to match.
	// Images already inside the bound are re-encoded without resizing.
	switch {
	case size.Width <= thumbMaxDim && size.Height <= thumbMaxDim:
	case size.Width >= size.Height:
		opts.Width = thumbMaxDim
	default:
		opts.Height = thumbMaxDim
	}

	out, err := img.Process(opts)
	if err != nil {
		return err
	}
	return writeFile(dst, out)
}

func transcode(src, dst string, opts bimg.Options) error {
	buf, err := bimg.Read(src)
	if err != nil {
		return err
	}
	out, err := bimg.NewImage(buf).Process(opts)
	if err != nil {
		return err
	}
	return writeFile(dst, out)
}

func writeFile(dst string, data []byte) error {
	return os.WriteFile(dst, data, 0o644)
}
