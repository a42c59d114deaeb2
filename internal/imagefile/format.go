// Package imagefile reads and writes canvas images, choosing the codec from
// the file name suffix.
package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Format is an image file format.
type Format int

const (
	PNG Format = iota
	JPEG
	GIF
	TIFF
	BMP
	WebP
	PDF
)

// ErrUnsupportedFormat is returned for unknown suffixes and for formats that
// cannot be used in the requested direction.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var formatNames = map[Format]string{
	PNG:  "png",
	JPEG: "jpeg",
	GIF:  "gif",
	TIFF: "tiff",
	BMP:  "bmp",
	WebP: "webp",
	PDF:  "pdf",
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// CanDecode reports whether images in this format can be loaded.
func (f Format) CanDecode() bool { return f != PDF }

// CanEncode reports whether images can be saved in this format.
func (f Format) CanEncode() bool { return f != WebP }

// JPEGQuality is used whenever a JPEG is written.
const JPEGQuality = 95

// FormatFromPath picks the format from the path's suffix. Contents are never
// inspected.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".webp":
		return WebP, nil
	case ".pdf":
		return PDF, nil
	}
	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	switch f {
	case imaging.PNG:
		return PNG, nil
	case imaging.JPEG:
		return JPEG, nil
	case imaging.GIF:
		return GIF, nil
	case imaging.TIFF:
		return TIFF, nil
	case imaging.BMP:
		return BMP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Formats lists every known format.
func Formats() []Format {
	return []Format{PNG, JPEG, GIF, TIFF, BMP, WebP, PDF}
}

// Decode reads an image in format f.
func Decode(r io.Reader, f Format) (image.Image, error) {
	switch f {
	case PNG:
		return png.Decode(r)
	case JPEG:
		return jpeg.Decode(r)
	case GIF:
		return gif.Decode(r)
	case TIFF:
		return tiff.Decode(r)
	case BMP:
		return bmp.Decode(r)
	case WebP:
		return webp.Decode(r)
	}
	return nil, fmt.Errorf("%w: cannot decode %s", ErrUnsupportedFormat, f)
}

// Encode writes img in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PDF:
		return encodePDF(w, img)
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	case GIF:
		return imaging.Encode(w, img, imaging.GIF)
	case TIFF:
		return imaging.Encode(w, img, imaging.TIFF)
	case BMP:
		return imaging.Encode(w, img, imaging.BMP)
	}
	return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
}

// encodePDF writes a single page sized to the image in points.
func encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &buf)
	pdf.ImageOptions("canvas", 0, 0, wd, ht, false, opts, 0, "")
	return pdf.Output(w)
}
