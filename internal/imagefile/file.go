package imagefile

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// DecodeError reports a failed load. The canvas is left as it was.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failed save. Any existing file at Path is untouched.
// FormatKnown is false when the suffix named no format, leaving Format unset.
type EncodeError struct {
	Path        string
	Format      Format
	FormatKnown bool
	Err         error
}

func (e *EncodeError) Error() string {
	if !e.FormatKnown {
		return fmt.Sprintf("save %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("save %s as %s: %v", e.Path, e.Format, e.Err)
}
func (e *EncodeError) Unwrap() error { return e.Err }

// Load reads and decodes the image at path. A leading ~ is expanded.
func Load(path string) (image.Image, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	f, err := FormatFromPath(p)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if !f.CanDecode() {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w: cannot decode %s", ErrUnsupportedFormat, f)}
	}
	fh, err := os.Open(p)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer fh.Close()
	img, err := Decode(fh, f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// NewFileMode is the permission given to images saved to a new path. An
// existing file keeps its own mode.
const NewFileMode os.FileMode = 0o644

// Save encodes img to path in the format named by its suffix. The data is
// written to a temporary file in the same directory which then replaces path,
// so a failed save never truncates an existing file.
func Save(path string, img image.Image) error {
	p, err := homedir.Expand(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	f, err := FormatFromPath(p)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	fail := func(err error) error {
		return &EncodeError{Path: path, Format: f, FormatKnown: true, Err: err}
	}
	if !f.CanEncode() {
		return fail(fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f))
	}
	mode := NewFileMode
	if fi, err := os.Stat(p); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "."+filepath.Base(p)+".*")
	if err != nil {
		return fail(err)
	}
	tmpName := tmp.Name()
	if err := Encode(tmp, img, f); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fail(err)
	}
	// CreateTemp makes the file owner-only.
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fail(err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fail(err)
	}
	return nil
}
