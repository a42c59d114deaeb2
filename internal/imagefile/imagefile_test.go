package imagefile

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 40), uint8(y * 60), 10, 255})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"a.png":       PNG,
		"b.JPG":       JPEG,
		"c.jpeg":      JPEG,
		"d.gif":       GIF,
		"e.tif":       TIFF,
		"f.tiff":      TIFF,
		"g.bmp":       BMP,
		"h.webp":      WebP,
		"dir.x/i.PDF": PDF,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = FormatFromPath("x.xcf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLosslessRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := sample()
	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		path := filepath.Join(dir, "canvas"+ext)
		require.NoError(t, Save(path, src), ext)
		img, err := Load(path)
		require.NoError(t, err, ext)
		assert.Equal(t, src.Bounds(), img.Bounds(), ext)
		r, g, b, _ := img.At(5, 3).RGBA()
		assert.Equal(t, [3]uint32{200, 180, 10}, [3]uint32{r >> 8, g >> 8, b >> 8}, ext)
	}
}

func TestLossyFormatsKeepSize(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".jpg", ".gif"} {
		path := filepath.Join(dir, "canvas"+ext)
		require.NoError(t, Save(path, sample()), ext)
		img, err := Load(path)
		require.NoError(t, err, ext)
		assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds(), ext)
	}
}

func TestPDFExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), PDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	_, err := Load(filepath.Join(t.TempDir(), "x.pdf"))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	var de *DecodeError

	_, err := Load(filepath.Join(dir, "missing.png"))
	require.ErrorAs(t, err, &de)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	_, err = Load(bad)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, bad, de.Path)
}

func TestSuffixDecidesDecoder(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "real.png")
	require.NoError(t, Save(png, sample()))
	data, err := os.ReadFile(png)
	require.NoError(t, err)

	mislabelled := filepath.Join(dir, "fake.bmp")
	require.NoError(t, os.WriteFile(mislabelled, data, 0o644))
	_, err = Load(mislabelled)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestSaveFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "keep.webp")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0o644))

	err := Save(target, sample())
	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, WebP, ee.Format)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	err = Save(filepath.Join(dir, "out.unknown"), sample())
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, ee.FormatKnown)
	assert.NotContains(t, err.Error(), " as ")
	assert.Contains(t, err.Error(), "out.unknown")
}

func TestSaveFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.png")
	require.NoError(t, Save(fresh, sample()))
	fi, err := os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, NewFileMode, fi.Mode().Perm())

	shared := filepath.Join(dir, "shared.png")
	require.NoError(t, os.WriteFile(shared, []byte("old"), 0o644))
	require.NoError(t, os.Chmod(shared, 0o664))
	require.NoError(t, Save(shared, sample()))
	fi, err = os.Stat(shared)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o664), fi.Mode().Perm())

	plain := filepath.Join(dir, "plain.png")
	require.NoError(t, os.WriteFile(plain, []byte("old"), 0o644))
	require.NoError(t, Save(plain, sample()))
	fi, err = os.Stat(plain)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, "a.png"), sample()))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.png", entries[0].Name())
}
