package batch

import (
	"bytes"
	imagecolor "image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDriverSharedBase(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "output")
	logo := writePNG(t, dir, "logo.png", imaging.New(300, 200, imagecolor.NRGBA{R: 255, A: 255}))

	var buf bytes.Buffer
	d := NewDriver(NewProcessor(testOptions(testFont(t))), DriverConfig{
		OutputDir: outDir,
		Base:      imaging.New(800, 600, white),
		Out:       &buf,
		Log:       quietLogger(),
	})

	sum, err := d.Run([][]string{
		{"text", "Hello", "greet.jpg"},
		{"image", logo, "logo"},
		{"sticker", "x", "bad.jpg"},
		{"image", filepath.Join(dir, "missing.png")},
		{"text", "defaulted"},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Mode: ModeShared, Rows: 5, Written: 3, Skipped: 2}, sum)

	assertJPEG(t, filepath.Join(outDir, "greet.jpg"), 800, 600)
	assertJPEG(t, filepath.Join(outDir, "logo.jpg"), 800, 600)
	assertJPEG(t, filepath.Join(outDir, "image_0005.jpg"), 800, 600)
	assert.NoFileExists(t, filepath.Join(outDir, "bad.jpg"))
	assert.NoFileExists(t, filepath.Join(outDir, "image_0004.jpg"))

	out := buf.String()
	assert.Contains(t, out, "Processing 5 rows...")
	assert.Contains(t, out, "[1] OK: text 'Hello'")
	assert.Contains(t, out, "[2] OK: image '"+logo+"' at 20,480 (150x100px)")
	assert.Contains(t, out, "[3] SKIP: unknown type 'sticker'")
	assert.Contains(t, out, "[4] SKIP: overlay not found")
	assert.Contains(t, out, "Done. Output in '"+outDir+"/'")
}

func TestDriverSharedBaseRequired(t *testing.T) {
	d := NewDriver(NewProcessor(testOptions(nil)), DriverConfig{OutputDir: t.TempDir(), Log: quietLogger()})
	_, err := d.Run([][]string{{"text", "hello", "a.jpg"}})
	assert.ErrorIs(t, err, ErrBaseImageRequired)
}

func TestDriverNoRows(t *testing.T) {
	d := NewDriver(NewProcessor(testOptions(nil)), DriverConfig{Log: quietLogger()})
	_, err := d.Run(nil)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestDriverPerRowBase(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "output")
	base1 := writePNG(t, dir, "base1.png", imaging.New(640, 480, white))
	base2 := writePNG(t, dir, "base2.png", imaging.New(320, 240, white))

	var buf bytes.Buffer
	d := NewDriver(NewProcessor(testOptions(testFont(t))), DriverConfig{
		OutputDir: outDir,
		Out:       &buf,
		Log:       quietLogger(),
	})

	sum, err := d.Run([][]string{
		{base1, "text", "200x200cm 1mm", "output-sku1321.jpg"},
		{base2, "text", "second"},
		{base1, "text", "again", "third"},
		{filepath.Join(dir, "missing.jpg"), "text", "x", "missing.jpg"},
		{base1, "text"},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Mode: ModePerRow, Rows: 5, Written: 3, Skipped: 2}, sum)

	assertJPEG(t, filepath.Join(outDir, "output-sku1321.jpg"), 640, 480)
	assertJPEG(t, filepath.Join(outDir, "image_0002.jpg"), 320, 240)
	assertJPEG(t, filepath.Join(outDir, "third.jpg"), 640, 480)
	assert.Len(t, d.cache, 2)

	out := buf.String()
	assert.Contains(t, out, "Mode 2: image per row")
	assert.Contains(t, out, "[4] SKIP: input image not found")
	assert.Contains(t, out, "[5] SKIP: not enough columns")
}

func TestDriverTextRowsWithoutFont(t *testing.T) {
	outDir := t.TempDir()
	var buf bytes.Buffer
	d := NewDriver(NewProcessor(testOptions(nil)), DriverConfig{
		OutputDir: outDir,
		Base:      imaging.New(100, 100, white),
		Out:       &buf,
		Log:       quietLogger(),
	})

	sum, err := d.Run([][]string{{"text", "a", "a.jpg"}, {"TEXT", "b", "b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Skipped)
	assert.Equal(t, 0, sum.Written)
	assert.NoFileExists(t, filepath.Join(outDir, "a.jpg"))
	assert.NoFileExists(t, filepath.Join(outDir, "b.jpg"))
	assert.Contains(t, buf.String(), "SKIP: --font required for text rows")
}
