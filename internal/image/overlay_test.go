package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaledHeight(t *testing.T) {
	tests := []struct {
		srcW, srcH, w, want int
	}{
		{300, 200, 150, 100},
		{400, 301, 150, 113}, // 112.875
		{1000, 333, 150, 50}, // 49.95
		{640, 1, 150, 1},
		{3, 2, 150, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScaledHeight(tt.srcW, tt.srcH, tt.w))
	}
}

func TestScaleToWidth(t *testing.T) {
	src := imaging.New(400, 301, color.NRGBA{R: 10, A: 255})
	out := ScaleToWidth(src, 150)
	assert.Equal(t, 150, out.Bounds().Dx())
	assert.Equal(t, 113, out.Bounds().Dy())
}

func TestDrawImageOverlay(t *testing.T) {
	base := imaging.New(800, 600, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	// Left half opaque red, right half fully transparent.
	ov := imaging.New(200, 100, color.NRGBA{})
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			ov.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	out, p, err := DrawImageOverlay(base, ov, 100, BottomRight, 20, 20)
	require.NoError(t, err)
	assert.Equal(t, Placement{W: 100, H: 50, X: 680, Y: 530}, p)
	assert.Equal(t, 800, out.Bounds().Dx())
	assert.Equal(t, 600, out.Bounds().Dy())

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(690, 550))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(770, 550))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, base.NRGBAAt(690, 550), "base must not change")
}

func TestLoadOverlayFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, imaging.Save(imaging.New(30, 20, color.NRGBA{B: 255, A: 128}), path))

	ov, err := LoadOverlay(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), ov.Bounds())
	assert.Equal(t, uint8(128), ov.NRGBAAt(0, 0).A)

	_, err = LoadOverlay(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLoadOverlayFromURL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(40, 10, color.NRGBA{G: 255, A: 255}), imaging.PNG))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	assert.True(t, IsRemote(srv.URL+"/logo.png"))
	ov, err := LoadOverlay(srv.URL + "/logo.png")
	require.NoError(t, err)
	assert.Equal(t, 40, ov.Bounds().Dx())

	_, err = LoadOverlay(srv.URL + "/other.png")
	assert.Error(t, err)
}

func TestSaveJPEGFlattens(t *testing.T) {
	img := imaging.New(64, 48, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	flat := Flatten(img)
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, flat.NRGBAAt(3, 3))

	path := filepath.Join(t.TempDir(), "nested", "out.jpg")
	require.NoError(t, SaveJPEG(path, img))

	got, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 64, got.Bounds().Dx())
	assert.Equal(t, 48, got.Bounds().Dy())
	r, _, _, _ := got.At(10, 10).RGBA()
	assert.InDelta(t, 200, r>>8, 8)
}
