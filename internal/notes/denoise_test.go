package notes

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		img.Set(x, 16, color.White)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestDenoiseWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, "board.png")

	out := filepath.Join(dir, "processed")
	a, err := Denoise(in, out)
	require.NoError(t, err)
	require.Equal(t, "board", a.BaseName)
	require.FileExists(t, filepath.Join(out, "board_denoised.jpg"))
	require.FileExists(t, filepath.Join(out, "board_enhanced.jpg"))
}

func TestDenoiseMissingInput(t *testing.T) {
	_, err := Denoise(filepath.Join(t.TempDir(), "absent.png"), t.TempDir())
	require.Error(t, err)
}
